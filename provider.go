package holdings

import (
	"context"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// MarketData is the remote source of prices a Resolver relies on.
//
// Implementations report "nothing to return" with the sentinel errors of this
// package so that the Resolver can choose its fallback:
//   - LatestPrice wraps ErrNoProviderData for unknown symbols or empty data.
//   - OptionChain wraps ErrChainNotFound when there is no chain at exactly
//     that expiration.
//
// Any other error is reported as ErrProvider.
type MarketData interface {
	// LatestPrice returns the last traded or closing price of the most recent trading day.
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	// OptionChain returns the contracts of root expiring on expiration.
	OptionChain(ctx context.Context, root string, expiration date.Date) (*Chain, error)
	// Expirations lists the expirations available for root, in provider order.
	Expirations(ctx context.Context, root string) ([]date.Date, error)
}
