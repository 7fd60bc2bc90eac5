package holdings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single resolution against the market data provider.
const DefaultTimeout = 15 * time.Second

// Resolver turns holding symbols into Quotations using a MarketData.
//
// A Resolver has no cache and no state besides its configuration: callers
// deduplicate symbols before calling Resolve (see ResolveAll).
type Resolver struct {
	market  MarketData
	timeout time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTimeout sets the per-call timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

// NewResolver returns a Resolver backed by market.
func NewResolver(market MarketData, opts ...ResolverOption) *Resolver {
	r := &Resolver{market: market, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the Quotation for symbol. It never panics on provider
// failures and never returns both a price and an error.
func (r *Resolver) Resolve(ctx context.Context, symbol string) Quotation {
	clean := CleanSymbol(symbol)
	inst, err := NewInstrument(clean)
	if err != nil {
		// malformed contract, no network call.
		return FailedQuotation(clean, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	switch v := inst.(type) {
	case Contract:
		return r.resolveContract(ctx, clean, v)
	case Equity:
		return r.resolveEquity(ctx, clean, v)
	default:
		return FailedQuotation(clean, fmt.Errorf("%w: unsupported instrument %T", ErrInvalidFormat, inst))
	}
}

func (r *Resolver) resolveEquity(ctx context.Context, symbol string, e Equity) Quotation {
	price, err := r.market.LatestPrice(ctx, e.Symbol())
	if err != nil {
		return FailedQuotation(symbol, providerError(err))
	}
	return NewQuotation(symbol, price)
}

func (r *Resolver) resolveContract(ctx context.Context, symbol string, c Contract) Quotation {
	log := zerolog.Ctx(ctx)

	chain, err := r.market.OptionChain(ctx, c.Root(), c.Expiration())
	if errors.Is(err, ErrChainNotFound) {
		chain, err = r.nearestChain(ctx, c)
	}
	if err != nil {
		return FailedQuotation(symbol, providerError(err))
	}

	q, err := MatchStrike(chain.Side(c.Right()), c.Strike())
	if err != nil {
		return FailedQuotation(symbol, fmt.Errorf("option %s not found: %w", symbol, err))
	}

	unit, rule, err := UnitPrice(q)
	if err != nil {
		return FailedQuotation(symbol, fmt.Errorf("option %s: %w", symbol, err))
	}
	if rule != "last" {
		log.Debug().Str("symbol", symbol).Str("rule", rule).Msg("option priced without a last trade")
	}
	return NewQuotation(symbol, unit.Mul(decimal.NewFromInt(ContractMultiplier)))
}

// nearestChain fetches the chain of the listed expiration closest to c's.
func (r *Resolver) nearestChain(ctx context.Context, c Contract) (*Chain, error) {
	exps, err := r.market.Expirations(ctx, c.Root())
	if err != nil && !errors.Is(err, ErrNoProviderData) {
		return nil, err
	}
	nearest, ok := NearestExpiration(c.Expiration(), exps)
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrExpirationNotFound, c.Root())
	}
	zerolog.Ctx(ctx).Debug().
		Str("root", c.Root()).
		Stringer("requested", c.Expiration()).
		Stringer("selected", nearest).
		Msg("no chain at requested expiration, using nearest")

	chain, err := r.market.OptionChain(ctx, c.Root(), nearest)
	if errors.Is(err, ErrChainNotFound) {
		return nil, fmt.Errorf("%w: %s on %s", ErrExpirationNotFound, c.Root(), nearest)
	}
	return chain, err
}

// providerError keeps known failure reasons and wraps anything else as ErrProvider.
func providerError(err error) error {
	for _, known := range []error{ErrNoProviderData, ErrExpirationNotFound, ErrStrikeNotFound, ErrNoPriceAvailable, ErrInvalidFormat, ErrProvider} {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, ErrChainNotFound) {
		return fmt.Errorf("%w: %v", ErrExpirationNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}
