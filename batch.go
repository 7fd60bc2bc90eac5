package holdings

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// PriceLookup resolves one symbol. (*Resolver).Resolve is a PriceLookup.
type PriceLookup func(ctx context.Context, symbol string) Quotation

// Progress is called after each resolution with the number of symbols done so far.
type Progress func(done, total int, symbol string)

type options struct {
	currency    string
	concurrency int
	limit       rate.Limit
	progress    Progress
}

// Option configures ResolveAll and Evaluate.
type Option func(*options)

// WithCurrency sets the reporting currency. Default is DefaultCurrency.
func WithCurrency(code string) Option { return func(o *options) { o.currency = code } }

// WithConcurrency sets how many lookups may run at once. Default is 4.
func WithConcurrency(n int) Option { return func(o *options) { o.concurrency = n } }

// WithRateLimit caps lookups per second. Zero or negative means unlimited. Default is 5.
func WithRateLimit(perSecond float64) Option {
	return func(o *options) {
		if perSecond <= 0 {
			o.limit = rate.Inf
			return
		}
		o.limit = rate.Limit(perSecond)
	}
}

// WithProgress registers a progress callback. Calls are serialized.
func WithProgress(p Progress) Option { return func(o *options) { o.progress = p } }

func newOptions(opts []Option) options {
	o := options{currency: DefaultCurrency, concurrency: 4, limit: 5}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	if o.currency == "" {
		o.currency = DefaultCurrency
	}
	return o
}

// Distinct returns the cleaned, non empty symbols in order of first appearance.
func Distinct(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	result := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = CleanSymbol(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}

// ResolveAll looks up every distinct symbol once and returns the quotations
// keyed by cleaned symbol. Lookups run in parallel, throttled, and
// ResolveAll returns only when all of them are done.
func ResolveAll(ctx context.Context, symbols []string, lookup PriceLookup, opts ...Option) map[string]Quotation {
	o := newOptions(opts)
	distinct := Distinct(symbols)
	results := make([]Quotation, len(distinct))

	limiter := rate.NewLimiter(o.limit, o.concurrency)
	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, symbol := range distinct {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				results[i] = FailedQuotation(symbol, fmt.Errorf("%w: %v", ErrProvider, err))
			} else {
				results[i] = lookup(ctx, symbol)
			}
			if err := results[i].Err(); err != nil {
				zerolog.Ctx(ctx).Debug().Str("symbol", symbol).Err(err).Msg("could not resolve")
			}
			if o.progress != nil {
				mu.Lock()
				done++
				o.progress(done, len(distinct), symbol)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // lookups report failures as data.

	quotes := make(map[string]Quotation, len(distinct))
	for i, symbol := range distinct {
		quotes[symbol] = results[i]
	}
	return quotes
}
