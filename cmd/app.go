// Package cmd implements the pfa CLI application to value a portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/holdings"
	"github.com/etnz/holdings/agent"
	"github.com/etnz/holdings/eodhd"
	"github.com/etnz/holdings/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&analyzeCmd{}, "portfolio")
	c.Register(&summaryCmd{}, "portfolio")
	c.Register(&quoteCmd{}, "portfolio")
	c.Register(&assistCmd{}, "portfolio")

	c.Register(&templateCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a TOML config file (defaults to "+DefaultConfigFile+" when present)")
var defaultCurrency = flag.String("currency", "", "Reporting currency, overrides the configuration")

// Verbose turns on debug logs.
var Verbose = flag.Bool("v", false, "Log debug messages to stderr")

// NewLogger returns the application logger, writing to stderr.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// configure loads the configuration, applies global flags then command
// specific overrides, and validates the result.
func configure(overrides ...func(*Config)) (*Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *defaultCurrency != "" {
		cfg.Currency = strings.ToUpper(*defaultCurrency)
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// providerFlag is shared by the commands that resolve prices.
type providerFlag struct {
	provider string
}

func (p *providerFlag) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.provider, "provider", "", "Market data provider (yahoo, eodhd), overrides the configuration")
}

func (p *providerFlag) apply(cfg *Config) {
	if p.provider != "" {
		cfg.Provider = strings.ToLower(p.provider)
	}
}

// NewMarketData returns the provider selected by cfg.
func NewMarketData(cfg *Config) holdings.MarketData {
	switch cfg.Provider {
	case ProviderEODHD:
		return eodhd.NewClient(cfg.EODHD.APIKey, cfg.CacheDir)
	default:
		c := yahoo.NewClient()
		if cfg.CacheDir != "" {
			c.HTTPClient = holdings.NewDailyClient(cfg.CacheDir)
		}
		return c
	}
}

// NewResolver returns a Resolver over the provider selected by cfg.
func NewResolver(cfg *Config) *holdings.Resolver {
	return holdings.NewResolver(NewMarketData(cfg), holdings.WithTimeout(cfg.TimeoutDuration()))
}

// NewAnalyst returns the AI analyst selected by cfg.
func NewAnalyst(ctx context.Context, cfg *Config) (agent.Analyst, error) {
	if cfg.AI.Provider == AIClaude {
		c, err := agent.NewClaude(cfg.AI.AnthropicKey, cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	g, err := agent.NewGemini(ctx, &genai.ClientConfig{APIKey: cfg.AI.GeminiKey}, cfg.AI.Model)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// evaluate reads the holdings file and values it. Progress is reported on stderr.
func evaluate(ctx context.Context, cfg *Config, file string) (*holdings.Report, error) {
	if file == "" {
		return nil, fmt.Errorf("missing holdings file, use -f")
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hs, err := holdings.ReadHoldings(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", file, err)
	}
	zerolog.Ctx(ctx).Debug().Str("file", file).Int("holdings", len(hs)).Msg("holdings loaded")

	r := NewResolver(cfg)
	report := holdings.Evaluate(ctx, hs, r.Resolve,
		holdings.WithCurrency(cfg.Currency),
		holdings.WithConcurrency(cfg.Concurrency),
		holdings.WithRateLimit(cfg.Rate),
		holdings.WithProgress(progressBar),
	)
	return report, nil
}

func progressBar(done, total int, symbol string) {
	fmt.Fprintf(os.Stderr, "\rFetching prices... %d/%d %-30s", done, total, symbol)
	if done == total {
		fmt.Fprintln(os.Stderr)
	}
}

// warnFailures lists the symbols that could not be priced.
func warnFailures(report *holdings.Report) {
	for _, q := range report.Failures {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch price for %s: %v\n", q.Symbol(), q.Err())
	}
}

// renderMarkdown renders md for the terminal, or returns it as is when it cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}
