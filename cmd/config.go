package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/holdings"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is read when no -config is given and it exists.
const DefaultConfigFile = "pfa.toml"

// Market data providers.
const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"
)

// AI analysts.
const (
	AIGemini = "gemini"
	AIClaude = "claude"
)

// Config holds every setting of the application.
type Config struct {
	Provider    string  `toml:"provider" validate:"oneof=yahoo eodhd"`
	Currency    string  `toml:"currency" validate:"required,len=3,uppercase"`
	Timeout     string  `toml:"timeout" validate:"required"`
	Concurrency int     `toml:"concurrency" validate:"min=1,max=64"`
	Rate        float64 `toml:"rate" validate:"gte=0"`
	CacheDir    string  `toml:"cache_dir"`

	EODHD EODHDConfig `toml:"eodhd"`
	AI    AIConfig    `toml:"ai"`
}

type EODHDConfig struct {
	APIKey string `toml:"api_key"`
}

// AIConfig selects the analyst. Keys are only read from the environment.
type AIConfig struct {
	Provider     string `toml:"provider" validate:"oneof=gemini claude"`
	Model        string `toml:"model"`
	GeminiKey    string `toml:"-"`
	AnthropicKey string `toml:"-"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderYahoo,
		Currency:    holdings.DefaultCurrency,
		Timeout:     holdings.DefaultTimeout.String(),
		Concurrency: 4,
		Rate:        5,
		AI:          AIConfig{Provider: AIGemini},
	}
}

// LoadConfig loads the settings: defaults, then the TOML file at path (or
// $PFA_CONFIG, or DefaultConfigFile if it exists), then the environment
// including a .env file. The result is not validated.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// a missing .env is the common case.
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with the non empty variables returned by getenv.
func (cfg *Config) applyEnv(getenv func(string) string) error {
	var errs []error
	str := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	str("PFA_PROVIDER", &cfg.Provider)
	str("PFA_CURRENCY", &cfg.Currency)
	str("PFA_TIMEOUT", &cfg.Timeout)
	str("PFA_CACHE_DIR", &cfg.CacheDir)
	str("EODHD_API_KEY", &cfg.EODHD.APIKey)
	str("PFA_AI_PROVIDER", &cfg.AI.Provider)
	str("PFA_AI_MODEL", &cfg.AI.Model)
	str("GOOGLE_API_KEY", &cfg.AI.GeminiKey)
	str("GEMINI_API_KEY", &cfg.AI.GeminiKey)
	str("ANTHROPIC_API_KEY", &cfg.AI.AnthropicKey)

	if v := getenv("PFA_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PFA_CONCURRENCY: %w", err))
		} else {
			cfg.Concurrency = n
		}
	}
	if v := getenv("PFA_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("PFA_RATE: %w", err))
		} else {
			cfg.Rate = r
		}
	}

	cfg.Provider = strings.ToLower(cfg.Provider)
	cfg.Currency = strings.ToUpper(cfg.Currency)
	cfg.AI.Provider = strings.ToLower(cfg.AI.Provider)
	return errors.Join(errs...)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid setting at once.
func (cfg *Config) Validate() error {
	var errs []error
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("invalid %s: %q does not satisfy %q", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
			}
		} else {
			errs = append(errs, err)
		}
	}
	if _, err := time.ParseDuration(cfg.Timeout); cfg.Timeout != "" && err != nil {
		errs = append(errs, fmt.Errorf("invalid timeout: %w", err))
	}
	if cfg.Currency != "" && money.GetCurrency(cfg.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", cfg.Currency))
	}
	if cfg.Provider == ProviderEODHD && cfg.EODHD.APIKey == "" {
		errs = append(errs, errors.New("the eodhd provider needs an API key, set EODHD_API_KEY"))
	}
	return errors.Join(errs...)
}

// TimeoutDuration returns the parsed timeout, or the default one if it is invalid.
func (cfg *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return holdings.DefaultTimeout
	}
	return d
}
