// Package config loads the calculator inputs from a JSON file, an optional
// .env file and the environment, and validates them against the ranges the
// input widgets enforce.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/sweep"
)

const (
	EnvAPIKey     = "MASSIVE_API_KEY"
	EnvListenAddr = "BSG_LISTEN_ADDR"
)

// Config is the user-facing input set. Days are calendar days; Params
// converts them to years with days/365.
type Config struct {
	Spot         float64 `json:"spot" validate:"gte=0.01"`
	Strike       float64 `json:"strike" validate:"gte=0.01"`
	Rate         float64 `json:"rate" validate:"gte=0,lte=1"`
	DaysToExpiry float64 `json:"days_to_expiry" validate:"gte=1"`
	Volatility   float64 `json:"volatility" validate:"gt=0,lte=1"`
	OptionType   string  `json:"option_type" validate:"required,option_type"`

	// Ticker, when set, replaces Spot with the last close from the data provider.
	Ticker string `json:"ticker,omitempty" validate:"omitempty,max=16"`

	Sweep      *sweep.Range `json:"sweep,omitempty"`
	ReportDir  string       `json:"report_dir,omitempty"`
	ListenAddr string       `json:"listen_addr,omitempty"`
	Verbosity  int          `json:"verbosity" validate:"gte=0,lte=3"`
	Workers    int          `json:"workers" validate:"gte=0,lte=256"`

	APIKey string `json:"-"`
}

// Default returns the calculator's initial inputs.
func Default() Config {
	return Config{
		Spot:         100,
		Strike:       100,
		Rate:         0.03,
		DaysToExpiry: 180,
		Volatility:   0.25,
		OptionType:   "c",
		ListenAddr:   ":8080",
		Verbosity:    1,
	}
}

// Load reads a JSON config over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads the given .env files (".env" when none) into the process
// environment, then copies the API key and listen address into cfg. Missing
// files are skipped.
func (c *Config) LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.ListenAddr = v
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// same spellings the engine accepts, in any case
	v.RegisterValidation("option_type", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseOptionType(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the widget ranges and returns one error naming every
// offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if c.Sweep != nil {
			if _, err := c.Sweep.Spots(); err != nil {
				return fmt.Errorf("config sweep: %w", err)
			}
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Params converts the config into engine inputs.
func (c Config) Params() (pricing.Params, error) {
	typ, err := pricing.ParseOptionType(c.OptionType)
	if err != nil {
		return pricing.Params{}, err
	}
	p := pricing.Params{
		Spot:   c.Spot,
		Strike: c.Strike,
		Rate:   c.Rate,
		T:      pricing.YearsFromDays(c.DaysToExpiry),
		Sigma:  c.Volatility,
		Type:   typ,
	}
	return p, p.Validate()
}

// SweepRange returns the configured sweep, or the calculator default for
// the current spot.
func (c Config) SweepRange() sweep.Range {
	if c.Sweep != nil {
		return *c.Sweep
	}
	return sweep.DefaultRange(c.Spot)
}
