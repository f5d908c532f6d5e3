package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/sweep"
)

func TestDefault_ProducesCalculatorScenario(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := pricing.Params{Spot: 100, Strike: 100, Rate: 0.03, T: 180.0 / 365.0, Sigma: 0.25, Type: pricing.Call}
	if p != want {
		t.Fatalf("expected %+v, got %+v", want, p)
	}

	if rng := cfg.SweepRange(); rng != sweep.DefaultRange(100) {
		t.Fatalf("expected default sweep range, got %+v", rng)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	body := `{"strike": 95, "option_type": "put", "sweep": {"start": 50, "end": 150, "step": 5}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Strike != 95 || cfg.Spot != 100 || cfg.OptionType != "put" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if rng := cfg.SweepRange(); rng != (sweep.Range{Start: 50, End: 150, Step: 5}) {
		t.Fatalf("unexpected sweep range: %+v", rng)
	}

	p, err := cfg.Params()
	if err != nil || p.Type != pricing.Put {
		t.Fatalf("expected put params, got %+v (%v)", p, err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}

func TestValidate_WidgetRanges(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(c *Config)
		field string
	}{
		{"rate above 1", func(c *Config) { c.Rate = 1.5 }, "Rate"},
		{"negative rate", func(c *Config) { c.Rate = -0.01 }, "Rate"},
		{"zero vol", func(c *Config) { c.Volatility = 0 }, "Volatility"},
		{"spot too small", func(c *Config) { c.Spot = 0 }, "Spot"},
		{"strike too small", func(c *Config) { c.Strike = 0.001 }, "Strike"},
		{"zero days", func(c *Config) { c.DaysToExpiry = 0 }, "DaysToExpiry"},
		{"bad type", func(c *Config) { c.OptionType = "straddle" }, "OptionType"},
		{"verbosity", func(c *Config) { c.Verbosity = 9 }, "Verbosity"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mut(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), test.field) {
				t.Fatalf("expected error to name %s, got %v", test.field, err)
			}
		})
	}
}

func TestValidate_BadSweep(t *testing.T) {
	cfg := Default()
	cfg.Sweep = &sweep.Range{Start: 10, End: 1, Step: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected sweep validation error")
	}
}

func TestValidate_OptionTypeAnyCase(t *testing.T) {
	for _, typ := range []string{"CALL", "Put", " p ", "c"} {
		cfg := Default()
		cfg.OptionType = typ
		if err := cfg.Validate(); err != nil {
			t.Fatalf("%q: unexpected validation error: %v", typ, err)
		}
		if _, err := cfg.Params(); err != nil {
			t.Fatalf("%q: unexpected params error: %v", typ, err)
		}
	}
}

func TestParams_RejectsUnknownType(t *testing.T) {
	cfg := Default()
	cfg.OptionType = "x"
	if _, err := cfg.Params(); !errors.Is(err, pricing.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("MASSIVE_API_KEY=from-file\nBSG_LISTEN_ADDR=:9090\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv(EnvAPIKey, "")
	os.Unsetenv(EnvAPIKey)
	t.Setenv(EnvListenAddr, "")
	os.Unsetenv(EnvListenAddr)

	cfg := Default()
	if err := cfg.LoadEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "from-file" || cfg.ListenAddr != ":9090" {
		t.Fatalf("env not applied: key=%q addr=%q", cfg.APIKey, cfg.ListenAddr)
	}
}
