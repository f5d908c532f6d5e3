package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/config"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/data"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/logger"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/report"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/server"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/sweep"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("bsgreeks: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("bsgreeks", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to JSON config")
	envFile := fs.String("env", ".env", "dotenv file with MASSIVE_API_KEY")
	spot := fs.Float64("spot", 0, "spot price of the underlying")
	strike := fs.Float64("strike", 0, "strike price")
	rate := fs.Float64("rate", 0, "risk-free rate (decimal)")
	days := fs.Float64("days", 0, "calendar days to expiry (T = days/365)")
	vol := fs.Float64("vol", 0, "annualized volatility (decimal)")
	optType := fs.String("type", "", "option type: call|put")
	ticker := fs.String("ticker", "", "fetch spot as the previous close of this ticker")
	outDir := fs.String("out", "", "directory for greeks.json and sweep.csv")
	rest := fs.Bool("rest", false, "serve the REST API instead of printing")
	port := fs.String("port", "", "REST listen address (default :8080)")
	verbosity := fs.Int("v", -1, "log verbosity 0=error 1=info 2=debug 3=trace")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		return err
	}

	// explicit flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "spot":
			cfg.Spot = *spot
		case "strike":
			cfg.Strike = *strike
		case "rate":
			cfg.Rate = *rate
		case "days":
			cfg.DaysToExpiry = *days
		case "vol":
			cfg.Volatility = *vol
		case "type":
			cfg.OptionType = *optType
		case "ticker":
			cfg.Ticker = *ticker
		case "out":
			cfg.ReportDir = *outDir
		case "port":
			cfg.ListenAddr = *port
		case "v":
			cfg.Verbosity = *verbosity
		}
	})
	logger.SetVerbosity(cfg.Verbosity)

	var spots data.SpotProvider
	if cfg.APIKey != "" {
		spots = data.NewMassiveSpotProvider(cfg.APIKey)
	}

	if *rest {
		return serve(cfg, spots)
	}

	if cfg.Ticker != "" {
		if spots == nil {
			return fmt.Errorf("-ticker requires %s", config.EnvAPIKey)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s, err := spots.Spot(ctx, cfg.Ticker)
		if err != nil {
			return err
		}
		logger.Infof("%s previous close %.2f", cfg.Ticker, s)
		cfg.Spot = s
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	start := time.Now()
	g, err := pricing.Evaluate(p)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if err := report.WriteSummary(stdout, p, g, report.DefaultPlaces); err != nil {
		return err
	}

	if cfg.ReportDir == "" {
		return nil
	}

	rng := cfg.SweepRange()
	series, err := sweep.GenerateParallel(context.Background(), p, rng, cfg.Workers)
	if err != nil {
		return err
	}
	intrinsic, err := pricing.Intrinsic(p)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		return fmt.Errorf("creating report dir %s: %w", cfg.ReportDir, err)
	}
	res := &report.Result{Params: p, Greeks: g, Intrinsic: intrinsic, Sweep: rng, Series: series}
	if err := report.WriteJSON(res, cfg.ReportDir); err != nil {
		return err
	}
	if err := report.WriteCSV(series, cfg.ReportDir); err != nil {
		return err
	}
	logger.Infof("wrote %d sweep points to %s in %v", len(series[sweep.MetricPrice].Points), cfg.ReportDir, time.Since(start))
	return nil
}

func serve(cfg config.Config, spots data.SpotProvider) error {
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.New(spots, cfg.Workers).Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting REST server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Infof("shutting down REST server")
	return srv.Shutdown(ctx)
}
