// Package sweep evaluates one metric of the pricing engine across a range
// of spot prices, holding every other input fixed. The resulting series are
// what the charts of the calculator plot.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/logger"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
)

// Metric names one output of pricing.Evaluate.
type Metric string

const (
	MetricPrice Metric = "price"
	MetricDelta Metric = "delta"
	MetricGamma Metric = "gamma"
	MetricTheta Metric = "theta"
	MetricVega  Metric = "vega"
	MetricRho   Metric = "rho"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricPrice, MetricDelta, MetricGamma, MetricTheta, MetricVega, MetricRho}

// ParseMetric resolves a metric name case-insensitively.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Value picks the metric out of an evaluation.
func (m Metric) Value(g pricing.Greeks) float64 {
	switch m {
	case MetricDelta:
		return g.Delta
	case MetricGamma:
		return g.Gamma
	case MetricTheta:
		return g.Theta
	case MetricVega:
		return g.Vega
	case MetricRho:
		return g.Rho
	}
	return g.Price
}

// Point is one (spot, value) sample.
type Point struct {
	Spot  float64 `json:"spot"`
	Value float64 `json:"value"`
}

// Series is an ordered sweep of one metric, ascending in spot.
type Series struct {
	Metric Metric  `json:"metric"`
	Points []Point `json:"points"`
}

// Range is the spot grid [Start, End] sampled every Step.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Step  float64 `json:"step"`
}

// maxPoints bounds a single sweep so a bad step cannot exhaust memory.
const maxPoints = 100000

// DefaultRange is the grid the calculator page plots for a given spot:
// integer spots from 1 up to int(spot)+49.
func DefaultRange(spot float64) Range {
	end := math.Floor(spot) + 49
	if end < 1 {
		end = 1
	}
	return Range{Start: 1, End: end, Step: 1}
}

// Spots validates the range and returns its grid points.
func (r Range) Spots() ([]float64, error) {
	switch {
	case math.IsNaN(r.Start) || math.IsNaN(r.End) || math.IsNaN(r.Step):
		return nil, fmt.Errorf("sweep range has NaN bound: %+v", r)
	case r.Step <= 0 || math.IsInf(r.Step, 0):
		return nil, fmt.Errorf("sweep step must be positive, got %v", r.Step)
	case r.Start <= 0:
		return nil, fmt.Errorf("sweep start must be positive, got %v", r.Start)
	case r.End < r.Start || math.IsInf(r.End, 0):
		return nil, fmt.Errorf("sweep end %v must be finite and >= start %v", r.End, r.Start)
	}

	// count stays a float until bounded; huge quotients do not fit an int
	cnt := math.Floor((r.End-r.Start)/r.Step+1e-9) + 1
	if cnt > maxPoints || math.IsInf(cnt, 0) || math.IsNaN(cnt) {
		return nil, fmt.Errorf("sweep has %g points, limit is %d", cnt, maxPoints)
	}
	n := int(cnt)

	spots := make([]float64, n)
	for i := range spots {
		// index-based to avoid accumulating step error
		spots[i] = r.Start + float64(i)*r.Step
	}
	return spots, nil
}

// Generate evaluates metric at every spot of rng, sequentially.
func Generate(base pricing.Params, metric Metric, rng Range) (Series, error) {
	all, err := generate(context.Background(), base, rng, 1)
	if err != nil {
		return Series{}, err
	}
	return project(metric, all), nil
}

// GenerateAll evaluates each spot once and returns a series per metric.
func GenerateAll(base pricing.Params, rng Range) (map[Metric]Series, error) {
	all, err := generate(context.Background(), base, rng, 1)
	if err != nil {
		return nil, err
	}
	return projectAll(all), nil
}

// GenerateParallel is GenerateAll with points fanned out over up to
// workers goroutines (GOMAXPROCS when workers <= 0). Output is identical to
// GenerateAll; the first failing point cancels the rest.
func GenerateParallel(ctx context.Context, base pricing.Params, rng Range, workers int) (map[Metric]Series, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	all, err := generate(ctx, base, rng, workers)
	if err != nil {
		return nil, err
	}
	return projectAll(all), nil
}

type sample struct {
	spot float64
	g    pricing.Greeks
}

func generate(ctx context.Context, base pricing.Params, rng Range, workers int) ([]sample, error) {
	spots, err := rng.Spots()
	if err != nil {
		return nil, err
	}

	logger.Debugf("sweep %s K=%.2f over %d spots [%.2f, %.2f] workers=%d",
		base.Type, base.Strike, len(spots), rng.Start, rng.End, workers)

	out := make([]sample, len(spots))

	if workers == 1 {
		for i, s := range spots {
			g, err := evalPoint(base, s)
			if err != nil {
				return nil, err
			}
			out[i] = sample{spot: s, g: g}
		}
		return out, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, s := range spots {
		i, s := i, s
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := evalPoint(base, s)
			if err != nil {
				return err
			}
			out[i] = sample{spot: s, g: g}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func evalPoint(base pricing.Params, spot float64) (pricing.Greeks, error) {
	g, err := pricing.Evaluate(base.WithSpot(spot))
	if err != nil {
		return pricing.Greeks{}, fmt.Errorf("sweep at spot %.4f: %w", spot, err)
	}
	logger.Tracef("spot=%.4f price=%.6f delta=%.6f", spot, g.Price, g.Delta)
	return g, nil
}

func project(metric Metric, all []sample) Series {
	pts := make([]Point, len(all))
	for i, s := range all {
		pts[i] = Point{Spot: s.spot, Value: metric.Value(s.g)}
	}
	return Series{Metric: metric, Points: pts}
}

func projectAll(all []sample) map[Metric]Series {
	out := make(map[Metric]Series, len(Metrics))
	for _, m := range Metrics {
		out[m] = project(m, all)
	}
	return out
}
