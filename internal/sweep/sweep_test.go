package sweep

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
)

func baseParams(typ pricing.OptionType) pricing.Params {
	return pricing.Params{Strike: 100, Rate: 0.03, T: pricing.YearsFromDays(180), Sigma: 0.25, Type: typ}
}

func TestDefaultRange(t *testing.T) {
	rng := DefaultRange(100)
	if rng != (Range{Start: 1, End: 149, Step: 1}) {
		t.Fatalf("unexpected default range: %+v", rng)
	}

	spots, err := rng.Spots()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spots) != 149 || spots[0] != 1 || spots[148] != 149 {
		t.Fatalf("unexpected grid: len=%d first=%v last=%v", len(spots), spots[0], spots[len(spots)-1])
	}

	if got := DefaultRange(100.9).End; got != 149 {
		t.Fatalf("expected fractional spot to truncate, got end %v", got)
	}
}

func TestRangeSpots_Fractional(t *testing.T) {
	spots, err := Range{Start: 90, End: 91, Step: 0.1}.Spots()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spots) != 11 {
		t.Fatalf("expected 11 points, got %d: %v", len(spots), spots)
	}
}

func TestRangeSpots_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rng  Range
	}{
		{"zero step", Range{Start: 1, End: 10, Step: 0}},
		{"negative step", Range{Start: 1, End: 10, Step: -1}},
		{"zero start", Range{Start: 0, End: 10, Step: 1}},
		{"end before start", Range{Start: 10, End: 5, Step: 1}},
		{"too many points", Range{Start: 1, End: 1e9, Step: 1}},
		{"count beyond int range", Range{Start: 1, End: 1e19, Step: 1}},
		{"infinite count", Range{Start: 1, End: 1e300, Step: 1e-300}},
	}
	for _, test := range tests {
		if _, err := test.rng.Spots(); err == nil {
			t.Fatalf("%s: expected error", test.name)
		}
	}
}

func TestGenerate_MatchesPointEvaluation(t *testing.T) {
	base := baseParams(pricing.Call)
	series, err := Generate(base, MetricDelta, Range{Start: 80, End: 120, Step: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Metric != MetricDelta || len(series.Points) != 9 {
		t.Fatalf("unexpected series: %+v", series)
	}
	for _, pt := range series.Points {
		want, err := pricing.Delta(base.WithSpot(pt.Spot))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pt.Value != want {
			t.Fatalf("spot %v: expected %v, got %v", pt.Spot, want, pt.Value)
		}
	}
}

func TestGenerate_Monotonicity(t *testing.T) {
	call, err := Generate(baseParams(pricing.Call), MetricPrice, DefaultRange(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	put, err := Generate(baseParams(pricing.Put), MetricPrice, DefaultRange(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(call.Points); i++ {
		if call.Points[i].Value < call.Points[i-1].Value {
			t.Fatalf("call price decreased between spots %v and %v", call.Points[i-1].Spot, call.Points[i].Spot)
		}
		if put.Points[i].Value > put.Points[i-1].Value {
			t.Fatalf("put price increased between spots %v and %v", put.Points[i-1].Spot, put.Points[i].Spot)
		}
	}
}

func TestGenerateAll_AllMetrics(t *testing.T) {
	all, err := GenerateAll(baseParams(pricing.Put), Range{Start: 50, End: 150, Step: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != len(Metrics) {
		t.Fatalf("expected %d series, got %d", len(Metrics), len(all))
	}
	for _, m := range Metrics {
		if len(all[m].Points) != 11 {
			t.Fatalf("%s: expected 11 points, got %d", m, len(all[m].Points))
		}
	}
}

func TestGenerateParallel_EqualsSequential(t *testing.T) {
	base := baseParams(pricing.Call)
	rng := Range{Start: 1, End: 300, Step: 0.5}

	seq, err := GenerateAll(base, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	par, err := GenerateParallel(context.Background(), base, rng, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Fatalf("parallel sweep differs from sequential sweep")
	}
}

func TestGenerate_PropagatesInvalidParameter(t *testing.T) {
	base := baseParams(pricing.Call)
	base.Sigma = 0

	if _, err := Generate(base, MetricPrice, DefaultRange(100)); !errors.Is(err, pricing.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := GenerateParallel(context.Background(), base, DefaultRange(100), 4); !errors.Is(err, pricing.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter from parallel sweep, got %v", err)
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric(" Vega ")
	if err != nil || m != MetricVega {
		t.Fatalf("expected vega, got %q (%v)", m, err)
	}
	if _, err := ParseMetric("vanna"); err == nil {
		t.Fatalf("expected error for unknown metric")
	}
}
