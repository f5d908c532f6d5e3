// Package testutil holds helpers shared by package tests.
package testutil

import (
	"math"
	"testing"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
)

// ScenarioParams is the default input set of the calculator page:
// S=100, K=100, r=0.03, 180 days (T=180/365), sigma=0.25, call.
func ScenarioParams() pricing.Params {
	return pricing.Params{
		Spot:   100,
		Strike: 100,
		Rate:   0.03,
		T:      pricing.YearsFromDays(180),
		Sigma:  0.25,
		Type:   pricing.Call,
	}
}

// ReferenceParams is the textbook case S=100, K=100, r=0.05, sigma=0.2, T=1,
// which gives d1=0.35 and d2=0.15.
func ReferenceParams(typ pricing.OptionType) pricing.Params {
	return pricing.Params{Spot: 100, Strike: 100, Rate: 0.05, T: 1, Sigma: 0.2, Type: typ}
}

// AlmostEqual reports whether a and b differ by at most tol.
func AlmostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// AssertClose fails the test when got is further than tol from want.
func AssertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if !AlmostEqual(got, want, tol) {
		t.Fatalf("%s mismatch: got=%.10f want=%.10f (tol %g)", name, got, want, tol)
	}
}
