package pricing

import "math"

// Terms holds the standardized log-moneyness terms shared by the price and
// every Greek. Compute them once per evaluation so all outputs agree.
type Terms struct {
	D1 float64
	D2 float64
}

// ComputeTerms returns d1 and d2:
//
//	d1 = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
//	d2 = d1 − σ·√T
//
// spot, strike, t and sigma must be strictly positive and finite; rate must
// be finite. Violations return a *ParamError.
func ComputeTerms(spot, strike, rate, t, sigma float64) (Terms, error) {
	if err := validateInputs(spot, strike, rate, t, sigma); err != nil {
		return Terms{}, err
	}
	return computeTerms(spot, strike, rate, t, sigma)
}

func computeTerms(spot, strike, rate, t, sigma float64) (Terms, error) {
	volSqrtT := sigma * math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*t) / volSqrtT
	d2 := d1 - volSqrtT

	if math.IsNaN(d1) || math.IsNaN(d2) {
		return Terms{}, &OverflowError{Quantity: "d1", Value: d1}
	}
	return Terms{D1: d1, D2: d2}, nil
}
