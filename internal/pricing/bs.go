// Package pricing implements the closed-form Black-Scholes model for
// European options: the option price and its first-order Greeks.
//
// Every function is pure. Inputs are validated on each call and failures
// come back as typed errors (ErrInvalidParameter, ErrNumericOverflow)
// rather than NaN or a silent fallback value.
//
// Units:
//   - T is in years; use YearsFromDays for a days/365 convention.
//   - Theta is per year (the unit of T). Greeks.ThetaPerDay rescales it.
//   - Vega and Rho are per one percentage point (scaled by 0.01).
package pricing

import "math"

// Greeks is one consistent evaluation of a contract: price and all five
// sensitivities derived from the same d1/d2 pair.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// ThetaPerDay returns theta per calendar day.
func (g Greeks) ThetaPerDay() float64 {
	return g.Theta / DaysPerYear
}

// Evaluate computes the price and all Greeks for p.
//
// d1 and d2 are computed once and shared by every quantity. The evaluation is
// atomic: on error the returned Greeks is the zero value.
//
// Parameters:
//   - p: contract and market inputs; see Params for the preconditions
//
// Returns:
//   - Greeks: price, delta, gamma, theta (per year), vega and rho (per 1%)
//   - error: *ParamError for invalid input, *OverflowError for non-finite output
func Evaluate(p Params) (Greeks, error) {
	tm, err := terms(p)
	if err != nil {
		return Greeks{}, err
	}

	g := Greeks{
		Price: price(p, tm),
		Delta: delta(p, tm),
		Gamma: gamma(p, tm),
		Theta: theta(p, tm),
		Vega:  vega(p, tm),
		Rho:   rho(p, tm),
	}

	for _, q := range []struct {
		name string
		v    float64
	}{
		{"price", g.Price},
		{"delta", g.Delta},
		{"gamma", g.Gamma},
		{"theta", g.Theta},
		{"vega", g.Vega},
		{"rho", g.Rho},
	} {
		if err := checkFinite(q.name, q.v); err != nil {
			return Greeks{}, err
		}
	}
	return g, nil
}

// Price returns the Black-Scholes value of the option.
//
//	Call: S·N(d1) − K·e^(−rT)·N(d2)
//	Put:  K·e^(−rT)·N(−d2) − S·N(−d1)
func Price(p Params) (float64, error) {
	return single(p, "price", price)
}

// Delta returns ∂V/∂S: N(d1) for a call, −N(−d1) for a put.
func Delta(p Params) (float64, error) {
	return single(p, "delta", delta)
}

// Gamma returns ∂²V/∂S², identical for calls and puts.
func Gamma(p Params) (float64, error) {
	return single(p, "gamma", gamma)
}

// Theta returns ∂V/∂t per year. Divide by 365 for a per-day figure.
func Theta(p Params) (float64, error) {
	return single(p, "theta", theta)
}

// Vega returns the price change per one percentage-point move in
// volatility, identical for calls and puts.
func Vega(p Params) (float64, error) {
	return single(p, "vega", vega)
}

// Rho returns the price change per one percentage-point move in the
// risk-free rate.
func Rho(p Params) (float64, error) {
	return single(p, "rho", rho)
}

// Intrinsic returns the zero-volatility limit of the price:
// max(S − K·e^(−rT), 0) for a call and max(K·e^(−rT) − S, 0) for a put.
// Sigma is not required to be positive here.
func Intrinsic(p Params) (float64, error) {
	sigma := p.Sigma
	if sigma == 0 {
		sigma = 1
	}
	if err := (Params{Spot: p.Spot, Strike: p.Strike, Rate: p.Rate, T: p.T, Sigma: sigma, Type: p.Type}).Validate(); err != nil {
		return 0, err
	}
	fwdStrike := p.Strike * math.Exp(-p.Rate*p.T)
	v := math.Max(p.Spot-fwdStrike, 0)
	if p.Type == Put {
		v = math.Max(fwdStrike-p.Spot, 0)
	}
	return v, checkFinite("intrinsic", v)
}

func terms(p Params) (Terms, error) {
	if err := p.Validate(); err != nil {
		return Terms{}, err
	}
	return computeTerms(p.Spot, p.Strike, p.Rate, p.T, p.Sigma)
}

func single(p Params, name string, f func(Params, Terms) float64) (float64, error) {
	tm, err := terms(p)
	if err != nil {
		return 0, err
	}
	v := f(p, tm)
	if err := checkFinite(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &OverflowError{Quantity: name, Value: v}
	}
	return nil
}

func discount(p Params) float64 {
	return math.Exp(-p.Rate * p.T)
}

func price(p Params, tm Terms) float64 {
	df := discount(p)
	if p.Type == Put {
		return p.Strike*df*NormCDF(-tm.D2) - p.Spot*NormCDF(-tm.D1)
	}
	return p.Spot*NormCDF(tm.D1) - p.Strike*df*NormCDF(tm.D2)
}

func delta(p Params, tm Terms) float64 {
	if p.Type == Put {
		return -NormCDF(-tm.D1)
	}
	return NormCDF(tm.D1)
}

func gamma(p Params, tm Terms) float64 {
	return NormPDF(tm.D1) / (p.Spot * p.Sigma * math.Sqrt(p.T))
}

func theta(p Params, tm Terms) float64 {
	decay := -(p.Spot * NormPDF(tm.D1) * p.Sigma) / (2 * math.Sqrt(p.T))
	carry := p.Rate * p.Strike * discount(p)
	if p.Type == Put {
		return decay + carry*NormCDF(-tm.D2)
	}
	return decay - carry*NormCDF(tm.D2)
}

func vega(p Params, tm Terms) float64 {
	return p.Spot * math.Sqrt(p.T) * NormPDF(tm.D1) * 0.01
}

func rho(p Params, tm Terms) float64 {
	k := 0.01 * p.Strike * p.T * discount(p)
	if p.Type == Put {
		return -k * NormCDF(-tm.D2)
	}
	return k * NormCDF(tm.D2)
}
