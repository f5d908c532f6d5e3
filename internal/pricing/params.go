package pricing

import (
	"math"
	"strings"
)

// DaysPerYear is the day-count used to turn calendar days into year
// fractions (T = days / 365).
const DaysPerYear = 365.0

// OptionType selects the European option variant.
type OptionType string

const (
	Call OptionType = "c"
	Put  OptionType = "p"
)

// ParseOptionType accepts "c", "call", "p" or "put" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "call":
		return Call, nil
	case "p", "put":
		return Put, nil
	}
	return "", &ParamError{Field: "type", Value: s, Reason: "must be call or put"}
}

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return string(t)
}

// Params is the full input tuple of one evaluation.
//
// Fields:
//   - Spot: current price of the underlying (> 0)
//   - Strike: exercise price (> 0)
//   - Rate: continuously compounded risk-free rate (finite, usually in [0,1])
//   - T: time to expiry in years (> 0)
//   - Sigma: annualized volatility as a decimal (> 0)
//   - Type: Call or Put
type Params struct {
	Spot   float64    `json:"spot"`
	Strike float64    `json:"strike"`
	Rate   float64    `json:"rate"`
	T      float64    `json:"time_to_expiry"`
	Sigma  float64    `json:"volatility"`
	Type   OptionType `json:"option_type"`
}

// YearsFromDays converts a calendar-day count to a year fraction.
func YearsFromDays(days float64) float64 {
	return days / DaysPerYear
}

// WithSpot returns a copy of p with the spot replaced. Sweeps use it to
// move along the spot axis holding everything else fixed.
func (p Params) WithSpot(spot float64) Params {
	p.Spot = spot
	return p
}

// Validate checks every precondition the formulas need, including the
// option type. It returns a *ParamError wrapping ErrInvalidParameter.
func (p Params) Validate() error {
	if err := validateInputs(p.Spot, p.Strike, p.Rate, p.T, p.Sigma); err != nil {
		return err
	}
	switch p.Type {
	case Call, Put:
		return nil
	}
	return &ParamError{Field: "type", Value: string(p.Type), Reason: "must be call or put"}
}

func validateInputs(spot, strike, rate, t, sigma float64) error {
	checks := []struct {
		field string
		value float64
	}{
		{"spot", spot},
		{"strike", strike},
		{"time_to_expiry", t},
		{"volatility", sigma},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParamError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
		if c.value <= 0 {
			return &ParamError{Field: c.field, Value: c.value, Reason: "must be positive"}
		}
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return &ParamError{Field: "rate", Value: rate, Reason: "must be finite"}
	}
	return nil
}
