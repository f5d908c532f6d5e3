package pricing

import "gonum.org/v1/gonum/stat/distuv"

// NormCDF returns the cumulative distribution function of the standard
// normal distribution at x. It saturates to 0 and 1 in the tails.
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormPDF returns the standard normal density at x.
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
