// Package data supplies the underlying spot price fed into the pricing
// engine when the user picks a ticker instead of typing a spot.
package data

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// SpotProvider returns the latest usable price of an underlying.
type SpotProvider interface {
	Spot(ctx context.Context, ticker string) (float64, error)
}

// staticProvider always answers with a fixed price.
type staticProvider struct {
	price float64
}

// NewStaticProvider returns a provider that reports price for any ticker.
func NewStaticProvider(price float64) SpotProvider {
	return &staticProvider{price: price}
}

func (s *staticProvider) Spot(_ context.Context, ticker string) (float64, error) {
	if err := checkSpot(ticker, s.price); err != nil {
		return 0, err
	}
	return s.price, nil
}

// normalizeTicker upper-cases and trims a ticker, rejecting empty input.
func normalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", fmt.Errorf("empty ticker")
	}
	return t, nil
}

func checkSpot(ticker string, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return fmt.Errorf("no usable spot for %s (got %v)", ticker, price)
	}
	return nil
}
