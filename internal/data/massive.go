package data

import (
	"context"
	"fmt"

	massive "github.com/massive-com/client-go/v2/rest"
	"github.com/massive-com/client-go/v2/rest/models"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/logger"
)

// prevCloseClient is the slice of the Massive REST client this package uses.
type prevCloseClient interface {
	GetPreviousCloseAgg(ctx context.Context, params *models.GetPreviousCloseAggParams, options ...models.RequestOption) (*models.GetPreviousCloseAggResponse, error)
}

// massiveSpotProvider resolves spot prices from Massive's previous-close
// aggregate endpoint.
type massiveSpotProvider struct {
	client prevCloseClient
}

// NewMassiveSpotProvider builds a provider backed by the Massive SDK.
//
// Parameters:
//   - apiKey: Massive API key used for every request
func NewMassiveSpotProvider(apiKey string) SpotProvider {
	logger.Infof("initializing Massive spot provider")
	return &massiveSpotProvider{client: massive.New(apiKey)}
}

// Spot returns the adjusted close of the most recent trading session.
func (m *massiveSpotProvider) Spot(ctx context.Context, ticker string) (float64, error) {
	t, err := normalizeTicker(ticker)
	if err != nil {
		return 0, err
	}

	logger.Debugf("previous close request: %s", t)

	params := models.GetPreviousCloseAggParams{Ticker: t}.WithAdjusted(true)
	resp, err := m.client.GetPreviousCloseAgg(ctx, params)
	if err != nil {
		logger.Errorf("massive previous close failed for %s: %v", t, err)
		return 0, fmt.Errorf("massive previous close %s: %w", t, err)
	}
	if resp == nil || len(resp.Results) == 0 {
		return 0, fmt.Errorf("massive returned no previous close for %s", t)
	}

	last := resp.Results[len(resp.Results)-1].Close
	if err := checkSpot(t, last); err != nil {
		return 0, err
	}

	logger.Tracef("previous close %s=%.4f", t, last)
	return last, nil
}
