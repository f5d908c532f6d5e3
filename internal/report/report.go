// Package report renders evaluations and sweeps as text, JSON and CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/sweep"
)

// DefaultPlaces is the display precision of the calculator summary.
const DefaultPlaces = 2

// Result is the full output of one CLI run.
type Result struct {
	Params    pricing.Params                `json:"params"`
	Greeks    pricing.Greeks                `json:"greeks"`
	Intrinsic float64                       `json:"intrinsic"`
	Sweep     sweep.Range                   `json:"sweep_range"`
	Series    map[sweep.Metric]sweep.Series `json:"series,omitempty"`
}

// Row is one labelled, rounded value.
type Row struct {
	Label string
	Value string
}

// FormatGreeks rounds every quantity half away from zero to places digits.
func FormatGreeks(g pricing.Greeks, places int32) []Row {
	f := func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(places)
	}
	return []Row{
		{"Option Price", f(g.Price)},
		{"Delta", f(g.Delta)},
		{"Gamma", f(g.Gamma)},
		{"Theta", f(g.Theta)},
		{"Vega", f(g.Vega)},
		{"Rho", f(g.Rho)},
	}
}

// WriteSummary prints the point evaluation as aligned "label: value" lines.
func WriteSummary(w io.Writer, p pricing.Params, g pricing.Greeks, places int32) error {
	if _, err := fmt.Fprintf(w, "%s S=%s K=%s r=%s T=%sy vol=%s\n",
		p.Type,
		decimal.NewFromFloat(p.Spot).String(),
		decimal.NewFromFloat(p.Strike).String(),
		decimal.NewFromFloat(p.Rate).String(),
		decimal.NewFromFloat(p.T).StringFixed(4),
		decimal.NewFromFloat(p.Sigma).String(),
	); err != nil {
		return err
	}
	for _, row := range FormatGreeks(g, places) {
		if _, err := fmt.Fprintf(w, "%-13s %s\n", row.Label+":", row.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes res to <outdir>/greeks.json.
func WriteJSON(res *Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "greeks.json"), b, 0644)
}

// WriteCSV writes the series to <outdir>/sweep.csv with one row per spot
// and one column per metric. All series must share the same spot grid.
func WriteCSV(series map[sweep.Metric]sweep.Series, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "sweep.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeCSV(f, series); err != nil {
		return err
	}
	return f.Close()
}

// EncodeCSV is WriteCSV against an arbitrary writer.
func EncodeCSV(w io.Writer, series map[sweep.Metric]sweep.Series) error {
	cols := make([]sweep.Metric, 0, len(series))
	for _, m := range sweep.Metrics {
		if _, ok := series[m]; ok {
			cols = append(cols, m)
		}
	}
	if len(cols) == 0 {
		return fmt.Errorf("no series to write")
	}

	n := len(series[cols[0]].Points)
	for _, m := range cols[1:] {
		if len(series[m].Points) != n {
			return fmt.Errorf("series %s has %d points, expected %d", m, len(series[m].Points), n)
		}
	}

	cw := csv.NewWriter(w)
	headers := []string{"spot"}
	for _, m := range cols {
		headers = append(headers, string(m))
	}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		row := []string{strconv.FormatFloat(series[cols[0]].Points[i].Spot, 'f', -1, 64)}
		for _, m := range cols {
			row = append(row, strconv.FormatFloat(series[m].Points[i].Value, 'g', 10, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
