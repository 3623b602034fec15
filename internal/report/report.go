// Package report writes pricing results as JSON, CSV, and a terminal
// table, and computes summary statistics over a batch.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	"github.com/contactkeval/option-pricing/internal/scenario"
)

// WriteJSON writes the full result set to results.json under outdir.
func WriteJSON(results []scenario.Result, outdir string) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "results.json"), b, 0644)
}

// WriteCSV writes the result set to results.csv under outdir.
func WriteCSV(results []scenario.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "results.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&results, f)
}

// RenderTable prints results as an aligned table.
func RenderTable(w io.Writer, results []scenario.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Method", "Price", "Std Error", "Elapsed", "Error"})
	for _, r := range results {
		stderr := ""
		if r.StdError > 0 {
			stderr = fmt.Sprintf("%.6f", r.StdError)
		}
		table.Append([]string{
			r.Name,
			r.Method,
			fmt.Sprintf("%.6f", r.Price),
			stderr,
			r.Elapsed.String(),
			r.Err,
		})
	}
	table.Render()
}

// Summary aggregates the prices of the successfully priced scenarios.
type Summary struct {
	Count  int     `json:"count"`
	Failed int     `json:"failed"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes batch summary statistics over successful results.
func Summarize(results []scenario.Result) Summary {
	var prices []float64
	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
			continue
		}
		prices = append(prices, r.Price)
	}
	s := Summary{Count: len(prices), Failed: failed}
	if len(prices) == 0 {
		return s
	}
	s.Mean, _ = stats.Mean(prices)
	s.Min, _ = stats.Min(prices)
	s.Max, _ = stats.Max(prices)
	return s
}
