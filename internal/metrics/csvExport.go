package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"tradestats/types"
)

// WriteEquityCurveCSVFile writes the equity curve to a CSV file at the
// given path.
func WriteEquityCurveCSVFile(path string, curve []types.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity curve file: %w", err)
	}
	defer f.Close()

	return WriteEquityCurveCSV(f, curve)
}

// WriteEquityCurveCSV writes the equity curve to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func WriteEquityCurveCSV(w io.Writer, curve []types.EquityPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"timestamp", // RFC3339
		"balance",
		"pnl",
		"return_pct",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range curve {
		record := []string{
			p.Timestamp.Format(time.RFC3339),
			p.Balance.String(),
			p.PnL.String(),
			// FormatFloat keeps infinities readable ("+Inf"), which
			// the documented degenerate-data results rely on.
			strconv.FormatFloat(p.ReturnPct, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
