package tradelog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrEmptyLog         = errors.New("trade log contains no trades")
	ErrMissingColumn    = errors.New("required column missing")
	ErrInvalidDirection = errors.New("direction must be long or short")
	ErrInvalidSize      = errors.New("size must be greater than zero")
	ErrInvalidTimestamp = errors.New("could not parse timestamp")
	ErrExitBeforeEntry  = errors.New("exit time precedes entry time")
)

var requiredColumns = []string{
	"timestamp_entry",
	"timestamp_exit",
	"symbol",
	"direction",
	"size",
	"pnl",
}

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadCSVFile reads and validates a trade log from a CSV file.
func LoadCSVFile(path string) ([]types.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade log: %w", err)
	}
	defer f.Close()

	return LoadCSV(f)
}

// LoadCSV reads a trade log from r and validates every row. The returned
// trades satisfy the analytics preconditions: all required fields present,
// direction normalized to lower case, size positive, exit at or after
// entry, at least one trade.
func LoadCSV(r io.Reader) ([]types.Trade, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyLog
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var trades []types.Trade
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		trade, err := parseTrade(record, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		trades = append(trades, trade)
	}

	if len(trades) == 0 {
		return nil, ErrEmptyLog
	}

	return trades, nil
}

func parseTrade(record []string, columns map[string]int) (types.Trade, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[columns[name]])
	}

	entry, err := parseTimestamp(field("timestamp_entry"))
	if err != nil {
		return types.Trade{}, fmt.Errorf("timestamp_entry: %w", err)
	}
	exit, err := parseTimestamp(field("timestamp_exit"))
	if err != nil {
		return types.Trade{}, fmt.Errorf("timestamp_exit: %w", err)
	}
	if exit.Before(entry) {
		return types.Trade{}, ErrExitBeforeEntry
	}

	direction := types.Direction(strings.ToLower(field("direction")))
	if direction != types.DirectionLong && direction != types.DirectionShort {
		return types.Trade{}, fmt.Errorf("%w: %q", ErrInvalidDirection, field("direction"))
	}

	size, err := decimal.NewFromString(field("size"))
	if err != nil {
		return types.Trade{}, fmt.Errorf("size: %w", err)
	}
	if !size.GreaterThan(decimal.Zero) {
		return types.Trade{}, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}

	pnl, err := decimal.NewFromString(field("pnl"))
	if err != nil {
		return types.Trade{}, fmt.Errorf("pnl: %w", err)
	}

	return types.Trade{
		EntryTime: entry,
		ExitTime:  exit,
		Symbol:    field("symbol"),
		Direction: direction,
		Size:      size,
		PnL:       pnl,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
