package repository

import (
	"context"
	"errors"
	"fmt"

	"tradestats/types"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
)

// Global error declarations.
var (
	ErrRunNotFound  = errors.New("run not found in datasource")
	ErrNoTrades     = errors.New("no trades found for run")
	ErrDuplicateRun = errors.New("run name already exists")
)

const insertBatchSize = 500

type runsRepository interface {
	InsertRun(ctx context.Context, name string) (int32, error)
	GetRunByName(ctx context.Context, name string) (int32, error)
}
type tradesRepository interface {
	InsertTrades(ctx context.Context, runID int32, rows []tradeRow) error
	GetTradesByRun(ctx context.Context, runID int32) ([]tradeRow, error)
}

// Database struct that holds the database connection and queries.
type Database struct {
	runs   runsRepository
	trades tradesRepository
	conn   *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	store := &pgxStore{pool: conn}
	return Database{
		runs:   store,
		trades: store,
		conn:   conn,
	}, nil
}

// Migrate creates the runs and trades tables if they do not exist.
func (db *Database) Migrate(ctx context.Context) error {
	_, err := db.conn.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (db *Database) Close() {
	db.conn.Close()
}

// SaveTradeLog persists a validated trade log under a run name. Trades are
// written in batches behind a progress bar since imported logs can be large.
func (db *Database) SaveTradeLog(run string, trades []types.Trade, ctx context.Context) error {
	runID, err := db.runs.InsertRun(ctx, run)
	if err != nil {
		return err
	}

	bar := initProgressBar(len(trades), run)
	for start := 0; start < len(trades); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(trades) {
			end = len(trades)
		}

		rows := make([]tradeRow, 0, end-start)
		for _, tr := range trades[start:end] {
			rows = append(rows, tradeRow{
				EntryTime: tr.EntryTime,
				ExitTime:  tr.ExitTime,
				Symbol:    tr.Symbol,
				Direction: string(tr.Direction),
				Size:      tr.Size,
				PnL:       tr.PnL,
			})
		}
		if err := db.trades.InsertTrades(ctx, runID, rows); err != nil {
			return err
		}
		bar.Add(end - start)
	}

	return nil
}

// GetTradeLog retrieves the trades saved under a run name, ordered by exit
// time.
func (db *Database) GetTradeLog(run string, ctx context.Context) ([]types.Trade, error) {
	runID, err := db.runs.GetRunByName(ctx, run)
	if err != nil {
		return nil, err
	}

	rows, err := db.trades.GetTradesByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("run %s: %w", run, ErrNoTrades)
	}

	return convertTrades(rows), nil
}

func convertTrades(rows []tradeRow) []types.Trade {
	var trades []types.Trade
	for _, row := range rows {
		trades = append(trades, types.Trade{
			EntryTime: row.EntryTime,
			ExitTime:  row.ExitTime,
			Symbol:    row.Symbol,
			Direction: types.Direction(row.Direction),
			Size:      row.Size,
			PnL:       row.PnL,
		})
	}
	return trades
}

func initProgressBar(maxTicks int, run string) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription(fmt.Sprintf("Importing %s...", run)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
