package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         serial PRIMARY KEY,
	name       text NOT NULL UNIQUE,
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS trades (
	id         bigserial PRIMARY KEY,
	run_id     integer NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
	entry_time timestamptz NOT NULL,
	exit_time  timestamptz NOT NULL,
	symbol     text NOT NULL,
	direction  text NOT NULL,
	size       numeric NOT NULL,
	pnl        numeric NOT NULL
);
CREATE INDEX IF NOT EXISTS trades_run_exit_idx ON trades (run_id, exit_time);
`

// tradeRow mirrors one row of the trades table.
type tradeRow struct {
	EntryTime time.Time
	ExitTime  time.Time
	Symbol    string
	Direction string
	Size      decimal.Decimal
	PnL       decimal.Decimal
}

// pgxStore implements the repository interfaces against PostgreSQL.
type pgxStore struct {
	pool *pgxpool.Pool
}

func (s *pgxStore) InsertRun(ctx context.Context, name string) (int32, error) {
	var id int32
	err := s.pool.QueryRow(ctx,
		`INSERT INTO runs (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, fmt.Errorf("run %s: %w", name, ErrDuplicateRun)
		}
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

func (s *pgxStore) GetRunByName(ctx context.Context, name string) (int32, error) {
	var id int32
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM runs WHERE name = $1`, name,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("run %s: %w", name, ErrRunNotFound)
		}
		return 0, fmt.Errorf("get run: %w", err)
	}
	return id, nil
}

// InsertTrades adds a batch of trades atomically.
func (s *pgxStore) InsertTrades(ctx context.Context, runID int32, rows []tradeRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO trades (run_id, entry_time, exit_time, symbol, direction, size, pnl)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, row := range rows {
		_, err := tx.Exec(ctx, query,
			runID, row.EntryTime, row.ExitTime, row.Symbol, row.Direction, row.Size, row.PnL,
		)
		if err != nil {
			return fmt.Errorf("insert trade: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *pgxStore) GetTradesByRun(ctx context.Context, runID int32) ([]tradeRow, error) {
	query := `
		SELECT entry_time, exit_time, symbol, direction, size, pnl
		FROM trades
		WHERE run_id = $1
		ORDER BY exit_time, id
	`
	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var result []tradeRow
	for rows.Next() {
		var row tradeRow
		if err := rows.Scan(
			&row.EntryTime, &row.ExitTime, &row.Symbol, &row.Direction, &row.Size, &row.PnL,
		); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	return result, nil
}

// PostgreSQL unique_violation error code.
const pgErrUniqueViolation = "23505"

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation
	}
	return false
}
