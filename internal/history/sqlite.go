package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists rental days to a SQLite database.
type SQLiteRecorder struct {
	db    *sql.DB
	clock clockwork.Clock
	mu    sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, clock clockwork.Clock) (*SQLiteRecorder, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, clock: clock}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rental_days (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id      TEXT NOT NULL,
			day          INTEGER NOT NULL,
			recorded_at  INTEGER NOT NULL,
			season       TEXT,
			weather      TEXT,
			temperature  TEXT,
			price        REAL,
			rented       INTEGER,
			broken       INTEGER,
			revenue      REAL,
			cash_after   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rental_days_game ON rental_days(game_id, day)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordDay stores rec. A zero RecordedAt is stamped with the recorder's clock.
func (r *SQLiteRecorder) RecordDay(ctx context.Context, rec *DayRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = r.clock.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO rental_days
		(game_id, day, recorded_at, season, weather, temperature,
		 price, rented, broken, revenue, cash_after)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.GameID, rec.Day, rec.RecordedAt.Unix(), rec.Season, rec.Weather, rec.Temperature,
		rec.Price, rec.Rented, rec.Broken, rec.Revenue, rec.CashAfter,
	)
	if err != nil {
		return fmt.Errorf("record day %d: %w", rec.Day, err)
	}
	return nil
}

func (r *SQLiteRecorder) Days(ctx context.Context, gameID string) ([]DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `SELECT
		game_id, day, recorded_at, season, weather, temperature,
		price, rented, broken, revenue, cash_after
		FROM rental_days WHERE game_id = ? ORDER BY day, id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []DayRecord
	for rows.Next() {
		var (
			rec DayRecord
			ts  int64
		)
		if err := rows.Scan(&rec.GameID, &rec.Day, &ts, &rec.Season, &rec.Weather, &rec.Temperature,
			&rec.Price, &rec.Rented, &rec.Broken, &rec.Revenue, &rec.CashAfter); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		rec.RecordedAt = time.Unix(ts, 0).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	return out, nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
