// Package history keeps a per-day ledger of rentals so players can look
// back at how earlier days went.
package history

import (
	"context"
	"time"
)

// DayRecord is one settled rental day.
type DayRecord struct {
	GameID      string
	Day         int
	Season      string
	Weather     string
	Temperature string
	Price       float64
	Rented      int
	Broken      int
	Revenue     float64
	CashAfter   float64
	RecordedAt  time.Time
}

// Recorder persists rental days.
type Recorder interface {
	RecordDay(ctx context.Context, rec *DayRecord) error
	// Days returns a game's records ordered by day.
	Days(ctx context.Context, gameID string) ([]DayRecord, error)
	Close() error
}
