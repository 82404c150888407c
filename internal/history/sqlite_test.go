package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRecorder(t *testing.T, clock clockwork.Clock) *SQLiteRecorder {
	t.Helper()
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })
	return rec
}

func TestRecordAndReadDays(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	rec := openRecorder(t, clock)

	for day := 3; day >= 1; day-- {
		require.NoError(t, rec.RecordDay(ctx, &DayRecord{
			GameID:      "game-a",
			Day:         day,
			Season:      "spring",
			Weather:     "sunny",
			Temperature: "warm",
			Price:       15,
			Rented:      day * 2,
			Broken:      1,
			Revenue:     float64(day*2) * 15,
			CashAfter:   100 + float64(day*30),
		}))
	}
	require.NoError(t, rec.RecordDay(ctx, &DayRecord{GameID: "game-b", Day: 1}))

	days, err := rec.Days(ctx, "game-a")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{days[0].Day, days[1].Day, days[2].Day})
	assert.Equal(t, 4, days[1].Rented)
	assert.Equal(t, 60.0, days[1].Revenue)
	assert.Equal(t, "sunny", days[0].Weather)
	assert.True(t, days[0].RecordedAt.Equal(clock.Now()))
}

func TestRecordDayKeepsExplicitTimestamp(t *testing.T) {
	ctx := context.Background()
	rec := openRecorder(t, clockwork.NewFakeClock())
	at := time.Date(2023, time.January, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, rec.RecordDay(ctx, &DayRecord{GameID: "g", Day: 1, RecordedAt: at}))

	days, err := rec.Days(ctx, "g")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.True(t, days[0].RecordedAt.Equal(at))
}

func TestDaysUnknownGame(t *testing.T) {
	rec := openRecorder(t, nil)
	days, err := rec.Days(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := NewSQLiteRecorder(path, clockwork.NewFakeClock())
	require.NoError(t, err)
	require.NoError(t, first.RecordDay(ctx, &DayRecord{GameID: "g", Day: 1, Rented: 5}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteRecorder(path, clockwork.NewFakeClock())
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	days, err := second.Days(ctx, "g")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 5, days[0].Rented)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	require.NoError(t, r.RecordDay(context.Background(), &DayRecord{GameID: "g", Day: 1}))
	days, err := r.Days(context.Background(), "g")
	require.NoError(t, err)
	assert.Empty(t, days)
	assert.NoError(t, r.Close())
}
