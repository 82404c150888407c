package history

import "context"

// NoopRecorder is used when no history database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDay(_ context.Context, _ *DayRecord) error { return nil }
func (n *NoopRecorder) Days(_ context.Context, _ string) ([]DayRecord, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
