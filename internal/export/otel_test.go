package export

import (
	"context"
	"testing"
)

func TestRecordEntryDoesNotPanicOnNilMetrics(t *testing.T) {
	var m *Metrics
	m.RecordEntry(context.Background(), Entry{Solved: true}, 12.5)
}

func TestRecordEntryAcceptsSolvedAndFailedEntries(t *testing.T) {
	m := NewMetrics()
	m.RecordEntry(context.Background(), Entry{Name: "ok", Solved: true, MIPGap: 0.01}, 5)
	m.RecordEntry(context.Background(), Entry{Name: "bad", Solved: false, Error: "infeasible"}, 7)
}
