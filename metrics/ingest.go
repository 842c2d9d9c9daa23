package metrics

import "sync/atomic"

// Outcome is what happened to one ingested item.
type Outcome string

const (
	Inserted Outcome = "inserted"
	Merged   Outcome = "merged"
	Skipped  Outcome = "skipped"
	Errored  Outcome = "error"
)

// IngestMetrics counts the outcomes of one ingestion batch.
type IngestMetrics struct {
	Inserted atomic.Int32
	Merged   atomic.Int32
	Skipped  atomic.Int32
	Errors   atomic.Int32
	Total    atomic.Int32
}

func (m *IngestMetrics) Add(o Outcome) {
	m.Total.Add(1)
	switch o {
	case Inserted:
		m.Inserted.Add(1)
	case Merged:
		m.Merged.Add(1)
	case Skipped:
		m.Skipped.Add(1)
	case Errored:
		m.Errors.Add(1)
	}
}
