package workflow

import (
	"time"

	"lotr-ingest/internal/model"
)

// DefaultLogCapacity is the number of entries the panel retains.
const DefaultLogCapacity = 50

// LogPanel is a bounded, newest-first event log.
type LogPanel struct {
	capacity int
	entries  []model.LogEntry
	now      func() time.Time
}

func NewLogPanel(capacity int) *LogPanel {
	if capacity < 1 {
		capacity = DefaultLogCapacity
	}
	return &LogPanel{capacity: capacity, now: time.Now}
}

// Add inserts at the front. When that pushes the panel over capacity, the oldest
// entry is evicted.
func (p *LogPanel) Add(message string, isError bool) {
	e := model.LogEntry{Message: message, IsError: isError, At: p.now()}
	p.entries = append(p.entries, model.LogEntry{})
	copy(p.entries[1:], p.entries)
	p.entries[0] = e
	if len(p.entries) > p.capacity {
		p.entries = p.entries[:len(p.entries)-1]
	}
}

// Entries returns a copy, newest first.
func (p *LogPanel) Entries() []model.LogEntry {
	out := make([]model.LogEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *LogPanel) Len() int      { return len(p.entries) }
func (p *LogPanel) Capacity() int { return p.capacity }
