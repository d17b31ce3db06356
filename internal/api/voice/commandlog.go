package voice

import (
	"sync"
	"time"

	"PharmaPOS/internal/entity"
)

const defaultLogCapacity = 200

// CommandLog keeps the utterances heard on a terminal together with the
// command each one resolved to. Entries are never mutated after append;
// once the capacity is reached the oldest entries are dropped.
type CommandLog struct {
	mu       sync.Mutex
	capacity int
	entries  []entity.CommandLogEntry
}

func NewCommandLog(capacity int) *CommandLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &CommandLog{capacity: capacity}
}

func (l *CommandLog) Append(raw, corrected string, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entity.CommandLogEntry{
		Raw:       raw,
		Corrected: corrected,
		Timestamp: at,
	})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Recent returns up to n entries, newest first.
func (l *CommandLog) Recent(n int) []entity.CommandLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]entity.CommandLogEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *CommandLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
