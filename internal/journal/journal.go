// Package journal keeps the player-facing history feed: one entry per
// resolved interaction, status change, or policy action. Entries carry data
// only; formatting is the presentation layer's job.
package journal

// DefaultLimit is the number of entries a Log retains.
const DefaultLimit = 1000

// Entry is one notable occurrence.
type Entry struct {
	Turn     int    `json:"turn" db:"turn"`
	Category string `json:"category" db:"category"` // "investigate", "cultivate", "denounce", "policy", "status", "turn"
	Actor    string `json:"actor" db:"actor"`
	Target   string `json:"target" db:"target"`
	Outcome  string `json:"outcome" db:"outcome"`
	Summary  string `json:"summary" db:"summary"`
}

// Recorder receives journal entries.
type Recorder interface {
	Record(e Entry)
}

// Log is an in-memory Recorder that keeps the most recent entries.
type Log struct {
	entries []Entry
	limit   int
}

// NewLog creates a Log retaining up to limit entries (DefaultLimit if
// limit <= 0).
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Record implements Recorder. The oldest entries are trimmed once the log
// exceeds its limit.
func (l *Log) Record(e Entry) {
	l.entries = append(l.entries, e)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

// Entries returns a copy of all retained entries, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns up to n entries, newest first.
func (l *Log) Recent(n int) []Entry {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// Discard is a Recorder that drops every entry.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(Entry) {}
