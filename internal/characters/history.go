package characters

// MaxHistory bounds the interaction history kept per character.
const MaxHistory = 50

// RecordOutcome classifies an interaction record.
type RecordOutcome string

const (
	RecordSuccess RecordOutcome = "success"
	RecordFailure RecordOutcome = "failure"
	RecordNeutral RecordOutcome = "neutral"
)

// InteractionRecord is one entry of a character's history with the player.
type InteractionRecord struct {
	Turn             int           `json:"turn"`
	Kind             string        `json:"kind"`
	Summary          string        `json:"summary"`
	DispositionDelta int           `json:"disposition_delta"`
	Outcome          RecordOutcome `json:"outcome"`
}

// AddRecord appends rec to the history. When full, the oldest record is
// dropped.
func (c *Character) AddRecord(rec InteractionRecord) {
	if len(c.History) >= MaxHistory {
		c.History = append(c.History[:0], c.History[len(c.History)-MaxHistory+1:]...)
	}
	c.History = append(c.History, rec)
}

// RecentHistory returns up to count records, newest first.
func (c *Character) RecentHistory(count int) []InteractionRecord {
	if count > len(c.History) {
		count = len(c.History)
	}
	out := make([]InteractionRecord, 0, count)
	for i := len(c.History) - 1; i >= 0 && len(out) < count; i-- {
		out = append(out, c.History[i])
	}
	return out
}
