// Package characters provides the non-player character model, its status
// lifecycle, and the registry that owns every tracked official.
package characters

import (
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// Bounds of the per-character scalars.
const (
	MinDisposition = -100
	MaxDisposition = 100
	MinEvidence    = 0
	MaxEvidence    = 100
	MaxAlertLevel  = 3
)

// PlayerID is the protector id recorded when the player takes a character
// under their wing.
const PlayerID = "player"

// Personality is the fixed trait vector of a character. Each trait is 0-100.
type Personality struct {
	Ambitious int `json:"ambitious"`
	Paranoid  int `json:"paranoid"`
	Ruthless  int `json:"ruthless"`
	Competent int `json:"competent"`
	Loyal     int `json:"loyal"`
	Corrupt   int `json:"corrupt"`
}

// Traits returns the six traits in declaration order.
func (p Personality) Traits() [6]int {
	return [6]int{p.Ambitious, p.Paranoid, p.Ruthless, p.Competent, p.Loyal, p.Corrupt}
}

// Bonds records the one-time milestones reached with the player through
// cultivation. Once set a flag is never cleared.
type Bonds struct {
	Ally         bool `json:"ally"`
	Protege      bool `json:"protege"`
	Asset        bool `json:"asset"`
	RivalryEnded bool `json:"rivalry_ended"`
}

// Character is a tracked official.
type Character struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Title         string         `json:"title"`
	Faction       social.Faction `json:"faction"`
	Track         social.Track   `json:"track"`
	PositionIndex int            `json:"position_index"`

	Personality    Personality `json:"personality"`
	FactionLoyalty int         `json:"faction_loyalty"` // 0-100

	// Relationship with the player.
	Disposition   int   `json:"disposition"`    // -100 hostile .. 100 devoted
	EvidenceLevel int   `json:"evidence_level"` // 0-100 incriminating material held
	IsPatron      bool  `json:"is_patron"`
	IsRival       bool  `json:"is_rival"`
	Bonds         Bonds `json:"bonds"`
	AlertLevel    int   `json:"alert_level"` // 0-3, raised when an investigation is noticed

	// ProtectorID is the id of the character (or PlayerID) shielding this one.
	ProtectorID string `json:"protector_id,omitempty"`

	// Lifecycle.
	Status            Status `json:"status"`
	StatusChangedTurn int    `json:"status_changed_turn"`
	StatusDetails     string `json:"status_details,omitempty"`
	MightReturn       bool   `json:"might_return,omitempty"`
	ReturnProbability int    `json:"return_probability,omitempty"` // percent
	LastDenouncedTurn *int   `json:"last_denounced_turn,omitempty"`

	History []InteractionRecord `json:"history,omitempty"`

	WasDiscoveredDynamically bool `json:"was_discovered_dynamically"`
	IsFullyRevealed          bool `json:"is_fully_revealed"`
	IntroducedTurn           int  `json:"introduced_turn"`
}

// AdjustDisposition shifts disposition by delta within its bounds and
// returns the change actually applied.
func (c *Character) AdjustDisposition(delta int) int {
	before := c.Disposition
	c.Disposition = stats.Clamp(before+delta, MinDisposition, MaxDisposition)
	return c.Disposition - before
}

// AddEvidence raises the evidence level by delta (negative deltas are
// ignored) and returns the amount actually added.
func (c *Character) AddEvidence(delta int) int {
	if delta <= 0 {
		return 0
	}
	before := c.EvidenceLevel
	c.EvidenceLevel = stats.Clamp(before+delta, MinEvidence, MaxEvidence)
	return c.EvidenceLevel - before
}

// SpendEvidence empties the evidence file and returns what it held.
func (c *Character) SpendEvidence() int {
	spent := c.EvidenceLevel
	c.EvidenceLevel = 0
	return spent
}

// RaiseAlert increments the alert level up to MaxAlertLevel and reports
// whether it changed.
func (c *Character) RaiseAlert() bool {
	if c.AlertLevel >= MaxAlertLevel {
		return false
	}
	c.AlertLevel++
	return true
}

// Reveal exposes the character's personality to the player. It reports
// whether this call did the revealing.
func (c *Character) Reveal() bool {
	if c.IsFullyRevealed {
		return false
	}
	c.IsFullyRevealed = true
	return true
}

// TurnsSinceDenounced returns how many turns have passed since the last
// denunciation, and false if the character was never denounced.
func (c *Character) TurnsSinceDenounced(turn int) (int, bool) {
	if c.LastDenouncedTurn == nil {
		return 0, false
	}
	return turn - *c.LastDenouncedTurn, true
}
