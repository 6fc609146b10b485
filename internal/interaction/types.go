// Package interaction resolves the covert operations a player can run
// against a character: investigate, cultivate, and denounce. Options are
// computed on demand from current state; execution spends the turn's
// interaction budget and action points and rolls against an injected
// random source.
package interaction

import (
	"errors"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// Category groups interaction methods.
type Category string

const (
	CategoryInvestigate  Category = "investigate"
	CategoryCultivate    Category = "cultivate"
	CategoryDenounce     Category = "denounce"
	CategoryLeaderAction Category = "leader_action" // host-defined actions for the top post
)

// Risk is a method's risk tier.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Outcome classifies an executed (or refused) interaction.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure means the roll went against the player. It is a normal
	// result carrying its own repercussions, not an error.
	OutcomeFailure Outcome = "failure"
	// OutcomePreconditionNotMet means nothing happened; Reason says why.
	OutcomePreconditionNotMet Outcome = "precondition_not_met"
)

var (
	// ErrUnknownMethod is returned for a method id outside the catalog.
	ErrUnknownMethod = errors.New("interaction: unknown method")
	// ErrWrongCategory is returned when a method is executed through the
	// operation of another category.
	ErrWrongCategory = errors.New("interaction: method belongs to another category")
	// ErrNoCharacter is returned when the target is nil.
	ErrNoCharacter = errors.New("interaction: no target character")
	// ErrReentrant is returned when an operation is started while another
	// is still resolving, e.g. from a notification callback.
	ErrReentrant = errors.New("interaction: re-entrant call while resolving")
)

// Player is the player's own position in the apparatus.
type Player struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Track         social.Track `json:"track"`
	PositionIndex int          `json:"position_index"`
}

// Budget is the per-turn allowance of interactions and action points.
type Budget struct {
	Turn                  int `json:"turn"`
	InteractionsRemaining int `json:"interactions_remaining"`
	MaxInteractions       int `json:"max_interactions"`
	ActionPoints          int `json:"action_points"`
	MaxActionPoints       int `json:"max_action_points"`
}

// Effects previews what an interaction can do.
type Effects struct {
	EvidenceMin    int         `json:"evidence_min,omitempty"`
	EvidenceMax    int         `json:"evidence_max,omitempty"`
	DispositionMin int         `json:"disposition_min,omitempty"`
	DispositionMax int         `json:"disposition_max,omitempty"`
	RevealChance   float64     `json:"reveal_chance,omitempty"`
	OnSuccess      stats.Delta `json:"on_success,omitempty"`
	OnFailure      stats.Delta `json:"on_failure,omitempty"`
}

// CharacterInteraction is a candidate operation against a character.
type CharacterInteraction struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Risk        Risk     `json:"risk"`
	CostAP      int      `json:"cost_ap"`
	Effects     Effects  `json:"effects"`
	FlavorText  string   `json:"flavor_text,omitempty"`

	// Disabled options are listed so the player can see what is missing.
	Disabled       bool   `json:"disabled,omitempty"`
	DisabledReason string `json:"disabled_reason,omitempty"`
}

// Check is the result of validating an interaction without running it.
type Check struct {
	OK     bool
	Reason string
}

// Result carries the fields common to every executed interaction.
type Result struct {
	Outcome     Outcome `json:"outcome"`
	Reason      string  `json:"reason,omitempty"`
	MethodID    string  `json:"method_id"`
	CostAP      int     `json:"cost_ap"`
	Probability float64 `json:"probability"`
	Summary     string  `json:"summary"`
	Flavor      string  `json:"flavor,omitempty"`
}

// Succeeded reports whether the roll favoured the player.
func (r Result) Succeeded() bool { return r.Outcome == OutcomeSuccess }

// Refused reports whether a precondition blocked the interaction.
func (r Result) Refused() bool { return r.Outcome == OutcomePreconditionNotMet }

// InvestigateResult is returned by Investigate.
type InvestigateResult struct {
	Result
	EvidenceGained      int  `json:"evidence_gained"`
	EvidenceLevel       int  `json:"evidence_level"`
	PersonalityRevealed bool `json:"personality_revealed"`
	TargetAlerted       bool `json:"target_alerted"`
	StatusChanged       bool `json:"status_changed"`
}

// TrustLevel describes the disposition band a character sits in.
type TrustLevel string

const (
	TrustHostile  TrustLevel = "hostile"
	TrustWary     TrustLevel = "wary"
	TrustNeutral  TrustLevel = "neutral"
	TrustFriendly TrustLevel = "friendly"
	TrustTrusted  TrustLevel = "trusted"
	TrustDevoted  TrustLevel = "devoted"
)

// TrustFor maps a disposition to its trust level.
func TrustFor(disposition int) TrustLevel {
	switch {
	case disposition < -50:
		return TrustHostile
	case disposition < 0:
		return TrustWary
	case disposition < 30:
		return TrustNeutral
	case disposition < 60:
		return TrustFriendly
	case disposition < 80:
		return TrustTrusted
	default:
		return TrustDevoted
	}
}

// CultivateResult is returned by Cultivate.
type CultivateResult struct {
	Result
	DispositionChange int         `json:"disposition_change"`
	Disposition       int         `json:"disposition"`
	Trust             TrustLevel  `json:"trust"`
	BecameAlly        bool        `json:"became_ally"`
	BecameProtege     bool        `json:"became_protege"`
	BecameAsset       bool        `json:"became_asset"`
	RivalryEnded      bool        `json:"rivalry_ended"`
	StatChanges       stats.Delta `json:"stat_changes,omitempty"`
}

// DenounceResult is returned by Denounce.
type DenounceResult struct {
	Result
	PreviousStatus    characters.Status `json:"previous_status"`
	NewStatus         characters.Status `json:"new_status"`
	StatusChanged     bool              `json:"status_changed"`
	Protection        int               `json:"protection"`
	EvidenceSpent     int               `json:"evidence_spent"`
	DispositionChange int               `json:"disposition_change"` // applied on failure
	Repercussions     stats.Delta       `json:"repercussions"`
	Backfired         bool              `json:"backfired"`
}

// FlavorSource supplies optional decorative text. The resolver appends it
// to results without interpreting it. outcome is empty for briefings.
type FlavorSource interface {
	Flavor(category Category, methodID string, outcome Outcome) string
}
