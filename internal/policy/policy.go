// Package policy governs the institutional policy slots of the state. Each
// slot holds mutually exclusive options; exactly one is current at any time.
// Changes go through a proposal that takes effect at the next turn
// resolution, or through an immediate decree where decrees are permitted.
package policy

import (
	"errors"
	"slices"

	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// Category classifies a slot.
type Category string

const (
	// CategoryInstitutional slots can never be changed by decree.
	CategoryInstitutional Category = "institutional"
	CategoryEconomic      Category = "economic"
	CategorySecurity      Category = "security"
	CategorySocial        Category = "social"
	CategoryForeign       Category = "foreign"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryInstitutional, CategoryEconomic, CategorySecurity, CategorySocial, CategoryForeign:
		return true
	}
	return false
}

// Route is the path a policy change takes.
type Route string

const (
	RoutePropose Route = "propose"
	RouteDecree  Route = "decree"
)

var (
	// ErrUnknownSlot is returned for a slot id that is not registered.
	ErrUnknownSlot = errors.New("policy: unknown slot")
	// ErrUnknownOption is returned for an option id the slot does not hold.
	ErrUnknownOption = errors.New("policy: unknown option")
	// ErrInvalidSlot is returned by Add for a malformed slot.
	ErrInvalidSlot = errors.New("policy: invalid slot")
)

// Effects is what an option does once it becomes current.
type Effects struct {
	Stats          stats.Delta `json:"stats,omitempty"`
	EnablesDecrees bool        `json:"enables_decrees,omitempty"`
	EnablesPurges  bool        `json:"enables_purges,omitempty"`
}

// Option is one choice of a slot.
type Option struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Effects              Effects          `json:"effects"`
	MinimumPowerRequired int              `json:"minimum_power_required"`
	IsExtreme            bool             `json:"is_extreme,omitempty"`
	Beneficiaries        []social.Faction `json:"beneficiaries,omitempty"`
	Losers               []social.Faction `json:"losers,omitempty"`
}

// Slot is a policy area owned by an institution.
type Slot struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Institution     string   `json:"institution"`
	Category        Category `json:"category"`
	Options         []Option `json:"options"`
	DefaultOptionID string   `json:"default_option_id"`
	CurrentOptionID string   `json:"current_option_id"`

	HasBeenModified         bool   `json:"has_been_modified"`
	HasPendingProposal      bool   `json:"has_pending_proposal"`
	PendingOptionID         string `json:"pending_option_id,omitempty"`
	ProposedBy              string `json:"proposed_by,omitempty"`
	ProposedTurn            int    `json:"proposed_turn,omitempty"`
	WasCurrentPolicyDecreed bool   `json:"was_current_policy_decreed"`
}

// Option returns the option with the given id.
func (s *Slot) Option(id string) (Option, bool) {
	i := slices.IndexFunc(s.Options, func(o Option) bool { return o.ID == id })
	if i < 0 {
		return Option{}, false
	}
	return s.Options[i], true
}

// Current returns the current option.
func (s *Slot) Current() Option {
	o, _ := s.Option(s.CurrentOptionID)
	return o
}

func (s *Slot) clearPending() {
	s.HasPendingProposal = false
	s.PendingOptionID = ""
	s.ProposedBy = ""
	s.ProposedTurn = 0
}

// Validation describes whether an option can be adopted and by which route.
type Validation struct {
	CanChange           bool   `json:"can_change"`
	Reason              string `json:"reason,omitempty"`
	PowerRequired       int    `json:"power_required"`
	CanDecree           bool   `json:"can_decree"`
	DecreeReason        string `json:"decree_reason,omitempty"`
	DecreePowerRequired int    `json:"decree_power_required"`
}

// Change is a request to move a slot to another option.
type Change struct {
	SlotID        string
	OptionID      string
	ByCharacterID string // proposer when not the player
	ByPlayer      bool
	AsDecree      bool
	Turn          int
}

// ChangeResult reports what a change request did. A rejected request is a
// result with Changed false and the reason in Message, not an error.
type ChangeResult struct {
	Changed bool   `json:"changed"`
	Route   Route  `json:"route"`
	Message string `json:"message"`
	// Effects holds the ledger changes actually applied (decrees only).
	Effects       stats.Delta      `json:"effects,omitempty"`
	Beneficiaries []social.Faction `json:"beneficiaries,omitempty"`
	Losers        []social.Faction `json:"losers,omitempty"`
}

// Enactment records a pending proposal that took effect.
type Enactment struct {
	SlotID   string      `json:"slot_id"`
	OptionID string      `json:"option_id"`
	Effects  stats.Delta `json:"effects,omitempty"`
}
