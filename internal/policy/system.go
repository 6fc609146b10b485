package policy

import (
	"fmt"
	"log/slog"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/observe"
	"github.com/talgya/apparat/internal/stats"
)

// DefaultDecreePremium is the extra power a decree demands over the
// option's normal requirement.
const DefaultDecreePremium = 15

// PowerStat is the ledger stat that stands for the player's power.
const PowerStat = stats.Standing

// SystemOption configures a System.
type SystemOption func(*System)

// WithDecreePremium overrides DefaultDecreePremium.
func WithDecreePremium(p int) SystemOption {
	return func(s *System) { s.decreePremium = p }
}

// WithDecreesEnabled sets the game-level decree toggle.
func WithDecreesEnabled(on bool) SystemOption {
	return func(s *System) { s.decreesEnabled = on }
}

// WithJournal sets the journal collaborator.
func WithJournal(j journal.Recorder) SystemOption {
	return func(s *System) { s.journal = j }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observe.Metrics) SystemOption {
	return func(s *System) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SystemOption {
	return func(s *System) { s.log = l }
}

// System holds the policy slots and applies changes to them.
type System struct {
	ledger *stats.Ledger
	slots  []*Slot
	index  map[string]*Slot

	decreePremium  int
	decreesEnabled bool

	journal journal.Recorder
	metrics *observe.Metrics
	log     *slog.Logger
}

// NewSystem creates an empty policy system over ledger.
func NewSystem(ledger *stats.Ledger, opts ...SystemOption) *System {
	s := &System{
		ledger:        ledger,
		index:         make(map[string]*Slot),
		decreePremium: DefaultDecreePremium,
		journal:       journal.Discard,
		log:           slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add registers a slot. The default option must exist; an empty current
// option starts at the default.
func (s *System) Add(slot *Slot) error {
	if slot.ID == "" || len(slot.Options) == 0 {
		return fmt.Errorf("%w: slot %q has no id or options", ErrInvalidSlot, slot.ID)
	}
	if _, dup := s.index[slot.ID]; dup {
		return fmt.Errorf("%w: duplicate slot %q", ErrInvalidSlot, slot.ID)
	}
	if !slot.Category.Valid() {
		return fmt.Errorf("%w: slot %q has category %q", ErrInvalidSlot, slot.ID, slot.Category)
	}
	seen := make(map[string]bool, len(slot.Options))
	for _, o := range slot.Options {
		if o.ID == "" || seen[o.ID] {
			return fmt.Errorf("%w: slot %q has an empty or duplicate option id %q", ErrInvalidSlot, slot.ID, o.ID)
		}
		seen[o.ID] = true
	}
	if !seen[slot.DefaultOptionID] {
		return fmt.Errorf("%w: slot %q default %q: %w", ErrInvalidSlot, slot.ID, slot.DefaultOptionID, ErrUnknownOption)
	}
	if slot.CurrentOptionID == "" {
		slot.CurrentOptionID = slot.DefaultOptionID
	}
	if !seen[slot.CurrentOptionID] {
		return fmt.Errorf("%w: slot %q current %q: %w", ErrInvalidSlot, slot.ID, slot.CurrentOptionID, ErrUnknownOption)
	}
	if slot.HasPendingProposal && !seen[slot.PendingOptionID] {
		return fmt.Errorf("%w: slot %q pending %q: %w", ErrInvalidSlot, slot.ID, slot.PendingOptionID, ErrUnknownOption)
	}
	s.slots = append(s.slots, slot)
	s.index[slot.ID] = slot
	return nil
}

// Slot returns the slot with the given id.
func (s *System) Slot(id string) (*Slot, error) {
	slot, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}
	return slot, nil
}

// Slots returns every slot in registration order.
func (s *System) Slots() []*Slot {
	out := make([]*Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// SetDecreesEnabled sets the game-level decree toggle.
func (s *System) SetDecreesEnabled(on bool) { s.decreesEnabled = on }

// DecreeToggle returns the game-level decree toggle alone, ignoring the
// capabilities granted by current options.
func (s *System) DecreeToggle() bool { return s.decreesEnabled }

// DecreesEnabled reports whether decrees are possible: either the game
// toggle is on or a current option grants the capability.
func (s *System) DecreesEnabled() bool {
	if s.decreesEnabled {
		return true
	}
	for _, slot := range s.slots {
		if slot.Current().Effects.EnablesDecrees {
			return true
		}
	}
	return false
}

// PurgesEnabled reports whether a current option grants purges.
func (s *System) PurgesEnabled() bool {
	for _, slot := range s.slots {
		if slot.Current().Effects.EnablesPurges {
			return true
		}
	}
	return false
}

// Power returns the player's current power.
func (s *System) Power() int { return s.ledger.Get(PowerStat) }

func (s *System) lookup(slotID, optionID string) (*Slot, Option, error) {
	slot, err := s.Slot(slotID)
	if err != nil {
		return nil, Option{}, err
	}
	opt, ok := slot.Option(optionID)
	if !ok {
		return nil, Option{}, fmt.Errorf("%w: %q in slot %q", ErrUnknownOption, optionID, slotID)
	}
	return slot, opt, nil
}

// Validate reports whether optionID can be adopted in slotID. The player is
// gated by power; other actors are not. Decrees are additionally refused
// while decrees are disabled and for institutional slots, whatever the
// power.
func (s *System) Validate(slotID, optionID string, byPlayer bool) (Validation, error) {
	slot, opt, err := s.lookup(slotID, optionID)
	if err != nil {
		return Validation{}, err
	}
	v := Validation{
		PowerRequired:       opt.MinimumPowerRequired,
		DecreePowerRequired: min(stats.Max, opt.MinimumPowerRequired+s.decreePremium),
	}
	power := s.Power()

	switch {
	case slot.CurrentOptionID == opt.ID:
		v.Reason = fmt.Sprintf("%s is already the current policy", opt.Name)
	case slot.HasPendingProposal:
		v.Reason = fmt.Sprintf("A proposal for %s is already pending", slot.Name)
	case byPlayer && power < v.PowerRequired:
		v.Reason = fmt.Sprintf("Requires power %d (you have %d)", v.PowerRequired, power)
	default:
		v.CanChange = true
	}

	switch {
	case slot.CurrentOptionID == opt.ID:
		v.DecreeReason = v.Reason
	case !s.DecreesEnabled():
		v.DecreeReason = "Decrees are not permitted under the current order"
	case slot.Category == CategoryInstitutional:
		v.DecreeReason = fmt.Sprintf("%s is institutional and cannot be changed by decree", slot.Name)
	case byPlayer && power < v.DecreePowerRequired:
		v.DecreeReason = fmt.Sprintf("A decree requires power %d (you have %d)", v.DecreePowerRequired, power)
	default:
		v.CanDecree = true
	}
	return v, nil
}

// ChangePolicy proposes or decrees a change. A proposal is recorded on the
// slot and enacted by EnactPending at a later turn; a decree swaps the
// option and applies its effects at once, superseding any pending proposal.
func (s *System) ChangePolicy(req Change) (ChangeResult, error) {
	v, err := s.Validate(req.SlotID, req.OptionID, req.ByPlayer)
	if err != nil {
		return ChangeResult{}, err
	}
	slot, opt, _ := s.lookup(req.SlotID, req.OptionID)

	proposer := req.ByCharacterID
	if req.ByPlayer {
		proposer = characters.PlayerID
	}

	res := ChangeResult{Route: RoutePropose, Beneficiaries: opt.Beneficiaries, Losers: opt.Losers}
	if req.AsDecree {
		res.Route = RouteDecree
		if !v.CanDecree {
			res.Message = v.DecreeReason
			return res, nil
		}
		slot.clearPending()
		res.Effects = s.adopt(slot, opt, true)
		res.Changed = true
		res.Message = fmt.Sprintf("By decree, %s adopts %s", slot.Name, opt.Name)
	} else {
		if !v.CanChange {
			res.Message = v.Reason
			return res, nil
		}
		slot.HasPendingProposal = true
		slot.PendingOptionID = opt.ID
		slot.ProposedBy = proposer
		slot.ProposedTurn = req.Turn
		if opt.ID != slot.DefaultOptionID {
			slot.HasBeenModified = true
		}
		res.Changed = true
		res.Message = fmt.Sprintf("%s proposed for %s; it will take effect at the next session", opt.Name, slot.Name)
	}

	s.metrics.RecordPolicyChange(slot.ID, string(res.Route))
	s.journal.Record(journal.Entry{
		Turn:     req.Turn,
		Category: "policy_" + string(res.Route),
		Actor:    proposer,
		Target:   slot.Name,
		Outcome:  opt.ID,
		Summary:  res.Message,
	})
	s.log.Info("policy change",
		"slot", slot.ID,
		"option", opt.ID,
		"route", res.Route,
		"by", proposer,
		"turn", req.Turn,
	)
	return res, nil
}

// adopt makes opt current in slot and applies its stat effects.
func (s *System) adopt(slot *Slot, opt Option, decreed bool) stats.Delta {
	slot.CurrentOptionID = opt.ID
	slot.WasCurrentPolicyDecreed = decreed
	if opt.ID != slot.DefaultOptionID {
		slot.HasBeenModified = true
	}
	return s.ledger.Apply(opt.Effects.Stats)
}

// EnactPending swaps in every proposal made before turn and applies its
// effects. Proposals made during turn itself wait for the next call.
func (s *System) EnactPending(turn int) []Enactment {
	var out []Enactment
	for _, slot := range s.slots {
		if !slot.HasPendingProposal || slot.ProposedTurn >= turn {
			continue
		}
		opt, ok := slot.Option(slot.PendingOptionID)
		if !ok {
			// Add guarantees the pending id exists; drop a corrupted proposal.
			s.log.Warn("dropping pending proposal for unknown option", "slot", slot.ID, "option", slot.PendingOptionID)
			slot.clearPending()
			continue
		}
		proposer := slot.ProposedBy
		slot.clearPending()
		applied := s.adopt(slot, opt, false)
		out = append(out, Enactment{SlotID: slot.ID, OptionID: opt.ID, Effects: applied})

		s.journal.Record(journal.Entry{
			Turn:     turn,
			Category: "policy_enacted",
			Actor:    proposer,
			Target:   slot.Name,
			Outcome:  opt.ID,
			Summary:  fmt.Sprintf("%s now follows %s", slot.Name, opt.Name),
		})
		s.log.Info("policy enacted", "slot", slot.ID, "option", opt.ID, "turn", turn)
	}
	return out
}
