package interaction

import (
	"fmt"
	"log/slog"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/observe"
	"github.com/talgya/apparat/internal/stats"
)

// Probability bounds for every roll.
const (
	minChance = 0.05
	maxChance = 0.95
)

// Rules are the tunable limits of the resolver.
type Rules struct {
	MaxInteractionsPerTurn    int
	ActionPointsPerTurn       int
	DenounceCooldownTurns     int
	DenounceEvidenceThreshold int
}

// DefaultRules returns the standard limits.
func DefaultRules() Rules {
	return Rules{
		MaxInteractionsPerTurn:    3,
		ActionPointsPerTurn:       6,
		DenounceCooldownTurns:     3,
		DenounceEvidenceThreshold: 30,
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRules overrides the default rules.
func WithRules(rules Rules) Option {
	return func(r *Resolver) { r.rules = rules }
}

// WithJournal sets the journal collaborator.
func WithJournal(j journal.Recorder) Option {
	return func(r *Resolver) { r.journal = j }
}

// WithFlavor sets the flavor-text collaborator.
func WithFlavor(f FlavorSource) Option {
	return func(r *Resolver) { r.flavor = f }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// Resolver computes and executes interactions. It is not safe for
// concurrent use; the game drives it from a single goroutine.
type Resolver struct {
	ledger   *stats.Ledger
	registry *characters.Registry
	src      entropy.Source
	player   *Player
	budget   Budget
	rules    Rules

	journal journal.Recorder
	flavor  FlavorSource
	metrics *observe.Metrics
	log     *slog.Logger

	resolving bool
}

// New creates a Resolver for player. The budget starts full for turn 1.
func New(ledger *stats.Ledger, registry *characters.Registry, src entropy.Source, player *Player, opts ...Option) *Resolver {
	r := &Resolver{
		ledger:   ledger,
		registry: registry,
		src:      src,
		player:   player,
		rules:    DefaultRules(),
		journal:  journal.Discard,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	r.budget = Budget{
		Turn:                  1,
		InteractionsRemaining: r.rules.MaxInteractionsPerTurn,
		MaxInteractions:       r.rules.MaxInteractionsPerTurn,
		ActionPoints:          r.rules.ActionPointsPerTurn,
		MaxActionPoints:       r.rules.ActionPointsPerTurn,
	}
	return r
}

// Player returns the player the resolver acts for.
func (r *Resolver) Player() *Player { return r.player }

// Budget returns the current turn's budget.
func (r *Resolver) Budget() Budget { return r.budget }

// Rules returns the active rules.
func (r *Resolver) Rules() Rules { return r.rules }

// RestoreBudget replaces the budget, e.g. when loading a saved game.
func (r *Resolver) RestoreBudget(b Budget) { r.budget = b }

// ResetTurn refills the interaction counter and action points for turn. It
// only takes effect once per turn: calls for the current or an earlier turn
// are ignored and report false.
func (r *Resolver) ResetTurn(turn int) bool {
	if turn <= r.budget.Turn {
		return false
	}
	r.budget = Budget{
		Turn:                  turn,
		InteractionsRemaining: r.rules.MaxInteractionsPerTurn,
		MaxInteractions:       r.rules.MaxInteractionsPerTurn,
		ActionPoints:          r.rules.ActionPointsPerTurn,
		MaxActionPoints:       r.rules.ActionPointsPerTurn,
	}
	return true
}

// AvailableInvestigateOptions lists the investigation methods open to the
// player's rank against c.
func (r *Resolver) AvailableInvestigateOptions(c *characters.Character) []CharacterInteraction {
	return r.available(c, CategoryInvestigate)
}

// AvailableCultivateOptions lists the cultivation methods open to the
// player's rank against c.
func (r *Resolver) AvailableCultivateOptions(c *characters.Character) []CharacterInteraction {
	return r.available(c, CategoryCultivate)
}

// AvailableDenounceOptions lists the denunciation methods open to the
// player's rank against c.
func (r *Resolver) AvailableDenounceOptions(c *characters.Character) []CharacterInteraction {
	return r.available(c, CategoryDenounce)
}

// available returns nothing once the turn's interactions are used up.
// Methods above the player's rank are omitted; methods blocked by any other
// precondition are listed as disabled with the reason.
func (r *Resolver) available(c *characters.Character, category Category) []CharacterInteraction {
	if c == nil || r.budget.InteractionsRemaining <= 0 {
		return nil
	}
	var out []CharacterInteraction
	for _, m := range Methods(category) {
		if r.player.PositionIndex < m.MinPosition {
			continue
		}
		ci := CharacterInteraction{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Category:    m.Category,
			Risk:        m.Risk,
			CostAP:      m.CostAP,
			Effects:     previewEffects(m),
		}
		if r.flavor != nil {
			ci.FlavorText = r.flavor.Flavor(category, m.ID, "")
		}
		if chk := r.check(c, m); !chk.OK {
			ci.Disabled = true
			ci.DisabledReason = chk.Reason
		}
		out = append(out, ci)
	}
	return out
}

func previewEffects(m Method) Effects {
	e := Effects{OnSuccess: m.OnSuccess, OnFailure: m.OnFailure}
	switch m.Category {
	case CategoryInvestigate:
		e.EvidenceMin, e.EvidenceMax, e.RevealChance = m.EvidenceMin, m.EvidenceMax, m.RevealChance
	case CategoryCultivate:
		e.DispositionMin, e.DispositionMax = m.GainMin, m.GainMax
		if m.FailurePenalty > 0 {
			e.DispositionMin = -m.FailurePenalty
		}
	}
	return e
}

// Validate checks whether methodID could be executed against c right now.
func (r *Resolver) Validate(c *characters.Character, methodID string) (Check, error) {
	if c == nil {
		return Check{}, ErrNoCharacter
	}
	m, ok := LookupMethod(methodID)
	if !ok {
		return Check{}, fmt.Errorf("%w: %q", ErrUnknownMethod, methodID)
	}
	return r.check(c, m), nil
}

// check evaluates every precondition in a fixed order: budget, rank,
// action points, target status, then category-specific requirements.
func (r *Resolver) check(c *characters.Character, m Method) Check {
	if r.budget.InteractionsRemaining <= 0 {
		return refuse("No interactions remaining this turn")
	}
	if r.player.PositionIndex < m.MinPosition {
		return refuse(fmt.Sprintf("Requires position rank %d (you hold rank %d)", m.MinPosition, r.player.PositionIndex))
	}
	if r.budget.ActionPoints < m.CostAP {
		return refuse(fmt.Sprintf("Not enough action points (need %d, have %d)", m.CostAP, r.budget.ActionPoints))
	}

	switch m.Category {
	case CategoryInvestigate:
		if !c.Status.IsPresent() {
			return refuse(fmt.Sprintf("%s is %s and cannot be investigated", c.Name, c.Status.DisplayText()))
		}
	case CategoryCultivate:
		if c.Status != characters.StatusActive && c.Status != characters.StatusRehabilitated {
			return refuse(fmt.Sprintf("%s is %s and cannot be cultivated", c.Name, c.Status.DisplayText()))
		}
		if c.Disposition < m.MinDisposition {
			return refuse(fmt.Sprintf("Insufficient disposition (have %d, need %d)", c.Disposition, m.MinDisposition))
		}
	case CategoryDenounce:
		if !denounceable(c.Status) {
			return refuse(fmt.Sprintf("%s is %s and beyond denunciation", c.Name, c.Status.DisplayText()))
		}
		if since, ok := c.TurnsSinceDenounced(r.budget.Turn); ok && since < r.rules.DenounceCooldownTurns {
			return refuse(fmt.Sprintf("Denunciation cooldown: %d turn(s) remaining", r.rules.DenounceCooldownTurns-since))
		}
		if need := r.evidenceRequired(m); c.EvidenceLevel < need {
			return refuse(fmt.Sprintf("Insufficient evidence (have %d, need %d)", c.EvidenceLevel, need))
		}
	}
	return Check{OK: true}
}

func refuse(reason string) Check {
	return Check{Reason: reason}
}

// begin validates the call and, when every precondition holds, marks the
// resolver busy and spends the interaction and action points. The returned
// Result is a refusal when the precondition check failed; done must be
// called once resolution ends.
func (r *Resolver) begin(c *characters.Character, methodID string, category Category) (m Method, refused *Result, err error) {
	if r.resolving {
		return Method{}, nil, ErrReentrant
	}
	if c == nil {
		return Method{}, nil, ErrNoCharacter
	}
	m, ok := LookupMethod(methodID)
	if !ok {
		return Method{}, nil, fmt.Errorf("%w: %q", ErrUnknownMethod, methodID)
	}
	if m.Category != category {
		return Method{}, nil, fmt.Errorf("%w: %q is a %s method", ErrWrongCategory, methodID, m.Category)
	}

	if chk := r.check(c, m); !chk.OK {
		r.log.Debug("interaction refused", "category", category, "method", m.ID, "character", c.Name, "reason", chk.Reason)
		r.metrics.RecordInteraction(string(category), m.ID, string(OutcomePreconditionNotMet))
		return m, &Result{
			Outcome:  OutcomePreconditionNotMet,
			Reason:   chk.Reason,
			MethodID: m.ID,
			Summary:  chk.Reason,
		}, nil
	}

	r.resolving = true
	r.budget.InteractionsRemaining--
	r.budget.ActionPoints -= m.CostAP
	return m, nil, nil
}

// done commits the common bookkeeping of a resolved interaction.
func (r *Resolver) done(c *characters.Character, m Method, res *Result, dispositionDelta int) {
	defer func() { r.resolving = false }()

	if r.flavor != nil {
		res.Flavor = r.flavor.Flavor(m.Category, m.ID, res.Outcome)
	}

	outcome := characters.RecordFailure
	if res.Succeeded() {
		outcome = characters.RecordSuccess
	}
	c.AddRecord(characters.InteractionRecord{
		Turn:             r.budget.Turn,
		Kind:             string(m.Category),
		Summary:          res.Summary,
		DispositionDelta: dispositionDelta,
		Outcome:          outcome,
	})

	r.journal.Record(journal.Entry{
		Turn:     r.budget.Turn,
		Category: string(m.Category),
		Actor:    r.player.Name,
		Target:   c.Name,
		Outcome:  string(res.Outcome),
		Summary:  res.Summary,
	})
	r.metrics.RecordInteraction(string(m.Category), m.ID, string(res.Outcome))

	r.log.Info("interaction resolved",
		"category", m.Category,
		"method", m.ID,
		"character", c.Name,
		"outcome", res.Outcome,
		"probability", fmt.Sprintf("%.2f", res.Probability),
		"turn", r.budget.Turn,
	)
}

func (r *Resolver) roll(p float64) bool {
	return entropy.Chance(r.src, p)
}

func clampChance(p float64) float64 {
	if p < minChance {
		return minChance
	}
	if p > maxChance {
		return maxChance
	}
	return p
}

func outcomeOf(success bool) Outcome {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
