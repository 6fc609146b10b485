package engine

import (
	"encoding"
	"fmt"
	"log/slog"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/interaction"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/observe"
	"github.com/talgya/apparat/internal/policy"
	"github.com/talgya/apparat/internal/relations"
	"github.com/talgya/apparat/internal/stats"
)

// DefaultJournalLimit is how many journal entries a game keeps.
const DefaultJournalLimit = 1000

// State is the complete serializable state of a game.
type State struct {
	Turn           int                     `json:"turn"`
	Budget         interaction.Budget      `json:"budget"`
	Player         interaction.Player      `json:"player"`
	Stats          map[stats.Stat]int      `json:"stats"`
	Characters     []*characters.Character `json:"characters"`
	Slots          []*policy.Slot          `json:"slots"`
	Journal        []journal.Entry         `json:"journal,omitempty"`
	DecreesEnabled bool                    `json:"decrees_enabled"`
	Entropy        []byte                  `json:"entropy,omitempty"` // random stream position
}

type settings struct {
	rules         interaction.Rules
	decreePremium int
	journalLimit  int
	shuffle       entropy.Source
	notifier      characters.Notifier
	flavor        interaction.FlavorSource
	metrics       *observe.Metrics
	log           *slog.Logger
}

// Option configures Assemble.
type Option func(*settings)

// WithRules sets the interaction rules.
func WithRules(r interaction.Rules) Option {
	return func(s *settings) { s.rules = r }
}

// WithDecreePremium sets the extra power a decree demands.
func WithDecreePremium(p int) Option {
	return func(s *settings) { s.decreePremium = p }
}

// WithJournalLimit bounds the journal.
func WithJournalLimit(n int) Option {
	return func(s *settings) { s.journalLimit = n }
}

// WithShuffledRelations shuffles relation display order after the
// patron/protégé block, drawing from src. Pass a stream apart from the
// gameplay source so that rendering relations never changes a roll.
func WithShuffledRelations(src entropy.Source) Option {
	return func(s *settings) { s.shuffle = src }
}

// WithNotifier sets the status notification collaborator.
func WithNotifier(n characters.Notifier) Option {
	return func(s *settings) { s.notifier = n }
}

// WithFlavor sets the flavor-text collaborator.
func WithFlavor(f interaction.FlavorSource) Option {
	return func(s *settings) { s.flavor = f }
}

// WithMetrics sets the metric instruments shared by every service.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLogger sets the logger shared by every service.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// Assemble builds every service from state and wires them into a Game.
// Gameplay randomness is drawn from src. When state carries a saved stream
// position and src can restore one, src continues from that position.
func Assemble(state State, src entropy.Source, opts ...Option) (*Game, error) {
	set := settings{
		rules:         interaction.DefaultRules(),
		decreePremium: policy.DefaultDecreePremium,
		journalLimit:  DefaultJournalLimit,
		log:           slog.Default(),
	}
	for _, o := range opts {
		o(&set)
	}

	if len(state.Entropy) > 0 {
		if u, ok := src.(encoding.BinaryUnmarshaler); ok {
			if err := u.UnmarshalBinary(state.Entropy); err != nil {
				return nil, fmt.Errorf("engine: assemble: %w", err)
			}
		}
	}

	ledger := stats.NewLedger(state.Stats)

	jl := journal.NewLog(set.journalLimit)
	for _, e := range state.Journal {
		jl.Record(e)
	}

	regOpts := []characters.Option{characters.WithLogger(set.log), characters.WithMetrics(set.metrics)}
	if set.notifier != nil {
		regOpts = append(regOpts, characters.WithNotifier(set.notifier))
	}
	reg := characters.NewRegistry(src, regOpts...)
	for _, c := range state.Characters {
		if err := reg.Add(c); err != nil {
			return nil, fmt.Errorf("engine: assemble roster: %w", err)
		}
	}

	var relOpts []relations.Option
	if set.shuffle != nil {
		relOpts = append(relOpts, relations.WithShuffle(set.shuffle))
	}

	player := state.Player
	if player.ID == "" {
		player.ID = characters.PlayerID
	}
	resOpts := []interaction.Option{
		interaction.WithRules(set.rules),
		interaction.WithJournal(jl),
		interaction.WithMetrics(set.metrics),
		interaction.WithLogger(set.log),
	}
	if set.flavor != nil {
		resOpts = append(resOpts, interaction.WithFlavor(set.flavor))
	}
	resolver := interaction.New(ledger, reg, src, &player, resOpts...)
	if state.Budget.Turn > 0 {
		resolver.RestoreBudget(state.Budget)
	}

	pol := policy.NewSystem(ledger,
		policy.WithDecreePremium(set.decreePremium),
		policy.WithDecreesEnabled(state.DecreesEnabled),
		policy.WithJournal(jl),
		policy.WithMetrics(set.metrics),
		policy.WithLogger(set.log),
	)
	for _, slot := range state.Slots {
		if err := pol.Add(slot); err != nil {
			return nil, fmt.Errorf("engine: assemble policy: %w", err)
		}
	}

	return NewGame(Deps{
		Ledger:    ledger,
		Registry:  reg,
		Relations: relations.NewEngine(relOpts...),
		Resolver:  resolver,
		Policy:    pol,
		Journal:   jl,
		Source:    src,
		Logger:    set.log,
	})
}

// State captures the game for saving. Characters and slots are the live
// objects, not copies; serialize before mutating the game further.
func (g *Game) State() State {
	var pos []byte
	if m, ok := g.src.(encoding.BinaryMarshaler); ok {
		if b, err := m.MarshalBinary(); err == nil {
			pos = b
		} else {
			g.log.Warn("random stream position not saved", "error", err)
		}
	}
	return State{
		Turn:           g.Turn(),
		Budget:         g.resolver.Budget(),
		Player:         *g.resolver.Player(),
		Stats:          g.ledger.Snapshot(),
		Characters:     g.registry.All(),
		Slots:          g.policy.Slots(),
		Journal:        g.journal.Entries(),
		DecreesEnabled: g.policy.DecreeToggle(),
		Entropy:        pos,
	}
}
