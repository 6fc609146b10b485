// Package engine ties the rule services together into a turn-based game.
// A Game owns no logic of its own beyond turn resolution; every rule lives
// in the service it is handed at construction.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/interaction"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/policy"
	"github.com/talgya/apparat/internal/relations"
	"github.com/talgya/apparat/internal/stats"
)

// ErrMissingDependency is returned by NewGame when a required service is nil.
var ErrMissingDependency = errors.New("engine: missing dependency")

// Deps are the services a Game drives. Every field except Source and
// Logger is required. Source is the gameplay random source whose position
// State saves.
type Deps struct {
	Ledger    *stats.Ledger
	Registry  *characters.Registry
	Relations *relations.Engine
	Resolver  *interaction.Resolver
	Policy    *policy.System
	Journal   *journal.Log
	Source    entropy.Source
	Logger    *slog.Logger
}

// Game holds the complete game state and wires the services together.
type Game struct {
	ledger    *stats.Ledger
	registry  *characters.Registry
	relations *relations.Engine
	resolver  *interaction.Resolver
	policy    *policy.System
	journal   *journal.Log
	src       entropy.Source
	log       *slog.Logger
}

// NewGame creates a Game from explicit dependencies. The current turn is
// the resolver's budget turn.
func NewGame(d Deps) (*Game, error) {
	var missing []error
	check := func(name string, nilp bool) {
		if nilp {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingDependency, name))
		}
	}
	check("ledger", d.Ledger == nil)
	check("registry", d.Registry == nil)
	check("relations", d.Relations == nil)
	check("resolver", d.Resolver == nil)
	check("policy", d.Policy == nil)
	check("journal", d.Journal == nil)
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}

	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Game{
		ledger:    d.Ledger,
		registry:  d.Registry,
		relations: d.Relations,
		resolver:  d.Resolver,
		policy:    d.Policy,
		journal:   d.Journal,
		src:       d.Source,
		log:       log,
	}, nil
}

// Turn returns the current turn number.
func (g *Game) Turn() int { return g.resolver.Budget().Turn }

// Ledger returns the stat ledger.
func (g *Game) Ledger() *stats.Ledger { return g.ledger }

// Registry returns the character registry.
func (g *Game) Registry() *characters.Registry { return g.registry }

// Resolver returns the interaction resolver.
func (g *Game) Resolver() *interaction.Resolver { return g.resolver }

// Policy returns the policy system.
func (g *Game) Policy() *policy.System { return g.policy }

// Journal returns the event journal.
func (g *Game) Journal() *journal.Log { return g.journal }

// Player returns the player.
func (g *Game) Player() *interaction.Player { return g.resolver.Player() }

// Character looks a character up by id, falling back to a name search.
func (g *Game) Character(ref string) (*characters.Character, error) {
	if c, err := g.registry.Get(ref); err == nil {
		return c, nil
	}
	if c := g.registry.FindByName(ref); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("engine: %q: %w", ref, characters.ErrNotFound)
}

// Mention resolves a name raised by the narrative layer, creating a
// placeholder for an official nobody has tracked yet.
func (g *Game) Mention(name string) *characters.Character {
	if c := g.registry.FindByName(name); c != nil {
		return c
	}
	return g.registry.CreatePlaceholder(name, g.Turn())
}

// Relations returns the inferred relations of the character ref.
func (g *Game) Relations(ref string) ([]relations.Relation, error) {
	c, err := g.Character(ref)
	if err != nil {
		return nil, err
	}
	return g.relations.RelationsFor(c, g.registry.All()), nil
}

// ChangePolicy proposes or decrees a change on behalf of the player in the
// current turn.
func (g *Game) ChangePolicy(slotID, optionID string, asDecree bool) (policy.ChangeResult, error) {
	return g.policy.ChangePolicy(policy.Change{
		SlotID:   slotID,
		OptionID: optionID,
		ByPlayer: true,
		AsDecree: asDecree,
		Turn:     g.Turn(),
	})
}

// TurnReport summarizes a turn advance.
type TurnReport struct {
	Turn    int                `json:"turn"`
	Enacted []policy.Enactment `json:"enacted,omitempty"`
}

// AdvanceTurn resolves the end of the current turn: pending policy
// proposals are enacted, the interaction budget is refilled exactly once,
// and the turn counter moves forward.
func (g *Game) AdvanceTurn() TurnReport {
	next := g.Turn() + 1
	enacted := g.policy.EnactPending(next)
	g.resolver.ResetTurn(next)

	g.journal.Record(journal.Entry{
		Turn:     next,
		Category: "turn",
		Actor:    g.Player().Name,
		Summary:  fmt.Sprintf("Session %d opens", next),
	})
	g.log.Info("turn advanced",
		"turn", next,
		"enacted", len(enacted),
		"standing", g.ledger.Get(stats.Standing),
		"stability", g.ledger.Get(stats.Stability),
	)
	return TurnReport{Turn: next, Enacted: enacted}
}
