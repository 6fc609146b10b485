package characters

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/google/uuid"

	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/observe"
	"github.com/talgya/apparat/internal/social"
)

var (
	// ErrDuplicateID is returned by Add when the id is already registered.
	ErrDuplicateID = errors.New("characters: duplicate id")
	// ErrNotFound is returned when no character matches.
	ErrNotFound = errors.New("characters: not found")
)

// Placeholder personality band. Dynamically discovered officials are
// unknown quantities, never extreme archetypes.
const (
	placeholderTraitMin = 30
	placeholderTraitMax = 70

	// fuzzyThreshold is the minimum Jaro-Winkler similarity for a name match
	// when neither exact nor substring matching finds anyone.
	fuzzyThreshold = 0.90
)

// Notification is the payload emitted on every status transition.
type Notification struct {
	CharacterName string
	Status        string // display text of the new status
	Turn          int
}

// Notifier receives status notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Option configures a Registry.
type Option func(*Registry)

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(r *Registry) { r.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// Registry owns every tracked character. Characters are never removed; they
// only move through the status lifecycle.
type Registry struct {
	chars []*Character
	index map[string]*Character

	src      entropy.Source
	notifier Notifier
	metrics  *observe.Metrics
	log      *slog.Logger

	// Notifications raised while a notifier is running are queued and
	// delivered by the outermost flush.
	pending  []Notification
	flushing bool
}

// NewRegistry creates an empty registry drawing randomness from src.
func NewRegistry(src entropy.Source, opts ...Option) *Registry {
	r := &Registry{
		index: make(map[string]*Character),
		src:   src,
		log:   slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add registers c. An empty id is filled in. Characters without a status
// start active.
func (r *Registry) Add(c *Character) error {
	if c.ID == "" {
		c.ID = r.newID()
	}
	if _, exists := r.index[c.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	r.chars = append(r.chars, c)
	r.index[c.ID] = c
	return nil
}

// Get returns the character with the given id.
func (r *Registry) Get(id string) (*Character, error) {
	c, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return c, nil
}

// All returns every character in registration order. The slice is a copy;
// the characters are shared.
func (r *Registry) All() []*Character {
	out := make([]*Character, len(r.chars))
	copy(out, r.chars)
	return out
}

// Len returns the number of tracked characters.
func (r *Registry) Len() int { return len(r.chars) }

// FindByName resolves a name as mentioned by the narrative layer. Matching
// proceeds exact, case-insensitive exact, case-insensitive substring (either
// direction), then Jaro-Winkler similarity. Earlier-registered characters
// win ties within a stage. Returns nil when nothing matches.
func (r *Registry) FindByName(name string) *Character {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, c := range r.chars {
		if c.Name == name {
			return c
		}
	}

	lower := strings.ToLower(name)
	for _, c := range r.chars {
		if strings.ToLower(c.Name) == lower {
			return c
		}
	}
	for _, c := range r.chars {
		cl := strings.ToLower(c.Name)
		if cl == "" {
			continue
		}
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c
		}
	}

	var best *Character
	bestScore := fuzzyThreshold
	for _, c := range r.chars {
		score := matchr.JaroWinkler(lower, strings.ToLower(c.Name), false)
		if score >= bestScore && (best == nil || score > bestScore) {
			best, bestScore = c, score
		}
	}
	return best
}

// CreatePlaceholder registers an untracked official first mentioned on
// introducedTurn. Personality traits are drawn uniformly from [30, 70] and
// stay hidden until revealed.
func (r *Registry) CreatePlaceholder(name string, introducedTurn int) *Character {
	c := &Character{
		ID:             r.newID(),
		Name:           strings.TrimSpace(name),
		Title:          "Official",
		Faction:        social.FactionUnaligned,
		Track:          social.TrackParty,
		PositionIndex:  1,
		FactionLoyalty: 50,
		Personality: Personality{
			Ambitious: r.placeholderTrait(),
			Paranoid:  r.placeholderTrait(),
			Ruthless:  r.placeholderTrait(),
			Competent: r.placeholderTrait(),
			Loyal:     r.placeholderTrait(),
			Corrupt:   r.placeholderTrait(),
		},
		Disposition:              50,
		Status:                   StatusActive,
		StatusChangedTurn:        introducedTurn,
		WasDiscoveredDynamically: true,
		IsFullyRevealed:          false,
		IntroducedTurn:           introducedTurn,
	}
	if c.Name == "" {
		c.Name = "Unknown Official"
	}
	// newID never collides with an existing id.
	_ = r.Add(c)

	r.log.Info("placeholder character created", "character", c.Name, "id", c.ID, "turn", introducedTurn)
	return c
}

func (r *Registry) placeholderTrait() int {
	return entropy.Between(r.src, placeholderTraitMin, placeholderTraitMax)
}

// Transition moves c to status to on turn. It fails with a *TransitionError
// when the lifecycle does not permit the edge; c is unchanged in that case.
// On success a notification is queued for the notifier.
func (r *Registry) Transition(c *Character, to Status, turn int, details string) error {
	if c == nil {
		return fmt.Errorf("%w: nil character", ErrNotFound)
	}
	from := c.Status
	if !CanTransition(from, to) {
		return &TransitionError{Character: c.Name, From: from, To: to}
	}

	c.Status = to
	c.StatusChangedTurn = turn
	c.StatusDetails = details
	if from == StatusDisappeared {
		c.MightReturn = false
		c.ReturnProbability = 0
	}

	r.metrics.RecordTransition(string(from), string(to))
	r.log.Info("status transition",
		"character", c.Name,
		"from", from,
		"to", to,
		"turn", turn,
	)

	r.pending = append(r.pending, Notification{
		CharacterName: c.Name,
		Status:        to.DisplayText(),
		Turn:          turn,
	})
	r.flush()
	return nil
}

// Rehabilitate returns an imprisoned, exiled, or disappeared character to
// active duty via the rehabilitated status.
func (r *Registry) Rehabilitate(c *Character, turn int, details string) error {
	if err := r.Transition(c, StatusRehabilitated, turn, details); err != nil {
		return err
	}
	return r.Transition(c, StatusActive, turn, details)
}

// flush delivers queued notifications. A notifier that triggers further
// transitions only appends to the queue; the outermost call drains it.
func (r *Registry) flush() {
	if r.flushing {
		return
	}
	r.flushing = true
	defer func() { r.flushing = false }()

	for len(r.pending) > 0 {
		n := r.pending[0]
		r.pending = r.pending[1:]
		if r.notifier != nil {
			r.notifier.Notify(n)
		}
	}
}

// newID returns a fresh identifier drawn from the registry's source so that
// seeded games are reproducible.
func (r *Registry) newID() string {
	for {
		id, err := uuid.NewRandomFromReader(readerFunc(r.src.Read))
		if err != nil {
			id = uuid.New()
		}
		if _, exists := r.index[id.String()]; !exists {
			return id.String()
		}
	}
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
