// Package relations infers the socially significant relations of a
// character from registry contents. Nothing is persisted except the
// protector links and patron/rival flags already on the characters;
// every call recomputes from scratch.
package relations

import (
	"cmp"
	"slices"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/social"
)

// Kind is the category a relation was inferred from. Categories are listed
// in priority order.
type Kind string

const (
	KindPatron          Kind = "patron"
	KindProtege         Kind = "protege"
	KindFactionAlly     Kind = "faction_ally"
	KindTrackRival      Kind = "track_rival"
	KindFactionRival    Kind = "faction_rival"
	KindPersonalityBond Kind = "personality_bond"
	KindAntagonist      Kind = "antagonist"
)

// Relation is one inferred relation of a character.
type Relation struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Label               string `json:"label"`
	Kind                Kind   `json:"kind"`
	DispositionEstimate int    `json:"disposition_estimate"`
	IsPositive          bool   `json:"is_positive"`
}

// Caps bounds how many entries each category may contribute.
type Caps struct {
	Patron          int
	Protege         int
	FactionAlly     int
	TrackRival      int
	FactionRival    int
	PersonalityBond int
	Antagonist      int
}

// DefaultCaps returns the standard per-category caps.
func DefaultCaps() Caps {
	return Caps{
		Patron:          1,
		Protege:         2,
		FactionAlly:     2,
		TrackRival:      1,
		FactionRival:    1,
		PersonalityBond: 1,
		Antagonist:      1,
	}
}

// Thresholds used by the categories.
const (
	allyLoyaltyMin      = 60 // candidate faction loyalty
	allySelfLoyaltyMin  = 50
	closeAllyLoyaltyMin = 80 // min of both loyalties

	trackRivalAmbitionMin     = 60
	trackRivalSelfAmbitionMin = 50
	trackRivalRankWindow      = 2
	bitterRivalIntensity      = 80 // exclusive

	factionRivalAmbitionMin = 55

	bondSelfLoyaltyMin  = 70
	bondLoyaltyMin      = 70
	bondRuthlessnessMax = 60 // exclusive

	antagonistSelfRuthlessMax = 40 // exclusive
	antagonistRuthlessMin     = 75
	antagonistAmbitionMin     = 65
)

// Option configures an Engine.
type Option func(*Engine)

// WithCaps overrides the per-category caps.
func WithCaps(c Caps) Option {
	return func(e *Engine) { e.caps = c }
}

// WithShuffle shuffles the entries following the patron/protégé block for
// display variety. Without it the output order is fully deterministic.
func WithShuffle(src entropy.Source) Option {
	return func(e *Engine) { e.src = src }
}

// Engine computes relations.
type Engine struct {
	caps Caps
	src  entropy.Source
}

// NewEngine creates an Engine with default caps and no shuffling.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{caps: DefaultCaps()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// candidate is a scored relation awaiting selection.
type candidate struct {
	c     *characters.Character
	score int
	rel   Relation
}

// RelationsFor returns the relations of self among all, deduplicated by
// target id. Categories are filled in priority order, each contributing at
// most its cap; a target already taken by an earlier category is skipped.
// Within a category candidates are ranked by the category's score
// descending, then by position index descending, then by id ascending.
// Patron and protégé entries always come first. The selection set depends
// only on the inputs; an optional shuffle reorders the remaining entries.
func (e *Engine) RelationsFor(self *characters.Character, all []*characters.Character) []Relation {
	if self == nil {
		return nil
	}

	var others []*characters.Character
	for _, c := range all {
		if c == nil || c.ID == self.ID || !c.Status.IsPresent() {
			continue
		}
		others = append(others, c)
	}

	seen := map[string]bool{self.ID: true}
	var out []Relation
	take := func(cands []candidate, limit int) {
		rank(cands)
		for _, cd := range cands {
			if limit <= 0 {
				return
			}
			if seen[cd.c.ID] {
				continue
			}
			seen[cd.c.ID] = true
			out = append(out, cd.rel)
			limit--
		}
	}

	take(patrons(self, others), e.caps.Patron)
	take(proteges(self, others), e.caps.Protege)
	head := len(out)

	take(factionAllies(self, others), e.caps.FactionAlly)
	take(trackRivals(self, others), e.caps.TrackRival)
	take(factionRivals(self, others), e.caps.FactionRival)
	take(personalityBonds(self, others), e.caps.PersonalityBond)
	take(antagonists(self, others), e.caps.Antagonist)

	if e.src != nil && len(out)-head > 1 {
		tail := out[head:]
		e.src.Shuffle(len(tail), func(i, j int) { tail[i], tail[j] = tail[j], tail[i] })
	}
	return out
}

// rank sorts candidates by score, then position index (both descending),
// then id ascending.
func rank(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.c.PositionIndex, a.c.PositionIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.c.ID, b.c.ID)
	})
}

func relation(c *characters.Character, kind Kind, label string, estimate int) Relation {
	return Relation{
		ID:                  c.ID,
		Name:                c.Name,
		Label:               label,
		Kind:                kind,
		DispositionEstimate: estimate,
		IsPositive:          estimate > 0,
	}
}

func patrons(self *characters.Character, others []*characters.Character) []candidate {
	if self.ProtectorID == "" {
		return nil
	}
	var out []candidate
	for _, c := range others {
		if c.ID == self.ProtectorID {
			out = append(out, candidate{c: c, score: c.PositionIndex, rel: relation(c, KindPatron, "Patron", 70)})
		}
	}
	return out
}

func proteges(self *characters.Character, others []*characters.Character) []candidate {
	var out []candidate
	for _, c := range others {
		if c.ProtectorID == self.ID {
			out = append(out, candidate{c: c, score: c.PositionIndex, rel: relation(c, KindProtege, "Protégé", 60)})
		}
	}
	return out
}

func factionAllies(self *characters.Character, others []*characters.Character) []candidate {
	if self.Faction == social.FactionUnaligned || self.FactionLoyalty < allySelfLoyaltyMin {
		return nil
	}
	var out []candidate
	for _, c := range others {
		if c.Faction != self.Faction || c.FactionLoyalty < allyLoyaltyMin {
			continue
		}
		ambitionDelta := abs(c.Personality.Ambitious - self.Personality.Ambitious)
		score := c.FactionLoyalty + (100 - ambitionDelta)

		label, estimate := "Faction Ally", 40
		if min(c.FactionLoyalty, self.FactionLoyalty) >= closeAllyLoyaltyMin {
			label, estimate = "Close Ally", 65
		}
		out = append(out, candidate{c: c, score: score, rel: relation(c, KindFactionAlly, label, estimate)})
	}
	return out
}

func trackRivals(self *characters.Character, others []*characters.Character) []candidate {
	if self.Personality.Ambitious < trackRivalSelfAmbitionMin {
		return nil
	}
	var out []candidate
	for _, c := range others {
		if c.Track != self.Track || c.Personality.Ambitious < trackRivalAmbitionMin {
			continue
		}
		if abs(c.PositionIndex-self.PositionIndex) > trackRivalRankWindow {
			continue
		}
		intensity := (c.Personality.Ambitious + self.Personality.Ambitious) / 2

		label, estimate := "Rival", -40
		if intensity > bitterRivalIntensity {
			label, estimate = "Bitter Rival", -70
		}
		out = append(out, candidate{c: c, score: c.Personality.Ambitious, rel: relation(c, KindTrackRival, label, estimate)})
	}
	return out
}

func factionRivals(self *characters.Character, others []*characters.Character) []candidate {
	var out []candidate
	for _, c := range others {
		if !social.Opposed(self.Faction, c.Faction) {
			continue
		}
		if c.Personality.Ambitious < factionRivalAmbitionMin || c.PositionIndex < self.PositionIndex-1 {
			continue
		}
		out = append(out, candidate{c: c, score: c.PositionIndex, rel: relation(c, KindFactionRival, "Factional Opponent", -50)})
	}
	return out
}

func personalityBonds(self *characters.Character, others []*characters.Character) []candidate {
	if self.Personality.Loyal < bondSelfLoyaltyMin {
		return nil
	}
	var out []candidate
	for _, c := range others {
		if c.Personality.Loyal < bondLoyaltyMin || c.Personality.Ruthless >= bondRuthlessnessMax {
			continue
		}
		out = append(out, candidate{c: c, score: c.Personality.Loyal, rel: relation(c, KindPersonalityBond, "Kindred Spirit", 50)})
	}
	return out
}

func antagonists(self *characters.Character, others []*characters.Character) []candidate {
	if self.Personality.Ruthless >= antagonistSelfRuthlessMax {
		return nil
	}
	var out []candidate
	for _, c := range others {
		if c.Personality.Ruthless < antagonistRuthlessMin || c.Personality.Ambitious < antagonistAmbitionMin {
			continue
		}
		if c.PositionIndex < self.PositionIndex {
			continue
		}
		out = append(out, candidate{c: c, score: c.Personality.Ruthless, rel: relation(c, KindAntagonist, "Dangerous Enemy", -60)})
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
