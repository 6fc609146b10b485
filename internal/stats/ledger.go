// Package stats holds the bounded national and personal statistics that
// every command in the game reads from and writes to.
package stats

import (
	"fmt"
	"slices"
)

// Stat names a bounded integer statistic.
type Stat string

// National stats.
const (
	Stability             Stat = "stability"
	PopularSupport        Stat = "popular_support"
	MilitaryLoyalty       Stat = "military_loyalty"
	EliteLoyalty          Stat = "elite_loyalty"
	Treasury              Stat = "treasury"
	IndustrialOutput      Stat = "industrial_output"
	FoodSupply            Stat = "food_supply"
	InternationalStanding Stat = "international_standing"
)

// Personal stats.
const (
	Standing    Stat = "standing"
	PatronFavor Stat = "patron_favor"
	RivalThreat Stat = "rival_threat"
	Network     Stat = "network"
)

// Reputation stats.
const (
	ReputationCompetent Stat = "reputation_competent"
	ReputationLoyal     Stat = "reputation_loyal"
	ReputationCunning   Stat = "reputation_cunning"
	ReputationRuthless  Stat = "reputation_ruthless"
)

// Bounds shared by every stat.
const (
	Min = 0
	Max = 100

	// Default is the value reported for a stat that was never written.
	Default = 50
)

// All lists every stat in a stable order.
var All = []Stat{
	Stability, PopularSupport, MilitaryLoyalty, EliteLoyalty,
	Treasury, IndustrialOutput, FoodSupply, InternationalStanding,
	Standing, PatronFavor, RivalThreat, Network,
	ReputationCompetent, ReputationLoyal, ReputationCunning, ReputationRuthless,
}

// Valid reports whether s is one of the known stats.
func (s Stat) Valid() bool {
	return slices.Contains(All, s)
}

// Parse returns the Stat named by name.
func Parse(name string) (Stat, error) {
	s := Stat(name)
	if !s.Valid() {
		return "", fmt.Errorf("stats: unknown stat %q", name)
	}
	return s, nil
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Delta is a set of signed per-stat modifiers.
type Delta map[Stat]int

// Merge returns a new Delta holding the sum of d and o.
func (d Delta) Merge(o Delta) Delta {
	out := make(Delta, len(d)+len(o))
	for k, v := range d {
		out[k] += v
	}
	for k, v := range o {
		out[k] += v
	}
	return out
}

// IsZero reports whether every modifier is zero.
func (d Delta) IsZero() bool {
	for _, v := range d {
		if v != 0 {
			return false
		}
	}
	return true
}

// Ledger holds the current value of every stat. Every write clamps to
// [Min, Max]. The zero value is not usable; call NewLedger.
type Ledger struct {
	values map[Stat]int
}

// NewLedger creates a ledger seeded with initial values (clamped). Stats
// not present in initial read as Default.
func NewLedger(initial map[Stat]int) *Ledger {
	l := &Ledger{values: make(map[Stat]int, len(All))}
	for _, s := range All {
		l.values[s] = Default
	}
	for s, v := range initial {
		l.values[s] = Clamp(v, Min, Max)
	}
	return l
}

// Get returns the current value of s.
func (l *Ledger) Get(s Stat) int {
	v, ok := l.values[s]
	if !ok {
		return Default
	}
	return v
}

// Set writes v (clamped) to s and returns the stored value.
func (l *Ledger) Set(s Stat, v int) int {
	v = Clamp(v, Min, Max)
	l.values[s] = v
	return v
}

// Add adjusts s by delta and returns the change actually applied after
// clamping.
func (l *Ledger) Add(s Stat, delta int) int {
	before := l.Get(s)
	after := l.Set(s, before+delta)
	return after - before
}

// Apply adds every modifier of d and returns the effective delta after
// clamping. Zero entries are omitted from the result.
func (l *Ledger) Apply(d Delta) Delta {
	applied := make(Delta, len(d))
	for _, s := range sortedKeys(d) {
		if got := l.Add(s, d[s]); got != 0 {
			applied[s] = got
		}
	}
	return applied
}

// Snapshot returns a copy of all values.
func (l *Ledger) Snapshot() map[Stat]int {
	out := make(map[Stat]int, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

func sortedKeys(d Delta) []Stat {
	keys := make([]Stat, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
