// Package social defines the factions and career tracks of the apparatus,
// and the fixed table of factional antagonism between them.
package social

import (
	"fmt"
	"slices"
)

// Faction identifies a political grouping inside the apparatus.
type Faction uint8

const (
	FactionUnaligned  Faction = iota // No declared grouping
	FactionReformists                // Liberalizers and technocrats
	FactionOldGuard                  // Orthodox veterans of the founding generation
	FactionPrincelings               // Children of the revolutionary elite
	FactionYouthLeague               // Career apparatchiks from the youth wing
	FactionSecurityHawks             // Security-service hardliners
	FactionRegionalists              // Provincial power bases
)

// NumFactions is the total number of factions.
const NumFactions = 7

var factionNames = [NumFactions]string{
	"unaligned",
	"reformists",
	"old_guard",
	"princelings",
	"youth_league",
	"security_hawks",
	"regionalists",
}

var factionTitles = [NumFactions]string{
	"Unaligned",
	"Reformists",
	"Old Guard",
	"Princelings",
	"Youth League",
	"Security Hawks",
	"Regionalists",
}

// String returns the faction's stable identifier.
func (f Faction) String() string {
	if int(f) < NumFactions {
		return factionNames[f]
	}
	return fmt.Sprintf("faction(%d)", uint8(f))
}

// Title returns a display name.
func (f Faction) Title() string {
	if int(f) < NumFactions {
		return factionTitles[f]
	}
	return f.String()
}

// Factions lists every faction in declaration order.
func Factions() []Faction {
	out := make([]Faction, NumFactions)
	for i := range out {
		out[i] = Faction(i)
	}
	return out
}

// ParseFaction maps an identifier such as "old_guard" to its Faction.
func ParseFaction(name string) (Faction, error) {
	for i, n := range factionNames {
		if n == name {
			return Faction(i), nil
		}
	}
	return FactionUnaligned, fmt.Errorf("social: unknown faction %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Faction) MarshalText() ([]byte, error) {
	if int(f) >= NumFactions {
		return nil, fmt.Errorf("social: invalid faction %d", uint8(f))
	}
	return []byte(factionNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Faction) UnmarshalText(b []byte) error {
	v, err := ParseFaction(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// opposition is the fixed antagonism table. Every faction has an entry and
// the relation is symmetric.
var opposition = map[Faction][]Faction{
	FactionUnaligned:     {},
	FactionReformists:    {FactionOldGuard, FactionPrincelings, FactionSecurityHawks},
	FactionOldGuard:      {FactionReformists, FactionYouthLeague},
	FactionPrincelings:   {FactionReformists, FactionYouthLeague},
	FactionYouthLeague:   {FactionOldGuard, FactionPrincelings},
	FactionSecurityHawks: {FactionReformists, FactionRegionalists},
	FactionRegionalists:  {FactionSecurityHawks},
}

// Opponents returns the factions opposed to f, in declaration order.
func Opponents(f Faction) []Faction {
	out := slices.Clone(opposition[f])
	slices.Sort(out)
	return out
}

// Opposed reports whether a and b are antagonistic factions.
func Opposed(a, b Faction) bool {
	return slices.Contains(opposition[a], b)
}
