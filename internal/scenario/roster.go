// Package scenario seeds a new game: the starting roster of officials, the
// national and personal stats, and the policy slots of the state.
package scenario

import (
	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/engine"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/interaction"
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// Player starting position.
const (
	playerTrack    = social.TrackParty
	playerPosition = 2
)

// official is a roster table row.
type official struct {
	id        string
	name      string
	title     string
	faction   social.Faction
	track     social.Track
	position  int
	loyalty   int // faction loyalty
	protector string
	bias      characters.Personality
	patron    bool
	rival     bool
}

// roster is the starting cast, most senior first.
var roster = []official{
	{id: "rybakov", name: "Pavel Rybakov", title: "Marshal, Minister of Defence",
		faction: social.FactionSecurityHawks, track: social.TrackMilitary, position: 8, loyalty: 75,
		bias: characters.Personality{Ruthless: 10, Loyal: 10}},
	{id: "volkov", name: "Dmitri Volkov", title: "Secretary of the Central Committee",
		faction: social.FactionOldGuard, track: social.TrackParty, position: 7, loyalty: 85, patron: true,
		bias: characters.Personality{Loyal: 20, Paranoid: -10}},
	{id: "savchenko", name: "Grigori Savchenko", title: "Chairman of State Security",
		faction: social.FactionSecurityHawks, track: social.TrackSecurity, position: 7, loyalty: 80,
		bias: characters.Personality{Paranoid: 20, Ruthless: 20}},
	{id: "kasatkin", name: "Yuri Kasatkin", title: "First Deputy Chairman of the Council of Ministers",
		faction: social.FactionReformists, track: social.TrackState, position: 6, loyalty: 70,
		bias: characters.Personality{Competent: 15, Ambitious: 10}},
	{id: "dorokhov", name: "Nikolai Dorokhov", title: "Minister of Heavy Industry",
		faction: social.FactionOldGuard, track: social.TrackEconomic, position: 5, loyalty: 65,
		bias: characters.Personality{Corrupt: 15}},
	{id: "lazarev", name: "Boris Lazarev", title: "First Secretary of the Northern Oblast",
		faction: social.FactionRegionalists, track: social.TrackRegional, position: 5, loyalty: 75},
	{id: "morozova", name: "Elena Morozova", title: "Deputy Chair of State Planning",
		faction: social.FactionReformists, track: social.TrackEconomic, position: 4, loyalty: 80, protector: "kasatkin",
		bias: characters.Personality{Competent: 20, Corrupt: -15}},
	{id: "ulyanov", name: "Konstantin Ulyanov", title: "General, Main Political Administration",
		faction: social.FactionOldGuard, track: social.TrackMilitary, position: 4, loyalty: 60, protector: "rybakov"},
	{id: "fedin", name: "Arkady Fedin", title: "First Secretary of the Youth League",
		faction: social.FactionYouthLeague, track: social.TrackParty, position: 3, loyalty: 70,
		bias: characters.Personality{Ambitious: 15}},
	{id: "ignatova", name: "Vera Ignatova", title: "Deputy Minister of Culture",
		faction: social.FactionPrincelings, track: social.TrackState, position: 3, loyalty: 55},
	{id: "tarasov", name: "Oleg Tarasov", title: "Colonel, Second Chief Directorate",
		faction: social.FactionSecurityHawks, track: social.TrackSecurity, position: 3, loyalty: 70, protector: "savchenko",
		bias: characters.Personality{Paranoid: 10}},
	{id: "belov", name: "Sergei Belov", title: "Instructor, Organisational Department",
		faction: social.FactionPrincelings, track: playerTrack, position: 2, loyalty: 60, rival: true,
		bias: characters.Personality{Ambitious: 25, Ruthless: 15}},
	{id: "gorshkov", name: "Mikhail Gorshkov", title: "Instructor, Ideology Department",
		faction: social.FactionReformists, track: social.TrackParty, position: 1, loyalty: 65, protector: "kasatkin"},
	{id: "sokolova", name: "Lidia Sokolova", title: "Raikom Secretary",
		faction: social.FactionUnaligned, track: social.TrackRegional, position: 1, loyalty: 30},
}

// Starting dispositions toward the player.
const (
	patronDisposition = 45
	rivalDisposition  = -35
	dispositionJitter = 10
)

// startingStats are the national and personal stats at the opening session.
var startingStats = map[stats.Stat]int{
	stats.Stability:             60,
	stats.PopularSupport:        45,
	stats.MilitaryLoyalty:       65,
	stats.EliteLoyalty:          55,
	stats.Treasury:              50,
	stats.IndustrialOutput:      50,
	stats.FoodSupply:            45,
	stats.InternationalStanding: 40,
	stats.Standing:              35,
	stats.PatronFavor:           60,
	stats.RivalThreat:           30,
	stats.Network:               25,
	stats.ReputationCompetent:   50,
	stats.ReputationLoyal:       55,
	stats.ReputationCunning:     40,
	stats.ReputationRuthless:    30,
}

// Default builds the opening state of a new game. Temperament fields are
// seeded from seed; every other roll comes from src.
func Default(src entropy.Source, seed int64, playerName string) engine.State {
	temp := newTemperament(seed)

	chars := make([]*characters.Character, 0, len(roster))
	for _, o := range roster {
		c := &characters.Character{
			ID:             o.id,
			Name:           o.name,
			Title:          o.title,
			Faction:        o.faction,
			Track:          o.track,
			PositionIndex:  o.position,
			Personality:    temp.sample(src, o.track, o.position, o.bias),
			FactionLoyalty: o.loyalty,
			ProtectorID:    o.protector,
			IsPatron:       o.patron,
			IsRival:        o.rival,
			Status:         characters.StatusActive,
			IntroducedTurn: 1,
		}
		switch {
		case o.patron:
			c.Disposition = patronDisposition
			c.IsFullyRevealed = true
		case o.rival:
			c.Disposition = rivalDisposition
		default:
			c.Disposition = entropy.Between(src, -dispositionJitter, dispositionJitter)
		}
		chars = append(chars, c)
	}

	st := make(map[stats.Stat]int, len(startingStats))
	for k, v := range startingStats {
		st[k] = v
	}

	return engine.State{
		Turn: 1,
		Player: interaction.Player{
			ID:            characters.PlayerID,
			Name:          playerName,
			Track:         playerTrack,
			PositionIndex: playerPosition,
		},
		Stats:      st,
		Characters: chars,
		Slots:      DefaultSlots(),
	}
}
