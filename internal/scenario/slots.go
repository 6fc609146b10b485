package scenario

import (
	"github.com/talgya/apparat/internal/policy"
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// DefaultSlots returns fresh copies of the opening policy slots.
func DefaultSlots() []*policy.Slot {
	return []*policy.Slot{
		{
			ID:          "party_charter",
			Name:        "Party Charter",
			Institution: "Central Committee",
			Category:    policy.CategoryInstitutional,
			Options: []policy.Option{
				{ID: "collective_leadership", Name: "Collective Leadership",
					Description: "The Presidium decides by consensus.",
					Beneficiaries: []social.Faction{social.FactionOldGuard, social.FactionRegionalists}},
				{ID: "paramount_leader", Name: "Paramount Leader",
					Description:          "The General Secretary may rule by decree.",
					MinimumPowerRequired: 75, IsExtreme: true,
					Effects:       policy.Effects{Stats: stats.Delta{stats.EliteLoyalty: -10, stats.Stability: 5}, EnablesDecrees: true},
					Beneficiaries: []social.Faction{social.FactionSecurityHawks},
					Losers:        []social.Faction{social.FactionOldGuard, social.FactionRegionalists}},
			},
			DefaultOptionID: "collective_leadership",
		},
		{
			ID:          "economic_planning",
			Name:        "Economic Planning",
			Institution: "State Planning Committee",
			Category:    policy.CategoryEconomic,
			Options: []policy.Option{
				{ID: "central_plan", Name: "Central Plan",
					Description: "Five-year targets set from the centre."},
				{ID: "enterprise_autonomy", Name: "Enterprise Autonomy",
					Description:          "Managers keep a share of above-plan profit.",
					MinimumPowerRequired: 45,
					Effects:              policy.Effects{Stats: stats.Delta{stats.IndustrialOutput: 6, stats.EliteLoyalty: -4, stats.Treasury: 3}},
					Beneficiaries:        []social.Faction{social.FactionReformists},
					Losers:               []social.Faction{social.FactionOldGuard}},
				{ID: "war_footing", Name: "War Footing",
					Description:          "Heavy industry and armaments before consumer goods.",
					MinimumPowerRequired: 60,
					Effects:              policy.Effects{Stats: stats.Delta{stats.IndustrialOutput: 8, stats.FoodSupply: -6, stats.MilitaryLoyalty: 6}},
					Beneficiaries:        []social.Faction{social.FactionSecurityHawks},
					Losers:               []social.Faction{social.FactionReformists}},
			},
			DefaultOptionID: "central_plan",
		},
		{
			ID:          "internal_security",
			Name:        "Internal Security",
			Institution: "Committee for State Security",
			Category:    policy.CategorySecurity,
			Options: []policy.Option{
				{ID: "socialist_legality", Name: "Socialist Legality",
					Description: "Arrests require a prosecutor's sanction."},
				{ID: "vigilance_campaign", Name: "Vigilance Campaign",
					Description:          "Citizens are urged to report anti-state elements.",
					MinimumPowerRequired: 50,
					Effects:              policy.Effects{Stats: stats.Delta{stats.Stability: 5, stats.PopularSupport: -5}},
					Beneficiaries:        []social.Faction{social.FactionSecurityHawks},
					Losers:               []social.Faction{social.FactionReformists}},
				{ID: "mass_purge", Name: "Mass Purge",
					Description:          "The organs are given a free hand against enemies of the people.",
					MinimumPowerRequired: 80, IsExtreme: true,
					Effects:              policy.Effects{Stats: stats.Delta{stats.EliteLoyalty: -15, stats.PopularSupport: -10, stats.Stability: -5}, EnablesPurges: true},
					Beneficiaries:        []social.Faction{social.FactionSecurityHawks},
					Losers:               []social.Faction{social.FactionReformists, social.FactionOldGuard, social.FactionRegionalists}},
			},
			DefaultOptionID: "socialist_legality",
		},
		{
			ID:          "press",
			Name:        "Press Policy",
			Institution: "Ideology Department",
			Category:    policy.CategorySocial,
			Options: []policy.Option{
				{ID: "guided_press", Name: "Guided Press",
					Description: "Editors follow the Department's weekly guidance."},
				{ID: "thaw", Name: "Cultural Thaw",
					Description:          "Selected criticism is permitted in the literary journals.",
					MinimumPowerRequired: 40,
					Effects:              policy.Effects{Stats: stats.Delta{stats.PopularSupport: 6, stats.Stability: -3, stats.InternationalStanding: 3}},
					Beneficiaries:        []social.Faction{social.FactionReformists, social.FactionYouthLeague},
					Losers:               []social.Faction{social.FactionOldGuard}},
				{ID: "information_blackout", Name: "Information Blackout",
					Description:          "Foreign broadcasts jammed, the samizdat hunted down.",
					MinimumPowerRequired: 55,
					Effects:              policy.Effects{Stats: stats.Delta{stats.PopularSupport: -4, stats.Stability: 4, stats.InternationalStanding: -4}},
					Beneficiaries:        []social.Faction{social.FactionSecurityHawks},
					Losers:               []social.Faction{social.FactionReformists}},
			},
			DefaultOptionID: "guided_press",
		},
		{
			ID:          "foreign_posture",
			Name:        "Foreign Posture",
			Institution: "Ministry of Foreign Affairs",
			Category:    policy.CategoryForeign,
			Options: []policy.Option{
				{ID: "peaceful_coexistence", Name: "Peaceful Coexistence",
					Description: "Competition with the West short of war."},
				{ID: "detente", Name: "Détente",
					Description:          "Arms talks and grain purchases abroad.",
					MinimumPowerRequired: 45,
					Effects:              policy.Effects{Stats: stats.Delta{stats.InternationalStanding: 8, stats.FoodSupply: 4, stats.MilitaryLoyalty: -4}},
					Beneficiaries:        []social.Faction{social.FactionReformists},
					Losers:               []social.Faction{social.FactionSecurityHawks}},
				{ID: "confrontation", Name: "Confrontation",
					Description:          "Forward deployments and a war of nerves.",
					MinimumPowerRequired: 55,
					Effects:              policy.Effects{Stats: stats.Delta{stats.MilitaryLoyalty: 6, stats.InternationalStanding: -8, stats.Treasury: -4}},
					Beneficiaries:        []social.Faction{social.FactionSecurityHawks, social.FactionOldGuard},
					Losers:               []social.Faction{social.FactionReformists}},
			},
			DefaultOptionID: "peaceful_coexistence",
		},
	}
}
