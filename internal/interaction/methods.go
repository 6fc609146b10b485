package interaction

import (
	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/stats"
)

// Method is one entry of the interaction catalog. Only the fields relevant
// to its category are set.
type Method struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Risk        Risk
	CostAP      int
	MinPosition int
	BaseChance  float64

	// Investigate.
	EvidenceMin  int
	EvidenceMax  int
	RevealChance float64 // 1 guarantees the reveal on success
	AlertChance  float64

	// Cultivate.
	GainMin        int
	GainMax        int
	FailurePenalty int
	MinDisposition int
	CorruptBonus   float64
	MakesAsset     bool

	// Denounce.
	EvidenceOffset int // added to the configured evidence threshold
	ChanceShift    float64
	OnSuccess      stats.Delta
	OnFailure      stats.Delta
	Severity       []SeverityWeight
}

// SeverityWeight weights a status a successful denunciation can resolve to
// when the target is already under investigation or detained.
type SeverityWeight struct {
	Status characters.Status
	Weight int
}

var catalog = []Method{
	// Investigate: cheap methods yield 5-15 evidence, mid-tier 10-25,
	// exhaustive 25-40.
	{
		ID:           "background_check",
		Title:        "Background Check",
		Description:  "Pull the personnel file and ask a few discreet questions.",
		Category:     CategoryInvestigate,
		Risk:         RiskLow,
		CostAP:       1,
		MinPosition:  0,
		BaseChance:   0.70,
		EvidenceMin:  5,
		EvidenceMax:  15,
		RevealChance: 0.10,
		AlertChance:  0.10,
	},
	{
		ID:           "personality_profile",
		Title:        "Psychological Profile",
		Description:  "Commission a profile of the subject's habits and temperament.",
		Category:     CategoryInvestigate,
		Risk:         RiskLow,
		CostAP:       2,
		MinPosition:  1,
		BaseChance:   0.65,
		EvidenceMin:  5,
		EvidenceMax:  10,
		RevealChance: 1,
		AlertChance:  0.15,
	},
	{
		ID:           "informant_network",
		Title:        "Activate Informants",
		Description:  "Task your informants with watching the subject's office.",
		Category:     CategoryInvestigate,
		Risk:         RiskMedium,
		CostAP:       2,
		MinPosition:  2,
		BaseChance:   0.60,
		EvidenceMin:  10,
		EvidenceMax:  25,
		RevealChance: 0.20,
		AlertChance:  0.20,
	},
	{
		ID:           "full_surveillance",
		Title:        "Full Surveillance",
		Description:  "Wiretaps, mail intercepts, and round-the-clock watchers.",
		Category:     CategoryInvestigate,
		Risk:         RiskHigh,
		CostAP:       3,
		MinPosition:  4,
		BaseChance:   0.50,
		EvidenceMin:  25,
		EvidenceMax:  40,
		RevealChance: 0.30,
		AlertChance:  0.35,
	},

	// Cultivate.
	{
		ID:             "casual_conversation",
		Title:          "Casual Conversation",
		Description:    "Linger after the meeting and talk about nothing in particular.",
		Category:       CategoryCultivate,
		Risk:           RiskLow,
		CostAP:         1,
		MinPosition:    0,
		BaseChance:     0.75,
		GainMin:        4,
		GainMax:        8,
		MinDisposition: characters.MinDisposition,
	},
	{
		ID:             "gift",
		Title:          "Send a Gift",
		Description:    "Imported cognac, theatre tickets, a dacha weekend.",
		Category:       CategoryCultivate,
		Risk:           RiskLow,
		CostAP:         1,
		MinPosition:    1,
		BaseChance:     0.65,
		GainMin:        6,
		GainMax:        12,
		FailurePenalty: 2,
		MinDisposition: characters.MinDisposition,
		CorruptBonus:   0.15,
	},
	{
		ID:             "shared_dinner",
		Title:          "Private Dinner",
		Description:    "Invite the subject and their spouse to dine at your apartment.",
		Category:       CategoryCultivate,
		Risk:           RiskMedium,
		CostAP:         2,
		MinPosition:    1,
		BaseChance:     0.60,
		GainMin:        8,
		GainMax:        15,
		FailurePenalty: 3,
		MinDisposition: characters.MinDisposition,
	},
	{
		ID:             "professional_favor",
		Title:          "Professional Favor",
		Description:    "Smooth a transfer, expedite an allocation, lose a complaint.",
		Category:       CategoryCultivate,
		Risk:           RiskMedium,
		CostAP:         2,
		MinPosition:    3,
		BaseChance:     0.55,
		GainMin:        12,
		GainMax:        20,
		FailurePenalty: 5,
		MinDisposition: characters.MinDisposition,
	},
	{
		ID:             "recruit_informant",
		Title:          "Recruit as Informant",
		Description:    "Ask the subject to report on their colleagues.",
		Category:       CategoryCultivate,
		Risk:           RiskHigh,
		CostAP:         3,
		MinPosition:    2,
		BaseChance:     0.45,
		GainMin:        5,
		GainMax:        10,
		FailurePenalty: 10,
		MinDisposition: 40,
		MakesAsset:     true,
	},

	// Denounce.
	{
		ID:          "quiet_word",
		Title:       "A Quiet Word",
		Description: "Mention your concerns to the right person, off the record.",
		Category:    CategoryDenounce,
		Risk:        RiskLow,
		CostAP:      2,
		MinPosition: 1,
		ChanceShift: 0.10,
		OnSuccess:   stats.Delta{stats.Standing: 3, stats.ReputationRuthless: 2, stats.RivalThreat: -2},
		OnFailure:   stats.Delta{stats.Standing: -5, stats.PatronFavor: -3, stats.ReputationRuthless: 1, stats.RivalThreat: 5},
		Severity: []SeverityWeight{
			{characters.StatusImprisoned, 70},
			{characters.StatusExiled, 30},
		},
	},
	{
		ID:             "formal_complaint",
		Title:          "Formal Complaint",
		Description:    "File a written complaint with the Control Commission.",
		Category:       CategoryDenounce,
		Risk:           RiskMedium,
		CostAP:         3,
		MinPosition:    2,
		EvidenceOffset: 10,
		OnSuccess:      stats.Delta{stats.Standing: 5, stats.ReputationRuthless: 4, stats.RivalThreat: -4},
		OnFailure:      stats.Delta{stats.Standing: -10, stats.PatronFavor: -5, stats.ReputationRuthless: 2, stats.RivalThreat: 10},
		Severity: []SeverityWeight{
			{characters.StatusImprisoned, 50},
			{characters.StatusExiled, 25},
			{characters.StatusDisappeared, 15},
			{characters.StatusExecuted, 10},
		},
	},
	{
		ID:             "public_accusation",
		Title:          "Public Accusation",
		Description:    "Denounce the subject before the plenum.",
		Category:       CategoryDenounce,
		Risk:           RiskHigh,
		CostAP:         4,
		MinPosition:    4,
		EvidenceOffset: 20,
		ChanceShift:    -0.10,
		OnSuccess:      stats.Delta{stats.Standing: 8, stats.ReputationRuthless: 6, stats.RivalThreat: -6},
		OnFailure:      stats.Delta{stats.Standing: -15, stats.PatronFavor: -10, stats.ReputationRuthless: 3, stats.RivalThreat: 15},
		Severity: []SeverityWeight{
			{characters.StatusImprisoned, 30},
			{characters.StatusExiled, 15},
			{characters.StatusDisappeared, 25},
			{characters.StatusExecuted, 25},
			{characters.StatusDead, 5},
		},
	},
}

// Methods returns the catalog entries of category in display order.
func Methods(category Category) []Method {
	var out []Method
	for _, m := range catalog {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// LookupMethod returns the catalog entry with the given id.
func LookupMethod(id string) (Method, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}
