package interaction

import (
	"fmt"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

// Protection model.
const (
	protectorBase        = 15
	protectorPerRank     = 2
	factionShieldLoyalty = 60
	factionShieldEach    = 5
	factionShieldCap     = 20

	failureDisposition = -30

	returnProbabilityBase = 20
	returnProbabilityMin  = 10
	returnProbabilityMax  = 60
)

// denounceable reports whether a character in status s can still be
// denounced.
func denounceable(s characters.Status) bool {
	switch s {
	case characters.StatusActive, characters.StatusUnderInvestigation, characters.StatusDetained:
		return true
	}
	return false
}

func (r *Resolver) evidenceRequired(m Method) int {
	return r.rules.DenounceEvidenceThreshold + m.EvidenceOffset
}

// Protection returns how well shielded c is against denunciation: an active
// protector contributes a base amount plus a bonus per rank, and loyal
// faction colleagues of equal or higher rank close ranks around the target.
func (r *Resolver) Protection(c *characters.Character) int {
	total := 0
	if c.ProtectorID != "" && c.ProtectorID != characters.PlayerID {
		if p, err := r.registry.Get(c.ProtectorID); err == nil && p.Status == characters.StatusActive {
			total += protectorBase + protectorPerRank*p.PositionIndex
		}
	}

	if c.Faction == social.FactionUnaligned {
		return total
	}
	shield := 0
	for _, o := range r.registry.All() {
		if o.ID == c.ID || o.Faction != c.Faction || !o.Status.IsPresent() {
			continue
		}
		if o.FactionLoyalty >= factionShieldLoyalty && o.PositionIndex >= c.PositionIndex {
			shield += factionShieldEach
		}
	}
	return total + min(shield, factionShieldCap)
}

// DenounceChance returns the success probability of m against c given its
// protection.
func DenounceChance(c *characters.Character, m Method, protection int) float64 {
	return clampChance(float64(c.EvidenceLevel-protection)/100 + 0.25 + m.ChanceShift)
}

// Denounce spends the evidence held on c to bring them down. Success moves
// an active target under investigation (or into detention for the highest
// tier) and finishes off a target already in trouble with a weighted
// sentence. Failure turns the target against the player, and for the
// highest tier makes them a rival. Ledger repercussions apply either way.
func (r *Resolver) Denounce(c *characters.Character, methodID string) (DenounceResult, error) {
	m, refused, err := r.begin(c, methodID, CategoryDenounce)
	if err != nil {
		return DenounceResult{}, err
	}
	if refused != nil {
		return DenounceResult{Result: *refused, PreviousStatus: c.Status, NewStatus: c.Status}, nil
	}

	turn := r.budget.Turn
	protection := r.Protection(c)
	p := DenounceChance(c, m, protection)
	res := DenounceResult{
		Result:         Result{MethodID: m.ID, CostAP: m.CostAP, Probability: p},
		PreviousStatus: c.Status,
		Protection:     protection,
	}

	success := r.roll(p)
	res.Outcome = outcomeOf(success)
	res.EvidenceSpent = c.SpendEvidence()
	c.LastDenouncedTurn = &turn

	if success {
		to := r.sentence(c, m)
		details := fmt.Sprintf("Denounced by %s (%s)", r.player.Name, m.Title)
		if to == characters.StatusDisappeared {
			c.MightReturn = true
			c.ReturnProbability = stats.Clamp(returnProbabilityBase+protection/2, returnProbabilityMin, returnProbabilityMax)
		}
		if err := r.registry.Transition(c, to, turn, details); err != nil {
			r.resolving = false
			return DenounceResult{}, fmt.Errorf("interaction: denounce %s: %w", c.ID, err)
		}
		res.StatusChanged = true
		res.Repercussions = r.ledger.Apply(m.OnSuccess)
		res.Summary = fmt.Sprintf("%s against %s succeeded: %s", m.Title, c.Name, to.DisplayText())
	} else {
		res.DispositionChange = c.AdjustDisposition(failureDisposition)
		if m.Risk == RiskHigh {
			c.IsRival = true
			res.Backfired = true
		}
		res.Repercussions = r.ledger.Apply(m.OnFailure)
		res.Summary = fmt.Sprintf("%s against %s failed", m.Title, c.Name)
		if res.Backfired {
			res.Summary += " and made a rival of them"
		}
	}
	res.NewStatus = c.Status

	r.log.Debug("denunciation rolled",
		"character", c.Name,
		"method", m.ID,
		"probability", p,
		"protection", protection,
		"evidence_spent", res.EvidenceSpent,
	)
	r.done(c, m, &res.Result, res.DispositionChange)
	return res, nil
}

// sentence picks the status a successful denunciation moves c to.
func (r *Resolver) sentence(c *characters.Character, m Method) characters.Status {
	if c.Status == characters.StatusActive {
		if m.Risk == RiskHigh {
			return characters.StatusDetained
		}
		return characters.StatusUnderInvestigation
	}
	weights := make([]int, len(m.Severity))
	for i, s := range m.Severity {
		weights[i] = s.Weight
	}
	i := entropy.Weighted(r.src, weights)
	if i < 0 {
		return characters.StatusImprisoned
	}
	return m.Severity[i].Status
}
