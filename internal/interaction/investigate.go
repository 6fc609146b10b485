package interaction

import (
	"fmt"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/stats"
)

// InvestigateChance returns the success probability of m against c for the
// current player and ledger.
func (r *Resolver) InvestigateChance(c *characters.Character, m Method) float64 {
	p := m.BaseChance +
		0.003*float64(r.ledger.Get(stats.Network)) +
		0.02*float64(r.player.PositionIndex) -
		0.004*float64(c.Personality.Paranoid) -
		0.05*float64(c.AlertLevel)
	return clampChance(p)
}

func alertChance(c *characters.Character, m Method) float64 {
	return m.AlertChance + 0.002*float64(c.Personality.Paranoid)
}

// Investigate gathers evidence on c. On success the evidence level rises by
// a roll within the method's band and the target's personality may be
// revealed. Independently of success the target may notice and raise its
// alert level, which makes later investigations harder. An active target
// already at MaxAlertLevel who notices a high-risk investigation is placed
// under investigation.
func (r *Resolver) Investigate(c *characters.Character, methodID string) (InvestigateResult, error) {
	m, refused, err := r.begin(c, methodID, CategoryInvestigate)
	if err != nil {
		return InvestigateResult{}, err
	}
	if refused != nil {
		return InvestigateResult{Result: *refused, EvidenceLevel: c.EvidenceLevel}, nil
	}

	p := r.InvestigateChance(c, m)
	res := InvestigateResult{Result: Result{MethodID: m.ID, CostAP: m.CostAP, Probability: p}}

	success := r.roll(p)
	if success {
		res.EvidenceGained = c.AddEvidence(entropy.Between(r.src, m.EvidenceMin, m.EvidenceMax))
		if m.RevealChance >= 1 || r.roll(m.RevealChance) {
			res.PersonalityRevealed = c.Reveal()
		}
	}
	if r.roll(alertChance(c, m)) {
		if c.AlertLevel >= characters.MaxAlertLevel && m.Risk == RiskHigh && c.Status == characters.StatusActive {
			details := fmt.Sprintf("Exposed by %s (%s)", r.player.Name, m.Title)
			if err := r.registry.Transition(c, characters.StatusUnderInvestigation, r.budget.Turn, details); err != nil {
				r.resolving = false
				return InvestigateResult{}, fmt.Errorf("interaction: investigate %s: %w", c.ID, err)
			}
			res.TargetAlerted = true
			res.StatusChanged = true
		} else {
			res.TargetAlerted = c.RaiseAlert()
		}
	}
	res.EvidenceLevel = c.EvidenceLevel
	res.Outcome = outcomeOf(success)

	switch {
	case success && res.PersonalityRevealed:
		res.Summary = fmt.Sprintf("%s on %s turned up %d evidence and a clear picture of their character", m.Title, c.Name, res.EvidenceGained)
	case success:
		res.Summary = fmt.Sprintf("%s on %s turned up %d evidence", m.Title, c.Name, res.EvidenceGained)
	default:
		res.Summary = fmt.Sprintf("%s on %s found nothing of use", m.Title, c.Name)
	}
	switch {
	case res.StatusChanged:
		res.Summary += "; the exposure put them under investigation"
	case res.TargetAlerted:
		res.Summary += "; they noticed the attention"
	}

	r.log.Debug("investigation rolled",
		"character", c.Name,
		"method", m.ID,
		"probability", p,
		"evidence_gained", res.EvidenceGained,
		"alerted", res.TargetAlerted,
	)
	r.done(c, m, &res.Result, 0)
	return res, nil
}
