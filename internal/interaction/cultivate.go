package interaction

import (
	"fmt"
	"strings"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/stats"
)

// Cultivation milestone thresholds. Each fires when a successful roll
// carries the disposition from below the threshold to at or above it, and
// the matching bond has never been set.
const (
	allyDisposition         = 80
	protegeDisposition      = 65
	assetDisposition        = 50
	rivalryEndedDisposition = 20

	compatibilityLoyalty = 60
	corruptionThreshold  = 60
)

// Ledger effects of the milestones.
var (
	allyEffect         = stats.Delta{stats.Network: 2}
	protegeEffect      = stats.Delta{stats.Standing: 1}
	assetEffect        = stats.Delta{stats.Network: 3}
	rivalryEndedEffect = stats.Delta{stats.RivalThreat: -10}
)

// CultivateChance returns the success probability of m against c.
func (r *Resolver) CultivateChance(c *characters.Character, m Method) float64 {
	p := m.BaseChance +
		0.002*float64(c.Disposition) -
		0.003*float64(c.Personality.Paranoid) -
		0.002*float64(c.Personality.Ruthless)
	if c.Personality.Loyal >= compatibilityLoyalty && r.ledger.Get(stats.ReputationLoyal) >= compatibilityLoyalty {
		p += 0.10
	}
	if m.CorruptBonus > 0 && c.Personality.Corrupt >= corruptionThreshold {
		p += m.CorruptBonus
	}
	return clampChance(p)
}

// Cultivate works on c's disposition toward the player. Success raises it by
// a roll within the method's band; failure may cost a little goodwill.
// Crossing a milestone threshold turns the character into an ally,
// protégé, intelligence asset, or former rival, each at most once.
func (r *Resolver) Cultivate(c *characters.Character, methodID string) (CultivateResult, error) {
	m, refused, err := r.begin(c, methodID, CategoryCultivate)
	if err != nil {
		return CultivateResult{}, err
	}
	if refused != nil {
		return CultivateResult{Result: *refused, Disposition: c.Disposition, Trust: TrustFor(c.Disposition)}, nil
	}

	p := r.CultivateChance(c, m)
	res := CultivateResult{Result: Result{MethodID: m.ID, CostAP: m.CostAP, Probability: p}}

	before := c.Disposition
	success := r.roll(p)
	if success {
		res.DispositionChange = c.AdjustDisposition(entropy.Between(r.src, m.GainMin, m.GainMax))
	} else if m.FailurePenalty > 0 {
		res.DispositionChange = c.AdjustDisposition(-m.FailurePenalty)
	}
	res.Outcome = outcomeOf(success)

	if success {
		res.StatChanges = r.milestones(c, m, before, &res)
	}
	res.Disposition = c.Disposition
	res.Trust = TrustFor(c.Disposition)

	if success {
		res.Summary = fmt.Sprintf("%s with %s went well (%+d, now %s)", m.Title, c.Name, res.DispositionChange, res.Trust)
		if ms := res.milestoneNames(); ms != "" {
			res.Summary += "; " + ms
		}
	} else {
		res.Summary = fmt.Sprintf("%s with %s fell flat (%+d)", m.Title, c.Name, res.DispositionChange)
	}

	r.log.Debug("cultivation rolled",
		"character", c.Name,
		"method", m.ID,
		"probability", p,
		"disposition", c.Disposition,
	)
	r.done(c, m, &res.Result, res.DispositionChange)
	return res, nil
}

// milestones sets the bonds newly earned by c, whose disposition stood at
// before ahead of the roll, and applies their ledger effects, returning the
// effective stat changes.
func (r *Resolver) milestones(c *characters.Character, m Method, before int, res *CultivateResult) stats.Delta {
	earned := stats.Delta{}
	crossed := func(threshold int) bool {
		return before < threshold && c.Disposition >= threshold
	}

	if !c.Bonds.Ally && crossed(allyDisposition) {
		c.Bonds.Ally = true
		res.BecameAlly = true
		earned = earned.Merge(allyEffect)
	}
	if !c.Bonds.Protege && crossed(protegeDisposition) &&
		c.PositionIndex < r.player.PositionIndex && c.ProtectorID == "" {
		c.Bonds.Protege = true
		c.ProtectorID = characters.PlayerID
		res.BecameProtege = true
		earned = earned.Merge(protegeEffect)
	}
	if m.MakesAsset && !c.Bonds.Asset && crossed(assetDisposition) {
		c.Bonds.Asset = true
		res.BecameAsset = true
		earned = earned.Merge(assetEffect)
	}
	if c.IsRival && !c.Bonds.RivalryEnded && crossed(rivalryEndedDisposition) {
		c.Bonds.RivalryEnded = true
		c.IsRival = false
		res.RivalryEnded = true
		earned = earned.Merge(rivalryEndedEffect)
	}

	if earned.IsZero() {
		return nil
	}
	applied := r.ledger.Apply(earned)
	if res.BecameAlly || res.BecameProtege || res.BecameAsset || res.RivalryEnded {
		r.log.Info("cultivation milestone",
			"character", c.Name,
			"ally", res.BecameAlly,
			"protege", res.BecameProtege,
			"asset", res.BecameAsset,
			"rivalry_ended", res.RivalryEnded,
		)
	}
	return applied
}

func (res CultivateResult) milestoneNames() string {
	var parts []string
	if res.BecameAlly {
		parts = append(parts, "now a trusted ally")
	}
	if res.BecameProtege {
		parts = append(parts, "accepted your protection")
	}
	if res.BecameAsset {
		parts = append(parts, "agreed to report for you")
	}
	if res.RivalryEnded {
		parts = append(parts, "no longer a rival")
	}
	return strings.Join(parts, ", ")
}
