package interaction

import (
	"errors"
	"strings"
	"testing"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/social"
	"github.com/talgya/apparat/internal/stats"
)

type fixture struct {
	res     *Resolver
	reg     *characters.Registry
	ledger  *stats.Ledger
	journal *journal.Log
}

func newFixture(t *testing.T, src entropy.Source, regOpts ...characters.Option) *fixture {
	t.Helper()
	reg := characters.NewRegistry(entropy.New(1), regOpts...)
	ledger := stats.NewLedger(nil)
	log := journal.NewLog(0)
	player := &Player{ID: characters.PlayerID, Name: "You", Track: social.TrackParty, PositionIndex: 4}
	return &fixture{
		res:     New(ledger, reg, src, player, WithJournal(log)),
		reg:     reg,
		ledger:  ledger,
		journal: log,
	}
}

func (f *fixture) add(t *testing.T, c *characters.Character) *characters.Character {
	t.Helper()
	if c.Name == "" {
		c.Name = "Comrade " + c.ID
	}
	if err := f.reg.Add(c); err != nil {
		t.Fatalf("Add %s: %v", c.ID, err)
	}
	return c
}

func TestCultivationReachesAllyOnce(t *testing.T) {
	// Every roll succeeds and the gain roll lands on the top of the band.
	f := newFixture(t, &entropy.Script{Floats: []float64{0}, Ints: []int{4}})
	c := f.add(t, &characters.Character{ID: "c", Disposition: 75, PositionIndex: 6})

	first, err := f.res.Cultivate(c, "casual_conversation")
	if err != nil {
		t.Fatalf("Cultivate: %v", err)
	}
	if !first.Succeeded() || first.DispositionChange != 8 || first.Disposition != 83 {
		t.Fatalf("first cultivation = %+v", first)
	}
	if !first.BecameAlly || !c.Bonds.Ally {
		t.Fatal("disposition 83 did not make an ally")
	}
	if first.BecameProtege {
		t.Fatal("a higher-ranked official cannot become a protégé")
	}
	if first.Trust != TrustDevoted {
		t.Fatalf("trust = %s, want devoted", first.Trust)
	}
	network := f.ledger.Get(stats.Network)

	second, err := f.res.Cultivate(c, "casual_conversation")
	if err != nil {
		t.Fatalf("Cultivate: %v", err)
	}
	if second.BecameAlly {
		t.Fatal("ally milestone fired twice")
	}
	if got := f.ledger.Get(stats.Network); got != network {
		t.Fatalf("network changed from %d to %d without a milestone", network, got)
	}
	if len(c.History) != 2 || f.journal.Len() != 2 {
		t.Fatalf("history = %d, journal = %d, want 2 each", len(c.History), f.journal.Len())
	}
}

func TestCultivationMilestones(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0}, Ints: []int{0}})
	junior := f.add(t, &characters.Character{ID: "junior", Disposition: 60, PositionIndex: 1})
	rival := f.add(t, &characters.Character{ID: "rival", Disposition: 15, PositionIndex: 6, IsRival: true})
	informant := f.add(t, &characters.Character{ID: "informant", Disposition: 45, PositionIndex: 6})

	res, _ := f.res.Cultivate(junior, "casual_conversation") // +4 -> 64
	if res.BecameProtege {
		t.Fatal("64 is below the protégé threshold")
	}
	f.res.ResetTurn(2)
	res, _ = f.res.Cultivate(junior, "casual_conversation") // +4 -> 68
	if !res.BecameProtege || junior.ProtectorID != characters.PlayerID {
		t.Fatalf("junior at 68 not taken under protection: %+v", res)
	}

	res, _ = f.res.Cultivate(rival, "casual_conversation") // +4 -> 19
	if res.RivalryEnded {
		t.Fatal("19 is below the reconciliation threshold")
	}
	res, _ = f.res.Cultivate(rival, "casual_conversation") // +4 -> 23
	if !res.RivalryEnded || rival.IsRival {
		t.Fatalf("rivalry not ended at 23: %+v", res)
	}
	if res.StatChanges[stats.RivalThreat] != -10 {
		t.Fatalf("stat changes = %v", res.StatChanges)
	}

	f.res.ResetTurn(3)
	res, _ = f.res.Cultivate(informant, "recruit_informant") // +5 -> 50
	if !res.BecameAsset || !informant.Bonds.Asset {
		t.Fatalf("recruitment at 50 did not make an asset: %+v", res)
	}
}

func TestCultivationFailurePenalty(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0.99}})
	c := f.add(t, &characters.Character{ID: "c", Disposition: 45})

	res, err := f.res.Cultivate(c, "recruit_informant")
	if err != nil {
		t.Fatalf("Cultivate: %v", err)
	}
	if res.Outcome != OutcomeFailure || res.DispositionChange != -10 || c.Disposition != 35 {
		t.Fatalf("failed recruitment = %+v", res)
	}
	if c.History[0].Outcome != characters.RecordFailure {
		t.Fatalf("history outcome = %s", c.History[0].Outcome)
	}
}

func TestRecruitRequiresDisposition(t *testing.T) {
	f := newFixture(t, &entropy.Script{})
	c := f.add(t, &characters.Character{ID: "c", Disposition: 39})

	res, err := f.res.Cultivate(c, "recruit_informant")
	if err != nil {
		t.Fatalf("Cultivate: %v", err)
	}
	if !res.Refused() || !strings.Contains(res.Reason, "disposition") {
		t.Fatalf("result = %+v, want a disposition refusal", res)
	}
}

func TestDenounceRequiresEvidence(t *testing.T) {
	f := newFixture(t, &entropy.Script{})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 15})
	before := f.res.Budget()

	res, err := f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.Outcome != OutcomePreconditionNotMet {
		t.Fatalf("outcome = %s, want precondition_not_met", res.Outcome)
	}
	if !strings.Contains(strings.ToLower(res.Reason), "insufficient evidence") {
		t.Fatalf("reason = %q", res.Reason)
	}
	if f.res.Budget() != before {
		t.Fatalf("budget spent on a refusal: %+v -> %+v", before, f.res.Budget())
	}
	if c.EvidenceLevel != 15 || c.Status != characters.StatusActive || len(c.History) != 0 {
		t.Fatalf("refusal changed the character: %+v", c)
	}
}

func TestDenounceCooldown(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0.99}})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 80})

	first, err := f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if first.Outcome != OutcomeFailure {
		t.Fatalf("first outcome = %s, want failure", first.Outcome)
	}
	if c.EvidenceLevel != 0 || first.EvidenceSpent != 80 {
		t.Fatalf("evidence after denunciation = %d (spent %d)", c.EvidenceLevel, first.EvidenceSpent)
	}

	c.EvidenceLevel = 80
	f.res.ResetTurn(2)
	second, err := f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if !second.Refused() || !strings.Contains(second.Reason, "cooldown") || !strings.Contains(second.Reason, "2 turn(s) remaining") {
		t.Fatalf("second result = %+v, want a cooldown refusal", second)
	}

	f.res.ResetTurn(4)
	third, err := f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if third.Refused() {
		t.Fatalf("cooldown still active three turns later: %s", third.Reason)
	}
}

func TestDenounceFailureRepercussions(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0.99}})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 60, Disposition: 10})

	res, err := f.res.Denounce(c, "public_accusation")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.Outcome != OutcomeFailure || !res.Backfired || !c.IsRival {
		t.Fatalf("failed public accusation = %+v", res)
	}
	if c.Disposition != -20 {
		t.Fatalf("disposition = %d, want -20", c.Disposition)
	}
	if got := f.ledger.Get(stats.Standing); got != 35 {
		t.Fatalf("standing = %d, want 35", got)
	}
	if res.Repercussions[stats.PatronFavor] != -10 || res.Repercussions[stats.RivalThreat] != 15 {
		t.Fatalf("repercussions = %v", res.Repercussions)
	}
	if c.Status != characters.StatusActive || res.StatusChanged {
		t.Fatal("failed denunciation changed status")
	}
}

func TestDenounceSuccessEscalates(t *testing.T) {
	// weights 70/30; an int roll of 75 lands in the exile band.
	f := newFixture(t, &entropy.Script{Floats: []float64{0}, Ints: []int{75}})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 40})

	res, err := f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.NewStatus != characters.StatusUnderInvestigation || !res.StatusChanged {
		t.Fatalf("active target moved to %s", res.NewStatus)
	}
	if got := f.ledger.Get(stats.Standing); got != 53 {
		t.Fatalf("standing = %d, want 53", got)
	}

	c.EvidenceLevel = 40
	f.res.ResetTurn(4)
	res, err = f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.PreviousStatus != characters.StatusUnderInvestigation || res.NewStatus != characters.StatusExiled {
		t.Fatalf("escalation = %s -> %s, want exile", res.PreviousStatus, res.NewStatus)
	}
	if c.StatusChangedTurn != 4 {
		t.Fatalf("status changed turn = %d", c.StatusChangedTurn)
	}
}

func TestHighTierDenounceDetains(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0}})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 70})

	res, err := f.res.Denounce(c, "public_accusation")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.NewStatus != characters.StatusDetained {
		t.Fatalf("status = %s, want detained", res.NewStatus)
	}
}

func TestDisappearanceMayReturn(t *testing.T) {
	// weights 50/25/15/10; 80 falls in the disappeared band.
	f := newFixture(t, &entropy.Script{Floats: []float64{0}, Ints: []int{80}})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 60, Status: characters.StatusDetained})

	res, err := f.res.Denounce(c, "formal_complaint")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.NewStatus != characters.StatusDisappeared {
		t.Fatalf("status = %s, want disappeared", res.NewStatus)
	}
	if !c.MightReturn || c.ReturnProbability != 20 {
		t.Fatalf("return = %v/%d, want true/20", c.MightReturn, c.ReturnProbability)
	}
}

func TestProtection(t *testing.T) {
	f := newFixture(t, &entropy.Script{})
	patron := f.add(t, &characters.Character{ID: "patron", PositionIndex: 5})
	target := f.add(t, &characters.Character{ID: "t", Faction: social.FactionOldGuard, PositionIndex: 3, ProtectorID: patron.ID})
	for i, pos := range []int{3, 4, 5, 6, 7} {
		f.add(t, &characters.Character{ID: string(rune('a' + i)), Faction: social.FactionOldGuard, PositionIndex: pos, FactionLoyalty: 70})
	}
	f.add(t, &characters.Character{ID: "junior", Faction: social.FactionOldGuard, PositionIndex: 1, FactionLoyalty: 90})
	f.add(t, &characters.Character{ID: "lukewarm", Faction: social.FactionOldGuard, PositionIndex: 6, FactionLoyalty: 40})

	// 15 + 2*5 from the patron, five colleagues capped at 20.
	if got := f.res.Protection(target); got != 45 {
		t.Fatalf("protection = %d, want 45", got)
	}
	if err := f.reg.Transition(patron, characters.StatusDetained, 1, ""); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got := f.res.Protection(target); got != 20 {
		t.Fatalf("protection without an active patron = %d, want 20", got)
	}
}

func TestDenounceChanceBounds(t *testing.T) {
	m, _ := LookupMethod("quiet_word")
	cases := []struct {
		evidence, protection int
		want                 float64
	}{
		{0, 100, 0.05},
		{100, 0, 0.95},
		{40, 20, 0.55},
	}
	for _, tc := range cases {
		c := &characters.Character{EvidenceLevel: tc.evidence}
		if got := DenounceChance(c, m, tc.protection); got < tc.want-1e-9 || got > tc.want+1e-9 {
			t.Errorf("DenounceChance(%d, %d) = %v, want %v", tc.evidence, tc.protection, got, tc.want)
		}
	}
}

func TestInvestigationEvidenceIsMonotonicAndBounded(t *testing.T) {
	f := newFixture(t, entropy.New(42))
	c := f.add(t, &characters.Character{ID: "c", Personality: characters.Personality{Paranoid: 30}})

	prev := 0
	for turn := 1; turn <= 60; turn++ {
		f.res.ResetTurn(turn)
		res, err := f.res.Investigate(c, "full_surveillance")
		if err != nil {
			t.Fatalf("Investigate: %v", err)
		}
		if res.Refused() {
			t.Fatalf("turn %d refused: %s", turn, res.Reason)
		}
		if c.EvidenceLevel < prev || c.EvidenceLevel > characters.MaxEvidence {
			t.Fatalf("turn %d: evidence %d after %d", turn, c.EvidenceLevel, prev)
		}
		if c.AlertLevel > characters.MaxAlertLevel {
			t.Fatalf("alert level %d", c.AlertLevel)
		}
		prev = c.EvidenceLevel
	}
	if c.EvidenceLevel != characters.MaxEvidence {
		t.Fatalf("evidence after 60 surveillance turns = %d, want saturated", c.EvidenceLevel)
	}
}

func TestInvestigateRevealAndAlert(t *testing.T) {
	// success, evidence roll, alert roll
	f := newFixture(t, &entropy.Script{Floats: []float64{0, 0}, Ints: []int{0}})
	c := f.add(t, &characters.Character{ID: "c"})

	res, err := f.res.Investigate(c, "personality_profile")
	if err != nil {
		t.Fatalf("Investigate: %v", err)
	}
	if !res.Succeeded() || res.EvidenceGained != 5 || !res.PersonalityRevealed || !c.IsFullyRevealed {
		t.Fatalf("profile = %+v", res)
	}
	if !res.TargetAlerted || c.AlertLevel != 1 {
		t.Fatalf("alert = %v/%d", res.TargetAlerted, c.AlertLevel)
	}
	if b := f.res.Budget(); b.InteractionsRemaining != 2 || b.ActionPoints != 4 {
		t.Fatalf("budget = %+v", b)
	}
}

func TestBudgetLimitsAndReset(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0.99}})
	c := f.add(t, &characters.Character{ID: "c"})

	for i := 0; i < 3; i++ {
		if res, _ := f.res.Investigate(c, "background_check"); res.Refused() {
			t.Fatalf("investigation %d refused: %s", i, res.Reason)
		}
	}
	res, _ := f.res.Investigate(c, "background_check")
	if !res.Refused() || !strings.Contains(res.Reason, "interactions") {
		t.Fatalf("fourth investigation = %+v", res)
	}
	if opts := f.res.AvailableInvestigateOptions(c); opts != nil {
		t.Fatalf("options with no interactions left = %v", opts)
	}

	if f.res.ResetTurn(1) {
		t.Fatal("reset for the current turn took effect")
	}
	if !f.res.ResetTurn(2) || f.res.ResetTurn(2) {
		t.Fatal("reset must apply exactly once per turn")
	}
	if b := f.res.Budget(); b.InteractionsRemaining != 3 || b.ActionPoints != 6 || b.Turn != 2 {
		t.Fatalf("budget after reset = %+v", b)
	}
}

func TestAvailableOptionsFilterByRank(t *testing.T) {
	f := newFixture(t, &entropy.Script{})
	f.res.player.PositionIndex = 1
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 10})

	opts := f.res.AvailableDenounceOptions(c)
	if len(opts) != 1 || opts[0].ID != "quiet_word" {
		t.Fatalf("denounce options at rank 1 = %+v", opts)
	}
	if !opts[0].Disabled || !strings.Contains(opts[0].DisabledReason, "evidence") {
		t.Fatalf("quiet_word with 10 evidence = %+v", opts[0])
	}

	var ids []string
	for _, o := range f.res.AvailableInvestigateOptions(c) {
		ids = append(ids, o.ID)
	}
	if strings.Join(ids, ",") != "background_check,personality_profile" {
		t.Fatalf("investigate options = %v", ids)
	}
	for _, o := range f.res.AvailableCultivateOptions(c) {
		if o.Disabled {
			t.Fatalf("%s disabled: %s", o.ID, o.DisabledReason)
		}
	}
}

func TestAbsentCharactersCannotBeTargeted(t *testing.T) {
	f := newFixture(t, &entropy.Script{})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 90, Status: characters.StatusImprisoned})

	inv, _ := f.res.Investigate(c, "background_check")
	cul, _ := f.res.Cultivate(c, "casual_conversation")
	den, _ := f.res.Denounce(c, "quiet_word")
	for _, r := range []Result{inv.Result, cul.Result, den.Result} {
		if !r.Refused() {
			t.Fatalf("%s against an imprisoned official = %s", r.MethodID, r.Outcome)
		}
	}
}

func TestMethodErrors(t *testing.T) {
	f := newFixture(t, &entropy.Script{})
	c := f.add(t, &characters.Character{ID: "c"})

	if _, err := f.res.Investigate(c, "séance"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("unknown method error = %v", err)
	}
	if _, err := f.res.Investigate(c, "gift"); !errors.Is(err, ErrWrongCategory) {
		t.Fatalf("wrong category error = %v", err)
	}
	if _, err := f.res.Cultivate(nil, "gift"); !errors.Is(err, ErrNoCharacter) {
		t.Fatalf("nil target error = %v", err)
	}
	if _, err := f.res.Validate(c, "nope"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("Validate unknown = %v", err)
	}
}

func TestReentrantCallIsRejected(t *testing.T) {
	var (
		f        *fixture
		victim   *characters.Character
		innerErr error
		calls    int
	)
	notify := characters.NotifierFunc(func(characters.Notification) {
		calls++
		_, innerErr = f.res.Investigate(victim, "background_check")
	})
	f = newFixture(t, &entropy.Script{Floats: []float64{0}}, characters.WithNotifier(notify))
	victim = f.add(t, &characters.Character{ID: "c", EvidenceLevel: 50})

	if _, err := f.res.Denounce(victim, "quiet_word"); err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if calls != 1 || !errors.Is(innerErr, ErrReentrant) {
		t.Fatalf("calls = %d, inner error = %v", calls, innerErr)
	}
	if res, err := f.res.Investigate(victim, "background_check"); err != nil || res.Refused() {
		t.Fatalf("resolver stuck after re-entrant call: %+v, %v", res, err)
	}
}

type flavorStub struct{}

func (flavorStub) Flavor(category Category, methodID string, outcome Outcome) string {
	if outcome == "" {
		return "briefing:" + methodID
	}
	return string(category) + ":" + string(outcome)
}

func TestFlavorIsAppended(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0}})
	f.res.flavor = flavorStub{}
	c := f.add(t, &characters.Character{ID: "c"})

	res, _ := f.res.Investigate(c, "background_check")
	if res.Flavor != "investigate:success" {
		t.Fatalf("flavor = %q", res.Flavor)
	}
	if opts := f.res.AvailableCultivateOptions(c); opts[0].FlavorText != "briefing:casual_conversation" {
		t.Fatalf("briefing = %q", opts[0].FlavorText)
	}
}

func TestMilestonesNeedACrossing(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0}, Ints: []int{0}})
	admirer := f.add(t, &characters.Character{ID: "admirer", Disposition: 85, PositionIndex: 6})
	rival := f.add(t, &characters.Character{ID: "rival", Disposition: 30, PositionIndex: 6, IsRival: true})

	res, _ := f.res.Cultivate(admirer, "casual_conversation")
	if !res.Succeeded() || res.BecameAlly || admirer.Bonds.Ally {
		t.Fatalf("cultivating from 85 made an ally: %+v", res)
	}
	res, _ = f.res.Cultivate(rival, "casual_conversation")
	if !res.Succeeded() || res.RivalryEnded || !rival.IsRival {
		t.Fatalf("cultivating a rival from 30 ended the rivalry: %+v", res)
	}
	if got := f.ledger.Get(stats.Network); got != stats.NewLedger(nil).Get(stats.Network) {
		t.Fatalf("network = %d after no milestone", got)
	}
}

func TestHighRiskInvestigationExposesAlertedTarget(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		alert      int
		wantStatus characters.Status
		wantAlert  int
	}{
		{name: "max alert, high risk", method: "full_surveillance", alert: characters.MaxAlertLevel,
			wantStatus: characters.StatusUnderInvestigation, wantAlert: characters.MaxAlertLevel},
		{name: "below max alert", method: "full_surveillance", alert: characters.MaxAlertLevel - 1,
			wantStatus: characters.StatusActive, wantAlert: characters.MaxAlertLevel},
		{name: "low risk method", method: "background_check", alert: characters.MaxAlertLevel,
			wantStatus: characters.StatusActive, wantAlert: characters.MaxAlertLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notes []characters.Notification
			notify := characters.NotifierFunc(func(n characters.Notification) { notes = append(notes, n) })
			// investigation fails, alert roll succeeds
			f := newFixture(t, &entropy.Script{Floats: []float64{0.99, 0}}, characters.WithNotifier(notify))
			c := f.add(t, &characters.Character{ID: "c", AlertLevel: tt.alert})

			res, err := f.res.Investigate(c, tt.method)
			if err != nil {
				t.Fatalf("Investigate: %v", err)
			}
			if c.Status != tt.wantStatus || c.AlertLevel != tt.wantAlert {
				t.Fatalf("status/alert = %s/%d, want %s/%d", c.Status, c.AlertLevel, tt.wantStatus, tt.wantAlert)
			}
			exposed := tt.wantStatus == characters.StatusUnderInvestigation
			if res.StatusChanged != exposed || len(notes) != btoi(exposed) {
				t.Fatalf("status changed = %v, notifications = %d", res.StatusChanged, len(notes))
			}
			if exposed && !strings.Contains(res.Summary, "under investigation") {
				t.Fatalf("summary = %q", res.Summary)
			}
		})
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestDisappearanceVisibleToNotifier(t *testing.T) {
	var (
		victim    *characters.Character
		might     bool
		returnPct int
	)
	notify := characters.NotifierFunc(func(characters.Notification) {
		might, returnPct = victim.MightReturn, victim.ReturnProbability
	})
	f := newFixture(t, &entropy.Script{Floats: []float64{0}, Ints: []int{80}}, characters.WithNotifier(notify))
	victim = f.add(t, &characters.Character{ID: "c", EvidenceLevel: 60, Status: characters.StatusDetained})

	res, err := f.res.Denounce(victim, "formal_complaint")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.NewStatus != characters.StatusDisappeared {
		t.Fatalf("status = %s, want disappeared", res.NewStatus)
	}
	if !might || returnPct != 20 {
		t.Fatalf("notifier saw return = %v/%d, want true/20", might, returnPct)
	}
}

func TestDenounceFailureRecordsClampedDisposition(t *testing.T) {
	f := newFixture(t, &entropy.Script{Floats: []float64{0.99}})
	c := f.add(t, &characters.Character{ID: "c", EvidenceLevel: 80, Disposition: -90})

	res, err := f.res.Denounce(c, "quiet_word")
	if err != nil {
		t.Fatalf("Denounce: %v", err)
	}
	if res.Outcome != OutcomeFailure || c.Disposition != characters.MinDisposition {
		t.Fatalf("result = %+v, disposition %d", res, c.Disposition)
	}
	if res.DispositionChange != -10 || c.History[0].DispositionDelta != -10 {
		t.Fatalf("recorded change = %d/%d, want -10", res.DispositionChange, c.History[0].DispositionDelta)
	}
}
