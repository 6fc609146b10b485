package stats

import "testing"

func TestLedgerClampsEveryWrite(t *testing.T) {
	l := NewLedger(map[Stat]int{Treasury: 140, RivalThreat: -5})
	if got := l.Get(Treasury); got != Max {
		t.Fatalf("Treasury = %d, want %d", got, Max)
	}
	if got := l.Get(RivalThreat); got != Min {
		t.Fatalf("RivalThreat = %d, want %d", got, Min)
	}

	if got := l.Set(Stability, 250); got != 100 {
		t.Fatalf("Set(250) stored %d", got)
	}
	if got := l.Add(Stability, -300); got != -100 {
		t.Fatalf("Add(-300) applied %d, want -100", got)
	}
	if got := l.Get(Stability); got != 0 {
		t.Fatalf("Stability = %d, want 0", got)
	}
}

func TestLedgerDefaults(t *testing.T) {
	l := NewLedger(nil)
	for _, s := range All {
		if got := l.Get(s); got != Default {
			t.Fatalf("%s = %d, want %d", s, got, Default)
		}
	}
}

func TestApplyReportsEffectiveDelta(t *testing.T) {
	l := NewLedger(map[Stat]int{Standing: 95, Network: 10})
	applied := l.Apply(Delta{Standing: 10, Network: -4, FoodSupply: 0})

	if applied[Standing] != 5 {
		t.Fatalf("applied standing = %d, want 5", applied[Standing])
	}
	if applied[Network] != -4 {
		t.Fatalf("applied network = %d, want -4", applied[Network])
	}
	if _, ok := applied[FoodSupply]; ok {
		t.Fatal("zero modifier should be omitted from applied delta")
	}
}

func TestPropertyValuesStayInBounds(t *testing.T) {
	l := NewLedger(nil)
	deltas := []int{-1000, 37, 999, -3, 64, -64, 101, -101}
	for i, d := range deltas {
		for _, s := range All {
			l.Add(s, d*(i+1))
			if v := l.Get(s); v < Min || v > Max {
				t.Fatalf("%s = %d after delta %d", s, v, d)
			}
		}
	}
}

func TestDeltaMerge(t *testing.T) {
	a := Delta{Standing: 3, Network: 1}
	b := Delta{Standing: -1, PatronFavor: 2}
	m := a.Merge(b)
	if m[Standing] != 2 || m[Network] != 1 || m[PatronFavor] != 2 {
		t.Fatalf("Merge = %v", m)
	}
	if a[Standing] != 3 {
		t.Fatal("Merge mutated receiver")
	}
	if !(Delta{Standing: 0}).IsZero() {
		t.Fatal("IsZero false for all-zero delta")
	}
}

func TestParse(t *testing.T) {
	if s, err := Parse("network"); err != nil || s != Network {
		t.Fatalf("Parse(network) = %q, %v", s, err)
	}
	if _, err := Parse("charisma"); err == nil {
		t.Fatal("Parse(charisma) succeeded")
	}
}
