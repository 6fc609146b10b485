package scenario

import (
	"testing"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/engine"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/policy"
	"github.com/talgya/apparat/internal/stats"
)

func TestDefaultRoster(t *testing.T) {
	st := Default(entropy.New(1), 1, "Comrade Test")
	if len(st.Characters) != len(roster) {
		t.Fatalf("roster = %d characters, want %d", len(st.Characters), len(roster))
	}

	ids := make(map[string]bool)
	var patrons, rivals int
	for _, c := range st.Characters {
		if ids[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		ids[c.ID] = true
		for i, v := range c.Personality.Traits() {
			if v < 0 || v > 100 {
				t.Fatalf("%s trait %d = %d", c.ID, i, v)
			}
		}
		if c.Disposition < characters.MinDisposition || c.Disposition > characters.MaxDisposition {
			t.Fatalf("%s disposition %d", c.ID, c.Disposition)
		}
		if c.IsPatron {
			patrons++
		}
		if c.IsRival {
			rivals++
		}
	}
	if patrons != 1 || rivals != 1 {
		t.Fatalf("patrons = %d, rivals = %d, want one each", patrons, rivals)
	}
	for _, c := range st.Characters {
		if c.ProtectorID != "" && !ids[c.ProtectorID] {
			t.Fatalf("%s is protected by unknown %s", c.ID, c.ProtectorID)
		}
	}
	if st.Player.Name != "Comrade Test" || st.Player.ID != characters.PlayerID {
		t.Fatalf("player = %+v", st.Player)
	}
}

func TestDefaultIsReproducible(t *testing.T) {
	a := Default(entropy.New(5), 5, "p")
	b := Default(entropy.New(5), 5, "p")
	for i := range a.Characters {
		if a.Characters[i].Personality != b.Characters[i].Personality || a.Characters[i].Disposition != b.Characters[i].Disposition {
			t.Fatalf("%s differs between identical seeds", a.Characters[i].ID)
		}
	}
}

func TestDefaultSlots(t *testing.T) {
	slots := DefaultSlots()
	sys := policy.NewSystem(stats.NewLedger(nil))
	var institutional, decreeOptions int
	for _, s := range slots {
		if err := sys.Add(s); err != nil {
			t.Fatalf("Add %s: %v", s.ID, err)
		}
		if s.Category == policy.CategoryInstitutional {
			institutional++
		}
		for _, o := range s.Options {
			if o.Effects.EnablesDecrees {
				decreeOptions++
			}
		}
	}
	if institutional == 0 || decreeOptions == 0 {
		t.Fatalf("institutional = %d, decree options = %d", institutional, decreeOptions)
	}
	if sys.DecreesEnabled() || sys.PurgesEnabled() {
		t.Fatal("default options grant capabilities")
	}

	// Each call returns independent slots.
	DefaultSlots()[0].CurrentOptionID = "mutated"
	if DefaultSlots()[0].CurrentOptionID == "mutated" {
		t.Fatal("DefaultSlots shares state between calls")
	}
}

func TestDefaultAssembles(t *testing.T) {
	g, err := engine.Assemble(Default(entropy.New(3), 3, "p"), entropy.New(3))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if g.Ledger().Get(stats.Standing) != startingStats[stats.Standing] {
		t.Fatalf("standing = %d", g.Ledger().Get(stats.Standing))
	}
	rels, err := g.Relations("morozova")
	if err != nil {
		t.Fatalf("Relations: %v", err)
	}
	if len(rels) == 0 || rels[0].ID != "kasatkin" {
		t.Fatalf("morozova's relations = %+v, want kasatkin as patron first", rels)
	}
}

func TestTemperamentFieldIsSmooth(t *testing.T) {
	temp := newTemperament(11)
	src := &entropy.Script{} // no jitter beyond the band floor
	a := temp.sample(src, 0, 4, characters.Personality{})
	b := temp.sample(src, 0, 4, characters.Personality{})
	if a != b {
		t.Fatalf("same point sampled differently: %+v vs %+v", a, b)
	}
}
