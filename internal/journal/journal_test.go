package journal

import "testing"

func TestLogTrimsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Record(Entry{Turn: i})
	}
	got := l.Entries()
	if len(got) != 3 || got[0].Turn != 3 || got[2].Turn != 5 {
		t.Fatalf("Entries = %+v", got)
	}
	recent := l.Recent(2)
	if len(recent) != 2 || recent[0].Turn != 5 || recent[1].Turn != 4 {
		t.Fatalf("Recent(2) = %+v", recent)
	}
	if len(l.Recent(10)) != 3 {
		t.Fatal("Recent should cap at retained entries")
	}
}

func TestNewLogDefaultsLimit(t *testing.T) {
	l := NewLog(0)
	for i := 0; i < DefaultLimit+5; i++ {
		l.Record(Entry{Turn: i})
	}
	if l.Len() != DefaultLimit {
		t.Fatalf("Len = %d, want %d", l.Len(), DefaultLimit)
	}
	Discard.Record(Entry{})
}
