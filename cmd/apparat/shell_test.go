package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/talgya/apparat/internal/engine"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/observe"
	"github.com/talgya/apparat/internal/scenario"
	"github.com/talgya/apparat/internal/stats"
)

type memStore struct {
	saves []engine.State
}

func (m *memStore) SaveGame(st engine.State) error {
	m.saves = append(m.saves, st)
	return nil
}

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *memStore) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	metrics, err := observe.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	st := scenario.Default(entropy.New(1), 1, "Tester")
	st.Stats[stats.Standing] = 60
	g, err := engine.Assemble(st, entropy.New(1), engine.WithMetrics(metrics), engine.WithLogger(log))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	var out bytes.Buffer
	store := &memStore{}
	return &shell{game: g, out: &out, store: store, reader: reader, log: log}, &out, store
}

func mustExec(t *testing.T, sh *shell, line string) bool {
	t.Helper()
	quit, err := sh.exec(context.Background(), line)
	if err != nil {
		t.Fatalf("exec %q: %v", line, err)
	}
	return quit
}

func TestShellCommands(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"help", "investigate <method> <name>"},
		{"status", "Tester, the 1st session"},
		{"roster", "Elena Morozova"},
		{"who morozova", "Yuri Kasatkin"},
		{"who nobody-at-all", `no official matches "nobody-at-all"`},
		{"options Fedin", "background_check"},
		{"investigate background_check", "usage: investigate <method> <name>"},
		{"cultivate full_surveillance Fedin", "full_surveillance is not a cultivate method"},
		{"policy", "Your power: 60"},
		{"propose press nowhere", "no such policy"},
		{"frobnicate", `unknown command "frobnicate"`},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sh, out, _ := newTestShell(t)
			mustExec(t, sh, tt.line)
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output of %q does not contain %q:\n%s", tt.line, tt.want, out.String())
			}
		})
	}
}

func TestShellMentionOpensFile(t *testing.T) {
	sh, out, _ := newTestShell(t)
	mustExec(t, sh, "mention Anatoly Zhukov")
	if !strings.Contains(out.String(), "Anatoly Zhukov") {
		t.Fatalf("mention output:\n%s", out.String())
	}
	if _, err := sh.game.Character("Anatoly Zhukov"); err != nil {
		t.Fatalf("placeholder not registered: %v", err)
	}
}

func TestShellInteractionAndMetrics(t *testing.T) {
	sh, out, _ := newTestShell(t)
	mustExec(t, sh, "investigate background_check Fedin")
	if !strings.Contains(out.String(), "background_check, 1 AP") {
		t.Fatalf("investigate output:\n%s", out.String())
	}
	if sh.game.Resolver().Budget().InteractionsRemaining != 2 {
		t.Fatal("interaction not spent")
	}

	out.Reset()
	mustExec(t, sh, "metrics")
	if !strings.Contains(out.String(), "apparat.interactions.resolved") {
		t.Fatalf("metrics output:\n%s", out.String())
	}
}

func TestShellProposalEnactedAtSessionEnd(t *testing.T) {
	sh, out, store := newTestShell(t)
	popular := sh.game.Ledger().Get(stats.PopularSupport)

	mustExec(t, sh, "propose press thaw")
	if !strings.Contains(out.String(), "PROPOSE") {
		t.Fatalf("propose output:\n%s", out.String())
	}
	mustExec(t, sh, "propose press information_blackout")
	if !strings.Contains(out.String(), "REFUSED") {
		t.Fatalf("second proposal was not refused:\n%s", out.String())
	}

	out.Reset()
	mustExec(t, sh, "end")
	if !strings.Contains(out.String(), "Enacted press: thaw") || !strings.Contains(out.String(), "2nd session") {
		t.Fatalf("end output:\n%s", out.String())
	}
	if got := sh.game.Ledger().Get(stats.PopularSupport); got != popular+6 {
		t.Fatalf("popular support = %d, want %d", got, popular+6)
	}
	if len(store.saves) != 1 || store.saves[0].Turn != 2 {
		t.Fatalf("saves = %d", len(store.saves))
	}
}

func TestShellDecreeRequiresPermission(t *testing.T) {
	sh, out, _ := newTestShell(t)
	mustExec(t, sh, "decree press thaw")
	if !strings.Contains(out.String(), "REFUSED") {
		t.Fatalf("decree output:\n%s", out.String())
	}

	sh.game.Policy().SetDecreesEnabled(true)
	out.Reset()
	mustExec(t, sh, "decree press thaw")
	if !strings.Contains(out.String(), "DECREE") {
		t.Fatalf("decree output:\n%s", out.String())
	}
}

func TestShellQuitSaves(t *testing.T) {
	sh, _, store := newTestShell(t)
	if !mustExec(t, sh, "quit") {
		t.Fatal("quit did not end the session")
	}
	if len(store.saves) != 1 {
		t.Fatalf("saves = %d, want 1", len(store.saves))
	}
}

func TestRunStopsWhenInputEnds(t *testing.T) {
	sh, out, _ := newTestShell(t)
	lines := make(chan string, 2)
	lines <- "status"
	lines <- ""
	close(lines)
	run(context.Background(), sh, lines)
	if !strings.Contains(out.String(), "Interactions 3/3") {
		t.Fatalf("run output:\n%s", out.String())
	}
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()
	if err := ensureDir(filepath.Join(root, "data", "saves", "apparat.db")); err != nil {
		t.Fatalf("ensureDir: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(root, "data", "saves")); err != nil || !fi.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	if err := ensureDir("apparat.db"); err != nil {
		t.Fatalf("ensureDir in working directory: %v", err)
	}

	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ensureDir(filepath.Join(blocker, "sub", "apparat.db")); err == nil {
		t.Fatal("ensureDir under a regular file succeeded")
	}
}
