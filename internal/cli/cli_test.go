package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/beeline/pkg/errors"
	beeio "github.com/matzehuels/beeline/pkg/io"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("25100"); err != nil || id != 25100 {
		t.Errorf("parseID(25100) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, err := parseID(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseID(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestSplitLedgerArgs(t *testing.T) {
	file := ledgerSource{}
	if path, id, err := file.splitLedgerArgs([]string{"bees_log.csv", "7"}); err != nil || path != "bees_log.csv" || id != "7" {
		t.Errorf("file source = %q, %q, %v", path, id, err)
	}
	if _, _, err := file.splitLedgerArgs([]string{"7"}); err == nil {
		t.Error("file source without ledger path should fail")
	}

	archived := ledgerSource{mongoURI: "mongodb://localhost:27017", simulation: "hive"}
	if path, id, err := archived.splitLedgerArgs([]string{"7"}); err != nil || path != "" || id != "7" {
		t.Errorf("archive source = %q, %q, %v", path, id, err)
	}
	if _, _, err := archived.splitLedgerArgs([]string{"bees_log.csv", "7"}); err == nil {
		t.Error("archive source with ledger path should fail")
	}
}

const testRunFile = `
population    = 6
generations   = 3
mutation_rate = 0.2
elitism_rates = [0.5]
seed          = 11
points = [[500, 500], [10, 20], [900, 100], [300, 700], [650, 650]]
`

func execute(t *testing.T, args ...string) error {
	t.Helper()
	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRunThenAncestors(t *testing.T) {
	dir := t.TempDir()
	runFile := filepath.Join(dir, "hive.toml")
	if err := os.WriteFile(runFile, []byte(testRunFile), 0o644); err != nil {
		t.Fatal(err)
	}
	ledgerPath := filepath.Join(dir, "bees_log.csv")

	if err := execute(t, "run", runFile, "-o", ledgerPath, "--no-cache"); err != nil {
		t.Fatalf("run: %v", err)
	}
	ledger, err := beeio.Import(ledgerPath)
	if err != nil {
		t.Fatalf("import ledger: %v", err)
	}
	// 6 founders, then 3 children per generation.
	if ledger.Len() != 15 {
		t.Errorf("ledger has %d individuals, want 15", ledger.Len())
	}

	dotPath := filepath.Join(dir, "tree.dot")
	if err := execute(t, "ancestors", ledgerPath, "15", "--dot", dotPath, "--no-cache"); err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !bytes.Contains(dot, []byte("digraph")) {
		t.Errorf("dot output missing digraph header:\n%s", dot)
	}

	if err := execute(t, "show", ledgerPath, "1"); err != nil {
		t.Errorf("show: %v", err)
	}
	if err := execute(t, "ancestors", ledgerPath, "999", "--no-cache"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ancestors of missing id: err = %v, want NOT_FOUND", err)
	}
}

func TestRunRequiresPoints(t *testing.T) {
	err := execute(t, "run", "--no-cache", "-o", filepath.Join(t.TempDir(), "out.csv"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("run without points: err = %v, want INVALID_CONFIG", err)
	}
}

func TestRunFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	runFile := filepath.Join(dir, "hive.toml")
	if err := os.WriteFile(runFile, []byte(testRunFile), 0o644); err != nil {
		t.Fatal(err)
	}
	ledgerPath := filepath.Join(dir, "bees_log.json")

	if err := execute(t, "run", runFile, "-o", ledgerPath, "--no-cache", "--generations", "1", "--crossover", "order"); err != nil {
		t.Fatalf("run: %v", err)
	}
	ledger, err := beeio.Import(ledgerPath)
	if err != nil {
		t.Fatalf("import ledger: %v", err)
	}
	if ledger.Len() != 9 {
		t.Errorf("ledger has %d individuals, want 9", ledger.Len())
	}
	if got := ledger.All()[8].Crossover; got != "order" {
		t.Errorf("crossover = %q, want order", got)
	}
}
