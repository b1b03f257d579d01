package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

func TestNewChecker(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	c := NewChecker(db, dir)
	if len(c.checks) != 3 {
		t.Errorf("expected 3 checks, got %d", len(c.checks))
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	c := NewChecker(db, dir)
	c.runAll(context.Background())

	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %s unhealthy: %s", s.Name, s.Error)
		}
		if s.CheckedAt.IsZero() {
			t.Errorf("check %s has zero timestamp", s.Name)
		}
	}
	if !c.IsHealthy() {
		t.Error("expected checker to report healthy")
	}
}

func TestUnhealthyCheck(t *testing.T) {
	c := &Checker{
		checks: []Check{
			{
				Name: "broken",
				CheckFn: func(ctx context.Context) error {
					return errors.New("boom")
				},
			},
		},
	}
	c.runAll(context.Background())

	if c.IsHealthy() {
		t.Error("expected checker to report unhealthy")
	}
	statuses := c.Statuses()
	if statuses[0].Error != "boom" {
		t.Errorf("expected error boom, got %q", statuses[0].Error)
	}
}

func TestCheckDataDir(t *testing.T) {
	dir := t.TempDir()
	if err := checkDataDir(dir); err != nil {
		t.Errorf("existing dir should pass: %v", err)
	}
	if err := checkDataDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("missing dir should pass: %v", err)
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkDataDir(file); err == nil {
		t.Error("file in place of dir should fail")
	}
}

func TestCheckStateFile(t *testing.T) {
	dir := t.TempDir()
	if err := checkStateFile(dir); err != nil {
		t.Errorf("missing state file should pass: %v", err)
	}

	if err := os.Mkdir(filepath.Join(dir, "state.db"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := checkStateFile(dir); err == nil {
		t.Error("directory in place of state file should fail")
	}
}
