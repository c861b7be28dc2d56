package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nfl-draft-mcp/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.Weights.BaseCeiling != 120 {
		t.Errorf("Weights.BaseCeiling = %v, want 120", cfg.Weights.BaseCeiling)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DRAFT_POLL_INTERVAL", "3s")
	t.Setenv("DRAFT_OPERATOR_USER_ID", "u42")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("PollInterval = %v, want 3s", cfg.PollInterval)
	}
	if cfg.OperatorUserID != "u42" {
		t.Errorf("OperatorUserID = %q, want u42", cfg.OperatorUserID)
	}
}

func TestLoad_NestedEnvOverride(t *testing.T) {
	t.Setenv("DRAFT_WEIGHTS__NEED_BONUS", "12.5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Weights.NeedBonus != 12.5 {
		t.Errorf("Weights.NeedBonus = %v, want 12.5", cfg.Weights.NeedBonus)
	}
	// Sibling weights keep their defaults.
	if cfg.Weights.Scarcity != 1.5 {
		t.Errorf("Weights.Scarcity = %v, want untouched default", cfg.Weights.Scarcity)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")
	body := []byte("poll_interval: 30s\noperator_user_id: from-file\nconfidence_floors:\n  WR: 90\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRAFT_OPERATOR_USER_ID", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want the file value", cfg.PollInterval)
	}
	if cfg.OperatorUserID != "from-env" {
		t.Errorf("OperatorUserID = %q, env must override the file", cfg.OperatorUserID)
	}
	if floors := cfg.Floors(); floors[model.WR] != 90 {
		t.Errorf("Floors()[WR] = %d, want 90", floors[model.WR])
	}
}

func TestLoad_ValidationRejectsBadValues(t *testing.T) {
	t.Setenv("DRAFT_POLL_INTERVAL", "0s")

	if _, err := Load(""); err == nil {
		t.Error("Load accepted a zero poll_interval")
	}
}

func TestTargets_FallsBackOnEmpty(t *testing.T) {
	cfg := New()
	cfg.RosterTargets = nil

	targets := cfg.Targets()
	if targets[model.RB] != 4 {
		t.Errorf("Targets()[RB] = %d, want the default shape", targets[model.RB])
	}
}

func TestTargets_SkipsInvalidEntries(t *testing.T) {
	cfg := New()
	cfg.RosterTargets = map[string]int{"RB": 3, "XYZ": 1, "WR": -2}

	targets := cfg.Targets()
	if len(targets) != 1 || targets[model.RB] != 3 {
		t.Errorf("Targets() = %v, want only the valid RB entry", targets)
	}
}
