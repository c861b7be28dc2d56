// Package config defines process configuration and its loading order:
// defaults, then an optional YAML file, then DRAFT_-prefixed environment
// variables. Every empirically chosen scoring constant lives here so it can
// be tuned without a rebuild.
package config

import (
	"errors"
	"fmt"
	"time"

	"nfl-draft-mcp/internal/engine"
	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/roster"
)

type Config struct {
	// Addr is the HTTP listen address for the MCP server.
	Addr string `koanf:"addr"`

	// MCPPath is the HTTP path for the MCP endpoint.
	MCPPath string `koanf:"mcp_path"`

	// RequireAuth gates the API-key middleware (key via DRAFT_MCP_API_KEY).
	RequireAuth bool   `koanf:"require_auth"`
	AuthHeader  string `koanf:"auth_header"`

	// DataRoot is the root directory for cached raw provider payloads.
	DataRoot string `koanf:"data_root"`

	// DBPath is the sqlite database holding players, observations, and picks.
	DBPath string `koanf:"db_path"`

	// ProviderBaseURL is the draft provider API root.
	ProviderBaseURL string `koanf:"provider_base_url"`

	// OperatorUserID identifies the operator in the provider's user/slot
	// assignment. Leaving it empty means the operator stays unresolved and
	// turn queries answer "unknown".
	OperatorUserID string `koanf:"operator_user_id"`

	// PollInterval paces the draft-state sync loop.
	PollInterval time.Duration `koanf:"poll_interval"`

	// FetchTimeout bounds each provider call; FetchRetries bounds attempts.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	FetchRetries int           `koanf:"fetch_retries"`
	RetryBackoff time.Duration `koanf:"retry_backoff"`

	// ConfidenceFloors overrides the identity resolver's per-position match
	// floor, keyed by position label.
	ConfidenceFloors map[string]int `koanf:"confidence_floors"`

	// RosterTargets is the desired roster shape, keyed by position label.
	RosterTargets map[string]int `koanf:"roster_targets"`

	// Weights are the recommendation engine's scoring terms.
	Weights engine.Weights `koanf:"weights"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Addr:            ":8080",
		MCPPath:         "/mcp",
		RequireAuth:     true,
		AuthHeader:      "X-API-Key",
		DataRoot:        "data/raw",
		DBPath:          "data/draft.db",
		ProviderBaseURL: "https://draft-provider.example.com/api",
		PollInterval:    10 * time.Second,
		FetchTimeout:    20 * time.Second,
		FetchRetries:    3,
		RetryBackoff:    500 * time.Millisecond,
		RosterTargets: map[string]int{
			"QB": 2, "RB": 4, "WR": 5, "TE": 2, "K": 1, "DST": 1,
		},
		Weights: engine.DefaultWeights(),
	}
}

// Targets converts the configured roster shape to tracker form, falling
// back to the default shape when empty or entirely invalid.
func (c *Config) Targets() roster.Targets {
	out := make(roster.Targets, len(c.RosterTargets))
	for label, n := range c.RosterTargets {
		pos, ok := model.ParsePosition(label)
		if !ok || n < 0 {
			continue
		}
		out[pos] = n
	}
	if len(out) == 0 {
		return roster.DefaultTargets()
	}
	return out
}

// Floors converts the configured confidence floors to resolver form.
func (c *Config) Floors() map[model.Position]int {
	out := make(map[model.Position]int, len(c.ConfidenceFloors))
	for label, floor := range c.ConfidenceFloors {
		pos, ok := model.ParsePosition(label)
		if !ok {
			continue
		}
		out[pos] = floor
	}
	return out
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.FetchRetries < 1 {
		return errors.New("fetch_retries must be at least 1")
	}
	for label := range c.RosterTargets {
		if _, ok := model.ParsePosition(label); !ok {
			return fmt.Errorf("unknown position in roster_targets: %q", label)
		}
	}
	return nil
}
