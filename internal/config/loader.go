package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New)
//  2. YAML file at path, or $DRAFT_CONFIG when path is empty
//  3. environment variables with prefix DRAFT_
//
// Env keys map flatly: DRAFT_POLL_INTERVAL -> poll_interval. Nested keys use
// double underscores: DRAFT_WEIGHTS__NEED_BONUS -> weights.need_bonus.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("DRAFT_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("DRAFT_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "DRAFT_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
