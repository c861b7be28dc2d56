package main

import (
	"encoding/json"
	"fmt"

	"nfl-draft-mcp/internal/identity"
	"nfl-draft-mcp/internal/model"
)

type ResolvePlayerArgs struct {
	Name     string `json:"name" jsonschema:"Free-text player name (required)"`
	Position string `json:"position" jsonschema:"Position label (required)"`
	Team     string `json:"team,omitempty" jsonschema:"Optional team hint"`
}

type ResolvePlayerReport struct {
	Query      ResolvePlayerArgs    `json:"query"`
	Result     identity.MatchResult `json:"result"`
	Player     *model.Player        `json:"player,omitempty"`
	Candidates []model.Player       `json:"candidate_players,omitempty"`
}

func buildResolvePlayer(app *appState, args ResolvePlayerArgs) ([]byte, error) {
	if args.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	pos, ok := model.ParsePosition(args.Position)
	if !ok {
		return nil, fmt.Errorf("unknown position: %q", args.Position)
	}

	reg, resolver := app.lookup()
	result := resolver.Resolve(args.Name, pos, args.Team)
	report := ResolvePlayerReport{Query: args, Result: result}

	if result.Status == identity.Matched {
		if p, ok := reg.Player(result.PlayerID); ok {
			report.Player = &p
		}
	}
	for _, id := range result.Candidates {
		if p, ok := reg.Player(id); ok {
			report.Candidates = append(report.Candidates, p)
		}
	}
	return json.MarshalIndent(report, "", "  ")
}
