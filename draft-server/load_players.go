package main

import (
	"context"
	"encoding/json"
	"fmt"

	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/registry"
)

type LoadPlayersArgs struct {
	Players []PlayerArgs `json:"players" jsonschema:"Canonical player records to load"`
}

type PlayerArgs struct {
	ID       int    `json:"player_id" jsonschema:"Stable player id (required)"`
	Name     string `json:"name" jsonschema:"Canonical full name"`
	Position string `json:"position" jsonschema:"Position label (QB/RB/WR/TE/K/DST)"`
	Team     string `json:"team,omitempty" jsonschema:"Team code; empty for free agents"`
}

type LoadPlayersReport struct {
	Loaded   int `json:"loaded"`
	Rejected int `json:"rejected"`
	Total    int `json:"registry_size"`
}

// buildLoadPlayers replaces the registry snapshot. Players are immutable
// once loaded; a reload swaps in a whole new snapshot rather than patching.
func buildLoadPlayers(ctx context.Context, app *appState, args LoadPlayersArgs) ([]byte, error) {
	if len(args.Players) == 0 {
		return nil, fmt.Errorf("players must not be empty")
	}

	players := make([]model.Player, 0, len(args.Players))
	rejected := 0
	for _, pa := range args.Players {
		pos, ok := model.ParsePosition(pa.Position)
		if pa.ID == 0 || pa.Name == "" || !ok {
			rejected++
			continue
		}
		players = append(players, model.Player{
			ID:       pa.ID,
			Name:     pa.Name,
			Position: pos,
			Team:     pa.Team,
		})
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no valid player records in request")
	}

	if err := app.st.UpsertPlayers(ctx, players); err != nil {
		return nil, err
	}
	all, err := app.st.Players(ctx)
	if err != nil {
		return nil, err
	}

	app.swapRegistry(registry.New(all))

	report := LoadPlayersReport{
		Loaded:   len(players),
		Rejected: rejected,
		Total:    len(all),
	}
	return json.MarshalIndent(report, "", "  ")
}
