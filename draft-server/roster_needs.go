package main

import (
	"context"
	"encoding/json"
	"fmt"

	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/roster"
)

type RosterNeedsArgs struct {
	DraftID string `json:"draft_id" jsonschema:"Draft id at the provider (required)"`
	TeamID  *int   `json:"team_id,omitempty" jsonschema:"Team to inspect (default: the operator's team)"`
}

type RosterNeedsReport struct {
	DraftID string        `json:"draft_id"`
	Need    roster.Need   `json:"need"`
	Roster  []rosterEntry `json:"roster"`
}

type rosterEntry struct {
	PickNumber int            `json:"pick_number"`
	Round      int            `json:"round"`
	PlayerID   int            `json:"player_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Position   model.Position `json:"position,omitempty"`
	Team       string         `json:"team,omitempty"`
}

func buildRosterNeeds(ctx context.Context, app *appState, args RosterNeedsArgs) ([]byte, error) {
	session, err := app.syncDraft(ctx, args.DraftID, false)
	if err != nil {
		return nil, err
	}

	teamID := 0
	if args.TeamID != nil {
		teamID = *args.TeamID
	}
	if teamID == 0 {
		if !session.Order.OperatorResolved {
			return nil, fmt.Errorf("team_id is required: operator team is unknown for this draft")
		}
		teamID = session.Order.OperatorTeamID
	}

	picks := session.Picks()
	reg, _ := app.lookup()
	need := roster.Needs(teamID, picks, reg.Player, app.cfg.Targets())

	entries := make([]rosterEntry, 0)
	for _, p := range picks {
		if p.TeamID != teamID {
			continue
		}
		entry := rosterEntry{PickNumber: p.PickNumber, Round: p.Round, PlayerID: p.PlayerID}
		if player, ok := reg.Player(p.PlayerID); ok {
			entry.Name = player.Name
			entry.Position = player.Position
			entry.Team = player.Team
		}
		entries = append(entries, entry)
	}

	report := RosterNeedsReport{
		DraftID: args.DraftID,
		Need:    need,
		Roster:  entries,
	}
	return json.MarshalIndent(report, "", "  ")
}
