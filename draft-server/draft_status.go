package main

import (
	"context"
	"encoding/json"

	"nfl-draft-mcp/internal/draftstate"
)

type DraftStatusArgs struct {
	DraftID string `json:"draft_id" jsonschema:"Draft id at the provider (required)"`
	Force   bool   `json:"force,omitempty" jsonschema:"Bypass the payload cache and re-fetch"`
}

// DraftStatusReport is the turn/status query result. IsOperatorTurn is the
// string "true", "false", or "unknown" -- unknown means the operator's seat
// never resolved and the system refuses to guess.
type DraftStatusReport struct {
	DraftID            string                  `json:"draft_id"`
	SessionID          string                  `json:"session_id"`
	TeamCount          int                     `json:"team_count"`
	Rounds             int                     `json:"rounds"`
	Snake              bool                    `json:"snake"`
	TotalPicks         int                     `json:"total_picks"`
	Complete           bool                    `json:"complete"`
	CurrentPickNumber  int                     `json:"current_pick_number,omitempty"`
	Round              int                     `json:"round,omitempty"`
	NextSlot           int                     `json:"next_slot,omitempty"`
	NextTeamID         int                     `json:"next_team_id,omitempty"`
	IsOperatorTurn     draftstate.OperatorTurn `json:"is_operator_turn"`
	OperatorTeamID     int                     `json:"operator_team_id,omitempty"`
	OperatorResolved   bool                    `json:"operator_resolved"`
	PickedByMismatches int                     `json:"picked_by_mismatches,omitempty"`
}

func buildDraftStatus(ctx context.Context, app *appState, args DraftStatusArgs) ([]byte, error) {
	session, err := app.syncDraft(ctx, args.DraftID, args.Force)
	if err != nil {
		return nil, err
	}

	turn := session.NextTurn()
	report := DraftStatusReport{
		DraftID:            args.DraftID,
		SessionID:          session.ID,
		TeamCount:          session.Order.TeamCount,
		Rounds:             session.Order.Rounds,
		Snake:              session.Order.Snake,
		TotalPicks:         session.TotalPicks(),
		Complete:           turn.Complete,
		CurrentPickNumber:  turn.PickNumber,
		Round:              turn.Round,
		NextSlot:           turn.Slot,
		NextTeamID:         turn.TeamID,
		IsOperatorTurn:     session.IsOperatorTurn(),
		OperatorTeamID:     session.Order.OperatorTeamID,
		OperatorResolved:   session.Order.OperatorResolved,
		PickedByMismatches: session.PickedByMismatches,
	}
	return json.MarshalIndent(report, "", "  ")
}
