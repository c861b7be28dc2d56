package main

import (
	"context"
	"encoding/json"
	"fmt"

	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/model"
)

type ConsensusRankingsArgs struct {
	Position string `json:"position" jsonschema:"Position to rank: QB, RB, WR, TE, K, or DST (required)"`
	Limit    *int   `json:"limit,omitempty" jsonschema:"How many rows (default 50)"`
}

type ConsensusRow struct {
	Rank     int     `json:"rank"`
	PlayerID int     `json:"player_id"`
	Name     string  `json:"name"`
	Team     string  `json:"team,omitempty"`
	Mean     float64 `json:"mean_rank,omitempty"`
	Median   float64 `json:"median_rank,omitempty"`
	Best     int     `json:"best_rank,omitempty"`
	Worst    int     `json:"worst_rank,omitempty"`
	StdDev   float64 `json:"std_dev,omitempty"`
	Sources  int     `json:"observation_count"`
	Unranked bool    `json:"unranked,omitempty"`
}

type ConsensusRankingsReport struct {
	Position model.Position `json:"position"`
	Rows     []ConsensusRow `json:"rows"`
	Notes    []string       `json:"notes"`
}

func buildConsensusRankings(ctx context.Context, app *appState, args ConsensusRankingsArgs) ([]byte, error) {
	pos, ok := model.ParsePosition(args.Position)
	if !ok {
		return nil, fmt.Errorf("unknown position: %q", args.Position)
	}
	limit := 50
	if args.Limit != nil && *args.Limit > 0 {
		limit = *args.Limit
	}

	observations, err := app.st.Observations(ctx)
	if err != nil {
		return nil, err
	}
	ranking, _ := splitADP(observations)
	rankings := consensus.Aggregate(ranking)

	reg, _ := app.lookup()
	pool := reg.Position(pos)
	ids := make([]int, 0, len(pool))
	for _, p := range pool {
		ids = append(ids, p.ID)
	}

	rows := make([]ConsensusRow, 0, limit)
	for _, pr := range consensus.Rerank(rankings, ids) {
		if len(rows) >= limit {
			break
		}
		player, _ := reg.Player(pr.PlayerID)
		row := ConsensusRow{
			Rank:     pr.Rank,
			PlayerID: pr.PlayerID,
			Name:     player.Name,
			Team:     player.Team,
		}
		if r, ok := rankings[pr.PlayerID]; ok {
			row.Mean = r.Mean
			row.Median = r.Median
			row.Best = r.Best
			row.Worst = r.Worst
			row.StdDev = r.StdDev
			row.Sources = r.Observations
		} else {
			row.Unranked = true
		}
		rows = append(rows, row)
	}

	report := ConsensusRankingsReport{
		Position: pos,
		Rows:     rows,
		Notes: []string{
			"Dense 1..N ordinals: mean rank ascending, ties by std dev, then player id.",
			"Unranked players sort after every ranked player and carry no numeric rank.",
		},
	}
	return json.MarshalIndent(report, "", "  ")
}
