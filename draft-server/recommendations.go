package main

import (
	"context"
	"encoding/json"
	"fmt"

	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/engine"
	"nfl-draft-mcp/internal/roster"
)

// adpSource is the reserved observation source carrying average-draft-
// position figures. Its rows feed the value-vs-ADP term, never consensus.
const adpSource = "adp"

type RecommendationsArgs struct {
	DraftID string `json:"draft_id" jsonschema:"Draft id at the provider (required)"`
	TeamID  *int   `json:"team_id,omitempty" jsonschema:"Team to recommend for (default: the operator's team)"`
	Limit   *int   `json:"limit,omitempty" jsonschema:"How many recommendations (default 10)"`

	WeightBaseCeiling *float64 `json:"weight_base_ceiling,omitempty" jsonschema:"Override base value ceiling"`
	WeightScarcity    *float64 `json:"weight_scarcity,omitempty" jsonschema:"Override positional scarcity weight"`
	WeightNeed        *float64 `json:"weight_need,omitempty" jsonschema:"Override need bonus weight"`
	WeightUpside      *float64 `json:"weight_upside,omitempty" jsonschema:"Override upside weight"`
	WeightReliability *float64 `json:"weight_reliability,omitempty" jsonschema:"Override reliability weight"`
	WeightADP         *float64 `json:"weight_adp,omitempty" jsonschema:"Override value-vs-ADP weight"`
}

type RecommendationsReport struct {
	DraftID         string                  `json:"draft_id"`
	TeamID          int                     `json:"team_id"`
	PickNumber      int                     `json:"pick_number,omitempty"`
	Complete        bool                    `json:"complete,omitempty"`
	Weights         engine.Weights          `json:"weights"`
	ScoringFormula  string                  `json:"scoring_formula"`
	Recommendations []engine.Recommendation `json:"recommendations"`
	Notes           []string                `json:"notes"`
}

func buildRecommendations(ctx context.Context, app *appState, args RecommendationsArgs) ([]byte, error) {
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

	limit := 10
	if args.Limit != nil && *args.Limit > 0 {
		limit = *args.Limit
	}

	weights := app.cfg.Weights
	if args.WeightBaseCeiling != nil {
		weights.BaseCeiling = *args.WeightBaseCeiling
	}
	if args.WeightScarcity != nil {
		weights.Scarcity = *args.WeightScarcity
	}
	if args.WeightNeed != nil {
		weights.NeedBonus = *args.WeightNeed
	}
	if args.WeightUpside != nil {
		weights.Upside = *args.WeightUpside
	}
	if args.WeightReliability != nil {
		weights.Reliability = *args.WeightReliability
	}
	if args.WeightADP != nil {
		weights.ADP = *args.WeightADP
	}

	observations, err := app.st.Observations(ctx)
	if err != nil {
		return nil, err
	}
	ranking, adp := splitADP(observations)

	reg, _ := app.lookup()
	need := roster.Needs(teamID, session.Picks(), reg.Player, app.cfg.Targets())
	available := reg.Available(session.DraftedIDs())

	turn := session.NextTurn()
	recs := engine.Recommend(available, consensus.Aggregate(ranking), need, engine.PickContext{
		PickNumber: turn.PickNumber,
		ADP:        adp,
	}, weights)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	report := RecommendationsReport{
		DraftID:         args.DraftID,
		TeamID:          teamID,
		PickNumber:      turn.PickNumber,
		Complete:        turn.Complete,
		Weights:         weights,
		ScoringFormula:  engine.FormulaNote(),
		Recommendations: recs,
		Notes: []string{
			"Scores only players not yet picked in this session.",
			fmt.Sprintf("Observations from source %q feed the ADP term, not consensus.", adpSource),
			"Output is a ranked list; ties break by mean rank, then player id.",
		},
	}
	return json.MarshalIndent(report, "", "  ")
}

// splitADP separates ADP rows from genuine ranking observations.
func splitADP(observations []consensus.Observation) ([]consensus.Observation, map[int]float64) {
	ranking := make([]consensus.Observation, 0, len(observations))
	adp := make(map[int]float64)
	for _, o := range observations {
		if o.Source == adpSource {
			adp[o.PlayerID] = float64(o.Rank)
			continue
		}
		ranking = append(ranking, o)
	}
	return ranking, adp
}
