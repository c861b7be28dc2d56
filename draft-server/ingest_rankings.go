package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nfl-draft-mcp/internal/ingest"
)

type IngestRankingsArgs struct {
	Source string          `json:"source" jsonschema:"Ranking source name (required)"`
	Rows   []IngestRowArgs `json:"rows" jsonschema:"Parsed ranking rows from the source"`
}

type IngestRowArgs struct {
	Name     string `json:"name" jsonschema:"Free-text player name as the source prints it"`
	Position string `json:"position" jsonschema:"Position label (QB/RB/WR/TE/K/DST)"`
	Team     string `json:"team,omitempty" jsonschema:"Team code or name hint, if the source carries one"`
	Rank     int    `json:"rank" jsonschema:"1-based rank within the source's position list"`
}

type IngestRankingsReport struct {
	Report   ingest.Report `json:"report"`
	Inserted int           `json:"inserted"`
}

func buildIngestRankings(ctx context.Context, app *appState, args IngestRankingsArgs) ([]byte, error) {
	if args.Source == "" {
		return nil, fmt.Errorf("source is required")
	}
	if len(args.Rows) == 0 {
		return nil, fmt.Errorf("rows must not be empty")
	}

	rows := make([]ingest.Row, 0, len(args.Rows))
	for _, r := range args.Rows {
		rows = append(rows, ingest.Row{
			RawName:  r.Name,
			Position: r.Position,
			Team:     r.Team,
			Rank:     r.Rank,
			Source:   args.Source,
		})
	}

	_, resolver := app.lookup()
	result := ingest.ResolveRows(resolver, rows, time.Now())

	inserted := 0
	for _, o := range result.Observations {
		if err := app.st.InsertObservation(ctx, o); err != nil {
			return nil, err
		}
		inserted++
	}

	report := IngestRankingsReport{Report: result.Report, Inserted: inserted}
	return json.MarshalIndent(report, "", "  ")
}
