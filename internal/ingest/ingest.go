// Package ingest turns raw ranking rows from any source into consensus
// observations. Individual resolution failures never abort a batch: they
// are collected into a consolidated report instead.
package ingest

import (
	"fmt"
	"time"

	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/identity"
	"nfl-draft-mcp/internal/model"
)

// maxExamples caps the example lists in a report; counts stay exact.
const maxExamples = 10

// Row is one already-parsed ranking record from an external source.
type Row struct {
	RawName  string `json:"raw_name"`
	Position string `json:"position"`
	Team     string `json:"team,omitempty"`
	Rank     int    `json:"rank"`
	Source   string `json:"source"`
}

// Report summarizes one batch. Unmatched and ambiguous rows are expected
// outcomes, not errors.
type Report struct {
	Source            string   `json:"source,omitempty"`
	Total             int      `json:"total"`
	Matched           int      `json:"matched"`
	Unmatched         int      `json:"unmatched"`
	Ambiguous         int      `json:"ambiguous"`
	BadPosition       int      `json:"bad_position"`
	SkippedUnranked   int      `json:"skipped_unranked"`
	UnmatchedExamples []string `json:"unmatched_examples,omitempty"`
	AmbiguousExamples []string `json:"ambiguous_examples,omitempty"`
	GeneratedAtUTC    string   `json:"generated_at_utc"`
}

// Result carries the observations worth keeping plus the batch report.
type Result struct {
	Observations []consensus.Observation `json:"observations"`
	Report       Report                  `json:"report"`
}

// ResolveRows matches every row against the registry and builds
// observations for the matches. Rows without a positive rank are treated as
// "unranked by this source" and skipped entirely, never recorded as a
// sentinel rank.
func ResolveRows(resolver *identity.Resolver, rows []Row, now time.Time) Result {
	report := Report{
		Total:          len(rows),
		GeneratedAtUTC: now.UTC().Format(time.RFC3339),
	}
	if len(rows) > 0 {
		report.Source = rows[0].Source
	}

	observations := make([]consensus.Observation, 0, len(rows))
	for _, row := range rows {
		pos, ok := model.ParsePosition(row.Position)
		if !ok {
			report.BadPosition++
			report.Unmatched++
			appendExample(&report.UnmatchedExamples,
				fmt.Sprintf("%s [%s] unknown position", row.RawName, row.Position))
			continue
		}
		if row.Rank < 1 {
			report.SkippedUnranked++
			continue
		}

		res := resolver.Resolve(row.RawName, pos, row.Team)
		switch res.Status {
		case identity.Matched:
			report.Matched++
			observations = append(observations, consensus.Observation{
				PlayerID:   res.PlayerID,
				Source:     row.Source,
				Rank:       row.Rank,
				ObservedAt: now,
			})
		case identity.Ambiguous:
			report.Ambiguous++
			appendExample(&report.AmbiguousExamples,
				fmt.Sprintf("%s [%s] tied candidates %v", row.RawName, pos, res.Candidates))
		default:
			report.Unmatched++
			appendExample(&report.UnmatchedExamples,
				fmt.Sprintf("%s [%s]", row.RawName, pos))
		}
	}

	return Result{Observations: observations, Report: report}
}

func appendExample(examples *[]string, example string) {
	if len(*examples) < maxExamples {
		*examples = append(*examples, example)
	}
}
