package ingest

import (
	"testing"
	"time"

	"nfl-draft-mcp/internal/identity"
	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/registry"
)

func testResolver() *identity.Resolver {
	reg := registry.New([]model.Player{
		{ID: 1, Name: "Josh Allen", Position: model.QB, Team: "BUF"},
		{ID: 2, Name: "Justin Jefferson", Position: model.WR, Team: "MIN"},
		{ID: 3, Name: "Michael Pittman Jr.", Position: model.WR, Team: "IND"},
		{ID: 4, Name: "Michael Pittman Sr.", Position: model.WR, Team: "HOU"},
	})
	return identity.NewResolver(reg, nil)
}

var batchTime = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func TestResolveRows_MixedOutcomes(t *testing.T) {
	rows := []Row{
		{RawName: "Josh Allen", Position: "QB", Rank: 1, Source: "siteA"},
		{RawName: "Justin Jefferson", Position: "WR", Rank: 2, Source: "siteA"},
		{RawName: "Nobody Real", Position: "WR", Rank: 3, Source: "siteA"},
		{RawName: "Michael Pittman", Position: "WR", Rank: 4, Source: "siteA"}, // tied Jr./Sr.
		{RawName: "Josh Allen", Position: "XYZ", Rank: 5, Source: "siteA"},
		{RawName: "Deep Sleeper", Position: "WR", Rank: 0, Source: "siteA"}, // unranked by source
	}

	result := ResolveRows(testResolver(), rows, batchTime)

	r := result.Report
	if r.Total != 6 {
		t.Errorf("Total = %d, want 6", r.Total)
	}
	if r.Matched != 2 {
		t.Errorf("Matched = %d, want 2", r.Matched)
	}
	if r.Unmatched != 2 || r.BadPosition != 1 {
		t.Errorf("Unmatched = %d BadPosition = %d, want 2 and 1", r.Unmatched, r.BadPosition)
	}
	if r.Ambiguous != 1 {
		t.Errorf("Ambiguous = %d, want 1", r.Ambiguous)
	}
	if r.SkippedUnranked != 1 {
		t.Errorf("SkippedUnranked = %d, want 1", r.SkippedUnranked)
	}
	if r.Source != "siteA" {
		t.Errorf("Source = %q, want siteA", r.Source)
	}

	if len(result.Observations) != 2 {
		t.Fatalf("len(Observations) = %d, want 2", len(result.Observations))
	}
	first := result.Observations[0]
	if first.PlayerID != 1 || first.Rank != 1 || first.Source != "siteA" {
		t.Errorf("first observation = %+v, want Josh Allen at rank 1", first)
	}
	if !first.ObservedAt.Equal(batchTime) {
		t.Errorf("ObservedAt = %v, want the batch time", first.ObservedAt)
	}
}

func TestResolveRows_FailuresDoNotAbortBatch(t *testing.T) {
	rows := []Row{
		{RawName: "Nobody One", Position: "WR", Rank: 1, Source: "s"},
		{RawName: "Josh Allen", Position: "QB", Rank: 2, Source: "s"},
		{RawName: "Nobody Two", Position: "WR", Rank: 3, Source: "s"},
	}

	result := ResolveRows(testResolver(), rows, batchTime)
	if len(result.Observations) != 1 || result.Observations[0].PlayerID != 1 {
		t.Errorf("Observations = %v, want exactly the match sandwiched between failures", result.Observations)
	}
	if len(result.Report.UnmatchedExamples) != 2 {
		t.Errorf("UnmatchedExamples = %v, want both failures listed", result.Report.UnmatchedExamples)
	}
}

func TestResolveRows_ExampleListCapped(t *testing.T) {
	rows := make([]Row, 25)
	for i := range rows {
		rows[i] = Row{RawName: "Nobody", Position: "WR", Rank: i + 1, Source: "s"}
	}

	result := ResolveRows(testResolver(), rows, batchTime)
	if result.Report.Unmatched != 25 {
		t.Errorf("Unmatched = %d, want the exact count", result.Report.Unmatched)
	}
	if len(result.Report.UnmatchedExamples) != maxExamples {
		t.Errorf("len(UnmatchedExamples) = %d, want the cap %d", len(result.Report.UnmatchedExamples), maxExamples)
	}
}

func TestResolveRows_EmptyBatch(t *testing.T) {
	result := ResolveRows(testResolver(), nil, batchTime)
	if result.Report.Total != 0 || len(result.Observations) != 0 {
		t.Errorf("got %+v, want an empty report", result.Report)
	}
	if result.Report.GeneratedAtUTC != "2025-08-20T12:00:00Z" {
		t.Errorf("GeneratedAtUTC = %q, want RFC3339 UTC", result.Report.GeneratedAtUTC)
	}
}
