package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"nfl-draft-mcp/internal/config"
	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/fetch"
	"nfl-draft-mcp/internal/identity"
	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/registry"
	"nfl-draft-mcp/internal/store"
)

func testPlayers() []model.Player {
	return []model.Player{
		{ID: 1, Name: "Josh Allen", Position: model.QB, Team: "BUF"},
		{ID: 2, Name: "Justin Jefferson", Position: model.WR, Team: "MIN"},
		{ID: 3, Name: "Bijan Robinson", Position: model.RB, Team: "ATL"},
	}
}

func newTestApp(t *testing.T, providerBody string) *appState {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(providerBody))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "draft.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.New()
	cfg.OperatorUserID = "u1"

	client := fetch.NewClient(store.NewJSONCache(filepath.Join(dir, "raw")), srv.URL)
	client.RetryBackoff = time.Millisecond

	return newAppState(cfg, st, client, registry.New(testPlayers()))
}

const providerFixture = `{
	"draft_info": {
		"team_count": 2,
		"rounds": 2,
		"draft_type": "snake",
		"user_slots": [{"user_id": "u1", "draft_slot": 1}],
		"slot_teams": [
			{"draft_slot": 1, "team_id": 101},
			{"draft_slot": 2, "team_id": 102}
		]
	},
	"picks": [{"round": 1, "pick_no": 1, "draft_slot": 1, "player_id": 1}]
}`

// ---------------------------------------------------------------------------

func TestSyncDraft_CreatesAndPersistsSession(t *testing.T) {
	app := newTestApp(t, providerFixture)
	ctx := context.Background()

	session, err := app.syncDraft(ctx, "abc", true)
	if err != nil {
		t.Fatalf("syncDraft: %v", err)
	}
	if session.TotalPicks() != 1 {
		t.Errorf("TotalPicks = %d, want 1", session.TotalPicks())
	}
	if !session.Order.OperatorResolved || session.Order.OperatorTeamID != 101 {
		t.Errorf("operator = %+v, want team 101 resolved", session.Order)
	}

	persisted, err := app.st.SessionPicks(ctx, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 1 || persisted[0].PlayerID != 1 {
		t.Errorf("persisted picks = %v, want the ingested pick", persisted)
	}
}

func TestSyncDraft_RequiresDraftID(t *testing.T) {
	app := newTestApp(t, providerFixture)
	if _, err := app.syncDraft(context.Background(), "", false); err == nil {
		t.Error("syncDraft accepted an empty draft id")
	}
}

func TestBuildDraftStatus(t *testing.T) {
	app := newTestApp(t, providerFixture)

	body, err := buildDraftStatus(context.Background(), app, DraftStatusArgs{DraftID: "abc", Force: true})
	if err != nil {
		t.Fatalf("buildDraftStatus: %v", err)
	}
	var report DraftStatusReport
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.CurrentPickNumber != 2 || report.NextTeamID != 102 {
		t.Errorf("report = %+v, want pick 2 on the clock for team 102", report)
	}
	if report.IsOperatorTurn != "false" {
		t.Errorf("IsOperatorTurn = %q, want %q", report.IsOperatorTurn, "false")
	}
}

func TestBuildResolvePlayer(t *testing.T) {
	app := newTestApp(t, providerFixture)

	body, err := buildResolvePlayer(app, ResolvePlayerArgs{Name: "josh allen", Position: "QB"})
	if err != nil {
		t.Fatalf("buildResolvePlayer: %v", err)
	}
	var report ResolvePlayerReport
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatal(err)
	}
	if report.Result.Status != identity.Matched || report.Player == nil || report.Player.ID != 1 {
		t.Errorf("report = %+v, want a match on player 1", report)
	}

	if _, err := buildResolvePlayer(app, ResolvePlayerArgs{Name: "x", Position: "FLEX"}); err == nil {
		t.Error("buildResolvePlayer accepted an unknown position")
	}
}

func TestLoadPlayers_ConcurrentWithResolve(t *testing.T) {
	app := newTestApp(t, providerFixture)
	ctx := context.Background()

	reload := LoadPlayersArgs{Players: []PlayerArgs{
		{ID: 1, Name: "Josh Allen", Position: "QB", Team: "BUF"},
		{ID: 4, Name: "CeeDee Lamb", Position: "WR", Team: "DAL"},
	}}

	// Registry swaps and resolver reads must be safe to interleave; every
	// read sees a complete snapshot, before or after the swap.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := buildLoadPlayers(ctx, app, reload); err != nil {
				t.Errorf("buildLoadPlayers: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := buildResolvePlayer(app, ResolvePlayerArgs{Name: "Josh Allen", Position: "QB"}); err != nil {
				t.Errorf("buildResolvePlayer: %v", err)
			}
		}()
	}
	wg.Wait()

	body, err := buildResolvePlayer(app, ResolvePlayerArgs{Name: "CeeDee Lamb", Position: "WR"})
	if err != nil {
		t.Fatal(err)
	}
	var report ResolvePlayerReport
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatal(err)
	}
	if report.Result.Status != identity.Matched || report.Result.PlayerID != 4 {
		t.Errorf("result = %+v, want the reloaded player matched", report.Result)
	}
}

func TestSplitADP(t *testing.T) {
	observations := []consensus.Observation{
		{PlayerID: 1, Source: "siteA", Rank: 4},
		{PlayerID: 1, Source: adpSource, Rank: 9},
		{PlayerID: 2, Source: "siteB", Rank: 11},
	}

	ranking, adp := splitADP(observations)
	if len(ranking) != 2 {
		t.Errorf("len(ranking) = %d, want the ADP row excluded", len(ranking))
	}
	if adp[1] != 9 {
		t.Errorf("adp[1] = %f, want 9", adp[1])
	}
}
