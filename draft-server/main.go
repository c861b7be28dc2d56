// Command draft-server exposes the snake-draft assistant as MCP tools over
// streamable HTTP: draft status, pick recommendations, roster needs,
// consensus rankings, ranking ingestion, and identity resolution probes.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nfl-draft-mcp/internal/config"
	"nfl-draft-mcp/internal/fetch"
	"nfl-draft-mcp/internal/registry"
	"nfl-draft-mcp/internal/store"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "path to YAML config (or set DRAFT_CONFIG)")
		addr        = flag.String("addr", "", "override HTTP listen address")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via DRAFT_MCP_API_KEY")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if !*requireAuth {
		cfg.RequireAuth = false
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	players, err := st.Players(context.Background())
	if err != nil {
		log.Fatalf("load players: %v", err)
	}
	logger.Info("registry loaded", "players", len(players))

	cache := store.NewJSONCache(cfg.DataRoot)
	client := fetch.NewClient(cache, cfg.ProviderBaseURL)
	client.HTTP.Timeout = cfg.FetchTimeout
	client.Retries = cfg.FetchRetries
	client.RetryBackoff = cfg.RetryBackoff
	client.Logger = logger

	app := newAppState(cfg, st, client, registry.New(players))

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nfl-draft-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	tools := make([]toolInfo, 0, 8)

	addTool(server, &tools, &mcp.Tool{
		Name:        "draft_status",
		Description: "Current pick, round, next team, and whether it is the operator's turn",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DraftStatusArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildDraftStatus(ctx, app, args))
	})

	addTool(server, &tools, &mcp.Tool{
		Name:        "recommendations",
		Description: "Ranked players for the next pick with per-term score components and reasons",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RecommendationsArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildRecommendations(ctx, app, args))
	})

	addTool(server, &tools, &mcp.Tool{
		Name:        "roster_needs",
		Description: "A team's positional counts, targets, and open deficits",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RosterNeedsArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildRosterNeeds(ctx, app, args))
	})

	addTool(server, &tools, &mcp.Tool{
		Name:        "consensus_rankings",
		Description: "Consensus ranking table for a position with dense re-ranked ordinals",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ConsensusRankingsArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildConsensusRankings(ctx, app, args))
	})

	addTool(server, &tools, &mcp.Tool{
		Name:        "ingest_rankings",
		Description: "Ingest parsed ranking rows from one source; returns a match report",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args IngestRankingsArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildIngestRankings(ctx, app, args))
	})

	addTool(server, &tools, &mcp.Tool{
		Name:        "resolve_player",
		Description: "Resolve one free-text name/position/team triple against the registry",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ResolvePlayerArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildResolvePlayer(app, args))
	})

	addTool(server, &tools, &mcp.Tool{
		Name:        "load_players",
		Description: "Load or refresh the canonical player registry",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LoadPlayersArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildLoadPlayers(ctx, app, args))
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("DRAFT_MCP_API_KEY"))
	if cfg.RequireAuth && apiKey == "" {
		log.Fatal("DRAFT_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(cfg.AuthHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": tools}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(cfg.MCPPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	logger.Info("MCP HTTP server listening", "addr", cfg.Addr, "path", cfg.MCPPath)
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		log.Fatal(err)
	}
}

func addTool[T any](server *mcp.Server, tools *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*tools = append(*tools, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
