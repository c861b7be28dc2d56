package main

import (
	"context"
	"fmt"
	"sync"

	"nfl-draft-mcp/internal/config"
	"nfl-draft-mcp/internal/draftstate"
	"nfl-draft-mcp/internal/fetch"
	"nfl-draft-mcp/internal/identity"
	"nfl-draft-mcp/internal/registry"
	"nfl-draft-mcp/internal/store"
)

// appState is the shared state behind every tool. The session's pick log
// has exactly one writer (syncDraft, under mu); tools snapshot it and work
// on the copy. The registry and resolver are immutable snapshots swapped
// atomically by load_players, so every reader goes through lookup.
type appState struct {
	cfg    *config.Config
	st     *store.Store
	client *fetch.Client

	mu       sync.Mutex
	reg      *registry.Registry
	resolver *identity.Resolver
	draftID  string
	session  *draftstate.Session
}

func newAppState(cfg *config.Config, st *store.Store, client *fetch.Client, reg *registry.Registry) *appState {
	return &appState{
		cfg:      cfg,
		st:       st,
		client:   client,
		reg:      reg,
		resolver: identity.NewResolver(reg, cfg.Floors()),
	}
}

// lookup returns the current registry/resolver snapshot. Both are immutable
// once built; holding the pair from one call keeps a tool's view consistent
// across a concurrent reload.
func (a *appState) lookup() (*registry.Registry, *identity.Resolver) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reg, a.resolver
}

// swapRegistry installs a new registry snapshot and its resolver.
func (a *appState) swapRegistry(reg *registry.Registry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reg = reg
	a.resolver = identity.NewResolver(reg, a.cfg.Floors())
}

// syncDraft fetches the provider's current payload and folds any new picks
// into the session, creating it on first contact with a draft. A fetch
// failure returns the last-known-good session when one exists.
func (a *appState) syncDraft(ctx context.Context, draftID string, force bool) (*draftstate.Session, error) {
	if draftID == "" {
		return nil, fmt.Errorf("draft_id is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	payload, err := a.client.DraftPayload(ctx, draftID, force)
	if err != nil {
		if a.session != nil && a.draftID == draftID {
			return a.session, nil
		}
		return nil, err
	}

	if a.session == nil || a.draftID != draftID {
		order := draftstate.ResolveOrder(payload.Info, a.cfg.OperatorUserID)
		a.session = draftstate.NewSession(order)
		a.draftID = draftID
	}

	if appended := a.session.Ingest(payload.Picks); appended > 0 {
		for _, p := range a.session.Picks() {
			if err := a.st.AppendPick(ctx, a.session.ID, p); err != nil {
				return nil, err
			}
		}
	}
	return a.session, nil
}

// currentSession returns the active session without touching the provider.
func (a *appState) currentSession() (*draftstate.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session, a.session != nil
}
