// Package poller drives the canonical interaction cycle: fetch the latest
// provider state, ingest new picks into the session, then hand the session
// to the caller for recomputation. Cycles are short blocking units of work;
// cancellation lands between cycles, never mid-cycle.
package poller

import (
	"context"
	"log/slog"
	"time"

	"nfl-draft-mcp/internal/draftstate"
)

// FetchFunc returns the provider's current payload.
type FetchFunc func(ctx context.Context) (draftstate.ProviderPayload, error)

// CycleFunc observes the session after each successful sync; appended is
// the number of new picks this cycle.
type CycleFunc func(session *draftstate.Session, appended int)

type Poller struct {
	Fetch    FetchFunc
	Session  *draftstate.Session
	Interval time.Duration
	Logger   *slog.Logger
	OnCycle  CycleFunc
}

func New(session *draftstate.Session, fetch FetchFunc, interval time.Duration) *Poller {
	return &Poller{
		Fetch:    fetch,
		Session:  session,
		Interval: interval,
		Logger:   slog.Default(),
	}
}

// RunOnce executes a single cycle. A fetch failure leaves the session at
// last-known-good and reports the error; the session is never corrupted by
// a partial cycle.
func (p *Poller) RunOnce(ctx context.Context) (int, error) {
	payload, err := p.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	appended := p.Session.Ingest(payload.Picks)
	if p.OnCycle != nil {
		p.OnCycle(p.Session, appended)
	}
	return appended, nil
}

// Run loops until the context is cancelled or the draft completes.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		appended, err := p.RunOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Logger.Warn("poll cycle failed; keeping last known state", "err", err)
		} else if appended > 0 {
			p.Logger.Info("ingested picks",
				"appended", appended, "total", p.Session.TotalPicks())
		}

		if p.Session.NextTurn().Complete {
			p.Logger.Info("draft complete", "total_picks", p.Session.TotalPicks())
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
