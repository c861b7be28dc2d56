package draftstate

import (
	"sort"

	"github.com/google/uuid"

	"nfl-draft-mcp/internal/model"
)

// Session is the mutable state of one live draft. The pick log is append-
// only with a single writer (the ingestion loop); readers take a snapshot
// via Picks and never see a partially-applied cycle.
type Session struct {
	ID    string
	Order Order

	picks []model.Pick
	seen  map[pickKey]bool

	// PickedByMismatches counts raw picks whose non-empty picked_by field
	// disagreed with the slot-derived team. The slot mapping wins; the
	// counter only surfaces provider inconsistency.
	PickedByMismatches int
}

// pickKey is the idempotency key for ingestion: re-polling the same state
// must never double-count a pick.
type pickKey struct {
	round  int
	pickNo int
}

func NewSession(order Order) *Session {
	return &Session{
		ID:    uuid.NewString(),
		Order: order,
		seen:  make(map[pickKey]bool),
	}
}

// Ingest resolves raw provider picks to authoritative Picks and appends the
// ones not seen before, in pick-number order. Returns how many were
// appended. The team id always derives from the draft slot mapping; the raw
// picked_by field is never trusted directly.
func (s *Session) Ingest(raw []ProviderPick) int {
	incoming := make([]ProviderPick, len(raw))
	copy(incoming, raw)
	sort.Slice(incoming, func(i, j int) bool {
		return incoming[i].PickNo < incoming[j].PickNo
	})

	appended := 0
	for _, rp := range incoming {
		if rp.PickNo < 1 || rp.Round < 1 {
			continue
		}
		key := pickKey{round: rp.Round, pickNo: rp.PickNo}
		if s.seen[key] {
			continue
		}
		s.seen[key] = true

		// A missing draft_slot is recoverable: the seat follows from the
		// pick number and the draft shape, so derive it before resolving
		// ownership rather than falling back to an unattributed pick.
		slotInRound := rp.DraftSlot
		if slotInRound == 0 {
			slotInRound = s.Order.SlotForPick(rp.PickNo)
		}
		teamID := s.Order.TeamForSlot(slotInRound)
		if rp.PickedBy != "" {
			if slot, ok := s.Order.slotForUser[rp.PickedBy]; ok && s.Order.TeamForSlot(slot) != teamID {
				s.PickedByMismatches++
			}
		}
		s.picks = append(s.picks, model.Pick{
			PickNumber:  rp.PickNo,
			Round:       rp.Round,
			SlotInRound: slotInRound,
			TeamID:      teamID,
			PlayerID:    rp.PlayerID,
		})
		appended++
	}
	if appended > 0 {
		sort.Slice(s.picks, func(i, j int) bool {
			return s.picks[i].PickNumber < s.picks[j].PickNumber
		})
	}
	return appended
}

// TotalPicks reports the length of the pick log.
func (s *Session) TotalPicks() int {
	return len(s.picks)
}

// Picks returns a snapshot copy of the pick log.
func (s *Session) Picks() []model.Pick {
	out := make([]model.Pick, len(s.picks))
	copy(out, s.picks)
	return out
}

// TeamPicks returns the picks owned by one team, in pick order.
func (s *Session) TeamPicks(teamID int) []model.Pick {
	out := make([]model.Pick, 0, len(s.picks))
	for _, p := range s.picks {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// DraftedIDs returns the set of player ids already taken.
func (s *Session) DraftedIDs() map[int]bool {
	out := make(map[int]bool, len(s.picks))
	for _, p := range s.picks {
		if p.PlayerID != 0 {
			out[p.PlayerID] = true
		}
	}
	return out
}

// NextTurn and IsOperatorTurn answer the turn/status query from the current
// log length.
func (s *Session) NextTurn() Turn {
	return s.Order.NextTurn(len(s.picks))
}

func (s *Session) IsOperatorTurn() OperatorTurn {
	return s.Order.IsOperatorTurn(len(s.picks))
}
