package draftstate

import (
	"reflect"
	"testing"
)

func testSession(operator string) *Session {
	return NewSession(ResolveOrder(tenTeamInfo(), operator))
}

func TestIngest_Idempotent(t *testing.T) {
	s := testSession("")
	raw := []ProviderPick{
		{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 11},
		{Round: 1, PickNo: 2, DraftSlot: 2, PlayerID: 22},
	}

	if got := s.Ingest(raw); got != 2 {
		t.Fatalf("first Ingest = %d, want 2", got)
	}
	// Re-polling the same payload must be a no-op.
	if got := s.Ingest(raw); got != 0 {
		t.Errorf("second Ingest = %d, want 0", got)
	}
	if s.TotalPicks() != 2 {
		t.Errorf("TotalPicks = %d, want 2", s.TotalPicks())
	}
}

func TestIngest_OutOfOrderPayloadSorted(t *testing.T) {
	s := testSession("")
	s.Ingest([]ProviderPick{
		{Round: 1, PickNo: 3, DraftSlot: 3, PlayerID: 33},
		{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 11},
	})
	s.Ingest([]ProviderPick{
		{Round: 1, PickNo: 2, DraftSlot: 2, PlayerID: 22},
	})

	var got []int
	for _, p := range s.Picks() {
		got = append(got, p.PickNumber)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("pick order = %v, want %v", got, want)
	}
}

func TestIngest_DerivesSlotFromPickNumber(t *testing.T) {
	s := testSession("")
	s.Ingest([]ProviderPick{
		{Round: 2, PickNo: 12, DraftSlot: 0, PlayerID: 5},
	})

	picks := s.Picks()
	if len(picks) != 1 {
		t.Fatalf("len(picks) = %d, want 1", len(picks))
	}
	// Round 2 of a ten-team snake runs backward: pick 12 belongs to seat 9,
	// and ownership must resolve through the derived seat.
	if picks[0].SlotInRound != 9 {
		t.Errorf("SlotInRound = %d, want 9", picks[0].SlotInRound)
	}
	if picks[0].TeamID != 109 {
		t.Errorf("TeamID = %d, want 109 via the derived seat", picks[0].TeamID)
	}
}

func TestIngest_DerivedSlotMatchesLinearOrder(t *testing.T) {
	info := tenTeamInfo()
	info.DraftType = "linear"
	s := NewSession(ResolveOrder(info, ""))
	s.Ingest([]ProviderPick{
		{Round: 2, PickNo: 12, DraftSlot: 0, PlayerID: 5},
	})

	picks := s.Picks()
	if len(picks) != 1 || picks[0].SlotInRound != 2 || picks[0].TeamID != 102 {
		t.Errorf("picks = %+v, want seat 2 / team 102 without reversal", picks)
	}
}

func TestIngest_SkipsMalformedPicks(t *testing.T) {
	s := testSession("")
	appended := s.Ingest([]ProviderPick{
		{Round: 0, PickNo: 1, DraftSlot: 1, PlayerID: 11},
		{Round: 1, PickNo: 0, DraftSlot: 1, PlayerID: 12},
		{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 13},
	})

	if appended != 1 || s.TotalPicks() != 1 {
		t.Errorf("appended = %d total = %d, want only the well-formed pick", appended, s.TotalPicks())
	}
}

func TestIngest_PickedByMismatchCounted(t *testing.T) {
	s := testSession("u1")
	s.Ingest([]ProviderPick{
		// Slot 2 belongs to team 102; picked_by says the slot-1 user. The
		// slot mapping wins and the disagreement is counted.
		{Round: 1, PickNo: 2, DraftSlot: 2, PlayerID: 22, PickedBy: "u1"},
		// Consistent picked_by does not count.
		{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 11, PickedBy: "u1"},
	})

	if s.PickedByMismatches != 1 {
		t.Errorf("PickedByMismatches = %d, want 1", s.PickedByMismatches)
	}
	for _, p := range s.Picks() {
		if p.PickNumber == 2 && p.TeamID != 102 {
			t.Errorf("pick 2 TeamID = %d, want slot-derived 102", p.TeamID)
		}
	}
}

func TestDraftedIDs_SkipsEmptyPlayer(t *testing.T) {
	s := testSession("")
	s.Ingest([]ProviderPick{
		{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 11},
		{Round: 1, PickNo: 2, DraftSlot: 2}, // pick recorded, player unknown
	})

	drafted := s.DraftedIDs()
	if !drafted[11] {
		t.Error("drafted[11] = false, want true")
	}
	if drafted[0] {
		t.Error("drafted[0] = true; the zero player id must never be marked taken")
	}
}

func TestTeamPicks(t *testing.T) {
	s := testSession("")
	s.Ingest([]ProviderPick{
		{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 11},
		{Round: 1, PickNo: 2, DraftSlot: 2, PlayerID: 22},
		{Round: 2, PickNo: 20, DraftSlot: 1, PlayerID: 33},
	})

	got := s.TeamPicks(101)
	if len(got) != 2 || got[0].PlayerID != 11 || got[1].PlayerID != 33 {
		t.Errorf("TeamPicks(101) = %v, want picks 1 and 20", got)
	}
}

func TestSession_TurnAdvancesWithIngest(t *testing.T) {
	s := testSession("u1")

	if got := s.IsOperatorTurn(); got != TurnYes {
		t.Fatalf("IsOperatorTurn before picks = %q, want %q", got, TurnYes)
	}
	s.Ingest([]ProviderPick{{Round: 1, PickNo: 1, DraftSlot: 1, PlayerID: 11}})
	if got := s.IsOperatorTurn(); got != TurnNo {
		t.Errorf("IsOperatorTurn after operator picked = %q, want %q", got, TurnNo)
	}
	if turn := s.NextTurn(); turn.PickNumber != 2 || turn.TeamID != 102 {
		t.Errorf("NextTurn = %+v, want pick 2 for team 102", turn)
	}
}
