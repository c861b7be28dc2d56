package registry

import (
	"testing"

	"nfl-draft-mcp/internal/model"
)

func newTestRegistry() *Registry {
	return New([]model.Player{
		{ID: 3, Name: "C", Position: model.WR},
		{ID: 1, Name: "A", Position: model.QB},
		{ID: 2, Name: "B", Position: model.WR},
	})
}

func TestRegistry_Lookup(t *testing.T) {
	r := newTestRegistry()

	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
	p, ok := r.Player(2)
	if !ok || p.Name != "B" {
		t.Errorf("Player(2) = %+v, %v; want player B", p, ok)
	}
	if _, ok := r.Player(99); ok {
		t.Error("Player(99) found, want miss")
	}
}

func TestRegistry_PositionSortedByID(t *testing.T) {
	wrs := newTestRegistry().Position(model.WR)
	if len(wrs) != 2 || wrs[0].ID != 2 || wrs[1].ID != 3 {
		t.Errorf("Position(WR) = %v, want ids 2,3 in order", wrs)
	}
}

func TestRegistry_Available(t *testing.T) {
	r := newTestRegistry()

	got := r.Available(map[int]bool{2: true})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Available = %v, want ids 1,3", got)
	}
	if all := r.Available(nil); len(all) != 3 {
		t.Errorf("Available(nil) = %d players, want all 3", len(all))
	}
}
