// Package registry holds the canonical player list. It is loaded once and
// read-only for the duration of a draft, so it is safe to share across
// components without locking.
package registry

import (
	"sort"

	"nfl-draft-mcp/internal/model"
)

type Registry struct {
	players []model.Player
	byID    map[int]model.Player
	byPos   map[model.Position][]model.Player
}

func New(players []model.Player) *Registry {
	r := &Registry{
		players: make([]model.Player, len(players)),
		byID:    make(map[int]model.Player, len(players)),
		byPos:   make(map[model.Position][]model.Player),
	}
	copy(r.players, players)
	sort.Slice(r.players, func(i, j int) bool {
		return r.players[i].ID < r.players[j].ID
	})
	for _, p := range r.players {
		r.byID[p.ID] = p
		r.byPos[p.Position] = append(r.byPos[p.Position], p)
	}
	return r
}

func (r *Registry) Len() int {
	return len(r.players)
}

// Player looks up a registry entry by id.
func (r *Registry) Player(id int) (model.Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Position returns the pool of players at a position, sorted by id.
func (r *Registry) Position(pos model.Position) []model.Player {
	return r.byPos[pos]
}

// Available returns every player not present in drafted, sorted by id.
func (r *Registry) Available(drafted map[int]bool) []model.Player {
	out := make([]model.Player, 0, len(r.players))
	for _, p := range r.players {
		if drafted[p.ID] {
			continue
		}
		out = append(out, p)
	}
	return out
}
