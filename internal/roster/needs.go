// Package roster recomputes a team's positional counts and deficits from
// its picks. It reports raw shortfalls only; how deficits weigh against the
// stage of the draft is the valuation engine's concern.
package roster

import (
	"nfl-draft-mcp/internal/model"
)

// Targets is the desired roster shape, position -> slot count.
type Targets map[model.Position]int

// DefaultTargets is a conventional 16-round shape.
func DefaultTargets() Targets {
	return Targets{
		model.QB:  2,
		model.RB:  4,
		model.WR:  5,
		model.TE:  2,
		model.K:   1,
		model.DST: 1,
	}
}

// Need is a derived view, recomputed from the pick log on every query and
// never stored.
type Need struct {
	TeamID   int                    `json:"team_id"`
	Counts   map[model.Position]int `json:"counts"`
	Targets  map[model.Position]int `json:"targets"`
	Deficits map[model.Position]int `json:"deficits"`
}

// Needs tallies picks belonging to teamID against targets. lookup maps a
// player id to its registry entry; picks with no resolved player are
// skipped. Deficits clamp at zero, never negative.
func Needs(teamID int, picks []model.Pick, lookup func(int) (model.Player, bool), targets Targets) Need {
	counts := make(map[model.Position]int, len(targets))
	for _, p := range picks {
		if p.TeamID != teamID || p.PlayerID == 0 {
			continue
		}
		player, ok := lookup(p.PlayerID)
		if !ok {
			continue
		}
		counts[player.Position]++
	}

	deficits := make(map[model.Position]int, len(targets))
	targetOut := make(map[model.Position]int, len(targets))
	for pos, target := range targets {
		targetOut[pos] = target
		d := target - counts[pos]
		if d < 0 {
			d = 0
		}
		deficits[pos] = d
	}

	return Need{
		TeamID:   teamID,
		Counts:   counts,
		Targets:  targetOut,
		Deficits: deficits,
	}
}
