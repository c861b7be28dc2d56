package model

import "strings"

// Position is a roster slot category. DST is a whole-team defense entry and
// is matched by franchise, not by personal name.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// Positions lists all valid positions in display order.
var Positions = []Position{QB, RB, WR, TE, K, DST}

// ParsePosition normalizes a free-text position label. Ranking sources use
// a handful of spellings for team defenses.
func ParsePosition(s string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return QB, true
	case "RB":
		return RB, true
	case "WR":
		return WR, true
	case "TE":
		return TE, true
	case "K", "PK":
		return K, true
	case "DST", "D/ST", "DEF", "D":
		return DST, true
	default:
		return "", false
	}
}

// Player is immutable after registry load. Team is empty for free agents.
type Player struct {
	ID       int      `json:"player_id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Team     string   `json:"team,omitempty"`
}

// Pick is one entry in a DraftSession's append-only pick log. TeamID is the
// resolved owner (via the slot mapping), never the raw provider field.
// PlayerID is zero until the provider reports which player was taken.
type Pick struct {
	PickNumber  int `json:"pick_number"`
	Round       int `json:"round"`
	SlotInRound int `json:"slot_in_round"`
	TeamID      int `json:"team_id"`
	PlayerID    int `json:"player_id,omitempty"`
}
