// Package identity matches free-text (name, position, team?) triples from
// ranking sources against the player registry. Matching is score-and-
// threshold, not exact-only: sources disagree on suffixes, team codes, and
// defense naming, so the resolver keeps the best-scoring candidate and
// refuses to guess below a per-position confidence floor.
package identity

import (
	"strings"

	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/nflteams"
	"nfl-draft-mcp/internal/registry"
)

type Status int

const (
	Unmatched Status = iota
	Matched
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unmatched"
	}
}

// MatchResult is the outcome of one resolution. Unmatched and Ambiguous are
// ordinary values, not errors: batch ingestion reports them and moves on.
type MatchResult struct {
	Status     Status `json:"status"`
	PlayerID   int    `json:"player_id,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
	// Candidates holds the tied player ids when Status is Ambiguous.
	Candidates []int `json:"candidates,omitempty"`
}

// Confidence levels per signal strength. First-and-last token agreement is
// nearly as strong as an exact string match; a lone last-token or first-token
// hit is progressively weaker. A first-token-only hit sits below every
// default floor on purpose: alone it never clears the threshold, and only a
// deliberately lowered per-position floor (config confidence_floors) lets it
// report a match.
const (
	scoreExact        = 100
	scoreSuffixExact  = 98
	scoreFirstAndLast = 95
	scoreLastOnly     = 82
	scoreFirstOnly    = 70
	teamHintBonus     = 5

	// DefaultFloor is the minimum confidence to report a match for skill
	// positions; DSTFloor applies to team defenses.
	DefaultFloor = 80
	DSTFloor     = 75
)

var suffixes = []string{"jr", "jr.", "sr", "sr.", "ii", "iii", "iv", "v"}

type Resolver struct {
	reg    *registry.Registry
	floors map[model.Position]int
}

// NewResolver builds a resolver over a registry snapshot. floors may be nil
// to accept the defaults.
func NewResolver(reg *registry.Registry, floors map[model.Position]int) *Resolver {
	f := map[model.Position]int{
		model.QB: DefaultFloor, model.RB: DefaultFloor, model.WR: DefaultFloor,
		model.TE: DefaultFloor, model.K: DefaultFloor, model.DST: DSTFloor,
	}
	for pos, floor := range floors {
		f[pos] = floor
	}
	return &Resolver{reg: reg, floors: f}
}

// Resolve matches a candidate name at a position. Position is a hard filter:
// a name identical to a real player at another position never matches.
// teamHint may be empty; when present it breaks ties and adds confidence.
func (r *Resolver) Resolve(rawName string, pos model.Position, teamHint string) MatchResult {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return MatchResult{Status: Unmatched}
	}
	if pos == model.DST {
		return r.resolveDefense(name)
	}

	name, embedded := extractTeamMarker(name)
	hint := ""
	if embedded != "" {
		hint = embedded
	} else if code, ok := nflteams.Normalize(teamHint); ok {
		hint = code
	}

	candFirst, candLast := nameTokens(name)
	candFold := foldName(name)
	candFoldStripped := foldName(stripSuffix(name))

	best := 0
	var bestIDs []int
	for _, p := range r.reg.Position(pos) {
		score := scoreAgainst(p, candFold, candFoldStripped, candFirst, candLast)
		if score == 0 {
			continue
		}
		if hint != "" && strings.EqualFold(p.Team, hint) {
			score += teamHintBonus
			if score > scoreExact {
				score = scoreExact
			}
		}
		switch {
		case score > best:
			best = score
			bestIDs = bestIDs[:0]
			bestIDs = append(bestIDs, p.ID)
		case score == best:
			bestIDs = append(bestIDs, p.ID)
		}
	}

	if best < r.floors[pos] || len(bestIDs) == 0 {
		return MatchResult{Status: Unmatched}
	}
	if len(bestIDs) > 1 {
		return MatchResult{Status: Ambiguous, Confidence: best, Candidates: bestIDs}
	}
	return MatchResult{Status: Matched, PlayerID: bestIDs[0], Confidence: best}
}

// resolveDefense matches a team-defense label against the franchise lexicon
// rather than against personal names.
func (r *Resolver) resolveDefense(name string) MatchResult {
	code, ok := nflteams.DefenseCode(name)
	if !ok {
		return MatchResult{Status: Unmatched}
	}
	for _, p := range r.reg.Position(model.DST) {
		if strings.EqualFold(p.Team, code) {
			return MatchResult{Status: Matched, PlayerID: p.ID, Confidence: scoreExact}
		}
	}
	return MatchResult{Status: Unmatched}
}

func scoreAgainst(p model.Player, candFold, candFoldStripped string, candFirst, candLast string) int {
	regFold := foldName(p.Name)
	if regFold == candFold {
		return scoreExact
	}
	if foldName(stripSuffix(p.Name)) == candFoldStripped {
		return scoreSuffixExact
	}
	regFirst, regLast := nameTokens(p.Name)
	firstEq := candFirst != "" && candFirst == regFirst
	lastEq := candLast != "" && candLast == regLast
	switch {
	case firstEq && lastEq:
		return scoreFirstAndLast
	case lastEq:
		return scoreLastOnly
	case firstEq:
		return scoreFirstOnly
	default:
		return 0
	}
}

// extractTeamMarker strips a trailing parenthetical team code, e.g.
// "Josh Allen (BUF)", returning the clean name and the normalized code.
func extractTeamMarker(name string) (string, string) {
	open := strings.LastIndex(name, "(")
	if open < 0 || !strings.HasSuffix(name, ")") {
		return name, ""
	}
	marker := name[open+1 : len(name)-1]
	clean := strings.TrimSpace(name[:open])
	if code, ok := nflteams.Normalize(marker); ok && clean != "" {
		return clean, code
	}
	return name, ""
}

// stripSuffix removes a trailing generational suffix so "Michael Pittman"
// and "Michael Pittman Jr." compare equal.
func stripSuffix(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 3 {
		return name
	}
	last := strings.ToLower(fields[len(fields)-1])
	for _, s := range suffixes {
		if last == s {
			return strings.Join(fields[:len(fields)-1], " ")
		}
	}
	return name
}

func foldName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// nameTokens returns the normalized first and last token of a name, with any
// generational suffix removed first.
func nameTokens(name string) (string, string) {
	fields := strings.Fields(stripSuffix(name))
	if len(fields) == 0 {
		return "", ""
	}
	first := normalizeToken(fields[0])
	last := normalizeToken(fields[len(fields)-1])
	return first, last
}

func normalizeToken(tok string) string {
	tok = strings.ToLower(tok)
	return strings.Trim(tok, ".,'")
}
