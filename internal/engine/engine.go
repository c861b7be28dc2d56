// Package engine ranks the available player pool for the next pick. The
// score is a weighted sum of named, independently tunable terms; every
// reason string is built from a term that actually contributed, so the
// justification always mirrors the score.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/roster"
)

// Weights are the tunable scoring terms. None of these values carries a
// documented derivation; they are exposed as configuration rather than
// buried as literals.
type Weights struct {
	// BaseCeiling sets the base value of a consensus #1 player; value decays
	// linearly with mean rank and floors at zero.
	BaseCeiling float64 `json:"base_ceiling" koanf:"base_ceiling"`
	// Scarcity multiplies the rank gap between the best and next-best
	// available player at a position (the tier cliff).
	Scarcity float64 `json:"scarcity" koanf:"scarcity"`
	// NeedBonus multiplies the team's current deficit at the position.
	NeedBonus float64 `json:"need_bonus" koanf:"need_bonus"`
	// LowPriorityPenalty is subtracted for K/DST picks when the team has no
	// deficit there, so a kicker never outranks a starter-quality player.
	LowPriorityPenalty float64 `json:"low_priority_penalty" koanf:"low_priority_penalty"`
	// Upside multiplies the gap between mean and best rank (boom potential).
	Upside float64 `json:"upside" koanf:"upside"`
	// Reliability rewards low disagreement between sources (safe floor).
	Reliability float64 `json:"reliability" koanf:"reliability"`
	// ADP multiplies how far a player has fallen past their average draft
	// position.
	ADP float64 `json:"adp" koanf:"adp"`
	// UnrankedRank is the explicit fallback rank for players no source
	// carries. It exists only at this boundary; consensus math never sees it.
	UnrankedRank float64 `json:"unranked_rank" koanf:"unranked_rank"`
}

func DefaultWeights() Weights {
	return Weights{
		BaseCeiling:        120,
		Scarcity:           1.5,
		NeedBonus:          8,
		LowPriorityPenalty: 25,
		Upside:             0.8,
		Reliability:        5,
		ADP:                0.5,
		UnrankedRank:       999,
	}
}

// PickContext carries draft-wide signals the per-player terms need.
type PickContext struct {
	// PickNumber is the upcoming global pick (1-based).
	PickNumber int
	// ADP maps player id to an independent average-draft-position figure.
	// May be nil or sparse.
	ADP map[int]float64
}

// ScoreComponents itemizes every term so callers can see what drove the
// total.
type ScoreComponents struct {
	BaseValue          float64 `json:"base_value"`
	ScarcityGap        float64 `json:"scarcity_gap"`
	NeedBonus          float64 `json:"need_bonus"`
	LowPriorityPenalty float64 `json:"low_priority_penalty"`
	Upside             float64 `json:"upside"`
	Reliability        float64 `json:"reliability"`
	ADPValue           float64 `json:"adp_value"`
	Total              float64 `json:"total"`
}

type Recommendation struct {
	PlayerID   int             `json:"player_id"`
	Name       string          `json:"name"`
	Position   model.Position  `json:"position"`
	Team       string          `json:"team,omitempty"`
	MeanRank   float64         `json:"mean_rank,omitempty"`
	Unranked   bool            `json:"unranked,omitempty"`
	Score      float64         `json:"score"`
	Components ScoreComponents `json:"components"`
	Reasons    []string        `json:"reasons"`
}

// Recommend scores every available player and returns them best-first.
// Ordering is total score descending, then mean rank ascending, then player
// id, so identical inputs always yield identical output. An empty pool
// yields an empty list, never an error.
func Recommend(available []model.Player, rankings map[int]consensus.Ranking, need roster.Need, ctx PickContext, w Weights) []Recommendation {
	if len(available) == 0 {
		return []Recommendation{}
	}

	tierGap := positionTierGaps(available, rankings)

	out := make([]Recommendation, 0, len(available))
	for _, p := range available {
		r, ranked := rankings[p.ID]
		mean := w.UnrankedRank
		if ranked {
			mean = r.Mean
		}

		var c ScoreComponents
		reasons := make([]string, 0, 4)

		c.BaseValue = w.BaseCeiling - mean
		if c.BaseValue < 0 {
			c.BaseValue = 0
		}
		if ranked {
			reasons = append(reasons, fmt.Sprintf("consensus rank %.1f across %d sources", r.Mean, r.Observations))
		} else {
			reasons = append(reasons, fmt.Sprintf("unranked by every source (fallback rank %.0f)", w.UnrankedRank))
		}

		// Tier cliff applies only to the best available player at the
		// position; taking anyone else forfeits nothing.
		if gap, ok := tierGap[p.Position]; ok && gap.bestID == p.ID && gap.gap > 0 {
			c.ScarcityGap = w.Scarcity * gap.gap
			reasons = append(reasons, fmt.Sprintf("last of a tier: %.1f-rank gap to the next %s", gap.gap, p.Position))
		}

		deficit := need.Deficits[p.Position]
		if deficit > 0 {
			c.NeedBonus = w.NeedBonus * float64(deficit)
			reasons = append(reasons, fmt.Sprintf("fills a need: %d %s slot(s) open", deficit, p.Position))
		} else if p.Position == model.K || p.Position == model.DST {
			c.LowPriorityPenalty = -w.LowPriorityPenalty
			reasons = append(reasons, fmt.Sprintf("%s already filled; deprioritized", p.Position))
		}

		if ranked {
			if up := r.Mean - float64(r.Best); up > 0 {
				c.Upside = w.Upside * up
				reasons = append(reasons, fmt.Sprintf("upside: best-case rank %d vs consensus %.1f", r.Best, r.Mean))
			}
			c.Reliability = w.Reliability / (1 + r.StdDev)
			if r.Observations > 1 && r.StdDev <= 3 {
				reasons = append(reasons, fmt.Sprintf("sources agree (stddev %.1f)", r.StdDev))
			}
		}

		if adp, ok := ctx.ADP[p.ID]; ok && ranked {
			if falling := adp - r.Mean; falling > 0 {
				c.ADPValue = w.ADP * falling
				reasons = append(reasons, fmt.Sprintf("falling: consensus %.1f vs ADP %.1f", r.Mean, adp))
			}
		}

		c.Total = c.BaseValue + c.ScarcityGap + c.NeedBonus + c.LowPriorityPenalty + c.Upside + c.Reliability + c.ADPValue

		out = append(out, Recommendation{
			PlayerID:   p.ID,
			Name:       p.Name,
			Position:   p.Position,
			Team:       p.Team,
			MeanRank:   mean,
			Unranked:   !ranked,
			Score:      c.Total,
			Components: c,
			Reasons:    reasons,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].MeanRank != out[j].MeanRank {
			return out[i].MeanRank < out[j].MeanRank
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

type tierInfo struct {
	bestID int
	gap    float64
}

// positionTierGaps finds, per position, the best-ranked available player and
// the mean-rank gap to the next-best. Positions with fewer than two ranked
// players have no measurable cliff and are omitted.
func positionTierGaps(available []model.Player, rankings map[int]consensus.Ranking) map[model.Position]tierInfo {
	type ranked struct {
		id   int
		mean float64
	}
	pools := make(map[model.Position][]ranked)
	for _, p := range available {
		if r, ok := rankings[p.ID]; ok {
			pools[p.Position] = append(pools[p.Position], ranked{id: p.ID, mean: r.Mean})
		}
	}
	out := make(map[model.Position]tierInfo, len(pools))
	for pos, pool := range pools {
		if len(pool) < 2 {
			continue
		}
		sort.Slice(pool, func(i, j int) bool {
			if pool[i].mean != pool[j].mean {
				return pool[i].mean < pool[j].mean
			}
			return pool[i].id < pool[j].id
		})
		out[pos] = tierInfo{bestID: pool[0].id, gap: pool[1].mean - pool[0].mean}
	}
	return out
}

// FormulaNote documents the scoring formula for report output.
func FormulaNote() string {
	terms := []string{
		"max(0, base_ceiling - mean_rank)",
		"scarcity * tier_gap (best at position only)",
		"need_bonus * deficit",
		"-low_priority_penalty (K/DST with no deficit)",
		"upside * (mean_rank - best_rank)",
		"reliability / (1 + std_dev)",
		"adp * max(0, adp - mean_rank)",
	}
	return "score = " + strings.Join(terms, " + ")
}
