// Package consensus turns per-source ranking observations into one
// consensus view per player. Rankings are derived values, recomputed on
// demand and never patched in place.
package consensus

import (
	"math"
	"sort"
	"time"
)

// unrankedSentinel guards against the "999 means missing" convention some
// feeds use: such rows are treated as absent, never averaged.
const unrankedSentinel = 999

// Observation is one source's opinion of one player. Rank is 1-based within
// the source's position list.
type Observation struct {
	PlayerID   int       `json:"player_id"`
	Source     string    `json:"source"`
	Rank       int       `json:"rank"`
	ObservedAt time.Time `json:"observed_at"`
}

// Ranking is the aggregate across sources. Ranked is false when no source
// carried the player; the numeric fields are meaningless in that case and
// callers needing a fallback number must supply their own cutoff.
type Ranking struct {
	PlayerID     int     `json:"player_id"`
	Mean         float64 `json:"mean_rank"`
	Median       float64 `json:"median_rank"`
	Best         int     `json:"best_rank"`
	Worst        int     `json:"worst_rank"`
	StdDev       float64 `json:"std_dev"`
	Observations int     `json:"observation_count"`
	Ranked       bool    `json:"ranked"`
}

// Aggregate groups observations by player and computes each player's
// consensus. Sentinel and non-positive ranks are dropped before any math.
func Aggregate(observations []Observation) map[int]Ranking {
	byPlayer := make(map[int][]int)
	for _, o := range observations {
		if o.Rank < 1 || o.Rank >= unrankedSentinel {
			continue
		}
		byPlayer[o.PlayerID] = append(byPlayer[o.PlayerID], o.Rank)
	}
	out := make(map[int]Ranking, len(byPlayer))
	for playerID, ranks := range byPlayer {
		out[playerID] = aggregateOne(playerID, ranks)
	}
	return out
}

func aggregateOne(playerID int, ranks []int) Ranking {
	sort.Ints(ranks)
	n := len(ranks)
	best := ranks[0]
	worst := ranks[n-1]

	sum := 0
	for _, r := range ranks {
		sum += r
	}
	mean := float64(sum) / float64(n)

	var median float64
	if n%2 == 1 {
		median = float64(ranks[n/2])
	} else {
		median = float64(ranks[n/2-1]+ranks[n/2]) / 2
	}

	// Sample standard deviation; zero with a single observation.
	stddev := 0.0
	if n > 1 {
		ss := 0.0
		for _, r := range ranks {
			d := float64(r) - mean
			ss += d * d
		}
		stddev = math.Sqrt(ss / float64(n-1))
	}

	return Ranking{
		PlayerID:     playerID,
		Mean:         mean,
		Median:       median,
		Best:         best,
		Worst:        worst,
		StdDev:       stddev,
		Observations: n,
		Ranked:       true,
	}
}

// PositionRank is one row of a dense positional re-ranking.
type PositionRank struct {
	PlayerID int `json:"player_id"`
	Rank     int `json:"rank"`
}

// Rerank assigns dense 1..N ordinals to playerIDs by consensus mean
// ascending, ties by stddev ascending (agreement beats disagreement), then
// player id. Unranked players sort after every ranked one, by id.
func Rerank(rankings map[int]Ranking, playerIDs []int) []PositionRank {
	ids := make([]int, len(playerIDs))
	copy(ids, playerIDs)
	sort.Slice(ids, func(i, j int) bool {
		a, aok := rankings[ids[i]]
		b, bok := rankings[ids[j]]
		if aok != bok {
			return aok
		}
		if !aok {
			return ids[i] < ids[j]
		}
		if a.Mean != b.Mean {
			return a.Mean < b.Mean
		}
		if a.StdDev != b.StdDev {
			return a.StdDev < b.StdDev
		}
		return ids[i] < ids[j]
	})
	out := make([]PositionRank, len(ids))
	for i, id := range ids {
		out[i] = PositionRank{PlayerID: id, Rank: i + 1}
	}
	return out
}
