package search

import (
	"math"
	"sort"

	"github.com/poiesic/scout/core"
)

// combine performs the cross-category AND: the candidate set is the
// intersection of actor ids across every contributing category's result
// set, and each surviving actor's score is the arithmetic mean of its
// per-category similarity scores. A single category's result set passes
// through with its scores unmodified.
func combine(results map[core.ChunkType][]categoryHit) []categoryHit {
	if len(results) == 0 {
		return nil
	}
	if len(results) == 1 {
		for _, hits := range results {
			return hits
		}
	}

	type accumulator struct {
		sum   float32
		count int
	}
	acc := make(map[core.ActorID]*accumulator)
	for _, hits := range results {
		for _, hit := range hits {
			a := acc[hit.actorID]
			if a == nil {
				a = &accumulator{}
				acc[hit.actorID] = a
			}
			a.sum += hit.score
			a.count++
		}
	}

	// An actor is valid only when present in every contributing set.
	// Dividing by the actor's own contribution count (equal to the set
	// count here) guarantees no score is averaged over a set the actor
	// was absent from.
	var combined []categoryHit
	for actorID, a := range acc {
		if a.count != len(results) {
			continue
		}
		combined = append(combined, categoryHit{
			actorID: actorID,
			score:   a.sum / float32(a.count),
		})
	}

	return combined
}

// sortCandidates orders candidates descending by score, breaking ties by
// actor id for reproducible output.
func sortCandidates(candidates []*core.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ActorID < candidates[j].ActorID
	})
}

// roundScore rounds a score to three decimals for presentation.
func roundScore(score float32) float32 {
	return float32(math.Round(float64(score)*1000) / 1000)
}
