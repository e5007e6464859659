/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import (
	"math"
	"strings"

	"github.com/friendsincode/bragi_curation/internal/models"
)

// DiversitySampler selects a genre- and variance-diverse subset from a
// ranked candidate pool. Selection is a single greedy pass over the rank
// order: a candidate is taken unless it would push its genre past the
// level's cap or it is a near-duplicate of an already selected track.
// Exhausting the pool before reaching size yields a partial result,
// never padding.
type DiversitySampler struct {
	tuning Tuning
	ranker *Ranker
}

// NewDiversitySampler builds a sampler sharing the ranker's tempo scaling
// for near-duplicate comparisons.
func NewDiversitySampler(tuning Tuning, ranker *Ranker) *DiversitySampler {
	return &DiversitySampler{tuning: tuning, ranker: ranker}
}

// Sample picks up to size tracks from the ranked pool at the given
// diversity level.
func (d *DiversitySampler) Sample(ranked []models.ScoredTrack, size int, level models.DiversityLevel) []models.Track {
	if size <= 0 || len(ranked) == 0 {
		return nil
	}

	genreCap := d.genreCap(ranked, size, level)
	dupThreshold := d.tuning.NearDuplicate[level]

	selected := make([]models.Track, 0, size)
	genreCounts := map[string]int{}

	for _, cand := range ranked {
		if len(selected) >= size {
			break
		}
		genre := strings.ToLower(cand.Track.Genre)
		if genreCap > 0 && genreCounts[genre] >= genreCap {
			continue
		}
		if d.nearDuplicate(cand.Track, selected, dupThreshold) {
			continue
		}
		selected = append(selected, cand.Track)
		genreCounts[genre]++
	}

	return selected
}

// genreCap derives the per-genre selection cap. Low diversity has none.
// High diversity additionally attempts an even split across the genres
// present in the input, whichever bound is tighter.
func (d *DiversitySampler) genreCap(ranked []models.ScoredTrack, size int, level models.DiversityLevel) int {
	share := d.tuning.GenreCap[level]
	if share <= 0 {
		return 0
	}

	limit := int(math.Floor(share * float64(size)))
	if limit < 1 {
		limit = 1
	}

	if level == models.DiversityHigh {
		genres := map[string]struct{}{}
		for _, cand := range ranked {
			genres[strings.ToLower(cand.Track.Genre)] = struct{}{}
		}
		if len(genres) > 0 {
			even := int(math.Ceil(float64(size) / float64(len(genres))))
			if even < limit {
				limit = even
			}
		}
	}
	return limit
}

func (d *DiversitySampler) nearDuplicate(candidate models.Track, selected []models.Track, threshold float64) bool {
	if threshold <= 0 {
		return false
	}
	for _, picked := range selected {
		if d.ranker.Score(candidate.Features, picked.Features) > threshold {
			return true
		}
	}
	return false
}
