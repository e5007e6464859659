/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import (
	"math"
	"sort"

	"github.com/friendsincode/bragi_curation/internal/models"
)

// Ranker orders candidate tracks by cosine similarity against a target
// feature vector. Tempo is min-max rescaled into [0,1] using the catalog
// bounds before it joins the unit-interval dimensions. Ranking is fully
// deterministic: equal scores fall back to descending popularity, then
// ascending track id.
type Ranker struct {
	tempoMin float64
	tempoMax float64
}

// NewRanker builds a ranker around the observed catalog tempo range.
func NewRanker(tempoMin, tempoMax float64) *Ranker {
	return &Ranker{tempoMin: tempoMin, tempoMax: tempoMax}
}

// Rank scores every candidate against the target and returns them in
// descending score order.
func (r *Ranker) Rank(candidates []models.Track, target models.FeatureVector) []models.ScoredTrack {
	targetDims := target.Dims(r.tempoMin, r.tempoMax)

	scored := make([]models.ScoredTrack, 0, len(candidates))
	for _, t := range candidates {
		scored = append(scored, models.ScoredTrack{
			Track: t,
			Score: cosine(t.Features.Dims(r.tempoMin, r.tempoMax), targetDims),
		})
	}
	sortRanked(scored)
	return scored
}

// RankMood restricts candidates to the mood tolerance band before
// scoring. When the restriction leaves fewer than want tracks, the
// out-of-band remainder is appended, still similarity-ordered, rather
// than under-filling the result. An empty candidate set fails with
// models.ErrInsufficientCandidates.
func (r *Ranker) RankMood(candidates []models.Track, profile models.MoodProfile, want int) ([]models.ScoredTrack, error) {
	if len(candidates) == 0 {
		return nil, models.ErrInsufficientCandidates
	}

	inBand := make([]models.Track, 0, len(candidates))
	outBand := make([]models.Track, 0, len(candidates))
	for _, t := range candidates {
		if withinTolerance(t.Features, profile) {
			inBand = append(inBand, t)
		} else {
			outBand = append(outBand, t)
		}
	}

	ranked := r.Rank(inBand, profile.Target)
	if len(ranked) < want {
		ranked = append(ranked, r.Rank(outBand, profile.Target)...)
	}
	return ranked, nil
}

// Score exposes the pairwise similarity of two vectors under this
// ranker's tempo scaling.
func (r *Ranker) Score(a, b models.FeatureVector) float64 {
	return cosine(a.Dims(r.tempoMin, r.tempoMax), b.Dims(r.tempoMin, r.tempoMax))
}

// cosine returns the cosine similarity of two equal-length vectors. A
// zero-norm vector scores 0 against anything; the division by zero of the
// textbook formula never happens.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func sortRanked(scored []models.ScoredTrack) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Track.Popularity != scored[j].Track.Popularity {
			return scored[i].Track.Popularity > scored[j].Track.Popularity
		}
		return scored[i].Track.ID < scored[j].Track.ID
	})
}
