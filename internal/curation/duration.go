/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import "github.com/friendsincode/bragi_curation/internal/models"

// DefaultDurationToleranceMinutes applies when a duration target arrives
// without an explicit tolerance.
const DefaultDurationToleranceMinutes = 5

// FitDuration selects a subset whose summed duration approaches the
// target, preserving rank order as the preference signal: accumulate
// candidates while the running total stays at or under target plus
// tolerance, skip any candidate that would overshoot, and keep trying
// shorter ones further down the ranking.
//
// This is a deliberate greedy approximation, not an optimal subset-sum
// solve: score rank is the primary objective and duration is a soft
// constraint, so the exact solver's cost buys nothing.
func FitDuration(ranked []models.ScoredTrack, targetMinutes, toleranceMinutes int) []models.Track {
	if targetMinutes <= 0 {
		out := make([]models.Track, 0, len(ranked))
		for _, cand := range ranked {
			out = append(out, cand.Track)
		}
		return out
	}
	if toleranceMinutes <= 0 {
		toleranceMinutes = DefaultDurationToleranceMinutes
	}

	budgetMS := int64(targetMinutes+toleranceMinutes) * 60 * 1000

	var totalMS int64
	var out []models.Track
	for _, cand := range ranked {
		durMS := int64(cand.Track.DurationMS)
		if totalMS+durMS > budgetMS {
			continue
		}
		out = append(out, cand.Track)
		totalMS += durMS
	}
	return out
}
