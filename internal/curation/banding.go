/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import "github.com/friendsincode/bragi_curation/internal/models"

// Band thresholds shared by song analysis and cluster interpretation.
// Unit-interval features band at 0.30/0.70; tempo bands at 90/130 BPM.
const (
	bandLow  = 0.30
	bandHigh = 0.70

	tempoSlow = 90.0
	tempoFast = 130.0
)

// unitBand interprets a [0,1] feature value.
func unitBand(v float64) string {
	switch {
	case v >= bandHigh:
		return "high"
	case v >= bandLow:
		return "moderate"
	default:
		return "low"
	}
}

// tempoBand interprets a BPM value.
func tempoBand(bpm float64) string {
	switch {
	case bpm >= tempoFast:
		return "fast"
	case bpm >= tempoSlow:
		return "moderate"
	default:
		return "slow"
	}
}

// FeatureBands produces the plain-language interpretation of a feature
// vector, keyed by canonical dimension name. Instrumentalness collapses
// to a vocal/instrumental call at 0.5 since listeners hear it as binary.
func FeatureBands(fv models.FeatureVector) map[string]string {
	bands := map[string]string{
		"energy":       unitBand(fv.Energy) + " energy",
		"valence":      moodBand(fv.Valence),
		"danceability": unitBand(fv.Danceability) + " danceability",
		"acousticness": unitBand(fv.Acousticness) + " acousticness",
		"speechiness":  unitBand(fv.Speechiness) + " speechiness",
		"liveness":     unitBand(fv.Liveness) + " liveness",
		"tempo":        tempoBand(fv.Tempo) + " tempo",
	}
	if fv.Instrumentalness >= 0.5 {
		bands["instrumentalness"] = "mostly instrumental"
	} else {
		bands["instrumentalness"] = "mostly vocal"
	}
	return bands
}

// moodBand phrases valence in listener terms.
func moodBand(valence float64) string {
	switch {
	case valence >= bandHigh:
		return "upbeat mood"
	case valence >= bandLow:
		return "neutral mood"
	default:
		return "melancholic mood"
	}
}
