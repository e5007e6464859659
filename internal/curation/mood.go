/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import "github.com/friendsincode/bragi_curation/internal/models"

// moodProfiles is the static mood table. Targets sit in the unit interval
// except tempo (BPM); tolerances are per-dimension allowed deviation from
// the target, with tempo tolerance expressed in BPM.
var moodProfiles = map[models.Mood]models.MoodProfile{
	models.MoodHappy: {
		Mood: models.MoodHappy,
		Target: models.FeatureVector{
			Energy: 0.70, Valence: 0.85, Danceability: 0.65, Acousticness: 0.25,
			Speechiness: 0.10, Instrumentalness: 0.05, Liveness: 0.20, Tempo: 118,
		},
		Tolerance: models.FeatureVector{
			Energy: 0.30, Valence: 0.25, Danceability: 0.35, Acousticness: 0.45,
			Speechiness: 0.35, Instrumentalness: 0.40, Liveness: 0.45, Tempo: 45,
		},
	},
	models.MoodSad: {
		Mood: models.MoodSad,
		Target: models.FeatureVector{
			Energy: 0.30, Valence: 0.15, Danceability: 0.40, Acousticness: 0.55,
			Speechiness: 0.08, Instrumentalness: 0.10, Liveness: 0.15, Tempo: 95,
		},
		Tolerance: models.FeatureVector{
			Energy: 0.30, Valence: 0.25, Danceability: 0.35, Acousticness: 0.45,
			Speechiness: 0.35, Instrumentalness: 0.45, Liveness: 0.40, Tempo: 40,
		},
	},
	models.MoodEnergetic: {
		Mood: models.MoodEnergetic,
		Target: models.FeatureVector{
			Energy: 0.90, Valence: 0.60, Danceability: 0.70, Acousticness: 0.08,
			Speechiness: 0.12, Instrumentalness: 0.05, Liveness: 0.25, Tempo: 140,
		},
		Tolerance: models.FeatureVector{
			Energy: 0.20, Valence: 0.40, Danceability: 0.30, Acousticness: 0.35,
			Speechiness: 0.35, Instrumentalness: 0.40, Liveness: 0.45, Tempo: 45,
		},
	},
	models.MoodCalm: {
		Mood: models.MoodCalm,
		Target: models.FeatureVector{
			Energy: 0.20, Valence: 0.45, Danceability: 0.35, Acousticness: 0.75,
			Speechiness: 0.06, Instrumentalness: 0.35, Liveness: 0.12, Tempo: 90,
		},
		Tolerance: models.FeatureVector{
			Energy: 0.25, Valence: 0.35, Danceability: 0.35, Acousticness: 0.40,
			Speechiness: 0.30, Instrumentalness: 0.65, Liveness: 0.35, Tempo: 40,
		},
	},
	models.MoodParty: {
		Mood: models.MoodParty,
		Target: models.FeatureVector{
			Energy: 0.80, Valence: 0.75, Danceability: 0.85, Acousticness: 0.10,
			Speechiness: 0.15, Instrumentalness: 0.05, Liveness: 0.25, Tempo: 122,
		},
		Tolerance: models.FeatureVector{
			Energy: 0.25, Valence: 0.30, Danceability: 0.25, Acousticness: 0.30,
			Speechiness: 0.35, Instrumentalness: 0.35, Liveness: 0.45, Tempo: 40,
		},
	},
	models.MoodChill: {
		Mood: models.MoodChill,
		Target: models.FeatureVector{
			Energy: 0.35, Valence: 0.50, Danceability: 0.55, Acousticness: 0.50,
			Speechiness: 0.08, Instrumentalness: 0.20, Liveness: 0.15, Tempo: 100,
		},
		Tolerance: models.FeatureVector{
			Energy: 0.25, Valence: 0.30, Danceability: 0.35, Acousticness: 0.50,
			Speechiness: 0.30, Instrumentalness: 0.55, Liveness: 0.40, Tempo: 40,
		},
	},
}

// ResolveMood maps a mood name to its target vector and tolerance band.
// Matching is case-insensitive; anything outside the canonical six fails
// with models.ErrUnknownMood. Pure and deterministic.
func ResolveMood(mood string) (models.MoodProfile, error) {
	parsed, err := models.ParseMood(mood)
	if err != nil {
		return models.MoodProfile{}, err
	}
	return moodProfiles[parsed], nil
}

// withinTolerance reports whether every dimension of fv deviates from the
// target by no more than the profile tolerance. Tempo is compared on its
// raw BPM scale.
func withinTolerance(fv models.FeatureVector, profile models.MoodProfile) bool {
	pairs := [][3]float64{
		{fv.Energy, profile.Target.Energy, profile.Tolerance.Energy},
		{fv.Valence, profile.Target.Valence, profile.Tolerance.Valence},
		{fv.Danceability, profile.Target.Danceability, profile.Tolerance.Danceability},
		{fv.Acousticness, profile.Target.Acousticness, profile.Tolerance.Acousticness},
		{fv.Speechiness, profile.Target.Speechiness, profile.Tolerance.Speechiness},
		{fv.Instrumentalness, profile.Target.Instrumentalness, profile.Tolerance.Instrumentalness},
		{fv.Liveness, profile.Target.Liveness, profile.Tolerance.Liveness},
		{fv.Tempo, profile.Target.Tempo, profile.Tolerance.Tempo},
	}
	for _, p := range pairs {
		diff := p[0] - p[1]
		if diff < 0 {
			diff = -diff
		}
		if diff > p[2] {
			return false
		}
	}
	return true
}
