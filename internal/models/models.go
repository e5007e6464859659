/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "strings"

// Mood enumerates the canonical mood names.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodEnergetic Mood = "energetic"
	MoodCalm      Mood = "calm"
	MoodParty     Mood = "party"
	MoodChill     Mood = "chill"
)

// Moods lists every canonical mood in declaration order.
var Moods = []Mood{MoodHappy, MoodSad, MoodEnergetic, MoodCalm, MoodParty, MoodChill}

// ParseMood resolves a mood name case-insensitively.
func ParseMood(s string) (Mood, error) {
	for _, m := range Moods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", ErrUnknownMood
}

// DiversityLevel controls genre spread and near-duplicate suppression.
type DiversityLevel string

const (
	DiversityLow    DiversityLevel = "low"
	DiversityMedium DiversityLevel = "medium"
	DiversityHigh   DiversityLevel = "high"
)

// ParseDiversityLevel resolves a diversity level case-insensitively.
// An empty string defaults to medium.
func ParseDiversityLevel(s string) (DiversityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DiversityMedium, nil
	case string(DiversityLow):
		return DiversityLow, nil
	case string(DiversityMedium):
		return DiversityMedium, nil
	case string(DiversityHigh):
		return DiversityHigh, nil
	}
	return "", ErrUnknownDiversity
}

// FeatureVector holds the audio descriptors of a track. The seven
// unit-interval dimensions are normalized to [0,1] at load time; tempo
// keeps its BPM scale and is rescaled only inside distance computations.
type FeatureVector struct {
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Speechiness      float64 `json:"speechiness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Tempo            float64 `json:"tempo"`
}

// FeatureNames lists the vector dimensions in canonical order.
var FeatureNames = []string{
	"energy", "valence", "danceability", "acousticness",
	"speechiness", "instrumentalness", "liveness", "tempo",
}

// Dims returns the vector as a slice in canonical order, with tempo
// min-max rescaled into [0,1] using the supplied catalog bounds. A
// degenerate tempo range collapses the dimension to 0 so it cannot
// dominate the comparison.
func (f FeatureVector) Dims(tempoMin, tempoMax float64) []float64 {
	tempo := 0.0
	if tempoMax > tempoMin {
		tempo = (f.Tempo - tempoMin) / (tempoMax - tempoMin)
	}
	return []float64{
		f.Energy, f.Valence, f.Danceability, f.Acousticness,
		f.Speechiness, f.Instrumentalness, f.Liveness, tempo,
	}
}

// Track is an immutable catalog entry. ID is the stable load index.
type Track struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Artist     string        `json:"artist"`
	Album      string        `json:"album,omitempty"`
	Genre      string        `json:"genre"`
	Subgenre   string        `json:"subgenre,omitempty"`
	Popularity int           `json:"popularity"`
	DurationMS int           `json:"duration_ms"`
	Features   FeatureVector `json:"features"`
}

// ScoredTrack pairs a track with its similarity score.
type ScoredTrack struct {
	Track Track   `json:"track"`
	Score float64 `json:"score"`
}

// PlaylistKind names the request type that produced a playlist.
type PlaylistKind string

const (
	PlaylistMood  PlaylistKind = "mood"
	PlaylistGenre PlaylistKind = "genre"
)

// Playlist is the assembled result of a curation call.
type Playlist struct {
	ID              string       `json:"id"`
	Kind            PlaylistKind `json:"kind"`
	Tracks          []Track      `json:"tracks"`
	TotalDurationMS int64        `json:"total_duration_ms"`
}

// Query carries the parameters of a single curation call. It is never
// shared across requests and has no lifecycle beyond one call.
type Query struct {
	Mood             Mood
	Genre            string
	Genres           []string
	SeedName         string
	SeedArtist       string
	Size             int
	Count            int
	Diversity        DiversityLevel
	MinPopularity    int
	TargetMinutes    int
	ToleranceMinutes int
}

// MoodProfile maps a mood to a target vector and per-dimension tolerance.
type MoodProfile struct {
	Mood      Mood
	Target    FeatureVector
	Tolerance FeatureVector
}
