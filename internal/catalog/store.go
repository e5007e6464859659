/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/models"
)

// Config tunes catalog lookup behavior. Values are fixed once loaded so
// lookups stay deterministic for the life of the process.
type Config struct {
	// FuzzyFloor is the minimum match score for a fuzzy lookup hit.
	FuzzyFloor float64
}

// DefaultConfig returns the stock lookup tuning.
func DefaultConfig() Config {
	return Config{FuzzyFloor: 0.72}
}

// Store is the read-only, indexed track catalog. It is built once at
// process start and never mutated afterwards, so concurrent reads need
// no locking.
type Store struct {
	cfg    Config
	logger zerolog.Logger

	tracks   []models.Track
	byKey    map[string]int
	byGenre  map[string][]int
	tempoMin float64
	tempoMax float64
	stats    Stats
}

// NewStore builds a Store from already-parsed tracks. Load is the
// normal entry point; this one serves embedders that source tracks
// from somewhere other than a CSV file.
func NewStore(tracks []models.Track, cfg Config, logger zerolog.Logger) (*Store, error) {
	if len(tracks) == 0 {
		return nil, models.ErrEmptyDataset
	}
	return newStore(tracks, cfg, logger), nil
}

func newStore(tracks []models.Track, cfg Config, logger zerolog.Logger) *Store {
	if cfg.FuzzyFloor <= 0 || cfg.FuzzyFloor > 1 {
		cfg.FuzzyFloor = DefaultConfig().FuzzyFloor
	}

	s := &Store{
		cfg:     cfg,
		logger:  logger,
		tracks:  tracks,
		byKey:   make(map[string]int, len(tracks)),
		byGenre: make(map[string][]int),
	}

	s.tempoMin = tracks[0].Features.Tempo
	s.tempoMax = tracks[0].Features.Tempo
	for i, t := range tracks {
		key := matchKey(t.Name, t.Artist)
		if _, exists := s.byKey[key]; !exists {
			s.byKey[key] = i
		}
		genre := strings.ToLower(t.Genre)
		s.byGenre[genre] = append(s.byGenre[genre], i)

		if t.Features.Tempo < s.tempoMin {
			s.tempoMin = t.Features.Tempo
		}
		if t.Features.Tempo > s.tempoMax {
			s.tempoMax = t.Features.Tempo
		}
	}

	s.stats = computeStats(tracks)
	return s
}

// All returns every track in catalog order. Callers must treat the
// returned slice as read-only.
func (s *Store) All() []models.Track {
	return s.tracks
}

// Len reports the catalog size.
func (s *Store) Len() int {
	return len(s.tracks)
}

// TempoRange returns the observed catalog tempo bounds used for rescaling.
func (s *Store) TempoRange() (min, max float64) {
	return s.tempoMin, s.tempoMax
}

// GenreKnown reports whether the catalog contains the genre.
func (s *Store) GenreKnown(genre string) bool {
	_, ok := s.byGenre[strings.ToLower(strings.TrimSpace(genre))]
	return ok
}

// Genres returns the distinct genres present in the catalog.
func (s *Store) Genres() []string {
	out := make([]string, 0, len(s.byGenre))
	for genre := range s.byGenre {
		out = append(out, genre)
	}
	return out
}

// Filter returns tracks matching the optional genre (case-insensitive
// exact) and minimum popularity, in catalog order. An empty genre matches
// everything. Requesting a genre the catalog has never seen fails with
// models.ErrUnknownGenre.
func (s *Store) Filter(genre string, minPopularity int) ([]models.Track, error) {
	if genre == "" {
		return s.filterIndices(nil, minPopularity), nil
	}

	indices, ok := s.byGenre[strings.ToLower(strings.TrimSpace(genre))]
	if !ok {
		return nil, models.ErrUnknownGenre
	}
	return s.filterIndices(indices, minPopularity), nil
}

// FilterGenres returns the union of tracks across the requested genres,
// in catalog order, deduplicated. All requested genres must exist.
func (s *Store) FilterGenres(genres []string, minPopularity int) ([]models.Track, error) {
	seen := map[int]struct{}{}
	var indices []int
	for _, genre := range genres {
		matched, ok := s.byGenre[strings.ToLower(strings.TrimSpace(genre))]
		if !ok {
			return nil, models.ErrUnknownGenre
		}
		for _, idx := range matched {
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			indices = append(indices, idx)
		}
	}

	// Restore catalog order across the union.
	sort.Ints(indices)
	return s.filterIndices(indices, minPopularity), nil
}

func (s *Store) filterIndices(indices []int, minPopularity int) []models.Track {
	if indices == nil {
		indices = make([]int, len(s.tracks))
		for i := range s.tracks {
			indices[i] = i
		}
	}
	out := make([]models.Track, 0, len(indices))
	for _, idx := range indices {
		if s.tracks[idx].Popularity >= minPopularity {
			out = append(out, s.tracks[idx])
		}
	}
	return out
}

// LookupByNameArtist finds a track by name and optional artist. An exact
// normalized match wins; otherwise the best fuzzy match at or above the
// configured floor is used. Misses fail with TrackNotFoundError carrying
// the attempted query.
func (s *Store) LookupByNameArtist(name, artist string) (models.Track, error) {
	normName := normalizeMatchText(name)
	normArtist := normalizeMatchText(artist)

	if normArtist != "" {
		if idx, ok := s.byKey[normName+"|"+normArtist]; ok {
			return s.tracks[idx], nil
		}
	}

	best := -1
	bestScore := 0.0
	for i, t := range s.tracks {
		score := matchScore(normName, normalizeMatchText(t.Name))
		if normArtist != "" {
			artistScore := matchScore(normArtist, normalizeMatchText(t.Artist))
			score = (score + artistScore) / 2
		}
		if score < s.cfg.FuzzyFloor {
			continue
		}
		if score > bestScore ||
			(score == bestScore && best >= 0 && betterTie(t, s.tracks[best])) {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return models.Track{}, &models.TrackNotFoundError{Name: name, Artist: artist}
	}

	if bestScore < 1 {
		s.logger.Debug().
			Str("query", name).
			Str("matched", s.tracks[best].Name).
			Float64("score", bestScore).
			Msg("fuzzy catalog lookup")
	}
	return s.tracks[best], nil
}

// betterTie prefers the more popular track, then the lower catalog id.
func betterTie(a, b models.Track) bool {
	if a.Popularity != b.Popularity {
		return a.Popularity > b.Popularity
	}
	return a.ID < b.ID
}
