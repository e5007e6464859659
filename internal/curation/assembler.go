/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/models"
	"github.com/friendsincode/bragi_curation/internal/telemetry"
)

const tracerName = "bragi-curation-engine"

// Assembler orchestrates the curation components per request kind. It
// holds no per-request state; every call recomputes its ranking against
// the immutable catalog, which keeps results reproducible and makes
// concurrent calls safe without locking.
type Assembler struct {
	store   *catalog.Store
	ranker  *Ranker
	sampler *DiversitySampler
	tuning  Tuning
	logger  zerolog.Logger
}

// NewAssembler wires the curation engine around a loaded catalog.
func NewAssembler(store *catalog.Store, tuning Tuning, logger zerolog.Logger) *Assembler {
	tempoMin, tempoMax := store.TempoRange()
	ranker := NewRanker(tempoMin, tempoMax)
	return &Assembler{
		store:   store,
		ranker:  ranker,
		sampler: NewDiversitySampler(tuning, ranker),
		tuning:  tuning,
		logger:  logger,
	}
}

// Ranker exposes the shared ranker, mainly for tests and the insights
// report.
func (a *Assembler) Ranker() *Ranker {
	return a.ranker
}

// MoodPlaylist builds a playlist for a canonical mood: filter the pool,
// resolve the mood profile, rank with tolerance-band restriction, then
// trim by duration target or requested size.
func (a *Assembler) MoodPlaylist(ctx context.Context, q models.Query) (models.Playlist, error) {
	_, span := telemetry.StartSpan(ctx, tracerName, "curation.mood_playlist")
	defer span.End()

	profile, err := ResolveMood(string(q.Mood))
	if err != nil {
		return models.Playlist{}, err
	}

	candidates, err := a.store.Filter(q.Genre, q.MinPopularity)
	if err != nil {
		return models.Playlist{}, err
	}

	ranked, err := a.ranker.RankMood(candidates, profile, q.Size)
	if err != nil {
		telemetry.RecordError(span, err)
		return models.Playlist{}, err
	}

	var tracks []models.Track
	if q.TargetMinutes > 0 {
		tracks = FitDuration(ranked, q.TargetMinutes, q.ToleranceMinutes)
		if len(tracks) > q.Size && q.Size > 0 {
			tracks = tracks[:q.Size]
		}
	} else {
		tracks = topTracks(ranked, q.Size)
	}

	playlist := newPlaylist(models.PlaylistMood, tracks)
	a.logger.Debug().
		Str("mood", string(q.Mood)).
		Int("requested", q.Size).
		Int("returned", len(tracks)).
		Msg("mood playlist assembled")
	return playlist, nil
}

// GenrePlaylist builds a playlist across one or more genres: pool by
// genre union, order by popularity, then apply diversity sampling.
func (a *Assembler) GenrePlaylist(ctx context.Context, q models.Query) (models.Playlist, error) {
	_, span := telemetry.StartSpan(ctx, tracerName, "curation.genre_playlist")
	defer span.End()

	candidates, err := a.store.FilterGenres(q.Genres, q.MinPopularity)
	if err != nil {
		return models.Playlist{}, err
	}
	if len(candidates) == 0 {
		return models.Playlist{}, models.ErrInsufficientCandidates
	}

	ranked := rankByPopularity(candidates)
	tracks := a.sampler.Sample(ranked, q.Size, q.Diversity)

	playlist := newPlaylist(models.PlaylistGenre, tracks)
	a.logger.Debug().
		Strs("genres", q.Genres).
		Str("diversity", string(q.Diversity)).
		Int("returned", len(tracks)).
		Msg("genre playlist assembled")
	return playlist, nil
}

// SimilarSongs ranks the whole catalog against a seed track's feature
// vector and returns the resolved seed alongside the ranked results.
// The seed itself never appears in its own result.
func (a *Assembler) SimilarSongs(ctx context.Context, q models.Query) (models.Track, []models.ScoredTrack, error) {
	_, span := telemetry.StartSpan(ctx, tracerName, "curation.similar_songs")
	defer span.End()

	seed, err := a.store.LookupByNameArtist(q.SeedName, q.SeedArtist)
	if err != nil {
		telemetry.RecordError(span, err)
		return models.Track{}, nil, err
	}

	pool := make([]models.Track, 0, a.store.Len()-1)
	for _, t := range a.store.All() {
		if t.ID == seed.ID {
			continue
		}
		pool = append(pool, t)
	}

	ranked := a.ranker.Rank(pool, seed.Features)
	if len(ranked) > q.Count && q.Count > 0 {
		ranked = ranked[:q.Count]
	}
	return seed, ranked, nil
}

// Analysis is the full feature breakdown of a single track.
type Analysis struct {
	Track models.Track      `json:"track"`
	Bands map[string]string `json:"bands"`
}

// AnalyzeSong looks up a track and interprets its feature vector. The
// banding lives here rather than in the API layer because it reuses the
// same thresholds the rest of the engine selects on.
func (a *Assembler) AnalyzeSong(ctx context.Context, name, artist string) (Analysis, error) {
	_, span := telemetry.StartSpan(ctx, tracerName, "curation.analyze_song")
	defer span.End()

	track, err := a.store.LookupByNameArtist(name, artist)
	if err != nil {
		telemetry.RecordError(span, err)
		return Analysis{}, err
	}
	return Analysis{Track: track, Bands: FeatureBands(track.Features)}, nil
}

func topTracks(ranked []models.ScoredTrack, size int) []models.Track {
	if size > 0 && len(ranked) > size {
		ranked = ranked[:size]
	}
	out := make([]models.Track, 0, len(ranked))
	for _, cand := range ranked {
		out = append(out, cand.Track)
	}
	return out
}

// rankByPopularity orders tracks by popularity descending with the id
// tie-break, reusing ScoredTrack so the sampler sees one candidate shape.
func rankByPopularity(tracks []models.Track) []models.ScoredTrack {
	scored := make([]models.ScoredTrack, 0, len(tracks))
	for _, t := range tracks {
		scored = append(scored, models.ScoredTrack{Track: t, Score: float64(t.Popularity)})
	}
	sortRanked(scored)
	return scored
}

func newPlaylist(kind models.PlaylistKind, tracks []models.Track) models.Playlist {
	var totalMS int64
	for _, t := range tracks {
		totalMS += int64(t.DurationMS)
	}
	return models.Playlist{
		ID:              uuid.NewString(),
		Kind:            kind,
		Tracks:          tracks,
		TotalDurationMS: totalMS,
	}
}
