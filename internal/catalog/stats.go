/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import (
	"sort"

	"github.com/friendsincode/bragi_curation/internal/models"
)

// FeatureSummary aggregates one feature dimension across the catalog.
type FeatureSummary struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

// GenreCount is one genre histogram bucket.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats is the aggregate catalog report, computed once at load time.
type Stats struct {
	TotalTracks        int                       `json:"total_tracks"`
	UniqueArtists      int                       `json:"unique_artists"`
	UniqueAlbums       int                       `json:"unique_albums"`
	UniqueGenres       int                       `json:"unique_genres"`
	AvgPopularity      float64                   `json:"avg_popularity"`
	AvgDurationMinutes float64                   `json:"avg_duration_minutes"`
	Features           map[string]FeatureSummary `json:"features"`
	TopGenres          []GenreCount              `json:"top_genres"`
	TopSubgenres       []GenreCount              `json:"top_subgenres"`
}

// Stats returns the precomputed aggregate report.
func (s *Store) Stats() Stats {
	return s.stats
}

func computeStats(tracks []models.Track) Stats {
	artists := map[string]struct{}{}
	albums := map[string]struct{}{}
	genreCounts := map[string]int{}
	subgenreCounts := map[string]int{}

	var popSum, durSum float64
	sums := make([]float64, len(models.FeatureNames))
	mins := make([]float64, len(models.FeatureNames))
	maxs := make([]float64, len(models.FeatureNames))

	for i, t := range tracks {
		artists[normalizeMatchText(t.Artist)] = struct{}{}
		if t.Album != "" {
			albums[normalizeMatchText(t.Album)] = struct{}{}
		}
		genreCounts[t.Genre]++
		if t.Subgenre != "" {
			subgenreCounts[t.Subgenre]++
		}
		popSum += float64(t.Popularity)
		durSum += float64(t.DurationMS)

		dims := []float64{
			t.Features.Energy, t.Features.Valence, t.Features.Danceability,
			t.Features.Acousticness, t.Features.Speechiness,
			t.Features.Instrumentalness, t.Features.Liveness, t.Features.Tempo,
		}
		for d, v := range dims {
			sums[d] += v
			if i == 0 || v < mins[d] {
				mins[d] = v
			}
			if i == 0 || v > maxs[d] {
				maxs[d] = v
			}
		}
	}

	n := float64(len(tracks))
	features := make(map[string]FeatureSummary, len(models.FeatureNames))
	for d, name := range models.FeatureNames {
		features[name] = FeatureSummary{
			Min:  mins[d],
			Mean: sums[d] / n,
			Max:  maxs[d],
		}
	}

	return Stats{
		TotalTracks:        len(tracks),
		UniqueArtists:      len(artists),
		UniqueAlbums:       len(albums),
		UniqueGenres:       len(genreCounts),
		AvgPopularity:      popSum / n,
		AvgDurationMinutes: durSum / n / 1000 / 60,
		Features:           features,
		TopGenres:          topCounts(genreCounts, 10),
		TopSubgenres:       topCounts(subgenreCounts, 5),
	}
}

func topCounts(counts map[string]int, limit int) []GenreCount {
	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
