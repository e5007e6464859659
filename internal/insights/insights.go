/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package insights derives catalog-level structure that the per-request
// curation operations do not compute, currently k-means clusters over
// the audio feature space.
package insights

import (
	"fmt"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/curation"
	"github.com/friendsincode/bragi_curation/internal/models"
)

// Config holds clustering parameters.
type Config struct {
	NumClusters    int
	MinClusterSize int
}

// DefaultConfig returns the recommended clustering configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    4,
		MinClusterSize: 5,
	}
}

// ClusterSummary describes one region of the catalog's feature space.
type ClusterSummary struct {
	ID            int                `json:"id"`
	Size          int                `json:"size"`
	DominantGenre string             `json:"dominant_genre"`
	Centroid      map[string]float64 `json:"centroid"`
	Character     map[string]string  `json:"character"`
	SampleTracks  []models.Track     `json:"sample_tracks"`
}

// trackObservation adapts a track to the clusters.Observation interface.
type trackObservation struct {
	track  models.Track
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

const sampleTracksPerCluster = 3

// Cluster partitions the catalog into feature-space clusters and
// summarizes each one. Clusters smaller than cfg.MinClusterSize are
// dropped from the result rather than reported as noise.
func Cluster(store *catalog.Store, cfg Config, logger zerolog.Logger) ([]ClusterSummary, error) {
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}

	tracks := store.All()
	if len(tracks) < cfg.NumClusters {
		return nil, fmt.Errorf("catalog has %d tracks, need at least %d to cluster", len(tracks), cfg.NumClusters)
	}

	tempoMin, tempoMax := store.TempoRange()
	observations := make(clusters.Observations, 0, len(tracks))
	for _, t := range tracks {
		observations = append(observations, trackObservation{
			track:  t,
			coords: clusters.Coordinates(t.Features.Dims(tempoMin, tempoMax)),
		})
	}

	km := kmeans.New()
	result, err := km.Partition(observations, cfg.NumClusters)
	if err != nil {
		return nil, fmt.Errorf("partition catalog: %w", err)
	}

	summaries := make([]ClusterSummary, 0, len(result))
	for i, cluster := range result {
		members := make([]models.Track, 0, len(cluster.Observations))
		for _, obs := range cluster.Observations {
			if to, ok := obs.(trackObservation); ok {
				members = append(members, to.track)
			}
		}
		if len(members) < cfg.MinClusterSize {
			logger.Debug().
				Int("cluster", i).
				Int("size", len(members)).
				Msg("dropping undersized cluster")
			continue
		}

		centroid := make(map[string]float64, len(models.FeatureNames))
		for j, name := range models.FeatureNames {
			centroid[name] = cluster.Center[j]
		}

		summaries = append(summaries, ClusterSummary{
			ID:            len(summaries),
			Size:          len(members),
			DominantGenre: dominantGenre(members),
			Centroid:      centroid,
			Character:     curation.FeatureBands(centroidVector(cluster.Center, tempoMin, tempoMax)),
			SampleTracks:  sampleTracks(members),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Size != summaries[j].Size {
			return summaries[i].Size > summaries[j].Size
		}
		return summaries[i].DominantGenre < summaries[j].DominantGenre
	})
	for i := range summaries {
		summaries[i].ID = i
	}

	logger.Info().
		Int("clusters", len(summaries)).
		Int("tracks", len(tracks)).
		Msg("catalog clustering complete")

	return summaries, nil
}

// centroidVector maps a cluster center back to feature-vector space,
// undoing the tempo rescaling applied before clustering.
func centroidVector(center clusters.Coordinates, tempoMin, tempoMax float64) models.FeatureVector {
	fv := models.FeatureVector{
		Energy:           center[0],
		Valence:          center[1],
		Danceability:     center[2],
		Acousticness:     center[3],
		Speechiness:      center[4],
		Instrumentalness: center[5],
		Liveness:         center[6],
	}
	fv.Tempo = tempoMin + center[7]*(tempoMax-tempoMin)
	return fv
}

func dominantGenre(members []models.Track) string {
	counts := make(map[string]int)
	for _, t := range members {
		counts[t.Genre]++
	}
	best, bestCount := "", 0
	for genre, count := range counts {
		if count > bestCount || (count == bestCount && genre < best) {
			best, bestCount = genre, count
		}
	}
	return best
}

// sampleTracks returns the most popular members as representatives.
func sampleTracks(members []models.Track) []models.Track {
	sorted := make([]models.Track, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Popularity != sorted[j].Popularity {
			return sorted[i].Popularity > sorted[j].Popularity
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > sampleTracksPerCluster {
		sorted = sorted[:sampleTracksPerCluster]
	}
	return sorted
}
