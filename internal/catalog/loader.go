/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/models"
)

// Catalog column names, matching the upstream song export format.
const (
	colName       = "track_name"
	colArtist     = "track_artist"
	colAlbum      = "track_album_name"
	colGenre      = "playlist_genre"
	colSubgenre   = "playlist_subgenre"
	colPopularity = "track_popularity"
	colDurationMS = "duration_ms"
)

var featureColumns = []string{
	"energy", "valence", "danceability", "acousticness",
	"speechiness", "instrumentalness", "liveness", "tempo",
}

// Load reads the catalog CSV at path and builds an immutable Store.
// Rows with missing or non-numeric required fields are dropped, never
// partially scored. Returns models.ErrEmptyDataset when no row survives.
func Load(path string, cfg Config, logger zerolog.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	store, err := LoadReader(f, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("tracks", len(store.tracks)).
		Str("path", path).
		Msg("catalog loaded")
	return store, nil
}

// LoadReader parses catalog rows from r. Split out from Load for tests.
func LoadReader(r io.Reader, cfg Config, logger zerolog.Logger) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := map[string]int{}
	for idx, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, required := range []string{colName, colArtist, colGenre, colPopularity, colDurationMS} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog header missing column %q", required)
		}
	}
	for _, required := range featureColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog header missing column %q", required)
		}
	}

	var tracks []models.Track
	dropped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, skip like any other invalid row.
			dropped++
			continue
		}

		track, ok := parseRow(record, cols)
		if !ok {
			dropped++
			logger.Debug().Int("line", line).Msg("dropping catalog row with missing or invalid fields")
			continue
		}
		track.ID = len(tracks)
		tracks = append(tracks, track)
	}

	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("catalog rows dropped during load")
	}
	if len(tracks) == 0 {
		return nil, models.ErrEmptyDataset
	}

	return newStore(tracks, cfg, logger), nil
}

func parseRow(record []string, cols map[string]int) (models.Track, bool) {
	field := func(name string) (string, bool) {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	name, ok := field(colName)
	if !ok || name == "" {
		return models.Track{}, false
	}
	artist, ok := field(colArtist)
	if !ok || artist == "" {
		return models.Track{}, false
	}
	genre, ok := field(colGenre)
	if !ok || genre == "" {
		return models.Track{}, false
	}

	popRaw, ok := field(colPopularity)
	if !ok {
		return models.Track{}, false
	}
	popularity, err := strconv.Atoi(popRaw)
	if err != nil || popularity < 0 || popularity > 100 {
		return models.Track{}, false
	}

	durRaw, ok := field(colDurationMS)
	if !ok {
		return models.Track{}, false
	}
	durationMS, err := strconv.Atoi(durRaw)
	if err != nil || durationMS <= 0 {
		return models.Track{}, false
	}

	var features [8]float64
	for i, col := range featureColumns {
		raw, ok := field(col)
		if !ok || raw == "" {
			return models.Track{}, false
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Track{}, false
		}
		features[i] = val
	}

	fv := models.FeatureVector{
		Energy:           clampUnit(features[0]),
		Valence:          clampUnit(features[1]),
		Danceability:     clampUnit(features[2]),
		Acousticness:     clampUnit(features[3]),
		Speechiness:      clampUnit(features[4]),
		Instrumentalness: clampUnit(features[5]),
		Liveness:         clampUnit(features[6]),
		Tempo:            features[7],
	}
	if fv.Tempo <= 0 {
		return models.Track{}, false
	}

	album, _ := field(colAlbum)
	subgenre, _ := field(colSubgenre)

	return models.Track{
		Name:       name,
		Artist:     artist,
		Album:      album,
		Genre:      genre,
		Subgenre:   subgenre,
		Popularity: popularity,
		DurationMS: durationMS,
		Features:   fv,
	}, true
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
