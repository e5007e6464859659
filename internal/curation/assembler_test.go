package curation

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/models"
)

func testAssembler(t *testing.T) *Assembler {
	t.Helper()

	happy := moodProfiles[models.MoodHappy].Target
	tracks := []models.Track{
		{ID: 0, Name: "Sunshine", Artist: "Aurora", Genre: "pop", Popularity: 90, DurationMS: 200000, Features: happy},
		{ID: 1, Name: "Golden Hour", Artist: "Kacey", Genre: "pop", Popularity: 70, DurationMS: 210000,
			Features: models.FeatureVector{Energy: 0.65, Valence: 0.80, Danceability: 0.60, Acousticness: 0.30, Speechiness: 0.08, Instrumentalness: 0.02, Liveness: 0.15, Tempo: 120}},
		{ID: 2, Name: "Midnight Rain", Artist: "Vale", Genre: "rap", Popularity: 80, DurationMS: 190000,
			Features: models.FeatureVector{Energy: 0.55, Valence: 0.40, Danceability: 0.85, Acousticness: 0.10, Speechiness: 0.30, Instrumentalness: 0.01, Liveness: 0.12, Tempo: 140}},
		{ID: 3, Name: "Dust And Bone", Artist: "Hollow", Genre: "rock", Popularity: 30, DurationMS: 250000,
			Features: models.FeatureVector{Energy: 0.10, Valence: 0.05, Danceability: 0.20, Acousticness: 0.90, Speechiness: 0.04, Instrumentalness: 0.80, Liveness: 0.10, Tempo: 70}},
		{ID: 4, Name: "Neon Runner", Artist: "Vale", Genre: "rap", Popularity: 60, DurationMS: 185000,
			Features: models.FeatureVector{Energy: 0.88, Valence: 0.70, Danceability: 0.75, Acousticness: 0.05, Speechiness: 0.20, Instrumentalness: 0.02, Liveness: 0.30, Tempo: 128}},
	}

	store, err := catalog.NewStore(tracks, catalog.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewAssembler(store, DefaultTuning(), zerolog.Nop())
}

func TestMoodPlaylist(t *testing.T) {
	assembler := testAssembler(t)
	ctx := context.Background()

	t.Run("caps at size", func(t *testing.T) {
		playlist, err := assembler.MoodPlaylist(ctx, models.Query{Mood: models.MoodHappy, Size: 2})
		if err != nil {
			t.Fatalf("MoodPlaylist: %v", err)
		}
		if len(playlist.Tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(playlist.Tracks))
		}
		if playlist.Kind != models.PlaylistMood {
			t.Fatalf("kind = %q, want mood", playlist.Kind)
		}
	})

	t.Run("genre filter respected", func(t *testing.T) {
		playlist, err := assembler.MoodPlaylist(ctx, models.Query{Mood: models.MoodHappy, Size: 10, Genre: "pop"})
		if err != nil {
			t.Fatalf("MoodPlaylist: %v", err)
		}
		for _, track := range playlist.Tracks {
			if track.Genre != "pop" {
				t.Fatalf("track %q leaked genre %q", track.Name, track.Genre)
			}
		}
	})

	t.Run("min popularity respected", func(t *testing.T) {
		playlist, err := assembler.MoodPlaylist(ctx, models.Query{Mood: models.MoodHappy, Size: 10, MinPopularity: 75})
		if err != nil {
			t.Fatalf("MoodPlaylist: %v", err)
		}
		for _, track := range playlist.Tracks {
			if track.Popularity < 75 {
				t.Fatalf("track %q has popularity %d below the floor", track.Name, track.Popularity)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		q := models.Query{Mood: models.MoodHappy, Size: 5}
		first, err := assembler.MoodPlaylist(ctx, q)
		if err != nil {
			t.Fatalf("MoodPlaylist: %v", err)
		}
		second, err := assembler.MoodPlaylist(ctx, q)
		if err != nil {
			t.Fatalf("MoodPlaylist: %v", err)
		}
		if len(first.Tracks) != len(second.Tracks) {
			t.Fatal("repeat call returned different sizes")
		}
		for i := range first.Tracks {
			if first.Tracks[i].ID != second.Tracks[i].ID {
				t.Fatalf("repeat call differs at position %d", i)
			}
		}
	})

	t.Run("duration target", func(t *testing.T) {
		playlist, err := assembler.MoodPlaylist(ctx, models.Query{
			Mood:             models.MoodHappy,
			Size:             10,
			TargetMinutes:    7,
			ToleranceMinutes: 1,
		})
		if err != nil {
			t.Fatalf("MoodPlaylist: %v", err)
		}
		if playlist.TotalDurationMS > 8*60*1000 {
			t.Fatalf("total duration %dms exceeds 8min budget", playlist.TotalDurationMS)
		}
	})

	t.Run("unknown mood", func(t *testing.T) {
		_, err := assembler.MoodPlaylist(ctx, models.Query{Mood: "furious", Size: 5})
		if !errors.Is(err, models.ErrUnknownMood) {
			t.Fatalf("expected ErrUnknownMood, got %v", err)
		}
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := assembler.MoodPlaylist(ctx, models.Query{Mood: models.MoodHappy, Size: 5, Genre: "polka"})
		if !errors.Is(err, models.ErrUnknownGenre) {
			t.Fatalf("expected ErrUnknownGenre, got %v", err)
		}
	})
}

func TestGenrePlaylist(t *testing.T) {
	assembler := testAssembler(t)
	ctx := context.Background()

	t.Run("popularity ordered", func(t *testing.T) {
		playlist, err := assembler.GenrePlaylist(ctx, models.Query{
			Genres:    []string{"pop", "rap"},
			Size:      4,
			Diversity: models.DiversityLow,
		})
		if err != nil {
			t.Fatalf("GenrePlaylist: %v", err)
		}
		if playlist.Kind != models.PlaylistGenre {
			t.Fatalf("kind = %q, want genre", playlist.Kind)
		}
		for i := 1; i < len(playlist.Tracks); i++ {
			if playlist.Tracks[i].Popularity > playlist.Tracks[i-1].Popularity {
				t.Fatal("tracks not in descending popularity order")
			}
		}
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := assembler.GenrePlaylist(ctx, models.Query{
			Genres:    []string{"polka"},
			Size:      4,
			Diversity: models.DiversityLow,
		})
		if !errors.Is(err, models.ErrUnknownGenre) {
			t.Fatalf("expected ErrUnknownGenre, got %v", err)
		}
	})

	t.Run("filters drain the pool", func(t *testing.T) {
		_, err := assembler.GenrePlaylist(ctx, models.Query{
			Genres:        []string{"rock"},
			Size:          4,
			Diversity:     models.DiversityLow,
			MinPopularity: 99,
		})
		if !errors.Is(err, models.ErrInsufficientCandidates) {
			t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
		}
	})
}

func TestSimilarSongs(t *testing.T) {
	assembler := testAssembler(t)
	ctx := context.Background()

	t.Run("excludes seed", func(t *testing.T) {
		seed, results, err := assembler.SimilarSongs(ctx, models.Query{
			SeedName:   "Sunshine",
			SeedArtist: "Aurora",
			Count:      10,
		})
		if err != nil {
			t.Fatalf("SimilarSongs: %v", err)
		}
		if seed.ID != 0 {
			t.Fatalf("resolved wrong seed: %+v", seed)
		}
		if len(results) != 4 {
			t.Fatalf("expected 4 results, got %d", len(results))
		}
		for _, r := range results {
			if r.Track.ID == seed.ID {
				t.Fatal("seed leaked into its own results")
			}
		}
		for i := 1; i < len(results); i++ {
			if results[i].Score > results[i-1].Score {
				t.Fatal("results not in descending score order")
			}
		}
	})

	t.Run("caps at count", func(t *testing.T) {
		_, results, err := assembler.SimilarSongs(ctx, models.Query{
			SeedName: "Sunshine",
			Count:    2,
		})
		if err != nil {
			t.Fatalf("SimilarSongs: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
	})

	t.Run("seed not found", func(t *testing.T) {
		_, _, err := assembler.SimilarSongs(ctx, models.Query{
			SeedName:   "Nonexistent",
			SeedArtist: "Nobody",
			Count:      5,
		})
		var notFound *models.TrackNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected TrackNotFoundError, got %v", err)
		}
	})
}

func TestAnalyzeSong(t *testing.T) {
	assembler := testAssembler(t)

	analysis, err := assembler.AnalyzeSong(context.Background(), "Dust And Bone", "Hollow")
	if err != nil {
		t.Fatalf("AnalyzeSong: %v", err)
	}
	if analysis.Track.ID != 3 {
		t.Fatalf("analyzed wrong track: %+v", analysis.Track)
	}

	bands := analysis.Bands
	if bands["energy"] != "low energy" {
		t.Fatalf("energy band = %q, want low energy", bands["energy"])
	}
	if bands["valence"] != "melancholic mood" {
		t.Fatalf("valence band = %q, want melancholic mood", bands["valence"])
	}
	if bands["instrumentalness"] != "mostly instrumental" {
		t.Fatalf("instrumentalness band = %q", bands["instrumentalness"])
	}
	if bands["tempo"] != "slow tempo" {
		t.Fatalf("tempo band = %q, want slow tempo", bands["tempo"])
	}
}
