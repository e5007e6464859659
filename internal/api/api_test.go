package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/auth"
	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/curation"
	"github.com/friendsincode/bragi_curation/internal/models"
)

var testSecret = []byte("test-secret")

func testRouter(t *testing.T) chi.Router {
	t.Helper()

	tracks := []models.Track{
		{ID: 0, Name: "Sunshine", Artist: "Aurora", Genre: "pop", Popularity: 90, DurationMS: 200000,
			Features: models.FeatureVector{Energy: 0.70, Valence: 0.85, Danceability: 0.65, Acousticness: 0.25, Speechiness: 0.10, Instrumentalness: 0.05, Liveness: 0.20, Tempo: 118}},
		{ID: 1, Name: "Golden Hour", Artist: "Kacey", Genre: "pop", Popularity: 70, DurationMS: 210000,
			Features: models.FeatureVector{Energy: 0.65, Valence: 0.80, Danceability: 0.60, Acousticness: 0.30, Speechiness: 0.08, Instrumentalness: 0.02, Liveness: 0.15, Tempo: 120}},
		{ID: 2, Name: "Midnight Rain", Artist: "Vale", Genre: "rap", Popularity: 80, DurationMS: 190000,
			Features: models.FeatureVector{Energy: 0.55, Valence: 0.40, Danceability: 0.85, Acousticness: 0.10, Speechiness: 0.30, Instrumentalness: 0.01, Liveness: 0.12, Tempo: 140}},
		{ID: 3, Name: "Dust And Bone", Artist: "Hollow", Genre: "rock", Popularity: 30, DurationMS: 250000,
			Features: models.FeatureVector{Energy: 0.10, Valence: 0.05, Danceability: 0.20, Acousticness: 0.90, Speechiness: 0.04, Instrumentalness: 0.80, Liveness: 0.10, Tempo: 70}},
	}

	store, err := catalog.NewStore(tracks, catalog.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	assembler := curation.NewAssembler(store, curation.DefaultTuning(), zerolog.Nop())

	router := chi.NewRouter()
	New(assembler, store, nil, testSecret, nil, zerolog.Nop()).Routes(router)
	return router
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.Issue(testSecret, auth.Claims{UserID: "tester", Roles: []string{"curator"}}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return "Bearer " + token
}

func doRequest(t *testing.T, router chi.Router, method, target, body string, authorize bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authorize {
		req.Header.Set("Authorization", bearerToken(t))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := testRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/health", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStats_Public(t *testing.T) {
	router := testRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/stats", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.Catalog.TotalTracks != 4 {
		t.Fatalf("TotalTracks = %d, want 4", resp.Catalog.TotalTracks)
	}
}

func TestMoodPlaylist_RequiresAuth(t *testing.T) {
	router := testRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/mood",
		`{"mood":"happy","size":2}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMoodPlaylist(t *testing.T) {
	router := testRouter(t)

	t.Run("happy path", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/mood",
			`{"mood":"happy","size":2}`, true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		var playlist models.Playlist
		if err := json.Unmarshal(rec.Body.Bytes(), &playlist); err != nil {
			t.Fatalf("decode playlist: %v", err)
		}
		if len(playlist.Tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(playlist.Tracks))
		}
		if playlist.Kind != models.PlaylistMood {
			t.Fatalf("kind = %q, want mood", playlist.Kind)
		}
		if playlist.ID == "" {
			t.Fatal("playlist id missing")
		}
	})

	t.Run("unknown mood", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/mood",
			`{"mood":"furious","size":2}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown genre", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/mood",
			`{"mood":"happy","size":2,"genre":"polka"}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/mood",
			`{"mood":"happy","size":0}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/mood",
			`{"mood":`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGenrePlaylist(t *testing.T) {
	router := testRouter(t)

	t.Run("happy path", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/genre",
			`{"genres":["pop","rap"],"size":3,"diversity":"medium"}`, true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		var playlist models.Playlist
		if err := json.Unmarshal(rec.Body.Bytes(), &playlist); err != nil {
			t.Fatalf("decode playlist: %v", err)
		}
		if playlist.Kind != models.PlaylistGenre {
			t.Fatalf("kind = %q, want genre", playlist.Kind)
		}
		for _, track := range playlist.Tracks {
			if track.Genre != "pop" && track.Genre != "rap" {
				t.Fatalf("track %q leaked genre %q", track.Name, track.Genre)
			}
		}
	})

	t.Run("diversity defaults to medium", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/genre",
			`{"genres":["pop"],"size":2}`, true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("empty genres", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/genre",
			`{"genres":[],"size":2}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown diversity", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/playlists/genre",
			`{"genres":["pop"],"size":2,"diversity":"extreme"}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSimilarSongs(t *testing.T) {
	router := testRouter(t)

	t.Run("happy path", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet,
			"/api/v1/songs/similar?song=Sunshine&artist=Aurora&count=2", "", true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		var resp similarSongsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Seed.ID != 0 {
			t.Fatalf("seed = %+v, want track 0", resp.Seed)
		}
		if len(resp.Results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(resp.Results))
		}
		for _, r := range resp.Results {
			if r.Track.ID == resp.Seed.ID {
				t.Fatal("seed leaked into results")
			}
		}
	})

	t.Run("seed not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet,
			"/api/v1/songs/similar?song=Nonexistent&artist=Nobody", "", true)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("missing song", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/songs/similar", "", true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad count", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet,
			"/api/v1/songs/similar?song=Sunshine&count=-1", "", true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSongAnalysis(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, http.MethodGet,
		"/api/v1/songs/analysis?song=Dust+And+Bone&artist=Hollow", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var analysis curation.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if analysis.Track.Name != "Dust And Bone" {
		t.Fatalf("analyzed wrong track: %+v", analysis.Track)
	}
	if analysis.Bands["energy"] != "low energy" {
		t.Fatalf("energy band = %q", analysis.Bands["energy"])
	}
}

func TestAPIKeyAuth(t *testing.T) {
	plaintext, digest, err := auth.GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}

	tracks := []models.Track{
		{ID: 0, Name: "Sunshine", Artist: "Aurora", Genre: "pop", Popularity: 90, DurationMS: 200000,
			Features: models.FeatureVector{Energy: 0.70, Valence: 0.85, Danceability: 0.65, Tempo: 118}},
		{ID: 1, Name: "Golden Hour", Artist: "Kacey", Genre: "pop", Popularity: 70, DurationMS: 210000,
			Features: models.FeatureVector{Energy: 0.65, Valence: 0.80, Danceability: 0.60, Tempo: 120}},
	}
	store, err := catalog.NewStore(tracks, catalog.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	assembler := curation.NewAssembler(store, curation.DefaultTuning(), zerolog.Nop())

	router := chi.NewRouter()
	New(assembler, store, nil, testSecret, []string{digest}, zerolog.Nop()).Routes(router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists/mood",
		strings.NewReader(`{"mood":"happy","size":1}`))
	req.Header.Set("X-API-Key", plaintext)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}
