package curation

import (
	"testing"

	"github.com/friendsincode/bragi_curation/internal/models"
)

func durationPool(durationsMS ...int) []models.ScoredTrack {
	out := make([]models.ScoredTrack, 0, len(durationsMS))
	for i, d := range durationsMS {
		out = append(out, models.ScoredTrack{
			Track: models.Track{ID: i, DurationMS: d},
			Score: 1 - float64(i)*0.01,
		})
	}
	return out
}

func TestFitDuration(t *testing.T) {
	t.Run("no target returns everything", func(t *testing.T) {
		got := FitDuration(durationPool(200000, 180000), 0, 5)
		if len(got) != 2 {
			t.Fatalf("expected all tracks, got %d", len(got))
		}
	})

	t.Run("accumulates within budget", func(t *testing.T) {
		// Target 10min + 2min tolerance = 12min budget. Four 3min tracks fit.
		got := FitDuration(durationPool(180000, 180000, 180000, 180000, 180000), 10, 2)
		if len(got) != 4 {
			t.Fatalf("expected 4 tracks in budget, got %d", len(got))
		}
	})

	t.Run("skips overshooting candidate but keeps scanning", func(t *testing.T) {
		// Budget 10min: the 8min opener fits, the 5min second would
		// overshoot, the 2min third still fits.
		got := FitDuration(durationPool(480000, 300000, 120000), 5, 5)
		if len(got) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(got))
		}
		if got[0].ID != 0 || got[1].ID != 2 {
			t.Fatalf("picked wrong tracks: %v %v", got[0].ID, got[1].ID)
		}
	})

	t.Run("rank order preserved", func(t *testing.T) {
		got := FitDuration(durationPool(120000, 120000, 120000), 30, 5)
		for i := 1; i < len(got); i++ {
			if got[i].ID < got[i-1].ID {
				t.Fatal("rank order not preserved")
			}
		}
	})

	t.Run("zero tolerance uses default", func(t *testing.T) {
		// Target 3min with default 5min tolerance admits two 4min tracks.
		got := FitDuration(durationPool(240000, 240000), 3, 0)
		if len(got) != 2 {
			t.Fatalf("expected default tolerance to apply, got %d tracks", len(got))
		}
	})
}
