/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/curation"
	"github.com/friendsincode/bragi_curation/internal/models"
)

// Curate flags
var (
	curateMood            string
	curateSize            int
	curateGenre           string
	curateMinPopularity   int
	curateDurationMinutes int
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Build a one-shot mood playlist",
	Long: `Loads the catalog, assembles a mood playlist, and prints it to stdout.

Examples:
  bragicuration curate --mood happy --size 20
  bragicuration curate --mood chill --size 15 --genre r&b --min-popularity 40
  bragicuration curate --mood party --size 30 --duration-minutes 60`,
	RunE: runCurate,
}

func init() {
	rootCmd.AddCommand(curateCmd)

	curateCmd.Flags().StringVar(&curateMood, "mood", "", "Target mood (required): happy, sad, energetic, calm, party, chill")
	curateCmd.Flags().IntVar(&curateSize, "size", 20, "Maximum number of tracks")
	curateCmd.Flags().StringVar(&curateGenre, "genre", "", "Restrict to one genre")
	curateCmd.Flags().IntVar(&curateMinPopularity, "min-popularity", 0, "Minimum track popularity (0-100)")
	curateCmd.Flags().IntVar(&curateDurationMinutes, "duration-minutes", 0, "Target playlist duration in minutes (0 disables)")
	_ = curateCmd.MarkFlagRequired("mood")
}

func runCurate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	mood, err := models.ParseMood(curateMood)
	if err != nil {
		return err
	}
	if curateSize <= 0 {
		return fmt.Errorf("--size must be positive")
	}

	tuning, err := curation.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}

	storeCfg := catalog.DefaultConfig()
	storeCfg.FuzzyFloor = tuning.FuzzyFloor
	store, err := catalog.Load(cfg.CatalogPath, storeCfg, logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	assembler := curation.NewAssembler(store, tuning, logger)

	started := time.Now()
	playlist, err := assembler.MoodPlaylist(context.Background(), models.Query{
		Mood:             mood,
		Genre:            curateGenre,
		Size:             curateSize,
		MinPopularity:    curateMinPopularity,
		TargetMinutes:    curateDurationMinutes,
		ToleranceMinutes: curation.DefaultDurationToleranceMinutes,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTRACK\tARTIST\tGENRE\tPOP\tDURATION")
	for i, t := range playlist.Tracks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			i+1, t.Name, t.Artist, t.Genre, t.Popularity,
			(time.Duration(t.DurationMS) * time.Millisecond).Round(time.Second))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total := (time.Duration(playlist.TotalDurationMS) * time.Millisecond).Round(time.Second)
	fmt.Printf("\n%d tracks, %s total, assembled in %s\n", len(playlist.Tracks), total, elapsed.Round(time.Millisecond))
	return nil
}
