/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/insights"
)

var statsWithClusters bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the catalog stats report",
	Long: `Loads the track catalog and prints aggregate statistics as JSON:
totals, genre histogram, per-feature summaries, and optionally k-means
cluster insights.

Examples:
  bragicuration stats
  bragicuration stats --clusters`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsWithClusters, "clusters", false, "Include k-means cluster summaries")
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	store, err := catalog.Load(cfg.CatalogPath, catalog.DefaultConfig(), logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	report := struct {
		Catalog  catalog.Stats             `json:"catalog"`
		Clusters []insights.ClusterSummary `json:"clusters,omitempty"`
	}{
		Catalog: store.Stats(),
	}

	if statsWithClusters {
		clusters, err := insights.Cluster(store, insights.DefaultConfig(), logger)
		if err != nil {
			return fmt.Errorf("cluster catalog: %w", err)
		}
		report.Clusters = clusters
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
