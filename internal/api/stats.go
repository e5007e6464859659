/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"

	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/insights"
	"github.com/friendsincode/bragi_curation/internal/telemetry"
)

type statsResponse struct {
	Catalog  catalog.Stats             `json:"catalog"`
	Clusters []insights.ClusterSummary `json:"clusters,omitempty"`
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		Catalog:  a.store.Stats(),
		Clusters: a.clusters,
	}
	telemetry.ObserveCuration("get_dataset_stats", "ok", resp.Catalog.TotalTracks)
	writeJSON(w, http.StatusOK, resp)
}
