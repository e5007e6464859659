/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package curation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/bragi_curation/internal/models"
)

// Tuning collects the curation thresholds that operators may adjust.
// Values are loaded once at startup and never change afterwards, so every
// call with the same inputs stays deterministic.
type Tuning struct {
	// FuzzyFloor is the minimum score for fuzzy catalog lookups.
	FuzzyFloor float64 `yaml:"fuzzy_floor"`

	// NearDuplicate holds the per-diversity-level cosine threshold above
	// which two tracks count as near-duplicates.
	NearDuplicate map[models.DiversityLevel]float64 `yaml:"near_duplicate"`

	// GenreCap holds the per-diversity-level maximum share of the output
	// that a single genre may occupy. Zero means no cap.
	GenreCap map[models.DiversityLevel]float64 `yaml:"genre_cap"`
}

// DefaultTuning returns the stock thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		FuzzyFloor: 0.72,
		NearDuplicate: map[models.DiversityLevel]float64{
			models.DiversityLow:    0.98,
			models.DiversityMedium: 0.95,
			models.DiversityHigh:   0.90,
		},
		GenreCap: map[models.DiversityLevel]float64{
			models.DiversityLow:    0,
			models.DiversityMedium: 0.60,
			models.DiversityHigh:   0.40,
		},
	}
}

// LoadTuning reads threshold overrides from a YAML file, filling unset
// values from the defaults. An empty path returns the defaults untouched.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}

	var override Tuning
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning file: %w", err)
	}

	if override.FuzzyFloor > 0 && override.FuzzyFloor <= 1 {
		tuning.FuzzyFloor = override.FuzzyFloor
	}
	for level, threshold := range override.NearDuplicate {
		if _, ok := tuning.NearDuplicate[level]; ok && threshold > 0 && threshold <= 1 {
			tuning.NearDuplicate[level] = threshold
		}
	}
	for level, share := range override.GenreCap {
		if _, ok := tuning.GenreCap[level]; ok && share >= 0 && share <= 1 {
			tuning.GenreCap[level] = share
		}
	}

	return tuning, nil
}
