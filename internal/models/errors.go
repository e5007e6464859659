/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset indicates the catalog yielded zero usable tracks.
// Surfaced at startup; the process must not serve without a catalog.
var ErrEmptyDataset = errors.New("catalog contains no usable tracks")

// ErrUnknownMood indicates a mood outside the canonical six.
var ErrUnknownMood = errors.New("unknown mood")

// ErrUnknownGenre indicates a genre absent from the catalog.
var ErrUnknownGenre = errors.New("unknown genre")

// ErrUnknownDiversity indicates a diversity level outside low/medium/high.
var ErrUnknownDiversity = errors.New("unknown diversity level")

// ErrInsufficientCandidates indicates filtering left zero eligible tracks
// even after tolerance relaxation.
var ErrInsufficientCandidates = errors.New("no candidates satisfy the requested constraints")

// TrackNotFoundError reports a failed lookup with the attempted query so
// callers can diagnose near-miss spellings.
type TrackNotFoundError struct {
	Name   string
	Artist string
}

func (e *TrackNotFoundError) Error() string {
	if e.Artist == "" {
		return fmt.Sprintf("track %q not found", e.Name)
	}
	return fmt.Sprintf("track %q by %q not found", e.Name, e.Artist)
}
