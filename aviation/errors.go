// aviation/errors.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

// Configuration problems: the procedure definition itself is unusable.
var (
	ErrEmptyProcedure        = errors.New("Procedure has no legs")
	ErrUnknownLegType        = errors.New("Unknown leg type")
	ErrMissingLegParameter   = errors.New("Missing required leg parameter")
	ErrDegenerateLegGeometry = errors.New("Degenerate leg geometry")
)

// Missing data: a referenced identifier isn't in the loaded database.
var (
	ErrUnknownAirport = errors.New("Unknown airport")
	ErrUnknownRunway  = errors.New("Unknown runway")
	ErrUnknownSID     = errors.New("Unknown SID")
	ErrUnknownSTAR    = errors.New("Unknown STAR")
)
