// =============================================================================
// Openings Book Converter - Main Entry Point
// =============================================================================
//
// openbook translates a catalog of Othello openings into the opening book
// read by a game engine.
//
// USAGE:
//   openbook convert   - Convert openings.dat into openings.csv
//   openbook validate  - Report every malformed catalog line
//   openbook lookup    - Query a generated book
//   openbook version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : notation, catalog reading, book writers, pipeline
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/othello-tools/openbook/cmd"
)

func main() {
	cmd.Execute()
}
