// Package cli implements the command-line interface for bref-rosters.
//
// The cli package provides the Cobra-based CLI with commands for the active
// roster and organization depth charts of an MLB team, plus helpers to list
// teams and levels and to manage the result cache. Reports can be written as
// an aligned text table, JSON or CSV.
package cli
