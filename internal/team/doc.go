// Package team holds the registry of active MLB clubs keyed by their
// three-letter baseball-reference abbreviation.
package team
