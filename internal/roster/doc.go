// Package roster builds the active-roster and depth-chart reports for a team.
//
// A Service validates its arguments, fetches the team page through an
// injected Fetcher, and assembles the page's tables into a table.RecordSet.
// DepthChart combines the batting and pitching reports, batting first.
package roster
