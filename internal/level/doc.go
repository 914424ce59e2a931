// Package level models the organizational tiers a player can be assigned to.
//
// Levels are ranked from the major leagues (most advanced) down to rookie ball
// (least advanced). Ranks come from an explicit table so that comparisons never
// depend on declaration order. The package also decides whether a depth-chart
// row is kept for a requested minimum level.
package level
