package level

import (
	"errors"
	"fmt"
	"strings"
)

// Level is an organizational tier such as MAJ or AAA.
type Level string

const (
	MAJ   Level = "MAJ"
	AAA   Level = "AAA"
	AA    Level = "AA"
	HighA Level = "HIGH_A"
	LowA  Level = "LOW_A"
	ROK   Level = "ROK"
)

// Default is the level used when no minimum is supplied.
const Default = MAJ

// ErrInvalidLevel is matched by every InvalidLevelError.
var ErrInvalidLevel = errors.New("invalid level")

// ranks orders levels from most advanced (1) to least advanced.
var ranks = map[Level]int{
	MAJ:   1,
	AAA:   2,
	AA:    3,
	HighA: 4,
	LowA:  5,
	ROK:   6,
}

// labels are the short forms printed in the site's level column.
var labels = map[Level]string{
	MAJ:   "MAJ",
	AAA:   "AAA",
	AA:    "AA",
	HighA: "H-A",
	LowA:  "L-A",
	ROK:   "ROK",
}

// InvalidLevelError reports a token that is not one of the recognized levels.
type InvalidLevelError struct {
	Value string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("Invalid value of '%s'. Values must be one of: %s", e.Value, strings.Join(Names(), ", "))
}

func (e *InvalidLevelError) Is(target error) bool {
	return target == ErrInvalidLevel
}

// All returns every level, most advanced first.
func All() []Level {
	return []Level{MAJ, AAA, AA, HighA, LowA, ROK}
}

// Names returns the token of every level, most advanced first.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, l := range all {
		names[i] = string(l)
	}
	return names
}

// Parse maps a token to its Level. Both level names (HIGH_A) and the site's
// column labels (H-A) are accepted, case-insensitively.
func Parse(token string) (Level, error) {
	normalized := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := ranks[Level(normalized)]; ok {
		return Level(normalized), nil
	}
	for l, label := range labels {
		if label == normalized {
			return l, nil
		}
	}
	return "", &InvalidLevelError{Value: token}
}

// Rank returns the ordinal of l, 1 being the major leagues.
// Unknown levels rank 0.
func (l Level) Rank() int {
	return ranks[l]
}

// Label returns the short form used on the site.
func (l Level) Label() string {
	return labels[l]
}

// Validate returns an InvalidLevelError when l is not a recognized level.
func (l Level) Validate() error {
	if _, ok := ranks[l]; !ok {
		return &InvalidLevelError{Value: string(l)}
	}
	return nil
}

// Normalize maps a requested minimum to its Level. Empty means Default;
// anything else is read like Parse.
func Normalize(min Level) (Level, error) {
	if min == "" {
		return Default, nil
	}
	return Parse(string(min))
}

// AtOrAbove reports whether l is as advanced as min or more.
func (l Level) AtOrAbove(min Level) bool {
	return l.Rank() <= min.Rank()
}

// Include decides whether a row carrying the given level token is kept for
// the requested minimum. The token must be a recognized level.
func Include(token string, min Level) (bool, error) {
	if err := min.Validate(); err != nil {
		return false, err
	}
	l, err := Parse(token)
	if err != nil {
		return false, err
	}
	return l.AtOrAbove(min), nil
}
