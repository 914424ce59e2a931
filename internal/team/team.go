package team

import (
	"errors"
	"sort"
	"strings"
)

// Messages returned for unknown team codes. The wording differs between the
// depth-chart and active-roster entry points.
const (
	MsgDepthChart = "Supplied team must be an active MLB team."
	MsgRoster     = "Team must be the three-letter abbreviation of an active MLB team."
)

// ErrInvalidTeam is matched by every InvalidTeamError.
var ErrInvalidTeam = errors.New("invalid team")

// Team is an active club.
type Team struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// OrganizationSlug is the name as it appears in organization page URLs,
// e.g. "Washington-Nationals".
func (t Team) OrganizationSlug() string {
	return strings.ReplaceAll(t.Name, " ", "-")
}

var active = map[string]string{
	"ARI": "Arizona Diamondbacks",
	"ATL": "Atlanta Braves",
	"BAL": "Baltimore Orioles",
	"BOS": "Boston Red Sox",
	"CHC": "Chicago Cubs",
	"CHW": "Chicago White Sox",
	"CIN": "Cincinnati Reds",
	"CLE": "Cleveland Guardians",
	"COL": "Colorado Rockies",
	"DET": "Detroit Tigers",
	"HOU": "Houston Astros",
	"KCR": "Kansas City Royals",
	"LAA": "Los Angeles Angels",
	"LAD": "Los Angeles Dodgers",
	"MIA": "Miami Marlins",
	"MIL": "Milwaukee Brewers",
	"MIN": "Minnesota Twins",
	"NYM": "New York Mets",
	"NYY": "New York Yankees",
	"OAK": "Oakland Athletics",
	"PHI": "Philadelphia Phillies",
	"PIT": "Pittsburgh Pirates",
	"SDP": "San Diego Padres",
	"SEA": "Seattle Mariners",
	"SFG": "San Francisco Giants",
	"STL": "St. Louis Cardinals",
	"TBR": "Tampa Bay Rays",
	"TEX": "Texas Rangers",
	"TOR": "Toronto Blue Jays",
	"WSN": "Washington Nationals",
}

// InvalidTeamError reports a code outside the active set.
type InvalidTeamError struct {
	Code    string
	Message string
}

func (e *InvalidTeamError) Error() string {
	return e.Message
}

func (e *InvalidTeamError) Is(target error) bool {
	return target == ErrInvalidTeam
}

// Lookup returns the active team for code. Codes are case-sensitive, matching
// the abbreviations used in site URLs.
func Lookup(code string) (Team, bool) {
	name, ok := active[code]
	if !ok {
		return Team{}, false
	}
	return Team{Code: code, Name: name}, true
}

// Require is Lookup that fails with an InvalidTeamError carrying message.
func Require(code, message string) (Team, error) {
	t, ok := Lookup(code)
	if !ok {
		return Team{}, &InvalidTeamError{Code: code, Message: message}
	}
	return t, nil
}

// Active returns every active team sorted by code.
func Active() []Team {
	teams := make([]Team, 0, len(active))
	for code, name := range active {
		teams = append(teams, Team{Code: code, Name: name})
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Code < teams[j].Code
	})
	return teams
}
