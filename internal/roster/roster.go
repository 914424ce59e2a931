package roster

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/bref-rosters/internal/level"
	"github.com/pfrederiksen/bref-rosters/internal/logger"
	"github.com/pfrederiksen/bref-rosters/internal/table"
	"github.com/pfrederiksen/bref-rosters/internal/team"
)

const (
	DefaultBaseURL = "https://www.baseball-reference.com"

	FortyManTableID = "the40man"
	LevelHeading    = "Lev"
)

// Table ids of the organization depth-chart pages.
var (
	BattingTableIDs = []string{
		"Catcher",
		"Infielder2BSS3B",
		"Outfield",
		"FirstBaseDesignatedHitterorPinchHitter",
		"Utility",
	}
	PitchingTableIDs = []string{
		"Right-HandedStarters",
		"Left-HandedStarters",
		"Right-HandedRelievers",
		"Left-HandedRelievers",
		"OtherPitcher",
		"Closers",
	}
)

// Side selects the batting or pitching half of an organization.
type Side string

const (
	Batting  Side = "batting"
	Pitching Side = "pitching"
)

func (s Side) tableIDs() []string {
	if s == Pitching {
		return PitchingTableIDs
	}
	return BattingTableIDs
}

// Fetcher returns the raw bytes of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Reporter is the set of reports offered for a team.
type Reporter interface {
	ActiveRoster(ctx context.Context, teamCode string) (table.RecordSet, error)
	DepthChartBatting(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error)
	DepthChartPitching(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error)
	DepthChart(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error)
}

// Service implements Reporter against baseball-reference pages.
type Service struct {
	fetcher Fetcher
	base    *url.URL
	season  int
}

// Option configures a Service.
type Option func(*Service) error

// WithBaseURL points the service at another host, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(s *Service) error {
		u, err := url.Parse(strings.TrimRight(raw, "/"))
		if err != nil {
			return fmt.Errorf("parsing base URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base URL must be absolute: %q", raw)
		}
		s.base = u
		return nil
	}
}

// NewService creates a Service for the given season.
func NewService(fetcher Fetcher, season int, opts ...Option) (*Service, error) {
	base, _ := url.Parse(DefaultBaseURL)
	s := &Service{fetcher: fetcher, base: base, season: season}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Season returns the season the active roster is read from.
func (s *Service) Season() int {
	return s.season
}

// RosterURL is the team season page holding the 40-man roster.
func (s *Service) RosterURL(t team.Team) string {
	return fmt.Sprintf("%s/teams/%s/%d.shtml", s.base, t.Code, s.season)
}

// DepthChartURL is the organization depth-chart page for one side.
func (s *Service) DepthChartURL(t team.Team, side Side) string {
	return fmt.Sprintf("%s/teams/%s/%s-organization-%s.shtml", s.base, t.Code, t.OrganizationSlug(), side)
}

// ActiveRoster returns the team's 40-man roster.
func (s *Service) ActiveRoster(ctx context.Context, teamCode string) (table.RecordSet, error) {
	t, err := team.Require(teamCode, team.MsgRoster)
	if err != nil {
		return table.RecordSet{}, err
	}
	defer timeReport("roster", time.Now())

	doc, err := s.document(ctx, s.RosterURL(t))
	if err != nil {
		return table.RecordSet{}, err
	}
	rs, err := table.Assemble(doc, []string{FortyManTableID}, table.WithBaseURL(s.base))
	if err != nil {
		return table.RecordSet{}, err
	}
	logReport("active_roster", t.Code, "", rs)
	return rs, nil
}

// DepthChartBatting returns position players at min or above.
func (s *Service) DepthChartBatting(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error) {
	return s.depthChart(ctx, teamCode, min, Batting)
}

// DepthChartPitching returns pitchers at min or above.
func (s *Service) DepthChartPitching(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error) {
	return s.depthChart(ctx, teamCode, min, Pitching)
}

// DepthChart returns the batting report followed by the pitching report.
// Either half failing fails the whole call.
func (s *Service) DepthChart(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error) {
	return Aggregate(ctx, s, teamCode, min)
}

// Aggregate combines the batting and pitching reports of r, batting first.
func Aggregate(ctx context.Context, r Reporter, teamCode string, min level.Level) (table.RecordSet, error) {
	batting, err := r.DepthChartBatting(ctx, teamCode, min)
	if err != nil {
		return table.RecordSet{}, err
	}
	pitching, err := r.DepthChartPitching(ctx, teamCode, min)
	if err != nil {
		return table.RecordSet{}, err
	}
	return table.Concat(batting, pitching), nil
}

func (s *Service) depthChart(ctx context.Context, teamCode string, min level.Level, side Side) (table.RecordSet, error) {
	t, err := team.Require(teamCode, team.MsgDepthChart)
	if err != nil {
		return table.RecordSet{}, err
	}
	min, err = level.Normalize(min)
	if err != nil {
		return table.RecordSet{}, err
	}
	defer timeReport("depth_chart_"+string(side), time.Now())

	doc, err := s.document(ctx, s.DepthChartURL(t, side))
	if err != nil {
		return table.RecordSet{}, err
	}
	rs, err := table.Assemble(doc, side.tableIDs(),
		table.WithBaseURL(s.base),
		table.WithLevelFilter(LevelHeading, min),
	)
	if err != nil {
		return table.RecordSet{}, err
	}
	logReport("depth_chart_"+string(side), t.Code, min, rs)
	return rs, nil
}

func (s *Service) document(ctx context.Context, pageURL string) (*table.Document, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	return table.Parse(bytes.NewReader(body))
}

func timeReport(name string, start time.Time) {
	logger.RecordTiming("report."+name, time.Since(start))
}

func logReport(report, teamCode string, min level.Level, rs table.RecordSet) {
	fields := logger.Fields{
		"report":  report,
		"team":    teamCode,
		"records": rs.Len(),
	}
	if min != "" {
		fields["min_level"] = string(min)
	}
	if rs.Dropped > 0 {
		fields["dropped"] = rs.Dropped
	}
	logger.Debug("Assembled report", fields)
}
