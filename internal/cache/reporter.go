package cache

import (
	"context"

	"github.com/pfrederiksen/bref-rosters/internal/level"
	"github.com/pfrederiksen/bref-rosters/internal/logger"
	"github.com/pfrederiksen/bref-rosters/internal/roster"
	"github.com/pfrederiksen/bref-rosters/internal/table"
)

// Reporter memoizes the reports of an inner roster.Reporter.
type Reporter struct {
	inner roster.Reporter
	store *Store
	scope []string
}

// NewReporter wraps inner. scope values, e.g. season and base URL, are
// added to every key so results from different sources never collide.
func NewReporter(inner roster.Reporter, store *Store, scope ...string) *Reporter {
	return &Reporter{inner: inner, store: store, scope: scope}
}

// ActiveRoster implements roster.Reporter.
func (r *Reporter) ActiveRoster(ctx context.Context, teamCode string) (table.RecordSet, error) {
	return r.memoize("active_roster", []string{teamCode}, func() (table.RecordSet, error) {
		return r.inner.ActiveRoster(ctx, teamCode)
	})
}

// DepthChartBatting implements roster.Reporter.
func (r *Reporter) DepthChartBatting(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error) {
	return r.memoize("depth_chart_batting", []string{teamCode, levelKey(min)}, func() (table.RecordSet, error) {
		return r.inner.DepthChartBatting(ctx, teamCode, min)
	})
}

// DepthChartPitching implements roster.Reporter.
func (r *Reporter) DepthChartPitching(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error) {
	return r.memoize("depth_chart_pitching", []string{teamCode, levelKey(min)}, func() (table.RecordSet, error) {
		return r.inner.DepthChartPitching(ctx, teamCode, min)
	})
}

// DepthChart implements roster.Reporter. The halves go through the cache too.
func (r *Reporter) DepthChart(ctx context.Context, teamCode string, min level.Level) (table.RecordSet, error) {
	return r.memoize("depth_chart", []string{teamCode, levelKey(min)}, func() (table.RecordSet, error) {
		return roster.Aggregate(ctx, r, teamCode, min)
	})
}

func (r *Reporter) memoize(report string, args []string, compute func() (table.RecordSet, error)) (table.RecordSet, error) {
	keyArgs := append(append([]string(nil), r.scope...), args...)
	key := Key(report, keyArgs...)

	entry, err := r.store.Load(key)
	if err != nil {
		logger.Warn("Ignoring unreadable cache entry", logger.Fields{"report": report, "key": key, "error": err.Error()})
	}
	if entry != nil {
		logger.IncrCounter("cache.hits")
		logger.Debug("Cache hit", logger.Fields{"report": report, "args": args})
		return entry.RecordSet(), nil
	}
	logger.IncrCounter("cache.misses")

	rs, err := compute()
	if err != nil {
		return table.RecordSet{}, err
	}
	if err := r.store.Save(key, report, keyArgs, rs); err != nil {
		logger.Warn("Could not save cache entry", logger.Fields{"report": report, "error": err.Error()})
	}
	return rs, nil
}

// levelKey is the canonical spelling of min, so "", "maj" and MAJ share an
// entry. Invalid values are kept as given and rejected by the inner reporter.
func levelKey(min level.Level) string {
	if l, err := level.Normalize(min); err == nil {
		return string(l)
	}
	return string(min)
}
