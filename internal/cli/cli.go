package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/bref-rosters/internal/cache"
	"github.com/pfrederiksen/bref-rosters/internal/config"
	"github.com/pfrederiksen/bref-rosters/internal/level"
	"github.com/pfrederiksen/bref-rosters/internal/logger"
	"github.com/pfrederiksen/bref-rosters/internal/roster"
	"github.com/pfrederiksen/bref-rosters/internal/scraper"
	"github.com/pfrederiksen/bref-rosters/internal/table"
	"github.com/pfrederiksen/bref-rosters/internal/team"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagFormat   string
	flagNoCache  bool
	flagVerbose  bool
	flagMinLevel string
	flagSide     string
)

// reporterFactory builds the report pipeline. Tests replace it.
var reporterFactory = newReporter

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bref-rosters",
		Short: "Extract MLB rosters and depth charts from baseball-reference.com",
		Long: `A CLI tool to extract the 40-man roster and organization depth charts
of an active MLB team from baseball-reference.com as tabular records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text, json or csv")
	cmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the result cache")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newRosterCmd(), newDepthChartCmd(), newTeamsCmd(), newLevelsCmd(), newCacheCmd())
	return cmd
}

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster TEAM",
		Short: "Show the 40-man roster of a team",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoster,
	}
}

func newDepthChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depth-chart TEAM",
		Short: "Show the organization depth chart of a team",
		Long: `Show the players in a team's organization at --min-level or above.
For example --min-level AA returns major league, AAA and AA players.`,
		Args: cobra.ExactArgs(1),
		RunE: runDepthChart,
	}
	cmd.Flags().StringVar(&flagMinLevel, "min-level", string(level.Default),
		"Minimum level: "+strings.Join(level.Names(), ", "))
	cmd.Flags().StringVar(&flagSide, "side", "all", "Which players: all, batting or pitching")
	return cmd
}

func newTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List active team abbreviations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(flagFormat)
			if err != nil {
				return err
			}
			rows := make([][]string, 0)
			for _, t := range team.Active() {
				rows = append(rows, []string{t.Code, t.Name})
			}
			rs := table.FromRows([]string{"Code", "Name"}, rows)
			return WriteOutput(cmd.OutOrStdout(), NewOutputResult("teams", "", "", rs), format)
		},
	}
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List levels from most to least advanced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(flagFormat)
			if err != nil {
				return err
			}
			rows := make([][]string, 0)
			for _, l := range level.All() {
				rows = append(rows, []string{strconv.Itoa(l.Rank()), string(l), l.Label()})
			}
			rs := table.FromRows([]string{"Rank", "Level", "Label"}, rows)
			return WriteOutput(cmd.OutOrStdout(), NewOutputResult("levels", "", "", rs), format)
		},
	}
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached results",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached result",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCacheMaintenance(cmd, "Removed", (*cache.Store).Clear)
			},
		},
		&cobra.Command{
			Use:   "purge",
			Short: "Remove expired cached results",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCacheMaintenance(cmd, "Purged", (*cache.Store).Purge)
			},
		},
	)
	return cmd
}

func runRoster(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	teamCode := strings.ToUpper(strings.TrimSpace(args[0]))

	cfg, err := setup()
	if err != nil {
		return err
	}
	reporter, err := reporterFactory(cfg, !flagNoCache)
	if err != nil {
		return err
	}

	rs, err := reporter.ActiveRoster(cmd.Context(), teamCode)
	if err != nil {
		return err
	}
	defer printMetrics(cmd.ErrOrStderr())
	return WriteOutput(cmd.OutOrStdout(), NewOutputResult("active_roster", teamCode, "", rs), format)
}

func runDepthChart(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	teamCode := strings.ToUpper(strings.TrimSpace(args[0]))

	min, err := level.Parse(flagMinLevel)
	if err != nil {
		return err
	}

	var report string
	switch strings.ToLower(flagSide) {
	case "all", "":
		report = "depth_chart"
	case string(roster.Batting):
		report = "depth_chart_batting"
	case string(roster.Pitching):
		report = "depth_chart_pitching"
	default:
		return fmt.Errorf("invalid side: %s (must be 'all', 'batting' or 'pitching')", flagSide)
	}

	cfg, err := setup()
	if err != nil {
		return err
	}
	reporter, err := reporterFactory(cfg, !flagNoCache)
	if err != nil {
		return err
	}

	run := reporter.DepthChart
	switch report {
	case "depth_chart_batting":
		run = reporter.DepthChartBatting
	case "depth_chart_pitching":
		run = reporter.DepthChartPitching
	}

	rs, err := run(cmd.Context(), teamCode, min)
	if err != nil {
		return err
	}
	defer printMetrics(cmd.ErrOrStderr())
	return WriteOutput(cmd.OutOrStdout(), NewOutputResult(report, teamCode, string(min), rs), format)
}

func runCacheMaintenance(cmd *cobra.Command, verb string, op func(*cache.Store) (int, error)) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	n, err := op(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d cached results from %s\n", verb, n, store.Dir())
	return nil
}

// setup loads configuration and configures the default logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lvl, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		lvl = logger.LevelDebug
	}
	if strings.EqualFold(cfg.Log.Format, "console") {
		logger.SetDefault(logger.NewConsole(lvl, os.Stderr))
	} else {
		logger.SetDefault(logger.New(lvl, os.Stderr))
	}
	return cfg, nil
}

// newReporter wires the scraper, the report service and, when enabled, the cache.
func newReporter(cfg *config.Config, useCache bool) (roster.Reporter, error) {
	client := scraper.New(
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithRequestsPerMinute(cfg.RequestsPerMinute),
	)
	svc, err := roster.NewService(client, cfg.Season, roster.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, err
	}
	if !useCache || !cfg.Cache.Enabled {
		return svc, nil
	}

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}
	logger.Debug("Using result cache", logger.Fields{"dir": store.Dir(), "ttl": cfg.Cache.TTL.String()})
	return cache.NewReporter(svc, store, strconv.Itoa(cfg.Season), cfg.BaseURL), nil
}

func printMetrics(w io.Writer) {
	if !flagVerbose {
		return
	}
	snap := logger.GetMetricsSnapshot()
	names := snap.Names()
	sort.Strings(names)
	for _, name := range names {
		if v, ok := snap.Counters[name]; ok {
			fmt.Fprintf(w, "%s: %d\n", name, v)
		}
		if t, ok := snap.Timings[name]; ok {
			fmt.Fprintf(w, "%s: count=%d avg=%s max=%s\n", name, t.Count, t.Average, t.Max)
		}
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
