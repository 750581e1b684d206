// Package main provides the CLI entrypoint for holdemdna.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/holdemdna/internal/adapters/profilefile"
	"github.com/okian/holdemdna/internal/adapters/watcher"
	service "github.com/okian/holdemdna/internal/app"
	"github.com/okian/holdemdna/internal/config"
	"github.com/okian/holdemdna/pkg/logger"
)

// Exit codes.
const (
	exitOK             = 0
	exitError          = 1
	exitInvalidProfile = 2
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	if errors.Is(err, profilefile.ErrInvalidProfile) {
		return exitInvalidProfile
	}
	return exitError
}

// flags holds command line overrides. Only flags the user set replace
// configured values.
type flags struct {
	json        bool
	format      string
	metricsFile string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:           "holdemdna <profile.json>",
		Short:         "Score a poker player's profile and suggest improvements",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, f, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&f.json, "json", false, "output JSON (same as --format json)")
	pf.StringVar(&f.format, "format", config.FormatText, "output format: text, json or pretty")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after each analysis")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.MarkFlagsMutuallyExclusive("json", "format")

	rootCmd.AddCommand(newWatchCmd(f))
	rootCmd.AddCommand(newRankCmd(f))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newWatchCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <profile.json>",
		Short: "Re-analyse a profile every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, f, args[0])
		},
	}
}

func newRankCmd(f *flags) *cobra.Command {
	var (
		top     int
		workers int
		player  string
	)
	cmd := &cobra.Command{
		Use:   "rank <profile.json|dir>...",
		Short: "Analyse many profiles at once and rank them by composite index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				cfg.RankTop = top
			}
			if cmd.Flags().Changed("workers") {
				cfg.RankWorkers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runRank(cmd, cfg, args, player)
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of leaderboard rows to print")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent analyses (0 = CPU count)")
	cmd.Flags().StringVar(&player, "player", "", "also print this player's position when it is outside --top")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "holdemdna %s\n", version)
			return err
		},
	}
}

// setup loads configuration, applies flag overrides and initialises logging.
func setup(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("json") && f.json {
		cfg.Format = config.FormatJSON
	}
	if fs.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: log_level: %w", config.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func newService(cfg *config.Config) *service.Service {
	return service.New(
		service.WithLogger(logger.Named("service")),
		service.WithFormat(cfg.Format),
		service.WithJSONIndent(cfg.JSONIndent),
		service.WithMetricsFile(cfg.MetricsFile),
		service.WithRankWorkers(cfg.RankWorkers),
	)
}

func runAnalyze(cmd *cobra.Command, f *flags, path string) error {
	cfg, err := setup(cmd, f)
	if err != nil {
		return err
	}
	svc := newService(cfg)

	res, err := svc.AnalyzeFile(cmd.Context(), path)
	if err != nil {
		return err
	}
	return svc.Render(cmd.OutOrStdout(), res)
}

func runRank(cmd *cobra.Command, cfg *config.Config, inputs []string, player string) error {
	svc := newService(cfg)

	res, err := svc.Rank(cmd.Context(), inputs, service.RankQuery{Top: cfg.RankTop, Player: player})
	for _, f := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", f.Path, f.Err)
	}
	switch {
	case errors.Is(err, service.ErrPlayerNotRanked):
		if renderErr := svc.RenderRanking(cmd.OutOrStdout(), res.Rows()); renderErr != nil {
			return renderErr
		}
		return err
	case err != nil:
		return err
	}
	return svc.RenderRanking(cmd.OutOrStdout(), res.Rows())
}

func runWatch(cmd *cobra.Command, f *flags, path string) error {
	cfg, err := setup(cmd, f)
	if err != nil {
		return err
	}
	svc := newService(cfg)
	log := logger.Named("watch")

	analyze := func(ctx context.Context) {
		res, err := svc.AnalyzeFile(ctx, path)
		if err != nil {
			log.Error(ctx, "analysis failed", logger.String("path", path), logger.Error(err))
			return
		}
		if err := svc.Render(cmd.OutOrStdout(), res); err != nil {
			log.Error(ctx, "render failed", logger.Error(err))
		}
	}

	w, err := watcher.New(path, analyze,
		watcher.WithDebounce(cfg.WatchDebounce()),
		watcher.WithLogger(log),
	)
	if err != nil {
		return err
	}

	analyze(cmd.Context())
	return w.Run(cmd.Context())
}
