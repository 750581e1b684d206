// Command gen-profiles writes synthetic player profiles for the analyzer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/holdemdna/internal/profilegen"
	"github.com/okian/holdemdna/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount    = 5
	defaultSessions = 8
	defaultOut      = "profiles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("gen-profiles", flag.ContinueOnError)
	fset.SetOutput(stderr)
	var (
		count    = fset.Int("n", defaultCount, "Number of profiles to generate")
		sessions = fset.Int("sessions", defaultSessions, "Sessions per profile")
		out      = fset.String("out", defaultOut, "Output directory")
		seed     = fset.Int64("seed", time.Now().UnixNano(), "Random seed (same seed, same profiles)")
		verbose  = fset.Bool("verbose", false, "Enable verbose logging")
	)
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if *count < 0 || *sessions < 0 {
		fmt.Fprintln(stderr, "-n and -sessions must be >= 0")
		return 2
	}

	if err := logger.InitWithWriter(stderr); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return 1
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	} else {
		_ = logger.SetLevelString("warn")
	}

	gen := profilegen.New(*seed,
		profilegen.WithSessions(*sessions),
		profilegen.WithLogger(logger.Named("gen-profiles")),
	)
	paths, err := gen.WriteDir(ctx, *out, *count)
	if err != nil {
		fmt.Fprintln(stderr, "generation failed: "+err.Error())
		return 1
	}
	for _, p := range paths {
		fmt.Fprintln(stdout, p)
	}
	return 0
}
