package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/holdemdna/internal/adapters/leaderboard"
	"github.com/okian/holdemdna/internal/adapters/mq/queue"
	"github.com/okian/holdemdna/internal/adapters/mq/worker"
	"github.com/okian/holdemdna/internal/adapters/render"
	"github.com/okian/holdemdna/internal/domain/dedupe"
	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/internal/domain/types"
	"github.com/okian/holdemdna/pkg/logger"
)

const profileGlob = "*.json"

// Failure is an input that could not be ranked.
type Failure struct {
	Path string
	Err  error
}

// RankQuery selects what Rank reports.
type RankQuery struct {
	Top    int
	Player string // optional; reported even when outside Top
}

// Summary describes the composites of every ranked player.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64 // sample deviation; 0 for a single player
}

// RankResult is the outcome of one batch ranking.
type RankResult struct {
	Entries  []types.RankEntry
	Player   *types.RankEntry // set when RankQuery.Player was ranked
	Ranked   int              // distinct players on the leaderboard
	Summary  Summary
	Skipped  []string // inputs named more than once
	Failures []Failure
}

// Rows returns the entries to display: the top entries followed by the
// queried player when it is not among them.
func (r RankResult) Rows() []types.RankEntry {
	if r.Player == nil {
		return r.Entries
	}
	for _, e := range r.Entries {
		if e.Player == r.Player.Player {
			return r.Entries
		}
	}
	rows := make([]types.RankEntry, 0, len(r.Entries)+1)
	rows = append(rows, r.Entries...)
	return append(rows, *r.Player)
}

// Rank analyses every profile named by inputs (files, or directories of
// *.json files) concurrently and returns the top entries by composite.
// It fails with ErrNothingRanked when no input produced a result and with
// ErrPlayerNotRanked when q.Player is not on the leaderboard; in both cases
// the returned RankResult carries everything else that was gathered.
func (s *Service) Rank(ctx context.Context, inputs []string, q RankQuery) (RankResult, error) {
	var res RankResult

	paths, failures := expandInputs(inputs)
	res.Failures = failures

	seen := dedupe.NewInMemoryDeduper()
	jobs := make([]model.AnalysisJob, 0, len(paths))
	for _, p := range paths {
		if seen.SeenAndRecord(ctx, p) {
			res.Skipped = append(res.Skipped, p)
			continue
		}
		jobs = append(jobs, model.AnalysisJob{ID: uuid.NewString(), Path: p})
	}

	board := leaderboard.NewTreapStore()
	if len(jobs) > 0 {
		jobFailures, err := s.runJobs(ctx, jobs, board)
		if err != nil {
			return res, err
		}
		res.Failures = append(res.Failures, jobFailures...)
	}
	sort.Slice(res.Failures, func(i, j int) bool { return res.Failures[i].Path < res.Failures[j].Path })

	res.Ranked = board.Count(ctx)
	if res.Ranked == 0 {
		s.logger.Info(ctx, "batch ranked",
			logger.Int("inputs", seen.Size()),
			logger.Int("ranked", 0),
			logger.Int("failed", len(res.Failures)),
		)
		return res, ErrNothingRanked
	}

	all, err := board.TopN(ctx, res.Ranked)
	if err != nil {
		return res, err
	}
	res.Summary = summarize(all)
	s.logger.Info(ctx, "batch ranked",
		logger.Int("inputs", seen.Size()),
		logger.Int("ranked", res.Ranked),
		logger.Int("failed", len(res.Failures)),
		logger.Int("skipped", len(res.Skipped)),
		logger.Float64("composite_mean", res.Summary.Mean),
		logger.Float64("composite_median", res.Summary.Median),
		logger.Float64("composite_stddev", res.Summary.StdDev),
	)

	top, err := board.TopN(ctx, q.Top)
	if err != nil {
		return res, err
	}
	res.Entries = make([]types.RankEntry, len(top))
	for i, e := range top {
		res.Entries[i] = rankEntry(e)
	}

	if q.Player != "" {
		e, err := board.Rank(ctx, q.Player)
		if err != nil {
			return res, fmt.Errorf("%w: %q: %w", ErrPlayerNotRanked, q.Player, err)
		}
		entry := rankEntry(e)
		res.Player = &entry
	}
	return res, nil
}

func rankEntry(e leaderboard.Entry) types.RankEntry {
	return types.RankEntry{Rank: e.Rank, Player: e.Player, Composite: e.Composite, Path: e.Path}
}

// summarize expects entries ordered by composite descending.
func summarize(entries []leaderboard.Entry) Summary {
	composites := make([]float64, len(entries))
	for i, e := range entries {
		composites[i] = e.Composite
	}
	floats.Reverse(composites)

	var sum Summary
	if len(composites) == 1 {
		sum.Mean = composites[0]
	} else {
		sum.Mean, sum.StdDev = stat.MeanStdDev(composites, nil)
	}
	sum.Median = stat.Quantile(0.5, stat.Empirical, composites, nil)
	return sum
}

// RenderRanking writes entries to w in the configured format.
func (s *Service) RenderRanking(w io.Writer, entries []types.RankEntry) error {
	p, err := render.NewRanking(s.format, render.WithIndent(s.jsonIndent))
	if err != nil {
		return err
	}
	return p.PresentRanking(w, entries)
}

func (s *Service) runJobs(ctx context.Context, jobs []model.AnalysisJob, board leaderboard.Store) ([]Failure, error) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(jobs)))
	for _, j := range jobs {
		if err := q.Enqueue(ctx, j); err != nil {
			return nil, fmt.Errorf("enqueue %s: %w", j.Path, err)
		}
	}
	_ = q.Close()
	queued := q.Len(ctx)

	var (
		mu       sync.Mutex
		failures []Failure
	)
	pool := worker.NewPool(s.rankWorkers, q, jobAnalyzer{svc: s}, board,
		worker.WithLogger(s.logger),
		worker.WithFailureHandler(func(job model.AnalysisJob, err error) {
			mu.Lock()
			defer mu.Unlock()
			failures = append(failures, Failure{Path: job.Path, Err: err})
		}),
	)
	s.logger.Debug(ctx, "starting rank workers", logger.Int("workers", pool.Size()), logger.Int("jobs", queued))
	pool.Start(ctx)
	pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return failures, nil
}

// jobAnalyzer adapts Service.AnalyzeFile to worker.Analyzer.
type jobAnalyzer struct {
	svc *Service
}

func (a jobAnalyzer) Analyze(ctx context.Context, job model.AnalysisJob) (model.PlayerScore, error) {
	res, err := a.svc.AnalyzeFile(ctx, job.Path)
	if err != nil {
		return model.PlayerScore{}, err
	}
	return model.PlayerScore{Player: res.Name, Composite: res.Payload.Composite, Path: job.Path}, nil
}

// expandInputs turns files and directories into absolute profile paths.
// Directories contribute their *.json entries in name order.
func expandInputs(inputs []string) ([]string, []Failure) {
	var (
		paths    []string
		failures []Failure
	)
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			failures = append(failures, Failure{Path: in, Err: err})
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			failures = append(failures, Failure{Path: abs, Err: err})
			continue
		}
		if !info.IsDir() {
			paths = append(paths, abs)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(abs, profileGlob))
		if err != nil {
			failures = append(failures, Failure{Path: abs, Err: err})
			continue
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				paths = append(paths, m)
			}
		}
	}
	return paths, failures
}
