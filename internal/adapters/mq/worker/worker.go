// Package worker analyses queued profile jobs and feeds a leaderboard.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/pkg/logger"
)

// Analyzer scores the profile a job points at.
type Analyzer interface {
	Analyze(ctx context.Context, job model.AnalysisJob) (model.PlayerScore, error)
}

// Updater keeps the best composite per player.
type Updater interface {
	UpdateBest(ctx context.Context, score model.PlayerScore) (bool, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.AnalysisJob
}

// InMemoryWorker drains jobs from a queue until it is closed or the
// context ends.
type InMemoryWorker struct {
	queue     Queue
	analyzer  Analyzer
	updater   Updater
	name      string
	onFailure func(job model.AnalysisJob, err error)
	logger    logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(q Queue, a Analyzer, u Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		analyzer: a,
		updater:  u,
		name:     "worker",
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes jobs until the queue channel is closed or ctx is done.
func (w *InMemoryWorker) Run(ctx context.Context) {
	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Debug(ctx, "job failed", logger.String("job", job.ID), logger.Error(err))
				if w.onFailure != nil {
					w.onFailure(job, err)
				}
			}
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job model.AnalysisJob) error {
	score, err := w.analyzer.Analyze(ctx, job)
	if err != nil {
		return err
	}
	updated, err := w.updater.UpdateBest(ctx, score)
	if err != nil {
		return fmt.Errorf("leaderboard update for %s: %w", score.Player, err)
	}
	w.logger.Debug(ctx, "job ranked",
		logger.String("job", job.ID),
		logger.String("player", score.Player),
		logger.Float64("composite", score.Composite),
		logger.Bool("updated", updated),
	)
	return nil
}

// Pool manages a fixed set of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	wg      sync.WaitGroup
	once    sync.Once
}

// NewPool creates workerCount workers. A count below 1 uses the CPU count.
// opts apply to every worker; each also gets a numbered name.
func NewPool(workerCount int, q Queue, a Analyzer, u Updater, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{workers: make([]*InMemoryWorker, workerCount)}
	for i := range p.workers {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(q, a, u, workerOpts...)
	}
	return p
}

// Start launches every worker. Calling it again has no effect.
func (p *Pool) Start(ctx context.Context) {
	p.once.Do(func() {
		for _, w := range p.workers {
			p.wg.Add(1)
			go func(w *InMemoryWorker) {
				defer p.wg.Done()
				w.Run(ctx)
			}(w)
		}
	})
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}
