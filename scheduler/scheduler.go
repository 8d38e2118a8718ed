// Package scheduler runs units of work under a fixed concurrency ceiling.
//
// Units are admitted in input order as slots free up and are never
// cancelled by the scheduler. Results come back in input order whatever
// the completion order.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"quickcut/segments"
)

// Ceiling returns requested when positive, otherwise the host CPU count.
// It is never below 1.
func Ceiling(requested int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Scheduler admits at most Limit units at a time. A Limit of zero or less
// means Ceiling(0); a nil Logger discards.
type Scheduler struct {
	Limit  int
	Logger *slog.Logger

	inflight atomic.Int64
}

// New returns a Scheduler with the given ceiling (see Ceiling).
func New(limit int, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{Limit: Ceiling(limit), Logger: logger.With("comp", "scheduler")}
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// Run calls fn once per item and returns the results with out[i] for
// items[i]. It returns after every call has finished. ctx is handed to fn
// only; admission never gives up on it.
func Run[T, R any](ctx context.Context, s *Scheduler, items []T, fn func(context.Context, T) R) []R {
	out := make([]R, len(items))
	limit := Ceiling(s.Limit)
	log := s.logger()
	sem := semaphore.NewWeighted(int64(limit))
	var wg sync.WaitGroup

	for i, item := range items {
		// Background: a cancelled run still attempts every unit so each
		// one reports its own outcome.
		if err := sem.Acquire(context.Background(), 1); err != nil {
			panic(fmt.Sprintf("scheduler: acquire: %v", err))
		}
		n := s.inflight.Add(1)
		log.Debug("admit", "unit", i+1, "inflight", n, "limit", limit)

		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer sem.Release(1)
			defer func() {
				n := s.inflight.Add(-1)
				log.Debug("complete", "unit", i+1, "inflight", n)
			}()
			out[i] = fn(ctx, item)
		}(i, item)
	}

	wg.Wait()
	return out
}

// Job processes one segment.
type Job func(ctx context.Context, spec segments.Spec) segments.Result

// RunPlan runs job for every spec in plan and collects a Report. A job that
// panics is reported as a failed segment; its siblings keep running.
func (s *Scheduler) RunPlan(ctx context.Context, plan segments.Plan, job Job) segments.Report {
	log := s.logger()
	log.Info("batch start", "segments", len(plan.Specs), "limit", Ceiling(s.Limit))

	results := Run(ctx, s, plan.Specs, func(ctx context.Context, spec segments.Spec) (res segments.Result) {
		defer func() {
			if r := recover(); r != nil {
				res = segments.Result{Spec: spec, Err: fmt.Errorf("segment %s panicked: %v", spec.Range, r)}
			}
		}()
		res = job(ctx, spec)
		res.Spec = spec
		if !res.OK && res.Err == nil {
			res.Err = fmt.Errorf("segment %s failed", spec.Range)
		}
		return res
	})

	report := segments.Report{Source: plan.Source, Results: results, OutputDir: plan.OutputDir}
	log.Info("batch done", "ok", report.Succeeded(), "failed", report.Failed())
	return report
}
