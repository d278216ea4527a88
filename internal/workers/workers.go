// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNoSuccess is returned by [FirstSuccess] when every task failed.
var ErrNoSuccess = errors.New("no task succeeded")

// DefaultLimit is the concurrency limit used when a caller passes a
// non-positive limit.
func DefaultLimit() int {
	return runtime.GOMAXPROCS(0)
}

// Map applies fn to every item concurrently, at most limit at a time, and
// returns the results in input order. The first error cancels the remaining
// work and is returned.
func Map[In, Out any](ctx context.Context, limit int, items []In, fn func(ctx context.Context, item In) (Out, error)) ([]Out, error) {
	if limit <= 0 {
		limit = DefaultLimit()
	}
	out := make([]Out, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FirstSuccess runs tasks concurrently, at most limit at a time, and returns
// the result of the first task that succeeds. The winner cancels the shared
// context: running losers observe the cancellation and tasks that have not
// started are skipped. Task errors are not reported individually; when all
// tasks fail the result is [ErrNoSuccess].
func FirstSuccess[T any](ctx context.Context, limit int, tasks []Task[T]) (T, error) {
	var zero T
	if limit <= 0 {
		limit = DefaultLimit()
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once   sync.Once
		result T
		won    bool
	)

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for _, task := range tasks {
		if raceCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if raceCtx.Err() != nil {
				return nil
			}
			res, err := task(raceCtx)
			if err != nil {
				return nil
			}
			once.Do(func() {
				result = res
				won = true
				cancel()
			})
			return nil
		})
	}
	_ = g.Wait()

	if won {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return zero, ErrNoSuccess
}
