package equiv

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
)

// Rows between two context checks.
const pollInterval = 1 << 12

// truthTable enumerates rows in increasing order and stops at the first row
// on which the expressions differ.
func (c *Checker) truthTable(ctx context.Context, e1, e2 boolexpr.Expr, vars []string) (Report, error) {
	if len(vars) > c.opts.MaxVariables {
		return Report{}, fmt.Errorf("%w: %d variables, at most %d are enumerated",
			ErrTooManyVariables, len(vars), c.opts.MaxVariables)
	}
	b1, err := boolexpr.Bind(e1, vars)
	if err != nil {
		return Report{}, err
	}
	b2, err := boolexpr.Bind(e2, vars)
	if err != nil {
		return Report{}, err
	}

	rows := b1.Rows()
	workers := uint64(c.opts.Workers)
	if workers > rows {
		workers = rows
	}

	var (
		row     uint64
		found   bool
		checked uint64
	)
	if workers <= 1 {
		row, found, checked, err = scan(ctx, b1, b2, 0, rows, nil)
	} else {
		row, found, checked, err = scanParallel(ctx, b1, b2, rows, workers)
	}
	if err != nil {
		return Report{}, err
	}

	r := Report{Result: Equivalent, Rows: checked}
	if found {
		r.Result = NotEquivalent
		r.Counterexample = b1.Assignment(row)
	}
	return r, nil
}

// scan evaluates rows [from, to) and returns the first differing row. When
// bound is not nil, the scan also gives up as soon as a differing row lower
// than its own position has been published there.
func scan(ctx context.Context, b1, b2 *boolexpr.Bound, from, to uint64, bound *atomic.Uint64) (uint64, bool, uint64, error) {
	var checked uint64
	for row := from; row < to; row++ {
		if checked%pollInterval == 0 && checked > 0 {
			if err := ctx.Err(); err != nil {
				return 0, false, checked, err
			}
			if bound != nil && bound.Load() < row {
				return 0, false, checked, nil
			}
		}
		checked++
		if b1.EvalBits(row) != b2.EvalBits(row) {
			return row, true, checked, nil
		}
	}
	return 0, false, checked, ctx.Err()
}

// scanParallel splits the rows into contiguous chunks, one per worker. The
// lowest differing row over all chunks is reported, whatever the order in
// which workers finish.
func scanParallel(ctx context.Context, b1, b2 *boolexpr.Bound, rows, workers uint64) (uint64, bool, uint64, error) {
	chunk := (rows + workers - 1) / workers

	var lowest atomic.Uint64
	lowest.Store(rows) // no differing row yet
	var checked atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	for w := uint64(0); w < workers; w++ {
		from := w * chunk
		to := min(from+chunk, rows)
		if from >= to {
			break
		}
		g.Go(func() error {
			row, found, n, err := scan(gctx, b1, b2, from, to, &lowest)
			checked.Add(n)
			if err != nil {
				return err
			}
			if !found {
				return nil
			}
			for {
				cur := lowest.Load()
				if row >= cur || lowest.CompareAndSwap(cur, row) {
					return nil
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return 0, false, checked.Load(), err
	}

	row := lowest.Load()
	return row, row < rows, checked.Load(), nil
}
