package solve

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/roach88/zeroone/internal/system"
)

// CaseResult pairs a top-level case mask with its search result.
type CaseResult struct {
	Mask   uint64
	Result *Result
}

// RunOptions configures a full verification run.
type RunOptions struct {
	// Workers is the number of concurrent search workers; values below
	// 1 select GOMAXPROCS. Sharding across case masks requires
	// degP < degQ, otherwise the run falls back to a single root
	// search regardless of Workers.
	Workers int
	// Paranoid re-checks structural invariants on every search node.
	Paranoid bool
	// Trace accumulates a transcript. Tracing forces an unsharded
	// single-worker run so the transcript stays one coherent tree.
	Trace *Trace
}

// RunResult is the merged outcome of a verification run.
type RunResult struct {
	DegP int
	DegQ int
	// Sharded reports whether the case-mask partition was used.
	Sharded bool
	// Cases holds the per-shard results in mask order; an unsharded
	// run has a single entry with mask 0.
	Cases []CaseResult

	Solved       int
	Inconsistent int
	Nodes        int
	// Leaves is ordered by case mask, then depth-first within a shard.
	Leaves []Leaf
}

// Run verifies the (degP, degQ) instance of the conjecture. With more
// than one worker and degP < degQ, the top-level case assignment space
// is partitioned into 2^(degP-1) masks and distributed over workers,
// each running its own sequential search on systems it exclusively
// owns. A panic inside a worker is an engine defect and is surfaced as
// a hard error for the whole run.
func Run(ctx context.Context, degP, degQ int, opts RunOptions) (*RunResult, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if opts.Trace.Enabled() {
		workers = 1
	}

	out := &RunResult{DegP: degP, DegQ: degQ}
	if workers == 1 || degP >= degQ {
		s, err := system.Build(degP, degQ)
		if err != nil {
			return nil, err
		}
		res, err := searchGuarded(s, Options{Paranoid: opts.Paranoid, Trace: opts.Trace}, "root search")
		if err != nil {
			return nil, err
		}
		out.Cases = []CaseResult{{Mask: 0, Result: res}}
		out.accumulate()
		return out, nil
	}

	out.Sharded = true
	total := system.CaseCount(degP)
	if uint64(workers) > total {
		workers = int(total)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	masks := make(chan uint64)
	results := make(chan CaseResult)
	errs := make(chan error, workers)

	go func() {
		defer close(masks)
		for mask := uint64(0); mask < total; mask++ {
			select {
			case masks <- mask:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for mask := range masks {
				s, err := system.Build(degP, degQ, system.WithCase(mask))
				if err != nil {
					errs <- err
					cancel()
					return
				}
				res, err := searchGuarded(s, Options{Paranoid: opts.Paranoid}, fmt.Sprintf("case mask %d", mask))
				if err != nil {
					errs <- err
					cancel()
					return
				}
				select {
				case results <- CaseResult{Mask: mask, Result: res}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
		close(errs)
	}()

	for cr := range results {
		out.Cases = append(out.Cases, cr)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	if uint64(len(out.Cases)) != total {
		return nil, ctx.Err()
	}

	sort.Slice(out.Cases, func(a, b int) bool { return out.Cases[a].Mask < out.Cases[b].Mask })
	out.accumulate()
	return out, nil
}

func (r *RunResult) accumulate() {
	for _, cr := range r.Cases {
		r.Solved += cr.Result.Solved
		r.Inconsistent += cr.Result.Inconsistent
		r.Nodes += cr.Result.Nodes
		r.Leaves = append(r.Leaves, cr.Result.Leaves...)
	}
}

// searchGuarded runs Search with a recover boundary so that an engine
// invariant panic aborts only this unit of work and comes back as an
// error the coordinator can report.
func searchGuarded(s *system.System, opts Options, unit string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine defect in %s: %v", unit, r)
		}
	}()
	return Search(s, opts)
}
