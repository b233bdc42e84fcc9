package harness

import (
	"context"

	"github.com/roach88/zeroone/internal/solve"
	"github.com/roach88/zeroone/internal/system"
)

// Outcome is the flattened result of a scenario run.
type Outcome struct {
	Solved       int
	Inconsistent int
	Leaves       int
	Nodes        int
}

// Execute runs the scenario's verification and returns the outcome.
func Execute(ctx context.Context, sc *Scenario) (*Outcome, error) {
	if sc.CaseMask != nil {
		s, err := system.Build(sc.DegP, sc.DegQ, system.WithCase(*sc.CaseMask))
		if err != nil {
			return nil, err
		}
		res, err := solve.Search(s, solve.Options{Paranoid: sc.Paranoid})
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Solved:       res.Solved,
			Inconsistent: res.Inconsistent,
			Leaves:       len(res.Leaves),
			Nodes:        res.Nodes,
		}, nil
	}

	res, err := solve.Run(ctx, sc.DegP, sc.DegQ, solve.RunOptions{
		Workers:  sc.Workers,
		Paranoid: sc.Paranoid,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Solved:       res.Solved,
		Inconsistent: res.Inconsistent,
		Leaves:       len(res.Leaves),
		Nodes:        res.Nodes,
	}, nil
}
