package store

import (
	"context"
	"fmt"
	"time"
)

// Run is one persisted verification run.
type Run struct {
	ID           string
	DegP         int
	DegQ         int
	Workers      int
	Sharded      bool
	Solved       int
	Inconsistent int
	Nodes        int
	LeafCount    int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// LeafRecord is one unresolved system of a run, in the plain
// interchange form, keyed by its position in the run's leaf order.
type LeafRecord struct {
	RunID     string
	Seq       int
	CasePath  string
	Equations string
}

// WriteRun inserts a run and its leaves in one transaction. Leaf
// sequence numbers are assigned from the slice order; run.LeafCount is
// overwritten to match.
func (s *Store) WriteRun(ctx context.Context, run Run, leaves []LeafRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	run.LeafCount = len(leaves)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, deg_p, deg_q, workers, sharded, solved, inconsistent, nodes, leaf_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.DegP,
		run.DegQ,
		run.Workers,
		run.Sharded,
		run.Solved,
		run.Inconsistent,
		run.Nodes,
		run.LeafCount,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	for seq, leaf := range leaves {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO leaves (run_id, seq, case_path, equations)
			VALUES (?, ?, ?, ?)
		`, run.ID, seq, leaf.CasePath, leaf.Equations)
		if err != nil {
			return fmt.Errorf("write leaf %d: %w", seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}
