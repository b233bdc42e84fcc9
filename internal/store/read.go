package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, deg_p, deg_q, workers, sharded, solved, inconsistent, nodes, leaf_count, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRun returns the most recent run for the degree pair.
func (s *Store) LatestRun(ctx context.Context, degP, degQ int) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, deg_p, deg_q, workers, sharded, solved, inconsistent, nodes, leaf_count, started_at, finished_at
		FROM runs
		WHERE deg_p = ? AND deg_q = ?
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`, degP, degQ)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w for degrees (%d, %d)", ErrNotFound, degP, degQ)
	}
	return run, err
}

// ReadLeaves returns the leaves of a run in sequence order.
func (s *Store) ReadLeaves(ctx context.Context, runID string) ([]LeafRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, case_path, equations
		FROM leaves
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query leaves: %w", err)
	}
	defer rows.Close()

	leaves := []LeafRecord{}
	for rows.Next() {
		var leaf LeafRecord
		if err := rows.Scan(&leaf.RunID, &leaf.Seq, &leaf.CasePath, &leaf.Equations); err != nil {
			return nil, fmt.Errorf("scan leaf: %w", err)
		}
		leaves = append(leaves, leaf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaves: %w", err)
	}
	return leaves, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var started, finished string
	err := row.Scan(
		&run.ID,
		&run.DegP,
		&run.DegQ,
		&run.Workers,
		&run.Sharded,
		&run.Solved,
		&run.Inconsistent,
		&run.Nodes,
		&run.LeafCount,
		&started,
		&finished,
	)
	if err != nil {
		return Run{}, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}
