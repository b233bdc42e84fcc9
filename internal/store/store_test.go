package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, degP, degQ int, started time.Time) Run {
	return Run{
		ID:         id,
		DegP:       degP,
		DegQ:       degQ,
		Workers:    1,
		Solved:     3,
		Nodes:      5,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
	run := sampleRun(NewRunID(), 3, 5, started)
	leaves := []LeafRecord{
		{CasePath: "1.1", Equations: "p_1 + q_1 = 1\np_2 + q_4 = 1\n"},
		{CasePath: "1.2.1", Equations: "p_1 + q_4 = 1\n"},
	}
	require.NoError(t, s.WriteRun(ctx, run, leaves))

	got, err := s.LatestRun(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, 3, got.DegP)
	assert.Equal(t, 5, got.DegQ)
	assert.Equal(t, 2, got.LeafCount, "leaf count follows the slice, not the caller")
	assert.True(t, got.StartedAt.Equal(started))

	gotLeaves, err := s.ReadLeaves(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, gotLeaves, 2)
	assert.Equal(t, 0, gotLeaves[0].Seq)
	assert.Equal(t, "1.1", gotLeaves[0].CasePath)
	assert.Equal(t, leaves[0].Equations, gotLeaves[0].Equations)
	assert.Equal(t, "1.2.1", gotLeaves[1].CasePath)
}

func TestWriteRun_NoLeaves(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun(NewRunID(), 2, 3, time.Now())
	require.NoError(t, s.WriteRun(ctx, run, nil))

	leaves, err := s.ReadLeaves(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestWriteRun_DuplicateIDFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun(NewRunID(), 2, 3, time.Now())
	require.NoError(t, s.WriteRun(ctx, run, nil))
	assert.Error(t, s.WriteRun(ctx, run, nil))
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	old := sampleRun(NewRunID(), 2, 3, base)
	recent := sampleRun(NewRunID(), 3, 5, base.Add(time.Hour))
	require.NoError(t, s.WriteRun(ctx, old, nil))
	require.NoError(t, s.WriteRun(ctx, recent, nil))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, recent.ID, runs[0].ID)
	assert.Equal(t, old.ID, runs[1].ID)
}

func TestLatestRun_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LatestRun(context.Background(), 9, 11)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRunID_Unique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
