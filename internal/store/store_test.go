package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/lineslam/internal/slam"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLatestSnapshotReturnsNilWhenNoneSaved(t *testing.T) {
	s := openTestStore(t)
	snap, err := s.LatestSnapshot("run-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveAndLoadLatestSnapshot(t *testing.T) {
	s := openTestStore(t)

	pose := slam.Pose{Position: slam.Point{X: 10, Y: -20}, Theta: slam.Angle16(1000)}
	segments := []slam.Segment{
		{A: slam.Point{X: 0, Y: 0}, B: slam.Point{X: 500, Y: 0}},
		{A: slam.Point{X: 0, Y: 0}, B: slam.Point{X: 0, Y: 300}},
	}

	require.NoError(t, s.SaveSnapshot("run-1", 1000, pose, segments))
	require.NoError(t, s.SaveSnapshot("run-1", 2000, pose, segments[:1]))

	snap, err := s.LatestSnapshot("run-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(2000), snap.TakenUnixNanos)
	assert.Equal(t, pose, snap.Pose)
	assert.Equal(t, segments[:1], snap.Segments)
}

func TestSnapshotsAreScopedByRunID(t *testing.T) {
	s := openTestStore(t)
	pose := slam.Pose{}
	seg := []slam.Segment{{A: slam.Point{X: 1, Y: 1}, B: slam.Point{X: 2, Y: 2}}}

	require.NoError(t, s.SaveSnapshot("run-a", 1, pose, seg))

	snap, err := s.LatestSnapshot("run-b")
	require.NoError(t, err)
	assert.Nil(t, snap)
}
