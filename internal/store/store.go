// Package store provides optional durable persistence of map snapshots to
// SQLite, for resuming a run after a restart or inspecting past maps
// offline. Persistence is entirely optional: the SLAM core runs in memory
// without ever touching a Store.
package store

import (
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/lineslam/internal/slam"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const segmentWireSize = 16

// Store persists Map snapshots keyed by run ID.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// applies any pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	subFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("store: preparing embedded migrations: %w", err)
	}
	sourceDriver, err := iofs.New(subFS, ".")
	if err != nil {
		return fmt.Errorf("store: creating migration source: %w", err)
	}
	dbDriver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("store: creating sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("store: creating migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: applying migrations: %w", err)
	}
	return nil
}

// SaveSnapshot persists the current map and pose under runID.
func (s *Store) SaveSnapshot(runID string, takenUnixNanos int64, pose slam.Pose, segments []slam.Segment) error {
	blob := encodeSegments(segments)
	_, err := s.db.Exec(
		`INSERT INTO map_snapshot (run_id, taken_unix_nanos, pose_x, pose_y, pose_theta, segment_count, segments_blob)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, takenUnixNanos, pose.Position.X, pose.Position.Y, int32(pose.Theta), len(segments), blob,
	)
	if err != nil {
		return fmt.Errorf("store: saving snapshot for run %s: %w", runID, err)
	}
	return nil
}

// Snapshot is a persisted map and pose, as recorded by SaveSnapshot.
type Snapshot struct {
	TakenUnixNanos int64
	Pose           slam.Pose
	Segments       []slam.Segment
}

// LatestSnapshot returns the most recently saved snapshot for runID, or
// (nil, nil) if none exists.
func (s *Store) LatestSnapshot(runID string) (*Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT taken_unix_nanos, pose_x, pose_y, pose_theta, segments_blob
		 FROM map_snapshot WHERE run_id = ? ORDER BY snapshot_id DESC LIMIT 1`,
		runID,
	)
	var taken int64
	var poseX, poseY, poseTheta int32
	var blob []byte
	if err := row.Scan(&taken, &poseX, &poseY, &poseTheta, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: loading latest snapshot for run %s: %w", runID, err)
	}
	segments, err := decodeSegments(blob)
	if err != nil {
		return nil, fmt.Errorf("store: decoding snapshot for run %s: %w", runID, err)
	}
	return &Snapshot{
		TakenUnixNanos: taken,
		Pose: slam.Pose{
			Position: slam.Point{X: poseX, Y: poseY},
			Theta:    slam.Angle16(poseTheta),
		},
		Segments: segments,
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeSegments(segments []slam.Segment) []byte {
	buf := make([]byte, len(segments)*segmentWireSize)
	for i, seg := range segments {
		off := i * segmentWireSize
		binary.LittleEndian.PutUint32(buf[off:], uint32(seg.A.X))
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(seg.A.Y))
		binary.LittleEndian.PutUint32(buf[off+8:], uint32(seg.B.X))
		binary.LittleEndian.PutUint32(buf[off+12:], uint32(seg.B.Y))
	}
	return buf
}

func decodeSegments(blob []byte) ([]slam.Segment, error) {
	if len(blob)%segmentWireSize != 0 {
		return nil, fmt.Errorf("segment blob length %d not a multiple of %d", len(blob), segmentWireSize)
	}
	n := len(blob) / segmentWireSize
	segments := make([]slam.Segment, n)
	for i := range segments {
		off := i * segmentWireSize
		segments[i] = slam.Segment{
			A: slam.Point{
				X: int32(binary.LittleEndian.Uint32(blob[off:])),
				Y: int32(binary.LittleEndian.Uint32(blob[off+4:])),
			},
			B: slam.Point{
				X: int32(binary.LittleEndian.Uint32(blob[off+8:])),
				Y: int32(binary.LittleEndian.Uint32(blob[off+12:])),
			},
		}
	}
	return segments, nil
}
