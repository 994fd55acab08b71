package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pthm-cable/ecosystem/config"
	"github.com/pthm-cable/ecosystem/world"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

var (
	// ErrSerializationDisabled is returned when snapshots are turned off in config.
	ErrSerializationDisabled = errors.New("serialization disabled")
	// ErrSnapshotVersion is returned when loading a snapshot of another format version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)

// Snapshot holds the persistent state of one run at one tick.
type Snapshot struct {
	Version int       `json:"version"`
	RunID   uuid.UUID `json:"run_id"`
	RNGSeed int64     `json:"rng_seed"`

	WorldWidth  float32 `json:"world_width"`
	WorldHeight float32 `json:"world_height"`

	Tick int32 `json:"tick"`

	Entities []world.EntityState `json:"entities"`
}

// NewSnapshot captures s at tick.
func NewSnapshot(s *world.Store, runID uuid.UUID, seed int64, tick int32) *Snapshot {
	cfg := s.Config()
	return &Snapshot{
		Version:     SnapshotVersion,
		RunID:       runID,
		RNGSeed:     seed,
		WorldWidth:  cfg.Derived.WorldW32,
		WorldHeight: cfg.Derived.WorldH32,
		Tick:        tick,
		Entities:    s.Capture(),
	}
}

// SaveSnapshot writes a snapshot to dir and returns its path.
// It fails with ErrSerializationDisabled when cfg turns serialization off.
func SaveSnapshot(cfg *config.Config, snapshot *Snapshot, dir string) (string, error) {
	if !cfg.Serialization.Enabled {
		return "", ErrSerializationDisabled
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d.json", snapshot.Tick)
	if snapshot.RunID != uuid.Nil {
		name = fmt.Sprintf("snapshot_%s_%d.json", snapshot.RunID, snapshot.Tick)
	}
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
