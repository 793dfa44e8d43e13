package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pthm-cable/warren/components"
)

// SnapshotVersion is bumped whenever the file layout changes.
const SnapshotVersion = 1

// Snapshot is the full grid occupancy at one step, written as JSON.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Depth   int   `json:"depth"`
	Width   int   `json:"width"`
	Tick    int   `json:"tick"`

	Organisms []OrganismState `json:"organisms"` // master list order
	Bookmark  *Bookmark       `json:"bookmark,omitempty"`
}

// OrganismState is one live organism.
type OrganismState struct {
	ID        uint32          `json:"id"`
	Kind      components.Kind `json:"kind"`
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	Age       int             `json:"age,omitempty"`
	FoodLevel int             `json:"food_level,omitempty"`
	Rooted    bool            `json:"rooted"` // false for dormant seedlings

	Lifetime *LifetimeStats `json:"lifetime,omitempty"` // animals only
}

// Location returns the organism's cell.
func (o OrganismState) Location() components.Location {
	return components.NewLocation(o.Row, o.Col)
}

// Census counts organisms per kind. Dormant seedlings count as plants.
func (s *Snapshot) Census() (n [3]int) {
	for _, o := range s.Organisms {
		n[o.Kind]++
	}
	return n
}

// FileName is snapshot_<tick>.json, with the bookmark type appended when
// the snapshot was taken for one.
func (s *Snapshot) FileName() string {
	var b strings.Builder
	b.WriteString("snapshot_")
	b.WriteString(strconv.Itoa(s.Tick))
	if s.Bookmark != nil {
		b.WriteByte('_')
		b.WriteString(strings.ReplaceAll(string(s.Bookmark.Type), " ", "_"))
	}
	b.WriteString(".json")
	return b.String()
}

// SaveSnapshot writes s into dir, creating it if needed, and returns the
// file path.
func SaveSnapshot(s *Snapshot, dir string) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}
	path = filepath.Join(dir, s.FileName())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot. Files from other
// format versions are rejected.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var s Snapshot
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported version %d", path, s.Version)
	}
	return &s, nil
}
