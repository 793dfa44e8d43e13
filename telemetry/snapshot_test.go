package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/warren/components"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 42,
		Depth:   3,
		Width:   4,
		Tick:    1000,
		Organisms: []OrganismState{
			{ID: 1, Kind: components.KindFox, Row: 0, Col: 1, Age: 20, FoodLevel: 5, Rooted: true,
				Lifetime: &LifetimeStats{BirthTick: 980, Children: 1, Kills: 2}},
			{ID: 2, Kind: components.KindRabbit, Row: 2, Col: 3, Age: 4, Rooted: true},
			{ID: 3, Kind: components.KindPlant, Row: 0, Col: 1},
		},
		Bookmark: &Bookmark{Type: BookmarkRabbitCrash, Tick: 1000, Description: "crash"},
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	want := sampleSnapshot()
	path, err := SaveSnapshot(want, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if got.RNGSeed != 42 || got.Tick != 1000 || got.Depth != 3 || got.Width != 4 {
		t.Errorf("header = seed %d tick %d %dx%d", got.RNGSeed, got.Tick, got.Depth, got.Width)
	}
	if len(got.Organisms) != len(want.Organisms) {
		t.Fatalf("%d organisms, want %d", len(got.Organisms), len(want.Organisms))
	}
	for i, w := range want.Organisms {
		g := got.Organisms[i]
		if g.ID != w.ID || g.Kind != w.Kind || g.Location() != w.Location() || g.Rooted != w.Rooted {
			t.Errorf("organism %d = %+v, want %+v", i, g, w)
		}
	}
	fox := got.Organisms[0]
	if fox.FoodLevel != 5 || fox.Lifetime == nil || fox.Lifetime.Kills != 2 || fox.Lifetime.BirthTick != 980 {
		t.Errorf("fox = %+v", fox)
	}
	if got.Organisms[1].Lifetime != nil {
		t.Error("rabbit gained a lifetime record")
	}
	if got.Bookmark == nil || got.Bookmark.Type != BookmarkRabbitCrash {
		t.Errorf("bookmark = %+v", got.Bookmark)
	}
	if c := got.Census(); c != [3]int{1, 1, 1} {
		t.Errorf("Census = %v, want one of each", c)
	}
}

func TestSnapshot_KindWrittenByName(t *testing.T) {
	path, err := SaveSnapshot(&Snapshot{
		Version:   SnapshotVersion,
		Organisms: []OrganismState{{ID: 7, Kind: components.KindRabbit, Rooted: true}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"kind": "Rabbit"`) {
		t.Errorf("kind not written by name:\n%s", data)
	}
}

func TestSnapshot_FileName(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"plain", Snapshot{Tick: 3000}, "snapshot_3000.json"},
		{"bookmarked", Snapshot{Tick: 5000, Bookmark: &Bookmark{Type: BookmarkFoxExtinction}}, "snapshot_5000_fox_extinction.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.FileName(); got != tt.want {
				t.Errorf("FileName = %q, want %q", got, tt.want)
			}
			dir := t.TempDir()
			tt.snap.Version = SnapshotVersion
			path, err := SaveSnapshot(&tt.snap, dir)
			if err != nil {
				t.Fatalf("SaveSnapshot: %v", err)
			}
			if path != filepath.Join(dir, tt.want) {
				t.Errorf("path = %s", path)
			}
		})
	}
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	for name, path := range map[string]string{
		"missing": filepath.Join(dir, "nope.json"),
		"version": write("old.json", `{"version": 99, "organisms": []}`),
		"garbage": write("bad.json", `{"version":`),
	} {
		if _, err := LoadSnapshot(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
