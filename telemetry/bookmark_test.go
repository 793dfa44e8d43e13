package telemetry

import (
	"testing"

	"github.com/pthm-cable/warren/config"
)

func testBookmarks() config.BookmarksConfig {
	return config.Default().Bookmarks
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Extinctions(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks())

	bd.Check(WindowStats{WindowEndTick: 50, Foxes: 4, Rabbits: 100})

	bookmarks := bd.Check(WindowStats{WindowEndTick: 100, Foxes: 0, Rabbits: 120})
	if !hasBookmark(bookmarks, BookmarkFoxExtinction) {
		t.Error("expected fox_extinction bookmark")
	}
	if hasBookmark(bookmarks, BookmarkRabbitExtinction) {
		t.Error("unexpected rabbit_extinction bookmark")
	}

	// Reported once while the species stays gone
	bookmarks = bd.Check(WindowStats{WindowEndTick: 150, Foxes: 0, Rabbits: 0})
	if hasBookmark(bookmarks, BookmarkFoxExtinction) {
		t.Error("fox_extinction reported twice")
	}
	if !hasBookmark(bookmarks, BookmarkRabbitExtinction) {
		t.Error("expected rabbit_extinction bookmark")
	}
}

func TestBookmarkDetector_RabbitCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks())

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 50, Rabbits: 100, Foxes: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Rabbits: 50, Foxes: 10})
	if !hasBookmark(bookmarks, BookmarkRabbitCrash) {
		t.Error("expected rabbit_crash bookmark")
	}

	// A small dip below the drop threshold is not a crash
	bd = NewBookmarkDetector(10, testBookmarks())
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 50, Rabbits: 100, Foxes: 10})
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 300, Rabbits: 85, Foxes: 10}), BookmarkRabbitCrash) {
		t.Error("unexpected rabbit_crash for a 15% dip")
	}
}

func TestBookmarkDetector_FoxRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks())

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 50, Rabbits: 100, Foxes: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 200, Rabbits: 100, Foxes: 10})
	if !hasBookmark(bookmarks, BookmarkFoxRecovery) {
		t.Error("expected fox_recovery bookmark")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	cfg := testBookmarks()
	bd := NewBookmarkDetector(10, cfg)

	triggered := 0
	for i := 0; i < 12; i++ {
		stats := WindowStats{
			WindowEndTick: i * 50,
			Rabbits:       100 + i%2,
			Foxes:         20,
		}
		if hasBookmark(bd.Check(stats), BookmarkStableEcosystem) {
			triggered++
		}
	}

	if triggered != 1 {
		t.Errorf("stable_ecosystem triggered %d times, want 1", triggered)
	}
}

func TestBookmarkDetector_StableRequiresBothSpecies(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks())

	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(WindowStats{WindowEndTick: i * 50, Rabbits: 100, Foxes: 1}), BookmarkStableEcosystem) {
			t.Fatal("stable_ecosystem triggered with too few foxes")
		}
	}
}
