package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warren/config"
)

// BookmarkType names a kind of notable moment.
type BookmarkType string

const (
	BookmarkFoxExtinction    BookmarkType = "fox_extinction"
	BookmarkRabbitExtinction BookmarkType = "rabbit_extinction"
	BookmarkRabbitCrash      BookmarkType = "rabbit_crash"
	BookmarkFoxRecovery      BookmarkType = "fox_recovery"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark marks the window at which something notable happened.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int          `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogValue implements slog.LogValuer.
func (b Bookmark) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(b.Type)),
		slog.Int("tick", b.Tick),
		slog.String("description", b.Description),
	)
}

// minBookmarkHistory is the fewest windows kept, enough for the stability
// check.
const minBookmarkHistory = 5

// stableSpan is how many recent windows the stability check compares.
const stableSpan = 4

// BookmarkDetector watches closed stats windows for extinctions, crashes,
// recoveries and stretches of stable coexistence.
type BookmarkDetector struct {
	cfg     config.BookmarksConfig
	history []WindowStats // oldest first, at most limit long
	limit   int

	foxLow      int // lowest fox count since the last recovery, -1 before any window
	rabbitHigh  int // highest rabbit count since the last crash
	stableRun   int // consecutive stable windows
	foxesGone   bool
	rabbitsGone bool
}

// NewBookmarkDetector keeps historySize windows of history.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	historySize = max(historySize, minBookmarkHistory)
	return &BookmarkDetector{
		cfg:     cfg,
		history: make([]WindowStats, 0, historySize),
		limit:   historySize,
		foxLow:  -1,
	}
}

// Check feeds one closed window to the detector and returns the bookmarks
// it triggers, extinctions first.
func (bd *BookmarkDetector) Check(w WindowStats) []Bookmark {
	out := bd.extinctions(w)

	// Trend rules compare against earlier windows
	if len(bd.history) > 0 {
		for _, rule := range []func(WindowStats) (Bookmark, bool){
			bd.foxRecovery,
			bd.rabbitCrash,
			bd.stableEcosystem,
		} {
			if b, ok := rule(w); ok {
				out = append(out, b)
			}
		}
	}

	if len(bd.history) == bd.limit {
		bd.history = append(bd.history[:0], bd.history[1:]...)
	}
	bd.history = append(bd.history, w)

	if bd.foxLow < 0 || w.Foxes < bd.foxLow {
		bd.foxLow = w.Foxes
	}
	bd.rabbitHigh = max(bd.rabbitHigh, w.Rabbits)
	return out
}

// extinctions reports a species the first window it is at zero. Coming
// back re-arms the report.
func (bd *BookmarkDetector) extinctions(w WindowStats) []Bookmark {
	var out []Bookmark
	report := func(count int, gone *bool, t BookmarkType, desc string) {
		switch {
		case count > 0:
			*gone = false
		case !*gone:
			*gone = true
			out = append(out, Bookmark{Type: t, Tick: w.WindowEndTick, Description: desc})
		}
	}
	report(w.Foxes, &bd.foxesGone, BookmarkFoxExtinction, "Foxes died out")
	report(w.Rabbits, &bd.rabbitsGone, BookmarkRabbitExtinction, "Rabbits died out")
	return out
}

// foxRecovery fires when foxes climb from a low of at most MinPopulation
// to RecoveryMultiplier times that low and at least MinFinal.
func (bd *BookmarkDetector) foxRecovery(w WindowStats) (Bookmark, bool) {
	rc := bd.cfg.FoxRecovery
	low := bd.foxLow
	if low <= 0 || low > rc.MinPopulation {
		return Bookmark{}, false
	}
	if w.Foxes < low*rc.RecoveryMultiplier || w.Foxes < rc.MinFinal {
		return Bookmark{}, false
	}

	bd.foxLow = w.Foxes
	return Bookmark{
		Type:        BookmarkFoxRecovery,
		Tick:        w.WindowEndTick,
		Description: fmt.Sprintf("Fox population recovered from %d to %d", low, w.Foxes),
	}, true
}

// rabbitCrash fires when rabbits fall more than DropPercent and more than
// MinDrop below their running peak.
func (bd *BookmarkDetector) rabbitCrash(w WindowStats) (Bookmark, bool) {
	peak := bd.rabbitHigh
	if peak == 0 {
		return Bookmark{}, false
	}
	cc := bd.cfg.RabbitCrash
	drop := 1 - float64(w.Rabbits)/float64(peak)
	if drop <= cc.DropPercent || w.Rabbits >= peak-cc.MinDrop {
		return Bookmark{}, false
	}

	bd.rabbitHigh = w.Rabbits
	return Bookmark{
		Type:        BookmarkRabbitCrash,
		Tick:        w.WindowEndTick,
		Description: fmt.Sprintf("Rabbits crashed %.0f%% from peak %d to %d", drop*100, peak, w.Rabbits),
	}, true
}

// stableEcosystem fires once per run of StableWindows consecutive windows
// in which both species' counts over the last stableSpan windows vary by
// less than CVThreshold.
func (bd *BookmarkDetector) stableEcosystem(w WindowStats) (Bookmark, bool) {
	sc := bd.cfg.StableEcosystem
	if w.Rabbits < sc.MinRabbits || w.Foxes < sc.MinFoxes {
		bd.stableRun = 0
		return Bookmark{}, false
	}
	if len(bd.history) < stableSpan {
		return Bookmark{}, false
	}

	var rabbits, foxes [stableSpan]float64
	for i, h := range bd.history[len(bd.history)-stableSpan:] {
		rabbits[i], foxes[i] = float64(h.Rabbits), float64(h.Foxes)
	}
	if CoefficientOfVariation(rabbits[:]) < sc.CVThreshold && CoefficientOfVariation(foxes[:]) < sc.CVThreshold {
		bd.stableRun++
	} else {
		bd.stableRun = 0
	}

	if bd.stableRun != sc.StableWindows {
		return Bookmark{}, false
	}
	return Bookmark{
		Type:        BookmarkStableEcosystem,
		Tick:        w.WindowEndTick,
		Description: fmt.Sprintf("Stable ecosystem with %d rabbits, %d foxes over %d+ windows", w.Rabbits, w.Foxes, sc.StableWindows),
	}, true
}
