package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation step.
type Phase uint8

const (
	PhaseAct       Phase = iota // every organism applies its rule
	PhaseReconcile              // dead plants regrow, dead animals leave
	PhaseBirths                 // newborns join the organism list
	PhaseTelemetry              // window flush, output, bookmarks

	phaseCount
)

var phaseNames = [phaseCount]string{"act", "reconcile", "births", "telemetry"}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// phaseTimes holds one duration per phase.
type phaseTimes [phaseCount]time.Duration

// stepSample is the timing of a single step.
type stepSample struct {
	total  time.Duration
	phases phaseTimes
}

// PerfCollector times steps and their phases over a rolling window of the
// most recent steps. Only one phase runs at a time: starting a phase ends
// the previous one.
type PerfCollector struct {
	now func() time.Time

	ring  []stepSample
	next  int
	count int

	// step in progress
	current    stepSample
	stepStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// graphics mode
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize
// steps. Non-positive sizes fall back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:  now,
		ring: make([]stepSample, windowSize),
	}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.stepStart = p.now()
	p.current = stepSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	t := p.now()
	p.endPhase(t)
	p.phase = phase
	p.phaseStart = t
	p.inPhase = true
}

// EndTick ends the running phase and stores the step in the window.
func (p *PerfCollector) EndTick() {
	t := p.now()
	p.endPhase(t)
	p.current.total = t.Sub(p.stepStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

func (p *PerfCollector) endPhase(t time.Time) {
	if p.inPhase && p.phase < phaseCount {
		p.current.phases[p.phase] += t.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	t := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = t.Sub(p.lastFrame)
	}
	p.lastFrame = t
}

// PerfStats summarizes the steps in the window.
type PerfStats struct {
	Steps int // steps in the window

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Indexed by Phase
	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the window. Frame timing is reported even before the
// first step.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Steps: p.count, FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phases phaseTimes
	for i, sample := range p.ring[:p.count] {
		total += sample.total
		if i == 0 || sample.total < s.MinTickDuration {
			s.MinTickDuration = sample.total
		}
		if sample.total > s.MaxTickDuration {
			s.MaxTickDuration = sample.total
		}
		for ph, d := range sample.phases {
			phases[ph] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for ph, d := range phases {
		s.PhaseAvg[ph] = d / n
		if total > 0 {
			s.PhasePct[ph] = float64(d) / float64(total) * 100
		}
	}
	return s
}

// LogStats logs the timings at Info.
func (s PerfStats) LogStats() {
	slog.Info("perf", "timings", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("steps", s.Steps),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < phaseCount; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	ActPct       float64 `csv:"act_pct"`
	ReconcilePct float64 `csv:"reconcile_pct"`
	BirthsPct    float64 `csv:"births_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row for the window ending at
// windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		ActPct:       s.PhasePct[PhaseAct],
		ReconcilePct: s.PhasePct[PhaseReconcile],
		BirthsPct:    s.PhasePct[PhaseBirths],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
