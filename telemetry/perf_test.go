package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time                 { return c.t }
func (c *fakeClock) advance(d time.Duration)        { c.t = c.t.Add(d) }
func newFakeClock() *fakeClock                      { return &fakeClock{t: time.Unix(1000, 0)} }
func (c *fakeClock) collector(n int) *PerfCollector { return newPerfCollector(n, c.now) }

// runStep times one step with the given phase durations.
func runStep(pc *PerfCollector, clock *fakeClock, act, reconcile, births, tel time.Duration) {
	pc.StartTick()
	for _, p := range []struct {
		phase Phase
		d     time.Duration
	}{
		{PhaseAct, act},
		{PhaseReconcile, reconcile},
		{PhaseBirths, births},
		{PhaseTelemetry, tel},
	} {
		pc.StartPhase(p.phase)
		clock.advance(p.d)
	}
	pc.EndTick()
}

func TestPerfCollector_PhaseBreakdown(t *testing.T) {
	clock := newFakeClock()
	pc := clock.collector(10)

	for i := 0; i < 4; i++ {
		runStep(pc, clock, 700*time.Microsecond, 200*time.Microsecond, 80*time.Microsecond, 20*time.Microsecond)
	}

	s := pc.Stats()
	if s.Steps != 4 {
		t.Errorf("Steps = %d, want 4", s.Steps)
	}
	if s.AvgTickDuration != time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want 1ms", s.AvgTickDuration)
	}
	if s.TicksPerSecond != 1000 {
		t.Errorf("TicksPerSecond = %v, want 1000", s.TicksPerSecond)
	}

	want := map[Phase]float64{PhaseAct: 70, PhaseReconcile: 20, PhaseBirths: 8, PhaseTelemetry: 2}
	for ph, pct := range want {
		if got := s.PhasePct[ph]; got < pct-1e-9 || got > pct+1e-9 {
			t.Errorf("%s pct = %v, want %v", ph, got, pct)
		}
	}
	if s.PhaseAvg[PhaseAct] != 700*time.Microsecond {
		t.Errorf("act avg = %v", s.PhaseAvg[PhaseAct])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	clock := newFakeClock()
	pc := clock.collector(3)

	// Two slow steps fall out of the window
	runStep(pc, clock, 10*time.Millisecond, 0, 0, 0)
	runStep(pc, clock, 10*time.Millisecond, 0, 0, 0)
	for i := 0; i < 3; i++ {
		runStep(pc, clock, time.Millisecond, 0, 0, 0)
	}

	s := pc.Stats()
	if s.Steps != 3 {
		t.Errorf("Steps = %d, want 3", s.Steps)
	}
	if s.MaxTickDuration != time.Millisecond || s.MinTickDuration != time.Millisecond {
		t.Errorf("min/max = %v/%v, want 1ms", s.MinTickDuration, s.MaxTickDuration)
	}
}

func TestPerfCollector_MinMax(t *testing.T) {
	clock := newFakeClock()
	pc := clock.collector(10)

	for _, d := range []time.Duration{3, 1, 5, 2} {
		runStep(pc, clock, d*time.Millisecond, 0, 0, 0)
	}

	s := pc.Stats()
	if s.MinTickDuration != time.Millisecond || s.MaxTickDuration != 5*time.Millisecond {
		t.Errorf("min/max = %v/%v", s.MinTickDuration, s.MaxTickDuration)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := newFakeClock().collector(0)

	s := pc.Stats()
	if s.Steps != 0 || s.AvgTickDuration != 0 || s.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	clock := newFakeClock()
	pc := clock.collector(10)

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("one frame should not yield an FPS")
	}
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	s := pc.Stats()
	if s.FrameDuration != 20*time.Millisecond || s.FPS != 50 {
		t.Errorf("frame = %v, fps = %v", s.FrameDuration, s.FPS)
	}
}

func TestPerfCollector_RealClock(t *testing.T) {
	pc := NewPerfCollector(5)
	pc.StartTick()
	pc.StartPhase(PhaseAct)
	time.Sleep(time.Millisecond)
	pc.EndTick()

	if s := pc.Stats(); s.AvgTickDuration <= 0 || s.PhaseAvg[PhaseAct] <= 0 {
		t.Errorf("real clock stats = %+v", s)
	}
}

func TestPhase_String(t *testing.T) {
	for ph, want := range map[Phase]string{
		PhaseAct: "act", PhaseReconcile: "reconcile", PhaseBirths: "births", PhaseTelemetry: "telemetry", Phase(9): "unknown",
	} {
		if ph.String() != want {
			t.Errorf("Phase(%d) = %q, want %q", ph, ph.String(), want)
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 1500 * time.Microsecond
	s.PhasePct[PhaseAct] = 70
	s.PhasePct[PhaseReconcile] = 20
	s.PhasePct[PhaseBirths] = 8
	s.PhasePct[PhaseTelemetry] = 2

	row := s.ToCSV(300)
	if row.WindowEnd != 300 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.ActPct != 70 || row.ReconcilePct != 20 || row.BirthsPct != 8 || row.TelemetryPct != 2 {
		t.Errorf("phase percentages not carried over: %+v", row)
	}
}
