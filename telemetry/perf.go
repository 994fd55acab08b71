package telemetry

import (
	"log/slog"
	"time"
)

// Pipeline phases, in the order Pipeline.Step runs them. The spatial grid
// phase covers both rebuilds.
const (
	PhaseSpatialGrid = "spatial_grid"
	PhasePerception  = "perception"
	PhaseDecision    = "decision"
	PhaseAction      = "action"
	PhaseCollision   = "collision"
	PhaseVitality    = "vitality"
)

// Phases is the column order used in logs and perf.csv.
var Phases = []string{
	PhaseSpatialGrid, PhasePerception, PhaseDecision,
	PhaseAction, PhaseCollision, PhaseVitality,
}

// PerfSample is the wall time of one observation cycle, split by phase.
type PerfSample struct {
	CycleDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector keeps the last windowSize cycle samples in a ring buffer.
// Not safe for concurrent use; the pipeline drives it from one goroutine.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	cycleStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector returns a collector over windowSize cycles (60 if < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartCycle resets the phase totals and starts the cycle clock.
func (p *PerfCollector) StartCycle() {
	p.cycleStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase charges the time since the previous mark to the running phase
// and switches to phase. Re-entering a phase adds to its total.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndCycle closes the running phase and stores the sample, overwriting the
// oldest one once the window is full.
func (p *PerfCollector) EndCycle() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		CycleDuration: now.Sub(p.cycleStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats summarises the samples currently in the window.
type PerfStats struct {
	AvgCycleDuration time.Duration
	MinCycleDuration time.Duration
	MaxCycleDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average cycle, 0..100

	CyclesPerSecond float64
}

// Stats averages the stored samples. An empty window yields zero durations
// and empty, non-nil maps.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, minCycle, maxCycle time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.CycleDuration

		if i == 0 || s.CycleDuration < minCycle {
			minCycle = s.CycleDuration
		}
		if s.CycleDuration > maxCycle {
			maxCycle = s.CycleDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgCycleDuration: avg,
		MinCycleDuration: minCycle,
		MaxCycleDuration: maxCycle,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		CyclesPerSecond:  perSec,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_cycle_us", s.AvgCycleDuration.Microseconds()),
		slog.Int64("min_cycle_us", s.MinCycleDuration.Microseconds()),
		slog.Int64("max_cycle_us", s.MaxCycleDuration.Microseconds()),
		slog.Float64("cycles_per_sec", s.CyclesPerSecond),
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the phase timings to l, or to slog's default logger when l is nil.
func (s PerfStats) LogStats(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	l.Info("perf", "cycle", s)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Tick           int32   `csv:"tick"`
	AvgCycleUS     int64   `csv:"avg_cycle_us"`
	MinCycleUS     int64   `csv:"min_cycle_us"`
	MaxCycleUS     int64   `csv:"max_cycle_us"`
	CyclesPerSec   float64 `csv:"cycles_per_sec"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	PerceptionPct  float64 `csv:"perception_pct"`
	DecisionPct    float64 `csv:"decision_pct"`
	ActionPct      float64 `csv:"action_pct"`
	CollisionPct   float64 `csv:"collision_pct"`
	VitalityPct    float64 `csv:"vitality_pct"`
}

// ToCSV flattens s into a perf.csv row stamped with tick.
func (s PerfStats) ToCSV(tick int32) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:           tick,
		AvgCycleUS:     s.AvgCycleDuration.Microseconds(),
		MinCycleUS:     s.MinCycleDuration.Microseconds(),
		MaxCycleUS:     s.MaxCycleDuration.Microseconds(),
		CyclesPerSec:   s.CyclesPerSecond,
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		PerceptionPct:  s.PhasePct[PhasePerception],
		DecisionPct:    s.PhasePct[PhaseDecision],
		ActionPct:      s.PhasePct[PhaseAction],
		CollisionPct:   s.PhasePct[PhaseCollision],
		VitalityPct:    s.PhasePct[PhaseVitality],
	}
}
