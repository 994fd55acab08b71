package telemetry

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/ecosystem/components"
	"github.com/pthm-cable/ecosystem/config"
	"github.com/pthm-cable/ecosystem/organisms"
	"github.com/pthm-cable/ecosystem/world"
)

func TestPercentile(t *testing.T) {
	tens := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p10", tens, 0.1, 1},
		{"p50", tens, 0.5, 5},
		{"p90", tens, 0.9, 9},
		{"p above range", tens, 1.5, 10},
		{"p below range", tens, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeRatioStats(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	mean, p10, p50, p90 := ComputeRatioStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.1) > 0.001 {
		t.Errorf("p10 = %v, want 0.1", p10)
	}
	if math.Abs(p50-0.5) > 0.001 {
		t.Errorf("p50 = %v, want 0.5", p50)
	}
	if math.Abs(p90-0.9) > 0.001 {
		t.Errorf("p90 = %v, want 0.9", p90)
	}
	if values[0] != 1.0 {
		t.Error("input slice was reordered")
	}
}

func TestComputeRatioStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeRatioStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestTakeCensus(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	s := world.New(cfg)

	a := s.Spawn(organisms.Blue, components.Position{})
	s.Spawn(organisms.Blue, components.Position{})
	s.Spawn(organisms.Red, components.Position{})
	dead := s.Spawn(organisms.Plant, components.Position{})
	s.Energy(a).SetCurrent(0)
	s.Kill(dead)

	c := TakeCensus(s)
	if c.Count(organisms.Blue) != 2 || c.Count(organisms.Red) != 1 || c.Count(organisms.Plant) != 0 {
		t.Errorf("Counts = %v", c.Counts)
	}
	if c.Corpses != 1 {
		t.Errorf("Corpses = %d, want 1", c.Corpses)
	}
	if c.Total() != 3 {
		t.Errorf("Total() = %d, want 3", c.Total())
	}
	if got := meanOrZero(c.EnergyRatios[organisms.Blue]); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("blue energy mean = %v, want 0.5", got)
	}
	if c.Count(organisms.OrganismType(7)) != 0 {
		t.Error("unknown type should count zero")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.5)
	if c.WindowDurationTicks() != 2 {
		t.Fatalf("WindowDurationTicks() = %d, want 2", c.WindowDurationTicks())
	}

	c.Record(NewSpawnEvent(1, organisms.Blue))
	c.Record(NewMoveEvent(1, organisms.Blue, 0.5))
	c.Record(NewMoveEvent(1, organisms.Blue, 0.5))
	c.Record(NewRestEvent(2, organisms.Red))
	c.Record(NewRestEvent(2, organisms.Red))
	c.Record(NewRefusedMoveEvent(2, organisms.Red))
	c.Record(NewCollisionEvent(1, 2, organisms.Blue, 3))
	c.Record(NewDeathEvent(2, organisms.Red))

	if c.ShouldFlush(1) {
		t.Error("window should not be complete after 1 tick")
	}
	if !c.ShouldFlush(2) {
		t.Error("window should be complete after 2 ticks")
	}

	census := Census{
		Counts:       []int{1, 0, 3},
		EnergyRatios: [][]float64{{0.25}, nil, nil},
		HealthRatios: [][]float64{{1}, nil, {0.5, 0.5, 1}},
	}
	stats := c.Flush(2, census)

	if stats.Spawns != 1 || stats.Deaths != 1 || stats.Moves != 2 || stats.Rests != 2 ||
		stats.RefusedMoves != 1 || stats.Collisions != 1 {
		t.Errorf("counters = %+v", stats)
	}
	if stats.MoveRate != 0.5 {
		t.Errorf("MoveRate = %v, want 0.5", stats.MoveRate)
	}
	if stats.EnergySpent != 1 {
		t.Errorf("EnergySpent = %v, want 1", stats.EnergySpent)
	}
	if stats.SimTimeSec != 1 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}
	if stats.BlueCount != 1 || stats.PlantCount != 3 {
		t.Errorf("population = %d blue %d plant", stats.BlueCount, stats.PlantCount)
	}
	if stats.BlueEnergyMean != 0.25 || stats.RedEnergyMean != 0 {
		t.Errorf("energy means = %v, %v", stats.BlueEnergyMean, stats.RedEnergyMean)
	}
	if math.Abs(stats.PlantHealthMean-2.0/3.0) > 1e-9 {
		t.Errorf("PlantHealthMean = %v", stats.PlantHealthMean)
	}

	next := c.Flush(4, Census{})
	if next.WindowStartTick != 2 || next.Moves != 0 || next.EnergySpent != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker(0.5)

	spawn := NewSpawnEvent(7, organisms.Red)
	spawn.Tick = 10
	lt.Record(spawn)
	lt.Record(NewMoveEvent(7, organisms.Red, 2))
	lt.Record(NewRestEvent(7, organisms.Red))
	lt.Record(NewCollisionEvent(3, 7, organisms.Blue, 1))
	lt.Record(NewRestEvent(99, organisms.Blue)) // untracked

	if got := lt.Get(7); got == nil || got.Moves != 1 || got.Rests != 1 || got.Collisions != 1 || got.EnergySpent != 2 {
		t.Fatalf("Get(7) = %+v", got)
	}

	death := NewDeathEvent(7, organisms.Red)
	death.Tick = 30
	final := lt.Record(death)
	if final == nil {
		t.Fatal("death should return final stats")
	}
	if final.SurvivalTimeSec != 10 {
		t.Errorf("SurvivalTimeSec = %v, want 10", final.SurvivalTimeSec)
	}
	if lt.Count() != 0 {
		t.Errorf("Count() = %d after death, want 0", lt.Count())
	}
}

func TestOutputManager(t *testing.T) {
	if om, err := NewOutputManager(""); om != nil || err != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	var disabled *OutputManager
	if err := disabled.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager should ignore writes: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for tick := int32(1); tick <= 3; tick++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: tick, BlueCount: 5}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 3); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,blue,red,plant") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestLogStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WindowStats{WindowEndTick: 5, BlueCount: 3, MoveRate: 0.5}.LogStats(logger)
	NewPerfCollector(4).Stats().LogStats(logger)

	out := buf.String()
	for _, want := range []string{`"msg":"stats"`, `"window_end":5`, `"blue":3`, `"move_rate":0.5`, `"msg":"perf"`, `"avg_cycle_us":0`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
