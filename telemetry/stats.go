package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end (living organisms)
	BlueCount  int `csv:"blue"`
	RedCount   int `csv:"red"`
	PlantCount int `csv:"plant"`
	Corpses    int `csv:"corpses"`

	// Events during window
	Spawns       int     `csv:"spawns"`
	Deaths       int     `csv:"deaths"`
	Decays       int     `csv:"decays"`
	Moves        int     `csv:"moves"`
	Rests        int     `csv:"rests"`
	RefusedMoves int     `csv:"refused_moves"`
	Collisions   int     `csv:"collisions"`
	MoveRate     float64 `csv:"move_rate"` // moves / (moves + rests)
	EnergySpent  float64 `csv:"energy_spent"`

	// Energy ratio distribution (sampled at window end)
	BlueEnergyMean float64 `csv:"blue_energy_mean"`
	BlueEnergyP10  float64 `csv:"blue_energy_p10"`
	BlueEnergyP50  float64 `csv:"blue_energy_p50"`
	BlueEnergyP90  float64 `csv:"blue_energy_p90"`

	RedEnergyMean float64 `csv:"red_energy_mean"`
	RedEnergyP10  float64 `csv:"red_energy_p10"`
	RedEnergyP50  float64 `csv:"red_energy_p50"`
	RedEnergyP90  float64 `csv:"red_energy_p90"`

	// Health ratio means
	BlueHealthMean  float64 `csv:"blue_health_mean"`
	RedHealthMean   float64 `csv:"red_health_mean"`
	PlantHealthMean float64 `csv:"plant_health_mean"`
}

// Percentile returns the p-th quantile of sorted using the empirical CDF.
// p is clamped to [0, 1]. Returns 0 if sorted is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeRatioStats calculates mean and percentiles from ratio samples.
// values is not modified.
func ComputeRatioStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// meanOrZero returns the arithmetic mean, or 0 for no samples.
func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("blue", s.BlueCount),
		slog.Int("red", s.RedCount),
		slog.Int("plant", s.PlantCount),
		slog.Int("corpses", s.Corpses),
		slog.Int("spawns", s.Spawns),
		slog.Int("deaths", s.Deaths),
		slog.Int("decays", s.Decays),
		slog.Int("moves", s.Moves),
		slog.Int("rests", s.Rests),
		slog.Int("refused_moves", s.RefusedMoves),
		slog.Int("collisions", s.Collisions),
		slog.Float64("move_rate", s.MoveRate),
		slog.Float64("energy_spent", s.EnergySpent),
		slog.Float64("blue_energy_mean", s.BlueEnergyMean),
		slog.Float64("blue_energy_p50", s.BlueEnergyP50),
		slog.Float64("red_energy_mean", s.RedEnergyMean),
		slog.Float64("red_energy_p50", s.RedEnergyP50),
		slog.Float64("blue_health_mean", s.BlueHealthMean),
		slog.Float64("red_health_mean", s.RedHealthMean),
		slog.Float64("plant_health_mean", s.PlantHealthMean),
	)
}

// LogStats logs the window stats to l, or to slog's default logger when l is nil.
func (s WindowStats) LogStats(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	l.Info("stats", "window", s)
}
