package telemetry

import "github.com/pthm-cable/ecosystem/organisms"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	spawns       int
	deaths       int
	decays       int
	moves        int
	rests        int
	refusedMoves int
	collisions   int
	energySpent  float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventSpawn:
		c.spawns++
	case EventDeath:
		c.deaths++
	case EventDecay:
		c.decays++
	case EventMove:
		c.moves++
		c.energySpent += float64(ev.Amount)
	case EventRest:
		c.rests++
	case EventRefusedMove:
		c.refusedMoves++
	case EventCollision:
		c.collisions++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the window's counters and census, then
// resets counters for the next window.
func (c *Collector) Flush(currentTick int32, census Census) WindowStats {
	var moveRate float64
	if acted := c.moves + c.rests; acted > 0 {
		moveRate = float64(c.moves) / float64(acted)
	}

	blueMean, blueP10, blueP50, blueP90 := ComputeRatioStats(census.energy(organisms.Blue))
	redMean, redP10, redP50, redP90 := ComputeRatioStats(census.energy(organisms.Red))

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		BlueCount:  census.Count(organisms.Blue),
		RedCount:   census.Count(organisms.Red),
		PlantCount: census.Count(organisms.Plant),
		Corpses:    census.Corpses,

		Spawns:       c.spawns,
		Deaths:       c.deaths,
		Decays:       c.decays,
		Moves:        c.moves,
		Rests:        c.rests,
		RefusedMoves: c.refusedMoves,
		Collisions:   c.collisions,
		MoveRate:     moveRate,
		EnergySpent:  c.energySpent,

		BlueEnergyMean: blueMean,
		BlueEnergyP10:  blueP10,
		BlueEnergyP50:  blueP50,
		BlueEnergyP90:  blueP90,

		RedEnergyMean: redMean,
		RedEnergyP10:  redP10,
		RedEnergyP50:  redP50,
		RedEnergyP90:  redP90,

		BlueHealthMean:  meanOrZero(census.health(organisms.Blue)),
		RedHealthMean:   meanOrZero(census.health(organisms.Red)),
		PlantHealthMean: meanOrZero(census.health(organisms.Plant)),
	}

	c.windowStartTick = currentTick
	c.spawns = 0
	c.deaths = 0
	c.decays = 0
	c.moves = 0
	c.rests = 0
	c.refusedMoves = 0
	c.collisions = 0
	c.energySpent = 0

	return stats
}

// ResetWindow starts a new window at tick, discarding any counted events.
func (c *Collector) ResetWindow(tick int32) {
	c.Flush(tick, Census{})
}

// WindowStartTick returns the tick the current window began at.
func (c *Collector) WindowStartTick() int32 {
	return c.windowStartTick
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
