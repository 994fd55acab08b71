// Package config provides configuration loading and access for the ecosystem.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ecosystem/organisms"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all ecosystem configuration parameters.
type Config struct {
	World         WorldConfig         `yaml:"world"`
	Physics       PhysicsConfig       `yaml:"physics"`
	Population    PopulationConfig    `yaml:"population"`
	Species       SpeciesTable        `yaml:"species"`
	Vitality      VitalityConfig      `yaml:"vitality"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Serialization SerializationConfig `yaml:"serialization"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds step parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // seconds per cycle
	GridCellSize float64 `yaml:"grid_cell_size"` // spatial grid cell size
}

// PopulationConfig holds the initial population per organism type.
type PopulationConfig struct {
	Blue  int `yaml:"blue"`
	Red   int `yaml:"red"`
	Plant int `yaml:"plant"`
}

// Initial returns the configured initial count for t.
func (p PopulationConfig) Initial(t organisms.OrganismType) int {
	switch t {
	case organisms.Red:
		return p.Red
	case organisms.Plant:
		return p.Plant
	default:
		return p.Blue
	}
}

// SpeciesConfig holds the attribute template for one organism type.
type SpeciesConfig struct {
	MaxHealth    float64 `yaml:"max_health"`
	MaxEnergy    float64 `yaml:"max_energy"`
	MovementCost float64 `yaml:"movement_cost"` // energy per movement step
	RegenRate    float64 `yaml:"regen_rate"`    // energy per second while resting
	Speed        float64 `yaml:"speed"`         // world units per second
	VisionRange  float64 `yaml:"vision_range"`
	Radius       float64 `yaml:"radius"` // 0 = sprite size
}

// SpeciesTable holds one template per organism type.
type SpeciesTable struct {
	Blue  SpeciesConfig `yaml:"blue"`
	Red   SpeciesConfig `yaml:"red"`
	Plant SpeciesConfig `yaml:"plant"`
}

// VitalityConfig holds starvation and corpse parameters.
type VitalityConfig struct {
	StarvationDamage float64 `yaml:"starvation_damage"` // health lost per second at zero energy
	CorpseDecay      float64 `yaml:"corpse_decay"`      // seconds before a corpse is removed (0 = never)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// SerializationConfig gates snapshot encoding.
type SerializationConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	WorldW32 float32
	WorldH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects configurations no store can be built from.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size %vx%v", ErrInvalid, c.World.Width, c.World.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("%w: physics.dt must be positive, got %v", ErrInvalid, c.Physics.DT)
	}
	if c.Physics.GridCellSize <= 0 {
		return fmt.Errorf("%w: physics.grid_cell_size must be positive, got %v", ErrInvalid, c.Physics.GridCellSize)
	}
	for _, t := range organisms.All() {
		if c.Population.Initial(t) < 0 {
			return fmt.Errorf("%w: negative population for %s", ErrInvalid, t.ShortName())
		}
	}
	return nil
}

// SpeciesFor returns the attribute template for t.
func (c *Config) SpeciesFor(t organisms.OrganismType) SpeciesConfig {
	return *c.species(t)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
}

func (c *Config) species(t organisms.OrganismType) *SpeciesConfig {
	switch t {
	case organisms.Red:
		return &c.Species.Red
	case organisms.Plant:
		return &c.Species.Plant
	default:
		return &c.Species.Blue
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
