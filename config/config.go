// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Boids      BoidsConfig      `yaml:"boids"`
	Population PopulationConfig `yaml:"population"`
	Engine     EngineConfig     `yaml:"engine"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"` // 0 = uncapped
}

// WorldConfig holds simulation world dimensions.
// World can differ from the screen; 0 means "use screen size".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BoidsConfig holds the steering parameters.
// All values are plain run-time inputs; none of them has a canonical
// "correct" default.
type BoidsConfig struct {
	Size             float64 `yaml:"size"`              // Drawn triangle size in pixels
	MaxSpeed         float64 `yaml:"max_speed"`         // Speed cap, world units per second
	MaxForce         float64 `yaml:"max_force"`         // Per-rule steering force cap
	PerceptionRadius float64 `yaml:"perception_radius"` // Alignment/cohesion neighbor radius
	SeparationRadius float64 `yaml:"separation_radius"` // Separation neighbor radius
	Attraction       bool    `yaml:"attraction"`        // Enable point attraction toward the per-tick target
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
	Step    int `yaml:"step"` // Grow/shrink amount per host request
}

// EngineConfig selects and tunes the execution strategy.
// Partition is a throughput knob only: both layouts produce identical
// simulation output.
type EngineConfig struct {
	Strategy     string `yaml:"strategy"`       // "scalar" (chunked parallel) or "lane" (SoA batches)
	Workers      int    `yaml:"workers"`        // 0 = GOMAXPROCS
	MinChunkSize int    `yaml:"min_chunk_size"` // Minimum indices per parallel task
	Partition    string `yaml:"partition"`      // "contiguous" or "strided"
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Ticks per perf aggregation window
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines (headless)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32     float32 // Effective world width as float32
	WorldH32     float32 // Effective world height as float32
	MaxSpeed32   float32
	MaxForce32   float32
	Perception32 float32
	Separation32 float32
	BoidSize32   float32
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	switch c.Engine.Strategy {
	case "scalar", "lane":
	default:
		return fmt.Errorf("config: unknown engine strategy %q", c.Engine.Strategy)
	}
	switch c.Engine.Partition {
	case "contiguous", "strided":
	default:
		return fmt.Errorf("config: unknown partition layout %q", c.Engine.Partition)
	}
	if c.Population.Initial < 0 {
		return fmt.Errorf("config: negative initial population %d", c.Population.Initial)
	}
	if c.Boids.MaxSpeed <= 0 {
		return fmt.Errorf("config: max_speed must be positive, got %v", c.Boids.MaxSpeed)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	c.Derived.MaxSpeed32 = float32(c.Boids.MaxSpeed)
	c.Derived.MaxForce32 = float32(c.Boids.MaxForce)
	c.Derived.Perception32 = float32(c.Boids.PerceptionRadius)
	c.Derived.Separation32 = float32(c.Boids.SeparationRadius)
	c.Derived.BoidSize32 = float32(c.Boids.Size)
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
