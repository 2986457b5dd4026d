package config

import (
	"fmt"
	"os"
	"time"

	"github.com/akmonengine/hop"
	"github.com/akmonengine/hop/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Body       BodyConfig       `yaml:"body"`
	Ground     GroundConfig     `yaml:"ground"`
	Friction   FrictionConfig   `yaml:"friction"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type SimulationConfig struct {
	Step       float64       `yaml:"step"`
	Interval   time.Duration `yaml:"interval"`
	Mode       string        `yaml:"mode"`
	JumpPolicy string        `yaml:"jump_policy"`
	Gravity    []float64     `yaml:"gravity"`
}

type BodyConfig struct {
	Mass         float64   `yaml:"mass"`
	Restitution  float64   `yaml:"restitution"`
	TakeoffSpeed float64   `yaml:"takeoff_speed"`
	RestSpeed    float64   `yaml:"rest_speed"`
	Start        []float64 `yaml:"start"`
}

type GroundConfig struct {
	Point         []float64 `yaml:"point"`
	Normal        []float64 `yaml:"normal"`
	ContactRadius float64   `yaml:"contact_radius"`
}

type FrictionConfig struct {
	Increment       float64   `yaml:"increment"`
	RestartVelocity []float64 `yaml:"restart_velocity"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration matching hop.DefaultConfig
func Default() *Config {
	d := hop.DefaultConfig()

	return &Config{
		Simulation: SimulationConfig{
			Step:       d.Step,
			Interval:   d.Interval,
			Mode:       string(d.Mode),
			JumpPolicy: string(d.JumpPolicy),
			Gravity:    d.Gravity[:],
		},
		Body: BodyConfig{
			Mass:         d.Mass,
			Restitution:  d.Restitution,
			TakeoffSpeed: d.TakeoffSpeed,
			RestSpeed:    d.RestSpeed,
			Start:        d.Start[:],
		},
		Ground: GroundConfig{
			Point:         d.Ground.Point[:],
			Normal:        d.Ground.Normal[:],
			ContactRadius: d.ContactRadius,
		},
		Friction: FrictionConfig{
			Increment:       d.FrictionIncrement,
			RestartVelocity: d.RestartVelocity[:],
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults and validates it.
// A missing file is reported with the error of os.ReadFile.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.Hop(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Hop converts the file layout to the simulation configuration, and validates it
func (c *Config) Hop() (hop.Config, error) {
	gravity, err := vec3("simulation.gravity", c.Simulation.Gravity)
	if err != nil {
		return hop.Config{}, err
	}
	start, err := vec3("body.start", c.Body.Start)
	if err != nil {
		return hop.Config{}, err
	}
	point, err := vec3("ground.point", c.Ground.Point)
	if err != nil {
		return hop.Config{}, err
	}
	normal, err := vec3("ground.normal", c.Ground.Normal)
	if err != nil {
		return hop.Config{}, err
	}
	restart, err := vec3("friction.restart_velocity", c.Friction.RestartVelocity)
	if err != nil {
		return hop.Config{}, err
	}

	cfg := hop.Config{
		Step:              c.Simulation.Step,
		Interval:          c.Simulation.Interval,
		Gravity:           gravity,
		Mass:              c.Body.Mass,
		Restitution:       c.Body.Restitution,
		TakeoffSpeed:      c.Body.TakeoffSpeed,
		RestSpeed:         c.Body.RestSpeed,
		Start:             start,
		Ground:            actor.Plane{Point: point, Normal: normal},
		ContactRadius:     c.Ground.ContactRadius,
		Mode:              hop.Mode(c.Simulation.Mode),
		JumpPolicy:        hop.JumpPolicy(c.Simulation.JumpPolicy),
		FrictionIncrement: c.Friction.Increment,
		RestartVelocity:   restart,
	}

	return cfg, cfg.Validate()
}

func vec3(field string, values []float64) (mgl64.Vec3, error) {
	if len(values) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", hop.ErrInvalidConfig, field, len(values))
	}

	return mgl64.Vec3{values[0], values[1], values[2]}, nil
}
