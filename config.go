package hop

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akmonengine/hop/actor"
	"github.com/akmonengine/hop/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Mode selects how the ground contact is resolved
type Mode string

const (
	// ModeImpulse bounces the body with its restitution until it rests on the floor
	ModeImpulse Mode = "impulse"
	// ModeFriction damps the bounce with a growing friction impulse
	ModeFriction Mode = "friction"
)

// JumpPolicy selects when the jump trigger is cleared
type JumpPolicy string

const (
	// PolicyStabilize keeps the trigger set until the bounce is over
	PolicyStabilize JumpPolicy = "stabilize"
	// PolicyConsume clears the trigger as soon as the jump starts,
	// releasing the key cuts the jump short
	PolicyConsume JumpPolicy = "consume"
)

const (
	DEFAULT_STEP          = 0.1
	DEFAULT_INTERVAL      = 10 * time.Millisecond
	DEFAULT_MASS          = 1.0
	DEFAULT_RESTITUTION   = 0.8
	DEFAULT_TAKEOFF_SPEED = 20.0
	DEFAULT_REST_SPEED    = 1.0
	DEFAULT_GROUND_HEIGHT = 0.01

	// FLOOR_HEIGHT is the lowest height the body can reach
	FLOOR_HEIGHT = 0.0
)

// Config holds the immutable parameters of a Simulation
type Config struct {
	// Fixed integration step, never derived from wall-clock time
	Step float64
	// Host timer period between two ticks
	Interval time.Duration

	// Gravity acceleration (units/s²)
	Gravity     mgl64.Vec3
	Mass        float64
	Restitution float64 // 0= perfectly inelastic, 1= perfectly elastic

	// Vertical speed given to the body when a jump starts from the floor
	TakeoffSpeed float64
	// A rebound slower than RestSpeed on the floor ends the bounce
	RestSpeed float64
	Start     mgl64.Vec3

	Ground        actor.Plane
	ContactRadius float64

	Mode       Mode
	JumpPolicy JumpPolicy

	FrictionIncrement float64
	RestartVelocity   mgl64.Vec3
}

// DefaultConfig returns the parameters of the camera jump
func DefaultConfig() Config {
	return Config{
		Step:              DEFAULT_STEP,
		Interval:          DEFAULT_INTERVAL,
		Gravity:           mgl64.Vec3{0, -9.8, 0},
		Mass:              DEFAULT_MASS,
		Restitution:       DEFAULT_RESTITUTION,
		TakeoffSpeed:      DEFAULT_TAKEOFF_SPEED,
		RestSpeed:         DEFAULT_REST_SPEED,
		Start:             mgl64.Vec3{0, 0, 0},
		Ground:            actor.NewGroundPlane(DEFAULT_GROUND_HEIGHT),
		ContactRadius:     constraint.ContactRadius,
		Mode:              ModeImpulse,
		JumpPolicy:        PolicyStabilize,
		FrictionIncrement: constraint.DefaultFrictionIncrement,
		RestartVelocity:   constraint.DefaultRestartVelocity,
	}
}

// Validate rejects out of range parameters, they must never be discovered mid-simulation
func (c Config) Validate() error {
	switch {
	case !finite(c.Step) || c.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidConfig, c.Step)
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, c.Interval)
	case !finiteVec(c.Gravity) || c.Gravity.Y() >= 0:
		return fmt.Errorf("%w: gravity must point down, got %v", ErrInvalidConfig, c.Gravity)
	case !finite(c.Mass) || c.Mass <= 0:
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidConfig, c.Mass)
	case !(c.Restitution >= 0 && c.Restitution <= 1):
		return fmt.Errorf("%w: restitution must be in [0,1], got %v", ErrInvalidConfig, c.Restitution)
	case !finite(c.TakeoffSpeed) || c.TakeoffSpeed < 0:
		return fmt.Errorf("%w: takeoff speed must not be negative, got %v", ErrInvalidConfig, c.TakeoffSpeed)
	// A zero rest speed never rests a body stopped on the floor
	case !finite(c.RestSpeed) || c.RestSpeed <= 0:
		return fmt.Errorf("%w: rest speed must be positive, got %v", ErrInvalidConfig, c.RestSpeed)
	case !finiteVec(c.Start) || c.Start.Y() < FLOOR_HEIGHT:
		return fmt.Errorf("%w: start must be above the floor, got %v", ErrInvalidConfig, c.Start)
	case !finiteVec(c.Ground.Point):
		return fmt.Errorf("%w: ground point must be finite, got %v", ErrInvalidConfig, c.Ground.Point)
	case !finiteVec(c.Ground.Normal) || c.Ground.Normal.X() != 0 || c.Ground.Normal.Z() != 0 || c.Ground.Normal.Y() <= 0:
		return fmt.Errorf("%w: ground normal must point up, got %v", ErrInvalidConfig, c.Ground.Normal)
	case !finite(c.ContactRadius) || c.ContactRadius < 0:
		return fmt.Errorf("%w: contact radius must not be negative, got %v", ErrInvalidConfig, c.ContactRadius)
	case !finite(c.FrictionIncrement) || c.FrictionIncrement <= 0:
		return fmt.Errorf("%w: friction increment must be positive, got %v", ErrInvalidConfig, c.FrictionIncrement)
	case !finiteVec(c.RestartVelocity):
		return fmt.Errorf("%w: restart velocity must be finite, got %v", ErrInvalidConfig, c.RestartVelocity)
	}

	switch c.Mode {
	case ModeImpulse, ModeFriction:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}

	switch c.JumpPolicy {
	case PolicyStabilize, PolicyConsume:
	default:
		return fmt.Errorf("%w: unknown jump policy %q", ErrInvalidConfig, c.JumpPolicy)
	}

	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v.X()) && finite(v.Y()) && finite(v.Z())
}

func (c Config) newResolver() constraint.Resolver {
	if c.Mode == ModeFriction {
		return constraint.NewFrictionResolver(c.ContactRadius, c.FrictionIncrement, c.RestartVelocity)
	}

	return constraint.NewImpulseResolver(c.ContactRadius)
}
