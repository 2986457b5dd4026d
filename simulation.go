package hop

import (
	"log/slog"
	"math"

	"github.com/akmonengine/hop/actor"
	"github.com/akmonengine/hop/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

type Phase uint8

const (
	// PhaseIdle: the body rests, nothing moves until a jump is requested
	PhaseIdle Phase = iota
	// PhaseAirborne: a jump is in progress
	PhaseAirborne
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// Simulation owns the state of the camera jump.
// It is advanced by Tick, and is not safe for concurrent use: Jump, Release and Tick
// must be called from the host loop.
type Simulation struct {
	Body   *actor.Body
	Ground actor.Plane
	Camera actor.Camera
	Events Events
	Logger *slog.Logger

	config   Config
	resolver constraint.Resolver

	phase     Phase
	triggered bool
	tick      uint64
	takeoff   uint64
	bounces   int
}

// New validates the configuration and creates a simulation resting at the start position
func New(config Config) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.Ground.Normal = config.Ground.Normal.Normalize()

	s := &Simulation{
		Ground:   config.Ground,
		Camera:   actor.NewCamera(),
		Events:   NewEvents(),
		Logger:   slog.Default(),
		config:   config,
		resolver: config.newResolver(),
	}
	s.Reset()

	return s, nil
}

// Reset puts the body back at rest on its start position, and clears the jump state
func (s *Simulation) Reset() {
	s.Body = actor.NewBody(actor.NewTransform(s.config.Start), actor.NewMaterial(s.config.Mass, s.config.Restitution))
	s.resolver.Reset()
	s.phase = PhaseIdle
	s.triggered = false
	s.tick = 0
	s.takeoff = 0
	s.bounces = 0
}

func (s *Simulation) Config() Config {
	return s.config
}

// Jump requests a jump (key pressed). It is ignored while a jump is in progress.
func (s *Simulation) Jump() {
	if s.phase == PhaseIdle {
		s.triggered = true
	}
}

// Release handles the jump key being released.
// With PolicyConsume the upward motion is cut: the vertical velocity is zeroed.
func (s *Simulation) Release() {
	if s.config.JumpPolicy == PolicyConsume && s.phase == PhaseAirborne {
		s.Body.Stop()
	}
}

func (s *Simulation) Triggered() bool {
	return s.triggered
}

func (s *Simulation) Phase() Phase {
	return s.phase
}

// Ticks returns the number of ticks run since the last Reset
func (s *Simulation) Ticks() uint64 {
	return s.tick
}

func (s *Simulation) Position() mgl64.Vec3 {
	return s.Body.Transform.Position
}

func (s *Simulation) Velocity() mgl64.Vec3 {
	return s.Body.Velocity
}

// View returns the view matrix of the camera at the body position
func (s *Simulation) View() mgl64.Mat4 {
	return s.Camera.View(s.Body.Transform.Position)
}

// Tick advances the simulation by one fixed step, then sends the events raised during the step.
func (s *Simulation) Tick() {
	s.tick++

	if s.phase == PhaseIdle && s.triggered {
		s.start()
	}
	if s.phase == PhaseAirborne {
		switch s.config.Mode {
		case ModeFriction:
			s.stepFriction()
		default:
			s.stepImpulse()
		}

		s.Logger.Debug("tick",
			"tick", s.tick,
			"height", s.Body.Height(),
			"velocity", s.Body.Velocity.Y(),
			"phase", s.phase)
	}

	s.Events.flush()
}

func (s *Simulation) start() {
	s.phase = PhaseAirborne
	s.takeoff = s.tick
	s.bounces = 0

	// The takeoff speed is only given from the floor, the friction mode relies on the ground response instead
	if s.config.Mode == ModeImpulse && s.Body.Height() == FLOOR_HEIGHT {
		s.Body.Velocity[1] = s.config.TakeoffSpeed
	}
	if s.config.JumpPolicy == PolicyConsume {
		s.triggered = false
	}

	s.Logger.Info("takeoff", "tick", s.tick, "height", s.Body.Height(), "velocity", s.Body.Velocity.Y())
	s.Events.emit(TakeoffEvent{
		Tick:     s.tick,
		Position: s.Body.Transform.Position,
		Velocity: s.Body.Velocity,
	})
}

// stepImpulse: integrate, bounce on contact, then rest once the rebound on the floor is too slow
func (s *Simulation) stepImpulse() {
	s.Body.Integrate(s.config.Step, s.config.Gravity)

	s.resolve()

	if _, rested := s.Body.ClampToFloor(FLOOR_HEIGHT, s.config.RestSpeed); rested {
		s.land()
	}
}

// stepFriction: the position is advanced after the contact response and damping
func (s *Simulation) stepFriction() {
	s.Body.Accelerate(s.config.Step, s.config.Gravity)

	contact := s.resolve()
	if contact.Stabilized {
		s.Events.emit(StabilizeEvent{Tick: s.tick, Position: s.Body.Transform.Position})
		s.land()
		return
	}

	s.Body.Advance(s.config.Step)
	s.Body.ClampToFloor(FLOOR_HEIGHT, math.Inf(1))
}

func (s *Simulation) resolve() constraint.Contact {
	contact := s.resolver.Resolve(s.Body, s.Ground)
	if contact.Bounced() {
		s.bounces++
		s.Events.emit(BounceEvent{
			Tick:         s.tick,
			Position:     s.Body.Transform.Position,
			ImpactSpeed:  contact.ImpactSpeed,
			ReboundSpeed: contact.ReboundSpeed,
		})
	}

	return contact
}

func (s *Simulation) land() {
	s.phase = PhaseIdle
	s.triggered = false
	s.resolver.Reset()

	airtime := s.tick - s.takeoff + 1
	s.Logger.Info("landed", "tick", s.tick, "height", s.Body.Height(), "bounces", s.bounces, "airtime", airtime)
	s.Events.emit(LandEvent{
		Tick:     s.tick,
		Position: s.Body.Transform.Position,
		Bounces:  s.bounces,
		Airtime:  airtime,
	})
}
