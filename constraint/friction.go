package constraint

import (
	"github.com/akmonengine/hop/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFrictionIncrement is added to the accumulated friction impulse on every contact tick
	DefaultFrictionIncrement = 0.1
)

// DefaultRestartVelocity is given to the body once the bounce has stabilized
var DefaultRestartVelocity = mgl64.Vec3{0, -10, 0}

// FrictionResolver damps the bounce with an artificial friction impulse growing on each contact,
// until the vertical velocity is floored at zero.
type FrictionResolver struct {
	Radius          float64
	Increment       float64
	RestartVelocity mgl64.Vec3

	accumulated float64
}

func NewFrictionResolver(radius, increment float64, restartVelocity mgl64.Vec3) *FrictionResolver {
	return &FrictionResolver{
		Radius:          radius,
		Increment:       increment,
		RestartVelocity: restartVelocity,
	}
}

// Accumulated returns the current friction impulse
func (r *FrictionResolver) Accumulated() float64 {
	return r.accumulated
}

func (r *FrictionResolver) Resolve(body *actor.Body, ground actor.Plane) Contact {
	contact := respond(body, ground, r.Radius)
	if !contact.Touching {
		return contact
	}

	contact.Stabilized = r.Damp(body)
	contact.ReboundSpeed = body.Velocity.Dot(ground.Normal)

	return contact
}

// Damp removes the accumulated impulse from the vertical velocity, floored at zero.
// Once the velocity reaches zero, the impulse is reset, the body gets the restart velocity
// and Damp returns true.
func (r *FrictionResolver) Damp(body *actor.Body) bool {
	r.accumulated += r.Increment
	body.Velocity = body.Velocity.Sub(mgl64.Vec3{0, r.accumulated, 0})
	body.Velocity[1] = max(body.Velocity.Y(), 0)

	if body.Velocity.Y() != 0 {
		return false
	}

	r.accumulated = 0
	body.Velocity = r.RestartVelocity

	return true
}

func (r *FrictionResolver) Reset() {
	r.accumulated = 0
}
