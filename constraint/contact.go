package constraint

import "github.com/akmonengine/hop/actor"

// ImpulseResolver bounces the body off the ground with the restitution of its material
type ImpulseResolver struct {
	Radius float64
}

func NewImpulseResolver(radius float64) *ImpulseResolver {
	return &ImpulseResolver{Radius: radius}
}

func (r *ImpulseResolver) Resolve(body *actor.Body, ground actor.Plane) Contact {
	return respond(body, ground, r.Radius)
}

// Reset is a no-op, the impulse response keeps no state between ticks
func (r *ImpulseResolver) Reset() {}
