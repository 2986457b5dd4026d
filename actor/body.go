package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

type Material struct {
	mass        float64
	Restitution float64 // 0= no rebound, 1= perfect restitution
}

// NewMaterial creates a material. Mass and restitution are fixed for the lifetime of the material,
// range checks are done by the configuration layer.
func NewMaterial(mass, restitution float64) Material {
	return Material{
		mass:        mass,
		Restitution: restitution,
	}
}

func (material Material) GetMass() float64 {
	return material.mass
}

// Body is the point mass standing in for the camera
type Body struct {
	Transform Transform

	Velocity mgl64.Vec3 // Linear velocity (units/s)

	Material Material
}

// NewBody creates a body at rest
func NewBody(transform Transform, material Material) *Body {
	return &Body{
		Transform: transform,
		Velocity:  mgl64.Vec3{0, 0, 0},
		Material:  material,
	}
}

// Integrate advances the body by one step using semi-implicit Euler:
// the velocity is updated first, then the position with the new velocity.
func (b *Body) Integrate(dt float64, gravity mgl64.Vec3) {
	b.Accelerate(dt, gravity)
	b.Advance(dt)
}

// Accelerate applies the gravity force (gravity * mass) for one step: v += F/m * dt
func (b *Body) Accelerate(dt float64, gravity mgl64.Vec3) {
	force := gravity.Mul(b.Material.mass)
	b.Velocity = b.Velocity.Add(force.Mul(dt / b.Material.GetMass()))
}

// Advance moves the position with the current velocity: x += v * dt
func (b *Body) Advance(dt float64) {
	b.Transform.Position = b.Transform.Position.Add(b.Velocity.Mul(dt))
}

// ClampToFloor keeps the height at or above floor.
// When the body is below the floor, it is lifted back on it, and a vertical velocity lower than restSpeed
// (including any velocity still pointing into the floor) is zeroed.
// clamped reports the height was corrected, rested that the vertical velocity was zeroed.
func (b *Body) ClampToFloor(floor float64, restSpeed float64) (clamped bool, rested bool) {
	if b.Transform.Position.Y() >= floor {
		return false, false
	}

	b.Transform.Position[1] = floor
	if b.Velocity.Y() < restSpeed {
		b.Velocity[1] = 0
		return true, true
	}

	return true, false
}

// Stop zeroes the vertical velocity
func (b *Body) Stop() {
	b.Velocity[1] = 0
}

// Height returns the vertical component of the position
func (b *Body) Height() float64 {
	return b.Transform.Position.Y()
}
