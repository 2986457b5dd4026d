package constraint

import (
	"github.com/akmonengine/hop/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ContactRadius is the distance to the ground at which the body is considered touching it.
	// It stands for the radius of a sphere centered on the body position.
	ContactRadius = 1.0
)

// Contact is the outcome of one resolution step against the ground
type Contact struct {
	Touching bool
	// Impulse magnitude applied along the plane normal, 0 when the body was already separating
	Impulse float64
	// ImpactSpeed and ReboundSpeed are the normal speeds before and after the response
	ImpactSpeed  float64
	ReboundSpeed float64
	// Stabilized is set when the bounce has been damped out
	Stabilized bool
}

// Bounced reports whether the response reversed an approaching velocity
func (c Contact) Bounced() bool {
	return c.Touching && c.Impulse > 0
}

// Resolver corrects the velocity of a body touching the ground.
// It is called once per tick, after integration.
type Resolver interface {
	Resolve(body *actor.Body, ground actor.Plane) Contact
	Reset()
}

// ContactTest reports whether the center lies within radius of the plane, along its normal.
// The test is one-sided: any point behind the plane is in contact.
func ContactTest(center, planePoint, planeNormal mgl64.Vec3, radius float64) bool {
	distance := center.Sub(planePoint).Dot(planeNormal)

	return distance <= radius
}

// CollisionResponse applies the restitution impulse of a point mass against a static plane.
// It returns the corrected velocity and the impulse magnitude.
// A velocity already moving away from the plane is returned unchanged.
func CollisionResponse(velocity, normal mgl64.Vec3, restitution float64) (mgl64.Vec3, float64) {
	closingSpeed := velocity.Dot(normal)
	impulse := max(-(1+restitution)*closingSpeed, 0)

	return velocity.Add(normal.Mul(impulse)), impulse
}

func respond(body *actor.Body, ground actor.Plane, radius float64) Contact {
	if !ContactTest(body.Transform.Position, ground.Point, ground.Normal, radius) {
		return Contact{}
	}

	impact := body.Velocity.Dot(ground.Normal)
	velocity, impulse := CollisionResponse(body.Velocity, ground.Normal, body.Material.Restitution)
	body.Velocity = velocity

	return Contact{
		Touching:     true,
		Impulse:      impulse,
		ImpactSpeed:  -impact,
		ReboundSpeed: velocity.Dot(ground.Normal),
	}
}
