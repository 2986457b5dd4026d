package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/hop/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Helper function to create a unit mass body for testing
func createBody(position, velocity mgl64.Vec3, restitution float64) *actor.Body {
	body := actor.NewBody(actor.NewTransform(position), actor.NewMaterial(1.0, restitution))
	body.Velocity = velocity

	return body
}

func TestContactTest(t *testing.T) {
	planePoint := mgl64.Vec3{0, 0, 0}
	up := mgl64.Vec3{0, 1, 0}

	tests := []struct {
		name   string
		center mgl64.Vec3
		want   bool
	}{
		{"far above", mgl64.Vec3{0, 5, 0}, false},
		{"just above radius", mgl64.Vec3{0, 1.0001, 0}, false},
		{"exactly at radius", mgl64.Vec3{0, 1, 0}, true},
		{"inside radius", mgl64.Vec3{3, 0.5, -2}, true},
		{"on plane", mgl64.Vec3{0, 0, 0}, true},
		{"behind plane", mgl64.Vec3{0, -10, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContactTest(tt.center, planePoint, up, ContactRadius); got != tt.want {
				t.Errorf("ContactTest(%v) = %v, want %v", tt.center, got, tt.want)
			}
		})
	}
}

func TestContactTest_RaisedPlane(t *testing.T) {
	planePoint := mgl64.Vec3{0, 0.01, 0}
	up := mgl64.Vec3{0, 1, 0}

	if !ContactTest(mgl64.Vec3{0, 1.01, 0}, planePoint, up, ContactRadius) {
		t.Error("expected contact at radius above a raised plane")
	}
	if ContactTest(mgl64.Vec3{0, 1.02, 0}, planePoint, up, ContactRadius) {
		t.Error("expected no contact beyond radius above a raised plane")
	}
}

func TestCollisionResponse_Restitution(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}

	for _, e := range []float64{0, 0.25, 0.5, 0.8, 1} {
		for _, s := range []float64{-0.1, -1, -9.8, -19.2} {
			velocity, impulse := CollisionResponse(mgl64.Vec3{2, s, -1}, up, e)

			if !almostEqual(velocity.Y(), -e*s, 1e-9) {
				t.Errorf("e=%v s=%v: normal speed = %v, want %v", e, s, velocity.Y(), -e*s)
			}
			if !almostEqual(impulse, -(1+e)*s, 1e-9) {
				t.Errorf("e=%v s=%v: impulse = %v, want %v", e, s, impulse, -(1+e)*s)
			}
			// Tangential velocity is not affected
			if velocity.X() != 2 || velocity.Z() != -1 {
				t.Errorf("e=%v s=%v: tangential velocity changed to %v", e, s, velocity)
			}
		}
	}
}

func TestCollisionResponse_PerfectlyInelastic(t *testing.T) {
	velocity, _ := CollisionResponse(mgl64.Vec3{0, -7, 0}, mgl64.Vec3{0, 1, 0}, 0)

	if !almostEqual(velocity.Y(), 0, 1e-12) {
		t.Errorf("normal speed = %v, want 0", velocity.Y())
	}
}

func TestCollisionResponse_Separating(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}

	tests := []struct {
		name     string
		velocity mgl64.Vec3
	}{
		{"moving away", mgl64.Vec3{0, 3, 0}},
		{"sliding", mgl64.Vec3{4, 0, 1}},
		{"at rest", mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			velocity, impulse := CollisionResponse(tt.velocity, up, 0.8)
			if velocity != tt.velocity {
				t.Errorf("velocity = %v, want unchanged %v", velocity, tt.velocity)
			}
			if impulse != 0 {
				t.Errorf("impulse = %v, want 0", impulse)
			}
		})
	}
}

func TestCollisionResponse_TiltedNormal(t *testing.T) {
	normal := mgl64.Vec3{1, 1, 0}.Normalize()
	velocity := mgl64.Vec3{-3, -1, 2}

	got, _ := CollisionResponse(velocity, normal, 0.5)

	before := velocity.Dot(normal)
	after := got.Dot(normal)
	if !almostEqual(after, -0.5*before, 1e-9) {
		t.Errorf("normal speed after = %v, want %v", after, -0.5*before)
	}
}

func TestImpulseResolver_Resolve(t *testing.T) {
	ground := actor.NewGroundPlane(0)
	resolver := NewImpulseResolver(ContactRadius)

	t.Run("no contact", func(t *testing.T) {
		body := createBody(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, -5, 0}, 0.8)

		contact := resolver.Resolve(body, ground)
		if contact.Touching || contact.Bounced() {
			t.Errorf("contact = %+v, want none", contact)
		}
		if body.Velocity.Y() != -5 {
			t.Errorf("Velocity.Y = %v, want -5", body.Velocity.Y())
		}
	})

	t.Run("bounce", func(t *testing.T) {
		body := createBody(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -10, 0}, 0.8)

		contact := resolver.Resolve(body, ground)
		if !contact.Bounced() {
			t.Fatalf("contact = %+v, want a bounce", contact)
		}
		if !almostEqual(contact.ImpactSpeed, 10, 1e-9) {
			t.Errorf("ImpactSpeed = %v, want 10", contact.ImpactSpeed)
		}
		if !almostEqual(contact.ReboundSpeed, 8, 1e-9) {
			t.Errorf("ReboundSpeed = %v, want 8", contact.ReboundSpeed)
		}
		if !almostEqual(body.Velocity.Y(), 8, 1e-9) {
			t.Errorf("Velocity.Y = %v, want 8", body.Velocity.Y())
		}
		if contact.Stabilized {
			t.Error("impulse resolver never stabilizes")
		}
	})

	t.Run("separating contact", func(t *testing.T) {
		body := createBody(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 4, 0}, 0.8)

		contact := resolver.Resolve(body, ground)
		if !contact.Touching || contact.Bounced() {
			t.Errorf("contact = %+v, want touching without bounce", contact)
		}
		if body.Velocity.Y() != 4 {
			t.Errorf("Velocity.Y = %v, want 4", body.Velocity.Y())
		}
	})
}

// Helper function to compare floats with epsilon tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}
