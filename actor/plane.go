package actor

import "github.com/go-gl/mathgl/mgl64"

// Plane represents an infinite, stationary plane
// The plane is defined by a point lying on it and its normal (must be normalized)
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// NewGroundPlane creates a horizontal plane at the given height, facing up
func NewGroundPlane(height float64) Plane {
	return Plane{
		Point:  mgl64.Vec3{0, height, 0},
		Normal: mgl64.Vec3{0, 1, 0},
	}
}

// SignedDistance returns the distance from the plane to point along the normal
// Positive in front of the plane, negative behind it
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}
