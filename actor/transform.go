package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position in 3D space
type Transform struct {
	Position mgl64.Vec3
}

// NewTransform creates a transform at the given position
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{
		Position: position,
	}
}
