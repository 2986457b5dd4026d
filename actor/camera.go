package actor

import "github.com/go-gl/mathgl/mgl64"

// DefaultCameraSpeed is the horizontal distance covered per movement key poll
const DefaultCameraSpeed = 0.05

type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Camera holds the viewing direction of the simulated body.
// The eye is always the body position.
type Camera struct {
	Front mgl64.Vec3
	Up    mgl64.Vec3
	Speed float64
}

func NewCamera() Camera {
	return Camera{
		Front: mgl64.Vec3{0, 0, -1},
		Up:    mgl64.Vec3{0, 1, 0},
		Speed: DefaultCameraSpeed,
	}
}

// View builds the view matrix looking from position towards position+Front
func (c Camera) View(position mgl64.Vec3) mgl64.Mat4 {
	return mgl64.LookAtV(position, position.Add(c.Front), c.Up)
}

// RightVector returns normalize(Front x Up)
func (c Camera) RightVector() mgl64.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// Move returns position displaced on the horizontal plane in the given direction.
// The vertical component is left to the jump simulation.
func (c Camera) Move(position mgl64.Vec3, direction Direction) mgl64.Vec3 {
	var delta mgl64.Vec3
	switch direction {
	case Forward:
		delta = c.Front.Mul(c.Speed)
	case Backward:
		delta = c.Front.Mul(-c.Speed)
	case Left:
		delta = c.RightVector().Mul(-c.Speed)
	case Right:
		delta = c.RightVector().Mul(c.Speed)
	}
	delta[1] = 0

	return position.Add(delta)
}
