package celestial

import (
	"Moonrise/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the placement of a body for the current frame.
type Transform struct {
	Position  mgl32.Vec3
	Scale     float32
	RotationY float32
	Opacity   float32
}

func (t Transform) Matrix() mgl32.Mat4 {
	return renderer.ModelMatrix(t.Position, t.RotationY, t.Scale)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// easeOutCubic is 1-(1-t)^3: fast start, gentle arrival.
func easeOutCubic(t float32) float32 {
	inv := 1 - t
	return 1 - inv*inv*inv
}
