// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

type Camera struct {
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Projection mgl32.Mat4 // Projection matrix

	Kind        ProjectionKind
	Fov         float32 // Vertical field of view in degrees (perspective)
	HalfHeight  float32 // Half extent of the view volume (orthographic)
	Near        float32
	Far         float32
	AspectRatio float32

	Name string
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Position:    mgl32.Vec3{0, 0, 5},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Kind:        Perspective,
		Fov:         fov,
		Near:        near,
		Far:         far,
		AspectRatio: aspect,
	}
	c.UpdateProjection()
	return c
}

// NewOrthographicCamera builds a camera whose view volume spans
// [-halfHeight*aspect, halfHeight*aspect] horizontally and [-halfHeight, halfHeight]
// vertically.
func NewOrthographicCamera(halfHeight, aspect, near, far float32) *Camera {
	c := &Camera{
		Position:    mgl32.Vec3{0, 0, 3},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Kind:        Orthographic,
		HalfHeight:  halfHeight,
		Near:        near,
		Far:         far,
		AspectRatio: aspect,
	}
	c.UpdateProjection()
	return c
}

func (c *Camera) UpdateProjection() {
	switch c.Kind {
	case Orthographic:
		left, right, bottom, top := c.Bounds()
		c.Projection = mgl32.Ortho(left, right, bottom, top, c.Near, c.Far)
	default:
		c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
	}
}

// Bounds returns the orthographic view volume. For perspective cameras it
// returns the extents of the near plane.
func (c *Camera) Bounds() (left, right, bottom, top float32) {
	half := c.HalfHeight
	if c.Kind == Perspective {
		half = c.Near * float32(math.Tan(float64(mgl32.DegToRad(c.Fov)/2)))
	}
	return -half * c.AspectRatio, half * c.AspectRatio, -half, half
}

// Setter methods that automatically update projection
func (c *Camera) SetNear(near float32) {
	c.Near = near
	c.UpdateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.Far = far
	c.UpdateProjection()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}
