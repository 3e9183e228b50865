package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPixelRatio caps the device pixel ratio the drawing surface is sized with.
const MaxPixelRatio = 2

var Debug bool = false

// DrawItem is one mesh placed in the world for a single frame.
type DrawItem struct {
	Mesh    *Mesh
	Model   mgl32.Mat4
	Opacity float32
}

// Frame is everything a backend needs to draw the scene once.
type Frame struct {
	ViewProjection mgl32.Mat4
	ViewPos        mgl32.Vec3
	Ambient        Light
	Directional    []Light
	Items          []DrawItem
}

// Backend is the GPU side of a scene. All methods run on the thread owning the
// graphics context.
type Backend interface {
	Init(width, height int32, pixelRatio float32) error
	Resize(width, height int32, pixelRatio float32)
	Upload(mesh *Mesh) error
	Release(mesh *Mesh)
	CreateTexture(img image.Image, opts TextureOptions) (uint32, error)
	DeleteTexture(id uint32)
	Draw(frame *Frame)
	Cleanup()
}

// ClampPixelRatio bounds GPU cost on high density displays.
func ClampPixelRatio(ratio float32) float32 {
	if ratio <= 0 {
		return 1
	}
	if ratio > MaxPixelRatio {
		return MaxPixelRatio
	}
	return ratio
}
