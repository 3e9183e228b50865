package layout

import (
	"Moonrise/internal/palette"

	"github.com/go-gl/mathgl/mgl32"
)

// Descriptor is the appearance and placement a body steers toward for a given
// viewport.
type Descriptor struct {
	Position          mgl32.Vec3
	Scale             float32
	BaseColor         mgl32.Vec3
	EmissiveColor     mgl32.Vec3
	EmissiveIntensity float32
	AmbientLightBoost bool
	// AmbientIntensity already includes the boost when AmbientLightBoost is set.
	AmbientIntensity float32
}

// Controller maps a viewport to a descriptor. Implementations must be pure.
type Controller interface {
	Compute(v Viewport) Descriptor
}

const (
	// HalfHeight is the half extent of the orthographic view volume; the desktop
	// target sits on the left edge at -aspect*HalfHeight.
	HalfHeight = 3

	baseAmbient  = 0.1
	ambientBoost = 0.25
)

type tuning struct {
	scale             float32
	base              string
	emissive          string
	emissiveIntensity float32
	boost             bool
}

var table = map[DeviceClass]tuning{
	Desktop: {scale: 1.0, base: "#ffffff", emissive: "#111111", emissiveIntensity: 0.05, boost: false},
	Mobile:  {scale: 0.72, base: "#d9d9d9", emissive: "#222222", emissiveIntensity: 0.2, boost: true},
}

// Responsive is the moon's breakpoint-driven layout.
type Responsive struct{}

func (Responsive) Compute(v Viewport) Descriptor {
	class := v.Class()
	t := table[class]

	d := Descriptor{
		Scale:             t.scale,
		BaseColor:         palette.MustHex(t.base),
		EmissiveColor:     palette.MustHex(t.emissive),
		EmissiveIntensity: t.emissiveIntensity,
		AmbientLightBoost: t.boost,
		AmbientIntensity:  baseAmbient,
	}
	if t.boost {
		d.AmbientIntensity += ambientBoost
	}

	switch class {
	case Mobile:
		d.Position = mgl32.Vec3{0, HalfHeight, 0}
	default:
		d.Position = mgl32.Vec3{-v.Aspect() * HalfHeight, 0, 0}
	}
	return d
}

// Fixed ignores the viewport entirely.
type Fixed struct {
	Descriptor Descriptor
}

func (f Fixed) Compute(Viewport) Descriptor {
	return f.Descriptor
}
