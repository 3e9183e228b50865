package renderer

import (
	"math"

	"Moonrise/internal/palette"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	PlanetBandFrequency = 50.0
	RingBandFrequency   = 200.0
	RingAlpha           = 0.6
)

type PatternKind int

const (
	// Stripes varies along uv.y: sin(v*f)*0.5+0.5.
	Stripes PatternKind = iota
	// Rings varies along uv.x and is sharpened with smoothstep(0.2, 0.8, ...).
	Rings
)

// BandPattern is the CPU twin of the band and ring fragment programs.
type BandPattern struct {
	Kind      PatternKind
	Frequency float32
}

// Factor returns the mix weight between the two band colors at uv.
func (p BandPattern) Factor(uv mgl32.Vec2) float32 {
	switch p.Kind {
	case Rings:
		wave := float32(math.Sin(float64(uv.X()*p.Frequency)))*0.5 + 0.5
		return smoothstep(0.2, 0.8, wave)
	default:
		return float32(math.Sin(float64(uv.Y()*p.Frequency)))*0.5 + 0.5
	}
}

// Period is the UV distance after which the pattern repeats.
func (p BandPattern) Period() float32 {
	return 2 * math.Pi / p.Frequency
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// BandColors are the two color uniforms of a band material. They are only ever
// replaced as a pair.
type BandColors struct {
	A mgl32.Vec3
	B mgl32.Vec3
}

type Material struct {
	Name        string
	Program     *Program
	Pattern     BandPattern
	Alpha       float32
	Transparent bool

	// Standard program inputs
	BaseColor         mgl32.Vec3
	Emissive          mgl32.Vec3
	EmissiveIntensity float32
	Roughness         float32
	Metalness         float32
	Texture           *Texture

	colors BandColors
}

// NewPlanetMaterial builds the striped body material.
func NewPlanetMaterial(a, b mgl32.Vec3) *Material {
	return &Material{
		Name:    "planet",
		Program: BandProgram,
		Pattern: BandPattern{Kind: Stripes, Frequency: PlanetBandFrequency},
		Alpha:   1,
		colors:  BandColors{A: a, B: b},
	}
}

// NewRingMaterial builds the alpha-blended ring material.
func NewRingMaterial(a, b mgl32.Vec3) *Material {
	return &Material{
		Name:        "ring",
		Program:     RingProgram,
		Pattern:     BandPattern{Kind: Rings, Frequency: RingBandFrequency},
		Alpha:       RingAlpha,
		Transparent: true,
		colors:      BandColors{A: a, B: b},
	}
}

// NewStandardMaterial builds the lit material used by textured bodies.
func NewStandardMaterial(base, emissive mgl32.Vec3, emissiveIntensity float32) *Material {
	return &Material{
		Name:              "standard",
		Program:           StandardProgram,
		Alpha:             1,
		Transparent:       true,
		BaseColor:         base,
		Emissive:          emissive,
		EmissiveIntensity: emissiveIntensity,
		Roughness:         0.5,
		Metalness:         0.0,
	}
}

// Saturn palette
func NewSaturnBodyMaterial() *Material {
	return NewPlanetMaterial(palette.MustHex("#d2a679"), palette.MustHex("#8c6239"))
}

func NewSaturnRingMaterial() *Material {
	return NewRingMaterial(palette.MustHex("#e0c9a6"), palette.MustHex("#70593f"))
}

func (m *Material) Colors() BandColors {
	return m.colors
}

func (m *Material) SetColors(c BandColors) {
	m.colors = c
}

// WithColors returns a copy of m using the given band colors.
func (m *Material) WithColors(c BandColors) *Material {
	cp := *m
	cp.colors = c
	return &cp
}

// Shade evaluates the fragment color of a band material at uv, before the
// body's opacity is applied. Standard materials return their untextured base.
func (m *Material) Shade(uv mgl32.Vec2) mgl32.Vec4 {
	if m.Program == StandardProgram {
		return m.BaseColor.Vec4(m.Alpha)
	}
	f := m.Pattern.Factor(uv)
	c := m.colors.A.Mul(1 - f).Add(m.colors.B.Mul(f))
	return c.Vec4(m.Alpha)
}

// SetAppearance replaces the lit colors in one step.
func (m *Material) SetAppearance(base, emissive mgl32.Vec3, emissiveIntensity float32) {
	m.BaseColor = base
	m.Emissive = emissive
	m.EmissiveIntensity = emissiveIntensity
}
