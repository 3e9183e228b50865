package celestial

import (
	"Moonrise/internal/layout"
	"Moonrise/internal/logger"
	"Moonrise/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	// EntranceStep is the per-tick progress of the entrance animation.
	EntranceStep = 0.015
	// Damping is the fraction of the remaining distance covered per steady tick.
	Damping = 0.05
	// DefaultSeedScale is the scale bodies start the entrance from.
	DefaultSeedScale = 0.5
	// MoonAngularStep and SaturnAngularStep are radians of spin per tick.
	MoonAngularStep   = 0.002
	SaturnAngularStep = 0.003
)

type Options struct {
	AngularStep float32
	SeedScale   float32
}

// Body is one celestial object. It exclusively owns its meshes (geometry and
// material); its texture is shared and only referenced.
type Body struct {
	Name string

	meshes    []*renderer.Mesh
	texture   *renderer.Texture
	transform Transform
	state     AnimationState
	target    layout.Descriptor
	hasTarget bool
	ambient   float32

	angularStep float32
	seedScale   float32
}

func New(name string, opts Options, meshes ...*renderer.Mesh) *Body {
	if opts.SeedScale <= 0 {
		opts.SeedScale = DefaultSeedScale
	}
	b := &Body{
		Name:        name,
		meshes:      meshes,
		state:       Entering{Progress: 0},
		angularStep: opts.AngularStep,
		seedScale:   opts.SeedScale,
		transform: Transform{
			Position: mgl32.Vec3{},
			Scale:    opts.SeedScale,
			Opacity:  0,
		},
	}
	return b
}

// SetTarget points the body at a new layout. Colors switch immediately; motion
// and light intensity converge on later ticks. The animation phase is untouched.
func (b *Body) SetTarget(d layout.Descriptor) {
	changed := b.hasTarget && d.AmbientLightBoost != b.target.AmbientLightBoost
	if !b.hasTarget {
		b.ambient = d.AmbientIntensity
		b.hasTarget = true
	}
	b.target = d

	for _, m := range b.meshes {
		if m.Material != nil && m.Material.Program == renderer.StandardProgram {
			m.Material.SetAppearance(d.BaseColor, d.EmissiveColor, d.EmissiveIntensity)
		}
	}

	if changed {
		logger.Log.Debug("Body layout switched",
			zap.String("body", b.Name),
			zap.Bool("ambientBoost", d.AmbientLightBoost))
	}
}

// Tick advances the body by one frame.
func (b *Body) Tick() {
	switch s := b.state.(type) {
	case Entering:
		progress := s.Progress + EntranceStep
		if progress >= 1 {
			progress = 1
		}
		eased := easeOutCubic(progress)
		b.transform.Position = lerpVec3(mgl32.Vec3{}, b.target.Position, eased)
		b.transform.Scale = lerp(b.seedScale, b.target.Scale, eased)
		b.transform.Opacity = lerp(0, 1, eased)

		if progress == 1 {
			b.state = Steady{}
			logger.Log.Debug("Body entrance complete", zap.String("body", b.Name))
		} else {
			b.state = Entering{Progress: progress}
		}
	case Steady:
		b.transform.Position = lerpVec3(b.transform.Position, b.target.Position, Damping)
		b.transform.Scale = lerp(b.transform.Scale, b.target.Scale, Damping)
	}

	b.transform.RotationY += b.angularStep
	b.ambient = lerp(b.ambient, b.target.AmbientIntensity, Damping)
}

func (b *Body) State() AnimationState {
	return b.state
}

func (b *Body) Transform() Transform {
	return b.transform
}

func (b *Body) Target() layout.Descriptor {
	return b.target
}

// AmbientIntensity is the smoothed ambient light level this body asks for.
func (b *Body) AmbientIntensity() float32 {
	return b.ambient
}

func (b *Body) Meshes() []*renderer.Mesh {
	return b.meshes
}

// SetTexture binds a shared texture to every lit material of the body.
func (b *Body) SetTexture(tex *renderer.Texture) {
	b.texture = tex
	for _, m := range b.meshes {
		if m.Material != nil && m.Material.Program == renderer.StandardProgram {
			m.Material.Texture = tex
		}
	}
}

func (b *Body) Texture() *renderer.Texture {
	return b.texture
}
