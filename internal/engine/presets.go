package engine

import (
	"Moonrise/internal/celestial"
	"Moonrise/internal/config"
	"Moonrise/internal/layout"
	"Moonrise/internal/palette"
	"Moonrise/internal/renderer"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Preset describes a complete scene: rig, bodies, layout and optional texture.
type Preset struct {
	Setup  SceneSetup
	Layout layout.Controller
	// Bodies is called once per mount; every mount gets fresh meshes.
	Bodies         func() []*celestial.Body
	TexturePath    string
	MaxTextureSize int
}

const (
	moonRadius       = 2.5
	moonSegments     = 128
	moonSurfaceSeed  = 1969
	moonDisplacement = 0.01
	moonDisplaceBias = -0.005
)

var white = mgl32.Vec3{1, 1, 1}

func MoonPreset(texturePath string, maxTextureSize int) Preset {
	return Preset{
		Setup: SceneSetup{
			Name: config.SceneMoon,
			Camera: func(aspect float32) *renderer.Camera {
				return renderer.NewOrthographicCamera(layout.HalfHeight, aspect, 0.1, 1000)
			},
			Ambient: renderer.CreateAmbientLight(white, 0.1),
			Directional: []renderer.Light{
				renderer.CreateDirectionalLight("key", mgl32.Vec3{5, 3, 5}, white, 1.0),
				renderer.CreateDirectionalLight("rim", mgl32.Vec3{-5, 0, 5}, white, 0.5),
				renderer.CreateDirectionalLight("front", mgl32.Vec3{0, 0, 1}, white, 1.0),
			},
		},
		Layout:         layout.Responsive{},
		Bodies:         newMoonBodies,
		TexturePath:    texturePath,
		MaxTextureSize: maxTextureSize,
	}
}

func newMoonBodies() []*celestial.Body {
	surface := renderer.NewPerlinDisplacement(moonSurfaceSeed, moonDisplacement, moonDisplaceBias)
	geometry := renderer.NewSphere(moonRadius, moonSegments, moonSegments, surface)
	material := renderer.NewStandardMaterial(white, palette.MustHex("#111111"), 0.05)

	moon := celestial.New("moon",
		celestial.Options{AngularStep: celestial.MoonAngularStep},
		renderer.NewMesh("moon", geometry, material))
	return []*celestial.Body{moon}
}

func SaturnPreset() Preset {
	return Preset{
		Setup: SceneSetup{
			Name: config.SceneSaturn,
			Camera: func(aspect float32) *renderer.Camera {
				cam := renderer.NewPerspectiveCamera(75, aspect, 0.1, 1000)
				cam.Position = mgl32.Vec3{0, 0, 5}
				return cam
			},
			Ambient: renderer.CreateAmbientLight(white, 0.6),
			Directional: []renderer.Light{
				renderer.CreateDirectionalLight("key", mgl32.Vec3{5, 3, 5}, white, 1.0),
			},
		},
		Layout: layout.Fixed{Descriptor: layout.Descriptor{
			Scale:            1,
			BaseColor:        white,
			AmbientIntensity: 0.6,
		}},
		Bodies: newSaturnBodies,
	}
}

func newSaturnBodies() []*celestial.Body {
	planet := renderer.NewMesh("planet", renderer.NewSphere(1, 64, 64, nil), renderer.NewSaturnBodyMaterial())
	ring := renderer.NewMesh("ring",
		renderer.NewRing(1.3, 2.5, 128).RotateX(-math.Pi/2.2),
		renderer.NewSaturnRingMaterial())

	saturn := celestial.New("saturn",
		celestial.Options{AngularStep: celestial.SaturnAngularStep},
		planet, ring)
	return []*celestial.Body{saturn}
}

// PresetFor picks the preset named by cfg.Scene.
func PresetFor(cfg config.Config) (Preset, error) {
	switch cfg.Scene {
	case config.SceneMoon:
		return MoonPreset(cfg.MoonTexture, cfg.MaxTextureSize), nil
	case config.SceneSaturn:
		return SaturnPreset(), nil
	default:
		return Preset{}, fmt.Errorf("engine: unknown scene %q", cfg.Scene)
	}
}
