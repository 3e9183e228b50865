package renderer

import "github.com/go-gl/mathgl/mgl32"

type LightKind int

const (
	AmbientLight LightKind = iota
	DirectionalLight
)

// MaxDirectionalLights matches the uniform array size in the standard program.
const MaxDirectionalLights = 4

type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3 // Directional lights shine from Position toward the origin
	Color     mgl32.Vec3
	Intensity float32
	Name      string
}

func CreateAmbientLight(color mgl32.Vec3, intensity float32) Light {
	return Light{Kind: AmbientLight, Color: color, Intensity: intensity, Name: "ambient"}
}

func CreateDirectionalLight(name string, position mgl32.Vec3, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Kind:      DirectionalLight,
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Name:      name,
	}
}

// Direction is the normalized direction the light travels in.
func (l Light) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return l.Position.Mul(-1).Normalize()
}
