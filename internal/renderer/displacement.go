package renderer

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// PerlinDisplacement roughens a surface with 3D Perlin noise sampled on the unit
// normal, so seams and poles receive consistent offsets.
type PerlinDisplacement struct {
	Scale     float32
	Bias      float32
	Frequency float64
	noise     *perlin.Perlin
}

func NewPerlinDisplacement(seed int64, scale, bias float32) *PerlinDisplacement {
	return &PerlinDisplacement{
		Scale:     scale,
		Bias:      bias,
		Frequency: 6,
		noise:     perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Displace maps noise into [0,1] and applies offset = height*Scale + Bias.
func (d *PerlinDisplacement) Displace(normal mgl32.Vec3, _ mgl32.Vec2) float32 {
	n := d.noise.Noise3D(
		float64(normal.X())*d.Frequency,
		float64(normal.Y())*d.Frequency,
		float64(normal.Z())*d.Frequency,
	)
	height := mgl32.Clamp(float32(n)*0.5+0.5, 0, 1)
	return height*d.Scale + d.Bias
}
