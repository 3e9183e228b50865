// Package palette converts the hand-tuned hex colors used by the scenes into
// the RGB vectors the shaders consume.
package palette

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Hex parses "#rrggbb" (or "#rgb") into an RGB vector in [0,1].
func Hex(s string) (mgl32.Vec3, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("palette: %w", err)
	}
	return FromColor(c), nil
}

// MustHex is Hex for compile-time constants. It panics on malformed input.
func MustHex(s string) mgl32.Vec3 {
	v, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return v
}

func FromColor(c colorful.Color) mgl32.Vec3 {
	c = c.Clamped()
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
