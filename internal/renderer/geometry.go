package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats per interleaved vertex:
// position (3), texture coordinate (2), normal (3).
const VertexStride = 8

// Geometry is an indexed triangle list with interleaved vertex data.
type Geometry struct {
	Name     string
	Vertices []float32
	Indices  []uint32
}

// Displacer returns the offset along the surface normal for a vertex.
type Displacer interface {
	Displace(normal mgl32.Vec3, uv mgl32.Vec2) float32
}

func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / VertexStride
}

func (g *Geometry) Position(i int) mgl32.Vec3 {
	o := i * VertexStride
	return mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

func (g *Geometry) UV(i int) mgl32.Vec2 {
	o := i*VertexStride + 3
	return mgl32.Vec2{g.Vertices[o], g.Vertices[o+1]}
}

func (g *Geometry) Normal(i int) mgl32.Vec3 {
	o := i*VertexStride + 5
	return mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

func (g *Geometry) appendVertex(p mgl32.Vec3, uv mgl32.Vec2, n mgl32.Vec3) {
	g.Vertices = append(g.Vertices, p.X(), p.Y(), p.Z(), uv.X(), uv.Y(), n.X(), n.Y(), n.Z())
}

// NewSphere builds a UV sphere. Rows run from the north pole (v=1) to the south
// pole (v=0); columns wrap once around the Y axis with a duplicated seam.
func NewSphere(radius float32, widthSegments, heightSegments int, displace Displacer) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{
		Name:     "sphere",
		Vertices: make([]float32, 0, (widthSegments+1)*(heightSegments+1)*VertexStride),
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := float64(v) * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi

			normal := mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			uv := mgl32.Vec2{u, 1 - v}

			r := radius
			if displace != nil {
				r += displace.Displace(normal, uv)
			}
			g.appendVertex(normal.Mul(r), uv, normal)
		}
	}

	row := widthSegments + 1
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy*row + ix + 1)
			b := uint32(iy*row + ix)
			c := uint32((iy+1)*row + ix)
			d := uint32((iy+1)*row + ix + 1)

			// The pole rows collapse to a point; skip their degenerate halves.
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// NewRing builds a flat annulus in the XY plane facing +Z. Texture coordinates
// are the vertex position mapped from [-outer, outer] to [0, 1].
func NewRing(inner, outer float32, thetaSegments int) *Geometry {
	if thetaSegments < 3 {
		thetaSegments = 3
	}

	g := &Geometry{
		Name:     "ring",
		Vertices: make([]float32, 0, (thetaSegments+1)*2*VertexStride),
	}
	normal := mgl32.Vec3{0, 0, 1}

	for _, radius := range []float32{inner, outer} {
		for i := 0; i <= thetaSegments; i++ {
			segment := float64(i) / float64(thetaSegments) * 2 * math.Pi
			p := mgl32.Vec3{radius * float32(math.Cos(segment)), radius * float32(math.Sin(segment)), 0}
			uv := mgl32.Vec2{(p.X()/outer + 1) / 2, (p.Y()/outer + 1) / 2}
			g.appendVertex(p, uv, normal)
		}
	}

	for i := 0; i < thetaSegments; i++ {
		a := uint32(i)
		b := uint32(i + thetaSegments + 1)
		c := uint32(i + thetaSegments + 2)
		d := uint32(i + 1)
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}
	return g
}

// RotateX bakes a rotation about the X axis into positions and normals.
func (g *Geometry) RotateX(angle float32) *Geometry {
	rot := mgl32.Rotate3DX(angle)
	for i := 0; i < g.VertexCount(); i++ {
		o := i * VertexStride
		p := rot.Mul3x1(g.Position(i))
		n := rot.Mul3x1(g.Normal(i))
		copy(g.Vertices[o:o+3], p[:])
		copy(g.Vertices[o+5:o+8], n[:])
	}
	return g
}
