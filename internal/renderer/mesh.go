package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh pairs a geometry with the material it is drawn with. The GPU handles are
// owned by the backend that uploaded it.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *Material

	VAO      uint32 // Vertex Array Object
	VBO      uint32 // Vertex Buffer Object
	EBO      uint32 // Element Buffer Object
	Uploaded bool
}

func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {
	return &Mesh{Name: name, Geometry: geometry, Material: material}
}

func (m *Mesh) IndexCount() int32 {
	if m.Geometry == nil {
		return 0
	}
	return int32(len(m.Geometry.Indices))
}

// ModelMatrix composes translation * rotation about Y * uniform scale (TRS order).
func ModelMatrix(position mgl32.Vec3, rotationY, scale float32) mgl32.Mat4 {
	translation := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rotation := mgl32.HomogRotate3DY(rotationY)
	scaling := mgl32.Scale3D(scale, scale, scale)
	return translation.Mul4(rotation).Mul4(scaling)
}
