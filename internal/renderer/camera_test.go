package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewOrthographicCamera(t *testing.T) {
	cam := NewOrthographicCamera(3, 2, 0.1, 1000)

	if cam == nil {
		t.Fatal("NewOrthographicCamera returned nil")
	}

	left, right, bottom, top := cam.Bounds()
	if left != -6 || right != 6 || bottom != -3 || top != 3 {
		t.Errorf("Unexpected bounds: %f %f %f %f", left, right, bottom, top)
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}
}

func TestOrthographicProjectionIsAffine(t *testing.T) {
	cam := NewOrthographicCamera(3, 1.5, 0.1, 1000)

	proj := cam.GetProjectionMatrix()
	if proj.At(3, 3) != 1.0 {
		t.Error("Orthographic projection should have w=1 at (3,3)")
	}
}

func TestCameraResizeUpdatesBounds(t *testing.T) {
	cam := NewOrthographicCamera(3, 1920.0/1080.0, 0.1, 1000)
	cam.SetAspectRatio(375.0 / 667.0)

	left, right, _, _ := cam.Bounds()
	want := float32(3 * 375.0 / 667.0)
	if mgl32.Abs(right-want) > 1e-5 || mgl32.Abs(left+want) > 1e-5 {
		t.Errorf("Expected horizontal bounds ±%f, got %f..%f", want, left, right)
	}

	expected := mgl32.Ortho(left, right, -3, 3, 0.1, 1000)
	if !cam.Projection.ApproxEqual(expected) {
		t.Error("Projection should be rebuilt on aspect change")
	}
}

func TestPerspectiveCameraProjection(t *testing.T) {
	cam := NewPerspectiveCamera(75, 16.0/9.0, 0.1, 1000)

	proj := cam.GetProjectionMatrix()
	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}

	cam.SetAspectRatio(1)
	if !cam.Projection.ApproxEqual(mgl32.Perspective(mgl32.DegToRad(75), 1, 0.1, 1000)) {
		t.Error("SetAspectRatio should rebuild the perspective projection")
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 5}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	// The origin sits 5 units in front of the camera.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if mgl32.Abs(p.Z()+5) > 1e-5 {
		t.Errorf("Expected origin at view z=-5, got %f", p.Z())
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewOrthographicCamera(3, 1, 0.1, 1000)

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}
