package celestial

import (
	"math"
	"testing"

	"Moonrise/internal/layout"
	"Moonrise/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

// vecNear compares with an absolute tolerance; mgl32's relative comparison
// degenerates for components near zero.
func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

var (
	desktop = layout.Viewport{Width: 1920, Height: 1080}
	mobile  = layout.Viewport{Width: 375, Height: 667}
)

func newMoon() (*Body, *renderer.Material) {
	mat := renderer.NewStandardMaterial(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 0)
	mesh := renderer.NewMesh("moon", renderer.NewSphere(1, 8, 4, nil), mat)
	b := New("moon", Options{AngularStep: MoonAngularStep}, mesh)
	b.SetTarget(layout.Responsive{}.Compute(desktop))
	return b, mat
}

func entranceTicks() int {
	return int(math.Ceil(1 / EntranceStep))
}

func TestNewBodyStartsEntering(t *testing.T) {
	b, _ := newMoon()

	s, ok := b.State().(Entering)
	if !ok || s.Progress != 0 {
		t.Fatalf("Expected Entering(0), got %#v", b.State())
	}

	tr := b.Transform()
	if tr.Position != (mgl32.Vec3{}) {
		t.Errorf("Expected seed position at origin, got %v", tr.Position)
	}
	if tr.Scale != DefaultSeedScale {
		t.Errorf("Expected seed scale %f, got %f", DefaultSeedScale, tr.Scale)
	}
	if tr.Opacity != 0 {
		t.Errorf("Expected zero opacity, got %f", tr.Opacity)
	}
}

func TestEntranceCompletes(t *testing.T) {
	b, _ := newMoon()
	n := entranceTicks()

	for i := 0; i < n-1; i++ {
		b.Tick()
	}
	if IsSteady(b.State()) {
		t.Fatalf("Entrance finished early, after %d ticks", n-1)
	}

	b.Tick()
	if !IsSteady(b.State()) {
		t.Fatalf("Expected Steady after %d ticks, got %#v", n, b.State())
	}

	tr := b.Transform()
	target := b.Target()
	if !vecNear(tr.Position, target.Position, epsilon) {
		t.Errorf("Position %v, want %v", tr.Position, target.Position)
	}
	if mgl32.Abs(tr.Scale-target.Scale) > epsilon {
		t.Errorf("Scale %f, want %f", tr.Scale, target.Scale)
	}
	if tr.Opacity != 1 {
		t.Errorf("Opacity should be exactly 1, got %f", tr.Opacity)
	}
}

func TestEntranceProgressIsMonotonic(t *testing.T) {
	b, _ := newMoon()

	last := Progress(b.State())
	for i := 0; i < entranceTicks()+10; i++ {
		b.Tick()
		p := Progress(b.State())
		if p < last {
			t.Fatalf("Progress decreased from %f to %f at tick %d", last, p, i)
		}
		if p > 1 {
			t.Fatalf("Progress exceeded 1: %f", p)
		}
		last = p
	}
}

func TestEntranceEasesOut(t *testing.T) {
	b, _ := newMoon()
	target := b.Target().Position

	b.Tick()
	first := b.Transform().Position.Sub(mgl32.Vec3{}).Len()
	want := easeOutCubic(EntranceStep) * target.Len()
	if mgl32.Abs(first-want) > epsilon {
		t.Errorf("First step moved %f, want %f", first, want)
	}
	if b.Transform().Position.Len() >= target.Len() {
		t.Error("Body should not reach the target after one tick")
	}
}

func TestResizeDuringSteadyKeepsPhase(t *testing.T) {
	b, _ := newMoon()
	for i := 0; i < entranceTicks(); i++ {
		b.Tick()
	}

	b.SetTarget(layout.Responsive{}.Compute(mobile))

	if !IsSteady(b.State()) {
		t.Fatal("SetTarget must not re-enter the entrance animation")
	}
	b.Tick()
	if !IsSteady(b.State()) {
		t.Fatal("Ticking after a resize must stay Steady")
	}
	if Progress(b.State()) != 1 {
		t.Error("Progress must not reset")
	}
}

func TestDesktopToMobileGlide(t *testing.T) {
	b, mat := newMoon()
	for i := 0; i < entranceTicks(); i++ {
		b.Tick()
	}

	desktopTarget := layout.Responsive{}.Compute(desktop)
	mobileTarget := layout.Responsive{}.Compute(mobile)
	start := b.Transform()
	startAmbient := b.AmbientIntensity()

	b.SetTarget(mobileTarget)

	// Appearance switches at once.
	if mat.BaseColor != mobileTarget.BaseColor || mat.EmissiveIntensity != mobileTarget.EmissiveIntensity {
		t.Error("Material appearance should switch immediately on breakpoint change")
	}
	// Motion and light do not.
	if b.Transform() != start {
		t.Error("SetTarget must not move the body")
	}

	b.Tick()
	tr := b.Transform()
	wantPos := start.Position.Add(mobileTarget.Position.Sub(start.Position).Mul(Damping))
	if !vecNear(tr.Position, wantPos, epsilon) {
		t.Errorf("First glide step at %v, want %v", tr.Position, wantPos)
	}
	if vecNear(tr.Position, mobileTarget.Position, 0.1) {
		t.Error("Body jumped to the mobile target")
	}
	wantAmbient := startAmbient + (mobileTarget.AmbientIntensity-startAmbient)*Damping
	if mgl32.Abs(b.AmbientIntensity()-wantAmbient) > epsilon {
		t.Errorf("Ambient %f, want %f", b.AmbientIntensity(), wantAmbient)
	}

	prevDist := tr.Position.Sub(mobileTarget.Position).Len()
	prevAmbientGap := mobileTarget.AmbientIntensity - b.AmbientIntensity()
	for i := 0; i < 400; i++ {
		b.Tick()
		dist := b.Transform().Position.Sub(mobileTarget.Position).Len()
		gap := mobileTarget.AmbientIntensity - b.AmbientIntensity()
		if dist > prevDist+1e-6 {
			t.Fatalf("Distance to target grew at tick %d", i)
		}
		if gap > prevAmbientGap+1e-6 {
			t.Fatalf("Ambient moved away from target at tick %d", i)
		}
		prevDist, prevAmbientGap = dist, gap
	}

	tr = b.Transform()
	if !vecNear(tr.Position, mobileTarget.Position, 1e-3) {
		t.Errorf("Expected convergence to %v, got %v", mobileTarget.Position, tr.Position)
	}
	if mgl32.Abs(tr.Scale-0.72) > 1e-3 {
		t.Errorf("Expected scale to converge to 0.72, got %f", tr.Scale)
	}
	if mgl32.Abs(b.AmbientIntensity()-mobileTarget.AmbientIntensity) > 1e-3 {
		t.Errorf("Ambient should converge to %f, got %f", mobileTarget.AmbientIntensity, b.AmbientIntensity())
	}
	if desktopTarget.Position == mobileTarget.Position {
		t.Fatal("Test viewports should map to distinct targets")
	}
}

func TestRotationIsUnconditional(t *testing.T) {
	b, _ := newMoon()

	for i := 1; i <= entranceTicks()+20; i++ {
		b.Tick()
		want := float32(i) * MoonAngularStep
		if mgl32.Abs(b.Transform().RotationY-want) > 1e-4 {
			t.Fatalf("RotationY %f after %d ticks, want %f", b.Transform().RotationY, i, want)
		}
	}
}

func TestFirstTargetSeedsAmbient(t *testing.T) {
	b := New("saturn", Options{AngularStep: SaturnAngularStep})
	b.SetTarget(layout.Descriptor{Scale: 1, AmbientIntensity: 0.6})

	if b.AmbientIntensity() != 0.6 {
		t.Errorf("First target should seed ambient, got %f", b.AmbientIntensity())
	}
}

func TestSetTextureBindsLitMaterials(t *testing.T) {
	lit := renderer.NewStandardMaterial(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 0)
	band := renderer.NewSaturnBodyMaterial()
	b := New("mixed", Options{},
		renderer.NewMesh("a", renderer.NewSphere(1, 4, 2, nil), lit),
		renderer.NewMesh("b", renderer.NewSphere(1, 4, 2, nil), band))

	tex := &renderer.Texture{ID: 3, Name: "moon"}
	b.SetTexture(tex)

	if lit.Texture != tex {
		t.Error("Lit material should receive the texture")
	}
	if band.Texture != nil {
		t.Error("Band materials are procedural and should not be textured")
	}
	if b.Texture() != tex {
		t.Error("Body should remember its texture")
	}
}
