package engine

import (
	"Moonrise/internal/celestial"
	"Moonrise/internal/layout"
	"Moonrise/internal/logger"
	"Moonrise/internal/renderer"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// SceneSetup is the fixed camera and lighting rig of a scene.
type SceneSetup struct {
	Name        string
	Camera      func(aspect float32) *renderer.Camera
	Ambient     renderer.Light
	Directional []renderer.Light
}

// SceneManager owns the camera, lights, backend and bodies of one mounted
// scene, plus the canvas it appended to its container.
type SceneManager struct {
	setup     SceneSetup
	backend   renderer.Backend
	textures  *renderer.TextureManager
	camera    *renderer.Camera
	bodies    []*celestial.Body
	container Container
	canvas    *Canvas

	attached bool
	disposed bool
}

func NewSceneManager(backend renderer.Backend, setup SceneSetup) *SceneManager {
	return &SceneManager{
		setup:    setup,
		backend:  backend,
		textures: renderer.NewTextureManager(backend),
	}
}

// Attach sizes the scene to the container and appends its canvas. It returns
// ErrContainerUnavailable, without side effects, when there is no container.
func (sm *SceneManager) Attach(container Container) error {
	if sm.disposed {
		return ErrDisposed
	}
	if sm.attached {
		return ErrCanvasAttached
	}
	if container == nil || !container.Available() {
		return ErrContainerUnavailable
	}

	vp := container.Viewport()
	ratio := renderer.ClampPixelRatio(container.PixelRatio())

	sm.camera = sm.setup.Camera(vp.Aspect())
	canvas := &Canvas{Name: sm.setup.Name, Width: vp.Width, Height: vp.Height, PixelRatio: ratio}
	if err := container.AppendCanvas(canvas); err != nil {
		return fmt.Errorf("attach %s: %w", sm.setup.Name, err)
	}

	if err := sm.backend.Init(vp.Width, vp.Height, ratio); err != nil {
		container.RemoveCanvas(canvas)
		return fmt.Errorf("attach %s: %w", sm.setup.Name, err)
	}

	sm.container = container
	sm.canvas = canvas
	sm.attached = true

	logger.Log.Info("Scene attached",
		zap.String("scene", sm.setup.Name),
		zap.Int32("width", vp.Width),
		zap.Int32("height", vp.Height),
		zap.Float32("pixelRatio", ratio),
		zap.Stringer("device", vp.Class()))
	return nil
}

// AddBody uploads the body's meshes and adds it to the scene graph.
func (sm *SceneManager) AddBody(b *celestial.Body) error {
	if !sm.attached || sm.disposed {
		return ErrDisposed
	}
	for _, m := range b.Meshes() {
		if err := sm.backend.Upload(m); err != nil {
			// The body never joins the scene, so Dispose would not see these.
			for _, uploaded := range b.Meshes() {
				sm.backend.Release(uploaded)
			}
			return fmt.Errorf("upload %s/%s: %w", b.Name, m.Name, err)
		}
	}
	sm.bodies = append(sm.bodies, b)
	return nil
}

// Resize follows a new viewport. It does not move bodies.
func (sm *SceneManager) Resize(vp layout.Viewport) {
	if !sm.attached || sm.disposed {
		return
	}
	ratio := renderer.ClampPixelRatio(sm.container.PixelRatio())

	sm.camera.SetAspectRatio(vp.Aspect())
	sm.backend.Resize(vp.Width, vp.Height, ratio)
	sm.canvas.Width, sm.canvas.Height, sm.canvas.PixelRatio = vp.Width, vp.Height, ratio
}

// Render draws the scene graph once.
func (sm *SceneManager) Render() {
	if !sm.attached || sm.disposed {
		return
	}
	frame := sm.Frame()
	sm.backend.Draw(&frame)
}

// Frame assembles what Render would draw.
func (sm *SceneManager) Frame() renderer.Frame {
	ambient := sm.setup.Ambient
	if len(sm.bodies) > 0 {
		ambient.Intensity = 0
		for _, b := range sm.bodies {
			ambient.Intensity = max(ambient.Intensity, b.AmbientIntensity())
		}
	}

	frame := renderer.Frame{
		Ambient:     ambient,
		Directional: sm.setup.Directional,
	}
	if sm.camera != nil {
		frame.ViewProjection = sm.camera.GetViewProjection()
		frame.ViewPos = sm.camera.Position
	} else {
		frame.ViewProjection = mgl32.Ident4()
	}

	for _, b := range sm.bodies {
		t := b.Transform()
		model := t.Matrix()
		for _, m := range b.Meshes() {
			frame.Items = append(frame.Items, renderer.DrawItem{Mesh: m, Model: model, Opacity: t.Opacity})
		}
	}
	return frame
}

// ApplyTexture uploads img and binds it to body, replacing any earlier texture.
func (sm *SceneManager) ApplyTexture(b *celestial.Body, name string, img image.Image) error {
	if !sm.attached || sm.disposed {
		return ErrDisposed
	}
	tex, err := sm.textures.Upload(name, img)
	if err != nil {
		return err
	}
	if old := b.Texture(); old != nil && old != tex {
		sm.textures.Release(old)
	}
	b.SetTexture(tex)
	return nil
}

// Dispose detaches the canvas and frees every GPU resource. Calling it again
// does nothing.
func (sm *SceneManager) Dispose() {
	if sm.disposed {
		return
	}
	sm.disposed = true

	if sm.canvas != nil && sm.container != nil && sm.container.ContainsCanvas(sm.canvas) {
		sm.container.RemoveCanvas(sm.canvas)
	}

	if !sm.attached {
		return
	}

	for _, b := range sm.bodies {
		if tex := b.Texture(); tex != nil {
			sm.textures.Release(tex)
			b.SetTexture(nil)
		}
		for _, m := range b.Meshes() {
			sm.backend.Release(m)
		}
	}
	sm.textures.LogStats()
	sm.textures.Clear()
	sm.backend.Cleanup()
	sm.bodies = nil

	logger.Log.Info("Scene disposed", zap.String("scene", sm.setup.Name))
}

func (sm *SceneManager) Camera() *renderer.Camera {
	return sm.camera
}

func (sm *SceneManager) Canvas() *Canvas {
	return sm.canvas
}

func (sm *SceneManager) Bodies() []*celestial.Body {
	return sm.bodies
}

func (sm *SceneManager) Disposed() bool {
	return sm.disposed
}

func (sm *SceneManager) Textures() *renderer.TextureManager {
	return sm.textures
}
