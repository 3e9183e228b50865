package engine

import (
	"Moonrise/internal/celestial"
	"Moonrise/internal/layout"
	"Moonrise/internal/logger"
	"Moonrise/internal/renderer"
	"errors"
	"path/filepath"

	"go.uber.org/zap"
)

// Stage is one mount cycle: scene, resize subscription, frame loop and the
// pending texture. Everything it acquires is released by Unmount.
type Stage struct {
	scene       *SceneManager
	scheduler   *Scheduler
	layout      layout.Controller
	bodies      []*celestial.Body
	unsubscribe func()

	texture     <-chan renderer.ImageResult
	textureName string

	alive     bool
	unmounted bool
}

// Mount attaches a preset to container and starts animating it. A missing
// container yields an inert stage and no error.
func Mount(backend renderer.Backend, container Container, resizes ResizeSource, frames FrameSource, preset Preset) (*Stage, error) {
	st := &Stage{layout: preset.Layout}

	scene := NewSceneManager(backend, preset.Setup)
	if err := scene.Attach(container); err != nil {
		scene.Dispose()
		if errors.Is(err, ErrContainerUnavailable) {
			logger.Log.Info("No container to mount into", zap.String("scene", preset.Setup.Name))
			st.unmounted = true
			return st, nil
		}
		return nil, err
	}
	st.scene = scene

	vp := container.Viewport()
	target := st.layout.Compute(vp)
	for _, b := range preset.Bodies() {
		b.SetTarget(target)
		if err := scene.AddBody(b); err != nil {
			scene.Dispose()
			return nil, err
		}
		st.bodies = append(st.bodies, b)
	}

	if resizes != nil {
		st.unsubscribe = resizes.OnResize(st.handleResize)
	}

	if preset.TexturePath != "" && len(st.bodies) > 0 {
		st.texture = renderer.LoadImageAsync(preset.TexturePath, preset.MaxTextureSize)
		st.textureName = filepath.Base(preset.TexturePath)
	}

	st.alive = true
	st.scheduler = NewScheduler(frames, st.tick, scene.Render)
	st.scheduler.Start()

	logger.Log.Info("Stage mounted",
		zap.String("scene", preset.Setup.Name),
		zap.Int("bodies", len(st.bodies)),
		zap.Stringer("device", vp.Class()))
	return st, nil
}

func (st *Stage) tick() {
	if !st.alive {
		return
	}
	st.pollTexture()
	for _, b := range st.bodies {
		b.Tick()
	}
}

// pollTexture applies the decoded texture once it is ready without blocking.
func (st *Stage) pollTexture() {
	if st.texture == nil {
		return
	}
	select {
	case res := <-st.texture:
		st.texture = nil
		if res.Err != nil {
			logger.Log.Warn("Texture unavailable, keeping base material",
				zap.String("path", res.Path), zap.Error(res.Err))
			return
		}
		if err := st.scene.ApplyTexture(st.bodies[0], st.textureName, res.Image); err != nil {
			logger.Log.Warn("Texture upload failed, keeping base material",
				zap.String("path", res.Path), zap.Error(err))
		}
	default:
	}
}

func (st *Stage) handleResize(vp layout.Viewport) {
	if !st.alive {
		return
	}
	st.scene.Resize(vp)
	target := st.layout.Compute(vp)
	for _, b := range st.bodies {
		b.SetTarget(target)
	}
	logger.Log.Debug("Viewport resized",
		zap.Int32("width", vp.Width),
		zap.Int32("height", vp.Height),
		zap.Stringer("device", vp.Class()))
}

// Unmount releases in reverse acquisition order: frame loop, resize
// subscription, then canvas and GPU resources. It is idempotent.
func (st *Stage) Unmount() {
	if st.unmounted {
		return
	}
	st.unmounted = true
	st.alive = false

	if st.scheduler != nil {
		st.scheduler.Cancel()
	}
	if st.unsubscribe != nil {
		st.unsubscribe()
		st.unsubscribe = nil
	}
	if st.scene != nil {
		st.scene.Dispose()
	}
	// A pending decode finishes into its buffered channel and is dropped.
	st.texture = nil

	logger.Log.Info("Stage unmounted")
}

// Mounted reports whether the stage is live.
func (st *Stage) Mounted() bool {
	return st.alive
}

func (st *Stage) Scene() *SceneManager {
	return st.scene
}

func (st *Stage) Scheduler() *Scheduler {
	return st.scheduler
}

func (st *Stage) Bodies() []*celestial.Body {
	return st.bodies
}

// Ready reports whether every body has finished its entrance.
func (st *Stage) Ready() bool {
	if !st.alive {
		return false
	}
	for _, b := range st.bodies {
		if !celestial.IsSteady(b.State()) {
			return false
		}
	}
	return true
}
