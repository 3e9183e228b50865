// Package window hosts a scene in a GLFW window. The window is the container,
// its OpenGL surface is the canvas, and its swap cadence drives frames.
//
// Everything here must run on the locked main thread.
package window

import (
	"Moonrise/internal/config"
	"Moonrise/internal/engine"
	"Moonrise/internal/layout"
	"Moonrise/internal/logger"
	"context"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var (
	_ engine.Container    = (*Host)(nil)
	_ engine.ResizeSource = (*Host)(nil)
	_ engine.FrameSource  = (*Host)(nil)
)

type Host struct {
	window  *glfw.Window
	canvas  *engine.Canvas
	frames  *frameQueue
	resizes *resizeHub
	closed  bool
}

// Open initialises GLFW and creates a window with a current OpenGL 4.1 core
// context.
func Open(cfg config.WindowConfig) (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Transparent {
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	}
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create glfw window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if cfg.X >= 0 && cfg.Y >= 0 {
		win.SetPos(cfg.X, cfg.Y)
	}
	setDarkTitleBar(win)

	h := &Host{
		window:  win,
		frames:  newFrameQueue(),
		resizes: newResizeHub(),
	}

	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			// Minimised.
			return
		}
		h.resizes.publish(layout.Viewport{Width: int32(width), Height: int32(height)})
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	fbw, fbh := win.GetFramebufferSize()
	logger.Log.Info("Window opened",
		zap.String("title", cfg.Title),
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
		zap.Int("framebufferWidth", fbw),
		zap.Int("framebufferHeight", fbh),
		zap.Bool("transparent", cfg.Transparent))
	return h, nil
}

func (h *Host) Available() bool {
	return h != nil && !h.closed && h.window != nil
}

func (h *Host) Viewport() layout.Viewport {
	w, ht := h.window.GetSize()
	return layout.Viewport{Width: int32(w), Height: int32(ht)}
}

// PixelRatio is the framebuffer to window size ratio.
func (h *Host) PixelRatio() float32 {
	w, _ := h.window.GetSize()
	fbw, _ := h.window.GetFramebufferSize()
	if w > 0 && fbw > 0 {
		return float32(fbw) / float32(w)
	}
	x, _ := h.window.GetContentScale()
	return x
}

// AppendCanvas claims the window's single drawing surface.
func (h *Host) AppendCanvas(c *engine.Canvas) error {
	if !h.Available() {
		return engine.ErrContainerUnavailable
	}
	if h.canvas != nil {
		return engine.ErrCanvasAttached
	}
	h.canvas = c
	h.window.MakeContextCurrent()
	return nil
}

func (h *Host) RemoveCanvas(c *engine.Canvas) {
	if h.canvas == c {
		h.canvas = nil
	}
}

func (h *Host) ContainsCanvas(c *engine.Canvas) bool {
	return c != nil && h.canvas == c
}

func (h *Host) OnResize(fn func(layout.Viewport)) func() {
	return h.resizes.subscribe(fn)
}

func (h *Host) RequestFrame(fn func()) engine.FrameID {
	return h.frames.request(fn)
}

func (h *Host) CancelFrame(id engine.FrameID) {
	h.frames.cancel(id)
}

// Run pumps events and frame callbacks until the window is closed or ctx is
// done. Buffers are swapped only on iterations that ran a frame.
func (h *Host) Run(ctx context.Context) error {
	for !h.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		glfw.PollEvents()

		batch := h.frames.drain()
		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 && h.canvas != nil {
			h.window.SwapBuffers()
		} else if len(batch) == 0 {
			// Nothing scheduled; avoid spinning.
			glfw.WaitEventsTimeout(0.1)
		}
	}
	logger.Log.Info("Window closed by user")
	return nil
}

// Close destroys the window and terminates GLFW. Calling it again does nothing.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.window.Destroy()
	glfw.Terminate()
}
