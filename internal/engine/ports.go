package engine

import (
	"errors"

	"Moonrise/internal/layout"
)

var (
	// ErrContainerUnavailable means there is nothing to mount into. Callers treat
	// it as a silent abort rather than a failure.
	ErrContainerUnavailable = errors.New("engine: container unavailable")
	// ErrCanvasAttached is returned when a container already hosts a canvas.
	ErrCanvasAttached = errors.New("engine: container already has a canvas")
	ErrDisposed       = errors.New("engine: scene disposed")
)

// Canvas is the drawing surface a scene appends to its container.
type Canvas struct {
	Name       string
	Width      int32
	Height     int32
	PixelRatio float32
}

// Container is the host a scene mounts into. It supplies the viewport and
// accepts exactly one canvas at a time.
type Container interface {
	Available() bool
	Viewport() layout.Viewport
	PixelRatio() float32
	AppendCanvas(c *Canvas) error
	RemoveCanvas(c *Canvas)
	ContainsCanvas(c *Canvas) bool
}

// ResizeSource notifies subscribers of viewport changes. The returned function
// removes the subscription and is safe to call more than once.
type ResizeSource interface {
	OnResize(fn func(layout.Viewport)) (unsubscribe func())
}

type FrameID uint64

// FrameSource runs callbacks at the display's refresh cadence, one shot per
// request.
type FrameSource interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}
