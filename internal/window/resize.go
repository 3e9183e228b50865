package window

import "Moonrise/internal/layout"

type resizeHub struct {
	next int
	subs map[int]func(layout.Viewport)
}

func newResizeHub() *resizeHub {
	return &resizeHub{subs: make(map[int]func(layout.Viewport))}
}

func (h *resizeHub) subscribe(fn func(layout.Viewport)) func() {
	id := h.next
	h.next++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}

func (h *resizeHub) publish(vp layout.Viewport) {
	// Subscribers may unsubscribe while being notified.
	fns := make([]func(layout.Viewport), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(vp)
	}
}
