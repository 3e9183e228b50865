package engine

import (
	"Moonrise/internal/layout"
	"Moonrise/internal/renderer"
	"errors"
	"image"
	"sort"
)

type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) {
	l.events = append(l.events, e)
}

func (l *eventLog) count(e string) int {
	n := 0
	for _, got := range l.events {
		if got == e {
			n++
		}
	}
	return n
}

func (l *eventLog) index(e string) int {
	for i, got := range l.events {
		if got == e {
			return i
		}
	}
	return -1
}

type fakeBackend struct {
	log       *eventLog
	initErr   error
	uploadErr error
	// failAt is the 1-based upload call that returns uploadErr.
	failAt    int
	uploads   int
	width     int32
	height    int32
	ratio     float32
	uploaded  map[*renderer.Mesh]bool
	textures  map[uint32]bool
	nextTex   uint32
	frames    []renderer.Frame
	cleanedUp bool
}

func newFakeBackend(log *eventLog) *fakeBackend {
	return &fakeBackend{
		log:      log,
		uploaded: make(map[*renderer.Mesh]bool),
		textures: make(map[uint32]bool),
	}
}

func (b *fakeBackend) Init(w, h int32, ratio float32) error {
	b.log.add("init")
	if b.initErr != nil {
		return b.initErr
	}
	b.width, b.height, b.ratio = w, h, ratio
	return nil
}

func (b *fakeBackend) Resize(w, h int32, ratio float32) {
	b.log.add("resize")
	b.width, b.height, b.ratio = w, h, ratio
}

func (b *fakeBackend) Upload(m *renderer.Mesh) error {
	b.uploads++
	if b.uploadErr != nil && b.uploads == b.failAt {
		return b.uploadErr
	}
	b.uploaded[m] = true
	return nil
}

func (b *fakeBackend) Release(m *renderer.Mesh) {
	delete(b.uploaded, m)
}

func (b *fakeBackend) CreateTexture(img image.Image, opts renderer.TextureOptions) (uint32, error) {
	b.nextTex++
	b.textures[b.nextTex] = true
	return b.nextTex, nil
}

func (b *fakeBackend) DeleteTexture(id uint32) {
	delete(b.textures, id)
}

func (b *fakeBackend) Draw(f *renderer.Frame) {
	b.log.add("draw")
	b.frames = append(b.frames, *f)
}

func (b *fakeBackend) Cleanup() {
	b.log.add("cleanup")
	b.cleanedUp = true
}

func (b *fakeBackend) lastFrame() renderer.Frame {
	return b.frames[len(b.frames)-1]
}

type fakeContainer struct {
	log       *eventLog
	missing   bool
	viewport  layout.Viewport
	ratio     float32
	canvases  []*Canvas
	appendErr error
}

func newFakeContainer(log *eventLog, w, h int32) *fakeContainer {
	return &fakeContainer{log: log, viewport: layout.Viewport{Width: w, Height: h}, ratio: 1}
}

func (c *fakeContainer) Available() bool           { return !c.missing }
func (c *fakeContainer) Viewport() layout.Viewport { return c.viewport }
func (c *fakeContainer) PixelRatio() float32       { return c.ratio }

func (c *fakeContainer) AppendCanvas(cv *Canvas) error {
	if c.appendErr != nil {
		return c.appendErr
	}
	if len(c.canvases) > 0 {
		return errors.New("canvas slot taken")
	}
	c.log.add("append-canvas")
	c.canvases = append(c.canvases, cv)
	return nil
}

func (c *fakeContainer) RemoveCanvas(cv *Canvas) {
	for i, got := range c.canvases {
		if got == cv {
			c.log.add("remove-canvas")
			c.canvases = append(c.canvases[:i], c.canvases[i+1:]...)
			return
		}
	}
}

func (c *fakeContainer) ContainsCanvas(cv *Canvas) bool {
	for _, got := range c.canvases {
		if got == cv {
			return true
		}
	}
	return false
}

type fakeResizes struct {
	log  *eventLog
	subs map[int]func(layout.Viewport)
	next int
	// last keeps the most recent callback even after it unsubscribes, so
	// tests can deliver a late event.
	last func(layout.Viewport)
}

func newFakeResizes(log *eventLog) *fakeResizes {
	return &fakeResizes{log: log, subs: make(map[int]func(layout.Viewport))}
}

func (r *fakeResizes) OnResize(fn func(layout.Viewport)) func() {
	id := r.next
	r.next++
	r.subs[id] = fn
	r.last = fn
	return func() {
		if _, ok := r.subs[id]; ok {
			r.log.add("unsubscribe")
			delete(r.subs, id)
		}
	}
}

func (r *fakeResizes) emit(vp layout.Viewport) {
	for _, fn := range r.subs {
		fn(vp)
	}
}

// manualFrames queues callbacks until Flush, like a display that only
// refreshes when told to.
type manualFrames struct {
	log    *eventLog
	queue  map[FrameID]func()
	nextID FrameID
}

func newManualFrames(log *eventLog) *manualFrames {
	return &manualFrames{log: log, queue: make(map[FrameID]func())}
}

func (f *manualFrames) RequestFrame(fn func()) FrameID {
	f.nextID++
	f.queue[f.nextID] = fn
	return f.nextID
}

func (f *manualFrames) CancelFrame(id FrameID) {
	if _, ok := f.queue[id]; ok {
		f.log.add("cancel-frame")
		delete(f.queue, id)
	}
}

// Flush runs every callback queued before the call, in request order.
func (f *manualFrames) Flush() int {
	ids := make([]FrameID, 0, len(f.queue))
	for id := range f.queue {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	batch := make([]func(), 0, len(ids))
	for _, id := range ids {
		batch = append(batch, f.queue[id])
		delete(f.queue, id)
	}
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (f *manualFrames) pending() int {
	return len(f.queue)
}
