package window

import (
	"Moonrise/internal/engine"
	"sort"
)

// frameQueue holds one-shot frame callbacks. Callbacks requested while a
// batch runs wait for the next batch.
type frameQueue struct {
	next    engine.FrameID
	pending map[engine.FrameID]func()
}

func newFrameQueue() *frameQueue {
	return &frameQueue{pending: make(map[engine.FrameID]func())}
}

func (q *frameQueue) request(fn func()) engine.FrameID {
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *frameQueue) cancel(id engine.FrameID) {
	delete(q.pending, id)
}

// drain removes and returns the queued callbacks in request order.
func (q *frameQueue) drain() []func() {
	if len(q.pending) == 0 {
		return nil
	}
	ids := make([]engine.FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	batch := make([]func(), len(ids))
	for i, id := range ids {
		batch[i] = q.pending[id]
		delete(q.pending, id)
	}
	return batch
}

func (q *frameQueue) len() int {
	return len(q.pending)
}
