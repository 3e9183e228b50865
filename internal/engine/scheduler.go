package engine

// Scheduler drives tick then render once per display frame until cancelled.
type Scheduler struct {
	frames FrameSource
	tick   func()
	render func()

	pending    FrameID
	hasPending bool
	running    bool
	cancelled  bool
	count      uint64
}

func NewScheduler(frames FrameSource, tick, render func()) *Scheduler {
	return &Scheduler{frames: frames, tick: tick, render: render}
}

func (s *Scheduler) Start() {
	if s.running || s.cancelled {
		return
	}
	s.running = true
	s.schedule()
}

func (s *Scheduler) schedule() {
	s.pending = s.frames.RequestFrame(s.step)
	s.hasPending = true
}

func (s *Scheduler) step() {
	s.hasPending = false
	// A callback queued before Cancel may still be delivered.
	if s.cancelled {
		return
	}
	s.tick()
	s.render()
	s.count++
	if !s.cancelled {
		s.schedule()
	}
}

// Cancel stops the loop. It is idempotent and safe after the surface is gone.
func (s *Scheduler) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	s.running = false
	if s.hasPending {
		s.frames.CancelFrame(s.pending)
		s.hasPending = false
	}
}

func (s *Scheduler) Cancelled() bool {
	return s.cancelled
}

// Frames reports how many frames have run.
func (s *Scheduler) Frames() uint64 {
	return s.count
}
