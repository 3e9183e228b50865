package engine

import "testing"

func TestSchedulerTicksBeforeRender(t *testing.T) {
	log := &eventLog{}
	frames := newManualFrames(log)
	s := NewScheduler(frames, func() { log.add("tick") }, func() { log.add("render") })
	s.Start()

	for i := 0; i < 3; i++ {
		if n := frames.Flush(); n != 1 {
			t.Fatalf("Flush %d ran %d callbacks, want 1", i, n)
		}
	}

	want := []string{"tick", "render", "tick", "render", "tick", "render"}
	if len(log.events) != len(want) {
		t.Fatalf("events = %v, want %v", log.events, want)
	}
	for i := range want {
		if log.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, log.events[i], want[i])
		}
	}
	if s.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", s.Frames())
	}
}

func TestSchedulerStartTwiceQueuesOneFrame(t *testing.T) {
	frames := newManualFrames(&eventLog{})
	s := NewScheduler(frames, func() {}, func() {})
	s.Start()
	s.Start()
	if frames.pending() != 1 {
		t.Errorf("pending = %d, want 1", frames.pending())
	}
}

func TestSchedulerCancelStopsLoop(t *testing.T) {
	log := &eventLog{}
	frames := newManualFrames(log)
	ticks := 0
	s := NewScheduler(frames, func() { ticks++ }, func() {})
	s.Start()
	frames.Flush()

	s.Cancel()
	if log.count("cancel-frame") != 1 {
		t.Errorf("cancel-frame events = %d, want 1", log.count("cancel-frame"))
	}
	if frames.pending() != 0 {
		t.Errorf("pending after Cancel = %d, want 0", frames.pending())
	}
	frames.Flush()
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}

	s.Cancel()
	if log.count("cancel-frame") != 1 {
		t.Errorf("second Cancel reached the frame source")
	}
	if !s.Cancelled() {
		t.Errorf("Cancelled() = false")
	}
}

func TestSchedulerLateCallbackIsInert(t *testing.T) {
	frames := newManualFrames(&eventLog{})
	ticks, renders := 0, 0
	s := NewScheduler(frames, func() { ticks++ }, func() { renders++ })
	s.Start()

	var late func()
	for _, fn := range frames.queue {
		late = fn
	}
	s.Cancel()
	late()

	if ticks != 0 || renders != 0 {
		t.Errorf("late callback ran tick=%d render=%d", ticks, renders)
	}
	if frames.pending() != 0 {
		t.Errorf("late callback rescheduled itself")
	}
}

func TestSchedulerCancelDuringTick(t *testing.T) {
	frames := newManualFrames(&eventLog{})
	renders := 0
	var s *Scheduler
	s = NewScheduler(frames, func() { s.Cancel() }, func() { renders++ })
	s.Start()
	frames.Flush()

	if frames.pending() != 0 {
		t.Errorf("scheduler rescheduled after Cancel inside tick")
	}
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
}

func TestSchedulerCancelBeforeStart(t *testing.T) {
	frames := newManualFrames(&eventLog{})
	s := NewScheduler(frames, func() {}, func() {})
	s.Cancel()
	s.Start()
	if frames.pending() != 0 {
		t.Errorf("cancelled scheduler started")
	}
}
