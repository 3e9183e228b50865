package celestial

// AnimationState is either Entering or Steady. The set of variants is closed.
type AnimationState interface {
	isAnimationState()
}

// Entering is the entrance animation; Progress runs from 0 to 1.
type Entering struct {
	Progress float32
}

// Steady follows the target with exponential smoothing. It is terminal.
type Steady struct{}

func (Entering) isAnimationState() {}
func (Steady) isAnimationState()   {}

func IsSteady(s AnimationState) bool {
	_, ok := s.(Steady)
	return ok
}

// Progress reports entrance progress; Steady counts as complete.
func Progress(s AnimationState) float32 {
	if e, ok := s.(Entering); ok {
		return e.Progress
	}
	return 1
}
