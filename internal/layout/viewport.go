package layout

// Breakpoint is the viewport width separating Mobile from Desktop.
const Breakpoint = 768

type DeviceClass int

const (
	Desktop DeviceClass = iota
	Mobile
)

func (c DeviceClass) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Viewport is the host's drawable size in logical pixels.
type Viewport struct {
	Width  int32
	Height int32
}

// Classify is the single source of the device classification. Every
// device-dependent decision goes through it.
func Classify(width int32) DeviceClass {
	if width < Breakpoint {
		return Mobile
	}
	return Desktop
}

func (v Viewport) Class() DeviceClass {
	return Classify(v.Width)
}

// Aspect returns Width/Height, or 1 for a degenerate (zero height) viewport.
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
