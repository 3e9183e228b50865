//go:build windows

package window

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	dwmwaUseImmersiveDarkMode = 20
	dwmwaBorderColor          = 34
	dwmwaCaptionColor         = 35

	// COLORREF values are 0x00BBGGRR.
	nightCaption = 0x00000000
	nightBorder  = 0x00000000
)

// setDarkTitleBar blends the title bar into the night sky behind the scene.
func setDarkTitleBar(window *glfw.Window) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}

	setAttribute := func(attr uintptr, value uint32) {
		procDwmSetWindowAttribute.Call(
			uintptr(unsafe.Pointer(hwnd)),
			attr,
			uintptr(unsafe.Pointer(&value)),
			unsafe.Sizeof(value),
		)
	}
	setAttribute(dwmwaUseImmersiveDarkMode, 1)
	setAttribute(dwmwaBorderColor, nightBorder)
	setAttribute(dwmwaCaptionColor, nightCaption)
}
