//go:build !windows

package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// styleWindow is a no-op outside Windows; the title bar belongs to the
// window manager.
func styleWindow(window *glfw.Window, clear mgl32.Vec4) {}
