package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"Beneath/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrBufferTooSmall is returned by FileRead when the destination cannot hold
// the whole file.
var ErrBufferTooSmall = errors.New("platform: buffer too small for file")

// API is the set of capabilities the platform hands to the application.
// The application never calls the OS or the GPU directly.
type API interface {
	Print(file string, line int, msg string)

	FileSize(name string) (int64, error)
	FileRead(name string, buf []byte) (int, error)
	FileWrite(name string, data []byte) error

	Sleep(milliseconds uint32)

	CycleCount() uint64
	Nanoseconds() float64

	// GraphicsDraw renders dc for this frame. A false return means the draw
	// was skipped and the reason was already logged.
	GraphicsDraw(state *State, dc *renderer.DrawCall, projectionView, projectionInverse, viewInverse mgl32.Mat4, cameraPosition mgl32.Vec3) bool
}

// UpdateFunc is the application entry point, called once per frame.
type UpdateFunc func(mem *Memory, in *Input, api API)

// Printf formats and prints through api, tagging the message with the
// caller's file and line.
func Printf(api API, format string, args ...any) {
	file, line := "?", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = filepath.Base(f), l
	}
	api.Print(file, line, fmt.Sprintf(format, args...))
}
