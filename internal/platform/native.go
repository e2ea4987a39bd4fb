package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"Beneath/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// NativeAPI implements API on top of the operating system and a renderer.
type NativeAPI struct {
	// Root prefixes every relative file name. Empty means the working
	// directory.
	Root string

	render renderer.Render
	log    *zap.Logger
	start  time.Time
}

var _ API = (*NativeAPI)(nil)

func NewNativeAPI(render renderer.Render, log *zap.Logger) *NativeAPI {
	if log == nil {
		log = zap.NewNop()
	}
	return &NativeAPI{render: render, log: log, start: time.Now()}
}

// SetRender replaces the renderer used by GraphicsDraw. The caller releases
// the previous one.
func (a *NativeAPI) SetRender(render renderer.Render) {
	a.render = render
}

func (a *NativeAPI) Print(file string, line int, msg string) {
	a.log.Info(strings.TrimRight(msg, "\n"), zap.String("file", file), zap.Int("line", line))
}

func (a *NativeAPI) path(name string) string {
	if a.Root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.Root, name)
}

func (a *NativeAPI) FileSize(name string) (int64, error) {
	info, err := os.Stat(a.path(name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// FileRead reads the whole file into buf and returns the byte count.
func (a *NativeAPI) FileRead(name string, buf []byte) (int, error) {
	f, err := os.Open(a.path(name))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.Size() > int64(len(buf)) {
		return 0, fmt.Errorf("%w: %s is %d bytes, buffer holds %d", ErrBufferTooSmall, name, info.Size(), len(buf))
	}
	return io.ReadFull(f, buf[:info.Size()])
}

func (a *NativeAPI) FileWrite(name string, data []byte) error {
	return os.WriteFile(a.path(name), data, 0o644)
}

func (a *NativeAPI) Sleep(milliseconds uint32) {
	time.Sleep(time.Duration(milliseconds) * time.Millisecond)
}

// CycleCount is a monotonic tick counter. It counts nanoseconds, which is
// as fine as the runtime exposes.
func (a *NativeAPI) CycleCount() uint64 {
	return uint64(time.Since(a.start))
}

func (a *NativeAPI) Nanoseconds() float64 {
	return float64(time.Since(a.start).Nanoseconds())
}

func (a *NativeAPI) GraphicsDraw(state *State, dc *renderer.DrawCall, projectionView, projectionInverse, viewInverse mgl32.Mat4, cameraPosition mgl32.Vec3) bool {
	frame := renderer.Frame{
		Time:              state.Time,
		DeltaTime:         state.DeltaTime,
		Width:             int32(state.WindowWidth),
		Height:            int32(state.WindowHeight),
		ProjectionView:    projectionView,
		ProjectionInverse: projectionInverse,
		ViewInverse:       viewInverse,
		CameraPosition:    cameraPosition,
	}
	if err := a.render.Draw(frame, dc); err != nil {
		meshID := -1
		if dc != nil && dc.Mesh != nil {
			meshID = dc.Mesh.ID
		}
		a.log.Error("Draw call skipped", zap.Int("mesh", meshID), zap.Error(err))
		return false
	}
	return true
}
