package platform

// Memory is the block handed to the application every frame. State is owned
// by the platform, App is free for the application to fill.
type Memory struct {
	// Initialized is flipped by the application once its first frame setup
	// has run.
	Initialized bool
	State       State
	App         any
}

func NewMemory(state State) *Memory {
	return &Memory{State: state}
}

// AppState returns the application slot as *T, allocating a zero T on first
// use. It panics if the slot already holds a different type, which only
// happens when two applications share one Memory.
func AppState[T any](m *Memory) *T {
	if m.App == nil {
		v := new(T)
		m.App = v
		return v
	}
	return m.App.(*T)
}
