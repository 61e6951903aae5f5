package screen

import "fmt"

// State of a Screen.
type State uint8

// Screen states, in initialization order.
const (
	Uninit      State = iota // Nothing acquired
	DeviceReady              // Window and surface exist
	BufferReady              // Frame buffer allocated
	Ready                    // Presentation texture created; per-frame operations are valid
	Failed                   // Initialization failed, teardown pending
)

func (s State) String() string {
	switch s {
	case Uninit:
		return "uninitialized"
	case DeviceReady:
		return "device ready"
	case BufferReady:
		return "buffer ready"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
