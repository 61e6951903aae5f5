package screen

// Rotation defines pixel rotation of a display panel.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// ParseRotation parses the rotation names accepted on the command line.
func ParseRotation(s string) (Rotation, bool) {
	switch s {
	case "", "no", "0":
		return NoRotation, true
	case "90", "right", "cw":
		return Rotate90, true
	case "180", "flip":
		return Rotate180, true
	case "270", "left", "ccw":
		return Rotate270, true
	default:
		return NoRotation, false
	}
}
