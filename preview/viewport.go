package preview

// Mode is the requested preview viewport.
type Mode string

const (
	ModeMobile  Mode = "mobile"
	ModeTablet  Mode = "tablet"
	ModeDesktop Mode = "desktop"
)

// Modes lists the valid viewport modes.
func Modes() []Mode { return []Mode{ModeMobile, ModeTablet, ModeDesktop} }

// Viewport is the fixed geometry of one mode. Desktop is fluid: Width 0
// means 100% of the hosting frame.
type Viewport struct {
	Mode  Mode
	Width int
	Fluid bool
}

// MinHeight is the floor for reported content heights, in pixels. The frame
// never collapses below it, even for an empty document.
const MinHeight = 480

// ViewportFor maps a mode to its geometry. Unknown modes get the mobile
// viewport — the safest thing to render.
func ViewportFor(m Mode) Viewport {
	switch m {
	case ModeTablet:
		return Viewport{Mode: ModeTablet, Width: 768}
	case ModeDesktop:
		return Viewport{Mode: ModeDesktop, Fluid: true}
	default:
		return Viewport{Mode: ModeMobile, Width: 375}
	}
}
