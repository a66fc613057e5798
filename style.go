package ui

// Spacing constants for consistent layout (similar to Tailwind spacing scale).
const (
	SpaceNone float32 = 0
	SpaceXS   float32 = 2
	SpaceSM   float32 = 4
	SpaceMD   float32 = 8
	SpaceLG   float32 = 12
	SpaceXL   float32 = 16
)

// Border describes a rectangle outline. Width 0 disables it.
type Border struct {
	Color uint32
	Width float32
}

// Shadow is a flat offset shadow drawn beneath the background.
type Shadow struct {
	Color  uint32
	Offset Vec2
}

// Style is the resolved appearance of a component for a single state.
// Zero colors are treated as "not set" and skipped by the renderer.
type Style struct {
	Background uint32
	Border     Border
	Shadow     Shadow
	TextColor  uint32
	TextSize   float32
}

// ComponentState is the interaction state used to pick a Style.
type ComponentState uint8

const (
	StateIdle ComponentState = iota
	StateHover
	StatePressed
	StateDisabled
)

func (s ComponentState) String() string {
	switch s {
	case StateHover:
		return "hover"
	case StatePressed:
		return "pressed"
	case StateDisabled:
		return "disabled"
	default:
		return "idle"
	}
}

// InteractiveStyle holds one Style per interaction state.
type InteractiveStyle struct {
	Idle     Style
	Hover    Style
	Pressed  Style
	Disabled Style
}

// Resolve returns the style for state. States left as the zero Style fall
// back to Idle, so callers only need to fill in what differs.
func (s InteractiveStyle) Resolve(state ComponentState) Style {
	var st Style
	switch state {
	case StateHover:
		st = s.Hover
	case StatePressed:
		st = s.Pressed
		if st == (Style{}) {
			st = s.Hover
		}
	case StateDisabled:
		st = s.Disabled
	default:
		return s.Idle
	}
	if st == (Style{}) {
		return s.Idle
	}
	return st
}

// UniformStyle builds an InteractiveStyle that looks the same in every state.
func UniformStyle(st Style) InteractiveStyle {
	return InteractiveStyle{Idle: st}
}

// buttonStyle is the fallback look of Button when none is configured.
func buttonStyle() InteractiveStyle {
	return InteractiveStyle{
		Idle: Style{
			Background: RGBA(50, 50, 55, 255),
			Border:     Border{Color: RGBA(80, 80, 85, 255), Width: 1},
			TextColor:  ColorWhite,
		},
		Hover: Style{
			Background: RGBA(70, 70, 78, 255),
			Border:     Border{Color: RGBA(110, 110, 120, 255), Width: 1},
			TextColor:  ColorWhite,
		},
		Pressed: Style{
			Background: RGBA(90, 90, 100, 255),
			Border:     Border{Color: RGBA(140, 140, 150, 255), Width: 1},
			TextColor:  ColorWhite,
		},
		Disabled: Style{
			Background: RGBA(30, 30, 32, 255),
			TextColor:  ColorGray,
		},
	}
}
