package zmachine

// TextStyle is the bitmask passed to set_text_style (a v4+ opcode); no v3
// handler ever constructs one.
type TextStyle int

const (
	Roman        TextStyle = 0b0000_0001
	Bold         TextStyle = 0b0000_0010
	Italic       TextStyle = 0b0000_0100
	ReverseVideo TextStyle = 0b0000_1000
	FixedPitch   TextStyle = 0b0001_0000
)

// Color is a set_colour (v5+) colour code.
type Color int

const (
	ColorCurrent Color = iota
	ColorDefault
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Hex renders the colour as an RGB triple for a terminal front end;
// Current/Default have no fixed RGB value and fall back to the terminal's
// own default.
func (c Color) Hex() (string, bool) {
	switch c {
	case ColorBlack:
		return "#000000", true
	case ColorRed:
		return "#ff0000", true
	case ColorGreen:
		return "#00ff00", true
	case ColorYellow:
		return "#ffff00", true
	case ColorBlue:
		return "#0000ff", true
	case ColorMagenta:
		return "#ff00ff", true
	case ColorCyan:
		return "#00ffff", true
	case ColorWhite:
		return "#ffffff", true
	default:
		return "", false
	}
}

// ScreenModel is the two-window text/colour state that set_window,
// split_window, set_text_style and set_colour would mutate on a version
// that implements them. v3's Traits never populates this; it exists as
// the shape a v4+ Traits.Screen would be constructed from, so extending
// past v3 is adding a case to TraitsForVersion rather than inventing this
// bookkeeping from scratch.
type ScreenModel struct {
	LowerWindowActive bool

	UpperWindowHeight     int
	UpperWindowForeground Color
	UpperWindowBackground Color
	UpperWindowTextStyle  TextStyle

	LowerWindowForeground Color
	LowerWindowBackground Color
	LowerWindowTextStyle  TextStyle
}

func newScreenModel(foreground, background Color) *ScreenModel {
	return &ScreenModel{
		LowerWindowActive:     true,
		UpperWindowForeground: foreground,
		UpperWindowBackground: background,
		UpperWindowTextStyle:  Roman,
		LowerWindowForeground: background,
		LowerWindowBackground: foreground,
		LowerWindowTextStyle:  Roman,
	}
}
