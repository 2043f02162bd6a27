package core

// Color is the foreground colour of a screen cell.
// Values map to ANSI 256-colour codes in the platform renderer.
type Color uint8

// Palette used by the 2048 board and HUD.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorBlue
	ColorCyan
	ColorGreen
	ColorBrightYellow
	ColorBrightRed
	ColorBrightMagenta
	ColorBrightWhite
)
