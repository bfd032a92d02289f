package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the neon renderer.
const (
	ColorDefault Color = iota
	ColorNeonRed
	ColorGlowRed
	ColorGround
	ColorObstacle
	ColorText
	ColorDim
)
