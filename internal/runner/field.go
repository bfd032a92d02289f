package runner

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/neon-runner/internal/config"
)

// Field aspect ratio and the share of the host it may occupy.
const (
	FieldAspect = 800.0 / 300.0
	FieldFill   = 0.9
)

// Field is the play field geometry in world pixels.
// Ground occupies the bottom GroundHeight pixels.
type Field struct {
	Width        float64
	Height       float64
	GroundHeight float64
}

// FieldFromConfig returns the default field described by the config.
func FieldFromConfig(cfg config.RunnerConfig) Field {
	return Field{
		Width:        cfg.Field.Width,
		Height:       cfg.Field.Height,
		GroundHeight: cfg.Field.GroundHeight,
	}
}

// FitField computes the largest field with FieldAspect that fits inside
// FieldFill of a host of the given pixel size.
func FitField(hostW, hostH, groundHeight float64) Field {
	width := hostW * FieldFill
	height := width / FieldAspect

	if maxH := hostH * FieldFill; height > maxH {
		height = maxH
		width = height * FieldAspect
	}

	return Field{Width: width, Height: height, GroundHeight: groundHeight}
}

// GroundLine returns the y-coordinate of the ground's top surface.
func (f Field) GroundLine() float64 {
	return f.Height - f.GroundHeight
}

// ErrFieldTooSmall is returned for fields whose ground line sits above the
// top of a standing character.
var ErrFieldTooSmall = errors.New("runner: field too short for the character")

// Holds reports whether a character from cfg can stand on the ground of f.
func (f Field) Holds(cfg config.RunnerConfig) error {
	if f.GroundLine() < cfg.Player.Height {
		return fmt.Errorf("%w: ground line at %g, character is %g tall", ErrFieldTooSmall, f.GroundLine(), cfg.Player.Height)
	}
	return nil
}

// Validate reports whether the field can host a simulation.
func (f Field) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("runner: field size must be positive, got %gx%g", f.Width, f.Height)
	}
	if f.GroundHeight < 0 {
		return fmt.Errorf("runner: ground height must not be negative, got %g", f.GroundHeight)
	}
	return nil
}
