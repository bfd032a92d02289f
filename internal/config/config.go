// Package config provides YAML-based configuration loading and difficulty
// presets for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains every tunable parameter of the simulation.
type RunnerConfig struct {
	Field     RunnerField     `yaml:"field"`
	Physics   RunnerPhysics   `yaml:"physics"`
	Player    RunnerPlayer    `yaml:"player"`
	Obstacles RunnerObstacles `yaml:"obstacles"`
	Timing    RunnerTiming    `yaml:"timing"`
}

// RunnerField defines the play field used when no host geometry is known.
type RunnerField struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"` // Ground thickness at the bottom of the field
}

// RunnerPhysics defines motion parameters.
// Velocities are expressed per 1/60 s reference frame.
type RunnerPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	JumpForce      float64 `yaml:"jump_force"` // Negative = upward
	InitialSpeed   float64 `yaml:"initial_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // Added per obstacle cleared
}

// RunnerPlayer defines the character box.
type RunnerPlayer struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"` // Fraction of field width from the left edge
}

// RunnerObstacles defines the obstacle box.
type RunnerObstacles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerTiming defines time-based parameters.
type RunnerTiming struct {
	SpawnIntervalMS int `yaml:"spawn_interval_ms"`
	MaxFrameDeltaMS int `yaml:"max_frame_delta_ms"` // Longer frame deltas are clamped
}

// SpawnInterval returns the obstacle spawn interval as a duration.
func (t RunnerTiming) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMS) * time.Millisecond
}

// MaxFrameDelta returns the largest delta a single Advance will simulate.
func (t RunnerTiming) MaxFrameDelta() time.Duration {
	return time.Duration(t.MaxFrameDeltaMS) * time.Millisecond
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid runner config")

// Validate checks that the configuration describes a playable simulation.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field size must be positive, got %gx%g", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	case c.Field.GroundHeight < 0:
		return fmt.Errorf("%w: ground_height must not be negative, got %g", ErrInvalidConfig, c.Field.GroundHeight)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive, got %gx%g", ErrInvalidConfig, c.Player.Width, c.Player.Height)
	case c.Player.OffsetX < 0 || c.Player.OffsetX >= 1:
		return fmt.Errorf("%w: player offset_x must be in [0, 1), got %g", ErrInvalidConfig, c.Player.OffsetX)
	case c.Field.Height-c.Field.GroundHeight < c.Player.Height:
		return fmt.Errorf("%w: field height %g leaves no room for a %g tall player above %g of ground", ErrInvalidConfig, c.Field.Height, c.Player.Height, c.Field.GroundHeight)
	case c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0:
		return fmt.Errorf("%w: obstacle size must be positive, got %gx%g", ErrInvalidConfig, c.Obstacles.Width, c.Obstacles.Height)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.JumpForce >= 0:
		return fmt.Errorf("%w: jump_force must be negative (upward), got %g", ErrInvalidConfig, c.Physics.JumpForce)
	case c.Physics.InitialSpeed < 0:
		return fmt.Errorf("%w: initial_speed must not be negative, got %g", ErrInvalidConfig, c.Physics.InitialSpeed)
	case c.Physics.SpeedIncrement < 0:
		return fmt.Errorf("%w: speed_increment must not be negative, got %g", ErrInvalidConfig, c.Physics.SpeedIncrement)
	case c.Timing.SpawnIntervalMS <= 0:
		return fmt.Errorf("%w: spawn_interval_ms must be positive, got %d", ErrInvalidConfig, c.Timing.SpawnIntervalMS)
	case c.Timing.MaxFrameDeltaMS <= 0:
		return fmt.Errorf("%w: max_frame_delta_ms must be positive, got %d", ErrInvalidConfig, c.Timing.MaxFrameDeltaMS)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
// Every preset keeps progression linear; only its slope and intercept change.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "use the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.InitialSpeed *= 0.8
		cfg.Physics.SpeedIncrement *= 0.5
	case DifficultyHard:
		cfg.Physics.InitialSpeed *= 1.3
		cfg.Physics.SpeedIncrement *= 1.5
	case DifficultyFixed:
		cfg.Physics.SpeedIncrement = 0
	}
}
