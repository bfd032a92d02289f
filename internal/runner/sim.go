// Package runner implements the side-scrolling runner simulation: a character
// jumps over obstacles scrolling in from the right, the run ends on collision,
// and score and speed grow as obstacles are cleared.
//
// The simulation is pure state. A frame driver calls Advance with wall-clock
// deltas, an input adapter calls Jump, and a renderer reads the accessors.
// A Sim is not safe for concurrent use; each driver owns its own instance.
package runner

import (
	"fmt"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// ReferenceFrame is the delta at which one unit of velocity moves one pixel.
// Physics constants are tuned per frame at 60 Hz; other deltas scale linearly.
const ReferenceFrame = time.Second / 60

// Phase is the state machine position of a run.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Character is the player-controlled box. Y grows downward.
type Character struct {
	X         float64 // Fixed horizontal offset of the left edge
	Y         float64 // Top edge; never greater than the ground rest position
	VelocityY float64 // Pixels per reference frame, negative = up
	W         float64
	H         float64
	Airborne  bool
}

// Rect returns the collision rectangle for the character.
func (c Character) Rect() core.RectF {
	return core.NewRectF(c.X, c.Y, c.W, c.H)
}

// Sim owns all runner state.
type Sim struct {
	cfg       config.RunnerConfig
	field     Field
	char      Character
	obstacles []Obstacle
	score     int
	speed     float64
	phase     Phase
	clock     time.Duration // Simulated time since the last reset
	lastSpawn time.Duration // Clock value of the last spawn (0 after reset)
}

// New creates a simulation in the running phase.
func New(cfg config.RunnerConfig, field Field) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}
	if err := field.Holds(cfg); err != nil {
		return nil, err
	}

	s := &Sim{
		cfg:       cfg,
		field:     field,
		obstacles: make([]Obstacle, 0, 8),
	}
	s.Reset()
	return s, nil
}

// Reset returns to the running phase with initial score, speed and a grounded
// character. Calling it repeatedly has the same effect as calling it once.
func (s *Sim) Reset() {
	s.score = 0
	s.speed = s.cfg.Physics.InitialSpeed
	s.phase = PhaseRunning
	s.obstacles = s.obstacles[:0]
	s.clock = 0
	s.lastSpawn = 0
	s.char = Character{
		X: s.field.Width * s.cfg.Player.OffsetX,
		Y: s.GroundY(),
		W: s.cfg.Player.Width,
		H: s.cfg.Player.Height,
	}
}

// Resize replaces the field geometry and resets the run.
func (s *Sim) Resize(field Field) error {
	if err := field.Validate(); err != nil {
		return err
	}
	if err := field.Holds(s.cfg); err != nil {
		return err
	}
	s.field = field
	s.Reset()
	return nil
}

// Jump starts a jump when grounded. While airborne it does nothing; after game
// over it restarts the run.
func (s *Sim) Jump() {
	switch {
	case s.phase == PhaseGameOver:
		s.Reset()
	case !s.char.Airborne:
		s.char.VelocityY = s.cfg.Physics.JumpForce
		s.char.Airborne = true
	}
}

// Advance simulates dt of elapsed time. Negative deltas count as zero and
// deltas above the configured maximum are clamped. The remaining time is
// split into steps short enough that no obstacle can skip past the character
// within one step. After game over it does nothing.
func (s *Sim) Advance(dt time.Duration) {
	if dt <= 0 || s.phase == PhaseGameOver {
		return
	}
	dt = min(dt, s.cfg.Timing.MaxFrameDelta())

	for dt > 0 && s.phase == PhaseRunning {
		step := min(dt, s.maxStep())
		s.step(step)
		dt -= step
	}
}

// maxStep bounds one integration step to ReferenceFrame, and further so that
// an obstacle moves at most half the combined box widths per step.
func (s *Sim) maxStep() time.Duration {
	reach := (s.cfg.Player.Width + s.cfg.Obstacles.Width) / 2
	if s.speed <= reach {
		return ReferenceFrame
	}
	step := time.Duration(float64(ReferenceFrame) * reach / s.speed)
	return max(step, time.Microsecond)
}

// step runs one integration step of length d.
func (s *Sim) step(d time.Duration) {
	timeScale := float64(d) / float64(ReferenceFrame)

	s.applyGravity(timeScale)

	s.clock += d
	s.spawnObstacle()

	s.scrollObstacles(timeScale)
}

// applyGravity integrates vertical motion and lands the character on the ground.
func (s *Sim) applyGravity(timeScale float64) {
	c := &s.char
	c.VelocityY += s.cfg.Physics.Gravity * timeScale
	c.Y += c.VelocityY * timeScale

	if ground := s.GroundY(); c.Y >= ground {
		c.Y = ground
		c.VelocityY = 0
		c.Airborne = false
	}
}

// GroundY returns the character's rest position: the largest Y it can have.
func (s *Sim) GroundY() float64 {
	return s.field.GroundLine() - s.cfg.Player.Height
}

// Score returns the number of obstacles cleared.
func (s *Sim) Score() int {
	return s.score
}

// Speed returns the current scroll speed in pixels per reference frame.
func (s *Sim) Speed() float64 {
	return s.speed
}

// GameOver reports whether the run has ended.
func (s *Sim) GameOver() bool {
	return s.phase == PhaseGameOver
}

// Phase returns the current state machine phase.
func (s *Sim) Phase() Phase {
	return s.phase
}

// Character returns a copy of the character state.
func (s *Sim) Character() Character {
	return s.char
}

// Obstacles returns a copy of the obstacles, oldest (leftmost) first.
func (s *Sim) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Field returns the current field geometry.
func (s *Sim) Field() Field {
	return s.field
}

// Elapsed returns the simulated time since the last reset.
func (s *Sim) Elapsed() time.Duration {
	return s.clock
}

// Config returns the configuration the simulation was built with.
func (s *Sim) Config() config.RunnerConfig {
	return s.cfg
}
