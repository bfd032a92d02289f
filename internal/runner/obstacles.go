package runner

import (
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Obstacle is a ground hazard scrolling toward the character.
type Obstacle struct {
	X float64 // Left edge
	Y float64 // Top edge, fixed so the box rests on the ground
	W float64
	H float64
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}

// OffScreen reports whether the obstacle has fully left the field on the left.
func (o Obstacle) OffScreen() bool {
	return o.X+o.W < 0
}

// spawnObstacle appends a new obstacle at the right edge of the field once
// more than one spawn interval of simulated time has passed since the last one.
func (s *Sim) spawnObstacle() {
	if s.clock-s.lastSpawn <= s.cfg.Timing.SpawnInterval() {
		return
	}

	w, h := s.cfg.Obstacles.Width, s.cfg.Obstacles.Height
	s.obstacles = append(s.obstacles, Obstacle{
		X: s.field.Width,
		Y: s.field.GroundLine() - h,
		W: w,
		H: h,
	})
	s.lastSpawn = s.clock
}

// scrollObstacles moves obstacles left oldest first, detecting collisions and
// retiring obstacles that left the field.
// On collision the phase switches to game over and the remaining obstacles are
// left untouched for this step.
func (s *Sim) scrollObstacles(timeScale float64) {
	player := s.char.Rect()
	kept := s.obstacles[:0]

	for i, o := range s.obstacles {
		o.X -= s.speed * timeScale

		if o.Rect().Intersects(player) {
			s.phase = PhaseGameOver
			kept = append(kept, o)
			s.obstacles = append(kept, s.obstacles[i+1:]...)
			return
		}

		if o.OffScreen() {
			s.score++
			s.speed += s.cfg.Physics.SpeedIncrement
			continue
		}

		kept = append(kept, o)
	}

	s.obstacles = kept
}
