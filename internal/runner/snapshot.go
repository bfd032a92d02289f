package runner

import "time"

// Snapshot contains the complete observable state of a run.
// Compare snapshots with Equal; the obstacle slice rules out ==.
type Snapshot struct {
	Phase     Phase
	Score     int
	Speed     float64
	Elapsed   time.Duration
	Field     Field
	Character Character
	Obstacles []Obstacle
}

// Snapshot returns the current state.
func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Phase:     s.phase,
		Score:     s.score,
		Speed:     s.speed,
		Elapsed:   s.clock,
		Field:     s.field,
		Character: s.char,
		Obstacles: s.Obstacles(),
	}
}

// Equal reports whether two snapshots describe the same state.
func (a Snapshot) Equal(b Snapshot) bool {
	if a.Phase != b.Phase || a.Score != b.Score || a.Speed != b.Speed ||
		a.Elapsed != b.Elapsed || a.Field != b.Field || a.Character != b.Character {
		return false
	}
	if len(a.Obstacles) != len(b.Obstacles) {
		return false
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			return false
		}
	}
	return true
}
