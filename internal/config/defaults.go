package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: RunnerField{
			Width:        800,
			Height:       300,
			GroundHeight: 20,
		},
		Physics: RunnerPhysics{
			Gravity:        0.4,
			JumpForce:      -16,
			InitialSpeed:   5,
			SpeedIncrement: 0.1,
		},
		Player: RunnerPlayer{
			Width:   50,
			Height:  50,
			OffsetX: 0.05,
		},
		Obstacles: RunnerObstacles{
			Width:  50,
			Height: 50,
		},
		Timing: RunnerTiming{
			SpawnIntervalMS: 2000,
			MaxFrameDeltaMS: 100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
