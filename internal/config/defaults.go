package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Speed: SpeedNormal,
		Board: BoardConfig{
			Width:  30,
			Height: 20,
			Walls:  true,
		},
		Snake: SnakeBody{
			InitialLength: 3,
		},
	}
}
