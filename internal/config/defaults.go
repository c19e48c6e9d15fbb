package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in world configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:      136,
			Height:     204,
			MaxFrameDT: 0.15,
		},
		Bird: BirdConfig{
			X:      33,
			Width:  17,
			Height: 12,

			Radius:  6.5,
			OffsetX: 9,
			OffsetY: 6,

			Gravity:      -460,
			FlapImpulse:  140,
			MaxFallSpeed: 200,

			MaxRotation:       20,
			MinRotation:       -90,
			RiseRotationSpeed: 600,
			FallRotationSpeed: 480,
			FallingThreshold:  110,

			BobAmplitude: 2,
			BobFrequency: 7,
		},
		Scroll: ScrollConfig{
			Speed:       -59,
			GrassWidth:  143,
			GrassHeight: 11,
		},
		Pipes: PipeConfig{
			Width:          22,
			FirstX:         210,
			Gap:            49,
			VerticalGap:    45,
			MinHeight:      15,
			HeightRange:    90,
			InitialHeights: []int{60, 70, 60},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
