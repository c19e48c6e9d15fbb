// Package config provides YAML-based game configuration loading for the
// simulation core. Every tunable constant of the world lives here.
package config

// FlappyConfig contains all configuration for the bird game.
type FlappyConfig struct {
	World  WorldConfig  `yaml:"world"`
	Bird   BirdConfig   `yaml:"bird"`
	Scroll ScrollConfig `yaml:"scroll"`
	Pipes  PipeConfig   `yaml:"pipes"`
}

// WorldConfig defines the dimensions of the world, in world units (y up).
type WorldConfig struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	MaxFrameDT float32 `yaml:"max_frame_dt"` // Running updates never step further than this
}

// MidPointY returns the vertical center of the world.
func (w WorldConfig) MidPointY() float32 {
	return w.Height / 2
}

// BirdConfig defines the player's body and physics.
type BirdConfig struct {
	X      float32 `yaml:"x"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`

	Radius  float32 `yaml:"radius"`
	OffsetX float32 `yaml:"offset_x"`
	OffsetY float32 `yaml:"offset_y"`

	Gravity      float32 `yaml:"gravity"`
	FlapImpulse  float32 `yaml:"flap_impulse"`
	MaxFallSpeed float32 `yaml:"max_fall_speed"`

	MaxRotation       float32 `yaml:"max_rotation"`
	MinRotation       float32 `yaml:"min_rotation"`
	RiseRotationSpeed float32 `yaml:"rise_rotation_speed"`
	FallRotationSpeed float32 `yaml:"fall_rotation_speed"`
	FallingThreshold  float32 `yaml:"falling_threshold"`

	BobAmplitude float32 `yaml:"bob_amplitude"`
	BobFrequency float32 `yaml:"bob_frequency"`
}

// ScrollConfig defines the ground strip and the shared scroll velocity.
type ScrollConfig struct {
	Speed       float32 `yaml:"speed"` // Horizontal velocity, negative scrolls left
	GrassWidth  int     `yaml:"grass_width"`
	GrassHeight int     `yaml:"grass_height"`
}

// PipeConfig defines obstacle geometry.
type PipeConfig struct {
	Width          int     `yaml:"width"`
	FirstX         float32 `yaml:"first_x"`
	Gap            float32 `yaml:"gap"`          // Horizontal distance tail to head
	VerticalGap    float32 `yaml:"vertical_gap"` // Clearance between lower and upper bar
	MinHeight      int     `yaml:"min_height"`
	HeightRange    int     `yaml:"height_range"`
	InitialHeights []int   `yaml:"initial_heights"`
}
