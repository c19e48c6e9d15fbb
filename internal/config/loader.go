package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive the world.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// groundClearance is how far below the vertical midpoint the grass strip starts.
const groundClearance = 77

// LoadFlappy loads the world configuration.
// Search order: customPath -> ~/.zombiebird/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so partial files only override
// the keys they name, and validates the result.
func parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable world.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.World.MaxFrameDT <= 0:
		return fmt.Errorf("%w: max_frame_dt must be positive", ErrInvalidConfig)
	case c.World.MidPointY()-groundClearance < 0:
		return fmt.Errorf("%w: world height %.0f leaves no room for the ground", ErrInvalidConfig, c.World.Height)
	case c.Bird.Gravity >= 0:
		return fmt.Errorf("%w: gravity must be negative (y points up)", ErrInvalidConfig)
	case c.Bird.Radius <= 0 || c.Bird.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: bird radius and max_fall_speed must be positive", ErrInvalidConfig)
	case c.Bird.MinRotation > c.Bird.MaxRotation:
		return fmt.Errorf("%w: min_rotation exceeds max_rotation", ErrInvalidConfig)
	case c.Scroll.Speed >= 0:
		return fmt.Errorf("%w: scroll speed must be negative", ErrInvalidConfig)
	case c.Scroll.GrassWidth <= 0 || c.Scroll.GrassHeight <= 0:
		return fmt.Errorf("%w: grass size must be positive", ErrInvalidConfig)
	case c.Pipes.Width <= 0 || c.Pipes.HeightRange <= 0 || c.Pipes.MinHeight < 0:
		return fmt.Errorf("%w: pipe width and height range must be positive", ErrInvalidConfig)
	case len(c.Pipes.InitialHeights) != 3:
		return fmt.Errorf("%w: initial_heights needs exactly 3 entries", ErrInvalidConfig)
	case c.Pipes.VerticalGap <= 0:
		return fmt.Errorf("%w: vertical_gap must be positive", ErrInvalidConfig)
	}

	// The tallest lower bar plus the gap must still fit under the ceiling.
	top := c.PipeY() + float32(c.tallestPipe()) + c.Pipes.VerticalGap
	if top > c.World.Height {
		return fmt.Errorf("%w: pipes reach y %.0f above world height %.0f", ErrInvalidConfig, top, c.World.Height)
	}
	return nil
}

// PipeY returns the world y where pipes stand, on top of the grass.
func (c FlappyConfig) PipeY() float32 {
	return c.GroundY() + float32(c.Scroll.GrassHeight)
}

func (c FlappyConfig) tallestPipe() int {
	tallest := c.Pipes.MinHeight + c.Pipes.HeightRange - 1
	for _, h := range c.Pipes.InitialHeights {
		tallest = max(tallest, h)
	}
	return tallest
}

// GroundY returns the world y of the bottom of the grass strip.
func (c FlappyConfig) GroundY() float32 {
	return c.World.MidPointY() - groundClearance
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zombiebird", "configs", filename)
}
