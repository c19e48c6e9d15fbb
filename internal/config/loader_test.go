package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg := DefaultFlappyConfig()
	var fromYAML FlappyConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))

	assert.Equal(t, cfg, fromYAML)
	require.NoError(t, cfg.Validate())
}

func TestLoadFlappyCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("scroll:\n  speed: -80\npipes:\n  initial_heights: [20, 30, 40]\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadFlappy(path)
	require.NoError(t, err)

	assert.Equal(t, float32(-80), cfg.Scroll.Speed)
	assert.Equal(t, []int{20, 30, 40}, cfg.Pipes.InitialHeights)
	// Untouched keys keep their defaults
	assert.Equal(t, float32(-460), cfg.Bird.Gravity)
	assert.Equal(t, float32(45), cfg.Pipes.VerticalGap)
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	_, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFlappyRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bird:\n  gravity: 100\n"), 0o600))

	_, err := LoadFlappy(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero width", func(c *FlappyConfig) { c.World.Width = 0 }},
		{"too short for ground", func(c *FlappyConfig) { c.World.Height = 100 }},
		{"positive scroll", func(c *FlappyConfig) { c.Scroll.Speed = 10 }},
		{"rotation inverted", func(c *FlappyConfig) { c.Bird.MinRotation = 30 }},
		{"two pipes", func(c *FlappyConfig) { c.Pipes.InitialHeights = []int{10, 20} }},
		{"no frame clamp", func(c *FlappyConfig) { c.World.MaxFrameDT = 0 }},
		{"pipes above ceiling", func(c *FlappyConfig) { c.World.Height = 160 }},
		{"pipe range too wide", func(c *FlappyConfig) { c.Pipes.HeightRange = 130 }},
		{"initial pipe too tall", func(c *FlappyConfig) { c.Pipes.InitialHeights = []int{60, 130, 60} }},
		{"no vertical gap", func(c *FlappyConfig) { c.Pipes.VerticalGap = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestGroundY(t *testing.T) {
	cfg := DefaultFlappyConfig()
	assert.Equal(t, float32(102), cfg.World.MidPointY())
	assert.Equal(t, float32(25), cfg.GroundY())
	assert.Equal(t, float32(36), cfg.PipeY())
}

func TestValidateTallestPipeFitsExactly(t *testing.T) {
	cfg := DefaultFlappyConfig()
	// Pipes stand at height/2 - 66; the tallest bar (104) plus the gap (45)
	// tops out at height/2 + 83, which fits exactly when height is 166.
	cfg.World.Height = 166
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(17), cfg.PipeY())

	cfg.World.Height--
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
