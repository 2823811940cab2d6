package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		AnnotationsFile:    "annotations.yaml",
		UndoStackDepth:     100,
		RateLimitPerMinute: 300,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("zero rate limit disables limiting", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimitPerMinute = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("negative rate limit rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimitPerMinute = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("undo depth must be positive", func(t *testing.T) {
		cfg := validConfig()
		cfg.UndoStackDepth = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("annotations file required", func(t *testing.T) {
		cfg := validConfig()
		cfg.AnnotationsFile = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production auth needs a secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.EnableAuth = true
		assert.Error(t, cfg.Validate())

		cfg.JWTSecret = "secret"
		assert.NoError(t, cfg.Validate())
	})
}
