package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadstorm/internal/engine"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/threadstorm.db", cfg.DatabasePath)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, 500, cfg.MaxCharsPerPost)
		assert.Equal(t, "professional", cfg.Tone)
		assert.True(t, cfg.IncludeNumbering)
		assert.True(t, cfg.EnableHook)
		assert.True(t, cfg.EnableCTA)
		assert.Equal(t, 3, cfg.ImageRhythm)
		assert.Equal(t, 40, cfg.MinPostChars)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("MAX_CHARS_PER_POST", "280")
		t.Setenv("TONE", "casual")
		t.Setenv("ENABLE_HOOK", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 280, cfg.MaxCharsPerPost)
		assert.Equal(t, "casual", cfg.Tone)
		assert.False(t, cfg.EnableHook)
	})

	t.Run("invalid integer fails", func(t *testing.T) {
		t.Setenv("MAX_CHARS_PER_POST", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid bool fails", func(t *testing.T) {
		t.Setenv("ENABLE_CTA", "maybe")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestEngineOptions(t *testing.T) {
	cfg := &Config{
		MaxCharsPerPost:  280,
		Tone:             "educational",
		IncludeNumbering: true,
		EnableHook:       false,
		EnableCTA:        true,
		ImageRhythm:      4,
		MinPostChars:     30,
	}

	opts := cfg.EngineOptions()
	assert.Equal(t, 280, opts.MaxCharsPerPost)
	assert.Equal(t, engine.ToneEducational, opts.Tone)
	assert.False(t, opts.EnableHook)
	assert.Equal(t, 4, opts.ImageRhythm)
}

func TestValidate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bad tone is rejected", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		cfg.Tone = "sarcastic"
		assert.Error(t, cfg.Validate())
	})

	t.Run("serve needs a listen address", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		cfg.ListenAddr = ""
		assert.Error(t, cfg.ValidateForServe())
	})

	t.Run("history needs a database path", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		cfg.DatabasePath = ""
		assert.Error(t, cfg.ValidateForHistory())
	})
}
