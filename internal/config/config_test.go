package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/batch"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, problems := LoadFrom(env(nil))
	assert.Empty(t, problems)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Debug())
	assert.Equal(t, "lanczos", cfg.Resampler().Name())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, problems := LoadFrom(env(map[string]string{
		EnvLogLevel:       "DEBUG",
		EnvMaxBatch:       "100",
		EnvMaxAIBatch:     " 3 ",
		EnvMaxGrid:        "12",
		EnvEraserUnlocked: "true",
		EnvResample:       "Bicubic",
		EnvRemoverURL:     " http://localhost:7000/api/remove ",
	}))
	require.Empty(t, problems)
	assert.True(t, cfg.Debug())
	assert.Equal(t, Capabilities{
		MaxBatchSize:       100,
		MaxAIBatchSize:     3,
		MaxGridSize:        12,
		EraserSizeUnlocked: true,
	}, cfg.Capabilities)
	assert.Equal(t, "bicubic", cfg.Resample)
	assert.Equal(t, "bicubic", cfg.Resampler().Name())
	assert.Equal(t, "http://localhost:7000/api/remove", cfg.RemoverURL)
}

func TestLoadFrom_MalformedFallsBack(t *testing.T) {
	cfg, problems := LoadFrom(env(map[string]string{
		EnvMaxBatch:       "lots",
		EnvMaxAIBatch:     "0",
		EnvMaxGrid:        "-2",
		EnvEraserUnlocked: "maybe",
		EnvResample:       "sinc",
	}))
	assert.Len(t, problems, 5)
	assert.Equal(t, Default(), cfg)
}

func TestCapabilities_CheckBatch(t *testing.T) {
	caps := Default().Capabilities

	tests := []struct {
		name    string
		op      batch.Operation
		n       int
		wantErr bool
	}{
		{"empty", batch.OpCrop, 0, false},
		{"at limit", batch.OpSplit, 50, false},
		{"over limit", batch.OpResize, 51, true},
		{"ai at limit", batch.OpRemoveBackgroundAI, 10, false},
		{"ai over limit", batch.OpRemoveBackgroundAI, 11, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := caps.CheckBatch(tt.op, tt.n)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrBatchTooLarge), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCapabilities_CheckGrid(t *testing.T) {
	caps := Capabilities{MaxGridSize: 4}
	assert.NoError(t, caps.CheckGrid(4, 4))
	assert.NoError(t, caps.CheckGrid(1, 1))
	assert.ErrorIs(t, caps.CheckGrid(5, 1), ErrGridTooLarge)
	assert.ErrorIs(t, caps.CheckGrid(1, 5), ErrGridTooLarge)
}

func TestCapabilities_EraserRadius(t *testing.T) {
	locked := Capabilities{}
	unlocked := Capabilities{EraserSizeUnlocked: true}

	assert.Equal(t, 1, locked.EraserRadius(0))
	assert.Equal(t, 7, locked.EraserRadius(7))
	assert.Equal(t, MaxEraserRadius, locked.EraserRadius(40))
	assert.Equal(t, 40, unlocked.EraserRadius(40))
}
