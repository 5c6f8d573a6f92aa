// Package config reads runtime settings from the environment and carries the
// capability limits the host enforces before handing work to the engine.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/batch"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/imaging"
)

// Environment variable names.
const (
	EnvLogLevel       = "STAMP_TOOLS_LOG_LEVEL"
	EnvMaxBatch       = "STAMP_TOOLS_MAX_BATCH"
	EnvMaxAIBatch     = "STAMP_TOOLS_MAX_AI_BATCH"
	EnvMaxGrid        = "STAMP_TOOLS_MAX_GRID"
	EnvEraserUnlocked = "STAMP_TOOLS_ERASER_UNLOCKED"
	EnvResample       = "STAMP_TOOLS_RESAMPLE"
	EnvRemoverURL     = "STAMP_TOOLS_REMOVER_URL"
)

// Defaults.
const (
	DefaultMaxBatchSize   = 50
	DefaultMaxAIBatchSize = 10
	DefaultMaxGridSize    = 8
	// MaxEraserRadius is the eraser radius limit while the eraser is locked.
	MaxEraserRadius = 10
)

var (
	// ErrBatchTooLarge is returned by CheckBatch when a batch exceeds its cap.
	ErrBatchTooLarge = errors.New("batch exceeds size limit")
	// ErrGridTooLarge is returned by CheckGrid when a split grid exceeds its cap.
	ErrGridTooLarge = errors.New("grid exceeds size limit")
)

// Capabilities are the limits of the running installation. The transform
// engine never sees them.
type Capabilities struct {
	MaxBatchSize       int  `json:"max_batch_size"`
	MaxAIBatchSize     int  `json:"max_ai_batch_size"`
	MaxGridSize        int  `json:"max_grid_size"`
	EraserSizeUnlocked bool `json:"eraser_size_unlocked"`
}

// CheckBatch rejects a batch of n items for op that is over the cap.
// remove-background-ai has its own, usually smaller, cap.
func (c Capabilities) CheckBatch(op batch.Operation, n int) error {
	limit := c.MaxBatchSize
	if op == batch.OpRemoveBackgroundAI {
		limit = c.MaxAIBatchSize
	}
	if n > limit {
		return fmt.Errorf("%s batch of %d images, limit %d: %w", op, n, limit, ErrBatchTooLarge)
	}
	return nil
}

// CheckGrid rejects split grids with more than MaxGridSize rows or columns.
func (c Capabilities) CheckGrid(rows, cols int) error {
	if rows > c.MaxGridSize || cols > c.MaxGridSize {
		return fmt.Errorf("%dx%d grid, limit %dx%d: %w", rows, cols, c.MaxGridSize, c.MaxGridSize, ErrGridTooLarge)
	}
	return nil
}

// EraserRadius clamps a requested eraser radius to at least 1 and, while the
// eraser is locked, at most MaxEraserRadius.
func (c Capabilities) EraserRadius(radius int) int {
	if radius < 1 {
		radius = 1
	}
	if !c.EraserSizeUnlocked && radius > MaxEraserRadius {
		radius = MaxEraserRadius
	}
	return radius
}

// Config is the complete runtime configuration.
type Config struct {
	LogLevel string
	Resample string
	// RemoverURL is the background removal endpoint for remove-background-ai.
	// Empty disables the operation.
	RemoverURL   string
	Capabilities Capabilities
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Resampler returns the configured default resize filter.
func (c Config) Resampler() imaging.Resampler {
	if r, ok := imaging.LookupResampler(c.Resample); ok {
		return r
	}
	r, _ := imaging.LookupResampler(imaging.DefaultResampler)
	return r
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Resample: imaging.DefaultResampler,
		Capabilities: Capabilities{
			MaxBatchSize:   DefaultMaxBatchSize,
			MaxAIBatchSize: DefaultMaxAIBatchSize,
			MaxGridSize:    DefaultMaxGridSize,
		},
	}
}

// Load reads the configuration from the process environment, logging and
// ignoring malformed values.
func Load() Config {
	cfg, problems := LoadFrom(os.Getenv)
	for _, p := range problems {
		log.Printf("config: %v", p)
	}
	return cfg
}

// LoadFrom reads the configuration through getenv. Every malformed value is
// reported and replaced by its default; LoadFrom never fails.
func LoadFrom(getenv func(string) string) (Config, []error) {
	cfg := Default()
	var problems []error

	if v := strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel))); v != "" {
		cfg.LogLevel = v
	}

	positive := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			problems = append(problems, fmt.Errorf("%s=%q is not a positive integer, using %d", key, v, *dst))
			return
		}
		*dst = n
	}
	positive(EnvMaxBatch, &cfg.Capabilities.MaxBatchSize)
	positive(EnvMaxAIBatch, &cfg.Capabilities.MaxAIBatchSize)
	positive(EnvMaxGrid, &cfg.Capabilities.MaxGridSize)

	if v := strings.TrimSpace(getenv(EnvEraserUnlocked)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s=%q is not a boolean, eraser stays locked", EnvEraserUnlocked, v))
		} else {
			cfg.Capabilities.EraserSizeUnlocked = b
		}
	}

	if v := strings.TrimSpace(getenv(EnvResample)); v != "" {
		if r, ok := imaging.LookupResampler(v); ok {
			cfg.Resample = r.Name()
		} else {
			problems = append(problems, fmt.Errorf("%s=%q is not one of %s, using %s",
				EnvResample, v, strings.Join(imaging.ResamplerNames(), ", "), cfg.Resample))
		}
	}

	cfg.RemoverURL = strings.TrimSpace(getenv(EnvRemoverURL))

	return cfg, problems
}
