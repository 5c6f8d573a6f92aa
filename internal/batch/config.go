package batch

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/imaging"
)

// Operation names a batch transform.
type Operation string

const (
	OpRemoveBackground   Operation = "remove-background"
	OpRemoveBackgroundAI Operation = "remove-background-ai"
	OpCrop               Operation = "crop"
	OpSplit              Operation = "split"
	OpResize             Operation = "resize"
)

// Operations lists every supported operation.
var Operations = []Operation{OpRemoveBackground, OpRemoveBackgroundAI, OpCrop, OpSplit, OpResize}

// Config is the settings for one operation. The concrete type selects the
// operation.
type Config interface {
	Operation() Operation
}

// AutoColor as a TargetColor samples the key color from each image's
// top-left pixel.
const AutoColor = "auto"

// DefaultTargetColor is used when no TargetColor is given.
const DefaultTargetColor = "#ffffff"

// RemoveBackgroundConfig keys out pixels near TargetColor.
type RemoveBackgroundConfig struct {
	// TargetColor is "#rrggbb" or AutoColor. Empty and malformed values mean white.
	TargetColor string `json:"targetColor"`
	// Tolerance is 0-100 percent of the maximum color distance.
	Tolerance float64 `json:"tolerance"`
	// Feather is 0-100 percent; 0 gives a hard edge.
	Feather float64 `json:"feather"`
}

func (RemoveBackgroundConfig) Operation() Operation { return OpRemoveBackground }

// RemoveBackgroundAIConfig delegates removal to the configured BackgroundRemover.
type RemoveBackgroundAIConfig struct{}

func (RemoveBackgroundAIConfig) Operation() Operation { return OpRemoveBackgroundAI }

// CropMode selects how crop bounds are found.
type CropMode string

const (
	CropAuto   CropMode = "auto"
	CropManual CropMode = "manual"
)

// CropConfig trims an image either to its content bounding box or by fixed
// amounts from each edge.
type CropConfig struct {
	Mode CropMode `json:"mode"`
	// Manual holds trim amounts per edge; used only in manual mode.
	Manual *imaging.Trim `json:"manual,omitempty"`
	// Padding expands the detected box in auto mode, clamped to the image.
	Padding int `json:"padding,omitempty"`
}

func (CropConfig) Operation() Operation { return OpCrop }

// SplitConfig cuts each image into Rows x Cols cells.
type SplitConfig struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (SplitConfig) Operation() Operation { return OpSplit }

// ResizeConfig scales each image to Width x Height.
type ResizeConfig struct {
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	KeepAspectRatio bool `json:"keepAspectRatio"`
	// Filter names an imaging resampler; empty uses the orchestrator default.
	Filter string `json:"filter,omitempty"`
}

func (ResizeConfig) Operation() Operation { return OpResize }

// ParseConfig decodes raw JSON settings for op into its Config type and
// normalizes them.
//
// Unknown operations, unknown crop modes, and JSON that does not decode are
// errors. Out-of-range numbers are corrected rather than rejected: tolerance
// and feather are clamped to 0-100, split rows and cols below 1 become 1, and
// negative padding becomes 0. An empty raw value means all defaults.
func ParseConfig(op string, raw json.RawMessage) (Config, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = json.RawMessage("{}")
	}

	switch Operation(strings.ToLower(strings.TrimSpace(op))) {
	case OpRemoveBackground:
		var c RemoveBackgroundConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrap(err, "remove-background config")
		}
		return c.normalize(), nil

	case OpRemoveBackgroundAI:
		var c RemoveBackgroundAIConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrap(err, "remove-background-ai config")
		}
		return c, nil

	case OpCrop:
		var c CropConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrap(err, "crop config")
		}
		c, err := c.normalize()
		if err != nil {
			return nil, err
		}
		return c, nil

	case OpSplit:
		var c SplitConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrap(err, "split config")
		}
		return c.normalize(), nil

	case OpResize:
		var c ResizeConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errors.Wrap(err, "resize config")
		}
		return c, nil

	default:
		return nil, errors.Errorf("unknown operation %q", op)
	}
}

func (c RemoveBackgroundConfig) normalize() RemoveBackgroundConfig {
	c.Tolerance = clampPercent(c.Tolerance)
	c.Feather = clampPercent(c.Feather)
	c.TargetColor = strings.TrimSpace(c.TargetColor)
	if c.TargetColor == "" {
		c.TargetColor = DefaultTargetColor
	}
	return c
}

func (c CropConfig) normalize() (CropConfig, error) {
	switch CropMode(strings.ToLower(string(c.Mode))) {
	case "", CropAuto:
		c.Mode = CropAuto
	case CropManual:
		c.Mode = CropManual
	default:
		return c, errors.Errorf("unknown crop mode %q", c.Mode)
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	return c, nil
}

func (c SplitConfig) normalize() SplitConfig {
	c.Rows = max(1, c.Rows)
	c.Cols = max(1, c.Cols)
	return c
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// keyColor resolves the configured key color for buf.
func (c RemoveBackgroundConfig) keyColor(buf *imaging.Buffer) (imaging.RGBColor, bool) {
	if strings.EqualFold(c.TargetColor, AutoColor) {
		r, g, b, _ := buf.At(0, 0)
		return imaging.RGBColor{R: r, G: g, B: b}, true
	}
	if rgb, ok := imaging.HexToRGB(c.TargetColor); ok {
		return rgb, true
	}
	return imaging.White, false
}
