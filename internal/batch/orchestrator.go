package batch

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/imaging"
)

// BackgroundRemover removes an image background with an external model or
// service. Implementations must return a new buffer and leave buf untouched.
type BackgroundRemover interface {
	Remove(ctx context.Context, buf *imaging.Buffer) (*imaging.Buffer, error)
}

// ProgressFunc is called after every item with the number of finished items
// and the batch size. It is purely observational.
type ProgressFunc func(completed, total int)

// ErrNoRemover is the failure recorded for remove-background-ai items when no
// BackgroundRemover is configured.
var ErrNoRemover = errors.New("ai background remover not configured")

// Orchestrator runs batches. It holds no per-batch state and may be reused.
type Orchestrator struct {
	remover   BackgroundRemover
	resampler imaging.Resampler
	logger    *log.Logger
	debug     bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRemover sets the delegate for remove-background-ai.
func WithRemover(r BackgroundRemover) Option {
	return func(o *Orchestrator) { o.remover = r }
}

// WithResampler sets the default resize filter.
func WithResampler(r imaging.Resampler) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.resampler = r
		}
	}
}

// WithLogger sets the logger. With debug set, every completed item is logged,
// not only failures.
func WithLogger(l *log.Logger, debug bool) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
		o.debug = debug
	}
}

// New creates an Orchestrator. By default it logs failures through the
// standard logger, resizes with Lanczos, and has no AI remover.
func New(opts ...Option) *Orchestrator {
	r, _ := imaging.LookupResampler(imaging.DefaultResampler)
	o := &Orchestrator{
		resampler: r,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run applies cfg to every source, one at a time in input order.
//
// Run never fails as a whole: each decode, transform, or encode error is
// recorded on its Item and processing moves on. progress, if non-nil, is
// called once per item after it reaches Encoded or Failed. ctx is passed to
// the BackgroundRemover; it does not stop the loop.
func (o *Orchestrator) Run(ctx context.Context, sources []Source, cfg Config, progress ProgressFunc) *Report {
	report := &Report{
		Operation: cfg.Operation(),
		Config:    cfg,
		Items:     make([]Item, len(sources)),
	}
	for i, src := range sources {
		report.Items[i] = Item{Index: i, Name: src.Name, Status: StatusPending}
	}

	for i, src := range sources {
		item := &report.Items[i]
		o.process(ctx, item, src, cfg)

		if item.Status == StatusFailed {
			o.logger.Printf("batch %s: item %d (%s) failed: %s", report.Operation, i, item.Name, item.Message)
		} else if o.debug {
			o.logger.Printf("batch %s: item %d (%s) produced %d output(s)", report.Operation, i, item.Name, len(item.Outputs))
		}
		if progress != nil {
			progress(i+1, len(sources))
		}
	}
	return report
}

// process drives one item through Decoding -> Transformed -> Encoded.
func (o *Orchestrator) process(ctx context.Context, item *Item, src Source, cfg Config) {
	item.Status = StatusDecoding
	buf, err := decodeSource(src)
	if err != nil {
		item.fail(errors.Wrap(err, "decode"))
		return
	}

	results, err := o.safeTransform(ctx, buf, cfg)
	if err != nil {
		item.fail(errors.Wrap(err, string(cfg.Operation())))
		return
	}
	item.Status = StatusTransformed

	outputs := make([][]byte, 0, len(results))
	for _, res := range results {
		data, err := imaging.EncodePNG(res)
		if err != nil {
			item.fail(errors.Wrap(err, "encode"))
			return
		}
		outputs = append(outputs, data)
	}
	item.Outputs = outputs
	item.Status = StatusEncoded
}

func decodeSource(src Source) (*imaging.Buffer, error) {
	if !src.declaredImage() {
		return nil, errors.Errorf("unsupported content type %q", src.MIMEType)
	}
	if src.Open == nil {
		return nil, errors.New("source has no data")
	}
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	buf, _, err := imaging.DecodeBytes(data)
	return buf, err
}

// Apply runs the transform for cfg on an already decoded buffer. It is the
// middle stage of Run, for hosts that hold images in memory.
func (o *Orchestrator) Apply(ctx context.Context, buf *imaging.Buffer, cfg Config) ([]*imaging.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return o.safeTransform(ctx, buf, cfg)
}

// safeTransform converts a panic in a transform into an item error.
func (o *Orchestrator) safeTransform(ctx context.Context, buf *imaging.Buffer, cfg Config) (out []*imaging.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, errors.Errorf("transform panicked: %v", r)
		}
	}()
	return o.transform(ctx, buf, cfg)
}

func (o *Orchestrator) transform(ctx context.Context, buf *imaging.Buffer, cfg Config) ([]*imaging.Buffer, error) {
	switch c := cfg.(type) {
	case RemoveBackgroundConfig:
		key, ok := c.keyColor(buf)
		if !ok && o.debug {
			o.logger.Printf("batch: invalid target color %q, using %s", c.TargetColor, key.Hex())
		}
		return one(imaging.RemoveBackground(buf, key, c.Tolerance, c.Feather)), nil

	case RemoveBackgroundAIConfig:
		if o.remover == nil {
			return nil, ErrNoRemover
		}
		out, err := o.remover.Remove(ctx, buf)
		if err != nil {
			return nil, err
		}
		if err := out.Validate(); err != nil {
			return nil, errors.Wrap(err, "remover returned invalid buffer")
		}
		if out == buf {
			out = buf.Clone()
		}
		return one(out), nil

	case CropConfig:
		return one(o.crop(buf, c)), nil

	case SplitConfig:
		return imaging.SplitImage(buf, c.Rows, c.Cols)

	case ResizeConfig:
		return o.resize(buf, c)

	default:
		return nil, errors.Errorf("unsupported config %T", cfg)
	}
}

// crop returns the cropped buffer, or a copy of buf when there is nothing
// valid to crop to: no content in auto mode, inverted bounds in manual mode.
func (o *Orchestrator) crop(buf *imaging.Buffer, c CropConfig) *imaging.Buffer {
	var bounds imaging.Bounds
	switch c.Mode {
	case CropManual:
		var trim imaging.Trim
		if c.Manual != nil {
			trim = *c.Manual
		}
		bounds = trim.Bounds(buf.Width, buf.Height)
	default:
		b, ok := imaging.DetectBoundingBox(buf, nil, 0)
		if !ok {
			return buf.Clone()
		}
		bounds = b.Expand(c.Padding, buf.Width, buf.Height)
	}

	if !bounds.Valid(buf.Width, buf.Height) {
		return buf.Clone()
	}
	out, err := imaging.CropImage(buf, bounds)
	if err != nil {
		return buf.Clone()
	}
	return out
}

// resize scales buf per c. A target that is still non-positive after the
// aspect-ratio fill passes a copy of buf through.
func (o *Orchestrator) resize(buf *imaging.Buffer, c ResizeConfig) ([]*imaging.Buffer, error) {
	w, h := c.Width, c.Height
	if c.KeepAspectRatio {
		w, h = imaging.FitAspect(buf.Width, buf.Height, w, h)
	}
	if w <= 0 || h <= 0 {
		return one(buf.Clone()), nil
	}

	r := o.resampler
	if c.Filter != "" {
		if named, ok := imaging.LookupResampler(c.Filter); ok {
			r = named
		}
	}
	out, err := imaging.ResizeWith(buf, w, h, r)
	if err != nil {
		return nil, err
	}
	return one(out), nil
}

func one(b *imaging.Buffer) []*imaging.Buffer {
	return []*imaging.Buffer{b}
}
