package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/archive"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/batch"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_batch").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token for long-running tools.
	Meta *RequestMeta `json:"_meta,omitempty"`
}

// RequestMeta is the MCP "_meta" object of a request.
type RequestMeta struct {
	ProgressToken interface{} `json:"progressToken,omitempty"`
}

// invalidParamsError marks argument problems, reported as -32602 rather than
// as a tool failure.
type invalidParamsError struct {
	err error
}

func (e *invalidParamsError) Error() string { return e.err.Error() }
func (e *invalidParamsError) Unwrap() error { return e.err }

func invalidParams(err error) error {
	return &invalidParamsError{err: err}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; tool execution errors return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), &params)
	if err != nil {
		var ipe *invalidParamsError
		if errors.As(err, &ipe) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, call *ToolCallParams) (interface{}, error) {
	args := call.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch call.Name {
	// Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Single-image transforms
	case "image_remove_background":
		return s.handleImageRemoveBackground(ctx, args)
	case "image_trim":
		return s.handleImageTrim(ctx, args)
	case "image_split":
		return s.handleImageSplit(ctx, args)
	case "image_split_preview":
		return s.handleImageSplitPreview(args)
	case "image_resize":
		return s.handleImageResize(ctx, args)
	case "image_erase":
		return s.handleImageErase(args)

	// Batch
	case "image_batch":
		var token interface{}
		if call.Meta != nil {
			token = call.Meta.ProgressToken
		}
		return s.handleImageBatch(ctx, args, token)

	default:
		return nil, invalidParams(fmt.Errorf("unknown tool: %s", call.Name))
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams(err)
	}
	return nil
}

func parseConfig(op batch.Operation, args json.RawMessage) (batch.Config, error) {
	cfg, err := batch.ParseConfig(string(op), args)
	if err != nil {
		return nil, invalidParams(err)
	}
	return cfg, nil
}

type pathArgs struct {
	Path string `json:"path"`
}

// load returns the cached image at args.path.
func (s *Server) load(args json.RawMessage) (*imaging.Buffer, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams(errors.New("path is required"))
	}
	return s.cache.Load(a.Path)
}

// applyOne runs cfg on the image at args.path through the batch orchestrator's
// transform step.
func (s *Server) applyOne(ctx context.Context, args json.RawMessage, cfg batch.Config) ([]*imaging.Buffer, error) {
	img, err := s.load(args)
	if err != nil {
		return nil, err
	}
	return s.batch.Apply(ctx, img, cfg)
}

// === Inspection Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(args)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageDominantColorsArgs struct {
	Count int `json:"count"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.load(args)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count), nil
}

// === Single-image Transform Handlers ===

type imageRemoveBackgroundArgs struct {
	AI bool `json:"ai"`
}

func (s *Server) handleImageRemoveBackground(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRemoveBackgroundArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	op := batch.OpRemoveBackground
	if a.AI {
		op = batch.OpRemoveBackgroundAI
	}
	cfg, err := parseConfig(op, args)
	if err != nil {
		return nil, err
	}
	outs, err := s.applyOne(ctx, args, cfg)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(outs[0])
}

func (s *Server) handleImageTrim(ctx context.Context, args json.RawMessage) (interface{}, error) {
	cfg, err := parseConfig(batch.OpCrop, args)
	if err != nil {
		return nil, err
	}
	outs, err := s.applyOne(ctx, args, cfg)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(outs[0])
}

// SplitResult contains the cells of a split in row-major order.
type SplitResult struct {
	Rows       int                    `json:"rows"`
	Cols       int                    `json:"cols"`
	CellWidth  int                    `json:"cell_width"`
	CellHeight int                    `json:"cell_height"`
	Cells      []*imaging.ImageResult `json:"cells"`
}

func (s *Server) handleImageSplit(ctx context.Context, args json.RawMessage) (interface{}, error) {
	cfg, err := parseConfig(batch.OpSplit, args)
	if err != nil {
		return nil, err
	}
	sc := cfg.(batch.SplitConfig)
	if err := s.cfg.Capabilities.CheckGrid(sc.Rows, sc.Cols); err != nil {
		return nil, invalidParams(err)
	}

	cells, err := s.applyOne(ctx, args, cfg)
	if err != nil {
		return nil, err
	}
	result := &SplitResult{
		Rows:       sc.Rows,
		Cols:       sc.Cols,
		CellWidth:  cells[0].Width,
		CellHeight: cells[0].Height,
		Cells:      make([]*imaging.ImageResult, 0, len(cells)),
	}
	for _, cell := range cells {
		res, err := imaging.NewImageResult(cell)
		if err != nil {
			return nil, err
		}
		result.Cells = append(result.Cells, res)
	}
	return result, nil
}

type imageSplitPreviewArgs struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Color string `json:"color"`
}

func (s *Server) handleImageSplitPreview(args json.RawMessage) (interface{}, error) {
	var a imageSplitPreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Rows < 1 || a.Cols < 1 {
		return nil, invalidParams(fmt.Errorf("rows and cols must be at least 1, got %dx%d", a.Rows, a.Cols))
	}
	if err := s.cfg.Capabilities.CheckGrid(a.Rows, a.Cols); err != nil {
		return nil, invalidParams(err)
	}
	img, err := s.load(args)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.GridPreview(img, a.Rows, a.Cols, a.Color)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(preview)
}

func (s *Server) handleImageResize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	cfg, err := parseConfig(batch.OpResize, args)
	if err != nil {
		return nil, err
	}
	outs, err := s.applyOne(ctx, args, cfg)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(outs[0])
}

type imageEraseArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// EraseResult is the erased image plus the radius actually applied.
type EraseResult struct {
	*imaging.ImageResult
	Radius int `json:"radius"`
}

func (s *Server) handleImageErase(args json.RawMessage) (interface{}, error) {
	var a imageEraseArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Radius == 0 {
		a.Radius = 5
	}
	radius := s.cfg.Capabilities.EraserRadius(a.Radius)

	img, err := s.load(args)
	if err != nil {
		return nil, err
	}
	res, err := imaging.NewImageResult(imaging.EraseCircle(img, a.X, a.Y, radius))
	if err != nil {
		return nil, err
	}
	return &EraseResult{ImageResult: res, Radius: radius}, nil
}

// === Batch Handler ===

type imageBatchArgs struct {
	Operation string          `json:"operation"`
	Settings  json.RawMessage `json:"settings"`
	Paths     []string        `json:"paths"`
	Output    string          `json:"output"`
}

// BatchResult summarizes an image_batch run.
type BatchResult struct {
	Operation     batch.Operation `json:"operation"`
	Total         int             `json:"total"`
	Succeeded     int             `json:"succeeded"`
	Failed        int             `json:"failed"`
	FailedIndexes []int           `json:"failed_indexes,omitempty"`
	Items         []batch.Item    `json:"items"`
	Written       []string        `json:"written"`
}

func (s *Server) handleImageBatch(ctx context.Context, args json.RawMessage, progressToken interface{}) (interface{}, error) {
	var a imageBatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, invalidParams(errors.New("paths must list at least one image"))
	}
	if a.Output == "" {
		return nil, invalidParams(errors.New("output is required"))
	}

	cfg, err := batch.ParseConfig(a.Operation, a.Settings)
	if err != nil {
		return nil, invalidParams(err)
	}
	caps := s.cfg.Capabilities
	if err := caps.CheckBatch(cfg.Operation(), len(a.Paths)); err != nil {
		return nil, invalidParams(err)
	}
	if sc, ok := cfg.(batch.SplitConfig); ok {
		if err := caps.CheckGrid(sc.Rows, sc.Cols); err != nil {
			return nil, invalidParams(err)
		}
	}

	sources := make([]batch.Source, len(a.Paths))
	for i, p := range a.Paths {
		sources[i] = batch.FileSource(p)
	}

	var progress batch.ProgressFunc
	if progressToken != nil {
		progress = func(completed, total int) {
			s.notify("notifications/progress", map[string]interface{}{
				"progressToken": progressToken,
				"progress":      completed,
				"total":         total,
			})
		}
	}

	report := s.batch.Run(ctx, sources, cfg, progress)

	result := &BatchResult{
		Operation:     report.Operation,
		Total:         len(report.Items),
		Succeeded:     len(report.Succeeded()),
		Failed:        len(report.Failed()),
		FailedIndexes: report.FailedIndexes(),
		Items:         report.Items,
		Written:       []string{},
	}
	if files := report.Files(); len(files) > 0 {
		written, err := archive.Write(a.Output, files)
		if err != nil {
			return nil, fmt.Errorf("failed to write batch output: %w", err)
		}
		result.Written = written
	}
	return result, nil
}
