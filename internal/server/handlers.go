package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/label-stencil-mcp/internal/imaging"
	"github.com/ironsheep/label-stencil-mcp/internal/preview"
	"github.com/ironsheep/label-stencil-mcp/internal/stencil"
)

// Accepted range for scale_percent. The core would accept any positive value.
const (
	minScalePercent = 25.0
	maxScalePercent = 300.0
)

// maxCanvasSide bounds canvas_width and canvas_height so a request cannot
// exhaust memory.
const maxCanvasSide = 4096

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "stencil_process").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls into the stencil, preview or imaging packages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source Images
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Stencil Operations
	case "stencil_process":
		return s.handleStencilProcess(args)
	case "stencil_preview":
		return s.handleStencilPreview(args)
	case "stencil_validate":
		return s.handleStencilValidate(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating missing arguments as empty.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Source Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Stencil Handlers ===

// stencilProcessArgs mirrors the parameter surface. Pointer fields are the
// ones where zero is a meaningful value distinct from "not given".
type stencilProcessArgs struct {
	Path string `json:"path"`

	CanvasWidth  int     `json:"canvas_width"`
	CanvasHeight int     `json:"canvas_height"`
	ScalePercent float64 `json:"scale_percent"`

	Mode       string   `json:"mode"`
	Serpentine *bool    `json:"serpentine"`
	Cell       int      `json:"cell"`
	AngleDeg   *float64 `json:"angle_deg"`
	Shape      string   `json:"shape"`

	Gamma    float64 `json:"gamma"`
	Contrast float64 `json:"contrast"`

	EdgeProtect      bool `json:"edge_protect"`
	LoThreshold      *int `json:"lo_threshold"`
	HiThreshold      *int `json:"hi_threshold"`
	TauThreshold     *int `json:"tau_threshold"`
	DilateIterations int  `json:"dilate_iterations"`

	OutputPath     string `json:"output_path"`
	IncludePreview bool   `json:"include_preview"`
	PreviewPath    string `json:"preview_path"`
}

// Placement is where the scaled photo sits on the canvas. X and Y may be
// negative when the photo is larger than the canvas.
type Placement struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StencilProcessResult is the stencil_process response.
type StencilProcessResult struct {
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	OriginalWidth  int       `json:"original_width"`
	OriginalHeight int       `json:"original_height"`
	Scale          float64   `json:"scale"`
	Placement      Placement `json:"placement"`
	Mode           string    `json:"mode"`
	EdgeProtect    bool      `json:"edge_protect"`
	InkCoverage    float64   `json:"ink_coverage"`

	// Exactly one of OutputPath and Image is set.
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`

	PreviewPath string                `json:"preview_path,omitempty"`
	Preview     *imaging.EncodedImage `json:"preview,omitempty"`
}

// params converts the arguments to core parameters, applying defaults.
func (a *stencilProcessArgs) params() (stencil.Params, error) {
	p := stencil.DefaultParams()

	if a.CanvasWidth != 0 {
		p.Canvas.Width = a.CanvasWidth
	}
	if a.CanvasHeight != 0 {
		p.Canvas.Height = a.CanvasHeight
	}
	if p.Canvas.Width < 1 || p.Canvas.Height < 1 {
		return p, fmt.Errorf("canvas must be at least 1x1, got %dx%d", p.Canvas.Width, p.Canvas.Height)
	}
	if p.Canvas.Width > maxCanvasSide || p.Canvas.Height > maxCanvasSide {
		return p, fmt.Errorf("canvas must be at most %dx%d, got %dx%d",
			maxCanvasSide, maxCanvasSide, p.Canvas.Width, p.Canvas.Height)
	}

	if a.ScalePercent != 0 {
		p.Canvas.ScalePercent = a.ScalePercent
	}
	if p.Canvas.ScalePercent < minScalePercent || p.Canvas.ScalePercent > maxScalePercent {
		return p, fmt.Errorf("scale_percent must be between %g and %g, got %g",
			minScalePercent, maxScalePercent, p.Canvas.ScalePercent)
	}

	settings := stencil.ModeSettings{Serpentine: true, Cell: 8, AngleDeg: 45}
	if a.Serpentine != nil {
		settings.Serpentine = *a.Serpentine
	}
	if a.Cell != 0 {
		settings.Cell = a.Cell
	}
	if a.AngleDeg != nil {
		settings.AngleDeg = *a.AngleDeg
	}
	shape, err := stencil.ParseShape(a.Shape)
	if err != nil {
		return p, err
	}
	settings.Shape = shape

	p.Mode, err = stencil.ParseMode(a.Mode, settings)
	if err != nil {
		return p, err
	}

	if a.Gamma != 0 {
		p.Tone.Gamma = a.Gamma
	}
	p.Tone.Contrast = a.Contrast

	if a.EdgeProtect {
		guard := stencil.DefaultEdgeGuard()
		for _, t := range []struct {
			name string
			val  *int
			dst  *uint8
		}{
			{"lo_threshold", a.LoThreshold, &guard.Lo},
			{"hi_threshold", a.HiThreshold, &guard.Hi},
			{"tau_threshold", a.TauThreshold, &guard.Tau},
		} {
			if t.val == nil {
				continue
			}
			if *t.val < 0 || *t.val > 255 {
				return p, fmt.Errorf("%s must be between 0 and 255, got %d", t.name, *t.val)
			}
			*t.dst = uint8(*t.val)
		}
		if a.DilateIterations < 0 {
			return p, fmt.Errorf("dilate_iterations must not be negative, got %d", a.DilateIterations)
		}
		guard.DilateIterations = a.DilateIterations
		p.EdgeGuard = &guard
	}

	return p, nil
}

func (s *Server) handleStencilProcess(args json.RawMessage) (interface{}, error) {
	var a stencilProcessArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := a.params()
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := stencil.Process(img, p)
	if err != nil {
		return nil, err
	}

	out := &StencilProcessResult{
		Width:          res.Bitmap.Width(),
		Height:         res.Bitmap.Height(),
		OriginalWidth:  res.OriginalWidth,
		OriginalHeight: res.OriginalHeight,
		Scale:          res.Scale,
		Placement: Placement{
			X:      res.Placement.Min.X,
			Y:      res.Placement.Min.Y,
			Width:  res.Placement.Dx(),
			Height: res.Placement.Dy(),
		},
		Mode:        p.Mode.String(),
		EdgeProtect: p.EdgeGuard != nil,
		InkCoverage: res.Bitmap.Coverage(),
	}

	out.OutputPath, out.Image, err = s.deliver(res.Bitmap, a.OutputPath)
	if err != nil {
		return nil, err
	}

	if a.IncludePreview || a.PreviewPath != "" {
		label, err := preview.Render(res.Bitmap, preview.DefaultLabel())
		if err != nil {
			return nil, fmt.Errorf("failed to render preview: %w", err)
		}
		out.PreviewPath, out.Preview, err = s.deliver(label, a.PreviewPath)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// deliver writes img to path when one is given, otherwise encodes it inline.
// A written path is evicted from the cache so later loads see the new file.
func (s *Server) deliver(img image.Image, path string) (string, *imaging.EncodedImage, error) {
	if path == "" {
		enc, err := imaging.EncodePNG(img)
		return "", enc, err
	}
	if err := imaging.WritePNG(path, img); err != nil {
		return "", nil, err
	}
	s.cache.Evict(path)
	return path, nil, nil
}

type stencilPreviewArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

// StencilPreviewResult is the stencil_preview response.
type StencilPreviewResult struct {
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleStencilPreview(args json.RawMessage) (interface{}, error) {
	var a stencilPreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	bin, err := imaging.LoadStencil(s.cache, a.Path)
	if err != nil {
		return nil, err
	}

	label, err := preview.Render(bin, preview.DefaultLabel())
	if errors.Is(err, preview.ErrStencilTooSmall) {
		return nil, fmt.Errorf("stencil %s is %dx%d: %w", a.Path, bin.Width(), bin.Height(), err)
	}
	if err != nil {
		return nil, err
	}

	out := &StencilPreviewResult{
		Width:  label.Bounds().Dx(),
		Height: label.Bounds().Dy(),
	}
	out.OutputPath, out.Image, err = s.deliver(label, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type stencilValidateArgs struct {
	Path         string `json:"path"`
	CanvasWidth  int    `json:"canvas_width"`
	CanvasHeight int    `json:"canvas_height"`
}

func (s *Server) handleStencilValidate(args json.RawMessage) (interface{}, error) {
	var a stencilValidateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.CanvasWidth == 0 {
		a.CanvasWidth = stencil.DefaultCanvasWidth
	}
	if a.CanvasHeight == 0 {
		a.CanvasHeight = stencil.DefaultCanvasHeight
	}
	return imaging.ValidateStencil(s.cache, a.Path, a.CanvasWidth, a.CanvasHeight)
}
