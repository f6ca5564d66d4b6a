package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool's "path" argument.
func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// canvasProperties describes the canvas size arguments.
func canvasProperties(props map[string]interface{}) {
	props["canvas_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Canvas width in pixels (1-4096). Default 596",
		"default":     596,
	}
	props["canvas_height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Canvas height in pixels (1-4096). Default 832",
		"default":     832,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	processProps := map[string]interface{}{
		"path": pathProperty("Absolute path to the source photo (PNG, JPEG, GIF, BMP or TIFF)"),
		"scale_percent": map[string]interface{}{
			"type":        "number",
			"description": "Scale relative to fit-to-canvas, 25-300. Default 100",
			"minimum":     25,
			"maximum":     300,
			"default":     100,
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"ordered", "diffusion", "lattice", "bayer", "fs", "circle", "square", "cross"},
			"description": "Binarization strategy: ordered (8x8 Bayer), diffusion (Floyd-Steinberg) or lattice (rotated halftone dots). Default ordered",
			"default":     "ordered",
		},
		"serpentine": map[string]interface{}{
			"type":        "boolean",
			"description": "Alternate scan direction per row in diffusion mode. Default true",
			"default":     true,
		},
		"cell": map[string]interface{}{
			"type":        "integer",
			"description": "Lattice spacing in pixels, clamped to 2-60. Default 8",
			"default":     8,
		},
		"angle_deg": map[string]interface{}{
			"type":        "number",
			"description": "Lattice rotation in degrees, 0-90. Default 45",
			"default":     45,
		},
		"shape": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"circle", "square", "cross"},
			"description": "Lattice dot shape. Default circle",
			"default":     "circle",
		},
		"gamma": map[string]interface{}{
			"type":        "number",
			"description": "Tone curve exponent, clamped to 0.2-3.0. Default 1.0",
			"default":     1.0,
		},
		"contrast": map[string]interface{}{
			"type":        "number",
			"description": "Linear contrast stretch, clamped to -100..100. Default 0",
			"default":     0,
		},
		"edge_protect": map[string]interface{}{
			"type":        "boolean",
			"description": "Force dark pixels and dark edges to ink after binarization. Default false",
			"default":     false,
		},
		"lo_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Edge protection: gray at or below this is always ink. 0-255, default 40",
			"default":     40,
		},
		"hi_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Edge protection: edge pixels must be darker than this. 0-255, default 120",
			"default":     120,
		},
		"tau_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Edge protection: minimum Sobel magnitude for an edge. 0-255, default 60",
			"default":     60,
		},
		"dilate_iterations": map[string]interface{}{
			"type":        "integer",
			"description": "Edge protection: rounds of 8-connected mask growth. Default 0",
			"default":     0,
		},
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Write the stencil PNG here instead of returning it inline",
		},
		"include_preview": map[string]interface{}{
			"type":        "boolean",
			"description": "Also render the 360x760 print preview. Default false",
			"default":     false,
		},
		"preview_path": map[string]interface{}{
			"type":        "string",
			"description": "Write the preview PNG here (implies include_preview)",
		},
	}
	canvasProperties(processProps)

	validateProps := map[string]interface{}{
		"path": pathProperty("Absolute path to the stencil image"),
	}
	canvasProperties(validateProps)

	return []Tool{
		// Source Images
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Stencil Operations
		{
			Name:        "stencil_process",
			Description: "Convert a photo into a one-bit label stencil: fit and center on the canvas, apply contrast and gamma, binarize, optionally protect dark edges. Returns the stencil PNG with placement and ink coverage.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": processProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "stencil_preview",
			Description: "Render the 360x760 print preview of an existing stencil PNG, simulating printer bleed, label stock and the unreliable edge zones.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the stencil PNG"),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Write the preview PNG here instead of returning it inline",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "stencil_validate",
			Description: "Check whether an image is ready to upload as a stencil: exact canvas size and only pure black and white pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": validateProps,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
