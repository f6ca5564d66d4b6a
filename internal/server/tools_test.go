package server

import (
	"testing"

	"github.com/ironsheep/label-stencil-mcp/internal/stencil"
)

// toolByName returns the named tool definition or fails the test.
func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"stencil_process",
		"stencil_preview",
		"stencil_validate",
	}

	tools := GetToolDefinitions()
	if len(tools) != len(expectedTools) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}
	for _, name := range expectedTools {
		toolByName(t, name)
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}

			// Every tool works on a file.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", tool.InputSchema["required"])
			}
		})
	}
}

func TestToolDefinitions_ProcessParameterSurface(t *testing.T) {
	props := toolByName(t, "stencil_process").InputSchema["properties"].(map[string]interface{})

	for _, name := range []string{
		"path", "canvas_width", "canvas_height", "scale_percent",
		"mode", "serpentine", "cell", "angle_deg", "shape",
		"gamma", "contrast",
		"edge_protect", "lo_threshold", "hi_threshold", "tau_threshold", "dilate_iterations",
		"output_path", "include_preview", "preview_path",
	} {
		if _, ok := props[name]; !ok {
			t.Errorf("stencil_process is missing %s", name)
		}
	}
}

func TestToolDefinitions_DefaultsMatchCore(t *testing.T) {
	props := toolByName(t, "stencil_process").InputSchema["properties"].(map[string]interface{})
	guard := stencil.DefaultEdgeGuard()
	canvas := stencil.DefaultCanvas()

	tests := []struct {
		param string
		want  interface{}
	}{
		{"canvas_width", canvas.Width},
		{"canvas_height", canvas.Height},
		{"scale_percent", int(canvas.ScalePercent)},
		{"mode", stencil.DefaultParams().Mode.String()},
		{"serpentine", true},
		{"cell", 8},
		{"angle_deg", 45},
		{"shape", stencil.ShapeCircle.String()},
		{"gamma", 1.0},
		{"contrast", 0},
		{"edge_protect", false},
		{"lo_threshold", int(guard.Lo)},
		{"hi_threshold", int(guard.Hi)},
		{"tau_threshold", int(guard.Tau)},
		{"dilate_iterations", guard.DilateIterations},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			param, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("parameter not found")
			}
			if got := param["default"]; got != tt.want {
				t.Errorf("default: got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
