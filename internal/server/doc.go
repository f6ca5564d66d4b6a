// Package server implements the MCP (Model Context Protocol) server for label stencils.
//
// This package provides a JSON-RPC 2.0 server that exposes the stencil pipeline
// through the MCP protocol. Clients hand it a photo path plus parameters and
// get back a print-ready one-bit stencil, a simulated print preview, or an
// upload-readiness report.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source Images:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Stencil Operations:
//   - stencil_process: Photo to stencil, with optional print preview
//   - stencil_preview: Print preview of an existing stencil PNG
//   - stencil_validate: Check canvas size and two-level pixels
//
// # Parameters
//
// Omitted stencil_process arguments take the production defaults: 596x832
// canvas at 100%, ordered dithering, neutral tone, edge protection off.
// scale_percent outside 25-300 and thresholds outside 0-255 are rejected.
// Cell size, contrast and gamma are clamped by the core instead.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images keyed by absolute
// path. Paths the server writes to are evicted so later loads see new content.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
