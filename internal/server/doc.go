// Package server implements the MCP (Model Context Protocol) server for the
// stamp image tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - image_load: Dimensions, format, size, transparency
//   - image_sample_color: Color at a pixel
//   - image_dominant_colors: Most common visible colors
//
// Single-image transforms (results are base64 PNG):
//   - image_remove_background: Key out a color, or delegate to the AI remover
//   - image_trim: Crop to content or by edge amounts
//   - image_split: Cut into a grid of cells
//   - image_split_preview: Show the grid a split would use
//   - image_resize: Scale with a choice of filter
//   - image_erase: Clear a circular area
//
// Batch:
//   - image_batch: Apply one operation to many files and write the results
//     to a directory or ZIP archive
//
// Single-image transforms and image_batch share the settings of package
// batch, so a setting tried on one image behaves the same across a batch.
//
// # Progress
//
// When an image_batch call carries "_meta": {"progressToken": ...}, a
// notifications/progress message is written after every image, before the
// final response.
//
// # Limits
//
// Batch size, AI batch size, split grid size, and eraser radius are limited
// by config.Capabilities. Requests over a limit fail with -32602 before any
// image is processed.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 (invalid arguments or over a limit), -32000 (tool
//     execution failure), or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A batch never fails because one image does; per-image failures are listed
// in the result.
package server
