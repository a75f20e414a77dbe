// Package server implements the MCP (Model Context Protocol) server for
// the COCO annotation viewer.
//
// This package provides a JSON-RPC 2.0 server that exposes the viewer
// session's operations through the MCP protocol, so MCP-compatible
// clients can drive dataset loading, navigation, category selection and
// shape production.
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
// Progress and diagnostics go to stderr; stdout carries nothing but the
// protocol.
//
// # Available Tools
//
// The server provides 21 tools organized into categories:
//
// Dataset Operations:
//   - dataset_load: Load and install an annotation file
//   - dataset_validate: Structural verdict without loading
//   - dataset_info: Loaded file path and record counts
//
// Image Navigation:
//   - image_current: Current image record and position
//   - image_next / image_previous: Step through the images array
//   - image_goto: Jump to an explicit index
//   - image_layer: Base64 PNG thumbnail of the current image
//
// Category Selection:
//   - categories_list: Ids, names, counts, colors, enabled flags
//   - category_toggle: Enable or disable one category
//   - categories_select_all / categories_select_none: Bulk toggles
//
// Display Controls:
//   - display_set_cap: Per-image annotation cap (clamped)
//   - display_resample: Fresh subsample seed
//   - display_set_modes: Bounding boxes, masks, or both
//
// Shape Production:
//   - shapes_refresh: Shape batch for the current view state
//   - annotation_counts: Visible versus total annotations
//
// Maintenance:
//   - cache_stats / cache_clear: Cache introspection and flushing
//   - config_get / config_update: Settings access and persistence
//
// # State
//
// The server owns no domain state of its own: every tool drives the
// injected session, which holds the loaded dataset, the selection and
// navigation controllers, and the caches. One server serves one
// session; the request loop is single-threaded, matching the session's
// concurrency contract.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details
//
// Dataset load failures carry their short user-facing message in the
// error message and the technical detail plus failure kind (not_found,
// bad_json, bad_structure, cancelled, generic) in the data field.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	sess := session.New(cfg.Settings())
//	srv := server.New(sess, cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
