// Package config holds the persisted viewer settings and their
// override chain.
//
// Settings resolve in three layers, last writer wins:
//
//  1. Compiled-in defaults (Default)
//  2. The per-user JSON file (Manager.Load), normally at
//     os.UserConfigDir()/coco-viewer-mcp/settings.json
//  3. COCO_MCP_* environment variables (ApplyEnv), which also pick up
//     values from an optional .env file loaded at process start
//
// Runtime changes go through Manager.Update, which accepts only an
// enumerated set of dotted keys ("visualization.edge_width",
// "performance.cache_enabled", ...) and validates each value. An
// unknown or misspelled key is an error, never a silent no-op.
package config
