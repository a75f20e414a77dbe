package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Dataset Operations
		{
			Name:        "dataset_load",
			Description: "Load a COCO annotation file and make it the active dataset. Navigation returns to the first image, every category is enabled, and display modes are derived from the first image's annotations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the COCO annotation JSON file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "dataset_validate",
			Description: "Check whether a file is a structurally valid COCO object detection dataset without loading it. Returns a verdict, never an error, for invalid files.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the JSON file to check",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "dataset_info",
			Description: "Get the loaded dataset's path, file name and image/annotation/category counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Image Navigation
		{
			Name:        "image_current",
			Description: "Get the current image record, its position in the dataset, and visible/total annotation counts under the active filter and cap.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_next",
			Description: "Move to the next image. Returns moved=false at the last image; the position never wraps.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_previous",
			Description: "Move to the previous image. Returns moved=false at the first image; the position never wraps.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_goto",
			Description: "Jump to an explicit zero-based image index. Out-of-range targets are rejected with moved=false, not clamped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Zero-based target position in the images array",
					},
				},
				"required": []string{"index"},
			},
		},
		{
			Name:        "image_layer",
			Description: "Get the current image as a base64-encoded PNG thumbnail for the viewer's image layer. Thumbnails are cached; repeated asks are cheap.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_dim": map[string]interface{}{
						"type":        "integer",
						"description": "Optional bound on the longer thumbnail side in pixels. Default 1024 (512 in compact mode)",
					},
				},
			},
		},

		// Category Selection
		{
			Name:        "categories_list",
			Description: "List all categories with id, name, annotation count, display color (RGBA floats in [0,1]) and enabled flag, in dataset declaration order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "category_toggle",
			Description: "Enable or disable one category. Disabled categories are excluded from shape batches and visible counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "integer",
						"description": "Category id from the dataset",
					},
					"enabled": map[string]interface{}{
						"type":        "boolean",
						"description": "true to show the category, false to hide it",
					},
				},
				"required": []string{"id", "enabled"},
			},
		},
		{
			Name:        "categories_select_all",
			Description: "Enable every category.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "categories_select_none",
			Description: "Disable every category. A following shapes_refresh reports an absent batch.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Display Controls
		{
			Name:        "display_set_cap",
			Description: "Set how many annotations may render per image. Values are clamped to the configured range; the applied cap is returned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cap": map[string]interface{}{
						"type":        "integer",
						"description": "Requested per-image annotation cap",
					},
				},
				"required": []string{"cap"},
			},
		},
		{
			Name:        "display_resample",
			Description: "Draw a fresh subsample seed so capped images show a different annotation subset. Returns the new seed.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "display_set_modes",
			Description: "Set which geometry kinds render: bounding boxes, segmentation masks, or both. Asking for neither is corrected to bounding boxes on; the applied modes are returned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"show_bbox": map[string]interface{}{
						"type":        "boolean",
						"description": "Render bounding box outlines",
					},
					"show_mask": map[string]interface{}{
						"type":        "boolean",
						"description": "Render segmentation mask polygons",
					},
				},
				"required": []string{"show_bbox", "show_mask"},
			},
		},

		// Shape Production
		{
			Name:        "shapes_refresh",
			Description: "Build the shape batch for the current image under the active category filter, display modes, cap and seed. Points are [row, col] pairs; colors are RGBA floats. Returns {\"present\": false} when there is nothing to draw.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "annotation_counts",
			Description: "Get visible versus total annotation counts for the current image under the active filter and cap.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Maintenance
		{
			Name:        "cache_stats",
			Description: "Get per-cache entry and byte counts, totals, operation count and GC activity.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "cache_clear",
			Description: "Flush every session cache. The loaded dataset survives; the next refresh rebuilds from the index.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "config_get",
			Description: "Get the settings file path and the effective settings.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "config_update",
			Description: "Update one setting by dotted key (e.g. visualization.edge_width) and persist the settings file. Unknown keys are rejected. Session-scoped settings take effect on the next dataset load or restart.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Dotted setting name, one of the enumerated updatable keys",
					},
					"value": map[string]interface{}{
						"description": "New value; its JSON type must match the setting",
					},
				},
				"required": []string{"key", "value"},
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
