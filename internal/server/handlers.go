package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
	"github.com/ironsheep/coco-viewer-mcp/internal/progress"
	"github.com/ironsheep/coco-viewer-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "dataset_load", "shapes_refresh").
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
		return s.toolError(req.ID, err)
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
//  3. Drives the session (load, navigate, toggle, refresh)
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Dataset Operations
	case "dataset_load":
		return s.handleDatasetLoad(args)
	case "dataset_validate":
		return s.handleDatasetValidate(args)
	case "dataset_info":
		return s.handleDatasetInfo(args)

	// Image Navigation
	case "image_current":
		return s.handleImageCurrent(args)
	case "image_next":
		return s.handleImageNext(args)
	case "image_previous":
		return s.handleImagePrevious(args)
	case "image_goto":
		return s.handleImageGoto(args)
	case "image_layer":
		return s.handleImageLayer(args)

	// Category Selection
	case "categories_list":
		return s.handleCategoriesList(args)
	case "category_toggle":
		return s.handleCategoryToggle(args)
	case "categories_select_all":
		return s.handleCategoriesSelectAll(args)
	case "categories_select_none":
		return s.handleCategoriesSelectNone(args)

	// Display Controls
	case "display_set_cap":
		return s.handleDisplaySetCap(args)
	case "display_resample":
		return s.handleDisplayResample(args)
	case "display_set_modes":
		return s.handleDisplaySetModes(args)

	// Shape Production
	case "shapes_refresh":
		return s.handleShapesRefresh(args)
	case "annotation_counts":
		return s.handleAnnotationCounts(args)

	// Maintenance
	case "cache_stats":
		return s.handleCacheStats(args)
	case "cache_clear":
		return s.handleCacheClear(args)
	case "config_get":
		return s.handleConfigGet(args)
	case "config_update":
		return s.handleConfigUpdate(args)

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

// toolError maps a tool failure to a JSON-RPC error response. Load
// failures carry a user-facing message plus structured detail; all
// other errors use the generic execution-failed shape.
func (s *Server) toolError(id interface{}, err error) *MCPResponse {
	var le *coco.LoadError
	if errors.As(err, &le) {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &MCPError{
				Code:    -32000,
				Message: le.UserMessage,
				Data: map[string]interface{}{
					"kind":   string(le.Kind),
					"detail": le.Message,
				},
			},
		}
	}
	return s.errorResponse(id, -32000, "Tool execution failed", err.Error())
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Dataset Operation Handlers ===

type datasetLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleDatasetLoad(args json.RawMessage) (interface{}, error) {
	var a datasetLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// Progress renders to stderr; stdout belongs to the protocol.
	return s.session.Load(a.Path, progress.NewConsole("Loading dataset"))
}

func (s *Server) handleDatasetValidate(args json.RawMessage) (interface{}, error) {
	var a datasetLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	// A negative verdict is a result, not a tool failure.
	result := map[string]interface{}{
		"path":  a.Path,
		"valid": true,
	}
	if _, err := coco.LoadDataset(a.Path); err != nil {
		le := coco.WrapLoadError(err)
		result["valid"] = false
		result["kind"] = string(le.Kind)
		result["reason"] = le.UserMessage
	}
	return result, nil
}

func (s *Server) handleDatasetInfo(json.RawMessage) (interface{}, error) {
	if !s.session.File.Loaded() {
		return nil, session.ErrNoDataset
	}
	info := s.session.File.Info()
	return &info, nil
}

// === Image Navigation Handlers ===

func (s *Server) handleImageCurrent(json.RawMessage) (interface{}, error) {
	return s.session.CurrentImage()
}

// moveResult pairs the image view after a navigation attempt with
// whether the position actually changed.
type moveResult struct {
	Moved bool               `json:"moved"`
	Image *session.ImageView `json:"image"`
}

func (s *Server) handleImageNext(json.RawMessage) (interface{}, error) {
	view, moved, err := s.session.NextImage()
	if err != nil {
		return nil, err
	}
	return &moveResult{Moved: moved, Image: view}, nil
}

func (s *Server) handleImagePrevious(json.RawMessage) (interface{}, error) {
	view, moved, err := s.session.PreviousImage()
	if err != nil {
		return nil, err
	}
	return &moveResult{Moved: moved, Image: view}, nil
}

type imageGotoArgs struct {
	Index int `json:"index"`
}

func (s *Server) handleImageGoto(args json.RawMessage) (interface{}, error) {
	var a imageGotoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	view, moved, err := s.session.GoToImage(a.Index)
	if err != nil {
		return nil, err
	}
	return &moveResult{Moved: moved, Image: view}, nil
}

type imageLayerArgs struct {
	MaxDim int `json:"max_dim"`
}

func (s *Server) handleImageLayer(args json.RawMessage) (interface{}, error) {
	var a imageLayerArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	return s.session.ImageLayer(a.MaxDim)
}

// === Category Selection Handlers ===

func (s *Server) handleCategoriesList(json.RawMessage) (interface{}, error) {
	cats, err := s.session.ListCategories()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"categories": cats}, nil
}

type categoryToggleArgs struct {
	ID      int  `json:"id"`
	Enabled bool `json:"enabled"`
}

func (s *Server) handleCategoryToggle(args json.RawMessage) (interface{}, error) {
	var a categoryToggleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.ToggleCategory(a.ID, a.Enabled); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":       a.ID,
		"enabled":  a.Enabled,
		"selected": s.session.Categories.Selected(),
	}, nil
}

func (s *Server) handleCategoriesSelectAll(json.RawMessage) (interface{}, error) {
	if err := s.session.SelectAllCategories(); err != nil {
		return nil, err
	}
	return map[string]interface{}{"selected": s.session.Categories.Selected()}, nil
}

func (s *Server) handleCategoriesSelectNone(json.RawMessage) (interface{}, error) {
	if err := s.session.SelectNoneCategories(); err != nil {
		return nil, err
	}
	return map[string]interface{}{"selected": s.session.Categories.Selected()}, nil
}

// === Display Control Handlers ===

type displaySetCapArgs struct {
	Cap int `json:"cap"`
}

func (s *Server) handleDisplaySetCap(args json.RawMessage) (interface{}, error) {
	var a displaySetCapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	applied := s.session.Display.SetCap(a.Cap)
	return map[string]interface{}{"cap": applied}, nil
}

func (s *Server) handleDisplayResample(json.RawMessage) (interface{}, error) {
	seed := s.session.Display.Resample()
	return map[string]interface{}{"seed": seed}, nil
}

type displaySetModesArgs struct {
	ShowBBox bool `json:"show_bbox"`
	ShowMask bool `json:"show_mask"`
}

func (s *Server) handleDisplaySetModes(args json.RawMessage) (interface{}, error) {
	var a displaySetModesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bbox, mask := s.session.Display.SetModes(a.ShowBBox, a.ShowMask)
	return map[string]interface{}{
		"show_bbox": bbox,
		"show_mask": mask,
	}, nil
}

// === Shape Production Handlers ===

func (s *Server) handleShapesRefresh(json.RawMessage) (interface{}, error) {
	batch, err := s.session.Refresh()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return map[string]interface{}{"present": false}, nil
	}
	return batch, nil
}

func (s *Server) handleAnnotationCounts(json.RawMessage) (interface{}, error) {
	counts, err := s.session.AnnotationCounts()
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// === Maintenance Handlers ===

func (s *Server) handleCacheStats(json.RawMessage) (interface{}, error) {
	stats := s.session.CacheStats()
	return &stats, nil
}

func (s *Server) handleCacheClear(json.RawMessage) (interface{}, error) {
	s.session.ClearCaches()
	return map[string]interface{}{"cleared": true}, nil
}

func (s *Server) handleConfigGet(json.RawMessage) (interface{}, error) {
	return map[string]interface{}{
		"path":     s.config.Path(),
		"settings": s.config.Settings(),
	}, nil
}

type configUpdateArgs struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func (s *Server) handleConfigUpdate(args json.RawMessage) (interface{}, error) {
	var a configUpdateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.config.Update(a.Key, a.Value); err != nil {
		return nil, err
	}
	if err := s.config.Save(); err != nil {
		return nil, err
	}
	// Persisted settings govern the next session; the running one
	// keeps the values it was constructed with.
	return map[string]interface{}{
		"key":   a.Key,
		"value": a.Value,
		"saved": true,
	}, nil
}
