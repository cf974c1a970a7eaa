package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docsearch/internal/scanner"
	"github.com/dshills/docsearch/internal/searcher"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeEmptyQuery    = -32004 // Neither keywords nor a usable question given
)

// maxReportedFailures bounds the failures listed in a search response
const maxReportedFailures = 5

// handleSearchDocuments handles the search_documents tool invocation
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Extract and validate parameters
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	kws, err := getStringSlice(args, "keywords")
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "keywords must be an array of strings", map[string]interface{}{
			"param":  "keywords",
			"reason": err.Error(),
		})
	}

	question := getStringDefault(args, "question", "")
	if len(searcher.NormalizeKeywords(kws)) == 0 && question != "" {
		kws = s.extractor.Extract(question)
	}
	kws = searcher.NormalizeKeywords(kws)
	if len(kws) == 0 {
		return nil, newMCPError(ErrorCodeEmptyQuery, "keywords or question parameter is required and cannot be empty", map[string]interface{}{
			"param":  "keywords",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", s.cfg.MaxResults)
	if limit < 1 || limit > MaxLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	resp, err := s.searcher.Search(ctx, kws)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := resp.Results
	if len(results) > limit {
		results = results[:limit]
	}

	// Format response
	response := map[string]interface{}{
		"keywords":      resp.Keywords,
		"results":       results,
		"result_count":  len(results),
		"total_blocks":  resp.TotalBlocks,
		"files_scanned": resp.FilesScanned,
		"files_failed":  resp.FilesFailed,
		"cache_hit":     resp.CacheHit,
		"duration_ms":   resp.Duration.Milliseconds(),
	}

	if resp.Diagnostic != nil {
		response["diagnostic"] = resp.Diagnostic.Error()
	}

	if len(resp.Failures) > 0 {
		// Include first few errors
		errorCount := len(resp.Failures)
		if errorCount > maxReportedFailures {
			response["errors"] = resp.Failures[:maxReportedFailures]
			response["error_count"] = errorCount
		} else {
			response["errors"] = resp.Failures
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleClearCache handles the clear_cache tool invocation
func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.searcher.ClearCache()

	response := map[string]interface{}{
		"cleared": true,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := s.searcher.CacheInfo()

	docs := map[string]interface{}{
		"path":   s.cfg.DocsDir,
		"exists": false,
	}
	count, err := scanner.CountDocuments(s.cfg.DocsDir)
	switch {
	case err == nil:
		docs["exists"] = true
		docs["document_count"] = count
	case errors.Is(err, scanner.ErrDirectoryNotFound):
		docs["message"] = "Documents folder does not exist."
	default:
		docs["message"] = err.Error()
	}

	// Format response
	response := map[string]interface{}{
		"documents": docs,
		"search": map[string]interface{}{
			"context_mode":    s.cfg.ContextMode().String(),
			"boundary_policy": s.searcher.Config().Policy.Name(),
			"max_results":     s.cfg.MaxResults,
			"max_workers":     s.cfg.MaxWorkers,
			"watch":           s.cfg.Watch,
		},
		"cache": map[string]interface{}{
			"cache_size":      info.Size,
			"max_cache_size":  info.Capacity,
			"hits":            info.Hits,
			"misses":          info.Misses,
			"cached_searches": len(info.Keys),
			"documents":       info.Documents,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSaveResults handles the save_results tool invocation
func (s *Server) handleSaveResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	path := getStringDefault(args, "path", "")
	if path == "" {
		path = s.cfg.ResultsFile
	}

	if err := s.searcher.SaveResults(path); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to save results", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"saved": true,
		"path":  path,
		"count": len(s.searcher.LastResults()),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts an optional array of strings
func getStringSlice(args map[string]interface{}, key string) ([]string, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, not string", i, item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("got %T", v)
	}
}
