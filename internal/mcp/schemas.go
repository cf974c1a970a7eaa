package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDocumentsTool returns the tool definition for search_documents
func searchDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_documents",
		Description: "Search the .docx documents folder for paragraphs containing the given keywords, ranked by keyword overlap",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"keywords": map[string]interface{}{
					"type":        "array",
					"description": "Keywords to match verbatim (case-sensitive). Order and duplicates do not matter.",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Natural language question; keywords are extracted from it when keywords is not given",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100), capped by the configured max_results",
					"minimum":     1,
					"maximum":     MaxLimit,
				},
			},
		},
	}
}

// clearCacheTool returns the tool definition for clear_cache
func clearCacheTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_cache",
		Description: "Drop all cached searches and parsed documents",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report the documents folder, cache state and context settings",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// saveResultsTool returns the tool definition for save_results
func saveResultsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "save_results",
		Description: "Write the most recent search results to a JSON file",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Output file path (defaults to the configured results_file)",
				},
			},
		},
	}
}
