// Package mcp implements the Model Context Protocol (MCP) server for docsearch.
//
// The MCP server exposes four tools to AI assistants:
//   - search_documents: Find paragraphs in the .docx folder matching keywords
//   - clear_cache: Drop cached searches and parsed documents
//   - get_status: Report the documents folder and cache state
//   - save_results: Write the last search results to a JSON file
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server is started via the serve command:
//
//	docsearch serve --docs /path/to/manuals
//
// # Tool: search_documents
//
// Either keywords or question is required. Keywords are matched verbatim and
// case-sensitively; a question is segmented into keywords first.
//
//	Request:
//	{
//	  "name": "search_documents",
//	  "arguments": {
//	    "keywords": ["docker", "logs"],
//	    "limit": 5
//	  }
//	}
//
//	Response:
//	{
//	  "keywords": ["docker", "logs"],
//	  "result_count": 1,
//	  "cache_hit": false,
//	  "results": [
//	    {
//	      "filename": "install.docx",
//	      "keywords": ["docker", "logs"],
//	      "context": "1. Installation >> preceding: Run docker compose up to ...",
//	      "start_paragraph": 3,
//	      "content": "Check the docker logs with docker logs."
//	    }
//	  ]
//	}
//
// A missing documents folder is not an error: the response has no results
// and a "diagnostic" field.
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "docsearch": {
//	      "command": "/usr/local/bin/docsearch",
//	      "args": ["serve"],
//	      "env": {
//	        "DOCSEARCH_DOCS_DIR": "/path/to/manuals"
//	      }
//	    }
//	  }
//	}
//
// # Error Handling
//
// Error codes:
//   - -32602: Invalid params (bad keywords type, limit out of range)
//   - -32603: Internal error (canceled search, unwritable results file)
//   - -32004: Empty query (no usable keywords)
//
// The server logs to stderr; stdout is reserved for the protocol.
package mcp
