package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/keywords"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/internal/watcher"
)

const (
	// ServerName is the MCP server name
	ServerName = "docsearch"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"

	// MaxLimit bounds the limit parameter of search_documents
	MaxLimit = 100
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	cfg       *config.Config
	searcher  *searcher.Searcher
	extractor *keywords.Extractor
}

// NewServer creates a new MCP server instance. A nil searcher or extractor is
// built from cfg.
func NewServer(cfg *config.Config, srch *searcher.Searcher, extractor *keywords.Extractor) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if srch == nil {
		sc, err := cfg.SearcherConfig()
		if err != nil {
			return nil, err
		}
		srch = searcher.New(sc)
	}
	if extractor == nil {
		extractor = keywords.New(nil, nil)
		extractor.AddStopwords(cfg.Stopwords...)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		mcp:       mcpServer,
		cfg:       cfg,
		searcher:  srch,
		extractor: extractor,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown. With
// watching enabled, document changes invalidate caches while serving.
func (s *Server) Serve(ctx context.Context) error {
	if s.cfg.Watch {
		w, err := watcher.New(s.cfg.DocsDir, s.searcher)
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("watcher stopped: %v", err)
				}
			}()
		}
	}

	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(searchDocumentsTool(), s.handleSearchDocuments)
	s.mcp.AddTool(clearCacheTool(), s.handleClearCache)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	s.mcp.AddTool(saveResultsTool(), s.handleSaveResults)

	return nil
}
