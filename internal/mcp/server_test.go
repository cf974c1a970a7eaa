package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/keywords"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/internal/segment"
	"github.com/dshills/docsearch/internal/testutil"
)

type ToolsSuite struct {
	suite.Suite
	dir    string
	cfg    *config.Config
	server *Server
}

func (s *ToolsSuite) SetupTest() {
	logger.SetOutput(&bytes.Buffer{})

	s.dir = s.T().TempDir()
	testutil.WriteDocx(s.T(), s.dir, "install.docx",
		testutil.H(1, "1. Installation"),
		testutil.P("Run docker compose up to start the stack."),
		testutil.P("Check the docker logs with docker logs."),
	)
	testutil.WriteDocx(s.T(), s.dir, "faq.docx",
		testutil.P("Restart the service after editing the configuration."),
	)

	s.cfg = config.Default()
	s.cfg.DocsDir = s.dir
	s.cfg.ResultsFile = filepath.Join(s.T().TempDir(), "results.json")

	sc, err := s.cfg.SearcherConfig()
	s.Require().NoError(err)
	srch := searcher.New(sc, searcher.WithTokenizer(segment.Fields{}))

	s.server, err = NewServer(s.cfg, srch, keywords.New(segment.Fields{}, nil))
	s.Require().NoError(err)
}

func (s *ToolsSuite) TearDownTest() {
	logger.SetOutput(os.Stderr)
}

func (s *ToolsSuite) call(handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (map[string]interface{}, error) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	if err != nil {
		return nil, err
	}

	s.Require().Len(res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	s.Require().True(ok)

	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(text.Text), &out))
	return out, nil
}

func (s *ToolsSuite) requireCode(err error, code int) {
	var mcpErr *MCPError
	s.Require().ErrorAs(err, &mcpErr)
	s.Equal(code, mcpErr.Code)
}

func (s *ToolsSuite) TestSearchDocuments_Keywords() {
	out, err := s.call(s.server.handleSearchDocuments, map[string]interface{}{
		"keywords": []interface{}{"docker", "logs"},
	})
	s.Require().NoError(err)

	s.Equal(float64(2), out["result_count"])
	s.Equal(false, out["cache_hit"])

	results := out["results"].([]interface{})
	first := results[0].(map[string]interface{})
	s.Equal("install.docx", first["filename"])
	s.Equal("Check the docker logs with docker logs.", first["content"])
	s.Equal(float64(3), first["start_paragraph"])
	s.Contains(first["context"], "1. Installation")
}

func (s *ToolsSuite) TestSearchDocuments_Question() {
	out, err := s.call(s.server.handleSearchDocuments, map[string]interface{}{
		"question": "How do I restart the service?",
	})
	s.Require().NoError(err)

	s.Equal([]interface{}{"restart", "service"}, out["keywords"])
	results := out["results"].([]interface{})
	s.Require().Len(results, 1)
	s.Equal("faq.docx", results[0].(map[string]interface{})["filename"])
}

func (s *ToolsSuite) TestSearchDocuments_Limit() {
	out, err := s.call(s.server.handleSearchDocuments, map[string]interface{}{
		"keywords": []interface{}{"docker"},
		"limit":    float64(1),
	})
	s.Require().NoError(err)
	s.Equal(float64(1), out["result_count"])
	s.Equal(float64(2), out["total_blocks"])
}

func (s *ToolsSuite) TestSearchDocuments_InvalidParams() {
	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{"no query", map[string]interface{}{}, ErrorCodeEmptyQuery},
		{"blank keywords", map[string]interface{}{"keywords": []interface{}{" ", ""}}, ErrorCodeEmptyQuery},
		{"stopword question", map[string]interface{}{"question": "how do I?"}, ErrorCodeEmptyQuery},
		{"non-string keyword", map[string]interface{}{"keywords": []interface{}{"docker", 3.0}}, ErrorCodeInvalidParams},
		{"keywords not array", map[string]interface{}{"keywords": "docker"}, ErrorCodeInvalidParams},
		{"limit too small", map[string]interface{}{"keywords": []interface{}{"docker"}, "limit": float64(0)}, ErrorCodeInvalidParams},
		{"limit too large", map[string]interface{}{"keywords": []interface{}{"docker"}, "limit": float64(101)}, ErrorCodeInvalidParams},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.call(s.server.handleSearchDocuments, tt.args)
			s.requireCode(err, tt.code)
		})
	}

	_, err := s.server.handleSearchDocuments(context.Background(), mcp.CallToolRequest{})
	s.requireCode(err, ErrorCodeInvalidParams)
}

func (s *ToolsSuite) TestSearchDocuments_MissingFolder() {
	s.Require().NoError(os.RemoveAll(s.dir))

	out, err := s.call(s.server.handleSearchDocuments, map[string]interface{}{
		"keywords": []interface{}{"docker"},
	})
	s.Require().NoError(err)
	s.Equal(float64(0), out["result_count"])
	s.Contains(out["diagnostic"], "documents directory not found")
}

func (s *ToolsSuite) TestClearCacheAndStatus() {
	args := map[string]interface{}{"keywords": []interface{}{"docker"}}
	_, err := s.call(s.server.handleSearchDocuments, args)
	s.Require().NoError(err)

	out, err := s.call(s.server.handleSearchDocuments, args)
	s.Require().NoError(err)
	s.Equal(true, out["cache_hit"])

	status, err := s.call(s.server.handleGetStatus, nil)
	s.Require().NoError(err)
	docs := status["documents"].(map[string]interface{})
	s.Equal(true, docs["exists"])
	s.Equal(float64(2), docs["document_count"])
	search := status["search"].(map[string]interface{})
	s.Equal("enhanced", search["context_mode"])
	s.Equal("paragraph", search["boundary_policy"])
	cache := status["cache"].(map[string]interface{})
	s.Equal(float64(1), cache["cache_size"])
	s.Equal(float64(128), cache["max_cache_size"])

	out, err = s.call(s.server.handleClearCache, nil)
	s.Require().NoError(err)
	s.Equal(true, out["cleared"])

	status, err = s.call(s.server.handleGetStatus, nil)
	s.Require().NoError(err)
	cache = status["cache"].(map[string]interface{})
	s.Equal(float64(0), cache["cache_size"])
}

func (s *ToolsSuite) TestGetStatus_MissingFolder() {
	s.Require().NoError(os.RemoveAll(s.dir))

	status, err := s.call(s.server.handleGetStatus, nil)
	s.Require().NoError(err)
	docs := status["documents"].(map[string]interface{})
	s.Equal(false, docs["exists"])
	s.NotContains(docs, "document_count")
}

func (s *ToolsSuite) TestSaveResults() {
	_, err := s.call(s.server.handleSearchDocuments, map[string]interface{}{
		"keywords": []interface{}{"docker"},
	})
	s.Require().NoError(err)

	out, err := s.call(s.server.handleSaveResults, nil)
	s.Require().NoError(err)
	s.Equal(s.cfg.ResultsFile, out["path"])
	s.Equal(float64(2), out["count"])

	data, err := os.ReadFile(s.cfg.ResultsFile)
	s.Require().NoError(err)
	s.Contains(string(data), `"filename": "install.docx"`)

	custom := filepath.Join(s.T().TempDir(), "custom.json")
	out, err = s.call(s.server.handleSaveResults, map[string]interface{}{"path": custom})
	s.Require().NoError(err)
	s.Equal(custom, out["path"])
	s.FileExists(custom)

	_, err = s.call(s.server.handleSaveResults, map[string]interface{}{
		"path": filepath.Join(s.T().TempDir(), "missing", "out.json"),
	})
	s.requireCode(err, ErrorCodeInternalError)
}

func TestToolsSuite(t *testing.T) {
	suite.Run(t, new(ToolsSuite))
}

func TestNewServer_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxResults = 0

	_, err := NewServer(cfg, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestMCPError(t *testing.T) {
	err := newMCPError(ErrorCodeEmptyQuery, "empty", nil)
	assert.EqualError(t, err, "MCP error -32004: empty")
}
