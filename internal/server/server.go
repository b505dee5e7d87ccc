// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes paper reading and search to agents: as MCP tools
// over stdio or streamable HTTP, and as a plain HTTP endpoint returning
// Markdown.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/arxiv-reader/internal/source"
	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// Name is the implementation name reported to MCP clients.
const Name = "arxiv-reader"

// NewMCPServer registers the read_paper and search_papers tools on a new
// MCP server.
func NewMCPServer(tools *Tools, version string) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil)
	mcp.AddTool(s, MetadataReadPaper, tools.ReadPaper)
	mcp.AddTool(s, MetadataSearchPapers, tools.SearchPapers)
	return s
}

// Server is the HTTP front end: health check, streamable MCP endpoint and
// a Markdown endpoint per paper.
type Server struct {
	router chi.Router
	mcp    *mcp.Server
	tools  *Tools
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(tools *Tools, mcpServer *mcp.Server, log *slog.Logger) *Server {
	s := &Server{
		mcp:   mcpServer,
		tools: tools,
		log:   log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil))
	r.Get("/papers/*", s.handlePaper)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handlePaper serves GET /papers/{id}?level=. Old-style identifiers contain
// a slash, so the identifier is the whole remaining path.
func (s *Server) handlePaper(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(chi.URLParam(r, "*"), "/")
	if id == "" {
		jsonError(w, "paper id is required", http.StatusBadRequest)
		return
	}
	level, err := types.ParseDetailLevel(r.URL.Query().Get("level"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := s.tools.Reader.Read(r.Context(), id, level)
	if err != nil {
		s.log.Warn("read failed", "paper_id", id, "level", level, "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("X-Paper-Source", p.SourceURL)
	w.Write([]byte(p.Markdown))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, source.ErrInvalidIdentifier), errors.Is(err, types.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrSourceUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
