package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gradebook/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// MCPPath is where the streamable HTTP transport is served.
const MCPPath = "/mcp"

// shutdownTimeout bounds how long in-flight HTTP requests may run after
// the context is cancelled.
const shutdownTimeout = 5 * time.Second

// instructions is sent to clients when they connect.
const instructions = `Gradebook keeps students, courses and the scores students obtained.
Use add_student and add_course to create records, record_grade to add a score,
get_gpa for one student's mean score and grade_report for every student.
Every change is saved immediately. IDs and names must not contain ',', '|' or ';'.`

// Server exposes the gradebook operations over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "gradebook",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves a single client over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Section("MCP server (stdio)")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves MCP at MCPPath and a health check at /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(MCPPath, mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// healthStatus is the body of a /healthz response.
type healthStatus struct {
	Status   string `json:"status"`
	Students int    `json:"students"`
	Courses  int    `json:"courses"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status:   "ok",
		Students: len(s.ports.Records.Students(r.Context())),
		Courses:  len(s.ports.Records.Courses(r.Context())),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logger.Warn("writing health response: %v", err)
	}
}

// RunHTTP serves Handler on addr until ctx is cancelled, then drains
// in-flight requests for up to shutdownTimeout.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	logger.Section("MCP server (HTTP)")

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down MCP server: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s%s", addr, MCPPath)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serving MCP on %s: %w", addr, err)
	}
	return nil
}
