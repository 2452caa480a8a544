// Package mcp serves the compiled schedule and the notation decoder over the
// Model Context Protocol.
package mcp

import (
	"context"
	"time"

	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with schedule access.
type Server struct {
	mcpServer *mcp.Server
	schedule  service.ScheduleService
	dec       *notation.Decoder
	now       func() time.Time
}

// NewServer creates a new MCP server over the schedule. dec should be the
// decoder the plan was compiled with; nil means notation.Default.
func NewServer(schedule service.ScheduleService, dec *notation.Decoder, version string) *Server {
	if dec == nil {
		dec = notation.Default
	}
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: "trainplan", Version: version}, nil),
		schedule:  schedule,
		dec:       dec,
		now:       time.Now,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Serve runs the server on stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
