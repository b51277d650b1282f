// Package mcpserver exposes the narrative renderer to AI assistants over the
// Model Context Protocol.
package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"capnarrative/internal/model"
	"capnarrative/internal/renderer"
	"capnarrative/internal/source"
	"capnarrative/internal/xhtml"
	"capnarrative/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "capnarrative"

	toolRender   = "render_capability_statement"
	toolDescribe = "describe_capability_statement"
)

// Config defines how the server is exposed.
type Config struct {
	Transport string // "stdio" or "sse"
	Host      string
	Port      int
	Version   string
	// Prefix is the default profile link prefix when a call does not pass one.
	Prefix string
	// Source configures loading for the "source" tool argument.
	Source source.Options
}

// Server serves the render and describe tools.
type Server struct {
	config Config
	mcp    *server.MCPServer

	mu        sync.Mutex
	sseServer *server.SSEServer
}

// New creates a server with its tools registered.
func New(config Config) *Server {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8091
	}
	if config.Version == "" {
		config.Version = "dev"
	}

	s := &Server{config: config}
	s.mcp = server.NewMCPServer(
		serverName,
		config.Version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	documentArg := mcp.WithString("document",
		mcp.Description("CapabilityStatement as FHIR JSON or YAML. Either document or source is required."),
	)
	sourceArg := mcp.WithString("source",
		mcp.Description("Where to load the CapabilityStatement from: a file path, a FHIR base URL or configmap://namespace/name/key"),
	)

	s.mcp.AddTool(mcp.NewTool(toolRender,
		mcp.WithDescription("Render a FHIR CapabilityStatement as an XHTML narrative fragment"),
		documentArg,
		sourceArg,
		mcp.WithString("prefix",
			mcp.Description("Prefix prepended to profile references to build links"),
		),
	), s.handleRender)

	s.mcp.AddTool(mcp.NewTool(toolDescribe,
		mcp.WithDescription("Describe a FHIR CapabilityStatement in one line and list the interactions it supports"),
		documentArg,
		sourceArg,
	), s.handleDescribe)
}

// Serve runs the configured transport until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	switch s.config.Transport {
	case "", "stdio":
		logging.Info("MCPServer", "Serving MCP over stdio")
		return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
	case "sse":
		return s.serveSSE(ctx)
	default:
		return fmt.Errorf("unsupported MCP transport %q", s.config.Transport)
	}
}

func (s *Server) serveSSE(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	baseURL := fmt.Sprintf("http://%s", addr)

	s.mu.Lock()
	s.sseServer = server.NewSSEServer(
		s.mcp,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)
	sseServer := s.sseServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("MCPServer", "Starting MCP SSE server on %s", addr)
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("MCPServer", "Stopping MCP SSE server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("MCPServer", err, "Error shutting down SSE server")
		return err
	}
	return nil
}

func stringArg(request mcp.CallToolRequest, name string) string {
	if v, ok := request.GetArguments()[name].(string); ok {
		return v
	}
	return ""
}

func (s *Server) load(ctx context.Context, request mcp.CallToolRequest) (*model.CapabilityStatement, error) {
	document := stringArg(request, "document")
	ref := stringArg(request, "source")

	switch {
	case document != "" && ref != "":
		return nil, fmt.Errorf("pass either document or source, not both")
	case document != "":
		return source.FromReader(strings.NewReader(document))
	case ref != "":
		if ref == "-" {
			// stdin carries the MCP stdio transport
			return nil, fmt.Errorf("source - is not available over MCP")
		}
		return source.Open(ctx, ref, s.config.Source)
	default:
		return nil, fmt.Errorf("document or source parameter is required")
	}
}

// handleRender handles the render_capability_statement MCP tool
func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cs, err := s.load(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load capability statement: %v", err)), nil
	}

	prefix := s.config.Prefix
	if p := stringArg(request, "prefix"); p != "" {
		prefix = p
	}

	registry := renderer.NewDefaultRegistry(renderer.NewRenderingContext(prefix))
	x := xhtml.NewFragment()
	if _, err := registry.RenderResource(x, cs); err != nil {
		logging.Error("MCPServer", err, "Failed to render %s", cs.Present())
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render capability statement: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := x.RenderChildren(&buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialise narrative: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// describedInteractions are listed by the describe tool when any resource supports them.
var describedInteractions = []model.TypeRestfulInteraction{
	model.TypeRead,
	model.TypeVRead,
	model.TypeSearchType,
	model.TypeUpdate,
	model.TypePatch,
	model.TypeCreate,
	model.TypeDelete,
	model.TypeHistoryInstance,
	model.TypeHistoryType,
}

// handleDescribe handles the describe_capability_statement MCP tool
func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cs, err := s.load(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load capability statement: %v", err)), nil
	}

	registry := renderer.NewDefaultRegistry(renderer.NewRenderingContext(s.config.Prefix))
	display, err := registry.DisplayResource(cs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(display)
	if len(cs.Rest) > 0 {
		rest := cs.Rest[0]
		var supported []string
		for _, code := range describedInteractions {
			if renderer.AnyPresent(rest.Resource, code) {
				supported = append(supported, code.String())
			}
		}
		fmt.Fprintf(&b, "\nMode: %s", rest.Mode)
		fmt.Fprintf(&b, "\nResource types: %d", len(rest.Resource))
		if len(supported) > 0 {
			fmt.Fprintf(&b, "\nInteractions: %s", strings.Join(supported, ", "))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
