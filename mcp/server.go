package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mattt/hello-mcp/jsonrpc"
)

// Default server identity reported by initialize
const (
	DefaultServerName    = "hello-world-mcp"
	DefaultServerVersion = "1.0.0"
)

// methodFunc handles a request and returns its result.
type methodFunc func(ctx context.Context, params json.RawMessage) (any, error)

// notificationFunc handles a message that never gets a response.
type notificationFunc func(ctx context.Context, params json.RawMessage)

// Server represents an MCP server that processes JSON-RPC requests
type Server struct {
	info        ServerInfo
	registry    *Registry
	logger      *slog.Logger
	toolTimeout time.Duration

	methods       map[string]methodFunc
	notifications map[string]notificationFunc
}

var _ jsonrpc.Handler = (*Server)(nil)

// ServerOption configures a Server
type ServerOption func(*Server)

// WithServerInfo sets the name and version reported by initialize
func WithServerInfo(name, version string) ServerOption {
	return func(s *Server) {
		s.info = ServerInfo{Name: name, Version: version}
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithToolTimeout bounds every tools/call. Zero disables the limit.
func WithToolTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.toolTimeout = d
	}
}

// NewServer creates a new MCP server instance serving the tools in registry
func NewServer(registry *Registry, opts ...ServerOption) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("error creating server: registry is nil")
	}

	s := &Server{
		info:     ServerInfo{Name: DefaultServerName, Version: DefaultServerVersion},
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.methods = map[string]methodFunc{
		MethodInitialize: s.handleInitialize,
		MethodPing:       s.handlePing,
		MethodToolsList:  s.handleToolsList,
		MethodToolsCall:  s.handleToolsCall,
	}
	s.notifications = map[string]notificationFunc{
		MethodInitialized: s.handleInitialized,
	}

	return s, nil
}

// Info returns the identity reported by initialize
func (s *Server) Info() ServerInfo {
	return s.info
}

// Handle processes a single JSON-RPC request. It reports false for
// notifications, which must not be answered.
func (s *Server) Handle(ctx context.Context, request jsonrpc.Request) (jsonrpc.Response, bool) {
	if notify, ok := s.notifications[request.Method]; ok {
		notify(ctx, request.Params)
		return jsonrpc.Response{}, false
	}

	result, err := s.dispatch(ctx, request)
	if err != nil {
		return jsonrpc.NewErrorResponse(request.ID, s.errorFor(err)), true
	}
	return jsonrpc.NewResult(request.ID, result), true
}

func (s *Server) dispatch(ctx context.Context, request jsonrpc.Request) (result any, err error) {
	method, ok := s.methods[request.Method]
	if !ok {
		return nil, jsonrpc.Errorf(jsonrpc.ErrMethodNotFound, "%s", request.Method)
	}

	defer func() {
		if v := recover(); v != nil {
			s.logger.Error("recovered from panic", "method", request.Method, "panic", v)
			result, err = nil, &PanicError{Value: v}
		}
	}()

	return method(ctx, request.Params)
}

// errorFor translates a handler failure into a JSON-RPC error object.
func (s *Server) errorFor(err error) *jsonrpc.Error {
	var (
		rpcErr   *jsonrpc.Error
		notFound *ToolNotFoundError
		invalid  *InvalidParamsError
	)

	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.As(err, &notFound):
		return &jsonrpc.Error{
			Code:    jsonrpc.ErrInvalidParams,
			Message: "Tool not found: " + notFound.Name,
		}
	case errors.As(err, &invalid):
		return jsonrpc.Errorf(jsonrpc.ErrInvalidParams, "%v", invalid.Err)
	default:
		return jsonrpc.Errorf(jsonrpc.ErrInternal, "%v", err)
	}
}

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (any, error) {
	return InitializeResult{
		ProtocolVersion: Version,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{},
		},
		ServerInfo: s.info,
	}, nil
}

func (s *Server) handleInitialized(ctx context.Context, params json.RawMessage) {
	s.logger.Info("client initialized")
}

func (s *Server) handlePing(ctx context.Context, params json.RawMessage) (any, error) {
	return struct{}{}, nil
}

func (s *Server) handleToolsList(ctx context.Context, params json.RawMessage) (any, error) {
	tools := make([]ToolInfo, 0, s.registry.Len())
	for info := range s.registry.All() {
		tools = append(tools, info)
	}
	return ToolsListResult{Tools: tools}, nil
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, error) {
	var p CallToolParams
	if len(params) > 0 && !bytes.Equal(params, []byte("null")) {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &InvalidParamsError{Err: err}
		}
	}

	entry, ok := s.registry.lookup(p.Name)
	if !ok {
		return nil, &ToolNotFoundError{Name: p.Name}
	}

	args := p.Arguments
	if args == nil {
		args = map[string]any{}
	}
	if err := entry.resolved.ApplyDefaults(&args); err != nil {
		return nil, &InvalidParamsError{Err: err}
	}
	if err := entry.resolved.Validate(args); err != nil {
		return nil, &InvalidParamsError{Err: err}
	}

	start := time.Now()
	result, err := s.callTool(ctx, entry.tool, p.Name, args)
	s.logger.Debug("tool call finished", "tool", p.Name, "duration", time.Since(start), "error", err)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &CallToolResult{Content: []Content{}}
	}
	return result, nil
}

// callTool invokes tool synchronously, enforcing the configured timeout.
func (s *Server) callTool(ctx context.Context, tool Tool, name string, args map[string]any) (*CallToolResult, error) {
	if s.toolTimeout <= 0 {
		return tool.Call(ctx, args)
	}

	ctx, cancel := context.WithTimeout(ctx, s.toolTimeout)
	defer cancel()

	type outcome struct {
		result *CallToolResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- outcome{err: &PanicError{Value: v}}
			}
		}()
		result, err := tool.Call(ctx, args)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		// the goroutine keeps running until the tool returns
		s.logger.Warn("abandoning tool call", "tool", name, "timeout", s.toolTimeout)
		return nil, fmt.Errorf("tool %q did not finish within %s: %w", name, s.toolTimeout, ctx.Err())
	}
}
