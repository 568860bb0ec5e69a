package mcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/mattt/hello-mcp/jsonrpc"
)

// Transport handles the communication between stdin/stdout and the MCP server
type Transport struct {
	reader *bufio.Reader
	writer *bufio.Writer
	logger *slog.Logger
}

// NewStdioTransport creates a new stdio transport.
// Diagnostics go to logger and never to out.
func NewStdioTransport(in io.Reader, out io.Writer, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Transport{
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
		logger: logger,
	}
}

// Run reads requests line by line and writes each response before reading
// the next line. It returns nil when the input ends.
func (t *Transport) Run(ctx context.Context, handler jsonrpc.Handler) error {
	t.logger.Info("transport started")
	defer t.logger.Info("transport shutting down")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, readErr := t.reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("error reading input: %w", readErr)
		}

		if len(line) > 0 {
			if err := t.process(ctx, handler, line); err != nil {
				return err
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}
	}
}

func (t *Transport) process(ctx context.Context, handler jsonrpc.Handler, line []byte) error {
	request, err := jsonrpc.DecodeRequest(line)
	if errors.Is(err, jsonrpc.ErrEmptyMessage) {
		return nil
	}

	logger := t.logger.With("trace", ulid.Make().String())
	if err != nil {
		logger.Warn("dropping malformed message", "error", err, "line", string(line))
		return nil
	}
	logger.Debug("received", "method", request.Method, "id", request.ID.GoString(), "line", string(line))

	response, ok := handler.Handle(ctx, request)
	if !ok {
		logger.Debug("no response for notification", "method", request.Method)
		return nil
	}

	data, err := jsonrpc.EncodeResponse(response)
	if err != nil {
		logger.Error("error encoding response", "error", err)
		data, err = jsonrpc.EncodeResponse(jsonrpc.NewErrorResponse(response.ID, jsonrpc.Errorf(jsonrpc.ErrInternal, "%v", err)))
		if err != nil {
			return err
		}
	}

	logger.Debug("sending", "line", string(data[:len(data)-1]))
	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("error flushing response: %w", err)
	}
	return nil
}
