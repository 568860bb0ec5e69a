package mcp_test

import (
	"context"
	"io"
	"testing"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattt/hello-mcp/internal/greeting"
	"github.com/mattt/hello-mcp/mcp"
)

// connectClient runs the server on a Transport joined by pipes to an
// official SDK client, and returns the client's session.
func connectClient(t *testing.T) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()

	requestsR, requestsW := io.Pipe()
	responsesR, responsesW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		transport := mcp.NewStdioTransport(requestsR, responsesW, nil)
		err := transport.Run(ctx, newHelloServer(t))
		responsesW.Close()
		done <- err
	}()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdk.IOTransport{Reader: responsesR, Writer: requestsW}, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
		requestsW.Close()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("transport did not stop after the client closed")
		}
	})

	return session
}

func TestClient_Initialize(t *testing.T) {
	session := connectClient(t)

	result := session.InitializeResult()
	require.NotNil(t, result)
	assert.Equal(t, mcp.Version, result.ProtocolVersion)
	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, "hello-world-mcp", result.ServerInfo.Name)
	assert.Equal(t, "1.0.0", result.ServerInfo.Version)
	require.NotNil(t, result.Capabilities)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestClient_ListTools(t *testing.T) {
	session := connectClient(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, greeting.ToolName, result.Tools[0].Name)
	assert.Equal(t, "Hello World Tool", result.Tools[0].Title)
	assert.Equal(t, "A simple hello world tool that greets the user", result.Tools[0].Description)
}

func TestClient_CallTool(t *testing.T) {
	session := connectClient(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "default", args: map[string]any{}, want: "Hello, world!"},
		{name: "named", args: map[string]any{"name": "Ada"}, want: "Hello, Ada!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := session.CallTool(context.Background(), &sdk.CallToolParams{
				Name:      greeting.ToolName,
				Arguments: tt.args,
			})
			require.NoError(t, err)
			assert.False(t, result.IsError)
			require.Len(t, result.Content, 1)

			text, ok := result.Content[0].(*sdk.TextContent)
			require.True(t, ok)
			assert.Equal(t, tt.want, text.Text)
		})
	}
}

func TestClient_UnknownToolIsProtocolError(t *testing.T) {
	session := connectClient(t)

	_, err := session.CallTool(context.Background(), &sdk.CallToolParams{Name: "doesNotExist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tool not found: doesNotExist")

	// the session survives the error
	result, err := session.CallTool(context.Background(), &sdk.CallToolParams{Name: greeting.ToolName})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
}
