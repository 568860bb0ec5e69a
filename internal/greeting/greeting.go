// Package greeting provides the helloWorld tool.
package greeting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mattt/hello-mcp/mcp"
)

const (
	// ToolName is the name the tool is registered under
	ToolName = "helloWorld"

	// DefaultName is greeted when no name is given
	DefaultName = "world"

	title       = "Hello World Tool"
	description = "A simple hello world tool that greets the user"
)

// Tool greets a name.
type Tool struct {
	defaultName string
}

var _ mcp.Tool = (*Tool)(nil)

// New returns a greeting tool that falls back to defaultName.
// An empty defaultName means DefaultName.
func New(defaultName string) *Tool {
	if defaultName == "" {
		defaultName = DefaultName
	}
	return &Tool{defaultName: defaultName}
}

// Definition implements mcp.Tool.
func (t *Tool) Definition() mcp.ToolInfo {
	return mcp.ToolInfo{
		Name:        ToolName,
		Title:       title,
		Description: description,
		InputSchema: Schema(t.defaultName),
	}
}

// Call implements mcp.Tool.
func (t *Tool) Call(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	return mcp.TextResult(Greet(nameArg(args, t.defaultName))), nil
}

// Greet formats the greeting for name.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

// Schema returns the tool's input schema with defaultName as the default
// value of the name property.
func Schema(defaultName string) *jsonschema.Schema {
	def, _ := json.Marshal(defaultName)

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: fmt.Sprintf("Name to greet, defaults to %q", defaultName),
				Default:     def,
			},
		},
	}
}

func nameArg(args map[string]any, fallback string) string {
	v, ok := args["name"]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
