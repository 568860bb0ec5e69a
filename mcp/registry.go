package mcp

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool is a named capability the server exposes through tools/call.
type Tool interface {
	// Definition describes the tool for tools/list.
	Definition() ToolInfo
	// Call runs the tool with arguments that already satisfy its schema.
	Call(ctx context.Context, args map[string]any) (*CallToolResult, error)
}

// ToolHandlerFunc is the signature of a tool implementation.
type ToolHandlerFunc func(ctx context.Context, args map[string]any) (*CallToolResult, error)

type funcTool struct {
	info    ToolInfo
	handler ToolHandlerFunc
}

// NewTool builds a Tool from a definition and a handler function.
func NewTool(name, description string, schema *jsonschema.Schema, handler ToolHandlerFunc) Tool {
	return &funcTool{
		info: ToolInfo{
			Name:        name,
			Description: description,
			InputSchema: schema,
		},
		handler: handler,
	}
}

func (t *funcTool) Definition() ToolInfo {
	return t.info
}

func (t *funcTool) Call(ctx context.Context, args map[string]any) (*CallToolResult, error) {
	return t.handler(ctx, args)
}

// registeredTool pairs a tool with its resolved input schema.
type registeredTool struct {
	tool     Tool
	info     ToolInfo
	resolved *jsonschema.Resolved
}

// Registry holds the tools served by a Server, keyed by name and kept in
// registration order. It is built once at startup and then frozen.
type Registry struct {
	mu     sync.RWMutex
	order  []*registeredTool
	byName map[string]*registeredTool
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*registeredTool),
	}
}

// Register adds a tool. Names are unique: registering a name twice returns
// ErrDuplicateTool and leaves the first registration in place.
func (r *Registry) Register(tool Tool) error {
	info := tool.Definition()
	if info.Name == "" {
		return fmt.Errorf("error registering tool: name is empty")
	}
	if info.InputSchema == nil {
		info.InputSchema = &jsonschema.Schema{Type: "object"}
	}

	resolved, err := info.InputSchema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("error resolving input schema for tool %q: %w", info.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("error registering tool %q: %w", info.Name, ErrRegistryFrozen)
	}
	if _, exists := r.byName[info.Name]; exists {
		return fmt.Errorf("error registering tool %q: %w", info.Name, ErrDuplicateTool)
	}

	entry := &registeredTool{tool: tool, info: info, resolved: resolved}
	r.order = append(r.order, entry)
	r.byName[info.Name] = entry
	return nil
}

// Freeze rejects any further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	entry, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return entry.tool, true
}

func (r *Registry) lookup(name string) (*registeredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byName[name]
	return entry, ok
}

// All yields the definition of every tool in registration order.
// The sequence can be ranged over any number of times.
func (r *Registry) All() iter.Seq[ToolInfo] {
	return func(yield func(ToolInfo) bool) {
		r.mu.RLock()
		entries := r.order
		r.mu.RUnlock()

		for _, entry := range entries {
			if !yield(entry.info) {
				return
			}
		}
	}
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
