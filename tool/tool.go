// Package tool provides the tool interfaces agents use to act.
package tool

import "context"

// Tool is the interface implemented by everything an agent can call.
type Tool interface {
	// Declaration returns the metadata describing the tool.
	Declaration() *Declaration
}

// CallableTool is a tool that can be invoked with JSON arguments.
type CallableTool interface {
	// Call invokes the tool with JSON-encoded arguments and returns the
	// result, or an error if execution fails.
	Call(ctx context.Context, jsonArgs []byte) (any, error)

	Tool
}

// Declaration describes a tool: its name, purpose, and argument schema.
type Declaration struct {
	// Name is the unique identifier of the tool.
	Name string `json:"name"`

	// Description explains the tool's purpose to the model.
	Description string `json:"description"`

	// InputSchema defines the expected input in JSON schema form.
	InputSchema *Schema `json:"inputSchema,omitempty"`

	// OutputSchema defines the produced output in JSON schema form.
	OutputSchema *Schema `json:"outputSchema,omitempty"`
}

// Schema is the subset of JSON Schema used to declare tool arguments.
type Schema struct {
	// Type is the data type: "object", "array", "string", "number",
	// "integer", "boolean".
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties maps argument names to their schemas.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items is the element schema for array types.
	Items *Schema `json:"items,omitempty"`
}
