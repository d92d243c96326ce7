//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package function wraps plain Go functions as callable tools.
package function

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentkit-go/agentkit/tool"
)

// FunctionTool adapts a typed Go function into a tool.CallableTool. The
// input type is decoded from JSON arguments; the output is returned as-is.
type FunctionTool[I, O any] struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
	fn           func(context.Context, I) (O, error)
}

// Option configures a FunctionTool.
type Option func(*options)

type options struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
}

// WithName sets the name of the function tool.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDescription sets the description of the function tool.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// WithInputSchema declares the JSON schema of the input type.
func WithInputSchema(s *tool.Schema) Option {
	return func(o *options) { o.inputSchema = s }
}

// WithOutputSchema declares the JSON schema of the output type.
func WithOutputSchema(s *tool.Schema) Option {
	return func(o *options) { o.outputSchema = s }
}

// New creates a FunctionTool from fn and the provided options.
func New[I, O any](fn func(context.Context, I) (O, error), opts ...Option) *FunctionTool[I, O] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &FunctionTool[I, O]{
		name:         o.name,
		description:  o.description,
		inputSchema:  o.inputSchema,
		outputSchema: o.outputSchema,
		fn:           fn,
	}
}

// Call decodes jsonArgs into the input type and invokes the wrapped
// function.
func (ft *FunctionTool[I, O]) Call(ctx context.Context, jsonArgs []byte) (any, error) {
	var input I
	if len(jsonArgs) > 0 {
		if err := json.Unmarshal(jsonArgs, &input); err != nil {
			return nil, fmt.Errorf("tool %s: decode arguments: %w", ft.name, err)
		}
	}
	return ft.fn(ctx, input)
}

// Declaration returns the tool's metadata.
func (ft *FunctionTool[I, O]) Declaration() *tool.Declaration {
	return &tool.Declaration{
		Name:         ft.name,
		Description:  ft.description,
		InputSchema:  ft.inputSchema,
		OutputSchema: ft.outputSchema,
	}
}
