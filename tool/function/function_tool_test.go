//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package function

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentkit-go/agentkit/tool"
)

type addArgs struct {
	A int `json:"a"`
	B int `json:"b"`
}

type addResult struct {
	Sum int `json:"sum"`
}

func TestFunctionToolCall(t *testing.T) {
	ft := New(
		func(_ context.Context, in addArgs) (addResult, error) {
			return addResult{Sum: in.A + in.B}, nil
		},
		WithName("add"),
		WithDescription("Adds two integers."),
	)

	got, err := ft.Call(context.Background(), []byte(`{"a": 2, "b": 3}`))
	require.NoError(t, err)
	assert.Equal(t, addResult{Sum: 5}, got)
}

func TestFunctionToolCallEmptyArgs(t *testing.T) {
	ft := New(func(_ context.Context, in addArgs) (addResult, error) {
		return addResult{Sum: in.A + in.B}, nil
	}, WithName("add"))

	got, err := ft.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, addResult{Sum: 0}, got)
}

func TestFunctionToolCallBadArgs(t *testing.T) {
	ft := New(func(_ context.Context, in addArgs) (addResult, error) {
		return addResult{}, nil
	}, WithName("add"))

	_, err := ft.Call(context.Background(), []byte(`{"a": "nope"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add")
}

func TestFunctionToolPropagatesError(t *testing.T) {
	wantErr := errors.New("backend unavailable")
	ft := New(func(_ context.Context, _ addArgs) (addResult, error) {
		return addResult{}, wantErr
	}, WithName("add"))

	_, err := ft.Call(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, wantErr)
}

func TestFunctionToolDeclaration(t *testing.T) {
	schema := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"a": {Type: "integer"},
			"b": {Type: "integer"},
		},
		Required: []string{"a", "b"},
	}
	ft := New(
		func(_ context.Context, in addArgs) (addResult, error) {
			return addResult{}, nil
		},
		WithName("add"),
		WithDescription("Adds two integers."),
		WithInputSchema(schema),
	)

	decl := ft.Declaration()
	require.NotNil(t, decl)
	assert.Equal(t, "add", decl.Name)
	assert.Equal(t, "Adds two integers.", decl.Description)
	assert.Same(t, schema, decl.InputSchema)
}
