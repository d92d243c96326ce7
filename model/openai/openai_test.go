//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package openai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentkit-go/agentkit/model"
	"github.com/agentkit-go/agentkit/tool"
	"github.com/agentkit-go/agentkit/tool/function"
)

func TestInfo(t *testing.T) {
	m := New("gpt-4o-mini", WithAPIKey("test-key"))
	assert.Equal(t, "gpt-4o-mini", m.Info().Name)
}

func TestGenerateContentNilRequest(t *testing.T) {
	m := New("gpt-4o-mini", WithAPIKey("test-key"))
	_, err := m.GenerateContent(context.Background(), nil)
	require.Error(t, err)
}

func TestConvertMessages(t *testing.T) {
	msgs := []model.Message{
		model.NewSystemMessage("be terse"),
		model.NewUserMessage("hi"),
		{
			Role: model.RoleAssistant,
			ToolCalls: []model.ToolCall{{
				ID:   "call-1",
				Type: "function",
				Function: model.FunctionCall{
					Name:      "lookup",
					Arguments: []byte(`{"q": "x"}`),
				},
			}},
		},
		model.NewToolMessage("call-1", `{"answer": 42}`),
	}

	converted := convertMessages(msgs)
	require.Len(t, converted, 4)
	assert.NotNil(t, converted[0].OfSystem)
	assert.NotNil(t, converted[1].OfUser)
	require.NotNil(t, converted[2].OfAssistant)
	require.Len(t, converted[2].OfAssistant.ToolCalls, 1)
	assert.Equal(t, "lookup", converted[2].OfAssistant.ToolCalls[0].Function.Name)
	require.NotNil(t, converted[3].OfTool)
	assert.Equal(t, "call-1", converted[3].OfTool.ToolCallID)
}

func TestConvertTools(t *testing.T) {
	echo := function.New(
		func(_ context.Context, in map[string]any) (map[string]any, error) {
			return in, nil
		},
		function.WithName("echo"),
		function.WithDescription("Echo the input."),
		function.WithInputSchema(&tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"text": {Type: "string"},
			},
		}),
	)

	converted := convertTools(map[string]tool.Tool{"echo": echo})
	require.Len(t, converted, 1)
	assert.Equal(t, "echo", converted[0].Function.Name)
	assert.Equal(t, "object", converted[0].Function.Parameters["type"])
}
