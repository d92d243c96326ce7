//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package llmagent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/model"
	"github.com/agentkit-go/agentkit/tool"
	"github.com/agentkit-go/agentkit/tool/function"
)

// scriptedModel replays one canned response per GenerateContent call.
type scriptedModel struct {
	responses []*model.Response
	calls     int
	requests  []*model.Request
}

func (m *scriptedModel) GenerateContent(ctx context.Context, request *model.Request) (<-chan *model.Response, error) {
	m.requests = append(m.requests, request)
	if m.calls >= len(m.responses) {
		return nil, errors.New("no scripted response left")
	}
	rsp := m.responses[m.calls]
	m.calls++
	ch := make(chan *model.Response, 1)
	ch <- rsp
	close(ch)
	return ch, nil
}

func (m *scriptedModel) Info() model.Info {
	return model.Info{Name: "scripted"}
}

func finalText(content string) *model.Response {
	return &model.Response{
		Object: model.ObjectTypeChatCompletion,
		Done:   true,
		Choices: []model.Choice{{
			Message: model.NewAssistantMessage(content),
		}},
	}
}

func toolCallResponse(callID, toolName, args string) *model.Response {
	return &model.Response{
		Object: model.ObjectTypeChatCompletion,
		Done:   true,
		Choices: []model.Choice{{
			Message: model.Message{
				Role: model.RoleAssistant,
				ToolCalls: []model.ToolCall{{
					ID:   callID,
					Type: "function",
					Function: model.FunctionCall{
						Name:      toolName,
						Arguments: []byte(args),
					},
				}},
			},
		}},
	}
}

func collect(t *testing.T, ch <-chan *event.Event) []*event.Event {
	t.Helper()
	var events []*event.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, e)
		case <-timeout:
			t.Fatal("timed out collecting events")
		}
	}
}

func TestRunPlainAnswer(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{finalText("four")}}
	a := New("calc",
		WithModel(m),
		WithInstruction("You answer arithmetic questions."),
	)

	inv := agent.NewInvocation(model.NewUserMessage("what is 2+2?"))
	ch, err := a.Run(context.Background(), inv)
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	assert.Equal(t, "four", events[0].Response.Choices[0].Message.Content)
	assert.Equal(t, "calc", events[0].Author)
	assert.Equal(t, inv.InvocationID, events[0].InvocationID)

	// Instruction must lead the conversation.
	require.NotEmpty(t, m.requests)
	assert.Equal(t, model.RoleSystem, m.requests[0].Messages[0].Role)
}

func TestRunToolLoop(t *testing.T) {
	echo := function.New(
		func(_ context.Context, in map[string]any) (map[string]any, error) {
			return map[string]any{"echoed": in["text"]}, nil
		},
		function.WithName("echo"),
		function.WithDescription("Echo the input."),
		function.WithInputSchema(&tool.Schema{Type: "object"}),
	)

	m := &scriptedModel{responses: []*model.Response{
		toolCallResponse("call-1", "echo", `{"text": "hi"}`),
		finalText("the tool said hi"),
	}}
	a := New("echoer", WithModel(m), WithTools(echo))

	ch, err := a.Run(context.Background(), agent.NewInvocation(model.NewUserMessage("echo hi")))
	require.NoError(t, err)
	events := collect(t, ch)

	// tool-call response, tool result, final answer.
	require.Len(t, events, 3)
	assert.Equal(t, model.ObjectTypeToolResponse, events[1].Response.Object)
	assert.Equal(t, "the tool said hi", events[2].Response.Choices[0].Message.Content)

	// Second request must carry the assistant tool call and the tool result.
	require.Len(t, m.requests, 2)
	msgs := m.requests[1].Messages
	assert.Equal(t, model.RoleAssistant, msgs[len(msgs)-2].Role)
	assert.Equal(t, model.RoleTool, msgs[len(msgs)-1].Role)
	assert.Equal(t, "call-1", msgs[len(msgs)-1].ToolID)
}

func TestRunUnknownTool(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{
		toolCallResponse("call-1", "missing", `{}`),
		finalText("recovered"),
	}}
	a := New("agent", WithModel(m))

	ch, err := a.Run(context.Background(), agent.NewInvocation(model.NewUserMessage("go")))
	require.NoError(t, err)
	events := collect(t, ch)

	require.Len(t, events, 3)
	assert.Contains(t, events[1].Response.Choices[0].Message.Content, "unknown tool")
}

func TestRunMaxLLMCallsEnforced(t *testing.T) {
	// The model keeps requesting tools, so the budget must trip.
	loop := []*model.Response{
		toolCallResponse("c1", "missing", `{}`),
		toolCallResponse("c2", "missing", `{}`),
		toolCallResponse("c3", "missing", `{}`),
	}
	m := &scriptedModel{responses: loop}
	a := New("looper", WithModel(m))

	cfg, err := agent.NewRunConfig(agent.WithMaxLLMCalls(2))
	require.NoError(t, err)

	inv := agent.NewInvocation(model.NewUserMessage("go"), agent.WithRunConfig(cfg))
	ch, err := a.Run(context.Background(), inv)
	require.NoError(t, err)
	events := collect(t, ch)

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.NotNil(t, last.Response.Error)
	assert.Contains(t, last.Response.Error.Message, "max LLM calls")
	assert.Equal(t, 2, m.calls)
}

func TestRunNoModel(t *testing.T) {
	a := New("modelless")
	_, err := a.Run(context.Background(), agent.NewInvocation(model.NewUserMessage("hi")))
	require.Error(t, err)
}

func TestBeforeAgentCallbackShortCircuits(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{finalText("should not run")}}
	cb := agent.NewCallbacks().RegisterBeforeAgent(
		func(_ context.Context, _ *agent.Invocation) (*model.Response, error) {
			return finalText("cached"), nil
		})
	a := New("cached", WithModel(m), WithAgentCallbacks(cb))

	ch, err := a.Run(context.Background(), agent.NewInvocation(model.NewUserMessage("hi")))
	require.NoError(t, err)
	events := collect(t, ch)

	require.Len(t, events, 1)
	assert.Equal(t, "cached", events[0].Response.Choices[0].Message.Content)
	assert.Zero(t, m.calls)
}

func TestFindSubAgent(t *testing.T) {
	sub := New("child")
	a := New("parent", WithSubAgents([]agent.Agent{sub}))

	assert.Equal(t, sub, a.FindSubAgent("child"))
	assert.Nil(t, a.FindSubAgent("stranger"))
	assert.Len(t, a.SubAgents(), 1)
}
