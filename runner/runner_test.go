//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/internal/feature"
	"github.com/agentkit-go/agentkit/model"
	"github.com/agentkit-go/agentkit/tool"
)

// echoAgent replies to every invocation with a single final event
// echoing the input message, and records the messages it saw.
type echoAgent struct {
	mu       sync.Mutex
	messages []string
	runErr   error
}

func (a *echoAgent) Run(ctx context.Context, invocation *agent.Invocation) (<-chan *event.Event, error) {
	if a.runErr != nil {
		return nil, a.runErr
	}
	a.mu.Lock()
	a.messages = append(a.messages, invocation.Message.Content)
	a.mu.Unlock()

	ch := make(chan *event.Event, 1)
	rsp := &model.Response{
		Object: model.ObjectTypeChatCompletion,
		Done:   true,
		Choices: []model.Choice{{
			Message: model.NewAssistantMessage("echo: " + invocation.Message.Content),
		}},
	}
	ch <- event.NewResponseEvent(invocation.InvocationID, "echo", rsp)
	close(ch)
	return ch, nil
}

func (a *echoAgent) Tools() []tool.Tool { return nil }

func (a *echoAgent) Info() agent.Info {
	return agent.Info{Name: "echo", Description: "echoes input"}
}

func (a *echoAgent) SubAgents() []agent.Agent { return nil }

func (a *echoAgent) FindSubAgent(name string) agent.Agent { return nil }

func (a *echoAgent) seen() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

func collect(t *testing.T, ch <-chan *event.Event) []*event.Event {
	t.Helper()
	var events []*event.Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, e)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
}

func TestRunnerRun(t *testing.T) {
	a := &echoAgent{}
	r := New("test-app", a)

	ch, err := r.Run(context.Background(), "user-1", model.NewUserMessage("hello"))
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	assert.Equal(t, "echo", events[0].Author)
	assert.Equal(t, "echo: hello", events[0].Response.Choices[0].Message.Content)
	assert.Equal(t, []string{"hello"}, a.seen())
}

func TestRunnerRunAgentError(t *testing.T) {
	a := &echoAgent{runErr: errors.New("model unavailable")}
	r := New("test-app", a)

	_, err := r.Run(context.Background(), "user-1", model.NewUserMessage("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestRunnerRunLive(t *testing.T) {
	t.Setenv(feature.BypassEnvVar, "1")

	a := &echoAgent{}
	r := New("test-app", a)

	queue := agent.NewLiveRequestQueue()
	queue.SendContent(model.NewUserMessage("first"))
	queue.SendContent(model.NewUserMessage("second"))
	queue.Close()

	ch, err := r.RunLive(context.Background(), "user-1", queue)
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 2)
	assert.Equal(t, "echo: first", events[0].Response.Choices[0].Message.Content)
	assert.Equal(t, "echo: second", events[1].Response.Choices[0].Message.Content)
	assert.Equal(t, []string{"first", "second"}, a.seen())
}

func TestRunnerRunLiveSkipsBlobs(t *testing.T) {
	t.Setenv(feature.BypassEnvVar, "1")

	a := &echoAgent{}
	r := New("test-app", a)

	queue := agent.NewLiveRequestQueue()
	queue.SendRealtime(model.NewBlob("audio/pcm", []byte{1, 2, 3}))
	queue.SendContent(model.NewUserMessage("after blob"))
	queue.Close()

	ch, err := r.RunLive(context.Background(), "user-1", queue)
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"after blob"}, a.seen())
}

func TestRunnerRunLiveAgentErrorEmitsEvent(t *testing.T) {
	t.Setenv(feature.BypassEnvVar, "1")

	a := &echoAgent{runErr: errors.New("boom")}
	r := New("test-app", a)

	queue := agent.NewLiveRequestQueue()
	queue.SendContent(model.NewUserMessage("hello"))
	queue.Close()

	ch, err := r.RunLive(context.Background(), "user-1", queue)
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Response.Error)
	assert.Equal(t, agent.ErrorTypeRunError, events[0].Response.Error.Type)
}

func TestRunnerRunLiveNilQueue(t *testing.T) {
	r := New("test-app", &echoAgent{})
	_, err := r.RunLive(context.Background(), "user-1", nil)
	require.Error(t, err)
}

func TestRunnerRunLiveContextCancel(t *testing.T) {
	t.Setenv(feature.BypassEnvVar, "1")

	a := &echoAgent{}
	r := New("test-app", a)

	ctx, cancel := context.WithCancel(context.Background())
	queue := agent.NewLiveRequestQueue()

	ch, err := r.RunLive(ctx, "user-1", queue)
	require.NoError(t, err)

	cancel()
	events := collect(t, ch)
	assert.Empty(t, events)
}
