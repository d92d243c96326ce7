//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package a2aagent provides an agent that relays invocations to a remote
// agent over the A2A protocol.
package a2aagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trpc.group/trpc-go/trpc-a2a-go/client"
	"trpc.group/trpc-go/trpc-a2a-go/protocol"
	"trpc.group/trpc-go/trpc-a2a-go/server"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/log"
	"github.com/agentkit-go/agentkit/model"
	"github.com/agentkit-go/agentkit/tool"
)

const (
	defaultStreamingBufSize    = 1024
	defaultNonStreamingBufSize = 10
)

// A2AAgent forwards each invocation to a remote A2A agent and converts the
// remote replies into events.
type A2AAgent struct {
	name            string
	description     string
	agentCard       *server.AgentCard
	agentURL        string
	enableStreaming *bool
	streamingBuf    int
	clientOpts      []client.Option

	a2aClient *client.A2AClient
}

// Option configures an A2AAgent.
type Option func(*A2AAgent)

// WithName overrides the name taken from the agent card.
func WithName(name string) Option {
	return func(a *A2AAgent) { a.name = name }
}

// WithDescription overrides the description taken from the agent card.
func WithDescription(description string) Option {
	return func(a *A2AAgent) { a.description = description }
}

// WithAgentCard supplies a pre-resolved agent card, skipping discovery.
func WithAgentCard(card *server.AgentCard) Option {
	return func(a *A2AAgent) { a.agentCard = card }
}

// WithAgentURL sets the remote agent URL; the card is fetched from it.
func WithAgentURL(url string) Option {
	return func(a *A2AAgent) { a.agentURL = url }
}

// WithStreaming forces streaming on or off instead of following the card's
// advertised capability.
func WithStreaming(enabled bool) Option {
	return func(a *A2AAgent) { a.enableStreaming = &enabled }
}

// WithClientOptions passes extra options to the underlying A2A client.
func WithClientOptions(opts ...client.Option) Option {
	return func(a *A2AAgent) { a.clientOpts = append(a.clientOpts, opts...) }
}

// New creates an A2AAgent, resolving the remote agent card when one was not
// supplied.
func New(opts ...Option) (*A2AAgent, error) {
	a := &A2AAgent{streamingBuf: defaultStreamingBufSize}
	for _, opt := range opts {
		opt(a)
	}

	agentURL := a.agentURL
	if a.agentCard != nil && a.agentCard.URL != "" {
		agentURL = a.agentCard.URL
	}
	if agentURL == "" {
		return nil, fmt.Errorf("a2aagent: agent card or agent URL required")
	}

	a2aClient, err := client.NewA2AClient(agentURL, a.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create A2A client for %s: %w", agentURL, err)
	}
	a.a2aClient = a2aClient

	if a.agentCard == nil {
		card, err := a2aClient.GetAgentCard(context.Background(), "")
		if err != nil {
			return nil, fmt.Errorf("fetch agent card from %s: %w", agentURL, err)
		}
		if card.URL == "" {
			card.URL = agentURL
		}
		a.agentCard = card
	}
	if a.name == "" {
		a.name = a.agentCard.Name
	}
	if a.description == "" {
		a.description = a.agentCard.Description
	}
	return a, nil
}

// Run implements the agent.Agent interface.
func (a *A2AAgent) Run(ctx context.Context, invocation *agent.Invocation) (<-chan *event.Event, error) {
	if a.a2aClient == nil {
		return nil, fmt.Errorf("a2aagent %s: client not initialized", a.name)
	}
	invocation.AgentName = a.name
	if a.useStreaming() {
		return a.runStreaming(ctx, invocation)
	}
	return a.runNonStreaming(ctx, invocation)
}

func (a *A2AAgent) useStreaming() bool {
	if a.enableStreaming != nil {
		return *a.enableStreaming
	}
	if a.agentCard != nil && a.agentCard.Capabilities.Streaming != nil {
		return *a.agentCard.Capabilities.Streaming
	}
	return false
}

func (a *A2AAgent) buildMessage(invocation *agent.Invocation) protocol.Message {
	parts := []protocol.Part{protocol.NewTextPart(invocation.Message.Content)}
	return protocol.NewMessage(protocol.MessageRoleUser, parts)
}

func (a *A2AAgent) runNonStreaming(ctx context.Context, invocation *agent.Invocation) (<-chan *event.Event, error) {
	eventChan := make(chan *event.Event, defaultNonStreamingBufSize)
	go func() {
		defer close(eventChan)

		params := protocol.SendMessageParams{Message: a.buildMessage(invocation)}
		result, err := a.a2aClient.SendMessage(ctx, params)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeRunError,
				fmt.Sprintf("A2A request to %s failed: %v", a.agentCard.URL, err)))
			return
		}
		content := extractText(result.Result)
		a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, &model.Response{
			Done:      true,
			Timestamp: time.Now(),
			Created:   time.Now().Unix(),
			Choices: []model.Choice{{
				Message: model.NewAssistantMessage(content),
			}},
		}))
	}()
	return eventChan, nil
}

func (a *A2AAgent) runStreaming(ctx context.Context, invocation *agent.Invocation) (<-chan *event.Event, error) {
	eventChan := make(chan *event.Event, a.streamingBuf)
	go func() {
		defer close(eventChan)

		params := protocol.SendMessageParams{Message: a.buildMessage(invocation)}
		streamChan, err := a.a2aClient.StreamMessage(ctx, params)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeRunError,
				fmt.Sprintf("A2A streaming request to %s failed: %v", a.agentCard.URL, err)))
			return
		}

		var aggregated strings.Builder
		for streamEvent := range streamChan {
			if ctx.Err() != nil {
				return
			}
			content := extractText(streamEvent.Result)
			aggregated.WriteString(content)
			partial := &model.Response{
				IsPartial: true,
				Timestamp: time.Now(),
				Created:   time.Now().Unix(),
				Choices: []model.Choice{{
					Delta: model.Message{Role: model.RoleAssistant, Content: content},
				}},
			}
			if !a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, partial)) {
				return
			}
		}

		a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, &model.Response{
			Done:      true,
			Timestamp: time.Now(),
			Created:   time.Now().Unix(),
			Choices: []model.Choice{{
				Message: model.NewAssistantMessage(aggregated.String()),
			}},
		}))
	}()
	return eventChan, nil
}

// extractText pulls the text parts out of any A2A result payload.
func extractText(result any) string {
	var msg *protocol.Message
	switch v := result.(type) {
	case *protocol.Message:
		msg = v
	case *protocol.Task:
		m := protocol.Message{Role: protocol.MessageRoleAgent}
		for _, artifact := range v.Artifacts {
			m.Parts = append(m.Parts, artifact.Parts...)
		}
		msg = &m
	case *protocol.TaskStatusUpdateEvent:
		if v.Status.Message != nil {
			msg = v.Status.Message
		}
	case *protocol.TaskArtifactUpdateEvent:
		msg = &protocol.Message{
			Role:  protocol.MessageRoleAgent,
			Parts: v.Artifact.Parts,
		}
	default:
		log.Infof("a2aagent: unexpected result type %T", result)
	}
	if msg == nil {
		return ""
	}
	var content strings.Builder
	for _, part := range msg.Parts {
		if part.GetKind() != protocol.KindText {
			continue
		}
		switch p := part.(type) {
		case *protocol.TextPart:
			content.WriteString(p.Text)
		case protocol.TextPart:
			content.WriteString(p.Text)
		}
	}
	return content.String()
}

func (a *A2AAgent) emit(ctx context.Context, eventChan chan<- *event.Event, e *event.Event) bool {
	select {
	case eventChan <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// Tools implements the agent.Agent interface. The remote agent owns its
// tools.
func (a *A2AAgent) Tools() []tool.Tool {
	return nil
}

// Info implements the agent.Agent interface.
func (a *A2AAgent) Info() agent.Info {
	return agent.Info{
		Name:        a.name,
		Description: a.description,
	}
}

// SubAgents implements the agent.Agent interface.
func (a *A2AAgent) SubAgents() []agent.Agent {
	return nil
}

// FindSubAgent implements the agent.Agent interface.
func (a *A2AAgent) FindSubAgent(string) agent.Agent {
	return nil
}
