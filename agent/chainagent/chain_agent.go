//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package chainagent provides a sequential multi-agent implementation.
package chainagent

import (
	"context"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/tool"
)

const defaultChannelBufferSize = 256

// ChainAgent runs its sub-agents one after another, forwarding each
// sub-agent's events as they are produced.
type ChainAgent struct {
	name              string
	description       string
	subAgents         []agent.Agent
	channelBufferSize int
	agentCallbacks    *agent.Callbacks
}

// Option configures a ChainAgent.
type Option func(*Options)

// Options contains the configuration for a ChainAgent.
type Options struct {
	description       string
	subAgents         []agent.Agent
	channelBufferSize int
	agentCallbacks    *agent.Callbacks
}

// WithDescription sets the agent description.
func WithDescription(description string) Option {
	return func(o *Options) { o.description = description }
}

// WithSubAgents sets the sub-agents executed in sequence.
func WithSubAgents(subAgents []agent.Agent) Option {
	return func(o *Options) { o.subAgents = subAgents }
}

// WithChannelBufferSize sets the buffer size for the event channel.
func WithChannelBufferSize(size int) Option {
	return func(o *Options) { o.channelBufferSize = size }
}

// WithAgentCallbacks attaches lifecycle callbacks.
func WithAgentCallbacks(cb *agent.Callbacks) Option {
	return func(o *Options) { o.agentCallbacks = cb }
}

// New creates a ChainAgent with the given name and options.
func New(name string, opts ...Option) *ChainAgent {
	cfg := Options{
		channelBufferSize: defaultChannelBufferSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.channelBufferSize <= 0 {
		cfg.channelBufferSize = defaultChannelBufferSize
	}
	return &ChainAgent{
		name:              name,
		description:       cfg.description,
		subAgents:         cfg.subAgents,
		channelBufferSize: cfg.channelBufferSize,
		agentCallbacks:    cfg.agentCallbacks,
	}
}

// Run implements the agent.Agent interface.
func (a *ChainAgent) Run(ctx context.Context, invocation *agent.Invocation) (<-chan *event.Event, error) {
	eventChan := make(chan *event.Event, a.channelBufferSize)
	go func() {
		defer close(eventChan)
		a.execute(ctx, invocation, eventChan)
	}()
	return eventChan, nil
}

func (a *ChainAgent) execute(ctx context.Context, invocation *agent.Invocation, eventChan chan<- *event.Event) {
	invocation.Agent = a
	invocation.AgentName = a.name
	if invocation.AgentCallbacks == nil {
		invocation.AgentCallbacks = a.agentCallbacks
	}

	if invocation.AgentCallbacks != nil {
		custom, err := invocation.AgentCallbacks.RunBeforeAgent(ctx, invocation)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeAgentCallbackError, err.Error()))
			return
		}
		if custom != nil {
			a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, custom))
			return
		}
	}

	a.runSubAgents(ctx, invocation, eventChan)

	if invocation.AgentCallbacks != nil {
		custom, err := invocation.AgentCallbacks.RunAfterAgent(ctx, invocation, nil)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeAgentCallbackError, err.Error()))
			return
		}
		if custom != nil {
			a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, custom))
		}
	}
}

func (a *ChainAgent) runSubAgents(ctx context.Context, invocation *agent.Invocation, eventChan chan<- *event.Event) {
	for _, sub := range a.subAgents {
		subInvocation := invocation.CreateBranchInvocation(sub)
		// Sub-agents of the chain share one branch so they can observe
		// each other's events.
		if subInvocation.Branch == "" {
			subInvocation.Branch = a.name
		}

		subChan, err := sub.Run(ctx, subInvocation)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, sub.Info().Name, agent.ErrorTypeRunError, err.Error()))
			return
		}
		for e := range subChan {
			if !a.emit(ctx, eventChan, e) {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (a *ChainAgent) emit(ctx context.Context, eventChan chan<- *event.Event, e *event.Event) bool {
	select {
	case eventChan <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// Tools implements the agent.Agent interface. The chain itself exposes no
// tools.
func (a *ChainAgent) Tools() []tool.Tool {
	return nil
}

// Info implements the agent.Agent interface.
func (a *ChainAgent) Info() agent.Info {
	return agent.Info{
		Name:        a.name,
		Description: a.description,
	}
}

// SubAgents implements the agent.Agent interface.
func (a *ChainAgent) SubAgents() []agent.Agent {
	return a.subAgents
}

// FindSubAgent implements the agent.Agent interface.
func (a *ChainAgent) FindSubAgent(name string) agent.Agent {
	for _, sub := range a.subAgents {
		if sub.Info().Name == name {
			return sub
		}
	}
	return nil
}
