//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package agent

import (
	"github.com/google/uuid"

	"github.com/agentkit-go/agentkit/model"
)

// Invocation is the per-run state handed to an agent.
type Invocation struct {
	// Agent is the agent being invoked.
	Agent Agent
	// AgentName is the name of the agent being invoked.
	AgentName string
	// InvocationID uniquely identifies this invocation.
	InvocationID string
	// Branch is the branch identifier for hierarchical event filtering.
	Branch string
	// EndInvocation marks the invocation as complete.
	EndInvocation bool
	// Model is the model used for the invocation, if any.
	Model model.Model
	// Message is the message being sent to the agent.
	Message model.Message
	// RunConfig carries the runtime configuration for this run.
	RunConfig *RunConfig
	// AgentCallbacks contains callbacks for agent lifecycle hooks.
	AgentCallbacks *Callbacks
}

// NewInvocation creates an invocation with a generated ID carrying msg.
func NewInvocation(msg model.Message, opts ...InvocationOption) *Invocation {
	inv := &Invocation{
		InvocationID: uuid.New().String(),
		Message:      msg,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// InvocationOption configures an Invocation at construction.
type InvocationOption func(*Invocation)

// WithRunConfig attaches a run configuration to the invocation.
func WithRunConfig(cfg *RunConfig) InvocationOption {
	return func(inv *Invocation) { inv.RunConfig = cfg }
}

// WithModel attaches a model to the invocation.
func WithModel(m model.Model) InvocationOption {
	return func(inv *Invocation) { inv.Model = m }
}

// CreateBranchInvocation creates a copy of the invocation for a sub-agent.
// The copy shares no mutable state with the original.
func (inv *Invocation) CreateBranchInvocation(subAgent Agent) *Invocation {
	return &Invocation{
		Agent:        subAgent,
		AgentName:    subAgent.Info().Name,
		InvocationID: inv.InvocationID,
		Branch:       inv.Branch,
		Message:      inv.Message,
		Model:        inv.Model,
		RunConfig:    inv.RunConfig,
	}
}
