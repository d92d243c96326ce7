// Package agent provides the core agent abstractions.
package agent

import (
	"context"

	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/tool"
)

// Error type constants for error events emitted by agents.
const (
	ErrorTypeInvalidRequest     = "invalid_request"
	ErrorTypeAgentCallbackError = "agent_callback_error"
	ErrorTypeRunError           = "run_error"
)

// Info contains basic information about an agent.
type Info struct {
	Name        string
	Description string
}

// Agent is the interface that all agents implement.
type Agent interface {
	// Run executes the invocation and returns a channel of events
	// representing the progress and results of the execution. The channel
	// is closed when the run finishes.
	Run(ctx context.Context, invocation *Invocation) (<-chan *event.Event, error)

	// Tools returns the tools available to this agent.
	Tools() []tool.Tool

	// Info returns the basic information about this agent.
	Info() Info

	// SubAgents returns the sub-agents available to this agent. Empty if
	// none.
	SubAgents() []Agent

	// FindSubAgent finds a sub-agent by name, or nil if absent.
	FindSubAgent(name string) Agent
}
