//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/model"
)

// AgentTarget adapts an agent.Agent into an evaluation Target. It runs
// one invocation per query and collects the tool trajectory and the
// final response from the event stream.
type AgentTarget struct {
	agent     agent.Agent
	runConfig *agent.RunConfig
}

// NewAgentTarget creates a Target backed by a.
func NewAgentTarget(a agent.Agent, cfg *agent.RunConfig) *AgentTarget {
	return &AgentTarget{agent: a, runConfig: cfg}
}

// Invoke implements the Target interface.
func (t *AgentTarget) Invoke(ctx context.Context, query string) (*Outcome, error) {
	var opts []agent.InvocationOption
	if t.runConfig != nil {
		opts = append(opts, agent.WithRunConfig(t.runConfig))
	}
	invocation := agent.NewInvocation(model.NewUserMessage(query), opts...)

	events, err := t.agent.Run(ctx, invocation)
	if err != nil {
		return nil, fmt.Errorf("run agent: %w", err)
	}

	outcome := &Outcome{}
	for e := range events {
		if e.Response == nil {
			continue
		}
		if e.Response.Error != nil {
			return nil, fmt.Errorf("agent error: %s", e.Response.Error.Message)
		}
		if e.Response.IsPartial || e.Response.Object == model.ObjectTypeToolResponse {
			continue
		}
		for _, choice := range e.Response.Choices {
			for _, call := range choice.Message.ToolCalls {
				outcome.ToolUses = append(outcome.ToolUses, ToolUse{
					Name: call.Function.Name,
					Args: parseArgs(call.Function.Arguments),
				})
			}
			if choice.Message.Content != "" {
				outcome.Response = choice.Message.Content
			}
		}
	}
	return outcome, nil
}

func parseArgs(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil
	}
	return args
}
