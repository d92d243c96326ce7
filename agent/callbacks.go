//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package agent

import (
	"context"

	"github.com/agentkit-go/agentkit/model"
)

// BeforeAgentCallback runs before the agent executes. A non-nil response
// short-circuits execution and is returned to the caller; a non-nil error
// aborts the run.
type BeforeAgentCallback func(ctx context.Context, invocation *Invocation) (*model.Response, error)

// AfterAgentCallback runs after the agent executes. A non-nil response
// replaces the agent's final response; a non-nil error is surfaced to the
// caller.
type AfterAgentCallback func(ctx context.Context, invocation *Invocation, runErr error) (*model.Response, error)

// Callbacks holds lifecycle hooks for agent execution.
type Callbacks struct {
	BeforeAgent []BeforeAgentCallback
	AfterAgent  []AfterAgentCallback
}

// NewCallbacks creates an empty Callbacks instance.
func NewCallbacks() *Callbacks {
	return &Callbacks{}
}

// RegisterBeforeAgent appends a before-agent callback.
func (c *Callbacks) RegisterBeforeAgent(cb BeforeAgentCallback) *Callbacks {
	c.BeforeAgent = append(c.BeforeAgent, cb)
	return c
}

// RegisterAfterAgent appends an after-agent callback.
func (c *Callbacks) RegisterAfterAgent(cb AfterAgentCallback) *Callbacks {
	c.AfterAgent = append(c.AfterAgent, cb)
	return c
}

// RunBeforeAgent runs the before callbacks in registration order, stopping
// at the first custom response or error.
func (c *Callbacks) RunBeforeAgent(ctx context.Context, invocation *Invocation) (*model.Response, error) {
	for _, cb := range c.BeforeAgent {
		rsp, err := cb(ctx, invocation)
		if err != nil {
			return nil, err
		}
		if rsp != nil {
			return rsp, nil
		}
	}
	return nil, nil
}

// RunAfterAgent runs the after callbacks in registration order, stopping at
// the first custom response or error.
func (c *Callbacks) RunAfterAgent(ctx context.Context, invocation *Invocation, runErr error) (*model.Response, error) {
	for _, cb := range c.AfterAgent {
		rsp, err := cb(ctx, invocation, runErr)
		if err != nil {
			return nil, err
		}
		if rsp != nil {
			return rsp, nil
		}
	}
	return nil, nil
}
