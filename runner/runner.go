//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package runner drives agent execution, turning user input into event
// streams.
package runner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/internal/feature"
	"github.com/agentkit-go/agentkit/log"
	"github.com/agentkit-go/agentkit/model"
	"github.com/agentkit-go/agentkit/telemetry/trace"
)

const defaultChannelBufferSize = 256

// Runner executes an agent for an application.
type Runner interface {
	// Run executes one invocation carrying message and streams the
	// resulting events.
	Run(ctx context.Context, userID string, message model.Message) (<-chan *event.Event, error)

	// RunLive consumes requests from queue one at a time, running the
	// agent for each content request until a close request arrives.
	RunLive(ctx context.Context, userID string, queue *agent.LiveRequestQueue) (<-chan *event.Event, error)
}

// Option configures a Runner.
type Option func(*options)

type options struct {
	runConfig *agent.RunConfig
}

// WithRunConfig sets the run configuration applied to every invocation.
func WithRunConfig(cfg *agent.RunConfig) Option {
	return func(o *options) { o.runConfig = cfg }
}

type runner struct {
	appName   string
	agent     agent.Agent
	runConfig *agent.RunConfig
}

// New creates a Runner for the given application name and agent.
func New(appName string, a agent.Agent, opts ...Option) Runner {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.runConfig == nil {
		// Defaults never trip validation.
		cfg, _ := agent.NewRunConfig()
		o.runConfig = cfg
	}
	return &runner{
		appName:   appName,
		agent:     a,
		runConfig: o.runConfig,
	}
}

// Run implements the Runner interface.
func (r *runner) Run(ctx context.Context, userID string, message model.Message) (<-chan *event.Event, error) {
	ctx, span := trace.Tracer.Start(ctx, "invocation")
	span.SetAttributes(
		attribute.String("agentkit.app_name", r.appName),
		attribute.String("agentkit.user_id", userID),
	)

	invocation := agent.NewInvocation(message, agent.WithRunConfig(r.runConfig))
	agentChan, err := r.agent.Run(ctx, invocation)
	if err != nil {
		span.End()
		return nil, fmt.Errorf("run agent %s: %w", r.agent.Info().Name, err)
	}

	eventChan := make(chan *event.Event, defaultChannelBufferSize)
	go func() {
		defer close(eventChan)
		defer span.End()
		for e := range agentChan {
			select {
			case eventChan <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return eventChan, nil
}

// RunLive implements the Runner interface.
func (r *runner) RunLive(ctx context.Context, userID string, queue *agent.LiveRequestQueue) (<-chan *event.Event, error) {
	feature.Experimental("RunLive", "live bidirectional streaming may change in future releases")
	if queue == nil {
		return nil, fmt.Errorf("live request queue is nil")
	}

	ctx, span := trace.Tracer.Start(ctx, "live-session")
	span.SetAttributes(
		attribute.String("agentkit.app_name", r.appName),
		attribute.String("agentkit.user_id", userID),
	)

	eventChan := make(chan *event.Event, defaultChannelBufferSize)
	go func() {
		defer close(eventChan)
		defer span.End()
		r.liveLoop(ctx, queue, eventChan)
	}()
	return eventChan, nil
}

// liveLoop pulls requests off the queue in FIFO order until a close
// request or context cancellation.
func (r *runner) liveLoop(ctx context.Context, queue *agent.LiveRequestQueue, eventChan chan<- *event.Event) {
	for {
		req, err := queue.Get(ctx)
		if err != nil {
			log.Debugf("live loop stopped: %v", err)
			return
		}
		switch {
		case req.Close:
			return
		case req.Blob != nil:
			if r.runConfig.SaveInputBlobsAsArtifacts {
				log.Infof("received %s blob of %d bytes", req.Blob.MIMEType, len(req.Blob.Data))
			} else {
				log.Debugf("discarding %s blob of %d bytes", req.Blob.MIMEType, len(req.Blob.Data))
			}
		case req.Content != nil:
			if !r.runTurn(ctx, *req.Content, eventChan) {
				return
			}
		}
	}
}

// runTurn runs the agent for one content request, forwarding its events.
// Returns false when the context was cancelled.
func (r *runner) runTurn(ctx context.Context, message model.Message, eventChan chan<- *event.Event) bool {
	invocation := agent.NewInvocation(message, agent.WithRunConfig(r.runConfig))
	agentChan, err := r.agent.Run(ctx, invocation)
	if err != nil {
		e := event.NewErrorEvent(invocation.InvocationID, r.agent.Info().Name,
			agent.ErrorTypeRunError, err.Error())
		select {
		case eventChan <- e:
			return true
		case <-ctx.Done():
			return false
		}
	}
	for e := range agentChan {
		select {
		case eventChan <- e:
		case <-ctx.Done():
			return false
		}
	}
	return true
}
