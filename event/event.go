//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package event carries the events agents emit while running.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentkit-go/agentkit/model"
)

// Event is one unit of agent output: a model response annotated with the
// invocation it belongs to and the agent that produced it.
type Event struct {
	// Response is the model response payload.
	*model.Response

	// InvocationID ties the event to one invocation.
	InvocationID string `json:"invocationId"`

	// Author is the name of the agent that produced the event.
	Author string `json:"author"`

	// ID is the unique identifier of the event.
	ID string `json:"id"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Branch identifies the sub-agent branch in multi-agent runs.
	Branch string `json:"branch,omitempty"`
}

// Option configures an Event at construction.
type Option func(*Event)

// WithBranch sets the branch for the event.
func WithBranch(branch string) Option {
	return func(e *Event) { e.Branch = branch }
}

// WithResponse sets the response payload for the event.
func WithResponse(response *model.Response) Option {
	return func(e *Event) { e.Response = response }
}

// New creates an Event with a generated ID and current timestamp.
func New(invocationID, author string, opts ...Option) *Event {
	e := &Event{
		Response:     &model.Response{},
		InvocationID: invocationID,
		Author:       author,
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewResponseEvent wraps a model response in an event.
func NewResponseEvent(invocationID, author string, response *model.Response) *Event {
	return New(invocationID, author, WithResponse(response))
}

// NewErrorEvent creates an event carrying an error payload.
func NewErrorEvent(invocationID, author, errType, message string) *Event {
	return New(invocationID, author,
		WithResponse(model.NewErrorResponse(errType, message)))
}

// Clone creates a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Response = e.Response.Clone()
	return &clone
}

// IsFinal reports whether the event terminates its invocation.
func (e *Event) IsFinal() bool {
	return e.Response != nil && e.Response.Done
}
