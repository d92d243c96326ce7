//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package model

import "time"

// Error type constants for ResponseError.Type.
const (
	ErrorTypeAPIError        = "api_error"
	ErrorTypeStreamError     = "stream_error"
	ErrorTypeFlowError       = "flow_error"
	ErrorTypeUnsupportedTool = "unsupported_tool"
)

// Object type constants for Response.Object.
const (
	// ObjectTypeChatCompletion marks a complete chat response.
	ObjectTypeChatCompletion = "chat.completion"
	// ObjectTypeChatCompletionChunk marks a streamed partial response.
	ObjectTypeChatCompletionChunk = "chat.completion.chunk"
	// ObjectTypeToolResponse marks a tool execution result.
	ObjectTypeToolResponse = "tool.response"
	// ObjectTypeError marks an error response.
	ObjectTypeError = "error"
)

// Choice is one completion alternative in a response.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`

	// Message is the full message content.
	Message Message `json:"message,omitempty"`

	// Delta is the partial message content for streaming chunks.
	Delta Message `json:"delta,omitempty"`

	// FinishReason is why generation stopped: "stop", "length",
	// "tool_calls", "content_filter".
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Usage reports token consumption for a response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ResponseError is an API-level error delivered inside a Response.
type ResponseError struct {
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Type is one of the ErrorType constants.
	Type string `json:"type"`
	// Code is the backend-specific error code, if any.
	Code string `json:"code,omitempty"`
}

// Response is a model response, complete or partial.
type Response struct {
	// ID is the unique identifier for this response.
	ID string `json:"id"`

	// Object describes the kind of payload, see the ObjectType constants.
	Object string `json:"object"`

	// Created is the Unix timestamp when the response was created.
	Created int64 `json:"created"`

	// Model is the backend model that produced the response.
	Model string `json:"model"`

	// Choices contains the completion choices.
	Choices []Choice `json:"choices"`

	// Usage contains token usage. Nil for streaming chunks.
	Usage *Usage `json:"usage,omitempty"`

	// Error carries an API-level failure. Nil on success.
	Error *ResponseError `json:"error,omitempty"`

	// Timestamp is when this response was received.
	Timestamp time.Time `json:"timestamp"`

	// Done indicates the final response of a generation.
	Done bool `json:"done"`

	// IsPartial indicates a streaming chunk.
	IsPartial bool `json:"is_partial"`
}

// Clone creates a deep copy of the response.
func (rsp *Response) Clone() *Response {
	if rsp == nil {
		return nil
	}
	clone := *rsp
	clone.Choices = make([]Choice, len(rsp.Choices))
	copy(clone.Choices, rsp.Choices)
	if rsp.Usage != nil {
		u := *rsp.Usage
		clone.Usage = &u
	}
	if rsp.Error != nil {
		e := *rsp.Error
		clone.Error = &e
	}
	return &clone
}

// NewErrorResponse builds a Response carrying only an error.
func NewErrorResponse(errType, message string) *Response {
	return &Response{
		Object:    ObjectTypeError,
		Timestamp: time.Now(),
		Done:      true,
		Error: &ResponseError{
			Message: message,
			Type:    errType,
		},
	}
}
