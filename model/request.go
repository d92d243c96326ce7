//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package model

import "github.com/agentkit-go/agentkit/tool"

// GenerationConfig contains generation parameters common to all backends.
type GenerationConfig struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0).
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP controls nucleus sampling (0.0 to 1.0).
	TopP *float64 `json:"top_p,omitempty"`

	// Stream indicates whether to stream the response.
	Stream bool `json:"stream"`

	// Stop sequences at which the backend stops generating.
	Stop []string `json:"stop,omitempty"`
}

// Request is a request to a model.
type Request struct {
	// Messages is the conversation history, oldest first.
	Messages []Message `json:"messages"`

	// GenerationConfig carries the generation parameters.
	GenerationConfig `json:",inline"`

	// Tools the model may call, keyed by name. Not serialized; backends
	// translate declarations into their native schema.
	Tools map[string]tool.Tool `json:"-"`
}
