//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package model defines the interface and message types for language models.
package model

import "context"

// Model is the interface implemented by all language model backends.
//
// Two error layers exist. System-level failures (nil request, transport
// errors) are returned from GenerateContent directly and mean no channel was
// produced. API-level failures (rate limits, content filtering) arrive as
// Response values whose Error field is non-nil.
type Model interface {
	// GenerateContent generates content for the given request, delivering
	// one or more responses on the returned channel. The channel is closed
	// when generation finishes.
	GenerateContent(ctx context.Context, request *Request) (<-chan *Response, error)

	// Info returns basic information about the model.
	Info() Info
}

// Info contains basic information about a Model.
type Info struct {
	Name string
}
