//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package agent

import (
	"fmt"
	"math"

	"github.com/agentkit-go/agentkit/log"
)

// StreamingMode selects how model output is delivered.
type StreamingMode string

// Streaming modes.
const (
	// StreamingModeNone delivers complete responses only.
	StreamingModeNone StreamingMode = ""
	// StreamingModeSSE delivers incremental chunks over a one-way stream.
	StreamingModeSSE StreamingMode = "sse"
	// StreamingModeBidi runs a bidirectional live session fed by a
	// LiveRequestQueue.
	StreamingModeBidi StreamingMode = "bidi"
)

// defaultMaxLLMCalls bounds model invocations per run unless overridden.
const defaultMaxLLMCalls = 500

// RunConfig configures the runtime behavior of a single agent run.
type RunConfig struct {
	// StreamingMode selects none, sse, or bidi delivery.
	StreamingMode StreamingMode

	// ResponseModalities lists the output modalities, e.g. "TEXT",
	// "AUDIO". Empty means backend default.
	ResponseModalities []string

	// SaveInputBlobsAsArtifacts stores incoming blobs for later review.
	SaveInputBlobsAsArtifacts bool

	// MaxLLMCalls limits the total model invocations for a run. Values
	// less than or equal to zero disable the limit.
	MaxLLMCalls int
}

// ValidateMaxLLMCalls checks a max-call bound and returns it unchanged.
// Values at or above math.MaxInt are rejected. Values less than or equal to
// zero are accepted with a warning: they disable enforcement entirely, which
// allows a model and an agent to call each other without bound.
func ValidateMaxLLMCalls(value int) (int, error) {
	if value >= math.MaxInt {
		return 0, fmt.Errorf("max LLM calls should be less than %d", math.MaxInt)
	}
	if value <= 0 {
		log.Warnf("max LLM calls is less than or equal to 0; the total number " +
			"of model calls per run will not be enforced")
	}
	return value, nil
}

// RunConfigOption configures a RunConfig.
type RunConfigOption func(*RunConfig)

// WithStreamingMode sets the streaming mode.
func WithStreamingMode(mode StreamingMode) RunConfigOption {
	return func(c *RunConfig) { c.StreamingMode = mode }
}

// WithResponseModalities sets the output modalities.
func WithResponseModalities(modalities ...string) RunConfigOption {
	return func(c *RunConfig) { c.ResponseModalities = modalities }
}

// WithSaveInputBlobsAsArtifacts toggles blob capture.
func WithSaveInputBlobsAsArtifacts(save bool) RunConfigOption {
	return func(c *RunConfig) { c.SaveInputBlobsAsArtifacts = save }
}

// WithMaxLLMCalls sets the model invocation bound for a run.
func WithMaxLLMCalls(n int) RunConfigOption {
	return func(c *RunConfig) { c.MaxLLMCalls = n }
}

// NewRunConfig builds a RunConfig, applying defaults and validating the
// model call bound.
func NewRunConfig(opts ...RunConfigOption) (*RunConfig, error) {
	cfg := &RunConfig{
		StreamingMode: StreamingModeNone,
		MaxLLMCalls:   defaultMaxLLMCalls,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	validated, err := ValidateMaxLLMCalls(cfg.MaxLLMCalls)
	if err != nil {
		return nil, err
	}
	cfg.MaxLLMCalls = validated
	return cfg, nil
}
