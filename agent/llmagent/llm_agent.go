//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package llmagent provides an agent backed by a language model.
package llmagent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/log"
	"github.com/agentkit-go/agentkit/model"
	"github.com/agentkit-go/agentkit/tool"
)

const defaultChannelBufferSize = 256

// LLMAgent pairs a model with an instruction and a set of callable tools.
// On each run it converses with the model, executing requested tool calls
// and feeding results back until the model produces a final answer.
type LLMAgent struct {
	name              string
	description       string
	instruction       string
	model             model.Model
	tools             []tool.Tool
	subAgents         []agent.Agent
	genConfig         model.GenerationConfig
	channelBufferSize int
	agentCallbacks    *agent.Callbacks
}

// Option configures an LLMAgent.
type Option func(*Options)

// Options contains the configuration for an LLMAgent.
type Options struct {
	description       string
	instruction       string
	model             model.Model
	tools             []tool.Tool
	subAgents         []agent.Agent
	genConfig         model.GenerationConfig
	channelBufferSize int
	agentCallbacks    *agent.Callbacks
}

// WithDescription sets the agent description.
func WithDescription(description string) Option {
	return func(o *Options) { o.description = description }
}

// WithInstruction sets the system instruction for the model.
func WithInstruction(instruction string) Option {
	return func(o *Options) { o.instruction = instruction }
}

// WithModel sets the model backing the agent.
func WithModel(m model.Model) Option {
	return func(o *Options) { o.model = m }
}

// WithTools sets the tools available to the agent.
func WithTools(tools ...tool.Tool) Option {
	return func(o *Options) { o.tools = append(o.tools, tools...) }
}

// WithSubAgents sets the sub-agents reachable from this agent.
func WithSubAgents(subAgents []agent.Agent) Option {
	return func(o *Options) { o.subAgents = subAgents }
}

// WithGenerationConfig sets the generation parameters.
func WithGenerationConfig(cfg model.GenerationConfig) Option {
	return func(o *Options) { o.genConfig = cfg }
}

// WithChannelBufferSize sets the buffer size for the event channel.
func WithChannelBufferSize(size int) Option {
	return func(o *Options) { o.channelBufferSize = size }
}

// WithAgentCallbacks attaches lifecycle callbacks.
func WithAgentCallbacks(cb *agent.Callbacks) Option {
	return func(o *Options) { o.agentCallbacks = cb }
}

// New creates an LLMAgent with the given name and options.
func New(name string, opts ...Option) *LLMAgent {
	cfg := Options{
		channelBufferSize: defaultChannelBufferSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.channelBufferSize <= 0 {
		cfg.channelBufferSize = defaultChannelBufferSize
	}
	return &LLMAgent{
		name:              name,
		description:       cfg.description,
		instruction:       cfg.instruction,
		model:             cfg.model,
		tools:             cfg.tools,
		subAgents:         cfg.subAgents,
		genConfig:         cfg.genConfig,
		channelBufferSize: cfg.channelBufferSize,
		agentCallbacks:    cfg.agentCallbacks,
	}
}

// Run implements the agent.Agent interface.
func (a *LLMAgent) Run(ctx context.Context, invocation *agent.Invocation) (<-chan *event.Event, error) {
	if a.model == nil && invocation.Model == nil {
		return nil, fmt.Errorf("agent %s: no model configured", a.name)
	}
	eventChan := make(chan *event.Event, a.channelBufferSize)
	go func() {
		defer close(eventChan)
		a.execute(ctx, invocation, eventChan)
	}()
	return eventChan, nil
}

func (a *LLMAgent) execute(ctx context.Context, invocation *agent.Invocation, eventChan chan<- *event.Event) {
	invocation.Agent = a
	invocation.AgentName = a.name
	if invocation.AgentCallbacks == nil {
		invocation.AgentCallbacks = a.agentCallbacks
	}

	if invocation.AgentCallbacks != nil {
		custom, err := invocation.AgentCallbacks.RunBeforeAgent(ctx, invocation)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeAgentCallbackError, err.Error()))
			return
		}
		if custom != nil {
			custom.Done = true
			a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, custom))
			return
		}
	}

	runErr := a.converse(ctx, invocation, eventChan)

	if invocation.AgentCallbacks != nil {
		custom, err := invocation.AgentCallbacks.RunAfterAgent(ctx, invocation, runErr)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeAgentCallbackError, err.Error()))
			return
		}
		if custom != nil {
			custom.Done = true
			a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, custom))
		}
	}
}

// converse drives the model/tool loop until the model stops requesting
// tool calls or the call budget runs out.
func (a *LLMAgent) converse(ctx context.Context, invocation *agent.Invocation, eventChan chan<- *event.Event) error {
	m := a.model
	if invocation.Model != nil {
		m = invocation.Model
	}

	messages := a.initialMessages(invocation)
	maxCalls := 0
	if invocation.RunConfig != nil {
		maxCalls = invocation.RunConfig.MaxLLMCalls
	}

	for calls := 0; ; calls++ {
		if maxCalls > 0 && calls >= maxCalls {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeRunError,
				fmt.Sprintf("exceeded max LLM calls (%d) for this run", maxCalls)))
			return fmt.Errorf("exceeded max LLM calls (%d)", maxCalls)
		}

		request := &model.Request{
			Messages:         messages,
			GenerationConfig: a.genConfig,
			Tools:            a.toolsByName(),
		}
		responseChan, err := m.GenerateContent(ctx, request)
		if err != nil {
			a.emit(ctx, eventChan, event.NewErrorEvent(
				invocation.InvocationID, a.name, agent.ErrorTypeRunError, err.Error()))
			return err
		}

		final, err := a.forward(ctx, invocation, responseChan, eventChan)
		if err != nil {
			return err
		}
		if final == nil || len(final.Choices) == 0 {
			return nil
		}

		toolCalls := final.Choices[0].Message.ToolCalls
		if len(toolCalls) == 0 {
			return nil
		}
		messages = append(messages, final.Choices[0].Message)
		messages = append(messages, a.executeToolCalls(ctx, invocation, toolCalls, eventChan)...)
	}
}

func (a *LLMAgent) initialMessages(invocation *agent.Invocation) []model.Message {
	var messages []model.Message
	if a.instruction != "" {
		messages = append(messages, model.NewSystemMessage(a.instruction))
	}
	messages = append(messages, invocation.Message)
	return messages
}

// forward relays model responses as events and returns the final response.
func (a *LLMAgent) forward(
	ctx context.Context,
	invocation *agent.Invocation,
	responseChan <-chan *model.Response,
	eventChan chan<- *event.Event,
) (*model.Response, error) {
	var final *model.Response
	for rsp := range responseChan {
		if rsp.Error != nil {
			a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, rsp))
			return nil, fmt.Errorf("model error: %s", rsp.Error.Message)
		}
		if rsp.Done {
			final = rsp
		}
		if !a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, rsp)) {
			return nil, ctx.Err()
		}
	}
	return final, nil
}

// executeToolCalls runs each requested tool and returns the tool response
// messages to append to the conversation.
func (a *LLMAgent) executeToolCalls(
	ctx context.Context,
	invocation *agent.Invocation,
	toolCalls []model.ToolCall,
	eventChan chan<- *event.Event,
) []model.Message {
	tools := a.toolsByName()
	results := make([]model.Message, 0, len(toolCalls))
	for _, call := range toolCalls {
		name := call.Function.Name
		content := a.callTool(ctx, tools, name, call.Function.Arguments)
		results = append(results, model.NewToolMessage(call.ID, content))

		rsp := &model.Response{
			Object: model.ObjectTypeToolResponse,
			Choices: []model.Choice{{
				Message: model.NewToolMessage(call.ID, content),
			}},
		}
		a.emit(ctx, eventChan, event.NewResponseEvent(invocation.InvocationID, a.name, rsp))
	}
	return results
}

func (a *LLMAgent) callTool(ctx context.Context, tools map[string]tool.Tool, name string, args []byte) string {
	t, ok := tools[name]
	if !ok {
		log.Warnf("agent %s: model requested unknown tool %q", a.name, name)
		return fmt.Sprintf(`{"status": "error", "message": "unknown tool %s"}`, name)
	}
	callable, ok := t.(tool.CallableTool)
	if !ok {
		return fmt.Sprintf(`{"status": "error", "message": "tool %s is not callable"}`, name)
	}
	result, err := callable.Call(ctx, args)
	if err != nil {
		return fmt.Sprintf(`{"status": "error", "message": %q}`, err.Error())
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf(`{"status": "error", "message": %q}`, err.Error())
	}
	return string(encoded)
}

func (a *LLMAgent) emit(ctx context.Context, eventChan chan<- *event.Event, e *event.Event) bool {
	select {
	case eventChan <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func (a *LLMAgent) toolsByName() map[string]tool.Tool {
	result := make(map[string]tool.Tool, len(a.tools))
	for _, t := range a.tools {
		result[t.Declaration().Name] = t
	}
	return result
}

// Tools implements the agent.Agent interface.
func (a *LLMAgent) Tools() []tool.Tool {
	return a.tools
}

// Info implements the agent.Agent interface.
func (a *LLMAgent) Info() agent.Info {
	return agent.Info{
		Name:        a.name,
		Description: a.description,
	}
}

// SubAgents implements the agent.Agent interface.
func (a *LLMAgent) SubAgents() []agent.Agent {
	return a.subAgents
}

// FindSubAgent implements the agent.Agent interface.
func (a *LLMAgent) FindSubAgent(name string) agent.Agent {
	for _, sub := range a.subAgents {
		if sub.Info().Name == name {
			return sub
		}
	}
	return nil
}
