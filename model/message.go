//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package model

// Role identifies the author of a message.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// Message is a single message in a conversation.
type Message struct {
	// Role is the author of the message.
	Role Role `json:"role"`
	// Content is the text content of the message.
	Content string `json:"content"`
	// ToolID carries the tool call ID a tool response answers.
	ToolID string `json:"tool_id,omitempty"`
	// ToolCalls holds tool invocations requested by the assistant.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a new tool response message answering toolID.
func NewToolMessage(toolID, content string) Message {
	return Message{Role: RoleTool, ToolID: toolID, Content: content}
}

// ToolCall is a call to a tool requested in a model response.
type ToolCall struct {
	// Type of the tool. Currently only "function" is produced.
	Type string `json:"type"`
	// Function is the function invocation payload.
	Function FunctionCall `json:"function,omitempty"`
	// ID is the tool call ID assigned by the model.
	ID string `json:"id,omitempty"`
	// Index is the position of the call in streaming deltas.
	Index *int `json:"index,omitempty"`
}

// FunctionCall names a function and carries its JSON-encoded arguments.
type FunctionCall struct {
	// Name is the function to call.
	Name string `json:"name"`
	// Arguments is the JSON-encoded argument object.
	Arguments []byte `json:"arguments,omitempty"`
}

// Blob is a chunk of binary data with its media type, typically audio or
// image frames streamed into a live session. Data is base64 in JSON.
type Blob struct {
	// MIMEType is the IANA media type of Data, e.g. "audio/pcm".
	MIMEType string `json:"mime_type"`
	// Data is the raw payload.
	Data []byte `json:"data"`
}

// NewBlob creates a Blob from a media type and payload.
func NewBlob(mimeType string, data []byte) *Blob {
	return &Blob{MIMEType: mimeType, Data: data}
}
