//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package github

import (
	"strconv"

	"github.com/agentkit-go/agentkit/log"
)

// ErrorResponse wraps a message into the uniform error payload tools return
// to the model.
func ErrorResponse(message string) map[string]any {
	return map[string]any{
		"status":  "error",
		"message": message,
	}
}

// ParseNumberString parses an integer from s. Malformed input falls back to
// defaultValue with a warning instead of failing.
func ParseNumberString(s string, defaultValue int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Warnf("invalid number string: %q, defaulting to %d", s, defaultValue)
		return defaultValue
	}
	return n
}
