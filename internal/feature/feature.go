//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package feature marks experimental and deprecated surfaces. Each marked
// surface warns once per process; setting the bypass environment variable
// silences the warnings.
package feature

import (
	"os"
	"strings"
	"sync"

	"github.com/agentkit-go/agentkit/log"
)

// BypassEnvVar silences feature warnings when set to "true".
const BypassEnvVar = "AGENTKIT_SUPPRESS_FEATURE_WARNINGS"

var (
	mu     sync.Mutex
	warned = make(map[string]bool)
)

// Experimental warns that name is an experimental surface whose API or
// behavior may change. The warning fires once per name.
func Experimental(name, message string) {
	warn("EXPERIMENTAL", name, message)
}

// Deprecated warns that name is deprecated. The warning fires once per name.
func Deprecated(name, message string) {
	warn("DEPRECATED", name, message)
}

func warn(label, name, message string) {
	if strings.EqualFold(os.Getenv(BypassEnvVar), "true") {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	key := label + ":" + name
	if warned[key] {
		return
	}
	warned[key] = true
	log.Warnf("[%s] %s: %s", label, name, message)
}

// Reset clears the warn-once state. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	warned = make(map[string]bool)
}
