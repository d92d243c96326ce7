//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadDataset reads a JSON evaluation dataset from path. The file holds
// either a flat array of cases or an array of sessions, each a nested
// array of cases; sessions are flattened in order.
func LoadDataset(path string) ([]EvalCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var cases []EvalCase
	if err := json.Unmarshal(data, &cases); err == nil {
		return validateDataset(path, cases)
	}

	var sessions [][]EvalCase
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	for _, session := range sessions {
		cases = append(cases, session...)
	}
	return validateDataset(path, cases)
}

func validateDataset(path string, cases []EvalCase) ([]EvalCase, error) {
	if len(cases) == 0 {
		return nil, fmt.Errorf("dataset %s contains no cases", path)
	}
	for i, c := range cases {
		if c.Query == "" {
			return nil, fmt.Errorf("dataset %s: case %d has an empty query", path, i)
		}
	}
	return cases, nil
}
