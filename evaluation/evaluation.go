//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package evaluation provides tools for evaluating agent performance
// against JSON datasets of test cases. It scores tool usage accuracy
// and response quality against configurable thresholds.
package evaluation

import (
	"fmt"
	"strings"
	"time"
)

// ToolUse describes one expected or observed tool invocation.
type ToolUse struct {
	// Name is the name of the tool.
	Name string `json:"tool_name"`

	// Args is the input provided to the tool.
	Args map[string]interface{} `json:"tool_input,omitempty"`
}

// EvalCase represents a single test case for evaluation.
type EvalCase struct {
	// Query is the user input for the agent.
	Query string `json:"query"`

	// ExpectedToolUses describes the expected tool trajectory, in order.
	ExpectedToolUses []ToolUse `json:"expected_tool_use,omitempty"`

	// Reference is the reference answer the response is matched against.
	Reference string `json:"reference,omitempty"`
}

// Criteria contains the pass thresholds for an evaluation.
type Criteria struct {
	// ToolTrajectoryScore is the minimum average tool trajectory score.
	// Trajectories score 1 when tool names and arguments match the
	// expectation exactly and in order, 0 otherwise.
	ToolTrajectoryScore float64 `json:"tool_trajectory_avg_score"`

	// ResponseMatchScore is the minimum average response match score.
	ResponseMatchScore float64 `json:"response_match_score"`
}

// DefaultCriteria returns the default pass thresholds.
func DefaultCriteria() Criteria {
	return Criteria{
		ToolTrajectoryScore: 1.0,
		ResponseMatchScore:  0.8,
	}
}

// CaseResult holds the averaged scores for one evaluation case.
type CaseResult struct {
	// Query is the case input.
	Query string `json:"query"`

	// ToolTrajectoryScore is the trajectory score averaged over runs.
	ToolTrajectoryScore float64 `json:"tool_trajectory_score"`

	// ResponseMatchScore is the response score averaged over runs.
	ResponseMatchScore float64 `json:"response_match_score"`

	// Passed reports whether both scores met the criteria.
	Passed bool `json:"passed"`
}

// Result represents the results of an evaluation run.
type Result struct {
	// ID is the unique identifier for this evaluation run.
	ID string `json:"id"`

	// DatasetPath is the dataset file the cases were loaded from.
	DatasetPath string `json:"dataset_path"`

	// Timestamp records when the evaluation was performed.
	Timestamp time.Time `json:"timestamp"`

	// Cases contains the per-case results.
	Cases []CaseResult `json:"cases"`

	// ToolTrajectoryAvg is the trajectory score averaged over cases.
	ToolTrajectoryAvg float64 `json:"tool_trajectory_avg"`

	// ResponseMatchAvg is the response score averaged over cases.
	ResponseMatchAvg float64 `json:"response_match_avg"`

	// Passed reports whether every case met the criteria.
	Passed bool `json:"passed"`
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Evaluation ID: %s\n", r.ID))
	sb.WriteString(fmt.Sprintf("Dataset: %s\n", r.DatasetPath))
	sb.WriteString(fmt.Sprintf("Timestamp: %s\n", r.Timestamp.Format(time.RFC3339)))
	passed := 0
	for _, c := range r.Cases {
		if c.Passed {
			passed++
		}
	}
	sb.WriteString(fmt.Sprintf("Cases Passed: %d/%d\n", passed, len(r.Cases)))
	sb.WriteString(fmt.Sprintf("Tool Trajectory Avg: %.2f\n", r.ToolTrajectoryAvg))
	sb.WriteString(fmt.Sprintf("Response Match Avg: %.2f\n", r.ResponseMatchAvg))
	return sb.String()
}
