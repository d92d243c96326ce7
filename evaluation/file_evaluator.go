//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package evaluation

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/agentkit-go/agentkit/log"
)

// Outcome holds what a target produced for one query.
type Outcome struct {
	// Response is the final text response.
	Response string

	// ToolUses is the observed tool trajectory, in order.
	ToolUses []ToolUse
}

// Target is anything that can answer an evaluation query.
type Target interface {
	// Invoke answers query and reports the outcome.
	Invoke(ctx context.Context, query string) (*Outcome, error)
}

const (
	defaultNumRuns     = 2
	defaultConcurrency = 4
)

// FileEvaluatorOption configures a FileEvaluator.
type FileEvaluatorOption func(*FileEvaluator)

// WithNumRuns sets how many times each case is run. Scores are averaged
// over runs.
func WithNumRuns(n int) FileEvaluatorOption {
	return func(e *FileEvaluator) {
		if n > 0 {
			e.numRuns = n
		}
	}
}

// WithCriteria sets the pass thresholds.
func WithCriteria(c Criteria) FileEvaluatorOption {
	return func(e *FileEvaluator) { e.criteria = c }
}

// WithConcurrency bounds how many runs execute at once.
func WithConcurrency(n int) FileEvaluatorOption {
	return func(e *FileEvaluator) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// FileEvaluator evaluates a target against JSON dataset files.
type FileEvaluator struct {
	target      Target
	criteria    Criteria
	numRuns     int
	concurrency int
}

// NewFileEvaluator creates a FileEvaluator for the given target.
func NewFileEvaluator(target Target, opts ...FileEvaluatorOption) (*FileEvaluator, error) {
	if target == nil {
		return nil, fmt.Errorf("evaluation target is nil")
	}
	e := &FileEvaluator{
		target:      target,
		criteria:    DefaultCriteria(),
		numRuns:     defaultNumRuns,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

type runScore struct {
	caseIndex  int
	trajectory float64
	response   float64
	err        error
}

// EvaluateFile loads the dataset at path and evaluates every case
// numRuns times, scheduling runs on a worker pool.
func (e *FileEvaluator) EvaluateFile(ctx context.Context, path string) (*Result, error) {
	cases, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}

	log.Infof("evaluating %s: %d cases, %d runs each", path, len(cases), e.numRuns)

	pool, err := ants.NewPool(e.concurrency)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	scores := make(chan runScore, len(cases)*e.numRuns)
	var wg sync.WaitGroup
	for i := range cases {
		for run := 0; run < e.numRuns; run++ {
			i := i
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				scores <- e.runCase(ctx, i, cases[i])
			}); err != nil {
				wg.Done()
				return nil, fmt.Errorf("submit evaluation run: %w", err)
			}
		}
	}
	wg.Wait()
	close(scores)

	return e.aggregate(path, cases, scores)
}

func (e *FileEvaluator) runCase(ctx context.Context, index int, c EvalCase) runScore {
	outcome, err := e.target.Invoke(ctx, c.Query)
	if err != nil {
		return runScore{caseIndex: index, err: fmt.Errorf("case %d: %w", index, err)}
	}
	return runScore{
		caseIndex:  index,
		trajectory: trajectoryScore(c.ExpectedToolUses, outcome.ToolUses),
		response:   responseScore(c.Reference, outcome.Response),
	}
}

func (e *FileEvaluator) aggregate(path string, cases []EvalCase, scores <-chan runScore) (*Result, error) {
	trajectorySums := make([]float64, len(cases))
	responseSums := make([]float64, len(cases))
	counts := make([]int, len(cases))
	for s := range scores {
		if s.err != nil {
			return nil, s.err
		}
		trajectorySums[s.caseIndex] += s.trajectory
		responseSums[s.caseIndex] += s.response
		counts[s.caseIndex]++
	}

	result := &Result{
		ID:          fmt.Sprintf("eval-%s", uuid.New().String()[:8]),
		DatasetPath: path,
		Timestamp:   time.Now(),
		Passed:      true,
	}
	for i, c := range cases {
		cr := CaseResult{
			Query:               c.Query,
			ToolTrajectoryScore: trajectorySums[i] / float64(counts[i]),
			ResponseMatchScore:  responseSums[i] / float64(counts[i]),
		}
		cr.Passed = cr.ToolTrajectoryScore >= e.criteria.ToolTrajectoryScore &&
			cr.ResponseMatchScore >= e.criteria.ResponseMatchScore
		if !cr.Passed {
			result.Passed = false
			log.Warnf("case %q failed: trajectory %.2f, response %.2f",
				c.Query, cr.ToolTrajectoryScore, cr.ResponseMatchScore)
		}
		result.Cases = append(result.Cases, cr)
		result.ToolTrajectoryAvg += cr.ToolTrajectoryScore
		result.ResponseMatchAvg += cr.ResponseMatchScore
	}
	result.ToolTrajectoryAvg /= float64(len(cases))
	result.ResponseMatchAvg /= float64(len(cases))
	return result, nil
}

// trajectoryScore compares the observed tool trajectory with the
// expectation. Trajectories either match exactly, names and arguments
// in order, or score zero.
func trajectoryScore(expected, actual []ToolUse) float64 {
	if len(expected) != len(actual) {
		return 0
	}
	for i, want := range expected {
		if want.Name != actual[i].Name {
			return 0
		}
		if len(want.Args) > 0 && !reflect.DeepEqual(want.Args, actual[i].Args) {
			return 0
		}
	}
	return 1
}

// responseScore measures how much of the reference answer appears in
// the response, as the fraction of reference tokens present. An empty
// reference scores 1.
func responseScore(reference, response string) float64 {
	refTokens := tokenize(reference)
	if len(refTokens) == 0 {
		return 1
	}
	got := make(map[string]int)
	for _, tok := range tokenize(response) {
		got[tok]++
	}
	matched := 0
	for _, tok := range refTokens {
		if got[tok] > 0 {
			got[tok]--
			matched++
		}
	}
	return float64(matched) / float64(len(refTokens))
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(strings.Map(stripPunct, s)))
}

func stripPunct(r rune) rune {
	switch r {
	case '.', ',', '!', '?', ';', ':', '"', '\'':
		return ' '
	}
	return r
}
