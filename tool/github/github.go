//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package github provides GitHub issue triaging tools for agents. The tools
// cover listing unlabeled issues and applying labels, which is enough for a
// triaging assistant to work a repository's incoming queue.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agentkit-go/agentkit/tool"
	"github.com/agentkit-go/agentkit/tool/function"
	"github.com/agentkit-go/agentkit/tool/github/internal/client"
)

const (
	// defaultBaseURL is the GitHub REST API endpoint.
	defaultBaseURL = "https://api.github.com"
	// defaultBotLabel marks issues labeled by the bot.
	defaultBotLabel = "bot triaged"
)

// Option configures the GitHub toolset.
type Option func(*config)

type config struct {
	baseURL       string
	token         string
	owner         string
	repo          string
	botLabel      string
	allowedLabels []string
	httpClient    *http.Client
}

// WithBaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
func WithBaseURL(baseURL string) Option {
	return func(c *config) { c.baseURL = baseURL }
}

// WithToken sets the bearer token used for authentication.
func WithToken(token string) Option {
	return func(c *config) { c.token = token }
}

// WithRepository sets the owner and repository the tools operate on.
func WithRepository(owner, repo string) Option {
	return func(c *config) {
		c.owner = owner
		c.repo = repo
	}
}

// WithBotLabel sets the marker label applied alongside every triage label.
func WithBotLabel(label string) Option {
	return func(c *config) { c.botLabel = label }
}

// WithAllowedLabels restricts which labels the labeling tool may apply.
// Empty means any label is allowed.
func WithAllowedLabels(labels ...string) Option {
	return func(c *config) { c.allowedLabels = labels }
}

// WithHTTPClient sets the HTTP client to use.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) { c.httpClient = httpClient }
}

// ToolSet bundles the triaging tools for one repository.
type ToolSet struct {
	cfg    config
	client *client.Client
}

// NewToolSet creates a toolset for the configured repository.
func NewToolSet(opts ...Option) *ToolSet {
	cfg := config{
		baseURL:  defaultBaseURL,
		botLabel: defaultBotLabel,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ToolSet{
		cfg:    cfg,
		client: client.New(cfg.token, cfg.httpClient),
	}
}

// Tools returns the callable tools of the set.
func (ts *ToolSet) Tools() []tool.CallableTool {
	return []tool.CallableTool{
		ts.listUnlabeledIssuesTool(),
		ts.addLabelTool(),
	}
}

// issue is the subset of the GitHub issue payload the tools surface.
type issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"html_url"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

type searchResult struct {
	Items []issue `json:"items"`
}

type listIssuesArgs struct {
	IssueCount int `json:"issue_count"`
}

type listIssuesResult struct {
	Status string  `json:"status"`
	Issues []issue `json:"issues,omitempty"`
}

func (ts *ToolSet) listUnlabeledIssuesTool() tool.CallableTool {
	return function.New(
		func(ctx context.Context, args listIssuesArgs) (map[string]any, error) {
			if args.IssueCount <= 0 {
				args.IssueCount = 10
			}
			url := fmt.Sprintf("%s/search/issues", ts.cfg.baseURL)
			params := map[string]string{
				"q": fmt.Sprintf("repo:%s/%s is:open is:issue no:label",
					ts.cfg.owner, ts.cfg.repo),
				"sort":     "created",
				"order":    "desc",
				"per_page": strconv.Itoa(args.IssueCount),
				"page":     "1",
			}
			var result searchResult
			if err := ts.client.Get(ctx, url, params, &result); err != nil {
				return ErrorResponse(fmt.Sprintf("Error: %v", err)), nil
			}
			// The search can race label updates; drop anything labeled since.
			unlabeled := make([]issue, 0, len(result.Items))
			for _, is := range result.Items {
				if len(is.Labels) == 0 {
					unlabeled = append(unlabeled, is)
				}
			}
			return map[string]any{"status": "success", "issues": unlabeled}, nil
		},
		function.WithName("list_unlabeled_issues"),
		function.WithDescription("List the most recent unlabeled open issues in the repository."),
		function.WithInputSchema(&tool.Schema{
			Type: "object",
			Properties: map[string]*tool.Schema{
				"issue_count": {
					Type:        "integer",
					Description: "Number of issues to return.",
				},
			},
		}),
	)
}

type addLabelArgs struct {
	IssueNumber int    `json:"issue_number"`
	Label       string `json:"label"`
}

func (ts *ToolSet) addLabelTool() tool.CallableTool {
	return function.New(
		func(ctx context.Context, args addLabelArgs) (map[string]any, error) {
			if len(ts.cfg.allowedLabels) > 0 && !contains(ts.cfg.allowedLabels, args.Label) {
				return ErrorResponse(fmt.Sprintf(
					"Error: Label %q is not an allowed label. Will not apply.", args.Label)), nil
			}
			url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/labels",
				ts.cfg.baseURL, ts.cfg.owner, ts.cfg.repo, args.IssueNumber)
			payload := []string{args.Label, ts.cfg.botLabel}

			var applied []map[string]any
			if err := ts.client.Post(ctx, url, payload, &applied); err != nil {
				return ErrorResponse(fmt.Sprintf("Error: %v", err)), nil
			}
			return map[string]any{
				"status":        "success",
				"message":       applied,
				"applied_label": args.Label,
			}, nil
		},
		function.WithName("add_label_to_issue"),
		function.WithDescription("Add the specified label to the given issue number."),
		function.WithInputSchema(&tool.Schema{
			Type:     "object",
			Required: []string{"issue_number", "label"},
			Properties: map[string]*tool.Schema{
				"issue_number": {
					Type:        "integer",
					Description: "Issue number of the GitHub issue.",
				},
				"label": {
					Type:        "string",
					Description: "Label to assign.",
				},
			},
		}),
	)
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
