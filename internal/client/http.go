package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/randalmurphal/boardctx/internal/board"
)

// Config holds the configuration for connecting to a board service.
type Config struct {
	// BaseURL is the service URL (e.g., "https://board.example.com").
	BaseURL string
	// APIToken authenticates requests. Sent as a bearer token.
	APIToken string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
}

// HTTPClient implements Service over the board service REST API.
type HTTPClient struct {
	http *http.Client
	cfg  Config
}

var _ Service = (*HTTPClient)(nil)

// New creates a board service client.
func New(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("board service base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &HTTPClient{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}, nil
}

// get performs a GET against path with the given query and returns the
// response body. Non-2xx statuses are errors.
func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "boardctx/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, snippet(body))
	}
	return body, nil
}

// ListColumns fetches the project's kanban columns, ordered by position.
func (c *HTTPClient) ListColumns(ctx context.Context, projectID string) ([]board.Column, error) {
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/columns", nil)
	if err != nil {
		return nil, err
	}
	var columns []board.Column
	gjson.GetBytes(body, "columns").ForEach(func(_, v gjson.Result) bool {
		columns = append(columns, board.Column{
			Slug:     v.Get("slug").String(),
			Name:     v.Get("name").String(),
			Position: int(v.Get("position").Int()),
			WIPLimit: int(v.Get("wip_limit").Int()),
		})
		return true
	})
	return columns, nil
}

// ListLabels fetches the project's label catalog.
func (c *HTTPClient) ListLabels(ctx context.Context, projectID string) ([]board.Label, error) {
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/labels", nil)
	if err != nil {
		return nil, err
	}
	var labels []board.Label
	gjson.GetBytes(body, "labels").ForEach(func(_, v gjson.Result) bool {
		labels = append(labels, labelFromJSON(v))
		return true
	})
	return labels, nil
}

// ListLabelAssignments fetches the task → labels index for the project.
func (c *HTTPClient) ListLabelAssignments(ctx context.Context, projectID string) (map[string][]board.Label, error) {
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/task-labels", nil)
	if err != nil {
		return nil, err
	}
	assignments := make(map[string][]board.Label)
	gjson.GetBytes(body, "assignments").ForEach(func(taskID, v gjson.Result) bool {
		var labels []board.Label
		v.ForEach(func(_, lv gjson.Result) bool {
			labels = append(labels, labelFromJSON(lv))
			return true
		})
		assignments[taskID.String()] = labels
		return true
	})
	return assignments, nil
}

// ListTaskGroups fetches the project's task groups.
func (c *HTTPClient) ListTaskGroups(ctx context.Context, projectID string) ([]board.TaskGroup, error) {
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/task-groups", nil)
	if err != nil {
		return nil, err
	}
	var groups []board.TaskGroup
	gjson.GetBytes(body, "task_groups").ForEach(func(_, v gjson.Result) bool {
		groups = append(groups, board.TaskGroup{
			ID:          v.Get("id").String(),
			Name:        v.Get("name").String(),
			Description: v.Get("description").String(),
			Color:       v.Get("color").String(),
		})
		return true
	})
	return groups, nil
}

// ListTasks fetches the project's tasks in board order.
func (c *HTTPClient) ListTasks(ctx context.Context, projectID string) ([]board.Task, error) {
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/tasks", nil)
	if err != nil {
		return nil, err
	}
	var tasks []board.Task
	gjson.GetBytes(body, "tasks").ForEach(func(_, v gjson.Result) bool {
		tasks = append(tasks, board.Task{
			ID:          v.Get("id").String(),
			Title:       v.Get("title").String(),
			ColumnSlug:  v.Get("column_slug").String(),
			TaskGroupID: v.Get("task_group_id").String(),
		})
		return true
	})
	return tasks, nil
}

// ListArtifacts fetches context artifacts, optionally filtered by type.
func (c *HTTPClient) ListArtifacts(ctx context.Context, projectID, artifactType string) ([]board.ContextArtifact, error) {
	query := url.Values{}
	if artifactType != "" {
		query.Set("type", artifactType)
	}
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/artifacts", query)
	if err != nil {
		return nil, err
	}
	var artifacts []board.ContextArtifact
	gjson.GetBytes(body, "artifacts").ForEach(func(_, v gjson.Result) bool {
		artifacts = append(artifacts, artifactFromJSON(v))
		return true
	})
	return artifacts, nil
}

// PreviewContext fetches the aggregated context preview. taskID is
// forwarded verbatim; when empty the query parameter is omitted and the
// service decides the project-scope semantics.
func (c *HTTPClient) PreviewContext(ctx context.Context, projectID, taskID string) (board.ContextPreview, error) {
	query := url.Values{}
	if taskID != "" {
		query.Set("task_id", taskID)
	}
	body, err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID)+"/context/preview", query)
	if err != nil {
		return board.ContextPreview{}, err
	}

	preview := board.ContextPreview{
		ProjectID:     projectID,
		TaskID:        taskID,
		Summary:       gjson.GetBytes(body, "summary").String(),
		TokenEstimate: int(gjson.GetBytes(body, "token_estimate").Int()),
	}
	gjson.GetBytes(body, "artifacts").ForEach(func(_, v gjson.Result) bool {
		preview.Artifacts = append(preview.Artifacts, artifactFromJSON(v))
		return true
	})
	return preview, nil
}

func labelFromJSON(v gjson.Result) board.Label {
	return board.Label{
		ID:    v.Get("id").String(),
		Name:  v.Get("name").String(),
		Color: v.Get("color").String(),
	}
}

func artifactFromJSON(v gjson.Result) board.ContextArtifact {
	a := board.ContextArtifact{
		ID:      v.Get("id").String(),
		Type:    v.Get("type").String(),
		Title:   v.Get("title").String(),
		Path:    v.Get("path").String(),
		Content: v.Get("content").String(),
	}
	if ts := v.Get("updated_at").String(); ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			a.UpdatedAt = parsed
		}
	}
	return a
}

// snippet bounds an error body for inclusion in an error message.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
