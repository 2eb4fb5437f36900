package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rgould/sprintdeck/internal/domain/task"
)

// Client implements API over the REST surface. Reads are retried once on
// transport failure; the transition write never is, since the caller
// reverts and re-fetches on failure anyway.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a REST client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SprintTasks fetches the task list for a sprint.
func (c *Client) SprintTasks(ctx context.Context, sprintID string) ([]task.View, error) {
	endpoint := c.baseURL + "/api/tasks?sprintId=" + url.QueryEscape(sprintID)

	resp, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching sprint tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching sprint tasks: %s", readMessage(resp))
	}

	var tasks []task.View
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decoding sprint tasks: %w", err)
	}
	return tasks, nil
}

// Transition moves a task to a new status, optionally assigning a sprint.
func (c *Client) Transition(ctx context.Context, taskID string, status task.Status, sprintID *string) (*task.View, error) {
	payload := struct {
		Status task.Status `json:"status"`
		Sprint *string     `json:"sprint,omitempty"`
	}{Status: status, Sprint: sprintID}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding transition: %w", err)
	}

	endpoint := c.baseURL + "/api/tasks/" + url.PathEscape(taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building transition request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transitioning task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transitioning task: %s", readMessage(resp))
	}

	var view task.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, fmt.Errorf("decoding transition response: %w", err)
	}
	return &view, nil
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string) (*http.Response, error) {
	resp, err := c.get(ctx, endpoint)
	if err == nil && resp.StatusCode < http.StatusInternalServerError {
		return resp, nil
	}
	if err == nil {
		resp.Body.Close()
	}
	return c.get(ctx, endpoint)
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

func readMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Message != "" {
		return fmt.Sprintf("%s (status %d)", body.Message, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
