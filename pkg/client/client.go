package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/terra-clan/catalogue-browser/internal/models"
	"github.com/terra-clan/catalogue-browser/internal/navigation"
	"github.com/terra-clan/catalogue-browser/internal/render"
)

// Client is a Go SDK for the catalogue-browser API.
// A client carries its own cookie jar, so it drives exactly one browser session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its Jar holds the session cookie;
// a client without one gets a fresh jar so calls stay on one session.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client.Jar == nil {
			jar, _ := cookiejar.New(nil)
			client.Jar = jar
		}
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new catalogue-browser client
func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is returned when the server answers with an error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s - %s", e.Status, e.Code, e.Message)
}

// SessionView is the current display of the client's session
type SessionView struct {
	navigation.View
	Widgets []render.Widget `json:"widgets,omitempty"`
}

// SearchCourses runs a stateless catalogue search
func (c *Client) SearchCourses(ctx context.Context, term string) ([]models.CourseSummary, error) {
	var data struct {
		Courses []models.CourseSummary `json:"courses"`
		Total   int                    `json:"total"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/courses?q="+url.QueryEscape(term), nil, &data); err != nil {
		return nil, err
	}
	return data.Courses, nil
}

// GetCourse retrieves a full course by ID
func (c *Client) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	var course models.Course
	if err := c.call(ctx, http.MethodGet, "/api/v1/courses/"+strconv.Itoa(id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Session returns the current session view, opening a session if needed
func (c *Client) Session(ctx context.Context) (*SessionView, error) {
	return c.sessionCall(ctx, http.MethodGet, "/api/v1/session", nil)
}

// SetSearchTerm updates the session's search term
func (c *Client) SetSearchTerm(ctx context.Context, term string) (*SessionView, error) {
	return c.sessionCall(ctx, http.MethodPost, "/api/v1/session/search", map[string]string{"term": term})
}

// SelectCourse drills into a course from the course list
func (c *Client) SelectCourse(ctx context.Context, id int) (*SessionView, error) {
	return c.sessionCall(ctx, http.MethodPost, "/api/v1/session/course", map[string]int{"id": id})
}

// SelectModule drills into a module of the selected course
func (c *Client) SelectModule(ctx context.Context, index int) (*SessionView, error) {
	return c.sessionCall(ctx, http.MethodPost, "/api/v1/session/module", map[string]int{"index": index})
}

// SelectLesson drills into a lesson of the selected module
func (c *Client) SelectLesson(ctx context.Context, index int) (*SessionView, error) {
	return c.sessionCall(ctx, http.MethodPost, "/api/v1/session/lesson", map[string]int{"index": index})
}

// Back returns to a shallower level: "courses", "modules" or "lessons"
func (c *Client) Back(ctx context.Context, to string) (*SessionView, error) {
	return c.sessionCall(ctx, http.MethodPost, "/api/v1/session/back", map[string]string{"to": to})
}

// CloseSession ends the session; the next call opens a fresh one
func (c *Client) CloseSession(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/v1/session", nil, nil)
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) sessionCall(ctx context.Context, method, path string, body interface{}) (*SessionView, error) {
	var view SessionView
	if err := c.call(ctx, method, path, body, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// call performs a request and decodes the response envelope's data into out
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("HTTP %d: failed to unmarshal response: %w", resp.StatusCode, err)
	}

	if !result.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}
		return apiErr
	}

	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal data: %w", err)
		}
	}
	return nil
}
