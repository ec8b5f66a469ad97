// Package client is a small REST client for the students collection
// endpoint (GET/POST /api/students, GET/PUT/DELETE /api/students/{id}).
//
// Every method takes a context so the caller decides how long it is
// willing to wait. Non-2xx responses come back as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/types"
)

// Client talks to one students collection endpoint.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the collection at cfg.BaseURL.
// A zero cfg.Timeout leaves request duration to the transport.
func New(cfg config.API) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
}

// NewWithHTTPClient is New with a caller-supplied *http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// BaseURL returns the collection endpoint this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListStudents fetches every student in the collection.
func (c *Client) ListStudents(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &students); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

// GetStudent fetches one student by id.
func (c *Client) GetStudent(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &student); err != nil {
		return types.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return student, nil
}

// CreateStudent POSTs input to the collection and returns the created record.
func (c *Client) CreateStudent(ctx context.Context, input types.StudentInput) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodPost, c.baseURL, input, &student); err != nil {
		return types.Student{}, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// UpdateStudent PUTs input to the student's URL and returns the updated record.
func (c *Client) UpdateStudent(ctx context.Context, id int64, input types.StudentInput) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), input, &student); err != nil {
		return types.Student{}, fmt.Errorf("update student %d: %w", id, err)
	}
	return student, nil
}

// DeleteStudent removes a student. The acknowledgement body is ignored.
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return nil
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// do sends one request. body (if non-nil) is JSON encoded; a 2xx response
// is decoded into out (if non-nil). Anything else becomes an *APIError.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    ErrorMessage(raw),
			Elapsed:    time.Since(start),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
