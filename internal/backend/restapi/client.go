// Package restapi implements service.Service against the task REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskman/internal/config"
	"taskman/internal/service"
)

// RequestIDHeader carries a per-request id for correlating debug logs.
const RequestIDHeader = "X-Request-ID"

// Client implements service.Service over HTTP.
// Reads go out anonymously; mutations go through an oauth2 transport that
// attaches the stored session token as a Bearer header.
type Client struct {
	basePath string
	anon     *http.Client
	authed   *http.Client
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a client for cfg.APIURL. ts supplies the session token for
// mutating requests.
func New(cfg *config.Config, ts oauth2.TokenSource, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.APIURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url: %q", cfg.APIURL)
	}
	c := NewWithHTTPClient(u.String(), &http.Client{}, ts, logger)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, hc *http.Client, ts oauth2.TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	authed := *hc
	authed.Transport = &oauth2.Transport{Source: ts, Base: hc.Transport}
	return &Client{
		basePath: baseURL,
		anon:     hc,
		authed:   &authed,
		timeout:  config.DefaultTimeout,
		logger:   logger,
	}
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var resp struct {
		Tasks []taskResource `json:"tasks"`
	}
	if err := c.do(ctx, c.anon, "list tasks", http.MethodGet, "task", nil, nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]service.Task, 0, len(resp.Tasks))
	for _, r := range resp.Tasks {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var env taskEnvelope
	if err := c.do(ctx, c.anon, "get task", http.MethodGet, "task/{id}", map[string]string{"id": id}, nil, &env); err != nil {
		return service.Task{}, err
	}
	return env.task(), nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var env taskEnvelope
	if err := c.do(ctx, c.authed, "create task", http.MethodPost, "task", nil, newTaskBody(in), &env); err != nil {
		return service.Task{}, err
	}
	return env.task(), nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var env taskEnvelope
	if err := c.do(ctx, c.authed, "update task", http.MethodPut, "task/{id}", map[string]string{"id": id}, newTaskBody(in), &env); err != nil {
		return service.Task{}, err
	}
	return env.task(), nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, c.authed, "delete task", http.MethodDelete, "task/{id}", map[string]string{"id": id}, nil, nil)
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, reg service.Registration) error {
	body := registerBody{Name: reg.Name, Email: reg.Email, Password: reg.Password}
	return c.do(ctx, c.anon, "register", http.MethodPost, "user/register", nil, body, nil)
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	body := loginBody{Email: creds.Email, Password: creds.Password}
	if err := c.do(ctx, c.anon, "login", http.MethodPost, "user/login", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &service.NetworkError{Op: "login", Message: "login response did not include a token"}
	}
	return resp.Token, nil
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, hc *http.Client, op, method, path string, params map[string]string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	urls := googleapi.ResolveRelative(c.basePath, path)
	req, err := http.NewRequestWithContext(ctx, method, urls, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	googleapi.Expand(req.URL, params)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	log := c.logger.With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", reqID),
	)
	start := time.Now()

	res, err := hc.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return wrapError(op, err)
	}
	defer googleapi.CloseBody(res)
	log.Debug("response", zap.Int("status", res.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if err := googleapi.CheckResponse(res); err != nil {
		return wrapError(op, err)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		// A change the server acknowledged without a body still went through.
		if errors.Is(err, io.EOF) && method != http.MethodGet {
			return nil
		}
		return &service.NetworkError{Op: op, StatusCode: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// wrapError turns transport and HTTP failures into *service.NetworkError,
// keeping the server's message when it sent one.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	// No token on disk: surface the local auth error untouched.
	if errors.Is(err, service.ErrAuthRequired) {
		return service.ErrAuthRequired
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.NetworkError{Op: op, Message: "request timed out", Err: err}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &service.NetworkError{
			Op:         op,
			StatusCode: gerr.Code,
			Message:    serverMessage(gerr),
			Err:        err,
		}
	}

	return &service.NetworkError{Op: op, Err: err}
}

// serverMessage extracts a human-readable message from an error reply.
// The API answers with {"message": "..."}; Google-style {"error": {...}}
// bodies are already parsed by googleapi.
func serverMessage(gerr *googleapi.Error) string {
	if gerr.Message != "" {
		return gerr.Message
	}
	var reply struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(gerr.Body), &reply); err == nil {
		if reply.Message != "" {
			return reply.Message
		}
		return reply.Error
	}
	return ""
}
