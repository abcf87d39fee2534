package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/robineckebracht/TextToSqlDemo/pkg/env/ollama"
	"github.com/robineckebracht/TextToSqlDemo/pkg/version"
)

const (
	generatePath = "api/generate"

	connectTimeout = 5 * time.Second
	maxErrorBody   = 512
)

type Client struct {
	OllamaEnv *ollama.Env

	client *http.Client
}

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.SetHTTPClient(client)
	}
}

func NewClient(ollama *ollama.Env, options ...Option) *Client {
	c := &Client{OllamaEnv: ollama}

	c.client = &http.Client{
		Timeout: ollama.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

// Generate sends a single non-streaming completion request and returns the
// generated text. A response without the "response" field yields "".
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	content, err := json.Marshal(&GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("unable to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(generatePath), bytes.NewBuffer(content))
	if err != nil {
		return "", fmt.Errorf("unable to create request to Ollama: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", fmt.Sprintf("TextToSql/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to send request to Ollama: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read Ollama response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	var generated GenerateResponse
	if err := json.Unmarshal(body, &generated); err != nil {
		return "", fmt.Errorf("unable to unmarshal Ollama response: %w", err)
	}

	return generated.Response, nil
}

// Ping checks that the inference server answers on its base URL.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(""), nil)
	if err != nil {
		return fmt.Errorf("unable to create request to Ollama: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send request to Ollama: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	return nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.OllamaEnv.Endpoint, "/") + "/" + path
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected response from Ollama: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("unexpected response from Ollama: %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
