// Package ollama forwards chat, generate and model listing requests to a
// local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"pkt.systems/pslog"

	"github.com/zjregee/tibr/internal/models"
)

const DefaultBaseURL = "http://localhost:11434"

// Client is safe for concurrent use; one instance is shared by every
// command for the lifetime of the process.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A zero timeout leaves requests
// bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat posts a non-streaming chat request and returns the response body
// verbatim. Status codes are not interpreted.
func (c *Client) Chat(ctx context.Context, model string, messages json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(messages)) == 0 {
		messages = json.RawMessage("[]")
	}
	return c.post(ctx, "/api/chat", ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	})
}

// Generate posts a non-streaming completion request and returns the
// response body verbatim.
func (c *Client) Generate(ctx context.Context, model string, prompt string) (string, error) {
	return c.post(ctx, "/api/generate", GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
}

// ListModels reads the tag catalog. The body must be JSON; a missing or
// non-array "models" field yields an empty list.
func (c *Client) ListModels(ctx context.Context) ([]*models.ModelDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("failed to decode response: invalid json")
	}

	return ParseTags(body), nil
}

// ParseTags converts an /api/tags payload into model descriptors.
func ParseTags(body []byte) []*models.ModelDescriptor {
	result := gjson.GetBytes(body, "models")
	descriptors := make([]*models.ModelDescriptor, 0)
	if !result.IsArray() {
		return descriptors
	}

	result.ForEach(func(_, entry gjson.Result) bool {
		name := ""
		if field := entry.Get("name"); field.Type == gjson.String {
			name = field.String()
		}
		descriptors = append(descriptors, &models.ModelDescriptor{
			Name:        name,
			Description: DescribeModel(name),
		})
		return true
	})

	return descriptors
}

// DescribeModel drops the tag suffix and turns hyphens into spaces:
// "deepseek-coder:6.7b" becomes "deepseek coder".
func DescribeModel(name string) string {
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[:idx]
	}
	return strings.ReplaceAll(name, "-", " ")
}

func (c *Client) post(ctx context.Context, path string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "marshaling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	log := pslog.Ctx(ctx).With("method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("ollama request failed", "err", err)
		return nil, errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("ollama response read failed", "err", err)
		return nil, errors.Wrap(err, "reading response")
	}

	log.Debug("ollama request ok", "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}
