package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// maxErrorBody bounds how much of a non-JSON error body is quoted back.
const maxErrorBody = 512

// GenerateRequest holds the parameters for one generateContent call.
type GenerateRequest struct {
	Task        TaskType
	Prompt      string
	APIKey      string
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// GenerateResponse holds the result of a generateContent call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a generative model.
type LLMClient interface {
	// Generate sends a prompt and returns the first candidate's text.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// geminiClient implements LLMClient using the Gemini REST API.
type geminiClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient for the Gemini generateContent endpoint.
// Each Generate issues exactly one HTTP request; there are no retries.
func NewGeminiClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		observer: observer,
	}
}

// geminiRequest is the JSON body sent to :generateContent.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
	}
	if temp > 0 || maxTok > 0 {
		body.GenerationConfig = &geminiGenerationConfig{
			Temperature:     temp,
			MaxOutputTokens: maxTok,
		}
	}

	resp, err := c.doRequest(ctx, req.APIKey, body)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = fmt.Errorf("%w after %dms", ErrTimeout, timeoutMs)
		case errors.Is(ctx.Err(), context.Canceled):
			err = fmt.Errorf("request canceled: %w", context.Canceled)
		}
	}

	latency := time.Since(start).Milliseconds()
	event := LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnCallComplete(event)

	if err != nil {
		return nil, err
	}
	resp.LatencyMs = latency
	return resp, nil
}

func (c *geminiClient) doRequest(ctx context.Context, apiKey string, body geminiRequest) (*GenerateResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(apiKey), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, redactKey(err, apiKey))
		}
		return nil, fmt.Errorf("sending request: %v", redactKey(err, apiKey))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return parseResponse(httpResp.StatusCode, respBody, c.cfg.Model)
}

func (c *geminiClient) endpointURL(apiKey string) string {
	q := url.Values{}
	q.Set("key", apiKey)
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), url.PathEscape(c.cfg.Model), q.Encode())
}

// parseResponse extracts the first candidate's text. An explicit error object
// wins over the HTTP status; a 200 without candidate text is invalid output.
func parseResponse(status int, body []byte, model string) (*GenerateResponse, error) {
	if !gjson.ValidBytes(body) {
		if status != http.StatusOK {
			return nil, &ServiceError{HTTPStatus: status, Code: status, Message: truncateBody(body, status)}
		}
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrInvalidOutput)
	}

	res := gjson.ParseBytes(body)
	if e := res.Get("error"); e.Exists() {
		se := &ServiceError{
			HTTPStatus: status,
			Code:       int(e.Get("code").Int()),
			Status:     e.Get("status").String(),
			Message:    e.Get("message").String(),
		}
		if se.Code == 0 {
			se.Code = status
		}
		if se.Message == "" {
			se.Message = e.Raw
		}
		return nil, se
	}

	if status != http.StatusOK {
		return nil, &ServiceError{HTTPStatus: status, Code: status, Message: http.StatusText(status)}
	}

	text := res.Get("candidates.0.content.parts.0.text")
	if !text.Exists() || text.Type != gjson.String {
		reason := res.Get("promptFeedback.blockReason").String()
		if reason != "" {
			return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrInvalidOutput, reason)
		}
		return nil, fmt.Errorf("%w: missing candidates[0].content.parts[0].text", ErrInvalidOutput)
	}

	if v := res.Get("modelVersion").String(); v != "" {
		model = v
	}
	return &GenerateResponse{Text: text.String(), Model: model}, nil
}

func truncateBody(body []byte, status int) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return http.StatusText(status)
	}
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// redactKey removes the API key from transport errors, which quote the URL.
func redactKey(err error, apiKey string) string {
	msg := err.Error()
	if apiKey == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
	return strings.ReplaceAll(msg, apiKey, "REDACTED")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case IsServiceError(err):
		return "SERVICE_ERROR"
	default:
		return "UNKNOWN"
	}
}
