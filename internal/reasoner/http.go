package reasoner

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

	"github.com/rs/zerolog"

	"github.com/jaredlewiswechs/AdanAgent/internal/metrics"
)

const (
	// postTemperature is sent with every POST request.
	postTemperature = 0.1
	// promptBudget bounds the flattened GET prompt, in runes.
	promptBudget = 1800
	maxErrorBody = 512
)

// #region http-common

type httpBase struct {
	name     string
	endpoint string
	models   []string
	timeout  time.Duration
	retry    RetryPolicy
	headers  map[string]string
	client   *http.Client
	sleep    Sleeper
	log      zerolog.Logger
}

func newHTTPBase(d ProviderDescriptor, hc *http.Client, sleep Sleeper, log zerolog.Logger) httpBase {
	if hc == nil {
		hc = http.DefaultClient
	}
	if sleep == nil {
		sleep = SleepContext
	}
	return httpBase{
		name:     d.Name,
		endpoint: d.Endpoint,
		models:   d.Models,
		timeout:  d.Timeout,
		retry:    d.Retry,
		headers:  d.Headers,
		client:   hc,
		sleep:    sleep,
		log:      log,
	}
}

func (b *httpBase) Name() string { return b.name }

// do executes req under the per-call timeout and classifies the outcome.
func (b *httpBase) do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (string, int, bool, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	req, err := build(ctx)
	if err != nil {
		return "", 0, false, fmt.Errorf("create request: %w", err)
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", 0, true, fmt.Errorf("timeout after %s: %w", b.timeout, err)
		}
		// Network failures are transient.
		return "", 0, true, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, true, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", resp.StatusCode, retryable, fmt.Errorf("http error: %s", strings.TrimSpace(snippet))
	}
	text := UnwrapEnvelope(string(body))
	if text == "" {
		return "", resp.StatusCode, false, errors.New("empty response")
	}
	return text, resp.StatusCode, false, nil
}

func (b *httpBase) record(model string, retryable bool) {
	outcome := metrics.OutcomePermanent
	if retryable {
		outcome = metrics.OutcomeRetryable
	}
	metrics.ProviderAttempts.WithLabelValues(b.name, model, outcome).Inc()
}

// #endregion http-common

// #region http-post

// PostProvider sends the message sequence as a chat-completion POST to each
// configured model with exponential backoff.
type PostProvider struct {
	httpBase
}

// NewPostProvider builds a POST provider from d.
func NewPostProvider(d ProviderDescriptor, hc *http.Client, sleep Sleeper, log zerolog.Logger) *PostProvider {
	return &PostProvider{httpBase: newHTTPBase(d, hc, sleep, log)}
}

type postRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// Attempt walks the models in order. Within a model, 429, 5xx, timeouts and
// network failures are retried; other 4xx give up on that model only.
func (p *PostProvider) Attempt(ctx context.Context, msgs []Message) (string, error) {
	maxAttempts := p.retry.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var errs []error
	for _, model := range p.models {
		body, err := json.Marshal(postRequest{
			Model:          model,
			Messages:       msgs,
			Temperature:    postTemperature,
			ResponseFormat: responseFormat{Type: "json_object"},
		})
		if err != nil {
			return "", fmt.Errorf("marshal request: %w", err)
		}
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			text, status, retryable, err := p.do(ctx, func(ctx context.Context) (*http.Request, error) {
				req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
				if err != nil {
					return nil, err
				}
				req.Header.Set("Content-Type", "application/json")
				return req, nil
			})
			if err == nil {
				metrics.ProviderAttempts.WithLabelValues(p.name, model, metrics.OutcomeSuccess).Inc()
				return text, nil
			}
			p.record(model, retryable)
			p.log.Warn().Str("provider", p.name).Str("model", model).Int("attempt", attempt).
				Int("status", status).Bool("retryable", retryable).Err(err).Msg("post attempt failed")
			errs = append(errs, &AttemptError{
				Provider: p.name, Model: model, Attempt: attempt,
				Status: status, Retryable: retryable, Err: err,
			})
			if ctx.Err() != nil {
				return "", errors.Join(errs...)
			}
			if !retryable || attempt == maxAttempts {
				break
			}
			delay := p.retry.BaseDelay * time.Duration(1<<(attempt-1))
			if err := p.sleep(ctx, delay); err != nil {
				return "", errors.Join(append(errs, err)...)
			}
		}
	}
	if len(errs) == 0 {
		return "", &AttemptError{Provider: p.name, Err: errors.New("no models configured")}
	}
	return "", errors.Join(errs...)
}

// #endregion http-post

// #region http-get

// GetProvider is the last-resort single-prompt fallback: the conversation is
// flattened into one URL-encoded prompt.
type GetProvider struct {
	httpBase
}

// NewGetProvider builds a GET provider from d. The endpoint either contains
// a {prompt} placeholder (and optionally {model}) or receives the prompt as
// a trailing path segment.
func NewGetProvider(d ProviderDescriptor, hc *http.Client, sleep Sleeper, log zerolog.Logger) *GetProvider {
	return &GetProvider{httpBase: newHTTPBase(d, hc, sleep, log)}
}

// Attempt tries each model (or the bare endpoint when none are configured)
// with 1+MaxRetries attempts and a flat delay.
func (p *GetProvider) Attempt(ctx context.Context, msgs []Message) (string, error) {
	prompt := FlattenPrompt(msgs, promptBudget)
	models := p.models
	if len(models) == 0 {
		models = []string{""}
	}
	attempts := 1 + max(p.retry.MaxRetries, 0)
	var errs []error
	for _, model := range models {
		target := p.target(prompt, model)
		for attempt := 1; attempt <= attempts; attempt++ {
			text, status, retryable, err := p.do(ctx, func(ctx context.Context) (*http.Request, error) {
				return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			})
			if err == nil {
				metrics.ProviderAttempts.WithLabelValues(p.name, model, metrics.OutcomeSuccess).Inc()
				return text, nil
			}
			p.record(model, retryable)
			p.log.Warn().Str("provider", p.name).Str("model", model).Int("attempt", attempt).
				Int("status", status).Err(err).Msg("get attempt failed")
			errs = append(errs, &AttemptError{
				Provider: p.name, Model: model, Attempt: attempt,
				Status: status, Retryable: retryable, Err: err,
			})
			if ctx.Err() != nil {
				return "", errors.Join(errs...)
			}
			if !retryable || attempt == attempts {
				break
			}
			if err := p.sleep(ctx, p.retry.BaseDelay); err != nil {
				return "", errors.Join(append(errs, err)...)
			}
		}
	}
	return "", errors.Join(errs...)
}

func (p *GetProvider) target(prompt, model string) string {
	endpoint := strings.ReplaceAll(p.endpoint, "{model}", url.QueryEscape(model))
	if strings.Contains(endpoint, "{prompt}") {
		return strings.ReplaceAll(endpoint, "{prompt}", url.QueryEscape(prompt))
	}
	return strings.TrimRight(endpoint, "/") + "/" + url.PathEscape(prompt)
}

// FlattenPrompt joins message contents with blank lines. When the result
// exceeds budget runes only the last user message is kept, hard-truncated if
// it still does not fit.
func FlattenPrompt(msgs []Message, budget int) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if c := strings.TrimSpace(m.Content); c != "" {
			parts = append(parts, c)
		}
	}
	full := strings.Join(parts, "\n\n")
	if len([]rune(full)) <= budget {
		return full
	}
	last := full
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			last = strings.TrimSpace(msgs[i].Content)
			break
		}
	}
	if r := []rune(last); len(r) > budget {
		return string(r[:budget])
	}
	return last
}

// #endregion http-get
