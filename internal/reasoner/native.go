package reasoner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaredlewiswechs/AdanAgent/internal/metrics"
)

// ChatBinding is the zero-config in-process chat capability. Content may be
// a string or a list of {text} blocks.
type ChatBinding interface {
	Chat(ctx context.Context, model string, msgs []Message) (any, error)
}

// NativeProvider tries each model of an in-process binding once, in order.
type NativeProvider struct {
	name    string
	binding ChatBinding
	models  []string
	timeout time.Duration
	log     zerolog.Logger
}

// NewNativeProvider wraps binding.
func NewNativeProvider(d ProviderDescriptor, binding ChatBinding, log zerolog.Logger) *NativeProvider {
	return &NativeProvider{
		name:    d.Name,
		binding: binding,
		models:  d.Models,
		timeout: d.Timeout,
		log:     log,
	}
}

func (p *NativeProvider) Name() string { return p.name }

// Attempt returns the first non-empty reply. Empty and malformed replies
// advance to the next model.
func (p *NativeProvider) Attempt(ctx context.Context, msgs []Message) (string, error) {
	var errs []error
	for _, model := range p.models {
		text, err := p.try(ctx, model, msgs)
		if err == nil {
			metrics.ProviderAttempts.WithLabelValues(p.name, model, metrics.OutcomeSuccess).Inc()
			return text, nil
		}
		metrics.ProviderAttempts.WithLabelValues(p.name, model, metrics.OutcomePermanent).Inc()
		p.log.Warn().Str("provider", p.name).Str("model", model).Err(err).Msg("native model failed")
		errs = append(errs, &AttemptError{Provider: p.name, Model: model, Err: err})
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", &AttemptError{Provider: p.name, Err: errors.New("no models configured")}
	}
	return "", errors.Join(errs...)
}

func (p *NativeProvider) try(ctx context.Context, model string, msgs []Message) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	content, err := p.binding.Chat(ctx, model, msgs)
	if err != nil {
		return "", err
	}
	text, ok := FlattenContent(content)
	if !ok {
		return "", fmt.Errorf("malformed response content %T", content)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
