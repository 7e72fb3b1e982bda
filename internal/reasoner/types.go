package reasoner

import (
	"context"
	"strings"
	"time"
)

// #region message

// Role is the sender of a message. Only system and user are sent.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one entry of the outbound conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CacheKey joins role:content pairs with "|". Identical sequences always
// produce identical keys.
func CacheKey(msgs []Message) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = string(m.Role) + ":" + m.Content
	}
	return strings.Join(parts, "|")
}

// #endregion message

// #region descriptor

// Transport selects the Provider implementation for a descriptor.
type Transport string

const (
	TransportNative   Transport = "native"
	TransportHTTPPost Transport = "http-post"
	TransportHTTPGet  Transport = "http-get"
)

// RetryPolicy bounds retries of a single model.
//
// For http-post, MaxRetries is the total attempt count and the delay before
// attempt n+1 is BaseDelay*2^(n-1). For http-get, MaxRetries counts extra
// attempts after the first and the delay is a flat BaseDelay.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// ProviderDescriptor is the pluggable description of one provider.
type ProviderDescriptor struct {
	Name      string
	Transport Transport
	Endpoint  string
	Models    []string
	Timeout   time.Duration
	Retry     RetryPolicy
	Headers   map[string]string
}

// #endregion descriptor

// #region provider

// Provider is one link of the fallback chain. Attempt returns text or an
// error describing every failure it absorbed.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, msgs []Message) (string, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the real-time Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// #endregion provider
