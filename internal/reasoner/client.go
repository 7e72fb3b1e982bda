package reasoner

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jaredlewiswechs/AdanAgent/internal/cache"
	"github.com/jaredlewiswechs/AdanAgent/internal/metrics"
)

// #region client

// Client runs the provider fallback chain behind a shared cache.
type Client struct {
	providers []Provider
	cache     *cache.Cache
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a cache. Without one every call goes to the network.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// NewClient composes providers in priority order.
func NewClient(providers []Provider, opts ...Option) *Client {
	c := &Client{providers: providers, log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Call sends msgs through the chain. With useCache, a fresh cached reply is
// returned without network activity and a successful reply is stored.
// Providers run strictly one after another. The only error returned is an
// *ExhaustedError (or a validation error for bad roles).
func (c *Client) Call(ctx context.Context, msgs []Message, useCache bool) (string, error) {
	for i, m := range msgs {
		if m.Role != RoleSystem && m.Role != RoleUser {
			return "", fmt.Errorf("message %d: unsupported role %q", i, m.Role)
		}
	}

	key := CacheKey(msgs)
	if useCache && c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			c.log.Debug().Int("messages", len(msgs)).Msg("cache hit")
			return v, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	var errs []error
	for _, p := range c.providers {
		text, err := p.Attempt(ctx, msgs)
		if err == nil {
			if useCache && c.cache != nil {
				c.cache.Set(key, text)
			}
			c.log.Debug().Str("provider", p.Name()).Msg("provider succeeded")
			return text, nil
		}
		c.log.Warn().Str("provider", p.Name()).Err(err).Msg("provider exhausted, falling through")
		errs = append(errs, err)
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("call aborted: %w", ctx.Err()))
			break
		}
	}

	metrics.ReasonerFailures.Inc()
	return "", newExhaustedError(errs)
}

// #endregion client

// #region build

// BuildOptions carries the collaborators providers need.
type BuildOptions struct {
	Binding    ChatBinding // required for native descriptors
	HTTPClient *http.Client
	Sleep      Sleeper
	Logger     zerolog.Logger
}

// BuildProviders turns descriptors into providers, preserving order.
// Native descriptors without a binding are skipped with a warning.
func BuildProviders(ds []ProviderDescriptor, opts BuildOptions) ([]Provider, error) {
	var out []Provider
	for i, d := range ds {
		if d.Name == "" {
			d.Name = fmt.Sprintf("%s-%d", d.Transport, i)
		}
		switch d.Transport {
		case TransportNative:
			if opts.Binding == nil {
				opts.Logger.Warn().Str("provider", d.Name).Msg("no native binding, skipping provider")
				continue
			}
			out = append(out, NewNativeProvider(d, opts.Binding, opts.Logger))
		case TransportHTTPPost:
			if d.Endpoint == "" {
				return nil, fmt.Errorf("provider %s: endpoint required", d.Name)
			}
			out = append(out, NewPostProvider(d, opts.HTTPClient, opts.Sleep, opts.Logger))
		case TransportHTTPGet:
			if d.Endpoint == "" {
				return nil, fmt.Errorf("provider %s: endpoint required", d.Name)
			}
			out = append(out, NewGetProvider(d, opts.HTTPClient, opts.Sleep, opts.Logger))
		default:
			return nil, fmt.Errorf("provider %s: unknown transport %q", d.Name, d.Transport)
		}
	}
	return out, nil
}

// #endregion build
