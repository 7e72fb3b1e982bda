package websearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jaredlewiswechs/AdanAgent/internal/codec"
	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/repair"
)

// #region types

// Result holds a single search result.
type Result struct {
	Title   string
	Snippet string
	URL     string
}

// Config holds web search parameters.
type Config struct {
	MaxResults  int
	Timeout     time.Duration
	Enabled     bool
	MinKeyTerms int // skip grounding for queries with fewer key terms
}

// Searcher returns grounding results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// #endregion types

// #region config

// DefaultConfig returns default web search configuration. Grounding is off
// unless a sidecar is configured.
func DefaultConfig() Config {
	return Config{
		MaxResults:  3,
		Timeout:     10 * time.Second,
		Enabled:     false,
		MinKeyTerms: 1,
	}
}

// #endregion config

// #region codec-searcher

// CodecSearcher adapts the sidecar WebSearch RPC to Searcher.
type CodecSearcher struct {
	client interface {
		WebSearch(ctx context.Context, query string, maxResults int) ([]codec.WebSearchResult, error)
	}
}

// NewCodecSearcher wraps a codec client.
func NewCodecSearcher(c *codec.CodecClient) *CodecSearcher {
	return &CodecSearcher{client: c}
}

// Search implements Searcher.
func (s *CodecSearcher) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	raw, err := s.client.WebSearch(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		out = append(out, Result{Title: r.Title, Snippet: r.Snippet, URL: r.URL})
	}
	return out, nil
}

// #endregion codec-searcher

// #region ground

// Ground runs s for query under cfg. It returns nil without calling s when
// grounding is disabled or the query carries too few key terms.
func Ground(ctx context.Context, s Searcher, cfg Config, query string) ([]Result, error) {
	if !cfg.Enabled || s == nil {
		return nil, nil
	}
	if len(lexicon.KeyTerms(query, cfg.MinKeyTerms)) < cfg.MinKeyTerms {
		return nil, nil
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	results, err := s.Search(ctx, query, cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}
	if cfg.MaxResults > 0 && len(results) > cfg.MaxResults {
		results = results[:cfg.MaxResults]
	}
	return results, nil
}

// Sources converts results into the grounding sources carried on a result.
// Results without a URL are dropped.
func Sources(results []Result) []repair.Source {
	var out []repair.Source
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		out = append(out, repair.Source{Title: r.Title, URL: r.URL})
	}
	return out
}

// #endregion ground

// #region format

// FormatAsEvidence converts search results to a string suitable for injection
// into the delegated prompt.
func FormatAsEvidence(results []Result) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("[Web Search Results]\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
		if r.URL != "" {
			fmt.Fprintf(&b, "   Source: %s\n", r.URL)
		}
	}
	return b.String()
}

// #endregion format
