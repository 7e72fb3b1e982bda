package codec

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
)

// #region types
// WebSearchResult holds a single web search result from a WebSearch RPC call.
type WebSearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// #endregion types

// #region client-struct
// CodecClient wraps the gRPC connection to the local inference sidecar.
// It satisfies reasoner.ChatBinding.
type CodecClient struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

var _ reasoner.ChatBinding = (*CodecClient)(nil)

// #endregion client-struct

// #region constructor
// NewCodecClient prepares a connection to the sidecar. The connection is lazy:
// an unreachable sidecar surfaces as an RPC error on first use.
func NewCodecClient(addr string) (*CodecClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &CodecClient{conn: conn, cc: conn}, nil
}

// NewCodecClientWithConn creates a CodecClient over an existing connection.
// Used for testing and for callers that manage the connection themselves.
func NewCodecClientWithConn(cc grpc.ClientConnInterface) *CodecClient {
	return &CodecClient{cc: cc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection if this client owns it.
func (c *CodecClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region chat
// Chat sends the conversation to model. The returned content is either a
// string or a list of {text} blocks, exactly as the sidecar produced it.
func (c *CodecClient) Chat(ctx context.Context, model string, msgs []reasoner.Message) (any, error) {
	list := make([]any, len(msgs))
	for i, m := range msgs {
		list[i] = map[string]any{"role": string(m.Role), "content": m.Content}
	}
	req, err := structpb.NewStruct(map[string]any{
		"model":    model,
		"messages": list,
	})
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, chatMethod, req, resp); err != nil {
		return nil, fmt.Errorf("chat rpc: %w", err)
	}
	content, ok := resp.GetFields()["content"]
	if !ok {
		return nil, nil
	}
	return content.AsInterface(), nil
}

// #endregion chat

// #region web-search
// WebSearch queries the web via the sidecar.
func (c *CodecClient) WebSearch(ctx context.Context, query string, maxResults int) ([]WebSearchResult, error) {
	req, err := structpb.NewStruct(map[string]any{
		"query":       query,
		"max_results": maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("build web search request: %w", err)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, webSearchMethod, req, resp); err != nil {
		return nil, fmt.Errorf("web search rpc: %w", err)
	}

	items := resp.GetFields()["results"].GetListValue().GetValues()
	results := make([]WebSearchResult, 0, len(items))
	for _, v := range items {
		f := v.GetStructValue().GetFields()
		results = append(results, WebSearchResult{
			Title:   f["title"].GetStringValue(),
			Snippet: f["snippet"].GetStringValue(),
			URL:     f["url"].GetStringValue(),
		})
	}
	return results, nil
}

// #endregion web-search
