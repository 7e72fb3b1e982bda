package codec

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
)

// #region fake-sidecar
type fakeSidecar struct {
	lastChat   *structpb.Struct
	chatReply  map[string]any
	chatErr    error
	lastSearch *structpb.Struct
	results    []any
}

func (f *fakeSidecar) Chat(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f.lastChat = req
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return structpb.NewStruct(f.chatReply)
}

func (f *fakeSidecar) WebSearch(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f.lastSearch = req
	return structpb.NewStruct(map[string]any{"results": f.results})
}

func startSidecar(t *testing.T, srv CodecServer) *CodecClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterCodecServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewCodecClientWithConn(conn)
}

// #endregion fake-sidecar

// #region constructor-tests
func TestNewCodecClientLazy(t *testing.T) {
	client, err := NewCodecClient("localhost:0")
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCloseWithoutOwnedConn(t *testing.T) {
	c := NewCodecClientWithConn(nil)
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

// #endregion constructor-tests

// #region chat-tests
func TestChat_StringContent(t *testing.T) {
	side := &fakeSidecar{chatReply: map[string]any{"content": "Austin"}}
	c := startSidecar(t, side)

	got, err := c.Chat(context.Background(), "small", []reasoner.Message{
		{Role: reasoner.RoleSystem, Content: "be brief"},
		{Role: reasoner.RoleUser, Content: "capital of Texas"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Austin" {
		t.Fatalf("expected Austin, got %v", got)
	}

	req := side.lastChat.AsMap()
	if req["model"] != "small" {
		t.Errorf("model not forwarded: %v", req["model"])
	}
	msgs, _ := req["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if m := msgs[1].(map[string]any); m["role"] != "user" || m["content"] != "capital of Texas" {
		t.Errorf("unexpected message %v", m)
	}
}

func TestChat_BlockContentFeedsNativeProvider(t *testing.T) {
	side := &fakeSidecar{chatReply: map[string]any{
		"content": []any{map[string]any{"text": "one"}, map[string]any{"text": "two"}},
	}}
	c := startSidecar(t, side)

	desc := reasoner.ProviderDescriptor{Name: "native", Transport: reasoner.TransportNative, Models: []string{"m"}}
	p := reasoner.NewNativeProvider(desc, c, zerolog.Nop())
	text, err := p.Attempt(context.Background(), []reasoner.Message{{Role: reasoner.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "one\ntwo" {
		t.Fatalf("expected flattened blocks, got %q", text)
	}
}

func TestChat_MissingContent(t *testing.T) {
	c := startSidecar(t, &fakeSidecar{chatReply: map[string]any{}})
	got, err := c.Chat(context.Background(), "m", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil content, got %v", got)
	}
}

func TestChat_Error(t *testing.T) {
	c := startSidecar(t, &fakeSidecar{chatErr: status.Error(codes.Unavailable, "model loading")})
	_, err := c.Chat(context.Background(), "m", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if status.Code(errors.Unwrap(err)) != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v", err)
	}
}

// #endregion chat-tests

// #region web-search-tests
func TestWebSearch_Success(t *testing.T) {
	side := &fakeSidecar{results: []any{
		map[string]any{"title": "Austin", "snippet": "Capital of Texas", "url": "https://example.com/austin"},
		map[string]any{"title": "Texas", "snippet": "US state", "url": "https://example.com/texas"},
	}}
	c := startSidecar(t, side)

	results, err := c.WebSearch(context.Background(), "capital of Texas", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Austin" || results[0].URL != "https://example.com/austin" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if got := side.lastSearch.AsMap()["max_results"]; got != float64(2) {
		t.Errorf("max_results not forwarded: %v", got)
	}
}

func TestWebSearch_Empty(t *testing.T) {
	c := startSidecar(t, &fakeSidecar{})
	results, err := c.WebSearch(context.Background(), "nothing", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

// #endregion web-search-tests
