package codec

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Requests and responses are google.protobuf.Struct values, so no generated
// stubs are needed on either side.
const (
	serviceName     = "ada.codec.v1.CodecService"
	chatMethod      = "/" + serviceName + "/Chat"
	webSearchMethod = "/" + serviceName + "/WebSearch"
)

// CodecServer is implemented by the inference sidecar.
//
// Chat receives {model, messages:[{role, content}]} and returns {content}.
// WebSearch receives {query, max_results} and returns
// {results:[{title, snippet, url}]}.
type CodecServer interface {
	Chat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	WebSearch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCodecServer attaches srv to a gRPC server.
func RegisterCodecServer(s grpc.ServiceRegistrar, srv CodecServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CodecServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Chat", Handler: unaryHandler(chatMethod, CodecServer.Chat)},
		{MethodName: "WebSearch", Handler: unaryHandler(webSearchMethod, CodecServer.WebSearch)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ada/codec/v1/codec.proto",
}

func unaryHandler(
	fullMethod string,
	call func(CodecServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CodecServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CodecServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
