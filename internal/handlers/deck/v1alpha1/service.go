package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/deck-api/internal/errors"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "deck.v1alpha1.PresetService"

// Full method names of PresetService
const (
	PresetService_DecodePreset_FullMethodName    = "/" + ServiceName + "/DecodePreset"
	PresetService_EncodePreset_FullMethodName    = "/" + ServiceName + "/EncodePreset"
	PresetService_ReconcilePreset_FullMethodName = "/" + ServiceName + "/ReconcilePreset"
	PresetService_SharePreset_FullMethodName     = "/" + ServiceName + "/SharePreset"
	PresetService_GetSharedPreset_FullMethodName = "/" + ServiceName + "/GetSharedPreset"
)

// PresetServiceServer is the server API for PresetService
type PresetServiceServer interface {
	DecodePreset(context.Context, *DecodePresetRequest) (*DecodePresetResponse, error)
	EncodePreset(context.Context, *EncodePresetRequest) (*EncodePresetResponse, error)
	ReconcilePreset(context.Context, *ReconcilePresetRequest) (*ReconcilePresetResponse, error)
	SharePreset(context.Context, *SharePresetRequest) (*SharePresetResponse, error)
	GetSharedPreset(context.Context, *GetSharedPresetRequest) (*GetSharedPresetResponse, error)
}

// PresetService_ServiceDesc is the grpc.ServiceDesc for PresetService
var PresetService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PresetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("DecodePreset", PresetService_DecodePreset_FullMethodName, PresetServiceServer.DecodePreset),
		unaryMethod("EncodePreset", PresetService_EncodePreset_FullMethodName, PresetServiceServer.EncodePreset),
		unaryMethod("ReconcilePreset", PresetService_ReconcilePreset_FullMethodName, PresetServiceServer.ReconcilePreset),
		unaryMethod("SharePreset", PresetService_SharePreset_FullMethodName, PresetServiceServer.SharePreset),
		unaryMethod("GetSharedPreset", PresetService_GetSharedPreset_FullMethodName, PresetServiceServer.GetSharedPreset),
	},
	Streams: []grpc.StreamDesc{},
	// No proto file backs the Struct payloads, so there is no descriptor
	// for reflection to resolve.
	Metadata: "",
}

// RegisterPresetServiceServer registers the service implementation
func RegisterPresetServiceServer(s grpc.ServiceRegistrar, srv PresetServiceServer) {
	s.RegisterService(&PresetService_ServiceDesc, srv)
}

// unaryMethod adapts a typed server method to a Struct-payload handler.
// Interceptors see the typed request.
func unaryMethod[Req, Resp any](
	name, fullMethod string,
	call func(PresetServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			req := new(Req)
			if err := fromStruct(in, req); err != nil {
				return nil, errors.ToGRPCError(err)
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PresetServiceServer), ctx, req.(*Req))
			}

			var resp any
			var err error
			if interceptor == nil {
				resp, err = handler(ctx, req)
			} else {
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
				resp, err = interceptor(ctx, req, info, handler)
			}
			if err != nil {
				return nil, err
			}

			out, err := toStruct(resp)
			if err != nil {
				return nil, errors.ToGRPCError(err)
			}
			return out, nil
		},
	}
}

// PresetServiceClient is the client API for PresetService
type PresetServiceClient interface {
	DecodePreset(ctx context.Context, in *DecodePresetRequest, opts ...grpc.CallOption) (*DecodePresetResponse, error)
	EncodePreset(ctx context.Context, in *EncodePresetRequest, opts ...grpc.CallOption) (*EncodePresetResponse, error)
	ReconcilePreset(ctx context.Context, in *ReconcilePresetRequest, opts ...grpc.CallOption) (*ReconcilePresetResponse, error)
	SharePreset(ctx context.Context, in *SharePresetRequest, opts ...grpc.CallOption) (*SharePresetResponse, error)
	GetSharedPreset(ctx context.Context, in *GetSharedPresetRequest, opts ...grpc.CallOption) (*GetSharedPresetResponse, error)
}

type presetServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPresetServiceClient creates a client on an existing connection
func NewPresetServiceClient(cc grpc.ClientConnInterface) PresetServiceClient {
	return &presetServiceClient{cc: cc}
}

func (c *presetServiceClient) DecodePreset(ctx context.Context, in *DecodePresetRequest, opts ...grpc.CallOption) (*DecodePresetResponse, error) {
	return invoke[DecodePresetResponse](ctx, c.cc, PresetService_DecodePreset_FullMethodName, in, opts)
}

func (c *presetServiceClient) EncodePreset(ctx context.Context, in *EncodePresetRequest, opts ...grpc.CallOption) (*EncodePresetResponse, error) {
	return invoke[EncodePresetResponse](ctx, c.cc, PresetService_EncodePreset_FullMethodName, in, opts)
}

func (c *presetServiceClient) ReconcilePreset(ctx context.Context, in *ReconcilePresetRequest, opts ...grpc.CallOption) (*ReconcilePresetResponse, error) {
	return invoke[ReconcilePresetResponse](ctx, c.cc, PresetService_ReconcilePreset_FullMethodName, in, opts)
}

func (c *presetServiceClient) SharePreset(ctx context.Context, in *SharePresetRequest, opts ...grpc.CallOption) (*SharePresetResponse, error) {
	return invoke[SharePresetResponse](ctx, c.cc, PresetService_SharePreset_FullMethodName, in, opts)
}

func (c *presetServiceClient) GetSharedPreset(ctx context.Context, in *GetSharedPresetRequest, opts ...grpc.CallOption) (*GetSharedPresetResponse, error) {
	return invoke[GetSharedPresetResponse](ctx, c.cc, PresetService_GetSharedPreset_FullMethodName, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	req, err := toStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	resp := new(Resp)
	if err := fromStruct(out, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to convert message")
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to convert message")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}
