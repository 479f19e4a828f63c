package errors

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts an error to a gRPC status error.
// Metadata travels as a structpb.Struct detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if details := metaToStruct(customErr.Meta); details != nil {
		if withDetails, detailErr := st.WithDetails(details); detailErr == nil {
			st = withDetails
		}
	}
	return st.Err()
}

// FromGRPCError converts a gRPC error back to our error type
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    grpcCodeToCode(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		if meta, ok := detail.(*structpb.Struct); ok {
			customErr.Meta = meta.AsMap()
			break
		}
	}

	return customErr
}

// metaToStruct normalizes metadata through JSON since structpb only accepts
// generic containers.
func metaToStruct(meta map[string]any) *structpb.Struct {
	if len(meta) == 0 {
		return nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}
	details, err := structpb.NewStruct(generic)
	if err != nil {
		return nil
	}
	return details
}

var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeOutOfRange:         codes.OutOfRange,
	CodeAborted:            codes.Aborted,
	CodeUnavailable:        codes.Unavailable,
	CodeDataLoss:           codes.DataLoss,
	CodeInternal:           codes.Internal,
}

// GRPCCode returns the matching gRPC code; unknown codes are Internal
func (c Code) GRPCCode() codes.Code {
	if gc, ok := grpcCodes[c]; ok {
		return gc
	}
	return codes.Internal
}

func grpcCodeToCode(c codes.Code) Code {
	for code, gc := range grpcCodes {
		if gc == c {
			return code
		}
	}
	return CodeInternal
}
