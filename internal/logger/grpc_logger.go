package logger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var allowedMD = map[string]bool{
	"content-type":  true,
	"user-agent":    true,
	"x-trace-id":    true,
	"x-session-id":  true,
	"traceparent":   true,
	"authorization": true,
}

// MetadataAttrs converts gRPC metadata into "grpc.header.*" attrs.
func MetadataAttrs(md metadata.MD) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(md))
	for k, vs := range md {
		lower := strings.ToLower(k)
		if !allowedMD[lower] {
			continue
		}
		v := strings.Join(vs, ", ")
		if lower == "authorization" {
			v = redacted
		}
		attrs = append(attrs, slog.String("grpc.header."+lower, v))
	}
	return attrs
}

// msgAttrs flattens a protobuf message through its JSON form.
func msgAttrs(prefix string, m any) []slog.Attr {
	if m == nil {
		return nil
	}
	if pm, ok := m.(proto.Message); ok {
		if b, err := protojson.Marshal(pm); err == nil {
			return jsonAttrsWithPrefix(prefix, b)
		}
	}
	return []slog.Attr{slog.String(prefix, fmt.Sprintf("%v", m))}
}

// LogGRPCRequest builds attrs for a request; fullMethod is
// "/package.Service/Method".
func LogGRPCRequest(fullMethod string, md metadata.MD, req any, direction string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("grpc.direction", direction),
		slog.String("grpc.method", fullMethod),
	}
	attrs = append(attrs, MetadataAttrs(md)...)
	attrs = append(attrs, msgAttrs("grpc.request", req)...)
	return attrs
}

func LogGRPCResponse(fullMethod string, code codes.Code, resp any, duration time.Duration, direction string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("grpc.direction", direction),
		slog.String("grpc.method", fullMethod),
		slog.String("grpc.code", code.String()),
		slog.Int64("grpc.duration_ms", duration.Milliseconds()),
	}
	attrs = append(attrs, msgAttrs("grpc.response", resp)...)
	return attrs
}
