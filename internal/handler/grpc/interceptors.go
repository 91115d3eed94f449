package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const traceIDKey = "x-trace-id"

// unauthenticatedMethods are served without a bearer token.
var unauthenticatedMethods = map[string]struct{}{
	utils.FullMethodName(utils.RemoteStatesPing): {},
}

// loggingInterceptor puts a child logger carrying the trace id into the
// context and logs every call with its status code and duration.
func (h *Handler) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadataValue(ctx, traceIDKey)
	if traceID == "" {
		traceID = utils.NewTraceID()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	ctx = l.WithContext(ctx)

	start := time.Now()
	resp, err := handler(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// authInterceptor validates the bearer token from the "authorization"
// metadata and stores its owner in the context.
func (h *Handler) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := unauthenticatedMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	header := firstMetadataValue(ctx, utils.GRPCAuthorizationKey)
	if header == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization metadata")
	}

	tokenString, err := utils.ParseBearerToken(header)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(utils.WithOwner(ctx, token.Owner), req)
}

func firstMetadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
