package utils

import (
	"context"
)

type contextKey string

const (
	TokenKey     contextKey = "token"
	RequestIDKey contextKey = "request_id"
)

// GetTokenFromContext returns the bearer credential attached to the request.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok && token != ""
}

// SetTokenContext attaches the bearer credential to the context.
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	idVal := ctx.Value(RequestIDKey)
	if idVal == nil {
		return "", false
	}

	id, ok := idVal.(string)
	return id, ok
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
