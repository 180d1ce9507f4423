// Package rpc holds the plumbing shared by the gRPC handlers: Struct field
// decoding, error to status mapping and the unary method adapter.
package rpc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

const LocaleKey = "accept-language"

type localeCtxKey struct{}

// WithLocale overrides the locale carried in incoming metadata.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeCtxKey{}, lang)
}

// Locale returns the caller's preferred language, empty when none was sent.
func Locale(ctx context.Context) string {
	if val, ok := ctx.Value(localeCtxKey{}).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(LocaleKey); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
