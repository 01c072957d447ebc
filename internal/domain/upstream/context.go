package upstream

import "context"

type ctxKeyBearer struct{}

// WithBearer returns a context carrying the viewer's raw bearer token. The
// HTTP client forwards it on every core-API request, so upstream calls act
// with exactly the caller's identity.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyBearer{}, token)
}

// Bearer extracts the bearer token installed by WithBearer, if any.
func Bearer(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(ctxKeyBearer{}).(string)
	return tok, ok && tok != ""
}
