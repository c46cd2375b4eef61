package core

import "context"

type ctxKey int

const accessTokenKey ctxKey = iota

// WithAccessToken attaches the backend bearer token to ctx.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessToken returns the backend bearer token carried by ctx, if any.
func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey).(string)
	return token
}
