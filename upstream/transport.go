package upstream

import (
	"context"
	"net/http"
)

type tokenKey struct{}

// WithToken returns a context whose upstream calls carry token as a bearer
// credential.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token stored by WithToken.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// bearerTransport attaches the caller's token to every outgoing request. When the
// context carries none, the service token is used (background jobs).
type bearerTransport struct {
	base         http.RoundTripper
	serviceToken string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := TokenFrom(req.Context())
	if token == "" {
		token = t.serviceToken
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}
