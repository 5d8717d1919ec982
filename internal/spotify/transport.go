package spotify

import (
	"context"
	"net/http"
)

// TokenProvider yields an access token that is valid at the time of the call.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// bearerTransport authorizes every outgoing request with the current token.
type bearerTransport struct {
	tokens TokenProvider
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.AccessToken(req.Context())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(out)
}
