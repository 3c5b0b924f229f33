package scheduler

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// newOAuthTransport injects a client-credentials bearer token into
// every engine request. Token caching and refresh are handled by the
// oauth2 package.
func newOAuthTransport(cc clientcredentials.Config, base http.RoundTripper) http.RoundTripper {
	return &oauth2.Transport{
		Source: cc.TokenSource(context.Background()),
		Base:   base,
	}
}
