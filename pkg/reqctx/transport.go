package reqctx

import (
	"net/http"
)

// Transport is an http.RoundTripper that tags outbound requests with the
// request identifier of the scope attached to the request's context.
// Requests that already carry the header are sent as-is.
type Transport struct {
	// Base is the underlying RoundTripper. http.DefaultTransport when nil.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	s := activeScope(req.Context())
	if s == nil {
		return t.base().RoundTrip(req)
	}

	id, _ := s.values[s.header].(string)
	if id == "" || req.Header.Get(s.header) != "" {
		return t.base().RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	out.Header.Set(s.header, id)
	return t.base().RoundTrip(out)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// NewClient returns a copy of c whose transport propagates the request
// identifier. A nil c starts from a zero http.Client.
func NewClient(c *http.Client) *http.Client {
	var out http.Client
	if c != nil {
		out = *c
	}
	out.Transport = &Transport{Base: out.Transport}
	return &out
}
