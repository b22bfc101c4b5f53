package exchange

import (
	"net/http"
	"time"
)

type Options struct {
	Timeout         time.Duration
	FollowRedirects bool
	Auth            AuthOptions
	SkipVerify      bool
	ForceHTTP1      bool

	// MaxResponseSize caps the number of (decoded) payload bytes read from the
	// upstream. Zero means no limit.
	MaxResponseSize int64

	// Transport is used instead of a clone of http.DefaultTransport when set.
	Transport http.RoundTripper
}

type AuthOptions struct {
	Enabled  bool
	UserName string
	Password string
}
