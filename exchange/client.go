package exchange

import (
	"crypto/tls"
	"net/http"

	"github.com/pkg/errors"
)

const maxRedirects = 10

// BuildHTTPClient builds the client a Sender uses. The TLS options are applied to a
// clone of a caller-supplied *http.Transport, whose own TLS config keeps its settings.
func BuildHTTPClient(options *Options) (*http.Client, error) {
	return &http.Client{
		CheckRedirect: redirectPolicy(options.FollowRedirects),
		Timeout:       options.Timeout,
		Transport:     buildTransport(options),
	}, nil
}

func redirectPolicy(follow bool) func(*http.Request, []*http.Request) error {
	if !follow {
		return func(req *http.Request, via []*http.Request) error {
			// Do not follow redirects
			return http.ErrUseLastResponse
		}
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return errors.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
}

func buildTransport(options *Options) http.RoundTripper {
	var transport *http.Transport
	switch t := options.Transport.(type) {
	case nil:
		transport = http.DefaultTransport.(*http.Transport).Clone()
	case *http.Transport:
		transport = t.Clone()
	default:
		return t
	}

	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = options.SkipVerify
	if options.ForceHTTP1 {
		transport.ForceAttemptHTTP2 = false
		transport.TLSClientConfig.NextProtos = []string{"http/1.1", "http/1.0"}
		transport.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
	}
	return transport
}
