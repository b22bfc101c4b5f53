package exchange

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/HexmosTech/reqline/input"
	"github.com/HexmosTech/reqline/version"
	"github.com/pkg/errors"
)

func BuildHTTPRequest(ctx context.Context, in *input.Input, options *Options) (*http.Request, error) {
	header := buildHTTPHeader(in)

	bodyTuple, err := buildHTTPBody(in)
	if err != nil {
		return nil, err
	}

	if header.Get("Content-Type") == "" && bodyTuple.contentType != "" {
		header.Set("Content-Type", bodyTuple.contentType)
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", fmt.Sprintf("reqline/%s", version.Current()))
	}

	r, err := http.NewRequestWithContext(ctx, string(in.Method), BuildURL(in), bodyTuple.body)
	if err != nil {
		return nil, errors.Wrap(err, "building HTTP request")
	}
	r.Header = header
	r.ContentLength = bodyTuple.contentLength
	if host := header.Get("Host"); host != "" {
		r.Host = host
	}
	if options.Auth.Enabled {
		r.SetBasicAuth(options.Auth.UserName, options.Auth.Password)
	}
	return r, nil
}

// BuildURL appends the QUERY section to the URL of in, keeping the order of its keys.
func BuildURL(in *input.Input) string {
	if in.Query.Len() == 0 {
		return in.URL
	}

	pairs := make([]string, 0, in.Query.Len())
	for _, key := range in.Query.Keys() {
		value, _ := in.Query.Get(key)
		pairs = append(pairs, escapeComponent(key)+"="+escapeComponent(input.FormatValue(value)))
	}

	separator := "?"
	switch {
	case strings.HasSuffix(in.URL, "?"), strings.HasSuffix(in.URL, "&"):
		separator = ""
	case strings.Contains(in.URL, "?"):
		separator = "&"
	}
	return in.URL + separator + strings.Join(pairs, "&")
}

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-encodes every byte except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func escapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

func buildHTTPHeader(in *input.Input) http.Header {
	header := make(http.Header)
	for _, name := range in.Headers.Keys() {
		value, _ := in.Headers.Get(name)
		header.Set(name, input.FormatValue(value))
	}
	return header
}

type bodyTuple struct {
	body          io.Reader
	contentLength int64
	contentType   string
}

// buildHTTPBody serializes BODY as JSON. It is sent only with POST, and only when
// it has members.
func buildHTTPBody(in *input.Input) (bodyTuple, error) {
	if in.Method != input.MethodPost || in.Body.Len() == 0 {
		return bodyTuple{}, nil
	}

	body, err := in.Body.MarshalJSON()
	if err != nil {
		return bodyTuple{}, errors.Wrap(err, "marshaling JSON of HTTP body")
	}
	return bodyTuple{
		body:          bytes.NewReader(body),
		contentLength: int64(len(body)),
		contentType:   "application/json",
	}, nil
}
