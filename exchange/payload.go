package exchange

import (
	"io"
	"net/http"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/HexmosTech/reqline/input"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// readPayload reads the body of resp, undoing its Content-Encoding. net/http only
// decompresses on its own when it negotiated the encoding itself, which is not the
// case once the caller supplies Accept-Encoding.
func readPayload(resp *http.Response, limit int64) ([]byte, error) {
	body, err := decodeContent(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	reader := io.Reader(body)
	if limit > 0 {
		reader = io.LimitReader(body, limit+1)
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, errors.Errorf("response body exceeds %s", bytefmt.ByteSize(uint64(limit)))
	}
	return b, nil
}

func decodeContent(resp *http.Response) (io.ReadCloser, error) {
	if resp.Uncompressed {
		return io.NopCloser(resp.Body), nil
	}

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(resp.Body)
		if err == io.EOF {
			return io.NopCloser(resp.Body), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding gzip response body")
		}
		return r, nil
	case "deflate":
		r, err := zlib.NewReader(resp.Body)
		if err == io.EOF {
			return io.NopCloser(resp.Body), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding deflate response body")
		}
		return r, nil
	case "zstd":
		d, err := zstd.NewReader(resp.Body, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(err, "decoding zstd response body")
		}
		return d.IOReadCloser(), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// decodePayload turns a response body into the value reported as response_data:
// the decoded document when the body is JSON, the text otherwise.
func decodePayload(payload []byte) interface{} {
	if len(payload) == 0 {
		return ""
	}
	if v, err := input.DecodeJSON(payload); err == nil {
		return v
	}
	return string(payload)
}
