package reqline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HexmosTech/reqline/flags"
	"github.com/HexmosTech/reqline/input"
	"github.com/HexmosTech/reqline/output"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReqline(t *testing.T) {
	testCases := []struct {
		title        string
		args         []string
		stdin        string
		readStdin    bool
		expected     string
		isUsageError bool
	}{
		{
			title:    "Single argument",
			args:     []string{"HTTP GET | URL https://e.com"},
			expected: "HTTP GET | URL https://e.com",
		},
		{
			title:    "Arguments are joined with spaces",
			args:     []string{"HTTP", "GET", "|", "URL", "https://e.com"},
			stdin:    "ignored",
			expected: "HTTP GET | URL https://e.com",
		},
		{
			title:     "Stdin is trimmed",
			stdin:     "  HTTP GET | URL https://e.com\n",
			readStdin: true,
			expected:  "HTTP GET | URL https://e.com",
		},
		{
			title:        "Nothing to read",
			isUsageError: true,
		},
		{
			title:        "Blank stdin",
			stdin:        "\n",
			readStdin:    true,
			isUsageError: true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := readReqline(tt.args, strings.NewReader(tt.stdin), tt.readStdin)
			if tt.isUsageError {
				_, ok := errors.Cause(err).(*flags.UsageError)
				assert.True(t, ok, "expected usage error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestRun_SendsAndPrints(t *testing.T) {
	// Setup
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refid=7", r.URL.RawQuery)
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer upstream.Close()
	optionSet := &flags.OptionSet{
		OutputOptions: output.Options{PrintResponse: true},
	}
	var buffer strings.Builder

	// Exercise
	err := run(context.Background(), `HTTP GET | URL `+upstream.URL+` | QUERY {"refid": 7}`, optionSet, &Options{}, &buffer)
	require.NoError(t, err)

	// Verify
	assert.True(t, strings.HasPrefix(buffer.String(), `{"response":{"http_status":200,`), buffer.String())
	assert.True(t, strings.HasSuffix(buffer.String(), `"response_data":{"ok":true}}}`+"\n"), buffer.String())
}

func TestRun_CheckOnly(t *testing.T) {
	optionSet := &flags.OptionSet{CheckOnly: true}
	var buffer strings.Builder

	err := run(context.Background(), `HTTP POST | URL https://e.com | BODY {"b": 1, "a": 2}`, optionSet, nil, &buffer)

	require.NoError(t, err)
	assert.Equal(t, `{"method":"POST","url":"https://e.com","headers":{},"query":{},"body":{"b":1,"a":2}}`+"\n", buffer.String())
}

func TestRun_ParseError(t *testing.T) {
	var buffer strings.Builder

	err := run(context.Background(), `HTTP GET | URL`, &flags.OptionSet{}, nil, &buffer)

	parseErr, ok := input.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, input.MissingSpaceAfterKeyword, parseErr.Kind)
	assert.Empty(t, buffer.String())
}

type recordingTransport struct {
	requests []*http.Request
}

func (t *recordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.requests = append(t.requests, r)
	return &http.Response{
		StatusCode: http.StatusTeapot,
		Header:     http.Header{},
		Body:       http.NoBody,
		Request:    r,
	}, nil
}

func TestRun_UsesTransport(t *testing.T) {
	transport := &recordingTransport{}
	optionSet := &flags.OptionSet{OutputOptions: output.Options{PrintResponse: true}}
	var buffer strings.Builder

	err := run(context.Background(), `HTTP GET | URL http://upstream.invalid/x`, optionSet, &Options{Transport: transport}, &buffer)

	require.NoError(t, err)
	require.Len(t, transport.requests, 1)
	assert.Equal(t, "upstream.invalid", transport.requests[0].URL.Host)
	assert.Contains(t, buffer.String(), `"http_status":418`)
}
