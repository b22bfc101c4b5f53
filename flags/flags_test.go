package flags

import (
	"testing"
	"time"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/output"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, _, optionSet, err := parse([]string{}, terminalInfo{
		stdinIsTerminal:  true,
		stdoutIsTerminal: true,
	})
	require.NoError(t, err)

	var expectedArgs []string
	assert.Equal(t, expectedArgs, args)
	expectedOptionSet := &OptionSet{
		ExchangeOptions: exchange.Options{
			Timeout: 30 * time.Second,
		},
		OutputOptions: output.Options{
			PrintRequest:  true,
			PrintResponse: true,
			EnableFormat:  true,
			EnableColor:   true,
		},
	}
	assert.Equal(t, expectedOptionSet, optionSet)
}

func TestParse_AllFlags(t *testing.T) {
	// Exercise
	args, _, optionSet, err := parse([]string{
		"reqline",
		"--timeout=2.5",
		"-F",
		"--verify=no",
		"--http1",
		"--auth=alice:open sesame",
		"--max-response-size=1M",
		"-p", "s",
		"--plain",
		"--check",
		"HTTP GET | URL https://e.com",
	}, terminalInfo{stdinIsTerminal: false, stdoutIsTerminal: false})
	require.NoError(t, err)

	// Verify
	assert.Equal(t, []string{"HTTP GET | URL https://e.com"}, args)
	expectedOptionSet := &OptionSet{
		ReadStdin: true,
		CheckOnly: true,
		ExchangeOptions: exchange.Options{
			Timeout:         2500 * time.Millisecond,
			FollowRedirects: true,
			Auth: exchange.AuthOptions{
				Enabled:  true,
				UserName: "alice",
				Password: "open sesame",
			},
			SkipVerify:      true,
			ForceHTTP1:      true,
			MaxResponseSize: 1024 * 1024,
		},
		OutputOptions: output.Options{
			PrintResponse: true,
		},
	}
	assert.Equal(t, expectedOptionSet, optionSet)
}

func TestParse_IgnoreStdin(t *testing.T) {
	_, _, optionSet, err := parse([]string{"reqline", "--ignore-stdin"}, terminalInfo{})
	require.NoError(t, err)

	assert.False(t, optionSet.ReadStdin)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		title        string
		args         []string
		isUsageError bool
	}{
		{title: "Unknown flag", args: []string{"reqline", "--nope"}, isUsageError: true},
		{title: "Bad print char", args: []string{"reqline", "-p", "H"}},
		{title: "Bad timeout", args: []string{"reqline", "--timeout=soon"}},
		{title: "Bad size", args: []string{"reqline", "--max-response-size=lots"}},
		{title: "Bad verify", args: []string{"reqline", "--verify=maybe"}},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, usage, _, err := parse(tt.args, terminalInfo{})

			require.Error(t, err)
			assert.NotNil(t, usage)
			_, isUsageError := errors.Cause(err).(*UsageError)
			assert.Equal(t, tt.isUsageError, isUsageError)
		})
	}
}

func TestParseServer(t *testing.T) {
	testCases := []struct {
		title    string
		args     []string
		env      map[string]string
		expected *ServerOptionSet
	}{
		{
			title: "Defaults",
			args:  []string{"reqlined"},
			expected: &ServerOptionSet{
				Listen: ":8080",
				ExchangeOptions: exchange.Options{
					Timeout:         30 * time.Second,
					MaxResponseSize: 10 * 1024 * 1024,
				},
			},
		},
		{
			title: "Environment",
			args:  []string{"reqlined"},
			env: map[string]string{
				"REQLINE_LISTEN":            "127.0.0.1:9000",
				"REQLINE_TIMEOUT":           "5",
				"REQLINE_MAX_RESPONSE_SIZE": "0",
			},
			expected: &ServerOptionSet{
				Listen: "127.0.0.1:9000",
				ExchangeOptions: exchange.Options{
					Timeout: 5 * time.Second,
				},
			},
		},
		{
			title: "Flags override environment",
			args:  []string{"reqlined", "-l", ":7000", "--timeout=1m", "--follow", "--verify=no"},
			env: map[string]string{
				"REQLINE_LISTEN":  "127.0.0.1:9000",
				"REQLINE_TIMEOUT": "5",
			},
			expected: &ServerOptionSet{
				Listen: ":7000",
				ExchangeOptions: exchange.Options{
					Timeout:         time.Minute,
					FollowRedirects: true,
					SkipVerify:      true,
					MaxResponseSize: 10 * 1024 * 1024,
				},
			},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }

			_, optionSet, err := ParseServer(tt.args, getenv)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, optionSet)
		})
	}
}

func TestParseServer_RejectsArguments(t *testing.T) {
	_, _, err := ParseServer([]string{"reqlined", "extra"}, func(string) string { return "" })

	require.Error(t, err)
	_, isUsageError := errors.Cause(err).(*UsageError)
	assert.True(t, isUsageError)
}

func TestParseSize(t *testing.T) {
	testCases := []struct {
		title    string
		input    string
		expected int64
		hasError bool
	}{
		{title: "Empty", input: "", expected: 0},
		{title: "Zero", input: "0", expected: 0},
		{title: "Plain bytes", input: "512", expected: 512},
		{title: "Kilobytes", input: "4K", expected: 4096},
		{title: "Megabytes with suffix", input: "10MB", expected: 10 * 1024 * 1024},
		{title: "Lowercase", input: "2g", expected: 2 * 1024 * 1024 * 1024},
		{title: "Garbage", input: "lots", hasError: true},
		{title: "Negative", input: "-1M", hasError: true},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := parseSize(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseDurationOrSeconds(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Duration
	}{
		{input: "30", expected: 30 * time.Second},
		{input: "0.5", expected: 500 * time.Millisecond},
		{input: "150ms", expected: 150 * time.Millisecond},
	}
	for _, tt := range testCases {
		t.Run(tt.input, func(t *testing.T) {
			actual, err := parseDurationOrSeconds(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseAuth(t *testing.T) {
	var options exchange.AuthOptions

	require.NoError(t, parseAuth("bob:pa:ss", &options))

	assert.Equal(t, exchange.AuthOptions{Enabled: true, UserName: "bob", Password: "pa:ss"}, options)
}
