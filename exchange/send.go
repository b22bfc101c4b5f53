package exchange

import (
	"context"
	"net/http"
	"time"

	"github.com/HexmosTech/reqline/input"
	"github.com/pkg/errors"
)

// Sender performs the requests described by parsed reqlines.
// It is safe for concurrent use.
type Sender struct {
	client  *http.Client
	options *Options
	now     func() time.Time
}

func NewSender(options *Options) (*Sender, error) {
	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, err
	}
	return &Sender{
		client:  client,
		options: options,
		now:     time.Now,
	}, nil
}

// Send performs the request described by in and times it.
// Failing to get a response from the upstream is not an error: the returned
// Result then has HTTPStatus 0, nil ResponseData and Failure set.
func (s *Sender) Send(ctx context.Context, in *input.Input) (*Result, error) {
	if in == nil {
		return nil, errors.New("no request to send")
	}
	if in.Method != input.MethodGet && in.Method != input.MethodPost {
		return nil, errors.Errorf("unsupported method: %q", in.Method)
	}

	result := &Result{
		Request: RequestSummary{
			Query:   in.Query,
			Body:    in.Body,
			Headers: in.Headers,
			FullURL: BuildURL(in),
		},
	}

	start := s.now()
	status, payload, err := s.roundTrip(ctx, in)
	var data interface{}
	if err == nil {
		data = decodePayload(payload)
	}
	stop := s.now()

	result.Response = ResponseSummary{
		HTTPStatus:            status,
		RequestStartTimestamp: start.UnixMilli(),
		RequestStopTimestamp:  stop.UnixMilli(),
		Duration:              stop.UnixMilli() - start.UnixMilli(),
		ResponseData:          data,
		Size:                  int64(len(payload)),
		Failure:               err,
	}
	return result, nil
}

func (s *Sender) roundTrip(ctx context.Context, in *input.Input) (int, []byte, error) {
	r, err := BuildHTTPRequest(ctx, in, s.options)
	if err != nil {
		return 0, nil, err
	}

	resp, err := s.client.Do(r)
	if err != nil {
		return 0, nil, errors.Wrap(err, "sending HTTP request")
	}
	defer resp.Body.Close()

	payload, err := readPayload(resp, s.options.MaxResponseSize)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, payload, nil
}
