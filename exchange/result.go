package exchange

import "github.com/HexmosTech/reqline/input"

// Result is the envelope describing one exchange with an upstream.
type Result struct {
	Request  RequestSummary  `json:"request"`
	Response ResponseSummary `json:"response"`
}

type RequestSummary struct {
	Query   input.Object `json:"query"`
	Body    input.Object `json:"body"`
	Headers input.Object `json:"headers"`
	FullURL string       `json:"full_url"`
}

type ResponseSummary struct {
	// HTTPStatus is 0 when no response was received.
	HTTPStatus            int         `json:"http_status"`
	Duration              int64       `json:"duration"`
	RequestStartTimestamp int64       `json:"request_start_timestamp"`
	RequestStopTimestamp  int64       `json:"request_stop_timestamp"`
	ResponseData          interface{} `json:"response_data"`

	// Size is the number of payload bytes received.
	Size int64 `json:"-"`
	// Failure explains a zero HTTPStatus.
	Failure error `json:"-"`
}
