package server

import (
	"net/http"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/input"
)

// reply is what a handler hands back to ServeHTTP for rendering.
type reply struct {
	Status int
	Body   interface{}
	// Upstream is the status reported by the exchange, -1 when there was none.
	Upstream int
}

type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func success(result *exchange.Result) reply {
	return reply{Status: http.StatusOK, Body: result, Upstream: result.Response.HTTPStatus}
}

func failure(status int, message string) reply {
	if message == "" {
		message = "Unknown error"
	}
	return reply{Status: status, Body: errorBody{Error: true, Message: message}, Upstream: -1}
}

// badRequest maps err to a client error. Parse errors keep their stable message.
func badRequest(err error) reply {
	if pe, ok := input.AsParseError(err); ok {
		return failure(http.StatusBadRequest, pe.Error())
	}
	return failure(http.StatusBadRequest, err.Error())
}

func missingReqline() reply {
	return badRequest(&input.ParseError{Kind: input.MissingHTTPKeyword})
}
