// Package server exposes reqline execution over HTTP.
//
// A client POSTs {"reqline": "..."} to "/". The reqline is parsed, the described
// request is performed, and the exchange is reported back as JSON.
package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/input"
	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
)

const maxRequestBodySize = 1 << 20

type Server struct {
	sender *exchange.Sender
	logger *log.Logger
	newID  func() string
}

func New(sender *exchange.Sender, logger *log.Logger) *Server {
	return &Server{
		sender: sender,
		logger: logger,
		newID:  uniuri.New,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := s.newID()
	w.Header().Set("X-Request-Id", id)
	started := time.Now()

	var res reply
	switch {
	case r.URL.Path != "/":
		res = failure(http.StatusNotFound, "Not found: "+r.URL.Path)
	case r.Method != http.MethodPost:
		w.Header().Set("Allow", http.MethodPost)
		res = failure(http.StatusMethodNotAllowed, "Method not allowed: "+r.Method)
	default:
		res = s.handleReqline(w, r)
	}

	if err := writeJSON(w, res.Status, res.Body); err != nil {
		s.logger.Printf("%s write failed: %v", id, err)
	}
	s.logger.Printf("%s %s %s status=%d upstream=%d took=%s",
		id, r.Method, r.URL.Path, res.Status, res.Upstream, time.Since(started).Round(time.Millisecond))
}

func (s *Server) handleReqline(w http.ResponseWriter, r *http.Request) reply {
	reqline, ok := readReqline(w, r)
	if !ok {
		return missingReqline()
	}

	in, err := input.ParseReqline(reqline)
	if err != nil {
		return badRequest(err)
	}

	result, err := s.sender.Send(r.Context(), in)
	if err != nil {
		return badRequest(err)
	}
	if result.Response.Failure != nil {
		s.logger.Printf("%s upstream %s failed: %v", w.Header().Get("X-Request-Id"), result.Request.FullURL, result.Response.Failure)
	}
	return success(result)
}

// readReqline extracts the string field "reqline" from the JSON request body.
func readReqline(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil || len(data) == 0 {
		return "", false
	}
	doc, err := input.DecodeJSON(data)
	if err != nil {
		return "", false
	}
	obj, ok := doc.(input.Object)
	if !ok {
		return "", false
	}
	v, _ := obj.Get("reqline")
	reqline, ok := v.(string)
	return reqline, ok
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	stream := input.JSONAPI.BorrowStream(w)
	defer input.JSONAPI.ReturnStream(stream)
	stream.WriteVal(body)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return errors.Wrap(stream.Error, "encoding response")
	}
	return errors.Wrap(stream.Flush(), "writing response")
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving HTTP")
	case <-ctx.Done():
	}

	s.logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "serving HTTP")
	}
	return nil
}
