package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes = 1 << 20

	GenericErrorMessage  = "Something went wrong!"
	RouteNotFoundMessage = "Route not found"
)

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("empty request body")

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the body of every JSON error reply.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError replies with a JSON error body. HandlerErrors keep their
// status and message; anything else becomes a 500 with a generic message
// and is logged.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	var handlerErr HandlerError
	if !errors.As(err, &handlerErr) {
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Unhandled error")
		handlerErr = HandlerError{Status: http.StatusInternalServerError, Message: GenericErrorMessage, Err: err}
	}
	if handlerErr.Err != nil && handlerErr.Status >= http.StatusInternalServerError {
		logger.Error().Err(handlerErr.Err).Int("status", handlerErr.Status).Msg(handlerErr.Message)
	}

	body := ErrorResponse{Success: false, Error: handlerErr.Message}
	if writeErr := WriteJSON(w, handlerErr.Status, body); writeErr != nil {
		logger.Error().Err(writeErr).Msg("Failed to write error response")
	}
}

// HandleNotFound answers any request no route claimed.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("Route not found")
	WriteError(w, r, HandlerError{Status: http.StatusNotFound, Message: RouteNotFoundMessage})
}
