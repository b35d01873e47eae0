// Package web defines common components shared by the HTTP clients and the devserver.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// StatusError is a non-2xx response decoded from a collaborator service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// DecodeError reads a non-2xx response body into a StatusError.
func DecodeError(res *http.Response) error {
	statusErr := &StatusError{StatusCode: res.StatusCode}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return statusErr
	}

	var jsonErr JSONError
	if err := json.Unmarshal(body, &jsonErr); err == nil {
		statusErr.Message = jsonErr.Error
	}

	return statusErr
}
