package web

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := errors.New("account not found")
	require.Equal(t, JSONError{Error: "account not found"}, Error(err))
}

func TestDecodeError(t *testing.T) {
	testCases := []struct {
		name        string
		statusCode  int
		body        string
		wantMessage string
	}{
		{
			name:        "JSONBody",
			statusCode:  http.StatusNotFound,
			body:        `{"error":"account not found"}`,
			wantMessage: "account not found",
		},
		{
			name:       "NonJSONBody",
			statusCode: http.StatusBadGateway,
			body:       "<html>bad gateway</html>",
		},
		{
			name:       "EmptyBody",
			statusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			res := &http.Response{
				StatusCode: tc.statusCode,
				Body:       io.NopCloser(strings.NewReader(tc.body)),
			}

			err := DecodeError(res)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, tc.statusCode, statusErr.StatusCode)
			require.Equal(t, tc.wantMessage, statusErr.Message)
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{StatusCode: http.StatusNotFound, Message: "account not found"}
	require.Equal(t, "status 404: account not found", err.Error())

	err = &StatusError{StatusCode: http.StatusBadGateway}
	require.Equal(t, "unexpected status 502", err.Error())
}
