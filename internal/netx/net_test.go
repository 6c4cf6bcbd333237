package netx

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body))}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{"message field", 401, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", 400, `{"error":"invalid body"}`, "invalid body"},
		{"plain text", 500, "database is down\n", "database is down"},
		{"empty body", 404, "", "Not Found"},
		{"json without message", 403, `{"ok":false}`, "Forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(response(tt.code, tt.body)))
		})
	}
}

func TestJSONBody(t *testing.T) {
	r, err := JSONBody(map[string]string{"email": "a@x.com"})
	require.NoError(t, err)
	b, _ := io.ReadAll(r)
	assert.JSONEq(t, `{"email":"a@x.com"}`, string(b))

	r, err = JSONBody(nil)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Token string `json:"token"`
	}
	require.NoError(t, DecodeJSON(response(200, `{"token":"abc"}`), &v))
	assert.Equal(t, "abc", v.Token)

	err := DecodeJSON(response(200, `not json`), &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response body")

	v.Token = "kept"
	require.NoError(t, DecodeJSON(response(204, ``), &v))
	assert.Equal(t, "kept", v.Token)
}
