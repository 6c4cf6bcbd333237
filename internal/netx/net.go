// Package netx contains small HTTP/JSON helpers shared by the admin API
// client and its tests.
package netx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read for a message.
const maxErrorBody = 64 << 10

// JSONBody encodes v as a request body. A nil v yields a nil reader.
func JSONBody(v any) (io.Reader, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// DecodeJSON reads resp.Body into v and closes it. An empty body leaves v
// untouched.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// ErrorMessage extracts a human readable message from a failed response and
// closes the body. It prefers a JSON {"message": ...} or {"error": ...}
// field, then the raw body, then the status text.
func ErrorMessage(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(b, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if s := strings.TrimSpace(string(b)); s != "" && !strings.HasPrefix(s, "{") {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// Drain discards the rest of the body and closes it so the connection can
// be reused.
func Drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
