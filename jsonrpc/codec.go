package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyMessage is returned by DecodeRequest for blank lines.
// Callers skip such lines without logging them as failures.
var ErrEmptyMessage = errors.New("empty message")

// DecodeRequest parses a single line of input into a Request.
// Only lines that are not valid JSON fail; see Request.UnmarshalJSON for
// how well-formed but unexpected values are handled.
func DecodeRequest(line []byte) (Request, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Request{}, ErrEmptyMessage
	}

	var request Request
	if err := json.Unmarshal(line, &request); err != nil {
		return Request{}, fmt.Errorf("error decoding request: %w", err)
	}
	return request, nil
}

// EncodeResponse serializes a response as a single line terminated by '\n'
func EncodeResponse(response Response) ([]byte, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("error encoding response: %w", err)
	}
	return append(data, '\n'), nil
}
