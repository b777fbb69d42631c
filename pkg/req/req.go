package req

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a JSON request body into T, rejecting unknown fields.
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&payload)
	if err != nil {
		return payload, fmt.Errorf("decode request body: %w", err)
	}

	return payload, nil
}
