package dto

import (
	"encoding/json"
	"net/http"
)

// Result is the response envelope shared by every endpoint. Payload's JSON fields are
// flattened next to message, success and responseCode.
type Result[T any] struct {
	Message      string
	Success      bool
	ResponseCode int
	Payload      T
}

// Empty is the payload of responses that carry only the envelope.
type Empty struct{}

// OK wraps a successful payload.
func OK[T any](payload T) Result[T] {
	return Result[T]{Success: true, ResponseCode: http.StatusOK, Payload: payload}
}

// Fail builds an envelope-only failure.
func Fail(status int, message string) Result[Empty] {
	return Result[Empty]{Message: message, Success: false, ResponseCode: status}
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}

	raw, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, err
	}
	if string(raw) != "null" {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}

	for key, value := range map[string]any{
		"message":      r.Message,
		"success":      r.Success,
		"responseCode": r.ResponseCode,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = encoded
	}
	return json.Marshal(fields)
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Message      string `json:"message"`
		Success      bool   `json:"success"`
		ResponseCode int    `json:"responseCode"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &r.Payload); err != nil {
		return err
	}
	r.Message = envelope.Message
	r.Success = envelope.Success
	r.ResponseCode = envelope.ResponseCode
	return nil
}
