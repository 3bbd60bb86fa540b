package rest

import "encoding/json"

// APIError is a terminal non-2xx result interpreted through the platform's
// structured error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ResultError builds an APIError from a non-2xx result. The message comes
// from the payload's error.message field when present, else from the fixed
// fallback string.
func ResultError(res Result, fallback string) *APIError {
	apiErr := &APIError{Status: res.Status, Message: fallback}
	if res.Payload == nil {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(res.Payload, &envelope); err != nil {
		return apiErr
	}
	if envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
	}
	apiErr.Code = envelope.Error.Code
	return apiErr
}
