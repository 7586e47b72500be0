package httpapi

import (
	"net/http"

	"github.com/dxpr/content-intel/errors"
	"github.com/dxpr/content-intel/json"
)

// Response is the envelope every endpoint writes. Exactly one of Data and
// Error is set.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
	Meta  Meta   `json:"meta"`
}

// Error is the wire shape of a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta carries response metadata.
type Meta struct {
	Took int64 `json:"took,omitempty"` // milliseconds
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"internal","message":"encode failed"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(raw)
}

// OK writes a 200 envelope with data.
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, &Response{Data: data})
}

// OKTook writes a 200 envelope with data and elapsed milliseconds.
func OKTook(w http.ResponseWriter, data any, tookMs int64) {
	writeJSON(w, http.StatusOK, &Response{Data: data, Meta: Meta{Took: tookMs}})
}

// Fail maps an error to its envelope. AppErrors keep their code and chosen
// HTTP status; anything else is an opaque internal error.
func Fail(w http.ResponseWriter, err error) {
	appErr := errors.FromError(err)

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, &Response{Error: &Error{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}

// ValidationFail writes a 400 envelope carrying field-level details.
func ValidationFail(w http.ResponseWriter, fields []FieldError) {
	writeJSON(w, http.StatusBadRequest, &Response{Error: &Error{
		Code:    string(errors.ErrorTypeValidation),
		Message: "validation failed",
		Details: fields,
	}})
}
