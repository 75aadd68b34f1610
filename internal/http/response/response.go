package response

import (
	"encoding/json"
	"net/http"

	"hirepulse/internal/common"
)

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error maps the error-code taxonomy onto HTTP statuses. Unclassified errors
// become an opaque 500; the cause is for logs, never the client.
func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	code := common.CodeOf(err)
	message := "internal server error"
	var fields map[string]string
	if e, ok := err.(*common.Error); ok {
		appErr = e
	}
	if appErr != nil && code != common.CodeInternal {
		message = appErr.Message
		fields = appErr.Fields
	}
	JSON(w, statusFor(code), errorBody{Error: message, Code: string(code), Fields: fields})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodePrecondition:
		return http.StatusPreconditionFailed
	case common.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case common.CodeValidation, common.CodeUnsupportedFormat, common.CodeExtractionFailed:
		return http.StatusBadRequest
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
