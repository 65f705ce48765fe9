package handler

import (
	"encoding/json"
	"net/http"

	"social-care-go/pkg/apperr"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondDomainError maps the error taxonomy to HTTP statuses: validation
// 400, conflict 409, not-found 404, everything else 500.
func (h *Handlers) respondDomainError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case apperr.IsValidation(err):
		h.log.BusinessError(op, err, args...)
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case apperr.IsConflict(err):
		h.log.BusinessError(op, err, args...)
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case apperr.IsNotFound(err):
		h.log.BusinessError(op, err, args...)
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		h.log.InternalError(op, err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
