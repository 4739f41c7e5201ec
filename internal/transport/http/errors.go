package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidDate          = "invalid_date"
	codeInvalidID            = "invalid_id"
	codeTitleRequired        = "event_title_required"
	codeInvalidCapacity      = "invalid_capacity"
	codeInvalidStatus        = "invalid_status"
	codeEventNotFound        = "event_not_found"
	codeRegistrationNotFound = "registration_not_found"
	codeAlreadyRegistered    = "already_registered"
	codeAlreadyCancelled     = "already_cancelled"
	codeEventFull            = "event_full"
	codeEventNotOpen         = "event_not_open"
	codeCapacityConflict     = "capacity_conflict"
	codeHasRegistrations     = "has_registrations"
	codeEmailTaken           = "email_taken"
	codeInvalidCredentials   = "invalid_credentials"
	codeInvalidSignup        = "invalid_signup"
	codeUnauthorized         = "unauthorized"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
// It writes the error response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}
