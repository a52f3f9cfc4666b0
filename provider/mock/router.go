package mock

import (
	"encoding/json"
	"net/http"
)

// Handler routes HTTP requests to the appropriate mock endpoints.
type Handler struct {
	Service *Service
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if status, ok := h.Service.record(r.URL.Path); ok {
		writeError(w, status, "injected_failure", http.StatusText(status))
		return
	}
	switch r.URL.Path {
	case "/token":
		h.dispatch(w, r, h.Service.TokenHandler, h.Service.defaultTokenHandler)
	case "/otp":
		h.dispatch(w, r, h.Service.OtpHandler, h.Service.defaultOtpHandler)
	case "/verify":
		h.dispatch(w, r, h.Service.VerifyHandler, h.Service.defaultVerifyHandler)
	case "/logout":
		h.dispatch(w, r, h.Service.LogoutHandler, h.Service.defaultLogoutHandler)
	case "/authorize":
		h.dispatch(w, r, h.Service.AuthorizeHandler, h.Service.defaultAuthorizeHandler)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, custom, fallback http.HandlerFunc) {
	if custom != nil {
		custom(w, r)
		return
	}
	fallback(w, r)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": status, "error_code": code, "msg": message})
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
