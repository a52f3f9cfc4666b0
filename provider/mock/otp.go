package mock

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type otpRequest struct {
	Email      string         `json:"email"`
	Data       map[string]any `json:"data"`
	CreateUser bool           `json:"create_user"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Type  string `json:"type"`
}

// defaultOtpHandler handles /otp requests, creating unconfirmed users on demand
func (s *Service) defaultOtpHandler(w http.ResponseWriter, r *http.Request) {
	request := &otpRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil || request.Email == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "An email address is required")
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	user, ok := s.users[request.Email]
	if !ok {
		if !request.CreateUser {
			writeError(w, http.StatusUnprocessableEntity, "otp_disabled", "Signups not allowed for otp")
			return
		}
		user = &User{ID: uuid.NewString(), Email: request.Email}
		if name, ok := request.Data["name"].(string); ok {
			user.Name = name
		}
		s.users[request.Email] = user
	}
	s.pendingOtp[request.Email] = true
	writeJSON(w, map[string]any{})
}

// defaultVerifyHandler handles /verify requests
func (s *Service) defaultVerifyHandler(w http.ResponseWriter, r *http.Request) {
	request := &verifyRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "Could not parse request body as JSON")
		return
	}
	switch strings.ToLower(request.Type) {
	case "signup", "email", "magiclink":
	default:
		writeError(w, http.StatusBadRequest, "validation_failed", "Verify requires a verification type")
		return
	}
	s.mux.Lock()
	user, ok := s.users[request.Email]
	pending := s.pendingOtp[request.Email]
	valid := ok && pending && request.Token == s.OtpCode
	if valid {
		delete(s.pendingOtp, request.Email)
		user.Confirmed = true
	}
	s.mux.Unlock()
	if !valid {
		writeError(w, http.StatusForbidden, "otp_expired", "Token has expired or is invalid")
		return
	}
	s.writeSession(w, user)
}
