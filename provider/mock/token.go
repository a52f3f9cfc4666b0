package mock

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

func (s *Service) sessionResponse(user *User) (map[string]any, error) {
	expiry := time.Duration(s.ExpiresIn) * time.Second
	accessToken, err := s.createAccessToken(user, expiry)
	if err != nil {
		return nil, err
	}
	refreshToken := uuid.NewString()
	s.mux.Lock()
	s.refreshTokens[refreshToken] = user.Email
	s.mux.Unlock()
	metadata := map[string]any{}
	if user.Name != "" {
		metadata["name"] = user.Name
	}
	return map[string]any{
		"access_token":  accessToken,
		"token_type":    "bearer",
		"expires_in":    s.ExpiresIn,
		"expires_at":    time.Now().Add(expiry).Unix(),
		"refresh_token": refreshToken,
		"user": map[string]any{
			"id":            user.ID,
			"email":         user.Email,
			"user_metadata": metadata,
		},
	}, nil
}

func (s *Service) writeSession(w http.ResponseWriter, user *User) {
	response, err := s.sessionResponse(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unexpected_failure", err.Error())
		return
	}
	writeJSON(w, response)
}

// defaultTokenHandler handles /token requests
func (s *Service) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}
	payload := map[string]string{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "Could not parse request body as JSON")
		return
	}
	switch r.URL.Query().Get("grant_type") {
	case "password":
		s.mux.Lock()
		user, ok := s.users[payload["email"]]
		s.mux.Unlock()
		if !ok || user.Password != payload["password"] {
			writeError(w, http.StatusBadRequest, "invalid_credentials", "Invalid login credentials")
			return
		}
		if !user.Confirmed {
			writeError(w, http.StatusBadRequest, "email_not_confirmed", "Email not confirmed")
			return
		}
		s.writeSession(w, user)
	case "refresh_token":
		s.mux.Lock()
		email, ok := s.refreshTokens[payload["refresh_token"]]
		delete(s.refreshTokens, payload["refresh_token"])
		user := s.users[email]
		s.mux.Unlock()
		if !ok || user == nil {
			writeError(w, http.StatusBadRequest, "refresh_token_not_found", "Invalid Refresh Token: Refresh Token Not Found")
			return
		}
		s.writeSession(w, user)
	case "pkce":
		s.mux.Lock()
		grant, ok := s.pkceGrants[payload["auth_code"]]
		delete(s.pkceGrants, payload["auth_code"])
		user := s.users[grant.email]
		s.mux.Unlock()
		if !ok || user == nil {
			writeError(w, http.StatusNotFound, "flow_state_not_found", "invalid flow state, no valid flow state found")
			return
		}
		if s256(payload["code_verifier"]) != grant.challenge {
			writeError(w, http.StatusBadRequest, "bad_code_verifier", "code challenge does not match previously saved code verifier")
			return
		}
		s.writeSession(w, user)
	default:
		writeError(w, http.StatusBadRequest, "unsupported_grant_type", "unsupported_grant_type")
	}
}
