package mock

import (
	"net/http"
	"strings"
)

// defaultLogoutHandler handles /logout requests
func (s *Service) defaultLogoutHandler(w http.ResponseWriter, r *http.Request) {
	accessToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	claims, err := s.ParseAccessToken(accessToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "bad_jwt", "invalid JWT: unable to parse or verify signature")
		return
	}
	email, _ := claims["email"].(string)
	s.mux.Lock()
	for token, owner := range s.refreshTokens {
		if owner == email {
			delete(s.refreshTokens, token)
		}
	}
	s.mux.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
