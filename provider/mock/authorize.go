package mock

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// defaultAuthorizeHandler handles /authorize requests; it signs in GoogleEmail
// right away and redirects back with an authorization code.
func (s *Service) defaultAuthorizeHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("provider") != "google" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Unsupported provider: provider is not enabled")
		return
	}
	if !strings.EqualFold(query.Get("code_challenge_method"), "s256") || query.Get("code_challenge") == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "PKCE flow requires code_challenge")
		return
	}
	redirectTo := query.Get("redirect_to")
	if redirectTo == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Missing redirect_to")
		return
	}
	code := uuid.NewString()
	s.mux.Lock()
	if _, ok := s.users[s.GoogleEmail]; !ok {
		s.users[s.GoogleEmail] = &User{ID: uuid.NewString(), Email: s.GoogleEmail, Confirmed: true}
	}
	s.pkceGrants[code] = pkceGrant{challenge: query.Get("code_challenge"), email: s.GoogleEmail}
	s.mux.Unlock()
	target, err := url.Parse(redirectTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "Invalid redirect_to")
		return
	}
	values := target.Query()
	values.Set("code", code)
	target.RawQuery = values.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}
