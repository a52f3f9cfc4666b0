package gotrue

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/authstate/session"
	"golang.org/x/oauth2"
)

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	RefreshToken string        `json:"refresh_token"`
	User         *session.User `json:"user"`
}

// accessClaims represents GoTrue access token claims
type accessClaims struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

func parseClaims(accessToken string) (*accessClaims, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims, nil
}

func (c *Client) toSession(response *tokenResponse) (*session.Session, error) {
	if response.AccessToken == "" {
		return nil, errors.New("missing access token in response")
	}
	token := &oauth2.Token{
		AccessToken:  response.AccessToken,
		TokenType:    response.TokenType,
		RefreshToken: response.RefreshToken,
	}
	switch {
	case response.ExpiresAt > 0:
		token.Expiry = time.Unix(response.ExpiresAt, 0)
	case response.ExpiresIn > 0:
		token.Expiry = c.now().Add(time.Duration(response.ExpiresIn) * time.Second)
	}
	ret := &session.Session{Token: token}
	if response.User != nil && !token.Expiry.IsZero() {
		ret.User = *response.User
		return ret, nil
	}
	claims, err := parseClaims(response.AccessToken)
	if err != nil {
		if response.User == nil {
			return nil, err
		}
		ret.User = *response.User
		return ret, nil
	}
	if token.Expiry.IsZero() && claims.ExpiresAt != nil {
		token.Expiry = claims.ExpiresAt.Time
	}
	if response.User != nil {
		ret.User = *response.User
		return ret, nil
	}
	ret.User = session.User{ID: claims.Subject, Email: claims.Email}
	if name, ok := claims.UserMetadata["name"].(string); ok {
		ret.User.UserMetadata = &session.UserMetadata{Name: name}
	}
	if ret.User.ID == "" {
		return nil, errors.New("access token has no subject")
	}
	return ret, nil
}
