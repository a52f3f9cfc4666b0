package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// createAccessToken creates a signed access token for user
func (s *Service) createAccessToken(user *User, expiry time.Duration) (string, error) {
	now := time.Now()
	metadata := map[string]any{}
	if user.Name != "" {
		metadata["name"] = user.Name
	}
	claims := jwt.MapClaims{
		"iss":           s.Issuer,
		"sub":           user.ID,
		"aud":           "authenticated",
		"role":          "authenticated",
		"email":         user.Email,
		"user_metadata": metadata,
		"session_id":    uuid.NewString(),
		"exp":           now.Add(expiry).Unix(),
		"iat":           now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseAccessToken verifies access token signature and returns its claims
func (s *Service) ParseAccessToken(accessToken string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
