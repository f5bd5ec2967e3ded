package security

import (
	"errors"
	"strings"
	"time"

	"codejarvis/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth signs and verifies the dashboard session cookie. The cookie only
// carries the session id; the remote bearer token stays server-side.
var TokenAuth *jwtauth.JWTAuth

const sessionClaim = "sid"

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.SessionSecret, nil)
}

// GenerateSessionCookieToken encodes the session id. Sessions have no expiry;
// they end on explicit logout.
func GenerateSessionCookieToken(sessionID string) (string, error) {
	claims := map[string]interface{}{
		sessionClaim: sessionID,
		"iat":        time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetSessionIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims[sessionClaim].(string)
	if !ok || id == "" {
		return "", errors.New("sid claim is missing or not a string")
	}
	return id, nil
}

// BearerIdentity is what the dashboard can learn from the remote API token
// without its signing key.
type BearerIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityFromBearer reads the claims of the remote bearer token without
// verifying its signature. Validity is only established by the remote API.
func IdentityFromBearer(token string) (BearerIdentity, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return BearerIdentity{}, errors.New("empty bearer token")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return BearerIdentity{}, err
	}
	id := BearerIdentity{}
	id.Subject, _ = claims["sub"].(string)
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	return id, nil
}
