package stubserver

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenService issues and verifies the bearer tokens the client decodes:
// claims uid, role, sub (email) and exp, HS256-signed.
type TokenService struct {
	tokenAuth  *jwtauth.JWTAuth
	expiration string
}

func NewTokenService(secretKey, expiration string) *TokenService {
	return &TokenService{
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		expiration: expiration,
	}
}

func (t *TokenService) JWTAuth() *jwtauth.JWTAuth {
	return t.tokenAuth
}

func (t *TokenService) GenerateAccessToken(userID int64, email, role string) (string, error) {
	expDuration, err := time.ParseDuration(t.expiration)
	if err != nil {
		return "", err
	}
	claims := map[string]interface{}{
		"uid":  userID,
		"sub":  email,
		"role": role,
		"exp":  time.Now().Add(expDuration).Unix(),
	}
	_, tokenString, err := t.tokenAuth.Encode(claims)
	return tokenString, err
}
