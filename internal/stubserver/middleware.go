package stubserver

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// identity is the authenticated caller pulled from the verified token.
type identity struct {
	UserID int64
	Email  string
	Role   string
}

func identityFromRequest(r *http.Request) (identity, bool) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return identity{}, false
	}
	var id identity
	if uid, ok := claims["uid"].(float64); ok {
		id.UserID = int64(uid)
	}
	if sub, ok := claims["sub"].(string); ok {
		id.Email = sub
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	return id, id.UserID != 0
}

// AuthRequired rejects requests whose token did not verify.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identityFromRequest(r); !ok {
			unauthorized(w, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ManagerOnly requires the manager role on top of authentication.
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFromRequest(r)
		if !ok {
			unauthorized(w, "Not authenticated")
			return
		}
		if id.Role != "manager" {
			forbidden(w, "Manager role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
