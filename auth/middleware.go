package auth

import (
	"context"
	"net/http"
	"strings"

	"detergent/config"
	"detergent/model"
	"detergent/respond"
)

type ctxKey struct{}

// UserFromContext returns the user RequireAuth attached to the request.
func UserFromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(model.User)
	return u, ok
}

func withUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// TokenFromRequest reads the session token from the Authorization header or the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(config.GetConfig().Auth.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireAuth rejects requests without a live session.
func RequireAuth(svc *Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Authenticate(TokenFromRequest(r))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

// RequireRole rejects authenticated users without the given role. It must run inside RequireAuth.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			respond.Error(w, r, ErrUnauthenticated)
			return
		}
		if u.Role != role {
			respond.Error(w, r, ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
