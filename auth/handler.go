package auth

import (
	"net/http"
	"time"

	"detergent/config"
	"detergent/model"
	"detergent/respond"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func setSessionCookie(w http.ResponseWriter, sess model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.GetConfig().Auth.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  time.Unix(sess.ExpiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.GetConfig().Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeSession(w http.ResponseWriter, msg string, u model.User, sess model.Session) {
	setSessionCookie(w, sess)
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"message":   msg,
		"user":      u,
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
	})
}

func SignUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		var c credentials
		if err := respond.Decode(r, &c); err != nil {
			respond.Error(w, r, err)
			return
		}
		u, err := svc.SignUp(c.Email, c.Password, c.Name, c.Role)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Account created.",
			"user":    u,
		})
	}
}

func LoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		var c credentials
		if err := respond.Decode(r, &c); err != nil {
			respond.Error(w, r, err)
			return
		}
		u, sess, err := svc.SignIn(c.Email, c.Password)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		writeSession(w, "Signed in.", u, sess)
	}
}

func LogoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		if token := TokenFromRequest(r); token != "" {
			if err := svc.SignOut(token); err != nil {
				respond.Error(w, r, err)
				return
			}
		}
		clearSessionCookie(w)
		respond.Message(w, http.StatusOK, "Signed out.")
	}
}

// MeHandler returns the signed-in user. It is mounted behind RequireAuth.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			respond.Error(w, r, ErrUnauthenticated)
			return
		}
		respond.JSON(w, http.StatusOK, u)
	}
}

func DemoLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		u, sess, err := svc.DemoLogin()
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		writeSession(w, "Signed in to the demo account.", u, sess)
	}
}

func DemoResetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		u, err := svc.ResetDemoUser()
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		clearSessionCookie(w)
		respond.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "Demo account reset. Sign in again.",
			"user":    u,
		})
	}
}

// StatusHandler reports whether the request carries a live session.
func StatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"authenticated": false,
			"timestamp":     svc.now().UTC().Format(time.RFC3339),
		}
		u, err := svc.Authenticate(TokenFromRequest(r))
		if err == nil {
			body["authenticated"] = true
			body["email"] = u.Email
			body["role"] = u.Role
		} else {
			body["reason"] = err.Error()
		}
		respond.JSON(w, http.StatusOK, body)
	}
}
