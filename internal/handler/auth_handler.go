package handler

import (
	"encoding/json"
	"net/http"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/jobseekhq/job-portal/internal/middleware"
	"github.com/jobseekhq/job-portal/internal/server"
)

type tokenRq struct {
	Email string `json:"email"`
}

// IssueTokenHandler signs a token for the supplied identity and stores it in
// the session cookie. The cookie attributes come from the session store
// options set at startup (HttpOnly always, Secure/SameSite per environment).
func IssueTokenHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq := &tokenRq{}
		if err := json.NewDecoder(r.Body).Decode(rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if rq.Email == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
			return
		}
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err != nil {
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		claims := middleware.UserJWT{
			Email: rq.Email,
			StandardClaims: jwt.StandardClaims{
				ExpiresAt: time.Now().Add(middleware.TokenExpiry).UTC().Unix(),
				IssuedAt:  time.Now().UTC().Unix(),
				Issuer:    "job-portal",
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		ss, err := token.SignedString(svr.GetJWTSigningKey())
		if err != nil {
			svr.Log(err, "unable to sign jwt")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		sess.Values["jwt"] = ss
		if err := sess.Save(r, w); err != nil {
			svr.Log(err, "unable to save session cookie")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "an internal error has occurred"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// LogoutHandler clears the auth cookie. It succeeds whether or not a session
// existed.
func LogoutHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get returns a fresh session even when the cookie is missing or
		// undecodable, so the clear always applies
		sess, _ := svr.SessionStore.Get(r, middleware.SessionName)
		if sess != nil {
			sess.Options.MaxAge = -1
			delete(sess.Values, "jwt")
			if err := sess.Save(r, w); err != nil {
				svr.Log(err, "unable to clear session cookie")
			}
		}
		svr.JSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
