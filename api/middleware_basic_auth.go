package api

import (
	"crypto/subtle"
	"net/http"
)

const basicAuthRealm = `Basic realm="geoenrich"`

type credentials struct {
	user     []byte
	password []byte
}

func (c credentials) match(user, password string) bool {
	userOk := subtle.ConstantTimeCompare(c.user, []byte(user))
	passwordOk := subtle.ConstantTimeCompare(c.password, []byte(password))

	return userOk&passwordOk == 1
}

// basicAuth protects every route of the router. Empty user disables
// protection.
func basicAuth(user, password string) func(http.Handler) http.Handler {
	creds := credentials{
		user:     []byte(user),
		password: []byte(password),
	}

	return func(next http.Handler) http.Handler {
		if user == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if reqUser, reqPassword, ok := req.BasicAuth(); ok && creds.match(reqUser, reqPassword) {
				next.ServeHTTP(w, req)

				return
			}

			w.Header().Set("WWW-Authenticate", basicAuthRealm)
			abort(w, http.StatusUnauthorized, "Authentication is required")
		})
	}
}
