package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/GlebRadaev/photoexpress/pkg/utils"
)

// ServiceTokenHeader carries the shared secret of a trusted caller such as
// the bot front-end or the payment gateway.
const ServiceTokenHeader = "X-Service-Token"

// ServiceMiddleware admits only requests whose ServiceTokenHeader equals
// token. An empty token admits nothing.
func ServiceMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(ServiceTokenHeader)
			if got == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
