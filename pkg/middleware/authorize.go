package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/tenancy/modules/core/services"
	"github.com/iota-uz/tenancy/pkg/application"
	"github.com/iota-uz/tenancy/pkg/composables"
	"github.com/iota-uz/tenancy/pkg/configuration"
)

// Authorize loads the session referenced by the sid cookie onto the request
// context. Requests without a valid session pass through anonymously; access
// control is the handlers' concern.
func Authorize(app application.Application) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(conf.SidCookieKey)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			authService := app.Service(services.AuthService{}).(*services.AuthService)
			sess, err := authService.SessionFromToken(r.Context(), cookie.Value)
			if err != nil {
				logger := composables.UseLogger(r.Context())
				logger.WithError(err).Debug("session lookup failed, continuing anonymously")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), sess)))
		})
	}
}
