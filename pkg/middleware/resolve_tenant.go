package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/tenancy/modules/core/services"
	"github.com/iota-uz/tenancy/pkg/application"
)

// ResolveTenant resolves the effective tenant for the request and caches it
// on the context before the rest of the pipeline runs. It must be placed
// after Authorize and before any handler issuing tenant-scoped queries.
// Resolution never fails the request.
func ResolveTenant(app application.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolver := app.Service(services.TenantResolverService{}).(*services.TenantResolverService)
			next.ServeHTTP(w, r.WithContext(resolver.Resolve(r.Context())))
		})
	}
}
