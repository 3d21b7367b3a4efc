package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/tenancy/pkg/application"
)

type HealthController struct {
	app      application.Application
	basePath string
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{
		app:      app,
		basePath: "/health",
	}
}

func (c *HealthController) Key() string {
	return c.basePath
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc(c.basePath, c.check).Methods(http.MethodGet)
}

func (c *HealthController) check(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB().Ping(r.Context()); err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database is not reachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
