package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/modules/core/infrastructure/persistence"
	"github.com/iota-uz/tenancy/modules/core/presentation/controllers/dtos"
	"github.com/iota-uz/tenancy/modules/core/services"
	"github.com/iota-uz/tenancy/pkg/application"
	"github.com/iota-uz/tenancy/pkg/composables"
)

// OrganizationsAPIController exposes the organization hierarchy over REST.
// Every read and write goes through the tenant-scoped executor, so the
// rows a caller sees are bounded by the tenant resolved for the request.
type OrganizationsAPIController struct {
	app      application.Application
	basePath string
}

func NewOrganizationsAPIController(app application.Application) application.Controller {
	return &OrganizationsAPIController{
		app:      app,
		basePath: "/api/organizations",
	}
}

func (c *OrganizationsAPIController) Key() string {
	return c.basePath
}

func (c *OrganizationsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/children", c.children).Methods(http.MethodGet)
}

func (c *OrganizationsAPIController) service() *services.OrganizationService {
	return c.app.Service(services.OrganizationService{}).(*services.OrganizationService)
}

func (c *OrganizationsAPIController) list(w http.ResponseWriter, r *http.Request) {
	orgs, err := c.service().List(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.NewOrganizationListResponse(orgs))
}

func (c *OrganizationsAPIController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	org, err := c.service().GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.NewOrganizationResponse(org))
}

func (c *OrganizationsAPIController) children(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	orgs, err := c.service().GetChildren(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.NewOrganizationListResponse(orgs))
}

func (c *OrganizationsAPIController) create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid json")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "INVALID_NAME", "name must not be empty")
		return
	}

	opts := []organization.Option{}
	if req.ParentID != nil {
		opts = append(opts, organization.WithParentID(req.ParentID))
	}
	created, err := c.service().Create(r.Context(), organization.New(req.Name, opts...))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.NewOrganizationResponse(created))
}

func (c *OrganizationsAPIController) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid json")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "INVALID_NAME", "name must not be empty")
		return
	}

	org, err := c.service().GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	org.SetName(req.Name)
	if req.IsActive != nil {
		org.SetIsActive(*req.IsActive)
	}

	updated, err := c.service().Update(r.Context(), org)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.NewOrganizationResponse(updated))
}

func (c *OrganizationsAPIController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.service().Delete(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *OrganizationsAPIController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, persistence.ErrOrganizationNotFound):
		writeJSONError(w, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "organization not found")
	case errors.Is(err, composables.ErrTenantContextMissing):
		writeJSONError(w, http.StatusUnauthorized, "TENANT_CONTEXT_MISSING", "no tenant is associated with the request")
	case errors.Is(err, composables.ErrDatabaseUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database is not reachable")
	default:
		if logger, ok := composables.TryUseLogger(r.Context()); ok {
			logger.WithError(err).Error("organization request failed")
		}
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}
