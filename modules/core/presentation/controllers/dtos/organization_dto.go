package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type CreateOrganizationRequest struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type OrganizationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parentId,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func NewOrganizationResponse(org *organization.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:        org.ID(),
		Name:      org.Name(),
		ParentID:  org.ParentID(),
		IsActive:  org.IsActive(),
		CreatedAt: org.CreatedAt(),
		UpdatedAt: org.UpdatedAt(),
	}
}

func NewOrganizationListResponse(orgs []*organization.Organization) []*OrganizationResponse {
	out := make([]*OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, NewOrganizationResponse(org))
	}
	return out
}
