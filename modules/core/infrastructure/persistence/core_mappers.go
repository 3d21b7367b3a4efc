package persistence

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/modules/core/domain/entities/session"
	"github.com/iota-uz/tenancy/modules/core/infrastructure/persistence/models"
)

func toDomainOrganization(o *models.Organization) (*organization.Organization, error) {
	id, err := uuid.Parse(o.ID)
	if err != nil {
		return nil, err
	}

	options := []organization.Option{
		organization.WithID(id),
		organization.WithIsActive(o.IsActive),
		organization.WithCreatedAt(o.CreatedAt),
		organization.WithUpdatedAt(o.UpdatedAt),
	}

	if o.ParentID.Valid {
		parentID, err := uuid.Parse(o.ParentID.String)
		if err != nil {
			return nil, err
		}
		options = append(options, organization.WithParentID(&parentID))
	}

	return organization.New(o.Name, options...), nil
}

func toDBOrganization(o *organization.Organization) *models.Organization {
	var parentID sql.NullString
	if pid := o.ParentID(); pid != nil {
		parentID = sql.NullString{String: pid.String(), Valid: true}
	}
	return &models.Organization{
		ID:        o.ID().String(),
		Name:      o.Name(),
		ParentID:  parentID,
		IsActive:  o.IsActive(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func toDomainSession(s *models.Session) (*session.Session, error) {
	var activeOrgID *uuid.UUID
	if s.ActiveOrganizationID.Valid {
		id, err := uuid.Parse(s.ActiveOrganizationID.String)
		if err != nil {
			return nil, err
		}
		activeOrgID = &id
	}
	return &session.Session{
		Token:                s.Token,
		UserID:               uint(s.UserID),
		ActiveOrganizationID: activeOrgID,
		IP:                   s.IP,
		UserAgent:            s.UserAgent,
		ExpiresAt:            s.ExpiresAt,
		CreatedAt:            s.CreatedAt,
	}, nil
}

func toDBSession(s *session.Session) *models.Session {
	var activeOrgID sql.NullString
	if s.ActiveOrganizationID != nil {
		activeOrgID = sql.NullString{String: s.ActiveOrganizationID.String(), Valid: true}
	}
	return &models.Session{
		Token:                s.Token,
		UserID:               int64(s.UserID),
		ActiveOrganizationID: activeOrgID,
		IP:                   s.IP,
		UserAgent:            s.UserAgent,
		ExpiresAt:            s.ExpiresAt,
		CreatedAt:            s.CreatedAt,
	}
}
