package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/tenancy/pkg/composables"
)

var (
	ErrOrganizationNotFound = fmt.Errorf("organization not found")
)

const (
	organizationFindQuery = `SELECT id, name, parent_id, is_active, created_at, updated_at FROM organizations`
)

type OrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	query := organizationFindQuery + " WHERE id = $1"
	orgs, err := r.queryOrganizations(ctx, query, id.String())
	if err != nil {
		return nil, err
	}

	if len(orgs) == 0 {
		return nil, ErrOrganizationNotFound
	}

	return orgs[0], nil
}

func (r *OrganizationRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]*organization.Organization, error) {
	query := organizationFindQuery + " WHERE parent_id = $1 ORDER BY name"
	return r.queryOrganizations(ctx, query, parentID.String())
}

func (r *OrganizationRepository) Create(ctx context.Context, org *organization.Organization) (*organization.Organization, error) {
	query := `
		INSERT INTO organizations (id, name, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := toDBOrganization(org)
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		row.ID,
		row.Name,
		row.ParentID,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *OrganizationRepository) Update(ctx context.Context, org *organization.Organization) (*organization.Organization, error) {
	query := `
		UPDATE organizations
		SET name = $1, parent_id = $2, is_active = $3, updated_at = $4
		WHERE id = $5
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := toDBOrganization(org)
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		row.Name,
		row.ParentID,
		row.IsActive,
		row.UpdatedAt,
		row.ID,
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM organizations WHERE id = $1`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, query, id.String())
	return err
}

func (r *OrganizationRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	return r.queryOrganizations(ctx, organizationFindQuery+" ORDER BY name")
}

func (r *OrganizationRepository) queryOrganizations(ctx context.Context, query string, args ...interface{}) ([]*organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var orgs []*organization.Organization
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.ParentID,
			&o.IsActive,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan organization row")
		}
		org, err := toDomainOrganization(&o)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map organization row")
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return orgs, nil
}
