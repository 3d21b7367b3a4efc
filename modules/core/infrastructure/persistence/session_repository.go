package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/session"
	"github.com/iota-uz/tenancy/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/tenancy/pkg/composables"
)

var (
	ErrSessionNotFound = fmt.Errorf("session not found")
)

const (
	sessionFindQuery = `SELECT token, user_id, active_organization_id, ip, user_agent, expires_at, created_at FROM sessions`
)

type SessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &SessionRepository{}
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	var s models.Session
	if err := tx.QueryRow(ctx, sessionFindQuery+" WHERE token = $1", token).Scan(
		&s.Token,
		&s.UserID,
		&s.ActiveOrganizationID,
		&s.IP,
		&s.UserAgent,
		&s.ExpiresAt,
		&s.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "failed to query session")
	}

	return toDomainSession(&s)
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, active_organization_id, ip, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	row := toDBSession(s)
	_, err = tx.Exec(
		ctx,
		query,
		row.Token,
		row.UserID,
		row.ActiveOrganizationID,
		row.IP,
		row.UserAgent,
		row.ExpiresAt,
		row.CreatedAt,
	)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
