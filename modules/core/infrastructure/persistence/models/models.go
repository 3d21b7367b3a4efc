package models

import (
	"database/sql"
	"time"
)

type Organization struct {
	ID        string
	Name      string
	ParentID  sql.NullString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Session struct {
	Token                string
	UserID               int64
	ActiveOrganizationID sql.NullString
	IP                   string
	UserAgent            string
	ExpiresAt            time.Time
	CreatedAt            time.Time
}
