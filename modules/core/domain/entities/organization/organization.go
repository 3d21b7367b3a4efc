package organization

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a node in the tenant tree. A root organization is its own
// tenant; a sub-organization shares the tenant scope of its parent.
type Organization struct {
	id        uuid.UUID
	name      string
	parentID  *uuid.UUID
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Organization)

func WithID(id uuid.UUID) Option {
	return func(o *Organization) {
		o.id = id
	}
}

func WithParentID(parentID *uuid.UUID) Option {
	return func(o *Organization) {
		o.parentID = parentID
	}
}

func WithIsActive(isActive bool) Option {
	return func(o *Organization) {
		o.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(o *Organization) {
		o.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(o *Organization) {
		o.updatedAt = updatedAt
	}
}

func New(name string, opts ...Option) *Organization {
	o := &Organization{
		id:        uuid.New(),
		name:      name,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Organization) ID() uuid.UUID {
	return o.id
}

func (o *Organization) Name() string {
	return o.name
}

// ParentID returns nil for root organizations.
func (o *Organization) ParentID() *uuid.UUID {
	return o.parentID
}

// IsRoot reports whether this organization is its own tenant.
func (o *Organization) IsRoot() bool {
	return o.parentID == nil
}

func (o *Organization) IsActive() bool {
	return o.isActive
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Organization) SetName(name string) {
	o.name = name
	o.updatedAt = time.Now()
}

func (o *Organization) SetParentID(parentID *uuid.UUID) {
	o.parentID = parentID
	o.updatedAt = time.Now()
}

func (o *Organization) SetIsActive(isActive bool) {
	o.isActive = isActive
	o.updatedAt = time.Now()
}
