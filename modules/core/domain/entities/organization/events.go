package organization

import "context"

type CreatedEvent struct {
	Result *Organization
}

type UpdatedEvent struct {
	Result *Organization
}

type DeletedEvent struct {
	Result *Organization
}

func NewCreatedEvent(_ context.Context, result *Organization) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

func NewUpdatedEvent(_ context.Context, result *Organization) *UpdatedEvent {
	return &UpdatedEvent{Result: result}
}

func NewDeletedEvent(_ context.Context, result *Organization) *DeletedEvent {
	return &DeletedEvent{Result: result}
}
