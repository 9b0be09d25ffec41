package domain

import (
	"context"
	"time"
)

// Event is an organizer-created event that people register for through its
// registration token.
// swagger:model Event
type Event struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       *string    `json:"description"`
	Date              *time.Time `json:"date"`
	RegistrationToken string     `json:"registration_token"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID and CreatedAt are set by the repository on create.
func NewEvent(name string, description *string, date *time.Time, registrationToken string) *Event {
	return &Event{
		Name:              name,
		Description:       description,
		Date:              date,
		RegistrationToken: registrationToken,
	}
}

// EventWithCount bundles an event with its participant count.
type EventWithCount struct {
	Event            *Event `json:"event"`
	ParticipantCount int    `json:"participant_count"`
}

// TokenGenerator produces URL-safe registration tokens. It makes no
// uniqueness promise; the events table constraint is the arbiter.
type TokenGenerator interface {
	Generate() (string, error)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Create inserts the event and sets ID and CreatedAt. Returns
	// ErrDuplicateToken when the registration token is already taken.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByToken(ctx context.Context, token string) (*Event, error)
	ListWithCounts(ctx context.Context) ([]*EventWithCount, error)
	// Delete removes the event and, through the schema, all its participants.
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer-facing operations on events.
type EventService interface {
	// CreateEvent validates the name, generates a registration token, and
	// persists the event, retrying on token collisions. Returns
	// ErrTokenGenerationExhausted when no unique token could be found.
	CreateEvent(ctx context.Context, name string, description *string, date *time.Time) (*Event, error)
	// Dashboard lists all events newest-first with their participant counts.
	Dashboard(ctx context.Context) ([]*EventWithCount, error)
	// DeleteEvent removes the event and every participant registered for it.
	DeleteEvent(ctx context.Context, eventID string) error
	// ListParticipants returns the event's participants in registration
	// order. A non-empty search filters by name or email substring.
	ListParticipants(ctx context.Context, eventID, search string) ([]*Participant, error)
	RemoveParticipant(ctx context.Context, eventID, participantID string) error
}
