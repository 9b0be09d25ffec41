package domain

import (
	"context"
	"time"
)

// Participant is a person registered for an event. Email is stored
// normalized (trimmed, lowercased); at most one participant per
// (event, email) pair exists.
// swagger:model Participant
type Participant struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	College      string    `json:"college"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewParticipant returns a new Participant for the given event. ID and RegisteredAt are set by the repository on create.
func NewParticipant(eventID, name, email, college string) *Participant {
	return &Participant{
		EventID: eventID,
		Name:    name,
		Email:   email,
		College: college,
	}
}

// ParticipantRepository defines storage operations for participants.
type ParticipantRepository interface {
	// Create inserts the participant and sets ID and RegisteredAt. Returns
	// ErrAlreadyRegistered when the event already has this email.
	Create(ctx context.Context, p *Participant) error
	// ListByEventID returns participants ordered by registration time,
	// earliest first. A non-empty search filters by name or email
	// substring, case-insensitive.
	ListByEventID(ctx context.Context, eventID, search string) ([]*Participant, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	// Delete removes the participant scoped to the event.
	Delete(ctx context.Context, eventID, participantID string) error
}

// RegistrationService defines the public, token-keyed registration flow.
type RegistrationService interface {
	// ResolveToken returns the event behind a registration token, or
	// ErrInvalidToken when the token matches no event.
	ResolveToken(ctx context.Context, token string) (*Event, error)
	// Register validates the input, normalizes the email, and records the
	// registration. Returns the participant together with the event so
	// callers can confirm without a second lookup.
	Register(ctx context.Context, token, name, email, college string) (*Participant, *Event, error)
}
