package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

const (
	minEventNameLen = 3
	maxTokenRetries = 5
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	tokenGen        domain.TokenGenerator
	contextTimeout  time.Duration
}

// NewEventService creates an EventService with the given repositories and token generator.
func NewEventService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	tokenGen domain.TokenGenerator,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		tokenGen:        tokenGen,
		contextTimeout:  timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, name string, description *string, date *time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if len(name) < minEventNameLen {
		return nil, &domain.ValidationError{Fields: []string{fmt.Sprintf("name must be at least %d characters", minEventNameLen)}}
	}

	// Token collisions surface as a unique violation on insert, so retry with a
	// fresh token instead of checking existence up front.
	for attempt := 0; attempt < maxTokenRetries; attempt++ {
		token, err := s.tokenGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate registration token: %w", err)
		}

		event := domain.NewEvent(name, description, date, token)
		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			return event, nil
		}
		if errors.Is(err, domain.ErrDuplicateToken) {
			continue
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return nil, domain.ErrTokenGenerationExhausted
}

func (s *eventService) Dashboard(ctx context.Context) ([]*domain.EventWithCount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithCount{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Participants go with the event via ON DELETE CASCADE.
	err := s.eventRepo.Delete(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListParticipants(ctx context.Context, eventID, search string) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	participants, err := s.participantRepo.ListByEventID(ctx, eventID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return participants, nil
}

func (s *eventService) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	err := s.participantRepo.Delete(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}
