package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

const (
	minParticipantNameLen = 2
	minCollegeLen         = 2
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type registrationService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	contextTimeout  time.Duration
}

// NewRegistrationService creates a RegistrationService with the given repositories.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		contextTimeout:  timeout,
	}
}

func (s *registrationService) ResolveToken(ctx context.Context, token string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.resolveToken(ctx, token)
}

func (s *registrationService) resolveToken(ctx context.Context, token string) (*domain.Event, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	event, err := s.eventRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get event by token: %w", err)
	}
	return event, nil
}

func (s *registrationService) Register(ctx context.Context, token, name, email, college string) (*domain.Participant, *domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	name = strings.TrimSpace(name)
	college = strings.TrimSpace(college)
	email = strings.ToLower(strings.TrimSpace(email))

	var fields []string
	if len(name) < minParticipantNameLen {
		fields = append(fields, fmt.Sprintf("name must be at least %d characters", minParticipantNameLen))
	}
	if !emailRegexp.MatchString(email) {
		fields = append(fields, "email must be a valid email address")
	}
	if len(college) < minCollegeLen {
		fields = append(fields, fmt.Sprintf("college must be at least %d characters", minCollegeLen))
	}
	if len(fields) > 0 {
		return nil, nil, &domain.ValidationError{Fields: fields}
	}

	participant := domain.NewParticipant(event.ID, name, email, college)
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, nil, domain.ErrAlreadyRegistered
		}
		return nil, nil, fmt.Errorf("create participant: %w", err)
	}
	return participant, event, nil
}
