package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"eventregistration/internal/domain"
)

type mockEventRepository struct {
	events        map[string]*domain.Event
	eventsByToken map[string]*domain.Event
	withCounts    []*domain.EventWithCount
	createErrs    []error
	createCalls   int
	getErr        error
	listErr       error
	deleteErr     error
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	m.createCalls++
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	e.ID = fmt.Sprintf("ev-%d", m.createCalls)
	e.CreatedAt = time.Now()
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetByToken(ctx context.Context, token string) (*domain.Event, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	ev, ok := m.eventsByToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListWithCounts(ctx context.Context) ([]*domain.EventWithCount, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.withCounts, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

type mockParticipantRepository struct {
	mu           sync.Mutex
	participants map[string][]*domain.Participant
	emails       map[string]bool
	createErr    error
	listErr      error
	deleteErr    error
	createCalls  int
}

func (m *mockParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	key := p.EventID + ":" + p.Email
	if m.emails == nil {
		m.emails = make(map[string]bool)
	}
	if m.emails[key] {
		return domain.ErrAlreadyRegistered
	}
	m.emails[key] = true
	p.ID = fmt.Sprintf("p-%d", m.createCalls)
	p.RegisteredAt = time.Now()
	if m.participants == nil {
		m.participants = make(map[string][]*domain.Participant)
	}
	m.participants[p.EventID] = append(m.participants[p.EventID], p)
	return nil
}

func (m *mockParticipantRepository) ListByEventID(ctx context.Context, eventID, search string) ([]*domain.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	if search == "" {
		return m.participants[eventID], nil
	}
	needle := strings.ToLower(search)
	var out []*domain.Participant
	for _, p := range m.participants[eventID] {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Email), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockParticipantRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.participants[eventID]), nil
}

func (m *mockParticipantRepository) Delete(ctx context.Context, eventID, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	list := m.participants[eventID]
	for i, p := range list {
		if p.ID == participantID {
			m.participants[eventID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type mockTokenGenerator struct {
	tokens []string
	err    error
	calls  int
}

func (m *mockTokenGenerator) Generate() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.calls++
	if len(m.tokens) > 0 {
		tok := m.tokens[0]
		m.tokens = m.tokens[1:]
		return tok, nil
	}
	return fmt.Sprintf("tok-%d", m.calls), nil
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		eventRepo := &mockEventRepository{}
		tokenGen := &mockTokenGenerator{}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, tokenGen, time.Second)

		event, err := svc.CreateEvent(ctx, "  TechFest 2026  ", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.ID == "" {
			t.Fatalf("expected event ID to be set")
		}
		if event.Name != "TechFest 2026" {
			t.Fatalf("expected trimmed name, got %q", event.Name)
		}
		if event.RegistrationToken != "tok-1" {
			t.Fatalf("expected token tok-1, got %q", event.RegistrationToken)
		}
	})

	t.Run("retries on duplicate token then succeeds", func(t *testing.T) {
		eventRepo := &mockEventRepository{
			createErrs: []error{domain.ErrDuplicateToken, domain.ErrDuplicateToken},
		}
		tokenGen := &mockTokenGenerator{}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, tokenGen, time.Second)

		event, err := svc.CreateEvent(ctx, "TechFest", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eventRepo.createCalls != 3 {
			t.Fatalf("expected 3 create attempts, got %d", eventRepo.createCalls)
		}
		if tokenGen.calls != 3 {
			t.Fatalf("expected a fresh token per attempt, got %d generations", tokenGen.calls)
		}
		if event.RegistrationToken != "tok-3" {
			t.Fatalf("expected token from last attempt, got %q", event.RegistrationToken)
		}
	})

	t.Run("gives up after repeated duplicate tokens", func(t *testing.T) {
		eventRepo := &mockEventRepository{
			createErrs: []error{
				domain.ErrDuplicateToken,
				domain.ErrDuplicateToken,
				domain.ErrDuplicateToken,
				domain.ErrDuplicateToken,
				domain.ErrDuplicateToken,
			},
		}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		_, err := svc.CreateEvent(ctx, "TechFest", nil, nil)
		if !errors.Is(err, domain.ErrTokenGenerationExhausted) {
			t.Fatalf("expected ErrTokenGenerationExhausted, got %v", err)
		}
		if eventRepo.createCalls != 5 {
			t.Fatalf("expected 5 create attempts, got %d", eventRepo.createCalls)
		}
	})

	t.Run("rejects short name", func(t *testing.T) {
		eventRepo := &mockEventRepository{}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		_, err := svc.CreateEvent(ctx, " ab ", nil, nil)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if eventRepo.createCalls != 0 {
			t.Fatalf("expected no create attempts, got %d", eventRepo.createCalls)
		}
	})

	t.Run("generator error", func(t *testing.T) {
		tokenGen := &mockTokenGenerator{err: errors.New("entropy exhausted")}
		svc := NewEventService(&mockEventRepository{}, &mockParticipantRepository{}, tokenGen, time.Second)

		_, err := svc.CreateEvent(ctx, "TechFest", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "generate registration token") {
			t.Fatalf("expected wrapped generator error, got %v", err)
		}
	})

	t.Run("repo error is not retried", func(t *testing.T) {
		eventRepo := &mockEventRepository{createErrs: []error{sql.ErrConnDone}}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		_, err := svc.CreateEvent(ctx, "TechFest", nil, nil)
		if err == nil || errors.Is(err, domain.ErrTokenGenerationExhausted) {
			t.Fatalf("expected wrapped repo error, got %v", err)
		}
		if eventRepo.createCalls != 1 {
			t.Fatalf("expected a single create attempt, got %d", eventRepo.createCalls)
		}
	})
}

func TestEventService_Dashboard(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		eventRepo *mockEventRepository
		wantCount int
		wantErr   bool
	}{
		{
			name: "events with counts",
			eventRepo: &mockEventRepository{
				withCounts: []*domain.EventWithCount{
					{Event: &domain.Event{ID: "ev-1", Name: "TechFest"}, ParticipantCount: 12},
					{Event: &domain.Event{ID: "ev-2", Name: "Hackathon"}, ParticipantCount: 0},
				},
			},
			wantCount: 2,
			wantErr:   false,
		},
		{
			name:      "no events returns empty slice",
			eventRepo: &mockEventRepository{},
			wantCount: 0,
			wantErr:   false,
		},
		{
			name:      "repo error",
			eventRepo: &mockEventRepository{listErr: errors.New("db error")},
			wantCount: 0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(tt.eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

			got, err := svc.Dashboard(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got=%v (err=%v)", tt.wantErr, err != nil, err)
			}
			if err != nil {
				return
			}
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != tt.wantCount {
				t.Fatalf("expected %d results, got %d", tt.wantCount, len(got))
			}
		})
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		eventRepo := &mockEventRepository{
			events: map[string]*domain.Event{"ev-1": {ID: "ev-1", Name: "TechFest"}},
		}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		if err := svc.DeleteEvent(ctx, "ev-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := eventRepo.events["ev-1"]; ok {
			t.Fatalf("expected event to be deleted")
		}
	})

	t.Run("not found", func(t *testing.T) {
		eventRepo := &mockEventRepository{events: map[string]*domain.Event{}}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		if err := svc.DeleteEvent(ctx, "ev-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		eventRepo := &mockEventRepository{deleteErr: errors.New("db error")}
		svc := NewEventService(eventRepo, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		err := svc.DeleteEvent(ctx, "ev-1")
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected wrapped repo error, got %v", err)
		}
	})
}

func TestEventService_ListParticipants(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{ID: "ev-1", Name: "TechFest"}

	t.Run("missing event", func(t *testing.T) {
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{}}, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		_, err := svc.ListParticipants(ctx, "ev-missing", "")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("all participants", func(t *testing.T) {
		participantRepo := &mockParticipantRepository{
			participants: map[string][]*domain.Participant{
				"ev-1": {
					{ID: "p-1", EventID: "ev-1", Name: "Asha Rao", Email: "asha@example.com"},
					{ID: "p-2", EventID: "ev-1", Name: "Vikram Iyer", Email: "vikram@example.com"},
				},
			},
		}
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}, participantRepo, &mockTokenGenerator{}, time.Second)

		got, err := svc.ListParticipants(ctx, "ev-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 participants, got %d", len(got))
		}
	})

	t.Run("search filters by name or email", func(t *testing.T) {
		participantRepo := &mockParticipantRepository{
			participants: map[string][]*domain.Participant{
				"ev-1": {
					{ID: "p-1", EventID: "ev-1", Name: "Asha Rao", Email: "asha@example.com"},
					{ID: "p-2", EventID: "ev-1", Name: "Vikram Iyer", Email: "vikram@example.com"},
				},
			},
		}
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}, participantRepo, &mockTokenGenerator{}, time.Second)

		got, err := svc.ListParticipants(ctx, "ev-1", "  asha ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "p-1" {
			t.Fatalf("expected only p-1, got %v", got)
		}
	})

	t.Run("event with no participants returns empty slice", func(t *testing.T) {
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		got, err := svc.ListParticipants(ctx, "ev-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty slice, got %v", got)
		}
	})

	t.Run("participant repo error", func(t *testing.T) {
		participantRepo := &mockParticipantRepository{listErr: errors.New("db error")}
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}, participantRepo, &mockTokenGenerator{}, time.Second)

		if _, err := svc.ListParticipants(ctx, "ev-1", ""); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestEventService_RemoveParticipant(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{ID: "ev-1", Name: "TechFest"}

	t.Run("success", func(t *testing.T) {
		participantRepo := &mockParticipantRepository{
			participants: map[string][]*domain.Participant{
				"ev-1": {{ID: "p-1", EventID: "ev-1", Name: "Asha Rao", Email: "asha@example.com"}},
			},
		}
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}, participantRepo, &mockTokenGenerator{}, time.Second)

		if err := svc.RemoveParticipant(ctx, "ev-1", "p-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(participantRepo.participants["ev-1"]) != 0 {
			t.Fatalf("expected participant to be removed")
		}
	})

	t.Run("missing event", func(t *testing.T) {
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{}}, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		if err := svc.RemoveParticipant(ctx, "ev-missing", "p-1"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing participant", func(t *testing.T) {
		svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"ev-1": event}}, &mockParticipantRepository{}, &mockTokenGenerator{}, time.Second)

		if err := svc.RemoveParticipant(ctx, "ev-1", "p-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
