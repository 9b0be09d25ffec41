package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventregistration/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, event_date, registration_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Description, e.Date, e.RegistrationToken).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateToken
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, event_date, registration_token, created_at
		FROM events
		WHERE id = $1
	`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByToken(ctx context.Context, token string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, event_date, registration_token, created_at
		FROM events
		WHERE registration_token = $1
	`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, token))
}

func (r *eventRepository) scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	var dateNull sql.NullTime
	err := row.Scan(&e.ID, &e.Name, &descNull, &dateNull, &e.RegistrationToken, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	return e, nil
}

func (r *eventRepository) ListWithCounts(ctx context.Context) ([]*domain.EventWithCount, error) {
	query := `
		SELECT e.id, e.name, e.description, e.event_date, e.registration_token, e.created_at, COUNT(p.id)
		FROM events e
		LEFT JOIN participants p ON p.event_id = e.id
		GROUP BY e.id
		ORDER BY e.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.EventWithCount, 0)
	for rows.Next() {
		e := &domain.Event{}
		var descNull sql.NullString
		var dateNull sql.NullTime
		var count int
		if err := rows.Scan(&e.ID, &e.Name, &descNull, &dateNull, &e.RegistrationToken, &e.CreatedAt, &count); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		if dateNull.Valid {
			e.Date = &dateNull.Time
		}
		events = append(events, &domain.EventWithCount{Event: e, ParticipantCount: count})
	}
	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
