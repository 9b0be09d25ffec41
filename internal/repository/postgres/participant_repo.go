package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventregistration/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (event_id, name, email, college)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registered_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.EventID, p.Name, p.Email, p.College).
		Scan(&p.ID, &p.RegisteredAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID, search string) ([]*domain.Participant, error) {
	query := `
		SELECT id, event_id, name, email, college, registered_at
		FROM participants
		WHERE event_id = $1
		ORDER BY registered_at ASC
	`
	args := []interface{}{eventID}
	if search != "" {
		query = `
		SELECT id, event_id, name, email, college, registered_at
		FROM participants
		WHERE event_id = $1 AND (name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY registered_at ASC
	`
		args = append(args, search)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.College, &p.RegisteredAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM participants WHERE event_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *participantRepository) Delete(ctx context.Context, eventID, participantID string) error {
	query := `DELETE FROM participants WHERE id = $1 AND event_id = $2`
	result, err := r.DB.ExecContext(ctx, query, participantID, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
