package postgres

import (
	"context"
	"database/sql"

	"eventmanagement/internal/domain"
)

type speakerInvitationRepository struct {
	DB *sql.DB
}

func NewSpeakerInvitationRepository(db *sql.DB) domain.SpeakerInvitationRepository {
	return &speakerInvitationRepository{
		DB: db,
	}
}

func (r *speakerInvitationRepository) Create(ctx context.Context, inv *domain.SpeakerInvitation) error {
	query := `
		INSERT INTO speaker_invitations (event_id, email, sent_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.EventID, inv.Email, inv.SentAt).Scan(&inv.ID)
}

func (r *speakerInvitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SpeakerInvitation, error) {
	query := `
		SELECT id, event_id, email, sent_at
		FROM speaker_invitations
		WHERE event_id = $1
		ORDER BY sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := make([]*domain.SpeakerInvitation, 0)
	for rows.Next() {
		inv := &domain.SpeakerInvitation{}
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.Email, &inv.SentAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *speakerInvitationRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	query := `DELETE FROM speaker_invitations WHERE event_id = $1`
	result, err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
