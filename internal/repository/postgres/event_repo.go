package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"eventmanagement/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, name, category, description, banner_image, speaker_id, speaker_name, speaker_email,
	venue_id, booking_start_date, booking_end_date, status, rejection_reason, created_at, updated_at`

// pgExclusionViolation is the code raised when the venue-overlap exclusion
// constraint rejects a write. It is the commit-time backstop for the
// availability pre-check.
const pgExclusionViolation = "23P01"

func mapVenueConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
		return domain.ErrVenueUnavailable
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*domain.Event, error) {
	e := &domain.Event{}
	var speakerName, speakerEmail, rejectionReason sql.NullString
	err := s.Scan(
		&e.ID, &e.Name, &e.Category, &e.Description, &e.BannerImage, &e.SpeakerID,
		&speakerName, &speakerEmail,
		&e.VenueID, &e.BookingStartDate, &e.BookingEndDate, &e.Status, &rejectionReason,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if speakerName.Valid {
		e.SpeakerName = &speakerName.String
	}
	if speakerEmail.Valid {
		e.SpeakerEmail = &speakerEmail.String
	}
	if rejectionReason.Valid {
		e.RejectionReason = &rejectionReason.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, category, description, banner_image, speaker_id, speaker_name, speaker_email,
			venue_id, booking_start_date, booking_end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Category, e.Description, e.BannerImage, e.SpeakerID, e.SpeakerName, e.SpeakerEmail,
		e.VenueID, e.BookingStartDate, e.BookingEndDate, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return mapVenueConflict(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	n := 1
	add := func(clause string, value interface{}) {
		where = append(where, fmt.Sprintf(clause, n))
		args = append(args, value)
		n++
	}

	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.VenueID != "" {
		add("venue_id = $%d", filter.VenueID)
	}
	if filter.SpeakerID != "" {
		add("speaker_id = $%d", filter.SpeakerID)
	}
	if filter.From != nil {
		add("booking_start_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("booking_start_date <= $%d", *filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, pattern)
		n++
	}
	switch filter.TimeFrame {
	case domain.TimeFrameUpcoming:
		where = append(where, "booking_start_date > NOW()")
	case domain.TimeFrameOngoing:
		where = append(where, "booking_start_date <= NOW() AND booking_end_date > NOW()")
	case domain.TimeFramePast:
		where = append(where, "booking_end_date < NOW()")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events WHERE %s`, whereClause)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE %s
		ORDER BY booking_start_date ASC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, eventColumns, whereClause, n, n+1)
	args = append(args, params.Limit(), params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListBySpeakerID(ctx context.Context, speakerID string, includePrivate bool) ([]*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE speaker_id = $1`, eventColumns)
	args := []interface{}{speakerID}
	if !includePrivate {
		query += ` AND status = $2`
		args = append(args, domain.StatusPublished)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListOverlapping(ctx context.Context, venueID string, start, end time.Time, excludeEventID string) ([]*domain.Event, error) {
	// Half-open windows: [s1,e1) and [s2,e2) overlap iff s1 < e2 AND s2 < e1.
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE venue_id = $1
		  AND status IN ($2, $3)
		  AND booking_start_date < $4
		  AND booking_end_date > $5
	`, eventColumns)
	args := []interface{}{venueID, domain.StatusPublished, domain.StatusPendingApproval, end, start}
	if excludeEventID != "" {
		query += ` AND id <> $6`
		args = append(args, excludeEventID)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, category = $2, description = $3, banner_image = $4,
			speaker_name = $5, speaker_email = $6, venue_id = $7,
			booking_start_date = $8, booking_end_date = $9,
			status = $10, rejection_reason = $11, updated_at = $12
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Category, e.Description, e.BannerImage,
		e.SpeakerName, e.SpeakerEmail, e.VenueID,
		e.BookingStartDate, e.BookingEndDate,
		e.Status, e.RejectionReason, e.UpdatedAt,
		e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapVenueConflict(err)
	}
	return nil
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
