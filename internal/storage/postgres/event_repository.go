package postgres

import (
	"context"
	"fmt"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, title, description, date, location, total_seats, status, organizer_id, created_at, updated_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, title, description, date, location, total_seats, status, organizer_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.TotalSeats,
		event.Status,
		event.OrganizerID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate locks the event row for the rest of the transaction. Every
// seat-affecting write starts here so capacity checks are serialized per event.
func (r *EventRepository) GetForUpdate(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET title = $2, description = $3, date = $4, location = $5, total_seats = $6, status = $7, updated_at = $8
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.TotalSeats,
		event.Status,
		event.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// CountRegistrations counts registration rows in any status. Used by the
// delete guard, which blocks while any history exists.
func (r *EventRepository) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1`

	var count int
	if err := r.queryRow(ctx, query, eventID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2`

	var count int
	if err := r.queryRow(ctx, query, eventID, status).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count registrations by status: %w", err)
	}
	return count, nil
}

func (r *EventRepository) getOne(ctx context.Context, query, id string) (domain.Event, error) {
	event, err := scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.Location,
		&e.TotalSeats,
		&e.Status,
		&e.OrganizerID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
