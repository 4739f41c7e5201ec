package postgres

import (
	"context"
	"fmt"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const registrationColumns = `id, user_id, event_id, status, registration_date, created_at`

type RegistrationRepository struct {
	pool   *pgxpool.Pool
	events *EventRepository
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		pool:   pool,
		events: NewEventRepository(pool),
	}
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RegistrationRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.events.GetByID(ctx, eventID)
}

func (r *RegistrationRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	return r.events.GetForUpdate(ctx, eventID)
}

// FindByUserAndEvent returns the single lineage record for the pair, or nil
// when the user never registered.
func (r *RegistrationRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND event_id = $2`

	reg, err := scanRegistration(r.queryRow(ctx, query, userID, eventID))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find registration by user and event: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	reg, err := scanRegistration(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) CountByEventAndStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error) {
	return r.events.CountByStatus(ctx, eventID, status)
}

func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO registrations (id, user_id, event_id, status, registration_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		reg.ID,
		reg.UserID,
		reg.EventID,
		reg.Status,
		reg.RegistrationDate,
		reg.CreatedAt,
	)
	if err != nil {
		// The (user_id, event_id) constraint backs up the in-transaction
		// duplicate check when two first-time registrations race.
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Update(ctx context.Context, reg domain.Registration) error {
	const stmt = `UPDATE registrations SET status = $2, registration_date = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, reg.ID, reg.Status, reg.RegistrationDate)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY registration_date DESC`
	return r.list(ctx, query, userID)
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY registration_date DESC`
	return r.list(ctx, query, eventID)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func scanRegistration(row pgx.Row) (domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.Status,
		&reg.RegistrationDate,
		&reg.CreatedAt,
	)
	return reg, err
}

func (r *RegistrationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RegistrationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *RegistrationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
