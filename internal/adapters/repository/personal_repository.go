package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/ports"
)

// PersonalEventRepositoryImpl implements the PersonalEventRepository interface
type PersonalEventRepositoryImpl struct {
	db *sqlx.DB
}

// NewPersonalEventRepository creates a new personal event repository
func NewPersonalEventRepository(db *sqlx.DB) ports.PersonalEventRepository {
	return &PersonalEventRepositoryImpl{db: db}
}

func (r *PersonalEventRepositoryImpl) Create(ctx context.Context, event *entities.PersonalEvent) error {
	query := `
		INSERT INTO personal_events (id, calendar, year, month, day, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Calendar, event.Year, event.Month, event.Day,
		event.Title, event.Description, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create personal event: %w", err)
	}

	return nil
}

func (r *PersonalEventRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.PersonalEvent, error) {
	query := `
		SELECT id, calendar, year, month, day, title, description, created_at, updated_at
		FROM personal_events
		WHERE id = $1`

	var event entities.PersonalEvent
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrPersonalEventNotFound
		}
		return nil, fmt.Errorf("get personal event by id: %w", err)
	}

	return &event, nil
}

func (r *PersonalEventRepositoryImpl) Update(ctx context.Context, event *entities.PersonalEvent) error {
	query := `
		UPDATE personal_events
		SET year = $2, month = $3, day = $4, title = $5, description = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		event.ID, event.Year, event.Month, event.Day,
		event.Title, event.Description, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update personal event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update personal event: %w", err)
	}
	if rows == 0 {
		return entities.ErrPersonalEventNotFound
	}

	return nil
}

func (r *PersonalEventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM personal_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete personal event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete personal event: %w", err)
	}
	if rows == 0 {
		return entities.ErrPersonalEventNotFound
	}

	return nil
}

func (r *PersonalEventRepositoryImpl) ListByDay(ctx context.Context, calendar entities.CalendarType, year, month, day int) ([]*entities.PersonalEvent, error) {
	query := `
		SELECT id, calendar, year, month, day, title, description, created_at, updated_at
		FROM personal_events
		WHERE calendar = $1 AND year = $2 AND month = $3 AND day = $4
		ORDER BY created_at`

	events := []*entities.PersonalEvent{}
	if err := r.db.SelectContext(ctx, &events, query, calendar, year, month, day); err != nil {
		return nil, fmt.Errorf("list personal events by day: %w", err)
	}

	return events, nil
}

func (r *PersonalEventRepositoryImpl) ListByMonth(ctx context.Context, calendar entities.CalendarType, year, month int) ([]*entities.PersonalEvent, error) {
	query := `
		SELECT id, calendar, year, month, day, title, description, created_at, updated_at
		FROM personal_events
		WHERE calendar = $1 AND year = $2 AND month = $3
		ORDER BY day, created_at`

	events := []*entities.PersonalEvent{}
	if err := r.db.SelectContext(ctx, &events, query, calendar, year, month); err != nil {
		return nil, fmt.Errorf("list personal events by month: %w", err)
	}

	return events, nil
}
