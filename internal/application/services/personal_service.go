package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/domain/jalali"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
	"github.com/roozegaar/calendar/internal/ports"
)

// PersonalEventService manages user-authored events.
type PersonalEventService struct {
	repo   ports.PersonalEventRepository
	logger *logger.Logger
}

// NewPersonalEventService creates a new personal event service
func NewPersonalEventService(repo ports.PersonalEventRepository, appLogger *logger.Logger) *PersonalEventService {
	return &PersonalEventService{
		repo:   repo,
		logger: appLogger,
	}
}

// Create validates the date against its calendar system and stores the event.
func (s *PersonalEventService) Create(ctx context.Context, req ports.CreatePersonalEventRequest) (*entities.PersonalEvent, error) {
	if err := validateDate(req.Calendar, req.Year, req.Month, req.Day); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &entities.PersonalEvent{
		ID:          uuid.New(),
		Calendar:    req.Calendar,
		Year:        req.Year,
		Month:       req.Month,
		Day:         req.Day,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create personal event: %w", err)
	}

	s.logger.Infow("personal event created", "event_id", event.ID, "date_key", event.DateKey())
	return event, nil
}

// Get retrieves a personal event by ID.
func (s *PersonalEventService) Get(ctx context.Context, id uuid.UUID) (*entities.PersonalEvent, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies the non-nil fields of req to an existing event.
func (s *PersonalEventService) Update(ctx context.Context, id uuid.UUID, req ports.UpdatePersonalEventRequest) (*entities.PersonalEvent, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Year != nil {
		event.Year = *req.Year
	}
	if req.Month != nil {
		event.Month = *req.Month
	}
	if req.Day != nil {
		event.Day = *req.Day
	}

	if err := validateDate(event.Calendar, event.Year, event.Month, event.Day); err != nil {
		return nil, err
	}

	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update personal event: %w", err)
	}

	s.logger.Infow("personal event updated", "event_id", event.ID)
	return event, nil
}

// Delete removes a personal event.
func (s *PersonalEventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("personal event deleted", "event_id", id)
	return nil
}

// ListByDay returns the events pinned to one day of one calendar system.
func (s *PersonalEventService) ListByDay(ctx context.Context, calendar entities.CalendarType, year, month, day int) ([]*entities.PersonalEvent, error) {
	if err := validateDate(calendar, year, month, day); err != nil {
		return nil, err
	}
	return s.repo.ListByDay(ctx, calendar, year, month, day)
}

// ListByMonth returns the events of one month of one calendar system.
func (s *PersonalEventService) ListByMonth(ctx context.Context, calendar entities.CalendarType, year, month int) ([]*entities.PersonalEvent, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", entities.ErrInvalidDate, month)
	}
	return s.repo.ListByMonth(ctx, calendar, year, month)
}

// validateDate checks a date against the calendar system it belongs to.
func validateDate(calendar entities.CalendarType, year, month, day int) error {
	switch calendar {
	case entities.CalendarPersian:
		return jalali.Validate(entities.PersianDate{Year: year, Month: month, Day: day})
	case entities.CalendarGregorian:
		g := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if g.Year() != year || int(g.Month()) != month || g.Day() != day {
			return fmt.Errorf("%w: %d/%02d/%02d", entities.ErrInvalidDate, year, month, day)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", entities.ErrInvalidCalendarType, calendar)
	}
}
