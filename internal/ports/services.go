package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/roozegaar/calendar/internal/domain/entities"
)

// EventsService mediates all communication with the remote events API.
// Its fetch methods never fail: network, upstream and decoding errors are
// absorbed into well-formed payloads carrying success=false and zero counts.
type EventsService interface {
	FetchMonthly(ctx context.Context, calendar entities.CalendarType, yearMonth string, lang entities.Language) *entities.EventsPayload
	FetchDaily(ctx context.Context, calendar entities.CalendarType, date string, lang entities.Language) *entities.EventsPayload
	FetchRange(ctx context.Context, calendar entities.CalendarType, start, end string, lang entities.Language) *entities.EventsPayload
	CurrentMonthEvents(ctx context.Context, req CurrentMonthRequest) (*entities.MonthEvents, error)
	Normalize(payload *entities.EventsPayload) *entities.NormalizedEvents
	ClearCache()
}

// CalendarService computes calendar-grid metadata and cross-calendar
// conversions for the UI layer.
type CalendarService interface {
	MonthGrid(req MonthGridRequest) (*MonthGrid, error)
	Convert(calendar entities.CalendarType, date string) (*ConvertedDate, error)
	Today(lang entities.Language) *ConvertedDate
}

// PersonalEventService manages user-authored events.
type PersonalEventService interface {
	Create(ctx context.Context, req CreatePersonalEventRequest) (*entities.PersonalEvent, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.PersonalEvent, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePersonalEventRequest) (*entities.PersonalEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDay(ctx context.Context, calendar entities.CalendarType, year, month, day int) ([]*entities.PersonalEvent, error)
	ListByMonth(ctx context.Context, calendar entities.CalendarType, year, month int) ([]*entities.PersonalEvent, error)
}

// Request/Response Types

// CurrentMonthRequest identifies the month currently displayed by the UI.
type CurrentMonthRequest struct {
	Calendar entities.CalendarType `query:"calendar" validate:"required,oneof=persian gregorian"`
	Year     int                   `query:"year" validate:"required"`
	Month    int                   `query:"month" validate:"required,min=1,max=12"`
	Language entities.Language     `query:"lang" validate:"required,oneof=fa en"`
}

// MonthGridRequest asks for the grid metadata of one month.
type MonthGridRequest struct {
	Calendar entities.CalendarType `query:"calendar" validate:"required,oneof=persian gregorian"`
	Year     int                   `query:"year" validate:"required"`
	Month    int                   `query:"month" validate:"required,min=1,max=12"`
	Language entities.Language     `query:"lang" validate:"omitempty,oneof=fa en"`
}

// MonthGrid carries everything the UI needs to lay out one month: the number
// of day cells and the Saturday-first offset of the first cell.
type MonthGrid struct {
	Calendar     entities.CalendarType `json:"calendar"`
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	MonthName    string                `json:"month_name"`
	DaysInMonth  int                   `json:"days_in_month"`
	FirstWeekday int                   `json:"first_weekday"`
	LeapYear     bool                  `json:"leap_year"`
}

// ConvertedDate carries one instant expressed in both calendar systems.
type ConvertedDate struct {
	Persian   entities.PersianDate `json:"persian"`
	Gregorian string               `json:"gregorian"`
	Weekday   int                  `json:"weekday"` // Saturday-first offset
}

// Personal event related types
type CreatePersonalEventRequest struct {
	Calendar    entities.CalendarType `json:"calendar" validate:"required,oneof=persian gregorian"`
	Year        int                   `json:"year" validate:"required"`
	Month       int                   `json:"month" validate:"required,min=1,max=12"`
	Day         int                   `json:"day" validate:"required,min=1,max=31"`
	Title       string                `json:"title" validate:"required,max=200"`
	Description *string               `json:"description" validate:"omitempty,max=2000"`
}

type UpdatePersonalEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Year        *int    `json:"year"`
	Month       *int    `json:"month" validate:"omitempty,min=1,max=12"`
	Day         *int    `json:"day" validate:"omitempty,min=1,max=31"`
}
