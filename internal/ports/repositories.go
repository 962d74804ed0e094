package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/roozegaar/calendar/internal/domain/entities"
)

// PersonalEventRepository defines the interface for personal event storage.
type PersonalEventRepository interface {
	Create(ctx context.Context, event *entities.PersonalEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PersonalEvent, error)
	Update(ctx context.Context, event *entities.PersonalEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDay(ctx context.Context, calendar entities.CalendarType, year, month, day int) ([]*entities.PersonalEvent, error)
	ListByMonth(ctx context.Context, calendar entities.CalendarType, year, month int) ([]*entities.PersonalEvent, error)
}

// EventCache defines the interface for the time-boxed response cache.
// Get treats stale entries as misses; they are overwritten by the next Set
// rather than proactively evicted.
type EventCache interface {
	Get(key string) (*entities.EventsPayload, bool)
	Set(key string, payload *entities.EventsPayload)
	Clear()
	Len() int
}

// EventsClient defines the interface for the remote read-only events API.
// Errors are returned raw here; the events service is responsible for
// absorbing them into empty-result payloads.
type EventsClient interface {
	FetchMonthly(ctx context.Context, calendar entities.CalendarType, yearMonth string, lang entities.Language) (*entities.EventsPayload, error)
	FetchDaily(ctx context.Context, calendar entities.CalendarType, date string, lang entities.Language) (*entities.EventsPayload, error)
	FetchRange(ctx context.Context, calendar entities.CalendarType, start, end string, lang entities.Language) (*entities.EventsPayload, error)
}
