package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
	"github.com/roozegaar/calendar/internal/ports"
)

// fakePersonalEventRepo is an in-memory PersonalEventRepository.
type fakePersonalEventRepo struct {
	events map[uuid.UUID]*entities.PersonalEvent
}

func newFakePersonalEventRepo() *fakePersonalEventRepo {
	return &fakePersonalEventRepo{events: make(map[uuid.UUID]*entities.PersonalEvent)}
}

func (r *fakePersonalEventRepo) Create(_ context.Context, event *entities.PersonalEvent) error {
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakePersonalEventRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.PersonalEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, entities.ErrPersonalEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakePersonalEventRepo) Update(_ context.Context, event *entities.PersonalEvent) error {
	if _, ok := r.events[event.ID]; !ok {
		return entities.ErrPersonalEventNotFound
	}
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakePersonalEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.events[id]; !ok {
		return entities.ErrPersonalEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakePersonalEventRepo) ListByDay(_ context.Context, calendar entities.CalendarType, year, month, day int) ([]*entities.PersonalEvent, error) {
	out := []*entities.PersonalEvent{}
	for _, e := range r.events {
		if e.Calendar == calendar && e.Year == year && e.Month == month && e.Day == day {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePersonalEventRepo) ListByMonth(_ context.Context, calendar entities.CalendarType, year, month int) ([]*entities.PersonalEvent, error) {
	out := []*entities.PersonalEvent{}
	for _, e := range r.events {
		if e.Calendar == calendar && e.Year == year && e.Month == month {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func newPersonalServiceForTest() (*PersonalEventService, *fakePersonalEventRepo) {
	repo := newFakePersonalEventRepo()
	return NewPersonalEventService(repo, logger.NewNop()), repo
}

func TestCreatePersonalEvent(t *testing.T) {
	svc, repo := newPersonalServiceForTest()

	desc := "جشن تولد"
	event, err := svc.Create(context.Background(), ports.CreatePersonalEventRequest{
		Calendar:    entities.CalendarPersian,
		Year:        1403,
		Month:       7,
		Day:         15,
		Title:       "تولد",
		Description: &desc,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "1403-7-15", event.DateKey())
	assert.False(t, event.CreatedAt.IsZero())
	assert.Len(t, repo.events, 1)
}

func TestCreatePersonalEventValidatesCalendarDate(t *testing.T) {
	svc, repo := newPersonalServiceForTest()

	// 1402 is not a leap year, Esfand 30 does not exist.
	_, err := svc.Create(context.Background(), ports.CreatePersonalEventRequest{
		Calendar: entities.CalendarPersian,
		Year:     1402,
		Month:    12,
		Day:      30,
		Title:    "x",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidDate)

	_, err = svc.Create(context.Background(), ports.CreatePersonalEventRequest{
		Calendar: entities.CalendarGregorian,
		Year:     2023,
		Month:    2,
		Day:      29,
		Title:    "x",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidDate)

	assert.Empty(t, repo.events)
}

func TestUpdatePersonalEventAppliesPartialFields(t *testing.T) {
	svc, _ := newPersonalServiceForTest()

	created, err := svc.Create(context.Background(), ports.CreatePersonalEventRequest{
		Calendar: entities.CalendarGregorian,
		Year:     2024,
		Month:    10,
		Day:      3,
		Title:    "dentist",
	})
	require.NoError(t, err)

	newTitle := "dentist (rescheduled)"
	newDay := 10
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdatePersonalEventRequest{
		Title: &newTitle,
		Day:   &newDay,
	})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, 10, updated.Day)
	assert.Equal(t, 2024, updated.Year, "untouched fields survive")
	assert.Equal(t, 10, updated.Month)
}

func TestUpdatePersonalEventRevalidatesDate(t *testing.T) {
	svc, _ := newPersonalServiceForTest()

	created, err := svc.Create(context.Background(), ports.CreatePersonalEventRequest{
		Calendar: entities.CalendarPersian,
		Year:     1403,
		Month:    12,
		Day:      29,
		Title:    "x",
	})
	require.NoError(t, err)

	badYear := 1402
	badDay := 30
	_, err = svc.Update(context.Background(), created.ID, ports.UpdatePersonalEventRequest{
		Year: &badYear,
		Day:  &badDay,
	})
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestUpdateMissingPersonalEvent(t *testing.T) {
	svc, _ := newPersonalServiceForTest()

	title := "x"
	_, err := svc.Update(context.Background(), uuid.New(), ports.UpdatePersonalEventRequest{Title: &title})
	assert.ErrorIs(t, err, entities.ErrPersonalEventNotFound)
}

func TestDeletePersonalEvent(t *testing.T) {
	svc, repo := newPersonalServiceForTest()

	created, err := svc.Create(context.Background(), ports.CreatePersonalEventRequest{
		Calendar: entities.CalendarGregorian,
		Year:     2024,
		Month:    1,
		Day:      1,
		Title:    "x",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.events)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), entities.ErrPersonalEventNotFound)
}

func TestListPersonalEventsValidatesInput(t *testing.T) {
	svc, _ := newPersonalServiceForTest()

	_, err := svc.ListByDay(context.Background(), entities.CalendarPersian, 1403, 7, 31)
	assert.ErrorIs(t, err, entities.ErrInvalidDate, "Mehr has 30 days")

	_, err = svc.ListByMonth(context.Background(), entities.CalendarPersian, 1403, 13)
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestListPersonalEventsByDayAndMonth(t *testing.T) {
	svc, _ := newPersonalServiceForTest()

	for _, day := range []int{3, 3, 14} {
		_, err := svc.Create(context.Background(), ports.CreatePersonalEventRequest{
			Calendar: entities.CalendarPersian,
			Year:     1403,
			Month:    7,
			Day:      day,
			Title:    "event",
		})
		require.NoError(t, err)
	}

	byDay, err := svc.ListByDay(context.Background(), entities.CalendarPersian, 1403, 7, 3)
	require.NoError(t, err)
	assert.Len(t, byDay, 2)

	byMonth, err := svc.ListByMonth(context.Background(), entities.CalendarPersian, 1403, 7)
	require.NoError(t, err)
	assert.Len(t, byMonth, 3)

	other, err := svc.ListByMonth(context.Background(), entities.CalendarGregorian, 2024, 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}
