package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/domain/jalali"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
	"github.com/roozegaar/calendar/internal/ports"
)

// EventsService mediates all communication with the remote events API,
// applies the time-boxed cache, and normalizes the two upstream response
// shapes into one canonical per-day index.
type EventsService struct {
	client ports.EventsClient
	cache  ports.EventCache
	logger *logger.Logger
}

// NewEventsService creates a new events service
func NewEventsService(client ports.EventsClient, cache ports.EventCache, appLogger *logger.Logger) *EventsService {
	return &EventsService{
		client: client,
		cache:  cache,
		logger: appLogger,
	}
}

// FetchMonthly returns all events of one month, from cache when fresh.
// Failures never propagate: the result carries success=false and zero counts.
func (s *EventsService) FetchMonthly(ctx context.Context, calendar entities.CalendarType, yearMonth string, lang entities.Language) *entities.EventsPayload {
	key := fmt.Sprintf("monthly-%s-%s-%s", calendar, yearMonth, lang)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	payload, err := s.client.FetchMonthly(ctx, calendar, yearMonth, lang)
	if err != nil {
		s.logger.Warnw("monthly events fetch failed", "calendar", calendar, "year_month", yearMonth, "error", err)
		return emptyPayload(entities.QueryMonthly, calendar, lang, err, func(p *entities.EventsPayload) {
			p.YearMonth = yearMonth
			p.EventsByDay = map[string][]entities.Event{}
		})
	}

	s.cache.Set(key, payload)
	return payload
}

// FetchDaily returns the events of a single day. date is YYYY/MM/DD.
func (s *EventsService) FetchDaily(ctx context.Context, calendar entities.CalendarType, date string, lang entities.Language) *entities.EventsPayload {
	key := fmt.Sprintf("daily-%s-%s-%s", calendar, date, lang)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	payload, err := s.client.FetchDaily(ctx, calendar, date, lang)
	if err != nil {
		s.logger.Warnw("daily events fetch failed", "calendar", calendar, "date", date, "error", err)
		return emptyPayload(entities.QueryDaily, calendar, lang, err, func(p *entities.EventsPayload) {
			p.Date = date
			p.Events = []entities.Event{}
		})
	}

	s.cache.Set(key, payload)
	return payload
}

// FetchRange returns all events between start and end inclusive.
func (s *EventsService) FetchRange(ctx context.Context, calendar entities.CalendarType, start, end string, lang entities.Language) *entities.EventsPayload {
	key := fmt.Sprintf("range-%s-%s-%s-%s", calendar, start, end, lang)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	payload, err := s.client.FetchRange(ctx, calendar, start, end, lang)
	if err != nil {
		s.logger.Warnw("range events fetch failed", "calendar", calendar, "start", start, "end", end, "error", err)
		return emptyPayload(entities.QueryRange, calendar, lang, err, func(p *entities.EventsPayload) {
			p.Start = start
			p.End = end
			p.EventsByDay = map[string][]entities.Event{}
		})
	}

	s.cache.Set(key, payload)
	return payload
}

// CurrentMonthEvents fetches the displayed month's events in its own calendar
// and the events of the exact equivalent date range in the other calendar.
// A month of one calendar almost never aligns with a month of the other, so
// the secondary query runs in range mode over the converted first and last
// day rather than a naive month-number translation.
func (s *EventsService) CurrentMonthEvents(ctx context.Context, req ports.CurrentMonthRequest) (*entities.MonthEvents, error) {
	start, end, err := s.secondaryRange(req.Calendar, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	var yearMonth string
	if req.Calendar == entities.CalendarPersian {
		yearMonth = entities.PersianDate{Year: req.Year, Month: req.Month, Day: 1}.YearMonth()
	} else {
		yearMonth = fmt.Sprintf("%d/%02d", req.Year, req.Month)
	}

	// Main month first, then the secondary range.
	main := s.FetchMonthly(ctx, req.Calendar, yearMonth, languageFor(req.Calendar, req.Language))

	secondary := s.FetchRange(ctx, req.Calendar.Other(), start, end, languageFor(req.Calendar.Other(), req.Language))

	return &entities.MonthEvents{
		Main:      s.Normalize(main),
		Secondary: s.Normalize(secondary),
	}, nil
}

// secondaryRange converts day 1 and the last day of the given month into the
// other calendar system, yielding the exact equivalent range.
func (s *EventsService) secondaryRange(calendar entities.CalendarType, year, month int) (start, end string, err error) {
	if calendar == entities.CalendarPersian {
		first, err := jalali.ToGregorian(entities.PersianDate{Year: year, Month: month, Day: 1})
		if err != nil {
			return "", "", err
		}
		last, err := jalali.ToGregorian(jalali.LastOfMonth(year, month))
		if err != nil {
			return "", "", err
		}
		return jalali.FormatGregorian(first), jalali.FormatGregorian(last), nil
	}

	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("%w: month %d", entities.ErrInvalidDate, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return jalali.ToPersian(first).String(), jalali.ToPersian(last).String(), nil
}

// Normalize builds the canonical per-day index from a raw payload. Shape
// detection follows the upstream contract: events_by_month present and
// events_by_day absent means month-grouped, anything else is day-grouped
// (possibly empty).
func (s *EventsService) Normalize(payload *entities.EventsPayload) *entities.NormalizedEvents {
	n := &entities.NormalizedEvents{
		Success:       payload.Success,
		Calendar:      payload.Calendar,
		Language:      payload.Language,
		FailureReason: payload.FailureReason,
		Days:          []entities.DayEvents{},
	}

	switch {
	case payload.EventsByMonth != nil && payload.EventsByDay == nil:
		n.Days = flattenByMonth(payload.EventsByMonth)
	case payload.EventsByDay != nil:
		n.Days = dedupeByDay(payload.EventsByDay)
	}

	for _, day := range n.Days {
		n.TotalEvents += len(day.Events)
		for _, e := range day.Events {
			if e.IsHoliday {
				n.TotalHolidays++
			}
		}
	}
	return n
}

// ClearCache discards all cached responses unconditionally.
func (s *EventsService) ClearCache() {
	s.cache.Clear()
	s.logger.Info("events API cache cleared")
}

// flattenByMonth converts a month-grouped response into per-day entries with
// composite "M/D" keys, months ascending then days ascending, attaching the
// originating month and day to each record.
func flattenByMonth(byMonth map[string]map[string][]entities.Event) []entities.DayEvents {
	days := []entities.DayEvents{}

	for _, month := range sortedNumericKeys(byMonth) {
		monthEvents := byMonth[strconv.Itoa(month)]
		for _, day := range sortedNumericKeys(monthEvents) {
			dayEvents := monthEvents[strconv.Itoa(day)]
			if dayEvents == nil {
				continue
			}
			tagged := make([]entities.Event, len(dayEvents))
			for i, e := range dayEvents {
				e.Month = month
				e.Day = day
				tagged[i] = e
			}
			days = append(days, entities.DayEvents{
				Key:    fmt.Sprintf("%d/%d", month, day),
				Events: tagged,
			})
		}
	}
	return days
}

// dedupeByDay keeps a day-grouped response as-is, dropping records that
// repeat the (title, description, type, is_holiday) tuple within one day.
// First occurrence wins, order is otherwise preserved.
func dedupeByDay(byDay map[string][]entities.Event) []entities.DayEvents {
	days := []entities.DayEvents{}

	for _, day := range sortedNumericKeys(byDay) {
		key := strconv.Itoa(day)
		seen := make(map[string]struct{})
		unique := []entities.Event{}
		for _, e := range byDay[key] {
			id := e.IdentityKey()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			unique = append(unique, e)
		}
		days = append(days, entities.DayEvents{Key: key, Events: unique})
	}
	return days
}

// sortedNumericKeys returns the map's keys as ascending integers, skipping
// keys that are not numeric.
func sortedNumericKeys[V any](m map[string]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		keys = append(keys, n)
	}
	sort.Ints(keys)
	return keys
}

// languageFor maps a calendar system to the language its events are served
// in, unless the UI language pins both to one.
func languageFor(calendar entities.CalendarType, uiLang entities.Language) entities.Language {
	if calendar == entities.CalendarPersian && uiLang == entities.LanguageFa {
		return entities.LanguageFa
	}
	if calendar == entities.CalendarGregorian && uiLang == entities.LanguageEn {
		return entities.LanguageEn
	}
	return uiLang
}

// emptyPayload builds the well-formed empty result returned when a fetch
// fails. Failed results are never written to the cache, so the next request
// for the same key retries the network.
func emptyPayload(qt entities.QueryType, calendar entities.CalendarType, lang entities.Language, cause error, fill func(*entities.EventsPayload)) *entities.EventsPayload {
	p := &entities.EventsPayload{
		Success:       false,
		Type:          qt,
		Calendar:      calendar,
		Language:      lang,
		FailureReason: cause.Error(),
	}
	fill(p)
	return p
}
