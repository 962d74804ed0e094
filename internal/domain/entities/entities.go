package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidCalendarType   = errors.New("invalid calendar type")
	ErrPersonalEventNotFound = errors.New("personal event not found")
)

// Enums and types
type CalendarType string

const (
	CalendarPersian   CalendarType = "persian"
	CalendarGregorian CalendarType = "gregorian"
)

// Valid reports whether the calendar type is one of the two supported systems.
func (c CalendarType) Valid() bool {
	return c == CalendarPersian || c == CalendarGregorian
}

// Other returns the opposite calendar system.
func (c CalendarType) Other() CalendarType {
	if c == CalendarPersian {
		return CalendarGregorian
	}
	return CalendarPersian
}

type Language string

const (
	LanguageFa Language = "fa"
	LanguageEn Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageFa || l == LanguageEn
}

type EventType string

const (
	EventTypeFixed    EventType = "fixed"
	EventTypeFloating EventType = "floating"
)

type QueryType string

const (
	QueryMonthly QueryType = "monthly"
	QueryDaily   QueryType = "daily"
	QueryRange   QueryType = "range"
)

// PersianDate is a Jalaali calendar date. Value type, freely copied.
type PersianDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String formats the date as YYYY/MM/DD, the form the events API expects.
func (p PersianDate) String() string {
	return fmt.Sprintf("%d/%02d/%02d", p.Year, p.Month, p.Day)
}

// YearMonth formats the year and month as YYYY/MM.
func (p PersianDate) YearMonth() string {
	return fmt.Sprintf("%d/%02d", p.Year, p.Month)
}

// Event is a single record from the remote events API. Immutable once received.
// Month and Day are populated only when the record was flattened out of a
// month-grouped range response.
type Event struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	IsHoliday   bool      `json:"is_holiday"`
	Priority    *int      `json:"priority,omitempty"`
	Month       int       `json:"month,omitempty"`
	Day         int       `json:"day,omitempty"`
}

// IdentityKey is the tuple used for duplicate suppression within one day.
func (e Event) IdentityKey() string {
	return fmt.Sprintf("%s-%s-%s-%t", e.Title, e.Description, e.Type, e.IsHoliday)
}

// EventsPayload is the wire shape of the remote events API. Monthly responses
// carry EventsByDay, daily responses carry Events, and range responses carry
// either EventsByDay or EventsByMonth depending on whether the range straddles
// a month boundary.
type EventsPayload struct {
	Success             bool                         `json:"success"`
	Type                QueryType                    `json:"type"`
	Calendar            CalendarType                 `json:"calendar"`
	YearMonth           string                       `json:"yearMonth,omitempty"`
	Date                string                       `json:"date,omitempty"`
	Start               string                       `json:"start,omitempty"`
	End                 string                       `json:"end,omitempty"`
	Language            Language                     `json:"language"`
	Events              []Event                      `json:"events,omitempty"`
	EventsByDay         map[string][]Event           `json:"events_by_day,omitempty"`
	EventsByMonth       map[string]map[string][]Event `json:"events_by_month,omitempty"`
	Count               int                          `json:"count,omitempty"`
	Holidays            int                          `json:"holidays,omitempty"`
	TotalEvents         int                          `json:"total_events"`
	TotalHolidays       int                          `json:"total_holidays"`
	DaysWithEvents      int                          `json:"days_with_events,omitempty"`
	FixedEventsCount    int                          `json:"fixed_events_count"`
	FloatingEventsCount int                          `json:"floating_events_count"`
	FailureReason       string                       `json:"failure_reason,omitempty"`
}

// DayEvents is one day's slot in a normalized index. Key is "D" inside a
// single-month context and "M/D" for a range spanning multiple months.
type DayEvents struct {
	Key    string  `json:"key"`
	Events []Event `json:"events"`
}

// NormalizedEvents is the canonical per-day index built from a raw payload.
// Days is ordered ascending by month then day; consumers render in slice order.
type NormalizedEvents struct {
	Success       bool         `json:"success"`
	Calendar      CalendarType `json:"calendar"`
	Language      Language     `json:"language"`
	TotalEvents   int          `json:"total_events"`
	TotalHolidays int          `json:"total_holidays"`
	Days          []DayEvents  `json:"days"`
	FailureReason string       `json:"failure_reason,omitempty"`
}

// MonthEvents pairs the normalized events of the displayed month with the
// normalized events of the equivalent range in the other calendar system.
type MonthEvents struct {
	Main      *NormalizedEvents `json:"main"`
	Secondary *NormalizedEvents `json:"secondary"`
}

// PersonalEvent is a user-authored event pinned to a date in one calendar
// system.
type PersonalEvent struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Calendar    CalendarType `json:"calendar" db:"calendar"`
	Year        int          `json:"year" db:"year"`
	Month       int          `json:"month" db:"month"`
	Day         int          `json:"day" db:"day"`
	Title       string       `json:"title" db:"title"`
	Description *string      `json:"description" db:"description"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// DateKey is the storage key used for grouping personal events by day,
// matching the "YYYY-M-D" form the web client persisted.
func (p *PersonalEvent) DateKey() string {
	return fmt.Sprintf("%d-%d-%d", p.Year, p.Month, p.Day)
}
