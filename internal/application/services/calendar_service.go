package services

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/domain/jalali"
	"github.com/roozegaar/calendar/internal/ports"
)

// persianMonthNamesEn carries the transliterated month names used when the
// UI language is English; the Farsi names come from go-persian-calendar.
var persianMonthNamesEn = [12]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// CalendarService computes calendar-grid metadata and conversions.
type CalendarService struct {
	now func() time.Time
}

// NewCalendarService creates a new calendar service
func NewCalendarService() *CalendarService {
	return &CalendarService{now: time.Now}
}

// NewCalendarServiceWithClock creates a calendar service with an injected
// clock. Used in tests.
func NewCalendarServiceWithClock(now func() time.Time) *CalendarService {
	return &CalendarService{now: now}
}

// MonthGrid returns the layout facts for one month: day count, the
// Saturday-first offset of day 1, leap status and the localized month name.
func (s *CalendarService) MonthGrid(req ports.MonthGridRequest) (*ports.MonthGrid, error) {
	if !req.Calendar.Valid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidCalendarType, req.Calendar)
	}

	grid := &ports.MonthGrid{
		Calendar: req.Calendar,
		Year:     req.Year,
		Month:    req.Month,
	}

	if req.Calendar == entities.CalendarPersian {
		firstWeekday, err := jalali.FirstWeekdayOfMonth(req.Year, req.Month)
		if err != nil {
			return nil, err
		}
		grid.DaysInMonth = jalali.MonthLength(req.Year, req.Month)
		grid.FirstWeekday = firstWeekday
		grid.LeapYear = jalali.IsLeapYear(req.Year)
		grid.MonthName = persianMonthName(req.Month, req.Language)
		return grid, nil
	}

	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month %d", entities.ErrInvalidDate, req.Month)
	}
	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	grid.DaysInMonth = first.AddDate(0, 1, -1).Day()
	grid.FirstWeekday = (int(first.Weekday()) + 1) % 7
	grid.LeapYear = isGregorianLeap(req.Year)
	grid.MonthName = time.Month(req.Month).String()
	return grid, nil
}

// Convert expresses one date in both calendar systems. calendar names the
// system the YYYY/MM/DD input belongs to.
func (s *CalendarService) Convert(calendar entities.CalendarType, date string) (*ports.ConvertedDate, error) {
	year, month, day, err := jalali.ParseDate(date)
	if err != nil {
		return nil, err
	}

	switch calendar {
	case entities.CalendarPersian:
		p := entities.PersianDate{Year: year, Month: month, Day: day}
		g, err := jalali.ToGregorian(p)
		if err != nil {
			return nil, err
		}
		return &ports.ConvertedDate{
			Persian:   p,
			Gregorian: jalali.FormatGregorian(g),
			Weekday:   (int(g.Weekday()) + 1) % 7,
		}, nil
	case entities.CalendarGregorian:
		g := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if g.Year() != year || int(g.Month()) != month || g.Day() != day {
			return nil, fmt.Errorf("%w: %s", entities.ErrInvalidDate, date)
		}
		return &ports.ConvertedDate{
			Persian:   jalali.ToPersian(g),
			Gregorian: jalali.FormatGregorian(g),
			Weekday:   (int(g.Weekday()) + 1) % 7,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidCalendarType, calendar)
	}
}

// Today returns the current day in both calendars.
func (s *CalendarService) Today(lang entities.Language) *ports.ConvertedDate {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &ports.ConvertedDate{
		Persian:   jalali.ToPersian(today),
		Gregorian: jalali.FormatGregorian(today),
		Weekday:   (int(today.Weekday()) + 1) % 7,
	}
}

func persianMonthName(month int, lang entities.Language) string {
	if lang == entities.LanguageEn {
		return persianMonthNamesEn[month-1]
	}
	return ptime.Month(month).String()
}

func isGregorianLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
