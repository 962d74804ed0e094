// Package jalali implements exact bidirectional conversion between the
// Gregorian and Persian (Jalaali) calendars using the 33-year-cycle
// breaks-table algorithm, plus the calendar-grid facts derived from it.
//
// All functions are pure and deterministic.
package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roozegaar/calendar/internal/domain/entities"
)

// breaks lists the Jalaali years in which the 33-year leap cycle resets.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// MinYear and MaxYear bound the supported Jalaali era.
const (
	MinYear = -61
	MaxYear = 3177
)

// ToPersian converts a Gregorian date to its Persian equivalent. Every date
// constructible with time.Time inside the supported era converts without error.
func ToPersian(t time.Time) entities.PersianDate {
	jy, jm, jd := d2j(g2d(t.Year(), int(t.Month()), t.Day()))
	return entities.PersianDate{Year: jy, Month: jm, Day: jd}
}

// ToGregorian converts a Persian date to the Gregorian calendar. It returns
// entities.ErrInvalidDate when the month or day is out of range for that year,
// which indicates a programming error in the caller's date construction.
func ToGregorian(p entities.PersianDate) (time.Time, error) {
	if err := Validate(p); err != nil {
		return time.Time{}, err
	}
	gy, gm, gd := d2g(j2d(p.Year, p.Month, p.Day))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC), nil
}

// Validate checks that p denotes an actual day of the Persian calendar.
func Validate(p entities.PersianDate) error {
	if p.Year < MinYear || p.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside supported era", entities.ErrInvalidDate, p.Year)
	}
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", entities.ErrInvalidDate, p.Month)
	}
	if p.Day < 1 || p.Day > MonthLength(p.Year, p.Month) {
		return fmt.Errorf("%w: day %d in %d/%02d", entities.ErrInvalidDate, p.Day, p.Year, p.Month)
	}
	return nil
}

// IsLeapYear reports whether the given Jalaali year has 366 days.
func IsLeapYear(year int) bool {
	leap, _, _ := jalCal(year)
	return leap == 0
}

// MonthLength returns the number of days in the given Persian month.
// Months 1-6 have 31 days, months 7-11 have 30, and Esfand has 29 or 30
// depending on leap status.
func MonthLength(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case IsLeapYear(year):
		return 30
	default:
		return 29
	}
}

// FirstWeekdayOfMonth returns the Saturday-first weekday offset (0 = Saturday,
// 6 = Friday) of day 1 of the given Persian month.
func FirstWeekdayOfMonth(year, month int) (int, error) {
	first, err := ToGregorian(entities.PersianDate{Year: year, Month: month, Day: 1})
	if err != nil {
		return 0, err
	}
	return (int(first.Weekday()) + 1) % 7, nil
}

// LastOfMonth returns the last day of the given Persian month.
func LastOfMonth(year, month int) entities.PersianDate {
	return entities.PersianDate{Year: year, Month: month, Day: MonthLength(year, month)}
}

// FormatGregorian renders a Gregorian date as YYYY/MM/DD, the form the events
// API expects.
func FormatGregorian(t time.Time) string {
	return t.Format("2006/01/02")
}

// ParseDate parses a YYYY/MM/DD string into its numeric components without
// interpreting them in either calendar.
func ParseDate(s string) (year, month, day int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q is not in YYYY/MM/DD form", entities.ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		nums[i], err = strconv.Atoi(part)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", entities.ErrInvalidDate, s)
		}
	}
	return nums[0], nums[1], nums[2], nil
}

// jalCal determines the leap status of a Jalaali year together with the
// Gregorian year and the March day on which that Jalaali year starts.
// leap is the number of years since the last leap year (0 means leap).
func jalCal(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := breaks[0]

	jump := 0
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}
	n := jy - jp

	// Leap years between the epoch and this year, Jalaali side.
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	// Leap years between the epoch and this year, Gregorian side.
	leapG := gy/4 - (gy/100+1)*3/4 - 150

	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

// j2d converts a Jalaali date to its Julian day number.
func j2d(jy, jm, jd int) int {
	_, gy, march := jalCal(jy)
	return g2d(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

// d2j converts a Julian day number to a Jalaali date.
func d2j(jdn int) (jy, jm, jd int) {
	gy, _, _ := d2g(jdn)
	jy = gy - 621
	leap, _, march := jalCal(jy)
	jdn1f := g2d(gy, 3, march)

	k := jdn - jdn1f
	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, 1 + k%31
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, 1 + k%30
}

// g2d converts a Gregorian date to its Julian day number.
func g2d(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

// d2g converts a Julian day number to a Gregorian date.
func d2g(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := j%1461/4*5 + 308
	gd = i%153/5 + 1
	gm = i/153%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
