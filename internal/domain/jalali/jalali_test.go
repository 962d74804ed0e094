package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roozegaar/calendar/internal/domain/entities"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestToPersian_KnownDates(t *testing.T) {
	cases := []struct {
		gregorian time.Time
		want      entities.PersianDate
	}{
		{date(1981, 8, 17), entities.PersianDate{Year: 1360, Month: 5, Day: 26}},
		{date(2024, 3, 20), entities.PersianDate{Year: 1403, Month: 1, Day: 1}},
		{date(2024, 9, 22), entities.PersianDate{Year: 1403, Month: 7, Day: 1}},
		{date(2024, 10, 21), entities.PersianDate{Year: 1403, Month: 7, Day: 30}},
		{date(2025, 3, 20), entities.PersianDate{Year: 1403, Month: 12, Day: 30}},
		{date(2025, 3, 21), entities.PersianDate{Year: 1404, Month: 1, Day: 1}},
		{date(2016, 4, 11), entities.PersianDate{Year: 1395, Month: 1, Day: 23}},
	}

	for _, tc := range cases {
		got := ToPersian(tc.gregorian)
		assert.Equal(t, tc.want, got, "gregorian %s", tc.gregorian.Format("2006-01-02"))
	}
}

func TestToGregorian_KnownDates(t *testing.T) {
	cases := []struct {
		persian entities.PersianDate
		want    time.Time
	}{
		{entities.PersianDate{Year: 1360, Month: 5, Day: 26}, date(1981, 8, 17)},
		{entities.PersianDate{Year: 1403, Month: 1, Day: 1}, date(2024, 3, 20)},
		{entities.PersianDate{Year: 1403, Month: 7, Day: 1}, date(2024, 9, 22)},
		{entities.PersianDate{Year: 1403, Month: 12, Day: 30}, date(2025, 3, 20)},
	}

	for _, tc := range cases {
		got, err := ToGregorian(tc.persian)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "persian %s", tc.persian)
	}
}

func TestToGregorian_InvalidDates(t *testing.T) {
	cases := []entities.PersianDate{
		{Year: 1403, Month: 0, Day: 1},
		{Year: 1403, Month: 13, Day: 1},
		{Year: 1403, Month: 7, Day: 31},
		{Year: 1402, Month: 12, Day: 30}, // 1402 is not a leap year
		{Year: 1403, Month: 1, Day: 0},
		{Year: 4000, Month: 1, Day: 1},
	}

	for _, p := range cases {
		_, err := ToGregorian(p)
		assert.ErrorIs(t, err, entities.ErrInvalidDate, "persian %s", p)
	}
}

func TestRoundTrip(t *testing.T) {
	for year := 1300; year <= 1500; year++ {
		for month := 1; month <= 12; month++ {
			length := MonthLength(year, month)
			for _, day := range []int{1, 15, length} {
				p := entities.PersianDate{Year: year, Month: month, Day: day}
				g, err := ToGregorian(p)
				require.NoError(t, err)
				require.Equal(t, p, ToPersian(g), "round trip %s", p)
			}
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	leap := []int{1375, 1387, 1391, 1395, 1399, 1403, 1408}
	notLeap := []int{1394, 1400, 1401, 1402, 1404}

	for _, y := range leap {
		assert.True(t, IsLeapYear(y), "year %d", y)
	}
	for _, y := range notLeap {
		assert.False(t, IsLeapYear(y), "year %d", y)
	}
}

func TestMonthLength_SumMatchesLeapStatus(t *testing.T) {
	for year := 1300; year <= 1500; year++ {
		sum := 0
		for month := 1; month <= 12; month++ {
			sum += MonthLength(year, month)
		}
		if IsLeapYear(year) {
			assert.Equal(t, 366, sum, "year %d", year)
		} else {
			assert.Equal(t, 365, sum, "year %d", year)
		}
	}
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	// 1403/01/01 is 2024-03-20, a Wednesday. Saturday-first offset: (3+1)%7 = 4.
	wd, err := FirstWeekdayOfMonth(1403, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, wd)

	// 1403/07/01 is 2024-09-22, a Sunday. Saturday-first offset: (0+1)%7 = 1.
	wd, err = FirstWeekdayOfMonth(1403, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, wd)

	_, err = FirstWeekdayOfMonth(1403, 13)
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestParseDate(t *testing.T) {
	y, m, d, err := ParseDate("1403/07/01")
	require.NoError(t, err)
	assert.Equal(t, []int{1403, 7, 1}, []int{y, m, d})

	_, _, _, err = ParseDate("1403-07-01")
	assert.ErrorIs(t, err, entities.ErrInvalidDate)

	_, _, _, err = ParseDate("1403/ab/01")
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestLastOfMonth(t *testing.T) {
	assert.Equal(t, entities.PersianDate{Year: 1403, Month: 7, Day: 30}, LastOfMonth(1403, 7))
	assert.Equal(t, entities.PersianDate{Year: 1403, Month: 12, Day: 30}, LastOfMonth(1403, 12))
	assert.Equal(t, entities.PersianDate{Year: 1402, Month: 12, Day: 29}, LastOfMonth(1402, 12))
}
