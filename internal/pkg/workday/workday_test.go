package workday

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateOf(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 15, 18, 59, 0, 0, time.UTC), "2024-01-15"},
		{time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC), "2024-01-16"},
		{time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC), "2024-02-01"},
	}
	for _, c := range cases {
		got := Key(DateOf(c.in, pkt))
		if got != c.want {
			t.Errorf("DateOf(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestIsWorkingDay(t *testing.T) {
	holidays := NewHolidays(Date(2024, 2, 5))
	cases := []struct {
		day  time.Time
		want bool
	}{
		{Date(2024, 2, 2), true},  // Friday
		{Date(2024, 2, 3), false}, // Saturday
		{Date(2024, 2, 4), false}, // Sunday
		{Date(2024, 2, 5), false}, // holiday
		{Date(2024, 2, 6), true},
	}
	for _, c := range cases {
		if got := IsWorkingDay(c.day, holidays); got != c.want {
			t.Errorf("IsWorkingDay(%s) = %v, want %v", Key(c.day), got, c.want)
		}
	}
}

func TestNilHolidays(t *testing.T) {
	var h Holidays
	if h.Contains(Date(2024, 2, 5)) {
		t.Errorf("nil Holidays should contain nothing")
	}
}

func TestCountInMonth(t *testing.T) {
	cases := []struct {
		year     int
		month    time.Month
		holidays Holidays
		want     int
	}{
		{2024, time.February, nil, 21},
		{2024, time.March, nil, 21},
		{2024, time.June, nil, 20},
		{2024, time.February, NewHolidays(Date(2024, 2, 5), Date(2024, 2, 10)), 20},
	}
	for _, c := range cases {
		if got := CountInMonth(c.year, c.month, c.holidays); got != c.want {
			t.Errorf("CountInMonth(%d, %s) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestBetween(t *testing.T) {
	days := Between(Date(2024, 2, 1), Date(2024, 2, 7), nil)
	want := []string{"2024-02-01", "2024-02-02", "2024-02-05", "2024-02-06", "2024-02-07"}
	if len(days) != len(want) {
		t.Fatalf("Between returned %d days, want %d", len(days), len(want))
	}
	for i, d := range days {
		if Key(d) != want[i] {
			t.Errorf("day %d = %s, want %s", i, Key(d), want[i])
		}
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	if Key(first) != "2024-02-01" || Key(last) != "2024-02-29" {
		t.Errorf("MonthBounds = %s..%s", Key(first), Key(last))
	}
}

func TestDailySalary(t *testing.T) {
	got := DailySalary(decimal.NewFromInt(21000), 2024, time.February, nil)
	if !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("DailySalary = %s, want 1000", got)
	}
}
