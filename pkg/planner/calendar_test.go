package planner

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 2025-01-06 is a Monday
var monday = date(2025, time.January, 6)

func TestIsWorkday(t *testing.T) {
	tests := []struct {
		day  time.Time
		want bool
	}{
		{monday, true},
		{date(2025, time.January, 10), true},
		{date(2025, time.January, 11), false},
		{date(2025, time.January, 12), false},
	}
	for _, tt := range tests {
		if got := IsWorkday(tt.day); got != tt.want {
			t.Errorf("IsWorkday(%s) = %v, want %v", tt.day.Format("Mon 2006-01-02"), got, tt.want)
		}
	}
}

func TestNextWorkday(t *testing.T) {
	if got := NextWorkday(date(2025, time.January, 11)); !got.Equal(date(2025, time.January, 13)) {
		t.Errorf("Expected Saturday to snap to Monday, got %s", got.Format("2006-01-02"))
	}
	if got := NextWorkday(monday.Add(15 * time.Hour)); !got.Equal(monday) {
		t.Errorf("Expected a workday to be kept and truncated, got %s", got)
	}
}

func TestAddWorkdays(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"zero", monday, 0, monday},
		{"within week", monday, 4, date(2025, time.January, 10)},
		{"over weekend", monday, 5, date(2025, time.January, 13)},
		{"from friday", date(2025, time.January, 10), 1, date(2025, time.January, 13)},
		{"from saturday", date(2025, time.January, 11), 1, date(2025, time.January, 13)},
		{"two weeks", monday, 10, date(2025, time.January, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddWorkdays(tt.from, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
			if tt.n > 0 && !IsWorkday(got) {
				t.Errorf("Expected result to be a workday, got %s", got.Weekday())
			}
		})
	}
}

func TestWorkdaysDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", monday, monday, 0},
		{"one week", monday, date(2025, time.January, 13), 5},
		{"reversed", date(2025, time.January, 13), monday, -5},
		{"to saturday", monday, date(2025, time.January, 11), 4},
		{"weekend only", date(2025, time.January, 10), date(2025, time.January, 12), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkdaysDiff(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWorkdaysDiffInvertsAddWorkdays(t *testing.T) {
	for n := 0; n < 25; n++ {
		end := AddWorkdays(monday, n)
		if got := WorkdaysDiff(monday, end); got != n {
			t.Errorf("WorkdaysDiff(AddWorkdays(d, %d)) = %d", n, got)
		}
	}
}

// walkAddWorkdays and walkWorkdaysDiff step one day at a time and serve as the reference
func walkAddWorkdays(date time.Time, n int) time.Time {
	d := Day(date)
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if IsWorkday(d) {
			added++
		}
	}
	return d
}

func walkWorkdaysDiff(a, b time.Time) int {
	from, to, sign := Day(a), Day(b), 1
	if to.Before(from) {
		from, to, sign = to, from, -1
	}
	count := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkday(d) {
			count++
		}
	}
	return sign * count
}

func TestCalendarMatchesDayWalk(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		from := monday.AddDate(0, 0, offset)
		for n := 0; n < 40; n++ {
			want := walkAddWorkdays(from, n)
			if got := AddWorkdays(from, n); !got.Equal(want) {
				t.Errorf("AddWorkdays(%s, %d) = %s, want %s", from.Weekday(), n, got.Format("2006-01-02"), want.Format("2006-01-02"))
			}
		}
		for days := -30; days <= 30; days++ {
			to := from.AddDate(0, 0, days)
			if got, want := WorkdaysDiff(from, to), walkWorkdaysDiff(from, to); got != want {
				t.Errorf("WorkdaysDiff(%s, %+d days) = %d, want %d", from.Weekday(), days, got, want)
			}
		}
	}
}

func TestCalendarLargeSpans(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
	}{
		{"monday", monday, 2_000_000},
		{"saturday", date(2025, time.January, 11), 2_000_003},
		{"sunday", date(2025, time.January, 12), 1 << 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := AddWorkdays(tt.from, tt.n)
			if !IsWorkday(end) {
				t.Errorf("Expected a workday, got %s", end.Weekday())
			}
			if got := WorkdaysDiff(tt.from, end); got != tt.n {
				t.Errorf("Expected %d workdays, got %d", tt.n, got)
			}
			if got := WorkdaysDiff(end, tt.from); got != -tt.n {
				t.Errorf("Expected %d workdays reversed, got %d", -tt.n, got)
			}
		})
	}
}
