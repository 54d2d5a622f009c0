package planner

import "time"

// Day truncates t to midnight UTC of its calendar date
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWorkday reports whether date falls Monday through Friday. There is no holiday calendar.
func IsWorkday(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// NextWorkday returns date itself if it is a workday, otherwise the following Monday
func NextWorkday(date time.Time) time.Time {
	d := Day(date)
	for !IsWorkday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// previousWorkday returns date itself if it is a workday, otherwise the Friday before
func previousWorkday(date time.Time) time.Time {
	d := Day(date)
	for !IsWorkday(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddWorkdays advances date by n working days, skipping weekends.
// For n >= 1 the result is always a workday; n <= 0 returns date unchanged.
func AddWorkdays(date time.Time, n int) time.Time {
	d := Day(date)
	if n <= 0 {
		return d
	}
	// (Sat, x] and (Fri, x] hold the same workdays, so start from a workday
	// where every whole week adds exactly five
	d = previousWorkday(d)
	d = d.AddDate(0, 0, (n/5)*7)
	for added := 0; added < n%5; {
		d = d.AddDate(0, 0, 1)
		if IsWorkday(d) {
			added++
		}
	}
	return d
}

// WorkdaysDiff counts the working days in the half-open range (a, b].
// The result is negative when b is before a.
func WorkdaysDiff(a, b time.Time) int {
	from, to := Day(a), Day(b)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}
	days := int((to.Unix() - from.Unix()) / 86400)
	weeks := days / 7
	count := weeks * 5
	d := from.AddDate(0, 0, weeks*7)
	for i := 0; i < days%7; i++ {
		d = d.AddDate(0, 0, 1)
		if IsWorkday(d) {
			count++
		}
	}
	return sign * count
}
