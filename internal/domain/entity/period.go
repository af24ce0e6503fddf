package entity

import "time"

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClampedDate returns the given day of the month, moved back to the
// month's last day when the month is shorter. Month overflow rolls the year.
func ClampedDate(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped moves date forward n months keeping its day of month,
// clamped to the end of shorter months (Jan 31 + 1 = Feb 28).
func AddMonthsClamped(date time.Time, n int) time.Time {
	d := DateOf(date)
	return ClampedDate(d.Year(), d.Month()+time.Month(n), d.Day())
}

// Period is one credit-card billing cycle.
type Period struct {
	Start   time.Time
	Closing time.Time
	Due     time.Time
}

// Contains reports whether date falls inside the period, both ends inclusive.
func (p Period) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(p.Start) && !d.After(p.Closing)
}

// PeriodFor returns the billing period a charge dated on date belongs to for a card
// with the given closing and due days. A charge on the closing day belongs to the
// period that closes that day. The due date falls in the closing month when the due
// day comes after the closing day, otherwise in the following month.
func PeriodFor(date time.Time, closingDay, dueDay int) Period {
	d := DateOf(date)

	closing := ClampedDate(d.Year(), d.Month(), closingDay)
	if d.After(closing) {
		closing = ClampedDate(d.Year(), d.Month()+1, closingDay)
	}

	previous := ClampedDate(closing.Year(), closing.Month()-1, closingDay)
	start := previous.AddDate(0, 0, 1)

	due := ClampedDate(closing.Year(), closing.Month(), dueDay)
	if dueDay <= closingDay {
		due = ClampedDate(closing.Year(), closing.Month()+1, dueDay)
	}

	return Period{Start: start, Closing: closing, Due: due}
}

// NextPeriod returns the period following one closing on closing.
func NextPeriod(closing time.Time, closingDay, dueDay int) Period {
	return PeriodFor(DateOf(closing).AddDate(0, 0, 1), closingDay, dueDay)
}

// MonthIndex orders (year, month) pairs.
func MonthIndex(year, month int) int {
	return year*12 + month - 1
}
