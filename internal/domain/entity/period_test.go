package entity

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodFor(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		closingDay int
		dueDay     int
		want       Period
	}{
		{
			name:       "charge on the closing day belongs to the closing period",
			date:       date(2025, time.March, 10),
			closingDay: 10,
			dueDay:     20,
			want:       Period{Start: date(2025, time.February, 11), Closing: date(2025, time.March, 10), Due: date(2025, time.March, 20)},
		},
		{
			name:       "charge after the closing day moves to next period",
			date:       date(2025, time.March, 11),
			closingDay: 10,
			dueDay:     5,
			want:       Period{Start: date(2025, time.March, 11), Closing: date(2025, time.April, 10), Due: date(2025, time.May, 5)},
		},
		{
			name:       "closing day clamped in february",
			date:       date(2025, time.February, 15),
			closingDay: 31,
			dueDay:     10,
			want:       Period{Start: date(2025, time.February, 1), Closing: date(2025, time.February, 28), Due: date(2025, time.March, 10)},
		},
		{
			name:       "leap year february",
			date:       date(2024, time.February, 29),
			closingDay: 30,
			dueDay:     15,
			want:       Period{Start: date(2024, time.January, 31), Closing: date(2024, time.February, 29), Due: date(2024, time.March, 15)},
		},
		{
			name:       "year boundary",
			date:       date(2025, time.January, 5),
			closingDay: 31,
			dueDay:     10,
			want:       Period{Start: date(2025, time.January, 1), Closing: date(2025, time.January, 31), Due: date(2025, time.February, 10)},
		},
		{
			name:       "december charge after closing rolls into january",
			date:       date(2024, time.December, 20),
			closingDay: 15,
			dueDay:     25,
			want:       Period{Start: date(2024, time.December, 16), Closing: date(2025, time.January, 15), Due: date(2025, time.January, 25)},
		},
		{
			name:       "time of day is ignored",
			date:       time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC),
			closingDay: 10,
			dueDay:     20,
			want:       Period{Start: date(2025, time.February, 11), Closing: date(2025, time.March, 10), Due: date(2025, time.March, 20)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodFor(tt.date, tt.closingDay, tt.dueDay)
			if !got.Start.Equal(tt.want.Start) || !got.Closing.Equal(tt.want.Closing) || !got.Due.Equal(tt.want.Due) {
				t.Errorf("PeriodFor() = %v..%v due %v, want %v..%v due %v",
					got.Start.Format("2006-01-02"), got.Closing.Format("2006-01-02"), got.Due.Format("2006-01-02"),
					tt.want.Start.Format("2006-01-02"), tt.want.Closing.Format("2006-01-02"), tt.want.Due.Format("2006-01-02"))
			}
			if !got.Contains(tt.date) {
				t.Error("expected period to contain the charge date")
			}
		})
	}
}

func TestNextPeriod(t *testing.T) {
	next := NextPeriod(date(2025, time.February, 28), 31, 10)

	if !next.Start.Equal(date(2025, time.March, 1)) {
		t.Errorf("expected start 2025-03-01, got %s", next.Start.Format("2006-01-02"))
	}
	if !next.Closing.Equal(date(2025, time.March, 31)) {
		t.Errorf("expected closing 2025-03-31, got %s", next.Closing.Format("2006-01-02"))
	}
	if !next.Due.Equal(date(2025, time.April, 10)) {
		t.Errorf("expected due 2025-04-10, got %s", next.Due.Format("2006-01-02"))
	}
}

func TestPeriodsAreContiguous(t *testing.T) {
	period := PeriodFor(date(2024, time.November, 3), 29, 8)
	for i := 0; i < 24; i++ {
		next := NextPeriod(period.Closing, 29, 8)
		if !next.Start.Equal(period.Closing.AddDate(0, 0, 1)) {
			t.Fatalf("gap after %s: next starts %s", period.Closing.Format("2006-01-02"), next.Start.Format("2006-01-02"))
		}
		if !next.Closing.After(next.Start) {
			t.Fatalf("period starting %s closes %s", next.Start.Format("2006-01-02"), next.Closing.Format("2006-01-02"))
		}
		period = next
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		from time.Time
		n    int
		want time.Time
	}{
		{date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{date(2025, time.January, 15), 2, date(2025, time.March, 15)},
		{date(2025, time.November, 30), 3, date(2026, time.February, 28)},
		{date(2025, time.May, 31), 0, date(2025, time.May, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.from.Format("2006-01-02"), func(t *testing.T) {
			if got := AddMonthsClamped(tt.from, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonthsClamped(%s, %d) = %s, want %s",
					tt.from.Format("2006-01-02"), tt.n, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}
