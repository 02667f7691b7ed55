package service

import (
	"errors"
	"strings"
	"time"

	"go-hospital-management/internal/domain/entity"
)

var (
	ErrInvalidDate = errors.New("Invalid date format")
	ErrPastDate    = errors.New("Cannot select a past date")
	ErrInvalidTime = errors.New("Invalid time format")
)

// dateInputLayout also accepts month and day without a leading zero ("2099-1-5").
const dateInputLayout = "2006-1-2"

// AppointmentSlot is a validated date and time in storage format.
type AppointmentSlot struct {
	Date    string
	Time    string
	Day     time.Time
	IsToday bool
}

// ValidateAppointment checks a requested date and time against today, in that order:
// date format, date not in the past, time format.
func ValidateAppointment(dateStr, timeStr string, today time.Time) (AppointmentSlot, error) {
	day, err := time.ParseInLocation(dateInputLayout, strings.TrimSpace(dateStr), today.Location())
	if err != nil {
		return AppointmentSlot{}, ErrInvalidDate
	}

	startOfToday := truncateDay(today)
	if day.Before(startOfToday) {
		return AppointmentSlot{}, ErrPastDate
	}

	clock, err := time.Parse(entity.TimeLayout, strings.TrimSpace(timeStr))
	if err != nil {
		return AppointmentSlot{}, ErrInvalidTime
	}

	return AppointmentSlot{
		Date:    day.Format(entity.DateLayout),
		Time:    clock.Format(entity.TimeLayout),
		Day:     day,
		IsToday: day.Equal(startOfToday),
	}, nil
}

// IsValidationError reports whether err came from ValidateAppointment.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrPastDate) || errors.Is(err, ErrInvalidTime)
}

// Today formats the current day in storage format.
func Today(now time.Time) string {
	return now.Format(entity.DateLayout)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
