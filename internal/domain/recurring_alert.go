package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday numbers days from Monday=0 to Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// WeekdayOf converts Go's Sunday-based weekday of t into a Monday-based Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

var (
	ErrWeekDayOutOfRange = errors.New("Ensure each value is between 0 and 6")
	ErrDuplicateWeekDays = errors.New("Duplicate values are not allowed")
)

// ValidateWeekDays checks that every day is in [0,6] and appears at most once.
// An empty set is valid.
func ValidateWeekDays(days []int) error {
	var seen [7]bool
	for _, d := range days {
		if d < int(Monday) || d > int(Sunday) {
			return ErrWeekDayOutOfRange
		}
		if seen[d] {
			return ErrDuplicateWeekDays
		}
		seen[d] = true
	}
	return nil
}

// WeekDaysDisplay renders the set in Monday..Sunday order regardless of input order.
func WeekDaysDisplay(days []int) string {
	var set [7]bool
	for _, d := range days {
		if d >= int(Monday) && d <= int(Sunday) {
			set[d] = true
		}
	}
	names := make([]string, 0, len(days))
	for d, ok := range set {
		if ok {
			names = append(names, weekdayNames[d])
		}
	}
	if len(names) == 0 {
		return "No set days"
	}
	return strings.Join(names, ", ")
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int `bson:"hour"`
	Minute int `bson:"minute"`
	Second int `bson:"second"`
}

var ErrInvalidTimeOfDay = errors.New("time must be formatted as HH:MM[:SS]")

func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute, Second: second}
	if !t.Valid() {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return t, nil
}

// TimeOfDayOf extracts the wall-clock time of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay accepts "15:04:05" and "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, ErrInvalidTimeOfDay
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60 && t.Second >= 0 && t.Second < 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidTimeOfDay
	}
	parsed, err := ParseTimeOfDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RecurringWorkoutAlert fires every week at Time on each of WeekDays.
type RecurringWorkoutAlert struct {
	ID        string    `bson:"_id" json:"id"`
	WorkoutID string    `bson:"workoutId" json:"workoutId"`
	Time      TimeOfDay `bson:"time" json:"time"`
	WeekDays  []int     `bson:"weekDays" json:"weekDays"`
	Activated bool      `bson:"activated" json:"activated"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RecurringAlertPatch is a partial update; nil fields are left untouched.
// Changing Time or WeekDays does not touch Activated.
type RecurringAlertPatch struct {
	Time      *TimeOfDay
	WeekDays  *[]int
	Activated *bool
}

func (a *RecurringWorkoutAlert) Apply(p RecurringAlertPatch) {
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.WeekDays != nil {
		a.WeekDays = append([]int{}, (*p.WeekDays)...)
	}
	if p.Activated != nil {
		a.Activated = *p.Activated
	}
}

func (a *RecurringWorkoutAlert) Activate() {
	a.Activated = true
}

func (a *RecurringWorkoutAlert) WeekDaysDisplay() string {
	return WeekDaysDisplay(a.WeekDays)
}

// FiresOn reports whether the alert is due on day at hour:minute. Seconds are ignored.
func (a *RecurringWorkoutAlert) FiresOn(day Weekday, hour, minute int) bool {
	if a.Time.Hour != hour || a.Time.Minute != minute {
		return false
	}
	for _, d := range a.WeekDays {
		if Weekday(d) == day {
			return true
		}
	}
	return false
}
