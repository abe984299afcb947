package logic

import (
	"fmt"
	"time"
)

// MenuField indexes the cyclic list of editable fields.
type MenuField int

const (
	FieldTimezoneMode MenuField = iota
	FieldYear
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldAmPm
	FieldConfirm

	fieldCount = 8
)

// Draft is the date-time and timezone policy being edited. Hour is a
// 12-hour value (1-12) qualified by IsPm; Month is zero-based to index
// the month-name table directly.
type Draft struct {
	Mode   TimezoneMode
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	IsPm   bool
}

// DefaultDraft is the starting draft before the first editing session:
// January 1st of the build-era year at 12:00 AM, automatic DST.
func DefaultDraft() Draft {
	return Draft{Mode: AutomaticDst, Year: 2026, Month: 0, Day: 1, Hour: 12, Minute: 0}
}

// LocalTime converts the drafted 12-hour fields to a 24-hour local
// time. 12 AM maps to hour 0 and 12 PM to hour 12. A drafted day past
// the end of the month normalizes forward into the next month.
func (d Draft) LocalTime() time.Time {
	hour := d.Hour % 12
	if d.IsPm {
		hour += 12
	}
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, hour, d.Minute, 0, 0, time.UTC)
}

// Menu is the configuration menu state machine. Select edges advance
// the field cursor with wrap; increment edges mutate the field under
// the cursor, and an increment on Confirm ends the session.
type Menu struct {
	field MenuField
	draft Draft
}

// NewMenu returns a menu over the given starting draft.
func NewMenu(draft Draft) *Menu {
	return &Menu{draft: draft}
}

// Enter begins an editing session: the cursor returns to the first
// field while the draft keeps the values of the previous session.
func (m *Menu) Enter() {
	m.field = FieldTimezoneMode
}

// Field returns the field under the cursor.
func (m *Menu) Field() MenuField {
	m.normalize()
	return m.field
}

// Draft returns a copy of the current draft.
func (m *Menu) Draft() Draft {
	return m.draft
}

// Select advances the cursor to the next field, wrapping past Confirm
// back to the first field.
func (m *Menu) Select() {
	m.normalize()
	m.field = (m.field + 1) % fieldCount
}

// Increment mutates the field under the cursor and reports whether the
// session was committed. Year counts up without bound; Day cycles 1-31
// with no month-length awareness (an overflow day normalizes forward
// on commit).
func (m *Menu) Increment() (committed bool) {
	m.normalize()
	switch m.field {
	case FieldTimezoneMode:
		if m.draft.Mode == AutomaticDst {
			m.draft.Mode = StandardOnly
		} else {
			m.draft.Mode = AutomaticDst
		}
	case FieldYear:
		m.draft.Year++
	case FieldMonth:
		m.draft.Month = (m.draft.Month + 1) % 12
	case FieldDay:
		m.draft.Day = m.draft.Day%31 + 1
	case FieldHour:
		m.draft.Hour = m.draft.Hour%12 + 1
	case FieldMinute:
		m.draft.Minute = (m.draft.Minute + 1) % 60
	case FieldAmPm:
		m.draft.IsPm = !m.draft.IsPm
	case FieldConfirm:
		return true
	}
	return false
}

// normalize pulls an out-of-range cursor back to the first field so a
// corrupted value cannot index past the lookup tables.
func (m *Menu) normalize() {
	if m.field < 0 || m.field >= fieldCount {
		m.field = FieldTimezoneMode
	}
}

var fieldLabels = [fieldCount]string{
	"TIMEZONE",
	"YEAR",
	"MONTH",
	"DAY",
	"HOUR",
	"MINUTE",
	"AM/PM",
	"CONFIRM",
}

var monthNames = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// MonthName returns the uppercase three-letter name for a zero-based
// month, or "???" when the index is out of range.
func MonthName(i int) string {
	if i < 0 || i >= len(monthNames) {
		return "???"
	}
	return monthNames[i]
}

// FieldLabel returns the display label of the field under the cursor.
func (m *Menu) FieldLabel() string {
	m.normalize()
	return fieldLabels[m.field]
}

// FieldValue renders the drafted value of the field under the cursor.
func (m *Menu) FieldValue() string {
	m.normalize()
	switch m.field {
	case FieldTimezoneMode:
		if m.draft.Mode == StandardOnly {
			return "STANDARD"
		}
		return "AUTO DST"
	case FieldYear:
		return fmt.Sprintf("%d", m.draft.Year)
	case FieldMonth:
		return MonthName(m.draft.Month)
	case FieldDay:
		return fmt.Sprintf("%d", m.draft.Day)
	case FieldHour:
		return fmt.Sprintf("%d", m.draft.Hour)
	case FieldMinute:
		return fmt.Sprintf("%02d", m.draft.Minute)
	case FieldAmPm:
		if m.draft.IsPm {
			return "PM"
		}
		return "AM"
	default:
		return "PRESS +"
	}
}
