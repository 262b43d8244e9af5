// Package patientform implements the patient registration form logic: the
// age/date-of-birth reconciliation, title-driven gender resolution, the form
// state container, and the mapping from form values to the wire DTOs.
package patientform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AgeUnit is the granularity a patient's age is expressed in. The unit is
// chosen by DeriveAgeFromDOB: whole years when at least one has elapsed,
// then whole months, then days.
type AgeUnit string

const (
	Years  AgeUnit = "years"
	Months AgeUnit = "months"
	Days   AgeUnit = "days"
)

// DateLayout is the form-side date format (ISO date, no time component).
const DateLayout = "2006-01-02"

var ageStringRe = regexp.MustCompile(`(?i)^(\d+)\s*(years?|months?|days?)$`)

// DeriveAgeFromDOB computes the display age for a date of birth as of today.
// It returns whole years when the patient is at least a year old, whole
// calendar months when at least a month old, and days otherwise. A same-day
// birth reports as 1 day, never 0.
//
// The month/day arithmetic borrows the way a calendar does: a negative day
// component borrows the length of the month preceding today, and a negative
// month component borrows twelve months from the year count.
func DeriveAgeFromDOB(dob, today time.Time) (int, AgeUnit) {
	years := today.Year() - dob.Year()
	months := int(today.Month()) - int(dob.Month())
	days := today.Day() - dob.Day()

	if days < 0 {
		months--
		days += daysInPreviousMonth(today)
	}
	if months < 0 {
		years--
		months += 12
	}

	switch {
	case years > 0:
		return years, Years
	case months > 0:
		return months, Months
	default:
		if days < 1 {
			days = 1
		}
		return days, Days
	}
}

// daysInPreviousMonth returns the length of the calendar month before t.
// Day zero of the current month normalizes to the last day of the previous.
func daysInPreviousMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, t.Location()).Day()
}

// DeriveDOBFromAge computes the date of birth implied by an age as of today:
// the same calendar day value years or months back, or an exact day count
// back for Days.
func DeriveDOBFromAge(value int, unit AgeUnit, today time.Time) time.Time {
	switch unit {
	case Months:
		return today.AddDate(0, -value, 0)
	case Days:
		return today.AddDate(0, 0, -value)
	default:
		return today.AddDate(-value, 0, 0)
	}
}

// FormatAgeString renders an age for the wire, e.g. "25 Years", "3 Months",
// "10 Days". The unit label is always the capitalized plural; the value does
// not affect pluralization.
func FormatAgeString(value int, unit AgeUnit) string {
	label := string(unit)
	if label == "" {
		label = string(Years)
	}
	return fmt.Sprintf("%d %s%s", value, strings.ToUpper(label[:1]), label[1:])
}

// ParseAgeString parses an age string of the form "<number> <unit>" where
// the unit is years/months/days, singular or plural, any case, with optional
// whitespace before the unit. It reports ok=false when the input does not
// match; leading or trailing text is not tolerated.
func ParseAgeString(s string) (int, AgeUnit, bool) {
	m := ageStringRe.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}

	unit := Years
	switch {
	case strings.HasPrefix(strings.ToLower(m[2]), "month"):
		unit = Months
	case strings.HasPrefix(strings.ToLower(m[2]), "day"):
		unit = Days
	}
	return value, unit, true
}
