package patientform

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldError is one validation failure, addressed by form field name.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s]+$`)
	mobileRe   = regexp.MustCompile(`^\d{10}$`)
	aadhaarRe  = regexp.MustCompile(`^\d{12}$`)
	healthIDRe = regexp.MustCompile(`^\d{14}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate checks the submission rules and returns every failure found.
// These gate submission only; the DTO builders themselves never reject.
func (v Values) Validate(today time.Time) []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	switch {
	case strings.TrimSpace(v.FirstName) == "":
		add("first_name", "first name is required")
	case !nameRe.MatchString(v.FirstName):
		add("first_name", "only letters and spaces allowed")
	}
	switch {
	case strings.TrimSpace(v.LastName) == "":
		add("last_name", "last name is required")
	case !nameRe.MatchString(v.LastName):
		add("last_name", "only letters and spaces allowed")
	}
	if v.MiddleName != "" && !nameRe.MatchString(v.MiddleName) {
		add("middle_name", "only letters and spaces allowed")
	}

	if !mobileRe.MatchString(v.MobileNumber) {
		add("mobile_number", "mobile number must be 10 digits")
	}
	if v.EmailID != "" && !emailRe.MatchString(v.EmailID) {
		add("email_id", "invalid email address")
	}
	if strings.TrimSpace(v.AddressLine1) == "" {
		add("address_line1", "address is required")
	}
	if strings.TrimSpace(v.ZipCode) == "" {
		add("zipCode", "zip code is required")
	}

	if v.AdharNo != "" && !aadhaarRe.MatchString(v.AdharNo) {
		add("adharno", "aadhaar number must be 12 digits")
	}
	if v.HealthID != "" && !healthIDRe.MatchString(v.HealthID) {
		add("healthid", "health id must be 14 digits")
	}

	if v.DateOfBirth != "" {
		dob, err := time.ParseInLocation(DateLayout, v.DateOfBirth, time.UTC)
		if err != nil {
			add("dateofbirth", "invalid date")
		} else if dob.After(today) {
			add("dateofbirth", "date of birth cannot be in the future")
		}
	}

	return errs
}
