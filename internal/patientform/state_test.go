package patientform

import (
	"testing"
	"time"

	"github.com/hims/hims/pkg/wire"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return day(y, m, d) }
}

func TestSetDateOfBirthDerivesAge(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))

	s.SetDateOfBirth("1999-03-10")
	if s.Values.AgeValue != "25" || s.Values.AgeUnit != Years {
		t.Fatalf("age = (%s, %s), want (25, years)", s.Values.AgeValue, s.Values.AgeUnit)
	}
	if got := s.AgeString(); got != "25 Years" {
		t.Errorf("AgeString() = %q, want %q", got, "25 Years")
	}

	s.SetDateOfBirth("2024-03-05")
	if s.Values.AgeValue != "5" || s.Values.AgeUnit != Days {
		t.Errorf("age = (%s, %s), want (5, days)", s.Values.AgeValue, s.Values.AgeUnit)
	}
}

func TestSetDateOfBirthMalformedKeepsState(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))
	s.SetDateOfBirth("1999-03-10")

	s.SetDateOfBirth("10/03/1999")
	if s.Values.DateOfBirth != "1999-03-10" {
		t.Errorf("dob = %q, malformed input must not change it", s.Values.DateOfBirth)
	}
	if s.Values.AgeValue != "25" {
		t.Errorf("age value = %q, malformed input must not change it", s.Values.AgeValue)
	}
}

func TestSetDateOfBirthEmptyClearsDateOnly(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))
	s.SetDateOfBirth("1999-03-10")

	s.SetDateOfBirth("")
	if s.Values.DateOfBirth != "" {
		t.Errorf("dob = %q, want cleared", s.Values.DateOfBirth)
	}
	if s.Values.AgeValue != "25" {
		t.Errorf("age value = %q, clearing the date must not touch it", s.Values.AgeValue)
	}
}

func TestSetAgeValueDerivesDOB(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))

	s.SetAgeValue("5")
	if s.Values.AgeUnit != Years {
		t.Fatalf("unit = %s, want years default", s.Values.AgeUnit)
	}
	if s.Values.DateOfBirth != "2019-03-10" {
		t.Errorf("dob = %q, want 2019-03-10", s.Values.DateOfBirth)
	}
}

func TestSetAgeUnitRederivesDOB(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))
	s.SetAgeValue("5")

	s.SetAgeUnit(Days)
	if s.Values.DateOfBirth != "2024-03-05" {
		t.Errorf("dob = %q, want 2024-03-05 after switching to days", s.Values.DateOfBirth)
	}

	s.SetAgeUnit(Months)
	if s.Values.DateOfBirth != "2023-10-10" {
		t.Errorf("dob = %q, want 2023-10-10 after switching to months", s.Values.DateOfBirth)
	}
}

func TestSetAgeUnitAcceptsCapitalizedSpelling(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))
	s.SetAgeValue("5")
	s.SetAgeUnit(Days)

	// The wire renders units capitalized ("25 Years"), so that spelling must
	// round-trip through the setter.
	s.SetAgeUnit(AgeUnit("Years"))
	if s.Values.AgeUnit != Years {
		t.Fatalf("unit = %q, want years", s.Values.AgeUnit)
	}
	if s.Values.DateOfBirth != "2019-03-10" {
		t.Errorf("dob = %q, want 2019-03-10 re-derived under years", s.Values.DateOfBirth)
	}

	s.SetAgeUnit(AgeUnit(" MONTHS "))
	if s.Values.AgeUnit != Months || s.Values.DateOfBirth != "2023-10-10" {
		t.Errorf("unit/dob = %q/%q, want months/2023-10-10", s.Values.AgeUnit, s.Values.DateOfBirth)
	}

	s.SetAgeUnit(AgeUnit("fortnights"))
	if s.Values.AgeUnit != Months {
		t.Errorf("unit = %q, unknown unit must not change it", s.Values.AgeUnit)
	}
}

func TestSetAgeValueInvalidKeepsState(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))
	s.SetAgeValue("5")
	dob := s.Values.DateOfBirth

	for _, raw := range []string{"", "abc", "0", "-3", "2.5"} {
		s.SetAgeValue(raw)
		if s.Values.AgeValue != "5" || s.Values.DateOfBirth != dob {
			t.Errorf("SetAgeValue(%q) changed state: age=%q dob=%q", raw, s.Values.AgeValue, s.Values.DateOfBirth)
		}
	}
}

func TestSelectTitleOverwritesGender(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))
	s.SetTitles([]wire.DropdownOption{
		{ID: 1, Name: "Mr"},
		{ID: 2, Name: "Mrs."},
		{ID: 3, Name: "Dr"},
		{ID: 4, Name: "Prof"},
	})

	s.SelectTitle("2")
	if s.Values.Gender != "Female" {
		t.Fatalf("gender = %q, want Female", s.Values.Gender)
	}

	// Switching titles overwrites, even after a manual-looking value.
	s.SelectTitle("3")
	if s.Values.Gender != "Other" {
		t.Errorf("gender = %q, want Other after selecting Dr", s.Values.Gender)
	}

	// A title with no implication blanks the field.
	s.SelectTitle("4")
	if s.Values.Gender != "" {
		t.Errorf("gender = %q, want empty after selecting Prof", s.Values.Gender)
	}

	// Unknown id: nothing moves.
	s.SelectTitle("99")
	if s.Values.TitleID != "4" || s.Values.Gender != "" {
		t.Errorf("unknown title id changed state: title=%q gender=%q", s.Values.TitleID, s.Values.Gender)
	}
}

func TestLoadPopulatesForm(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))

	dob := "1999-03-10T00:00:00Z"
	income := 42000.50
	d := &wire.PatientDetail{
		PatientID:     7,
		Code:          "AH2526/000042",
		TitleID:       2,
		FirstName:     "Asha",
		LastName:      "Verma",
		Gender:        "F",
		DateOfBirth:   &dob,
		Age:           "25 Years",
		CityID:        0,
		MonthlyIncome: &income,
		MaritalStatus: "",
	}

	s.Load(d)
	v := s.Values

	if v.Code != "AH2526/000042" || v.TitleID != "2" {
		t.Errorf("code/title = %q/%q", v.Code, v.TitleID)
	}
	if v.DateOfBirth != "1999-03-10" {
		t.Errorf("dob = %q, want date part only", v.DateOfBirth)
	}
	if v.AgeValue != "25" || v.AgeUnit != Years {
		t.Errorf("age = (%s, %s), want (25, years)", v.AgeValue, v.AgeUnit)
	}
	if v.MaritalStatus != "Single" {
		t.Errorf("marital status = %q, want Single default", v.MaritalStatus)
	}
	if v.CityID != "1" {
		t.Errorf("city = %q, want fallback 1", v.CityID)
	}
	if v.MonthlyIncome != "42000.5" {
		t.Errorf("monthly income = %q", v.MonthlyIncome)
	}
	if v.PatientUHID != "AH2526/000042" {
		t.Errorf("patient uhid = %q, want the code", v.PatientUHID)
	}
}

func TestLoadDerivesAgeWhenStringUnparseable(t *testing.T) {
	s := NewStateAt(fixedClock(2024, time.March, 10))

	dob := "2023-12-10T00:00:00Z"
	s.Load(&wire.PatientDetail{DateOfBirth: &dob, Age: "unknown"})

	if s.Values.AgeValue != "3" || s.Values.AgeUnit != Months {
		t.Errorf("age = (%s, %s), want (3, months) derived from dob", s.Values.AgeValue, s.Values.AgeUnit)
	}
}
