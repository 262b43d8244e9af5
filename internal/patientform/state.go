package patientform

import (
	"strconv"
	"strings"
	"time"

	"github.com/hims/hims/pkg/wire"
)

// Values holds the raw, string-typed field values of an in-progress patient
// record, the way the form edits them. Conversion to wire types happens only
// in the DTO builders.
type Values struct {
	Code        string
	TitleID     string
	FirstName   string
	MiddleName  string
	LastName    string
	Gender      string
	DateOfBirth string // ISO date, YYYY-MM-DD
	AgeValue    string
	AgeUnit     AgeUnit

	ConsultantID      string
	ReferringDoctorID string
	PatientCategoryID string
	OrganizationID    string
	ReferralSource    string

	NextOfKin    string
	AddressLine1 string
	AddressLine2 string
	AreaID       string
	CityID       string
	StateID      string
	CountryID    string
	ZipCode      string

	MobileNumber string
	FaxNumber    string
	EmailID      string
	StaffNumber  string

	RelationID         string
	ReligionID         string
	Education          string
	Occupation         string
	MonthlyIncome      string
	Attendent          string
	AttendRelationship string
	MaritalStatus      string
	BloodGroup         string

	PassportNo      string
	PassportDetails string
	PassportExpiry  string
	VisaNo          string
	VisaExpiry      string

	International string // "Y" / "N" / ""
	Baby          string
	Emergency     string

	SpouseNumber       string
	PatientUHID        string
	ReferredByMobileNo string
	ReferredByName     string

	AdharNo   string
	HealthID  string
	OtherID1  string
	OtherID2  string
	OtherID3  string
	Remarks   string
	IDCardType string

	PatientImage string // base64, optionally with a data: URL prefix
}

// State is the registration form's state container. Every coupling between
// fields — date of birth vs. age, title vs. gender — goes through a setter
// here so the derivation rules live in one place instead of scattered
// change handlers.
type State struct {
	Values Values
	Titles []wire.DropdownOption

	now func() time.Time
}

// NewState returns an empty form state using the wall clock.
func NewState() *State {
	return NewStateAt(time.Now)
}

// NewStateAt returns an empty form state deriving ages against the given
// clock. Tests pass a fixed clock.
func NewStateAt(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{now: now}
}

// SetTitles installs the loaded title dropdown. Title selection resolves
// against this list, so it must be populated before SelectTitle is useful.
func (s *State) SetTitles(titles []wire.DropdownOption) {
	s.Titles = titles
}

// SetDateOfBirth sets the date of birth from an ISO date string and
// re-derives the age value and unit. An empty string clears the date and
// leaves the age fields alone; a malformed string is ignored entirely and
// the previous state survives.
func (s *State) SetDateOfBirth(iso string) {
	if iso == "" {
		s.Values.DateOfBirth = ""
		return
	}
	dob, err := time.ParseInLocation(DateLayout, iso, time.UTC)
	if err != nil {
		return
	}
	s.Values.DateOfBirth = iso

	value, unit := DeriveAgeFromDOB(dob, s.today())
	s.Values.AgeValue = strconv.Itoa(value)
	s.Values.AgeUnit = unit
}

// SetAgeValue sets the age from raw input and re-derives the date of birth
// under the current unit. Non-numeric or non-positive input is ignored and
// the previous values stay in place.
func (s *State) SetAgeValue(raw string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return
	}
	if s.Values.AgeUnit == "" {
		s.Values.AgeUnit = Years
	}
	s.Values.AgeValue = strconv.Itoa(n)
	s.Values.DateOfBirth = DeriveDOBFromAge(n, s.Values.AgeUnit, s.today()).Format(DateLayout)
}

// SetAgeUnit switches the age unit. The unit is matched case-insensitively,
// so the capitalized wire spelling ("Years") works too. When a valid age
// value is present the date of birth is re-derived under the new unit;
// otherwise only the unit changes. Anything else is ignored.
func (s *State) SetAgeUnit(unit AgeUnit) {
	switch AgeUnit(strings.ToLower(strings.TrimSpace(string(unit)))) {
	case Years:
		unit = Years
	case Months:
		unit = Months
	case Days:
		unit = Days
	default:
		return
	}
	s.Values.AgeUnit = unit

	n, err := strconv.Atoi(s.Values.AgeValue)
	if err != nil || n <= 0 {
		return
	}
	s.Values.DateOfBirth = DeriveDOBFromAge(n, unit, s.today()).Format(DateLayout)
}

// SelectTitle records a title choice and overwrites the gender field with
// whatever the title implies, including blanking it for titles that imply
// none. An id not present in the loaded title list is a no-op.
func (s *State) SelectTitle(titleID string) {
	for _, opt := range s.Titles {
		if strconv.Itoa(opt.ID) == titleID {
			s.Values.TitleID = titleID
			s.Values.Gender = ResolveGender(opt.Name)
			return
		}
	}
}

// AgeString renders the current age for the wire ("25 Years"), or "" when
// no valid age value is held.
func (s *State) AgeString() string {
	n, err := strconv.Atoi(s.Values.AgeValue)
	if err != nil || n <= 0 {
		return ""
	}
	unit := s.Values.AgeUnit
	if unit == "" {
		unit = Years
	}
	return FormatAgeString(n, unit)
}

// Load populates the form from a fetched record for edit mode. Timestamps
// are cut down to their date part, marital status defaults to "Single", and
// the age fields are parsed from the stored age string, falling back to
// derivation from the date of birth.
func (s *State) Load(d *wire.PatientDetail) {
	v := &s.Values

	v.Code = d.Code
	v.TitleID = positiveInt(d.TitleID)
	v.FirstName = d.FirstName
	v.MiddleName = d.MiddleName
	v.LastName = d.LastName
	v.Gender = d.Gender
	v.DateOfBirth = dateOnly(strDeref(d.DateOfBirth))

	v.ConsultantID = positiveInt(d.ConsultantID)
	v.ReferringDoctorID = positiveInt(d.ReferringDoctorID)
	v.PatientCategoryID = positiveInt(d.PatientCategoryID)
	v.OrganizationID = positiveInt(d.OrganizationID)
	v.ReferralSource = positiveInt(d.ReferralSource)

	v.NextOfKin = d.NextOfKin
	v.AddressLine1 = d.AddressLine1
	v.AddressLine2 = d.AddressLine2
	v.AreaID = positiveInt(d.AreaID)
	v.CityID = positiveInt(d.CityID)
	if v.CityID == "" {
		v.CityID = "1"
	}
	v.StateID = positiveInt(d.StateID)
	v.CountryID = positiveInt(d.CountryID)
	v.ZipCode = d.ZipCode

	v.MobileNumber = d.MobileNumber
	v.FaxNumber = d.FaxNumber
	v.EmailID = d.EmailID
	v.StaffNumber = d.StaffNumber

	v.RelationID = positiveInt(d.RelationID)
	v.ReligionID = positiveInt(d.ReligionID)
	v.Education = d.Education
	v.Occupation = d.Occupation
	if d.MonthlyIncome != nil {
		v.MonthlyIncome = strconv.FormatFloat(*d.MonthlyIncome, 'f', -1, 64)
	} else {
		v.MonthlyIncome = ""
	}
	v.Attendent = d.Attendent
	v.AttendRelationship = d.AttendRelationship
	v.MaritalStatus = d.MaritalStatus
	if v.MaritalStatus == "" {
		v.MaritalStatus = "Single"
	}
	v.BloodGroup = d.BloodGroup

	v.PassportNo = d.PassportNo
	v.PassportDetails = d.PassportDetails
	v.PassportExpiry = dateOnly(strDeref(d.PassportExpiry))
	v.VisaNo = d.VisaNo
	v.VisaExpiry = dateOnly(strDeref(d.VisaExpiryDate))

	v.International = d.IsInternational
	v.Baby = d.IsBaby
	v.Emergency = d.IsEmergency

	v.SpouseNumber = d.SpouseNumber
	v.PatientUHID = d.Code

	v.AdharNo = d.AdharNo
	v.HealthID = d.HealthID
	v.OtherID1 = d.OtherID1
	v.OtherID2 = d.OtherID2
	v.OtherID3 = d.OtherID3
	v.Remarks = d.Remarks
	v.IDCardType = d.IdentityCardType

	if value, unit, ok := ParseAgeString(d.Age); ok {
		v.AgeValue = strconv.Itoa(value)
		v.AgeUnit = unit
	} else if dob, err := time.ParseInLocation(DateLayout, v.DateOfBirth, time.UTC); err == nil {
		value, unit := DeriveAgeFromDOB(dob, s.today())
		v.AgeValue = strconv.Itoa(value)
		v.AgeUnit = unit
	} else {
		v.AgeValue = ""
		v.AgeUnit = ""
	}
}

func (s *State) today() time.Time {
	return s.now()
}

// dateOnly trims an ISO timestamp down to its date part.
func dateOnly(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

func positiveInt(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
