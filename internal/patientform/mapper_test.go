package patientform

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func baseValues() Values {
	return Values{
		Code:         "AH2526/000042",
		FirstName:    "Asha",
		LastName:     "Verma",
		Gender:       "Female",
		MobileNumber: "9876543210",
		AddressLine1: "12 MG Road",
		ZipCode:      "560001",
		MaritalStatus: "Single",
	}
}

func TestBuildCreateEmptyOptionalsBecomeNull(t *testing.T) {
	now := day(2024, time.March, 10)
	dto := BuildCreate(baseValues(), now, 1, 1)

	if dto.MiddleName != nil {
		t.Errorf("middle_name = %v, want nil", *dto.MiddleName)
	}
	if dto.TitleID != nil || dto.ConsultantID != nil || dto.CityID != nil {
		t.Errorf("empty reference ids must be nil, got title=%v consultant=%v city=%v",
			dto.TitleID, dto.ConsultantID, dto.CityID)
	}
	if dto.MonthlyIncome != nil {
		t.Errorf("monthly_Income = %v, want nil", *dto.MonthlyIncome)
	}
	if dto.International != nil || dto.Baby != nil || dto.Emergency != nil {
		t.Errorf("unset tri-state flags must be nil on create")
	}
	if dto.DateOfBirth != nil {
		t.Errorf("dateofbirth = %v, want nil when unset", *dto.DateOfBirth)
	}
	if dto.PatientImage != nil {
		t.Errorf("patientimage = %v, want nil when unset", *dto.PatientImage)
	}
}

func TestBuildCreateNeverEmitsZeroForMissingIDs(t *testing.T) {
	v := baseValues()
	v.ConsultantID = "abc"
	v.ReligionID = "  "
	v.MonthlyIncome = "lots"

	dto := BuildCreate(v, day(2024, time.March, 10), 1, 1)
	if dto.ConsultantID != nil || dto.ReligionID != nil || dto.MonthlyIncome != nil {
		t.Errorf("non-numeric inputs must map to nil, never 0")
	}
}

func TestBuildCreatePopulatedFields(t *testing.T) {
	v := baseValues()
	v.TitleID = "2"
	v.DateOfBirth = "1999-03-10"
	v.AgeValue = "25"
	v.AgeUnit = Years
	v.MonthlyIncome = "42000.5"
	v.International = "Y"
	v.ReferralSource = "3"

	now := day(2024, time.March, 10)
	dto := BuildCreate(v, now, 1, 7)

	if dto.TitleID == nil || *dto.TitleID != 2 {
		t.Errorf("Title_Id = %v, want 2", dto.TitleID)
	}
	if dto.DateOfBirth == nil || *dto.DateOfBirth != "10-03-1999" {
		t.Errorf("dateofbirth = %v, want 10-03-1999", dto.DateOfBirth)
	}
	if dto.Age != "25 Years" {
		t.Errorf("age = %q, want %q", dto.Age, "25 Years")
	}
	if dto.Gender != "F" {
		t.Errorf("gender = %q, want F", dto.Gender)
	}
	if dto.MonthlyIncome == nil || *dto.MonthlyIncome != 42000.5 {
		t.Errorf("monthly_Income = %v, want 42000.5", dto.MonthlyIncome)
	}
	if dto.International == nil || *dto.International != "Y" {
		t.Errorf("international = %v, want Y", dto.International)
	}
	if dto.ReferralSource != 3 {
		t.Errorf("referralsource = %d, want 3", dto.ReferralSource)
	}
	if dto.ValidateDate != "2024-03-10T00:00:00Z" {
		t.Errorf("validate_Date = %q", dto.ValidateDate)
	}
	if dto.HospitalID != 1 || dto.CreatedBy != 7 {
		t.Errorf("hospital/created_by = %d/%d", dto.HospitalID, dto.CreatedBy)
	}
	if dto.PatientUHID != v.Code {
		t.Errorf("patient_uhid = %q, want the code", dto.PatientUHID)
	}
}

func TestBuildUpdateDefaults(t *testing.T) {
	now := day(2024, time.March, 10)
	dto := BuildUpdate(baseValues(), now, 1, 7)

	if dto.MiddleName != "" || dto.AddressLine2 != "" || dto.Education != "" {
		t.Errorf("empty optional text must stay empty strings on update")
	}
	if dto.International != "N" || dto.Baby != "N" || dto.Emergency != "N" {
		t.Errorf("unset tri-state flags = %q/%q/%q, want N/N/N",
			dto.International, dto.Baby, dto.Emergency)
	}
	if dto.TitleID != 1 {
		t.Errorf("Title_Id = %d, want fallback 1", dto.TitleID)
	}
	if dto.ConsultantID != nil {
		t.Errorf("consultant_id = %v, want nil", *dto.ConsultantID)
	}
	if dto.IsActive != 1 {
		t.Errorf("Is_Active = %d, want 1", dto.IsActive)
	}
	if dto.MotherUHID != "AH2526/000042" || dto.PatientUHID != "AH2526/000042" {
		t.Errorf("motheruhid/patient_uhid = %q/%q, want the code", dto.MotherUHID, dto.PatientUHID)
	}
	if dto.ReferredByName != nil || dto.ReferredByMobileNo != nil {
		t.Errorf("empty referredby fields must be nil on update")
	}
	if dto.UpdatedBy != 7 || dto.HospitalID != 1 {
		t.Errorf("updated_by/hospital = %d/%d", dto.UpdatedBy, dto.HospitalID)
	}
}

func TestBuildersDefaultBlankMaritalStatus(t *testing.T) {
	v := baseValues()
	v.MaritalStatus = ""
	now := day(2024, time.March, 10)

	if got := BuildCreate(v, now, 1, 1).MaritalStatus; got != "Single" {
		t.Errorf("create marital_status = %q, want Single", got)
	}
	if got := BuildUpdate(v, now, 1, 1).MaritalStatus; got != "Single" {
		t.Errorf("update marital_status = %q, want Single", got)
	}

	v.MaritalStatus = "Married"
	if got := BuildCreate(v, now, 1, 1).MaritalStatus; got != "Married" {
		t.Errorf("create marital_status = %q, want Married", got)
	}
}

func TestBuildUpdateDates(t *testing.T) {
	v := baseValues()
	v.DateOfBirth = "1999-03-10"
	v.VisaExpiry = "2025-01-31"
	v.PassportExpiry = "2027-06-05"

	dto := BuildUpdate(v, day(2024, time.March, 10), 1, 1)

	if dto.DateOfBirth != "10-03-1999" {
		t.Errorf("dateofbirth = %q, want 10-03-1999", dto.DateOfBirth)
	}
	if dto.VisaExpiry != "31-01-2025" {
		t.Errorf("visaexpiry = %q, want 31-01-2025", dto.VisaExpiry)
	}
	if dto.PassportExpiry != "05-06-2027" {
		t.Errorf("passportexpiry = %q, want 05-06-2027", dto.PassportExpiry)
	}

	v.DateOfBirth = ""
	dto = BuildUpdate(v, day(2024, time.March, 10), 1, 1)
	if dto.DateOfBirth != "" {
		t.Errorf("empty dob must map to empty string, got %q", dto.DateOfBirth)
	}
}

func TestBuildUpdateTrimsTriState(t *testing.T) {
	v := baseValues()
	v.International = " Y "
	v.Baby = "  "

	dto := BuildUpdate(v, day(2024, time.March, 10), 1, 1)
	if dto.International != "Y" {
		t.Errorf("international = %q, want trimmed Y", dto.International)
	}
	if dto.Baby != "N" {
		t.Errorf("baby = %q, whitespace-only must default to N", dto.Baby)
	}
}

func TestMapGenderCode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "O"},
		{"Male", "M"},
		{"male", "M"},
		{"Female", "F"},
		{"FEMALE", "F"},
		{"Other", "O"},
		{"Nonbinary", "Nonbinary"}, // unrecognized words pass through
	}
	for _, tt := range tests {
		if got := MapGenderCode(tt.in); got != tt.want {
			t.Errorf("MapGenderCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"empty", "", nil},
		{"bare base64", "MTIzNDU2Nzg5", strptr("MTIzNDU2Nzg5")},
		{"data url prefix stripped", "data:image/png;base64,MTIzNDU2Nzg5", strptr("MTIzNDU2Nzg5")},
		{"prefix with empty payload", "data:image/png;base64,", nil},
		{"not base64", "!!not-base64!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeImage(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("NormalizeImage(%q) = %q, want nil", tt.in, *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("NormalizeImage(%q) = %v, want %q", tt.in, got, *tt.want)
			}
		})
	}
}

func strptr(s string) *string { return &s }

// The serialized payloads must carry real JSON nulls for absent values and
// never the strings "undefined" or "NaN".
func TestCreatePayloadJSONNulls(t *testing.T) {
	dto := BuildCreate(baseValues(), day(2024, time.March, 10), 1, 1)

	raw, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	for _, want := range []string{`"middle_name":null`, `"consultant_id":null`, `"international":null`, `"dateofbirth":null`} {
		if !strings.Contains(body, want) {
			t.Errorf("payload missing %s:\n%s", want, body)
		}
	}
	for _, banned := range []string{"undefined", "NaN"} {
		if strings.Contains(body, banned) {
			t.Errorf("payload contains %q:\n%s", banned, body)
		}
	}
}

func TestValuesValidate(t *testing.T) {
	today := day(2024, time.March, 10)

	ok := baseValues()
	if errs := ok.Validate(today); len(errs) != 0 {
		t.Fatalf("valid values rejected: %v", errs)
	}

	tests := []struct {
		name  string
		mut   func(*Values)
		field string
	}{
		{"missing first name", func(v *Values) { v.FirstName = "" }, "first_name"},
		{"digits in name", func(v *Values) { v.LastName = "Verma2" }, "last_name"},
		{"short mobile", func(v *Values) { v.MobileNumber = "12345" }, "mobile_number"},
		{"bad email", func(v *Values) { v.EmailID = "not-an-email" }, "email_id"},
		{"missing address", func(v *Values) { v.AddressLine1 = " " }, "address_line1"},
		{"bad aadhaar", func(v *Values) { v.AdharNo = "123" }, "adharno"},
		{"bad health id", func(v *Values) { v.HealthID = "42" }, "healthid"},
		{"future dob", func(v *Values) { v.DateOfBirth = "2025-01-01" }, "dateofbirth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := baseValues()
			tt.mut(&v)
			errs := v.Validate(today)
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on %s, got %v", tt.field, errs)
			}
		})
	}
}
