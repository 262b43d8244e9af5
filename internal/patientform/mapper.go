package patientform

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/hims/hims/pkg/wire"
)

// WireDateLayout is the date format the write endpoints expect.
const WireDateLayout = "02-01-2006"

// BuildCreate maps the form values to the create payload. Missing optional
// fields become nulls; nothing here errors and nothing here enforces
// business rules — validation happens before the mapper, required-field
// enforcement on the server.
func BuildCreate(v Values, now time.Time, hospitalID, userID int) wire.PatientCreate {
	return wire.PatientCreate{
		Code:               v.Code,
		TitleID:            intOrNil(v.TitleID),
		FirstName:          v.FirstName,
		MiddleName:         strOrNil(v.MiddleName),
		LastName:           v.LastName,
		Gender:             MapGenderCode(v.Gender),
		DateOfBirth:        strOrNil(wireDate(v.DateOfBirth)),
		Age:                ageString(v),
		ConsultantID:       intOrNil(v.ConsultantID),
		ReferringDoctorID:  intOrNil(v.ReferringDoctorID),
		PatientCategoryID:  intOrNil(v.PatientCategoryID),
		OrganizationID:     intOrNil(v.OrganizationID),
		NextOfKin:          strOrNil(v.NextOfKin),
		AddressLine1:       v.AddressLine1,
		AddressLine2:       strOrNil(v.AddressLine2),
		AreaID:             strOrNil(v.AreaID),
		CityID:             intOrNil(v.CityID),
		StateID:            intOrNil(v.StateID),
		CountryID:          intOrNil(v.CountryID),
		ZipCode:            v.ZipCode,
		MobileNumber:       v.MobileNumber,
		FaxNumber:          strOrNil(v.FaxNumber),
		EmailID:            v.EmailID,
		StaffNumber:        strOrNil(v.StaffNumber),
		ValidateDate:       now.UTC().Format(time.RFC3339),
		RelationID:         intOrNil(v.RelationID),
		ReligionID:         intOrNil(v.ReligionID),
		Education:          strOrNil(v.Education),
		Occupation:         strOrNil(v.Occupation),
		MonthlyIncome:      floatOrNil(v.MonthlyIncome),
		Attendent:          strOrNil(v.Attendent),
		AttendRelationship: strOrNil(v.AttendRelationship),
		MaritalStatus:      maritalOrSingle(v.MaritalStatus),
		HospitalID:         hospitalID,
		CreatedBy:          userID,
		BloodGroup:         strOrNil(v.BloodGroup),
		PatientImage:       NormalizeImage(v.PatientImage),
		PassportNo:         strOrNil(v.PassportNo),
		PassportDetails:    strOrNil(v.PassportDetails),
		VisaNo:             strOrNil(v.VisaNo),
		VisaExpiry:         strOrNil(v.VisaExpiry),
		International:      strOrNil(v.International),
		Baby:               strOrNil(v.Baby),
		Emergency:          strOrNil(v.Emergency),
		PassportExpiry:     strOrNil(v.PassportExpiry),
		ReferralSource:     intOrZero(v.ReferralSource),
		SpouseNumber:       strOrNil(v.SpouseNumber),
		PatientUHID:        v.Code,
		ReferredByMobileNo: strOrNil(v.ReferredByMobileNo),
		ReferredByName:     strOrNil(v.ReferredByName),
		AdharNo:            strOrNil(v.AdharNo),
		HealthID:           strOrNil(v.HealthID),
		OtherID1:           strOrNil(v.OtherID1),
		OtherID2:           strOrNil(v.OtherID2),
		OtherID3:           strOrNil(v.OtherID3),
		Remarks:            strOrNil(v.Remarks),
		IDCardType:         strOrNil(v.IDCardType),
	}
}

// BuildUpdate maps the form values to the update payload. The update
// contract wants empty strings, not nulls, for most optional text, "N" for
// unset tri-state flags, and carries the registration code as the record
// address (motheruhid and patient_uhid echo it).
func BuildUpdate(v Values, now time.Time, hospitalID, userID int) wire.PatientUpdate {
	return wire.PatientUpdate{
		SpouseCode:         v.SpouseNumber,
		TPAInsuranceID:     nil,
		Provision:          "",
		MotherUHID:         v.Code,
		TitleID:            intOrOne(v.TitleID),
		Code:               v.Code,
		FirstName:          v.FirstName,
		MiddleName:         v.MiddleName,
		LastName:           v.LastName,
		Gender:             MapGenderCode(v.Gender),
		DateOfBirth:        wireDate(v.DateOfBirth),
		Age:                ageString(v),
		ConsultantID:       intOrNil(v.ConsultantID),
		ReferringDoctorID:  intOrNil(v.ReferringDoctorID),
		PatientCategoryID:  intOrNil(v.PatientCategoryID),
		OrganizationID:     intOrNil(v.OrganizationID),
		NextOfKin:          v.NextOfKin,
		AddressLine1:       v.AddressLine1,
		AddressLine2:       v.AddressLine2,
		AreaID:             v.AreaID,
		CityID:             intOrNil(v.CityID),
		StateID:            intOrNil(v.StateID),
		CountryID:          intOrNil(v.CountryID),
		ZipCode:            v.ZipCode,
		MobileNumber:       v.MobileNumber,
		FaxNumber:          v.FaxNumber,
		EmailID:            v.EmailID,
		StaffNumber:        v.StaffNumber,
		RelationID:         intOrNil(v.RelationID),
		ReligionID:         intOrNil(v.ReligionID),
		Education:          v.Education,
		Occupation:         v.Occupation,
		MonthlyIncome:      floatOrNil(v.MonthlyIncome),
		Attendent:          v.Attendent,
		MaritalStatus:      maritalOrSingle(v.MaritalStatus),
		AttendRelationship: v.AttendRelationship,
		HospitalID:         hospitalID,
		UpdatedBy:          userID,
		BloodGroup:         v.BloodGroup,
		IsActive:           1,
		PassportNo:         v.PassportNo,
		PassportDetails:    v.PassportDetails,
		VisaNo:             v.VisaNo,
		VisaExpiry:         wireDate(v.VisaExpiry),
		International:      ynOrDefault(v.International),
		Baby:               ynOrDefault(v.Baby),
		Emergency:          ynOrDefault(v.Emergency),
		ValidateDate:       now.UTC().Format(time.RFC3339),
		PassportExpiry:     wireDate(v.PassportExpiry),
		ReferralSource:     intOrZero(v.ReferralSource),
		PatientUHID:        v.Code,
		ReferredByMobileNo: strOrNil(v.ReferredByMobileNo),
		ReferredByName:     strOrNil(v.ReferredByName),
		AdharNo:            v.AdharNo,
		HealthID:           v.HealthID,
		OtherID1:           v.OtherID1,
		OtherID2:           v.OtherID2,
		OtherID3:           v.OtherID3,
		Remarks:            v.Remarks,
		IDCardType:         v.IDCardType,
	}
}

// BuildDelete maps the delete payload; the id travels as a string.
func BuildDelete(patientID int, code string, hospitalID int) wire.PatientDelete {
	return wire.PatientDelete{
		PatientID:  strconv.Itoa(patientID),
		HospitalID: hospitalID,
		Code:       code,
	}
}

// MapGenderCode folds a gender word to its single-letter wire code. Empty
// maps to "O"; an unrecognized word passes through unchanged rather than
// being guessed at.
func MapGenderCode(gender string) string {
	switch strings.ToLower(gender) {
	case "":
		return "O"
	case "male":
		return "M"
	case "female":
		return "F"
	case "other":
		return "O"
	default:
		return gender
	}
}

// NormalizeImage prepares a captured image for the wire: any
// "data:<mime>;base64," prefix is stripped, the remainder must decode as
// base64, and empty or undecodable input maps to nil.
func NormalizeImage(img string) *string {
	if img == "" {
		return nil
	}
	if i := strings.IndexByte(img, ','); i >= 0 && strings.HasPrefix(img, "data:") {
		img = img[i+1:]
	}
	if img == "" {
		return nil
	}
	if _, err := base64.StdEncoding.DecodeString(img); err != nil {
		return nil
	}
	return &img
}

// wireDate converts an ISO date to the DD-MM-YYYY wire format. Empty stays
// empty; a string that is not an ISO date passes through untouched.
func wireDate(iso string) string {
	if iso == "" {
		return ""
	}
	d, err := time.ParseInLocation(DateLayout, iso, time.UTC)
	if err != nil {
		return iso
	}
	return d.Format(WireDateLayout)
}

// ageString renders the age value/unit pair, "" when the value is absent or
// not a positive number.
func ageString(v Values) string {
	n, err := strconv.Atoi(v.AgeValue)
	if err != nil || n <= 0 {
		return ""
	}
	unit := v.AgeUnit
	if unit == "" {
		unit = Years
	}
	return FormatAgeString(n, unit)
}

// maritalOrSingle defaults a blank marital status to "Single" on both write
// paths, so callers that skip the form state still submit the default.
func maritalOrSingle(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Single"
	}
	return s
}

// ynOrDefault normalizes a tri-state flag for the update contract: trimmed,
// empty becomes "N".
func ynOrDefault(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return "N"
	}
	return t
}

func strOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func intOrNil(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func intOrOne(s string) int {
	if n := intOrNil(s); n != nil {
		return *n
	}
	return 1
}

func intOrZero(s string) int {
	if n := intOrNil(s); n != nil {
		return *n
	}
	return 0
}

func floatOrNil(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
