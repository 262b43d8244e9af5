// Package patient implements the patient-master domain: the registration
// record itself, its persistence, and the REST surface the registration
// clients talk to.
package patient

import "time"

// Patient is a patient-master row. Optional references and dates are
// pointers; free-text columns default to the empty string.
type Patient struct {
	PatientID  int    `db:"patient_id"`
	HospitalID int    `db:"hospital_id"`
	Code       string `db:"code"`

	TitleID     *int       `db:"title_id"`
	FirstName   string     `db:"first_name"`
	MiddleName  string     `db:"middle_name"`
	LastName    string     `db:"last_name"`
	Gender      string     `db:"gender"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Age         string     `db:"age"`

	ConsultantID      *int `db:"consultant_id"`
	ReferringDoctorID *int `db:"referring_doctor_id"`
	PatientCategoryID *int `db:"patient_category_id"`
	OrganizationID    *int `db:"organization_id"`
	ReferralSource    int  `db:"referral_source"`

	NextOfKin    string `db:"next_of_kin"`
	AddressLine1 string `db:"address_line1"`
	AddressLine2 string `db:"address_line2"`
	AreaID       *int   `db:"area_id"`
	CityID       *int   `db:"city_id"`
	StateID      *int   `db:"state_id"`
	CountryID    *int   `db:"country_id"`
	ZipCode      string `db:"zip_code"`

	MobileNumber string `db:"mobile_number"`
	FaxNumber    string `db:"fax_number"`
	EmailID      string `db:"email_id"`
	StaffNumber  string `db:"staff_number"`

	ValidateDate *time.Time `db:"validate_date"`

	RelationID         *int     `db:"relation_id"`
	ReligionID         *int     `db:"religion_id"`
	Education          string   `db:"education"`
	Occupation         string   `db:"occupation"`
	MonthlyIncome      *float64 `db:"monthly_income"`
	Attendent          string   `db:"attendent"`
	AttendRelationship string   `db:"attend_relationship"`
	MaritalStatus      string   `db:"marital_status"`
	BloodGroup         string   `db:"blood_group"`

	Photo []byte `db:"photo"`

	PassportNo      string     `db:"passport_no"`
	PassportDetails string     `db:"passport_details"`
	PassportExpiry  *time.Time `db:"passport_expiry"`
	VisaNo          string     `db:"visa_no"`
	VisaExpiry      *time.Time `db:"visa_expiry"`

	IsInternational string `db:"is_international"`
	IsBaby          string `db:"is_baby"`
	IsEmergency     string `db:"is_emergency"`

	SpouseNumber       string `db:"spouse_number"`
	MotherUHID         string `db:"mother_uhid"`
	PatientUHID        string `db:"patient_uhid"`
	ReferredByMobileNo string `db:"referredby_mobile_no"`
	ReferredByName     string `db:"referredby_name"`

	AdharNo    string `db:"adhar_no"`
	HealthID   string `db:"health_id"`
	OtherID1   string `db:"other_id1"`
	OtherID2   string `db:"other_id2"`
	OtherID3   string `db:"other_id3"`
	Remarks    string `db:"remarks"`
	IDCardType string `db:"id_card_type"`

	TPAInsuranceID *int `db:"tpa_insurance_id"`

	IsActive  int        `db:"is_active"`
	CreatedBy int        `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedBy *int       `db:"updated_by"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// Summary is one patient-list row: the record's key columns plus the names
// joined in from the reference tables.
type Summary struct {
	PatientID        int     `db:"patient_id"`
	Code             string  `db:"code"`
	TitleName        *string `db:"title_name"`
	FirstName        string  `db:"first_name"`
	LastName         string  `db:"last_name"`
	Gender           string  `db:"gender"`
	Age              string  `db:"age"`
	MobileNumber     string  `db:"mobile_number"`
	IsActive         int     `db:"is_active"`
	CreatedBy        *string `db:"created_by_name"`
	ReferringDoctor  *string `db:"referring_doctor_name"`
	OrganizationName *string `db:"organization_name"`
}
