// Package wire defines the JSON payload shapes exchanged between the
// registration clients and the patient-master API. Field names and casing
// follow the backend contract exactly and must not be "cleaned up" — several
// consumers depend on the mixed-case names as-is.
package wire

// PatientSummary is one row of GET /api/patient?hospitalId=.
type PatientSummary struct {
	PatientID        int     `json:"Patient_ID"`
	Code             *string `json:"Code"`
	TitleName        *string `json:"Title_Name"`
	FirstName        *string `json:"First_name"`
	LastName         *string `json:"Last_Name"`
	Gender           *string `json:"Gender"`
	Age              *string `json:"Age"`
	MobileNumber     *string `json:"Mobile_number"`
	IsActive         int     `json:"Is_Active"`
	CreatedBy        *string `json:"CreatedBy"`
	ReferringDoctor  *string `json:"referringdoctor"`
	OrganizationName *string `json:"organization_name"`
}

// PatientDetail is the full record returned by GET /api/patient/{id}.
type PatientDetail struct {
	PatientID          int      `json:"Patient_ID"`
	Code               string   `json:"Code"`
	TitleID            int      `json:"Title_Id"`
	FirstName          string   `json:"First_Name"`
	MiddleName         string   `json:"Middle_name"`
	LastName           string   `json:"Last_Name"`
	Gender             string   `json:"Gender"`
	DateOfBirth        *string  `json:"DateOfBirth"`
	Age                string   `json:"Age"`
	ConsultantID       int      `json:"Consultant_id"`
	ReferringDoctorID  int      `json:"ReferringDoctor_ID"`
	OrganizationID     int      `json:"Organization_ID"`
	PatientCategoryID  int      `json:"PatientCategory_ID"`
	NextOfKin          string   `json:"NextOfKin"`
	AddressLine1       string   `json:"Address_line1"`
	AddressLine2       string   `json:"Address_line2"`
	AreaID             int      `json:"Area_Id"`
	CityID             int      `json:"City_Id"`
	StateID            int      `json:"State_Id"`
	CountryID          int      `json:"Country_Id"`
	ZipCode            string   `json:"ZipCode"`
	MobileNumber       string   `json:"Mobile_number"`
	FaxNumber          string   `json:"Fax_number"`
	EmailID            string   `json:"Email_id"`
	Website            string   `json:"Website"`
	StaffNumber        string   `json:"Staff_Number"`
	RegDate            *string  `json:"Reg_Date"`
	ValidateDate       *string  `json:"Validate_Date"`
	RelationID         int      `json:"Relation_ID"`
	ReligionID         int      `json:"Religion_ID"`
	Education          string   `json:"Education"`
	Occupation         string   `json:"Occupation"`
	MonthlyIncome      *float64 `json:"Monthly_Income"`
	Attendent          string   `json:"Attendent"`
	AttendRelationship string   `json:"Attend_Relationship"`
	MaritalStatus      string   `json:"Marital_status"`
	HospitalID         int      `json:"Hospital_id"`
	CreatedBy          int      `json:"Created_by"`
	CreatedDate        *string  `json:"Created_date"`
	UpdatedBy          int      `json:"Updated_by"`
	UpdatedDate        *string  `json:"Updated_date"`
	BloodGroup         string   `json:"Blood_group"`
	OldRegNo           string   `json:"OldRegNo"`
	IsActive           int      `json:"Is_Active"`
	MotherUHID         string   `json:"Mother_UHID"`
	PassportNo         string   `json:"PassportNo"`
	PassportDetails    string   `json:"PassportDetails"`
	VisaNo             string   `json:"VisaNo"`
	VisaExpiryDate     *string  `json:"VisaExpiryDate"`
	IsInternational    string   `json:"is_international"`
	IsEmergency        string   `json:"is_emergency"`
	IsBaby             string   `json:"is_baby"`
	PassportExpiry     *string  `json:"PassportExpiry"`
	RegFeeStatus       int      `json:"RegFeeStatus"`
	ReferralSource     int      `json:"ReferralSource"`
	SpouseNumber       string   `json:"Spouse_Number"`
	ExternalRefNo      string   `json:"External_RefNo"`
	AdharNo            string   `json:"AdharNo"`
	HealthID           string   `json:"HealthID"`
	OtherID1           string   `json:"OtherID1"`
	OtherID2           string   `json:"OtherID2"`
	OtherID3           string   `json:"OtherID3"`
	Remarks            string   `json:"Remarks"`
	IdentityCardType   string   `json:"IdentityCardType"`
	TPAInsuranceID     int      `json:"TPAInsuranceID"`
}

// PatientCreate is the POST /api/patient payload. Optional text fields are
// null when blank; the tri-state flags are null when unset.
type PatientCreate struct {
	Code               string   `json:"code"`
	TitleID            *int     `json:"Title_Id"`
	FirstName          string   `json:"first_name"`
	MiddleName         *string  `json:"middle_name"`
	LastName           string   `json:"last_name"`
	Gender             string   `json:"gender"`
	DateOfBirth        *string  `json:"dateofbirth"`
	Age                string   `json:"age"`
	ConsultantID       *int     `json:"consultant_id"`
	ReferringDoctorID  *int     `json:"referringDoctor_ID"`
	PatientCategoryID  *int     `json:"patientCategory_ID"`
	OrganizationID     *int     `json:"organization_ID"`
	NextOfKin          *string  `json:"nextofkin"`
	AddressLine1       string   `json:"address_line1"`
	AddressLine2       *string  `json:"address_line2"`
	AreaID             *string  `json:"area_id"`
	CityID             *int     `json:"city_Id"`
	StateID            *int     `json:"state_Id"`
	CountryID          *int     `json:"country_Id"`
	ZipCode            string   `json:"zipCode"`
	MobileNumber       string   `json:"mobile_number"`
	FaxNumber          *string  `json:"fax_number"`
	EmailID            string   `json:"email_id"`
	StaffNumber        *string  `json:"staff_Number"`
	ValidateDate       string   `json:"validate_Date"`
	RelationID         *int     `json:"relation_ID"`
	ReligionID         *int     `json:"religion_ID"`
	Education          *string  `json:"education"`
	Occupation         *string  `json:"occupation"`
	MonthlyIncome      *float64 `json:"monthly_Income"`
	Attendent          *string  `json:"attendent"`
	AttendRelationship *string  `json:"attend_Relationship"`
	MaritalStatus      string   `json:"marital_status"`
	HospitalID         int      `json:"hospital_id"`
	CreatedBy          int      `json:"created_by"`
	BloodGroup         *string  `json:"bloodgroup"`
	PatientImage       *string  `json:"patientimage"`
	PassportNo         *string  `json:"passportno"`
	PassportDetails    *string  `json:"passportdetails"`
	VisaNo             *string  `json:"visano"`
	VisaExpiry         *string  `json:"visaexpiry"`
	International      *string  `json:"international"`
	Baby               *string  `json:"baby"`
	Emergency          *string  `json:"emergency"`
	PassportExpiry     *string  `json:"passportexpiry"`
	ReferralSource     int      `json:"referralsource"`
	SpouseNumber       *string  `json:"Spouse_Number"`
	PatientUHID        string   `json:"patient_uhid"`
	ReferredByMobileNo *string  `json:"referredby_mobile_no"`
	ReferredByName     *string  `json:"referredby_name"`
	AdharNo            *string  `json:"adharno"`
	HealthID           *string  `json:"healthid"`
	OtherID1           *string  `json:"otherid1"`
	OtherID2           *string  `json:"otherid2"`
	OtherID3           *string  `json:"otherid3"`
	Remarks            *string  `json:"remarks"`
	IDCardType         *string  `json:"idCardType"`
}

// PatientUpdate is the PUT /api/patient payload. Unlike the create shape,
// most optional text fields default to "" and the tri-state flags to "N".
// The record is addressed by code; there is no id in the path.
type PatientUpdate struct {
	SpouseCode         string   `json:"spousecode"`
	TPAInsuranceID     *int     `json:"TPAInsurance_ID"`
	Provision          string   `json:"provision"`
	MotherUHID         string   `json:"motheruhid"`
	TitleID            int      `json:"Title_Id"`
	Code               string   `json:"code"`
	FirstName          string   `json:"first_name"`
	MiddleName         string   `json:"middle_name"`
	LastName           string   `json:"last_name"`
	Gender             string   `json:"gender"`
	DateOfBirth        string   `json:"dateofbirth"`
	Age                string   `json:"age"`
	ConsultantID       *int     `json:"consultant_id"`
	ReferringDoctorID  *int     `json:"referringDoctor_ID"`
	PatientCategoryID  *int     `json:"patientCategory_ID"`
	OrganizationID     *int     `json:"organization_ID"`
	NextOfKin          string   `json:"nextofkin"`
	AddressLine1       string   `json:"address_line1"`
	AddressLine2       string   `json:"address_line2"`
	AreaID             string   `json:"area_id"`
	CityID             *int     `json:"city_Id"`
	StateID            *int     `json:"state_Id"`
	CountryID          *int     `json:"country_Id"`
	ZipCode            string   `json:"zipCode"`
	MobileNumber       string   `json:"mobile_number"`
	FaxNumber          string   `json:"fax_number"`
	EmailID            string   `json:"email_id"`
	StaffNumber        string   `json:"staff_Number"`
	RelationID         *int     `json:"relation_ID"`
	ReligionID         *int     `json:"religion_ID"`
	Education          string   `json:"education"`
	Occupation         string   `json:"occupation"`
	MonthlyIncome      *float64 `json:"monthly_Income"`
	Attendent          string   `json:"attendent"`
	MaritalStatus      string   `json:"marital_status"`
	AttendRelationship string   `json:"attend_Relationship"`
	HospitalID         int      `json:"hospital_id"`
	UpdatedBy          int      `json:"updated_by"`
	BloodGroup         string   `json:"bloodgroup"`
	IsActive           int      `json:"Is_Active"`
	PassportNo         string   `json:"passportno"`
	PassportDetails    string   `json:"passportdetails"`
	VisaNo             string   `json:"visano"`
	VisaExpiry         string   `json:"visaexpiry"`
	International      string   `json:"international"`
	Baby               string   `json:"baby"`
	Emergency          string   `json:"emergency"`
	ValidateDate       string   `json:"validate_Date"`
	PassportExpiry     string   `json:"passportexpiry"`
	ReferralSource     int      `json:"referralsource"`
	PatientUHID        string   `json:"patient_uhid"`
	ReferredByMobileNo *string  `json:"referredby_mobile_no"`
	ReferredByName     *string  `json:"referredby_name"`
	AdharNo            string   `json:"adharno"`
	HealthID           string   `json:"healthid"`
	OtherID1           string   `json:"otherid1"`
	OtherID2           string   `json:"otherid2"`
	OtherID3           string   `json:"otherid3"`
	Remarks            string   `json:"remarks"`
	IDCardType         string   `json:"idCardType"`
}

// PatientDelete is the DELETE /api/patient payload. The id travels in the
// body as a string, not in the path.
type PatientDelete struct {
	PatientID  string `json:"patient_ID"`
	HospitalID int    `json:"hospital_id"`
	Code       string `json:"code"`
}

// Ack is the acknowledgment returned by the write endpoints.
type Ack struct {
	PatientID int    `json:"patient_ID"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}
