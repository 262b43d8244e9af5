package patient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hims/hims/internal/patientform"
	"github.com/hims/hims/pkg/wire"
)

// ErrValidation marks errors caused by a bad request rather than a failure.
var ErrValidation = errors.New("validation failed")

// Service implements the patient-master operations over a Repository.
type Service struct {
	repo              Repository
	defaultHospitalID int
	now               func() time.Time
}

func NewService(repo Repository, defaultHospitalID int) *Service {
	return &Service{
		repo:              repo,
		defaultHospitalID: defaultHospitalID,
		now:               time.Now,
	}
}

func (s *Service) List(ctx context.Context, hospitalID int) ([]wire.PatientSummary, error) {
	if hospitalID <= 0 {
		hospitalID = s.defaultHospitalID
	}

	rows, err := s.repo.List(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	out := make([]wire.PatientSummary, 0, len(rows))
	for _, r := range rows {
		r := r
		out = append(out, wire.PatientSummary{
			PatientID:        r.PatientID,
			Code:             &r.Code,
			TitleName:        r.TitleName,
			FirstName:        &r.FirstName,
			LastName:         &r.LastName,
			Gender:           &r.Gender,
			Age:              &r.Age,
			MobileNumber:     &r.MobileNumber,
			IsActive:         r.IsActive,
			CreatedBy:        r.CreatedBy,
			ReferringDoctor:  r.ReferringDoctor,
			OrganizationName: r.OrganizationName,
		})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id, hospitalID int) (*wire.PatientDetail, error) {
	if hospitalID <= 0 {
		hospitalID = s.defaultHospitalID
	}
	p, err := s.repo.GetByID(ctx, id, hospitalID)
	if err != nil {
		return nil, err
	}
	return toDetail(p), nil
}

// Create registers a patient. The age and date of birth are reconciled when
// only one was sent, and a registration code is assigned when the client
// left it blank.
func (s *Service) Create(ctx context.Context, dto *wire.PatientCreate) (*wire.Ack, error) {
	if err := requireFields(map[string]string{
		"first_name":    dto.FirstName,
		"last_name":     dto.LastName,
		"mobile_number": dto.MobileNumber,
		"address_line1": dto.AddressLine1,
		"zipCode":       dto.ZipCode,
	}); err != nil {
		return nil, err
	}

	hospitalID := dto.HospitalID
	if hospitalID <= 0 {
		hospitalID = s.defaultHospitalID
	}

	p := &Patient{
		HospitalID:         hospitalID,
		Code:               dto.Code,
		TitleID:            dto.TitleID,
		FirstName:          dto.FirstName,
		MiddleName:         deref(dto.MiddleName),
		LastName:           dto.LastName,
		Gender:             dto.Gender,
		DateOfBirth:        parseWireDate(deref(dto.DateOfBirth)),
		Age:                dto.Age,
		ConsultantID:       dto.ConsultantID,
		ReferringDoctorID:  dto.ReferringDoctorID,
		PatientCategoryID:  dto.PatientCategoryID,
		OrganizationID:     dto.OrganizationID,
		ReferralSource:     dto.ReferralSource,
		NextOfKin:          deref(dto.NextOfKin),
		AddressLine1:       dto.AddressLine1,
		AddressLine2:       deref(dto.AddressLine2),
		AreaID:             atoiPtr(deref(dto.AreaID)),
		CityID:             dto.CityID,
		StateID:            dto.StateID,
		CountryID:          dto.CountryID,
		ZipCode:            dto.ZipCode,
		MobileNumber:       dto.MobileNumber,
		FaxNumber:          deref(dto.FaxNumber),
		EmailID:            dto.EmailID,
		StaffNumber:        deref(dto.StaffNumber),
		ValidateDate:       parseTimestamp(dto.ValidateDate, s.now()),
		RelationID:         dto.RelationID,
		ReligionID:         dto.ReligionID,
		Education:          deref(dto.Education),
		Occupation:         deref(dto.Occupation),
		MonthlyIncome:      dto.MonthlyIncome,
		Attendent:          deref(dto.Attendent),
		AttendRelationship: deref(dto.AttendRelationship),
		MaritalStatus:      dto.MaritalStatus,
		BloodGroup:         deref(dto.BloodGroup),
		Photo:              decodeImage(dto.PatientImage),
		PassportNo:         deref(dto.PassportNo),
		PassportDetails:    deref(dto.PassportDetails),
		PassportExpiry:     parseAnyDate(deref(dto.PassportExpiry)),
		VisaNo:             deref(dto.VisaNo),
		VisaExpiry:         parseAnyDate(deref(dto.VisaExpiry)),
		IsInternational:    deref(dto.International),
		IsBaby:             deref(dto.Baby),
		IsEmergency:        deref(dto.Emergency),
		SpouseNumber:       deref(dto.SpouseNumber),
		PatientUHID:        dto.PatientUHID,
		ReferredByMobileNo: deref(dto.ReferredByMobileNo),
		ReferredByName:     deref(dto.ReferredByName),
		AdharNo:            deref(dto.AdharNo),
		HealthID:           deref(dto.HealthID),
		OtherID1:           deref(dto.OtherID1),
		OtherID2:           deref(dto.OtherID2),
		OtherID3:           deref(dto.OtherID3),
		Remarks:            deref(dto.Remarks),
		IDCardType:         deref(dto.IDCardType),
		IsActive:           1,
		CreatedBy:          dto.CreatedBy,
	}
	if p.CreatedBy <= 0 {
		p.CreatedBy = 1
	}

	s.reconcileAgeAndDOB(p)

	if p.Code == "" {
		code, err := s.assignCode(ctx, hospitalID)
		if err != nil {
			return nil, err
		}
		p.Code = code
	}
	if p.PatientUHID == "" {
		p.PatientUHID = p.Code
	}
	if p.MotherUHID == "" {
		p.MotherUHID = p.Code
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return &wire.Ack{PatientID: id, Code: p.Code, Message: "patient registered"}, nil
}

// Update rewrites the record addressed by the payload's code.
func (s *Service) Update(ctx context.Context, dto *wire.PatientUpdate) (*wire.Ack, error) {
	if dto.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if err := requireFields(map[string]string{
		"first_name":    dto.FirstName,
		"last_name":     dto.LastName,
		"mobile_number": dto.MobileNumber,
	}); err != nil {
		return nil, err
	}

	hospitalID := dto.HospitalID
	if hospitalID <= 0 {
		hospitalID = s.defaultHospitalID
	}

	p, err := s.repo.GetByCode(ctx, dto.Code, hospitalID)
	if err != nil {
		return nil, err
	}

	p.TitleID = &dto.TitleID
	p.FirstName = dto.FirstName
	p.MiddleName = dto.MiddleName
	p.LastName = dto.LastName
	p.Gender = dto.Gender
	p.DateOfBirth = parseWireDate(dto.DateOfBirth)
	p.Age = dto.Age
	p.ConsultantID = dto.ConsultantID
	p.ReferringDoctorID = dto.ReferringDoctorID
	p.PatientCategoryID = dto.PatientCategoryID
	p.OrganizationID = dto.OrganizationID
	p.ReferralSource = dto.ReferralSource
	p.NextOfKin = dto.NextOfKin
	p.AddressLine1 = dto.AddressLine1
	p.AddressLine2 = dto.AddressLine2
	p.AreaID = atoiPtr(dto.AreaID)
	p.CityID = dto.CityID
	p.StateID = dto.StateID
	p.CountryID = dto.CountryID
	p.ZipCode = dto.ZipCode
	p.MobileNumber = dto.MobileNumber
	p.FaxNumber = dto.FaxNumber
	p.EmailID = dto.EmailID
	p.StaffNumber = dto.StaffNumber
	p.ValidateDate = parseTimestamp(dto.ValidateDate, s.now())
	p.RelationID = dto.RelationID
	p.ReligionID = dto.ReligionID
	p.Education = dto.Education
	p.Occupation = dto.Occupation
	p.MonthlyIncome = dto.MonthlyIncome
	p.Attendent = dto.Attendent
	p.AttendRelationship = dto.AttendRelationship
	p.MaritalStatus = dto.MaritalStatus
	p.BloodGroup = dto.BloodGroup
	p.PassportNo = dto.PassportNo
	p.PassportDetails = dto.PassportDetails
	p.PassportExpiry = parseWireDate(dto.PassportExpiry)
	p.VisaNo = dto.VisaNo
	p.VisaExpiry = parseWireDate(dto.VisaExpiry)
	p.IsInternational = dto.International
	p.IsBaby = dto.Baby
	p.IsEmergency = dto.Emergency
	p.SpouseNumber = dto.SpouseCode
	p.MotherUHID = dto.MotherUHID
	p.PatientUHID = dto.PatientUHID
	p.ReferredByMobileNo = deref(dto.ReferredByMobileNo)
	p.ReferredByName = deref(dto.ReferredByName)
	p.AdharNo = dto.AdharNo
	p.HealthID = dto.HealthID
	p.OtherID1 = dto.OtherID1
	p.OtherID2 = dto.OtherID2
	p.OtherID3 = dto.OtherID3
	p.Remarks = dto.Remarks
	p.IDCardType = dto.IDCardType
	p.TPAInsuranceID = dto.TPAInsuranceID
	p.IsActive = dto.IsActive

	s.reconcileAgeAndDOB(p)

	updatedBy := dto.UpdatedBy
	if updatedBy <= 0 {
		updatedBy = 1
	}
	p.UpdatedBy = &updatedBy

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}

	return &wire.Ack{PatientID: p.PatientID, Code: p.Code, Message: "patient updated"}, nil
}

func (s *Service) Delete(ctx context.Context, dto *wire.PatientDelete) error {
	id, err := strconv.Atoi(dto.PatientID)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: patient_ID must be a positive number", ErrValidation)
	}
	if dto.Code == "" {
		return fmt.Errorf("%w: code is required", ErrValidation)
	}

	hospitalID := dto.HospitalID
	if hospitalID <= 0 {
		hospitalID = s.defaultHospitalID
	}

	return s.repo.Delete(ctx, id, hospitalID, dto.Code)
}

// reconcileAgeAndDOB fills whichever of the pair is missing: a date of
// birth implied by the age string, or an age string derived from the date
// of birth.
func (s *Service) reconcileAgeAndDOB(p *Patient) {
	now := s.now()
	// date_of_birth is a date column; keep derived values at midnight UTC
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case p.DateOfBirth == nil && p.Age != "":
		if value, unit, ok := patientform.ParseAgeString(p.Age); ok {
			dob := patientform.DeriveDOBFromAge(value, unit, today)
			p.DateOfBirth = &dob
		}
	case p.DateOfBirth != nil && p.Age == "":
		value, unit := patientform.DeriveAgeFromDOB(*p.DateOfBirth, today)
		p.Age = patientform.FormatAgeString(value, unit)
	}
}

func (s *Service) assignCode(ctx context.Context, hospitalID int) (string, error) {
	fy := fiscalYear(s.now())
	seq, err := s.repo.NextSequence(ctx, hospitalID, fy)
	if err != nil {
		return "", fmt.Errorf("assign code: %w", err)
	}
	return fmt.Sprintf("AH%s/%06d", fy, seq), nil
}

// fiscalYear renders the April-to-March fiscal year of t as a four-digit
// pair, e.g. September 2025 -> "2526".
func fiscalYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d%02d", start%100, (start+1)%100)
}

func toDetail(p *Patient) *wire.PatientDetail {
	return &wire.PatientDetail{
		PatientID:          p.PatientID,
		Code:               p.Code,
		TitleID:            derefInt(p.TitleID),
		FirstName:          p.FirstName,
		MiddleName:         p.MiddleName,
		LastName:           p.LastName,
		Gender:             p.Gender,
		DateOfBirth:        timestampPtr(p.DateOfBirth),
		Age:                p.Age,
		ConsultantID:       derefInt(p.ConsultantID),
		ReferringDoctorID:  derefInt(p.ReferringDoctorID),
		OrganizationID:     derefInt(p.OrganizationID),
		PatientCategoryID:  derefInt(p.PatientCategoryID),
		NextOfKin:          p.NextOfKin,
		AddressLine1:       p.AddressLine1,
		AddressLine2:       p.AddressLine2,
		AreaID:             derefInt(p.AreaID),
		CityID:             derefInt(p.CityID),
		StateID:            derefInt(p.StateID),
		CountryID:          derefInt(p.CountryID),
		ZipCode:            p.ZipCode,
		MobileNumber:       p.MobileNumber,
		FaxNumber:          p.FaxNumber,
		EmailID:            p.EmailID,
		StaffNumber:        p.StaffNumber,
		RegDate:            timestampPtr(&p.CreatedAt),
		ValidateDate:       timestampPtr(p.ValidateDate),
		RelationID:         derefInt(p.RelationID),
		ReligionID:         derefInt(p.ReligionID),
		Education:          p.Education,
		Occupation:         p.Occupation,
		MonthlyIncome:      p.MonthlyIncome,
		Attendent:          p.Attendent,
		AttendRelationship: p.AttendRelationship,
		MaritalStatus:      p.MaritalStatus,
		HospitalID:         p.HospitalID,
		CreatedBy:          p.CreatedBy,
		CreatedDate:        timestampPtr(&p.CreatedAt),
		UpdatedBy:          derefInt(p.UpdatedBy),
		UpdatedDate:        timestampPtr(p.UpdatedAt),
		BloodGroup:         p.BloodGroup,
		IsActive:           p.IsActive,
		MotherUHID:         p.MotherUHID,
		PassportNo:         p.PassportNo,
		PassportDetails:    p.PassportDetails,
		VisaNo:             p.VisaNo,
		VisaExpiryDate:     timestampPtr(p.VisaExpiry),
		IsInternational:    p.IsInternational,
		IsEmergency:        p.IsEmergency,
		IsBaby:             p.IsBaby,
		PassportExpiry:     timestampPtr(p.PassportExpiry),
		ReferralSource:     p.ReferralSource,
		SpouseNumber:       p.SpouseNumber,
		AdharNo:            p.AdharNo,
		HealthID:           p.HealthID,
		OtherID1:           p.OtherID1,
		OtherID2:           p.OtherID2,
		OtherID3:           p.OtherID3,
		Remarks:            p.Remarks,
		IdentityCardType:   p.IDCardType,
		TPAInsuranceID:     derefInt(p.TPAInsuranceID),
	}
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}
	return nil
}

// parseWireDate reads the DD-MM-YYYY wire date, nil when blank or
// malformed.
func parseWireDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(patientform.WireDateLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// parseAnyDate accepts either wire or ISO dates; the create contract passes
// some expiry dates through unformatted.
func parseAnyDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{patientform.WireDateLayout, patientform.DateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

func parseTimestamp(s string, fallback time.Time) *time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	fallback = fallback.UTC()
	return &fallback
}

func timestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func decodeImage(b64 *string) []byte {
	if b64 == nil {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(*b64)
	if err != nil {
		return nil
	}
	return raw
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
