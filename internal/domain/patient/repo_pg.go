package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// patientCols is the full column list in scanPatient order.
const patientCols = `patient_id, hospital_id, code, title_id, first_name, middle_name,
 last_name, gender, date_of_birth, age, consultant_id, referring_doctor_id,
 patient_category_id, organization_id, referral_source, next_of_kin,
 address_line1, address_line2, area_id, city_id, state_id, country_id,
 zip_code, mobile_number, fax_number, email_id, staff_number, validate_date,
 relation_id, religion_id, education, occupation, monthly_income, attendent,
 attend_relationship, marital_status, blood_group, photo, passport_no,
 passport_details, passport_expiry, visa_no, visa_expiry, is_international,
 is_baby, is_emergency, spouse_number, mother_uhid, patient_uhid,
 referredby_mobile_no, referredby_name, adhar_no, health_id, other_id1,
 other_id2, other_id3, remarks, id_card_type, tpa_insurance_id, is_active,
 created_by, created_at, updated_by, updated_at`

// RepoPG is the pgx implementation of Repository.
type RepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.PatientID, &p.HospitalID, &p.Code, &p.TitleID, &p.FirstName, &p.MiddleName,
		&p.LastName, &p.Gender, &p.DateOfBirth, &p.Age, &p.ConsultantID, &p.ReferringDoctorID,
		&p.PatientCategoryID, &p.OrganizationID, &p.ReferralSource, &p.NextOfKin,
		&p.AddressLine1, &p.AddressLine2, &p.AreaID, &p.CityID, &p.StateID, &p.CountryID,
		&p.ZipCode, &p.MobileNumber, &p.FaxNumber, &p.EmailID, &p.StaffNumber, &p.ValidateDate,
		&p.RelationID, &p.ReligionID, &p.Education, &p.Occupation, &p.MonthlyIncome, &p.Attendent,
		&p.AttendRelationship, &p.MaritalStatus, &p.BloodGroup, &p.Photo, &p.PassportNo,
		&p.PassportDetails, &p.PassportExpiry, &p.VisaNo, &p.VisaExpiry, &p.IsInternational,
		&p.IsBaby, &p.IsEmergency, &p.SpouseNumber, &p.MotherUHID, &p.PatientUHID,
		&p.ReferredByMobileNo, &p.ReferredByName, &p.AdharNo, &p.HealthID, &p.OtherID1,
		&p.OtherID2, &p.OtherID3, &p.Remarks, &p.IDCardType, &p.TPAInsuranceID, &p.IsActive,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	return &p, nil
}

func (r *RepoPG) List(ctx context.Context, hospitalID int) ([]Summary, error) {
	const q = `
SELECT p.patient_id, p.code, t.name AS title_name, p.first_name, p.last_name,
       p.gender, p.age, p.mobile_number, p.is_active,
       u.username AS created_by_name,
       d.name AS referring_doctor_name,
       o.name AS organization_name
FROM patient p
LEFT JOIN ref_value t ON t.ref_type = 'title' AND t.item_id = p.title_id
LEFT JOIN ref_value d ON d.ref_type = 'consultant' AND d.item_id = p.referring_doctor_id
LEFT JOIN ref_value o ON o.ref_type = 'organization' AND o.item_id = p.organization_id
LEFT JOIN app_user u ON u.user_id = p.created_by
WHERE p.hospital_id = $1 AND p.is_active = 1
ORDER BY p.patient_id DESC`

	rows, err := r.pool.Query(ctx, q, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.PatientID, &s.Code, &s.TitleName, &s.FirstName, &s.LastName,
			&s.Gender, &s.Age, &s.MobileNumber, &s.IsActive,
			&s.CreatedBy, &s.ReferringDoctor, &s.OrganizationName,
		); err != nil {
			return nil, fmt.Errorf("scan patient summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return out, nil
}

func (r *RepoPG) GetByID(ctx context.Context, id, hospitalID int) (*Patient, error) {
	q := fmt.Sprintf(`SELECT %s FROM patient WHERE patient_id = $1 AND hospital_id = $2`, patientCols)
	return scanPatient(r.pool.QueryRow(ctx, q, id, hospitalID))
}

func (r *RepoPG) GetByCode(ctx context.Context, code string, hospitalID int) (*Patient, error) {
	q := fmt.Sprintf(`SELECT %s FROM patient WHERE code = $1 AND hospital_id = $2`, patientCols)
	return scanPatient(r.pool.QueryRow(ctx, q, code, hospitalID))
}

func (r *RepoPG) Create(ctx context.Context, p *Patient) (int, error) {
	const q = `
INSERT INTO patient (
 hospital_id, code, title_id, first_name, middle_name, last_name, gender,
 date_of_birth, age, consultant_id, referring_doctor_id, patient_category_id,
 organization_id, referral_source, next_of_kin, address_line1, address_line2,
 area_id, city_id, state_id, country_id, zip_code, mobile_number, fax_number,
 email_id, staff_number, validate_date, relation_id, religion_id, education,
 occupation, monthly_income, attendent, attend_relationship, marital_status,
 blood_group, photo, passport_no, passport_details, passport_expiry, visa_no,
 visa_expiry, is_international, is_baby, is_emergency, spouse_number,
 mother_uhid, patient_uhid, referredby_mobile_no, referredby_name, adhar_no,
 health_id, other_id1, other_id2, other_id3, remarks, id_card_type,
 tpa_insurance_id, is_active, created_by
) VALUES (
 $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
 $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32,
 $33, $34, $35, $36, $37, $38, $39, $40, $41, $42, $43, $44, $45, $46, $47,
 $48, $49, $50, $51, $52, $53, $54, $55, $56, $57, $58, $59, $60
) RETURNING patient_id`

	var id int
	err := r.pool.QueryRow(ctx, q,
		p.HospitalID, p.Code, p.TitleID, p.FirstName, p.MiddleName, p.LastName, p.Gender,
		p.DateOfBirth, p.Age, p.ConsultantID, p.ReferringDoctorID, p.PatientCategoryID,
		p.OrganizationID, p.ReferralSource, p.NextOfKin, p.AddressLine1, p.AddressLine2,
		p.AreaID, p.CityID, p.StateID, p.CountryID, p.ZipCode, p.MobileNumber, p.FaxNumber,
		p.EmailID, p.StaffNumber, p.ValidateDate, p.RelationID, p.ReligionID, p.Education,
		p.Occupation, p.MonthlyIncome, p.Attendent, p.AttendRelationship, p.MaritalStatus,
		p.BloodGroup, p.Photo, p.PassportNo, p.PassportDetails, p.PassportExpiry, p.VisaNo,
		p.VisaExpiry, p.IsInternational, p.IsBaby, p.IsEmergency, p.SpouseNumber,
		p.MotherUHID, p.PatientUHID, p.ReferredByMobileNo, p.ReferredByName, p.AdharNo,
		p.HealthID, p.OtherID1, p.OtherID2, p.OtherID3, p.Remarks, p.IDCardType,
		p.TPAInsuranceID, p.IsActive, p.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert patient: %w", err)
	}
	return id, nil
}

func (r *RepoPG) Update(ctx context.Context, p *Patient) error {
	const q = `
UPDATE patient SET
 title_id = $3, first_name = $4, middle_name = $5, last_name = $6,
 gender = $7, date_of_birth = $8, age = $9, consultant_id = $10,
 referring_doctor_id = $11, patient_category_id = $12, organization_id = $13,
 referral_source = $14, next_of_kin = $15, address_line1 = $16,
 address_line2 = $17, area_id = $18, city_id = $19, state_id = $20,
 country_id = $21, zip_code = $22, mobile_number = $23, fax_number = $24,
 email_id = $25, staff_number = $26, validate_date = $27, relation_id = $28,
 religion_id = $29, education = $30, occupation = $31, monthly_income = $32,
 attendent = $33, attend_relationship = $34, marital_status = $35,
 blood_group = $36, passport_no = $37, passport_details = $38,
 passport_expiry = $39, visa_no = $40, visa_expiry = $41,
 is_international = $42, is_baby = $43, is_emergency = $44,
 spouse_number = $45, mother_uhid = $46, patient_uhid = $47,
 referredby_mobile_no = $48, referredby_name = $49, adhar_no = $50,
 health_id = $51, other_id1 = $52, other_id2 = $53, other_id3 = $54,
 remarks = $55, id_card_type = $56, tpa_insurance_id = $57, is_active = $58,
 updated_by = $59, updated_at = NOW()
WHERE patient_id = $1 AND hospital_id = $2`

	tag, err := r.pool.Exec(ctx, q,
		p.PatientID, p.HospitalID, p.TitleID, p.FirstName, p.MiddleName, p.LastName,
		p.Gender, p.DateOfBirth, p.Age, p.ConsultantID,
		p.ReferringDoctorID, p.PatientCategoryID, p.OrganizationID,
		p.ReferralSource, p.NextOfKin, p.AddressLine1,
		p.AddressLine2, p.AreaID, p.CityID, p.StateID,
		p.CountryID, p.ZipCode, p.MobileNumber, p.FaxNumber,
		p.EmailID, p.StaffNumber, p.ValidateDate, p.RelationID,
		p.ReligionID, p.Education, p.Occupation, p.MonthlyIncome,
		p.Attendent, p.AttendRelationship, p.MaritalStatus,
		p.BloodGroup, p.PassportNo, p.PassportDetails,
		p.PassportExpiry, p.VisaNo, p.VisaExpiry,
		p.IsInternational, p.IsBaby, p.IsEmergency,
		p.SpouseNumber, p.MotherUHID, p.PatientUHID,
		p.ReferredByMobileNo, p.ReferredByName, p.AdharNo,
		p.HealthID, p.OtherID1, p.OtherID2, p.OtherID3,
		p.Remarks, p.IDCardType, p.TPAInsuranceID, p.IsActive,
		p.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deactivates the record; the row stays for history and the list
// query filters it out.
func (r *RepoPG) Delete(ctx context.Context, id, hospitalID int, code string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE patient SET is_active = 0, updated_at = NOW()
		 WHERE patient_id = $1 AND hospital_id = $2 AND code = $3`,
		id, hospitalID, code)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepoPG) NextSequence(ctx context.Context, hospitalID int, fiscalYear string) (int, error) {
	const q = `
INSERT INTO patient_code_seq (hospital_id, fiscal_year, seq)
VALUES ($1, $2, 1)
ON CONFLICT (hospital_id, fiscal_year)
DO UPDATE SET seq = patient_code_seq.seq + 1
RETURNING seq`

	var seq int
	if err := r.pool.QueryRow(ctx, q, hospitalID, fiscalYear).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next patient code: %w", err)
	}
	return seq, nil
}
