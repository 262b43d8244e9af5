package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hims/hims/pkg/wire"
)

type mockRepo struct {
	byID    map[int]*Patient
	nextID  int
	seq     int
	listErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[int]*Patient)}
}

func (m *mockRepo) List(ctx context.Context, hospitalID int) ([]Summary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []Summary
	for _, p := range m.byID {
		if p.HospitalID != hospitalID || p.IsActive != 1 {
			continue
		}
		out = append(out, Summary{
			PatientID:    p.PatientID,
			Code:         p.Code,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Gender:       p.Gender,
			Age:          p.Age,
			MobileNumber: p.MobileNumber,
			IsActive:     p.IsActive,
		})
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id, hospitalID int) (*Patient, error) {
	p, ok := m.byID[id]
	if !ok || p.HospitalID != hospitalID {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetByCode(ctx context.Context, code string, hospitalID int) (*Patient, error) {
	for _, p := range m.byID {
		if p.Code == code && p.HospitalID == hospitalID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) (int, error) {
	m.nextID++
	p.PatientID = m.nextID
	p.CreatedAt = time.Now()
	cp := *p
	m.byID[p.PatientID] = &cp
	return p.PatientID, nil
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	if _, ok := m.byID[p.PatientID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.byID[p.PatientID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id, hospitalID int, code string) error {
	p, ok := m.byID[id]
	if !ok || p.HospitalID != hospitalID || p.Code != code {
		return ErrNotFound
	}
	p.IsActive = 0
	return nil
}

func (m *mockRepo) NextSequence(ctx context.Context, hospitalID int, fiscalYear string) (int, error) {
	m.seq++
	return m.seq, nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo, 1)
	s.now = func() time.Time {
		return time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)
	}
	return s
}

func validCreate() *wire.PatientCreate {
	return &wire.PatientCreate{
		FirstName:    "Asha",
		LastName:     "Verma",
		MobileNumber: "9876543210",
		AddressLine1: "12 MG Road",
		ZipCode:      "560001",
		HospitalID:   1,
		CreatedBy:    1,
	}
}

func TestCreateAssignsCode(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	ack, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ack.Code != "AH2526/000001" {
		t.Errorf("code = %q, want AH2526/000001", ack.Code)
	}

	ack2, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if ack2.Code != "AH2526/000002" {
		t.Errorf("second code = %q, want AH2526/000002", ack2.Code)
	}

	stored := repo.byID[ack.PatientID]
	if stored.PatientUHID != ack.Code || stored.MotherUHID != ack.Code {
		t.Errorf("uhid fields = %q/%q, want the code", stored.PatientUHID, stored.MotherUHID)
	}
}

func TestCreateKeepsClientCode(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	dto := validCreate()
	dto.Code = "AH2526/000777"

	ack, err := svc.Create(context.Background(), dto)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ack.Code != "AH2526/000777" {
		t.Errorf("code = %q, client-supplied code must survive", ack.Code)
	}
}

func TestCreateDerivesDOBFromAge(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	dto := validCreate()
	dto.Age = "25 Years"

	ack, err := svc.Create(context.Background(), dto)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := repo.byID[ack.PatientID]
	if stored.DateOfBirth == nil {
		t.Fatal("date of birth not derived from age")
	}
	want := time.Date(2000, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !stored.DateOfBirth.Equal(want) {
		t.Errorf("dob = %s, want %s", stored.DateOfBirth, want)
	}
}

func TestCreateDerivesAgeFromDOB(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	dto := validCreate()
	dob := "10-03-1999"
	dto.DateOfBirth = &dob

	ack, err := svc.Create(context.Background(), dto)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := repo.byID[ack.PatientID]
	if stored.Age != "26 Years" {
		t.Errorf("age = %q, want 26 Years", stored.Age)
	}
}

func TestCreateRequiredFields(t *testing.T) {
	svc := newTestService(newMockRepo())

	for _, mut := range []func(*wire.PatientCreate){
		func(d *wire.PatientCreate) { d.FirstName = "" },
		func(d *wire.PatientCreate) { d.LastName = "" },
		func(d *wire.PatientCreate) { d.MobileNumber = "" },
		func(d *wire.PatientCreate) { d.AddressLine1 = "" },
		func(d *wire.PatientCreate) { d.ZipCode = "" },
	} {
		dto := validCreate()
		mut(dto)
		_, err := svc.Create(context.Background(), dto)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	}
}

func TestUpdateByCode(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	ack, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd := &wire.PatientUpdate{
		Code:         ack.Code,
		TitleID:      2,
		FirstName:    "Asha",
		LastName:     "Sharma",
		Gender:       "F",
		MobileNumber: "9876543210",
		HospitalID:   1,
		UpdatedBy:    3,
		IsActive:     1,
	}
	if _, err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := repo.byID[ack.PatientID]
	if stored.LastName != "Sharma" {
		t.Errorf("last name = %q, want Sharma", stored.LastName)
	}
	if stored.UpdatedBy == nil || *stored.UpdatedBy != 3 {
		t.Errorf("updated_by = %v, want 3", stored.UpdatedBy)
	}
}

func TestUpdateUnknownCode(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Update(context.Background(), &wire.PatientUpdate{
		Code:         "AH9999/000001",
		FirstName:    "A",
		LastName:     "B",
		MobileNumber: "9876543210",
		HospitalID:   1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	ack, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Delete(context.Background(), &wire.PatientDelete{
		PatientID:  "1",
		HospitalID: 1,
		Code:       ack.Code,
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.byID[ack.PatientID].IsActive != 0 {
		t.Error("record still active after delete")
	}

	list, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("deleted patient still listed: %v", list)
	}
}

func TestDeleteRejectsBadID(t *testing.T) {
	svc := newTestService(newMockRepo())

	for _, id := range []string{"", "abc", "-1", "0"} {
		err := svc.Delete(context.Background(), &wire.PatientDelete{
			PatientID: id, HospitalID: 1, Code: "AH2526/000001",
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Delete(%q): err = %v, want ErrValidation", id, err)
		}
	}
}

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), "2526"},
		{time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), "2526"},
		{time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), "2425"},
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "2526"},
	}
	for _, tt := range tests {
		if got := fiscalYear(tt.t); got != tt.want {
			t.Errorf("fiscalYear(%s) = %q, want %q", tt.t.Format("2006-01-02"), got, tt.want)
		}
	}
}
