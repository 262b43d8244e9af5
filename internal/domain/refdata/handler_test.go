package refdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	byType map[string][]RefValue
	err    error
}

func (m *mockRepo) ListByType(ctx context.Context, refType string) ([]RefValue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byType[refType], nil
}

func listRequest(t *testing.T, h *Handler, dropdownType string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/"+dropdownType, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("dropdownType")
	c.SetParamValues(dropdownType)
	return rec, h.List(c)
}

func TestListTitleFieldNames(t *testing.T) {
	h := NewHandler(&mockRepo{byType: map[string][]RefValue{
		"title": {
			{ItemID: 1, Name: "Mr"},
			{ItemID: 2, Name: "Mrs."},
		},
	}})

	rec, err := listRequest(t, h, "title")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["title_Id"] != float64(1) || rows[0]["title_Name"] != "Mr" {
		t.Errorf("row = %v, want title_Id/title_Name keys", rows[0])
	}
}

func TestListConsultantFieldNames(t *testing.T) {
	h := NewHandler(&mockRepo{byType: map[string][]RefValue{
		"consultant": {{ItemID: 9, Name: "Dr Rao"}},
	}})

	rec, err := listRequest(t, h, "consultant")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rows[0]["consultant_id"] != float64(9) || rows[0]["first_name"] != "Dr Rao" {
		t.Errorf("row = %v, want consultant_id/first_name keys", rows[0])
	}
}

func TestListUnknownType(t *testing.T) {
	h := NewHandler(&mockRepo{})

	_, err := listRequest(t, h, "speciality")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestListEmptyTypeYieldsEmptyArray(t *testing.T) {
	h := NewHandler(&mockRepo{byType: map[string][]RefValue{}})

	rec, err := listRequest(t, h, "bloodgroup")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}
