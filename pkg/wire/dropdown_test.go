package wire

import (
	"encoding/json"
	"testing"
)

func TestMapDropdownRowsPerType(t *testing.T) {
	tests := []struct {
		dropdownType string
		row          map[string]any
		want         DropdownOption
	}{
		{"title", map[string]any{"title_Id": 1, "title_Name": "Mr"}, DropdownOption{1, "Mr"}},
		{"patientcategory", map[string]any{"patientCategory_ID": 2, "patientCategory_Name": "General"}, DropdownOption{2, "General"}},
		{"bloodgroup", map[string]any{"id": 3, "bloodGroup": "O+"}, DropdownOption{3, "O+"}},
		{"consultant", map[string]any{"consultant_id": 4, "first_name": "Dr Rao"}, DropdownOption{4, "Dr Rao"}},
		{"referredby", map[string]any{"patientReferral_Id": 5, "referred_By_Name": "Dr Iyer"}, DropdownOption{5, "Dr Iyer"}},
		{"area", map[string]any{"area_id": 6, "name": "Indiranagar"}, DropdownOption{6, "Indiranagar"}},
		{"city", map[string]any{"city_id": 7, "name": "Bengaluru"}, DropdownOption{7, "Bengaluru"}},
		{"state", map[string]any{"state_id": 8, "name": "Karnataka"}, DropdownOption{8, "Karnataka"}},
		{"relation", map[string]any{"relation_ID": 9, "relation_Name": "Spouse"}, DropdownOption{9, "Spouse"}},
		{"country", map[string]any{"country_id": 10, "name": "India"}, DropdownOption{10, "India"}},
		{"organization", map[string]any{"organization_id": 11, "organization_name": "Apex Trust"}, DropdownOption{11, "Apex Trust"}},
	}

	for _, tt := range tests {
		t.Run(tt.dropdownType, func(t *testing.T) {
			opts := MapDropdownRows(tt.dropdownType, []map[string]any{tt.row})
			if len(opts) != 1 {
				t.Fatalf("opts = %v, want one option", opts)
			}
			if opts[0] != tt.want {
				t.Errorf("opts[0] = %v, want %v", opts[0], tt.want)
			}
		})
	}
}

func TestMapDropdownRowsReferredByFiltersBlankNames(t *testing.T) {
	rows := []map[string]any{
		{"patientReferral_Id": 1, "referred_By_Name": "Dr Iyer"},
		{"patientReferral_Id": 2, "referred_By_Name": ""},
		{"patientReferral_Id": 3},
		{"patientReferral_Id": 4, "referred_By_Name": "Dr Das"},
	}

	opts := MapDropdownRows("referredby", rows)
	if len(opts) != 2 {
		t.Fatalf("opts = %v, want the two named rows", opts)
	}
	if opts[0].ID != 1 || opts[1].ID != 4 {
		t.Errorf("ids = %d, %d, want 1 and 4", opts[0].ID, opts[1].ID)
	}
}

// Rows decoded from JSON carry float64 ids; the remap must accept them.
func TestMapDropdownRowsJSONNumbers(t *testing.T) {
	var rows []map[string]any
	if err := json.Unmarshal([]byte(`[{"title_Id": 2, "title_Name": "Mrs."}]`), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	opts := MapDropdownRows("title", rows)
	if len(opts) != 1 || opts[0].ID != 2 || opts[0].Name != "Mrs." {
		t.Errorf("opts = %v", opts)
	}
}

func TestMapDropdownRowsUnknownTypeAndMissingID(t *testing.T) {
	if opts := MapDropdownRows("speciality", []map[string]any{{"id": 1}}); opts != nil {
		t.Errorf("unknown type: opts = %v, want nil", opts)
	}

	opts := MapDropdownRows("title", []map[string]any{{"title_Name": "Mr"}})
	if len(opts) != 0 {
		t.Errorf("row without id kept: %v", opts)
	}
}
