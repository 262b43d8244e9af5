package wire

// DropdownOption is the normalized {id, name} pair the form works with after
// remapping a raw reference-data row.
type DropdownOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DropdownSpec describes how one reference-data list is shaped on the wire:
// which raw row fields carry the id and the display name, and whether rows
// with a blank name are dropped.
type DropdownSpec struct {
	IDField       string
	NameField     string
	SkipBlankName bool
}

// DropdownSpecs maps every known dropdown type to its wire shape. The admin
// endpoint emits rows with these field names and the clients fold them back
// into DropdownOption — both sides read this table, so adding a list is a
// one-line change.
var DropdownSpecs = map[string]DropdownSpec{
	"title":           {IDField: "title_Id", NameField: "title_Name"},
	"patientcategory": {IDField: "patientCategory_ID", NameField: "patientCategory_Name"},
	"bloodgroup":      {IDField: "id", NameField: "bloodGroup"},
	"consultant":      {IDField: "consultant_id", NameField: "first_name"},
	"referredby":      {IDField: "patientReferral_Id", NameField: "referred_By_Name", SkipBlankName: true},
	"area":            {IDField: "area_id", NameField: "name"},
	"city":            {IDField: "city_id", NameField: "name"},
	"state":           {IDField: "state_id", NameField: "name"},
	"relation":        {IDField: "relation_ID", NameField: "relation_Name"},
	"country":         {IDField: "country_id", NameField: "name"},
	"organization":    {IDField: "organization_id", NameField: "organization_name"},
}

// KnownDropdownType reports whether the admin endpoint serves this list.
func KnownDropdownType(t string) bool {
	_, ok := DropdownSpecs[t]
	return ok
}

// MapDropdownRows folds raw reference-data rows into DropdownOption pairs
// using the shape declared for the type. Rows missing the id field are skipped;
// numeric ids arrive as JSON numbers (float64) or ints depending on the
// decoder, so both are accepted. Unknown types yield nil.
func MapDropdownRows(dropdownType string, rows []map[string]any) []DropdownOption {
	spec, ok := DropdownSpecs[dropdownType]
	if !ok {
		return nil
	}

	opts := make([]DropdownOption, 0, len(rows))
	for _, row := range rows {
		id, ok := intField(row[spec.IDField])
		if !ok {
			continue
		}
		name, _ := row[spec.NameField].(string)
		if spec.SkipBlankName && name == "" {
			continue
		}
		opts = append(opts, DropdownOption{ID: id, Name: name})
	}
	return opts
}

func intField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
