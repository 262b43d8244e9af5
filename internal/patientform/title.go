package patientform

// genderByTitle is the fixed salutation-to-gender mapping. Both dotted and
// undotted spellings appear because the reference lists carry both.
var genderByTitle = map[string]string{
	"Mr":     "Male",
	"Mr.":    "Male",
	"Mrs":    "Female",
	"Mrs.":   "Female",
	"Ms":     "Female",
	"Ms.":    "Female",
	"Miss":   "Female",
	"Master": "Male",
	"Baby":   "Other",
	"Dr":     "Other",
	"Dr.":    "Other",
	"Others": "Other",
}

// ResolveGender returns the gender implied by a title name, or "" when the
// title carries no implication. Lookup is exact: no trimming, no case
// folding.
func ResolveGender(titleName string) string {
	return genderByTitle[titleName]
}
