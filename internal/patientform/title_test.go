package patientform

import "testing"

func TestResolveGender(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Mr", "Male"},
		{"Mr.", "Male"},
		{"Master", "Male"},
		{"Mrs", "Female"},
		{"Mrs.", "Female"},
		{"Ms", "Female"},
		{"Ms.", "Female"},
		{"Miss", "Female"},
		{"Baby", "Other"},
		{"Dr", "Other"},
		{"Dr.", "Other"},
		{"Others", "Other"},
		{"Prof", ""},
		{"mr", ""}, // lookup is exact, no case folding
		{"", ""},
	}

	for _, tt := range tests {
		if got := ResolveGender(tt.title); got != tt.want {
			t.Errorf("ResolveGender(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
