package language

import "testing"

func TestFromCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantName string
	}{
		{"known code", "en", "English"},
		{"another known code", "de", "German"},
		{"empty is auto-detect", "", "Auto-detect"},
		{"unknown falls back to auto", "xx", "Auto-detect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromCode(tt.code)
			if got.Name != tt.wantName {
				t.Errorf("FromCode(%q).Name = %q, want %q", tt.code, got.Name, tt.wantName)
			}
		})
	}
}

func TestIsValidCode(t *testing.T) {
	if !IsValidCode("it") {
		t.Error("expected 'it' to be valid")
	}
	if !IsValidCode("") {
		t.Error("expected empty code (auto-detect) to be valid")
	}
	if IsValidCode("klingon") {
		t.Error("expected 'klingon' to be invalid")
	}
}

func TestMajority(t *testing.T) {
	tests := []struct {
		name       string
		detections []string
		want       string
	}{
		{"clear winner", []string{"en", "en", "de"}, "en"},
		{"single detection", []string{"fr"}, "fr"},
		{"no detections", nil, ""},
		{"blanks ignored", []string{"", "", "es"}, "es"},
		{"tie goes to first seen", []string{"de", "en", "en", "de"}, "de"},
		{"all blank", []string{"", ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Majority(tt.detections); got != tt.want {
				t.Errorf("Majority(%v) = %q, want %q", tt.detections, got, tt.want)
			}
		})
	}
}

func TestListSorted(t *testing.T) {
	langs := List()
	if len(langs) < 20 {
		t.Fatalf("expected a substantial language table, got %d entries", len(langs))
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1].Code >= langs[i].Code {
			t.Fatalf("List() not sorted at %d: %q >= %q", i, langs[i-1].Code, langs[i].Code)
		}
	}
	for _, l := range langs {
		if l.Code == "" {
			t.Fatal("List() must not include the auto-detect entry")
		}
	}
}
