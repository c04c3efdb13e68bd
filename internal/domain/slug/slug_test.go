package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ceramic Coating", "ceramic-coating"},
		{"PPF: Why It Matters!", "ppf-why-it-matters"},
		{"  Tint   &  Wrap ", "tint-wrap"},
		{"snake_case ok", "snake_case-ok"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{"ppf", "ceramic-coating", "a_b-c"} {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false", s)
		}
	}
	for _, s := range []string{"", "-x", "x-", "a b", "a--b", "../etc"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true", s)
		}
	}
}

func TestOrMake(t *testing.T) {
	if got := OrMake("", "Paint Correction"); got != "paint-correction" {
		t.Errorf("OrMake blank = %q", got)
	}
	if got := OrMake(" custom ", "ignored"); got != "custom" {
		t.Errorf("OrMake set = %q", got)
	}
}
