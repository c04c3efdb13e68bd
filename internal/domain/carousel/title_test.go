package carousel

import (
	"reflect"
	"testing"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{
			name:  "two lines with one emphasis",
			input: "WELCOME\nTO *FLOTENN*",
			want: []Line{
				{{Text: "WELCOME"}},
				{{Text: "TO "}, {Text: "FLOTENN", Emphasis: true}},
			},
		},
		{
			name:  "unpaired asterisk is literal",
			input: "A *B",
			want:  []Line{{{Text: "A *B"}}},
		},
		{
			name:  "blank lines dropped",
			input: "ONE\n   \n\nTWO\n",
			want:  []Line{{{Text: "ONE"}}, {{Text: "TWO"}}},
		},
		{
			name:  "several spans on one line",
			input: "*A* and *B* or C",
			want: []Line{{
				{Text: "A", Emphasis: true},
				{Text: " and "},
				{Text: "B", Emphasis: true},
				{Text: " or C"},
			}},
		},
		{
			name:  "odd asterisk after a pair",
			input: "*X* *Y",
			want:  []Line{{{Text: "X", Emphasis: true}, {Text: " *Y"}}},
		},
		{
			name:  "fallback slide title",
			input: "PAINT PROTECTION.\nDETAILING.\nCUSTOM PAINT JOBS.\nALL UNDER *ONE ROOF.*",
			want: []Line{
				{{Text: "PAINT PROTECTION."}},
				{{Text: "DETAILING."}},
				{{Text: "CUSTOM PAINT JOBS."}},
				{{Text: "ALL UNDER "}, {Text: "ONE ROOF.", Emphasis: true}},
			},
		},
		{
			name:  "carriage returns",
			input: "LEFT\r\nRIGHT",
			want:  []Line{{{Text: "LEFT"}}, {{Text: "RIGHT"}}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTitle(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTitle(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainTitle(t *testing.T) {
	got := PlainTitle("PREMIUM\n*PAINT PROTECTION*\nFILM")
	if got != "PREMIUM PAINT PROTECTION FILM" {
		t.Errorf("PlainTitle = %q", got)
	}
}
