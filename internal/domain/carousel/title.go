package carousel

import (
	"regexp"
	"strings"
)

// emphasisPattern matches the shortest *...* pair.
var emphasisPattern = regexp.MustCompile(`\*(.*?)\*`)

// Span is a run of title text.
type Span struct {
	Text     string
	Emphasis bool
}

// Line is one rendered line of a title.
type Line []Span

// ParseTitle splits a slide title into lines and emphasis spans.
// Lines are separated by "\n" and dropped when blank after trimming. Text
// between a pair of asterisks is emphasised; an asterisk with no partner is
// kept as literal text.
func ParseTitle(title string) []Line {
	var lines []Line
	for _, raw := range strings.Split(title, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, parseLine(raw))
	}
	return lines
}

func parseLine(s string) Line {
	var line Line
	last := 0
	for _, m := range emphasisPattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			line = append(line, Span{Text: s[last:m[0]]})
		}
		if inner := s[m[2]:m[3]]; inner != "" {
			line = append(line, Span{Text: inner, Emphasis: true})
		}
		last = m[1]
	}
	if last < len(s) {
		line = append(line, Span{Text: s[last:]})
	}
	return line
}

// PlainTitle flattens a title to one line of text with markup removed.
func PlainTitle(title string) string {
	var parts []string
	for _, line := range ParseTitle(title) {
		var b strings.Builder
		for _, span := range line {
			b.WriteString(span.Text)
		}
		parts = append(parts, strings.TrimSpace(b.String()))
	}
	return strings.Join(parts, " ")
}
