// Package parser extracts structured records from the text of two
// semi-structured intake documents: the Merchant Details Form and the
// trade license. Both parsers are a single forward scan over trimmed,
// non-blank lines. A field's value appears either inline after its
// label (optionally separated by a colon or dash) or on the line
// immediately following it, never both combined.
//
// Parsing is total: malformed input leaves fields empty, it never
// returns an error.
package parser

import (
	"regexp"
	"strings"
)

var (
	dateRe   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	numberRe = regexp.MustCompile(`[\d,.]+`)
	emailRe  = regexp.MustCompile(`[\w._%+-]+@[\w.-]+\.[a-zA-Z]{2,}`)
	phoneRe  = regexp.MustCompile(`[\d\s+\-()]{7,}`)
)

// splitLines breaks text into trimmed, non-blank lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// lineAt returns lines[i] or "" when out of range.
func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

// fieldAfter pulls the value for a label matched at lines[i]: the
// remainder of the current line after the label if non-empty, otherwise
// the next line.
func fieldAfter(lines []string, i int, label *regexp.Regexp) string {
	line := lineAt(lines, i)

	inline := regexp.MustCompile(`(?i)` + label.String() + `\s*[:\-]?\s*(.*)`)
	if m := inline.FindStringSubmatch(line); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v
		}
	}

	return strings.TrimSpace(lineAt(lines, i+1))
}

// dateNear finds a date-shaped token on the current or next line.
func dateNear(lines []string, i int) string {
	if m := dateRe.FindString(lineAt(lines, i)); m != "" {
		return m
	}
	return dateRe.FindString(lineAt(lines, i+1))
}

// numberNear finds the nearest numeric token on the current or next line.
func numberNear(lines []string, i int) string {
	if m := numberRe.FindString(lineAt(lines, i)); m != "" {
		return m
	}
	return numberRe.FindString(lineAt(lines, i+1))
}

// emailIn finds an email-shaped token in s.
func emailIn(s string) string {
	return emailRe.FindString(s)
}

// phoneIn finds a phone-shaped token in s.
func phoneIn(s string) string {
	return strings.TrimSpace(phoneRe.FindString(s))
}
