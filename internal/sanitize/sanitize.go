// Package sanitize normalizes visitor-supplied form input. Form fields are
// stored in the database and sent in plain-text mail, never rendered as raw
// HTML (html/template escapes them on output), so text is kept verbatim and
// only whitespace is normalized.
package sanitize

import "strings"

// Text trims surrounding whitespace. Everything else, including "<" and ">",
// is preserved.
func Text(input string) string {
	return strings.TrimSpace(input)
}

// Header is Text restricted to a single line, for values that end up in
// mail headers such as a subject containing the visitor's name. Runs of
// whitespace, CR and LF included, collapse to one space.
func Header(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
