// Package csvkit parses CSV text with a small character-level state machine.
//
// encoding/csv is deliberately not used here: uploaded spreadsheets are messy,
// and the parser must stay lenient about things the stdlib reader rejects
// (bare quotes inside unquoted fields, uneven record lengths). The two-state
// machine below handles embedded commas and doubled-quote escapes and leaves
// validation of the result to the caller.
package csvkit

import "strings"

// Parse splits raw CSV text into ordered rows of raw string fields.
// Blank lines are dropped before parsing. Inside a quoted field a doubled
// double-quote ("") decodes to a literal quote. Fields are not trimmed.
func Parse(text string) [][]string {
	var rows [][]string

	for _, line := range splitLines(text) {
		rows = append(rows, parseLine(line))
	}
	return rows
}

// splitLines normalizes line endings and removes blank lines.
func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseLine walks one record character by character, toggling between the
// quoted and unquoted states.
func parseLine(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// Escaped quote inside a quoted field.
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	fields = append(fields, field.String())
	return fields
}

// NormalizeHeader canonicalizes a header cell: trimmed, lower-cased, with
// internal whitespace runs collapsed to single underscores.
func NormalizeHeader(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}
