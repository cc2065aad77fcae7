// File: pkg/merge/render.go
package merge

import "strings"

// Render assembles the merged file: standard includes, using lines, library
// sections and the main code, each non-empty group followed by a blank line.
func (r *Result) Render() string {
	var b strings.Builder

	writeGroup(&b, r.StandardIncludes)
	writeGroup(&b, r.Usings)

	for i, section := range r.Sections {
		b.WriteString(SectionMarker(section.Label))
		b.WriteByte('\n')
		b.WriteString(section.Body)
		b.WriteByte('\n')
		if i < len(r.Sections)-1 {
			b.WriteByte('\n')
		}
	}
	if len(r.Sections) > 0 {
		b.WriteByte('\n')
	}

	b.WriteString(MainMarker)
	b.WriteByte('\n')
	b.WriteString(r.MainCode)
	return b.String()
}

// SectionMarker returns the comment line that opens a library section.
func SectionMarker(label string) string {
	return sectionPrefix + label + sectionSuffix
}

func writeGroup(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(lines) > 0 {
		b.WriteByte('\n')
	}
}
