package summary

import (
	"regexp"
	"strings"
)

// Section labels the completion is instructed to emit, in fixed order.
const (
	labelSummary         = "Summary"
	labelInsights        = "Insights"
	labelRecommendations = "Recommendations"
)

// Per-field stand-ins when a label is missing from the completion. A parsed
// narrative never carries an empty field.
const (
	missingSummary         = "Could not generate a summary."
	missingInsights        = "Could not generate insights."
	missingRecommendations = "Could not generate recommendations."
)

var labelRe = regexp.MustCompile(`\[(Summary|Insights|Recommendations)\]`)

// parseSections extracts the three bracket-labeled sections from a free-text
// completion. Grammar: label, then text running to the next label or end of
// input. Labels may appear in any order; a repeated label keeps its first
// occurrence. Missing labels yield empty strings here — placeholder
// substitution happens in the caller.
func parseSections(text string) map[string]string {
	sections := make(map[string]string, 3)

	matches := labelRe.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		label := text[m[2]:m[3]]
		if _, seen := sections[label]; seen {
			continue
		}

		bodyStart := m[1]
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections[label] = strings.TrimSpace(text[bodyStart:bodyEnd])
	}

	return sections
}

// orPlaceholder substitutes the field-specific placeholder for an empty
// extraction.
func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
