package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/KataCreate/report-sys/internal/model"
)

func TestParseNarrative_AllSectionsPresent(t *testing.T) {
	text := `[Summary]
A strong month with steady growth.

[Insights]
Shorts outperformed long-form uploads.

[Recommendations]
Post two shorts per week.`

	n := ParseNarrative(text)

	if n.Summary != "A strong month with steady growth." {
		t.Errorf("summary = %q", n.Summary)
	}
	if n.Insights != "Shorts outperformed long-form uploads." {
		t.Errorf("insights = %q", n.Insights)
	}
	if n.Recommendations != "Post two shorts per week." {
		t.Errorf("recommendations = %q", n.Recommendations)
	}
}

func TestParseNarrative_MissingInsightsLabel(t *testing.T) {
	// The insights label is absent entirely; the other two still extract.
	text := `[Summary]
Views grew 12% month over month.

[Recommendations]
Double down on the tutorial series.`

	n := ParseNarrative(text)

	if n.Insights != missingInsights {
		t.Errorf("insights = %q, want placeholder %q", n.Insights, missingInsights)
	}
	if n.Summary != "Views grew 12% month over month." {
		t.Errorf("summary = %q", n.Summary)
	}
	if n.Recommendations != "Double down on the tutorial series." {
		t.Errorf("recommendations = %q", n.Recommendations)
	}
}

func TestParseNarrative_EmptyResponse(t *testing.T) {
	n := ParseNarrative("")

	if n.Summary != missingSummary {
		t.Errorf("summary = %q, want placeholder", n.Summary)
	}
	if n.Insights != missingInsights {
		t.Errorf("insights = %q, want placeholder", n.Insights)
	}
	if n.Recommendations != missingRecommendations {
		t.Errorf("recommendations = %q, want placeholder", n.Recommendations)
	}
}

func TestParseNarrative_LabelWithEmptyBody(t *testing.T) {
	text := `[Summary]

[Insights]
Some real insight.

[Recommendations]
`

	n := ParseNarrative(text)

	if n.Summary != missingSummary {
		t.Errorf("empty summary body should become placeholder, got %q", n.Summary)
	}
	if n.Insights != "Some real insight." {
		t.Errorf("insights = %q", n.Insights)
	}
	if n.Recommendations != missingRecommendations {
		t.Errorf("empty recommendations body should become placeholder, got %q", n.Recommendations)
	}
}

func TestParseNarrative_NeverReturnsEmptyFields(t *testing.T) {
	inputs := []string{
		"",
		"no labels at all",
		"[Summary] only one section",
		"[Recommendations] tail section only",
	}
	for _, in := range inputs {
		n := ParseNarrative(in)
		if n.Summary == "" || n.Insights == "" || n.Recommendations == "" {
			t.Errorf("input %q produced an empty field: %+v", in, n)
		}
	}
}

func TestParseSections_RepeatedLabelKeepsFirst(t *testing.T) {
	text := "[Summary]\nfirst\n[Summary]\nsecond"
	sections := parseSections(text)
	if sections[labelSummary] != "first" {
		t.Errorf("repeated label should keep first occurrence, got %q", sections[labelSummary])
	}
}

func TestParseSections_MultilineBodies(t *testing.T) {
	text := "[Summary]\nline one\nline two\n[Insights]\nnext"
	sections := parseSections(text)
	if sections[labelSummary] != "line one\nline two" {
		t.Errorf("summary = %q", sections[labelSummary])
	}
}

func TestBuildPrompt_HumanFormattedFigures(t *testing.T) {
	r := &model.MonthlyReport{
		ReportDate:            time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		TotalViews:            1234567,
		TotalSubscribers:      89012,
		SubscriberGrowth:      1200,
		TotalLikes:            45678,
		TotalComments:         910,
		AverageViewDuration:   335,
		AverageViewPercentage: 60,
		TotalWatchTime:        12500,
		VideoCount:            42,
	}

	prompt := BuildPrompt(r)

	for _, want := range []string{
		"1,234,567",
		"+1,200",
		"5m 35s",
		"60.0%",
		"12,500 min",
		"2024-02",
		"[Summary]",
		"[Insights]",
		"[Recommendations]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}
