package summary

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/KataCreate/report-sys/internal/model"
)

const (
	maxCompletionTokens = 1000
	// Tunable: enough sampling variance for readable prose, not wild divergence.
	completionTemperature = 0.7
)

// genericErrorPlaceholder fills all three fields when the completion request
// itself fails, so the report stays displayable without a real narrative.
const genericErrorPlaceholder = "An error occurred while generating the AI narrative."

// Client produces the three-part narrative for a persisted monthly report.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// Summarize requests one completion for the report and parses the labeled
// sections out of it. On a transport/auth/quota failure it returns a
// narrative with all three fields set to the generic error placeholder AND a
// non-nil error; the caller decides whether that degrades or aborts. A
// successful call always yields three non-empty fields.
func (c *Client) Summarize(ctx context.Context, report *model.MonthlyReport) (*model.Narrative, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(report)},
		},
		Temperature: completionTemperature,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return &model.Narrative{
			Summary:         genericErrorPlaceholder,
			Insights:        genericErrorPlaceholder,
			Recommendations: genericErrorPlaceholder,
		}, fmt.Errorf("summary completion: %w", err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	return ParseNarrative(content), nil
}

// ParseNarrative extracts the three labeled sections, substituting the
// field-specific placeholder for any section the completion omitted.
func ParseNarrative(text string) *model.Narrative {
	sections := parseSections(text)
	return &model.Narrative{
		Summary:         orPlaceholder(sections[labelSummary], missingSummary),
		Insights:        orPlaceholder(sections[labelInsights], missingInsights),
		Recommendations: orPlaceholder(sections[labelRecommendations], missingRecommendations),
	}
}
