package summary

import (
	"fmt"
	"strings"

	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/pkg/format"
)

const systemPrompt = "You are a YouTube channel performance analyst. " +
	"Analyze the monthly report data and provide practical insights and recommendations."

// BuildPrompt renders the report's numeric fields into the natural-language
// prompt, human-formatted: thousands separators for counts, a minutes+seconds
// breakdown for durations, one-decimal percentages.
func BuildPrompt(r *model.MonthlyReport) string {
	var b strings.Builder

	b.WriteString("Analyze this monthly YouTube channel report and produce a summary, insights, and recommendations.\n\n")
	b.WriteString("Report data:\n")
	fmt.Fprintf(&b, "- Report period: %s\n", r.ReportDate.Format("2006-01"))
	fmt.Fprintf(&b, "- Total views: %s\n", format.Count(r.TotalViews))
	fmt.Fprintf(&b, "- Total subscribers: %s\n", format.Count(r.TotalSubscribers))
	fmt.Fprintf(&b, "- Subscriber growth: %s\n", format.Signed(r.SubscriberGrowth))
	fmt.Fprintf(&b, "- Total likes: %s\n", format.Count(r.TotalLikes))
	fmt.Fprintf(&b, "- Total comments: %s\n", format.Count(r.TotalComments))
	fmt.Fprintf(&b, "- Average view duration: %s\n", format.Duration(r.AverageViewDuration))
	fmt.Fprintf(&b, "- Average view percentage: %s\n", format.Percent(r.AverageViewPercentage))
	fmt.Fprintf(&b, "- Total watch time: %s\n", format.Minutes(r.TotalWatchTime))
	fmt.Fprintf(&b, "- Video count: %d\n", r.VideoCount)

	b.WriteString("\nRespond in exactly this format:\n\n")
	b.WriteString("[Summary]\n(Concisely summarize this month's performance)\n\n")
	b.WriteString("[Insights]\n(Analyze notable findings and trends in the data)\n\n")
	b.WriteString("[Recommendations]\n(Give concrete suggestions for improvement)\n")

	return b.String()
}
