package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders an integer with thousands separators ("1,234,567").
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Signed renders a delta with an explicit sign ("+1,200", "-300", "0").
func Signed(n int64) string {
	if n > 0 {
		return "+" + Count(n)
	}
	return Count(n)
}

// Duration renders seconds as a minutes+seconds breakdown ("5m 30s").
func Duration(seconds int) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Minutes renders a minute count with thousands separators ("12,500 min").
func Minutes(minutes int64) string {
	return printer.Sprintf("%d min", minutes)
}

// Percent renders a ratio with one decimal ("60.0%").
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
