package notifier

import (
	"fmt"
	"strings"
	"time"

	"YieldSentinel/internal/model"
)

// FormatSummary renders the ranked result set into the summary message:
// a header with date, threshold and hit count, then a fixed-width table
// inside a code fence. Row order follows the report's ranking.
func FormatSummary(report *model.RunReport, asOf time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("**📊 SGX High Yield Report (%s)**\n", asOf.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Threshold: > **%.1f%%** (%d matched)\n", report.Threshold, len(report.Results)))
	b.WriteString("```ini\n Code   Yield    Price     Name\n")
	b.WriteString(strings.Repeat("-", 38) + "\n")
	for _, r := range report.Results {
		b.WriteString(fmt.Sprintf("%-5s %5.1f%%   $%-7.2f %s\n",
			r.Symbol, r.Yield, r.Price, truncate(r.DisplayName, 15)))
	}
	b.WriteString("```\n↓ Individual trend charts below ↓")

	return b.String()
}

// FormatBatchAlert is the single alert sent when the whole data batch failed.
func FormatBatchAlert(err error) string {
	return fmt.Sprintf("❌ **Screening run aborted**: no price data retrieved (%v)", err)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
