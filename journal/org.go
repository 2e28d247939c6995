package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatSignalOrg renders a Signal as an Org-mode entry with its facts in a
// PROPERTIES drawer and an empty Notes section for follow-up.
func FormatSignalOrg(s Signal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s (%s)\n", s.Action, s.Pair, shortID(s.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", s.ID)
	fmt.Fprintf(&b, ":TIME: %s\n", s.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":PAIR: %s\n", s.Pair)
	fmt.Fprintf(&b, ":ACTION: %s\n", s.Action)
	fmt.Fprintf(&b, ":PRICE: %.2f\n", s.Price)
	fmt.Fprintf(&b, ":TREND: %.2f\n", s.Trend)
	fmt.Fprintf(&b, ":REASON: %s\n", s.Reason)
	b.WriteString(":END:\n")
	b.WriteString("\n*** Notes\n- \n")
	return b.String()
}

// FormatSignalsOrg renders multiple signals separated by blank lines.
func FormatSignalsOrg(signals []Signal) string {
	var b strings.Builder
	for i, s := range signals {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatSignalOrg(s))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
