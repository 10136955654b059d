package game

import (
	"fmt"
	"strings"
)

// FormatSummary renders a final scoreboard as plain text, one fact per line.
func FormatSummary(sum Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "session  %s\n", sum.Session)
	fmt.Fprintf(&sb, "score    %d\n", sum.Score)
	fmt.Fprintf(&sb, "level    %d\n", sum.Level)
	fmt.Fprintf(&sb, "copper   %d\n", sum.Minerals.Copper)
	fmt.Fprintf(&sb, "gold     %d\n", sum.Minerals.Gold)
	fmt.Fprintf(&sb, "rare     %d\n", sum.Minerals.RareEarth)
	fmt.Fprintf(&sb, "popped   %d\n", sum.Enemies)
	fmt.Fprintf(&sb, "ticks    %d\n", sum.Ticks)
	return sb.String()
}

// ScoreLetter buckets a final score into a letter grade for reports.
func ScoreLetter(score int) string {
	switch {
	case score >= 20000:
		return "S"
	case score >= 10000:
		return "A"
	case score >= 5000:
		return "B"
	case score >= 2000:
		return "C"
	default:
		return "D"
	}
}
