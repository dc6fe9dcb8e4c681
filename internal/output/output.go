// Package output renders the copy summary report.
package output

import (
	"fmt"
	"strings"

	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	bannerWidth     = 50
	bannerCharacter = "="
	dividerChar     = "-"
	summaryTitle    = "Summary"
)

// RenderSummary formats the copy summary as a human-readable banner report.
// The limit columns show what each counter was bounded by, and skipped files
// are listed individually.
func RenderSummary(summary types.CopySummary, limits types.CopyLimits, estimatorName string) string {
	var reportBuilder strings.Builder
	banner := strings.Repeat(bannerCharacter, bannerWidth)

	reportBuilder.WriteString(banner + "\n")
	reportBuilder.WriteString(centerText(summaryTitle, bannerWidth) + "\n")
	reportBuilder.WriteString(banner + "\n")
	fmt.Fprintf(&reportBuilder, "Files copied       : %d/%d\n", summary.FilesIncluded, limits.MaxFiles)
	fmt.Fprintf(&reportBuilder, "Total characters   : %d/%d (%s)\n", summary.CharsCopied, limits.MaxChars, utils.FormatFileSize(int64(summary.CharsCopied)))
	fmt.Fprintf(&reportBuilder, "Total tokens       : %d/%d\n", summary.TokensEstimated, limits.MaxTokens)
	fmt.Fprintf(&reportBuilder, "Total lines copied : %d\n", summary.LinesCopied)
	if estimatorName != "" {
		fmt.Fprintf(&reportBuilder, "Token estimator    : %s\n", estimatorName)
	}

	if summary.FilesSkipped > 0 {
		reportBuilder.WriteString("\nWarnings:\n")
		reportBuilder.WriteString(strings.Repeat(dividerChar, bannerWidth) + "\n")
		fmt.Fprintf(&reportBuilder, "Files skipped      : %d\n", summary.FilesSkipped)
		if summary.LinesSkipped > 0 {
			fmt.Fprintf(&reportBuilder, "Lines skipped      : %d\n", summary.LinesSkipped)
		}
		reportBuilder.WriteString("\nSkipped files:\n")
		for _, skippedPath := range summary.SkippedPaths {
			fmt.Fprintf(&reportBuilder, " - %s\n", skippedPath)
		}
	} else {
		reportBuilder.WriteString("\nNo files were skipped.\n")
	}

	if limits.MaxTokens > 0 && summary.TokensEstimated > 0 && summary.TokensEstimated < limits.MaxTokens {
		fmt.Fprintf(&reportBuilder, "\nEstimated tokens remaining: %d\n", limits.MaxTokens-summary.TokensEstimated)
	}

	reportBuilder.WriteString(banner)
	return reportBuilder.String()
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	leftPadding := (width - len(text)) / 2
	return strings.Repeat(" ", leftPadding) + text
}
