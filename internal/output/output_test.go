package output

import (
	"strings"
	"testing"

	"github.com/temirov/ctc/internal/types"
)

func TestRenderSummaryWithoutSkips(t *testing.T) {
	summary := types.CopySummary{
		FilesIncluded:   3,
		CharsCopied:     130,
		TokensEstimated: 31,
		LinesCopied:     12,
	}
	limits := types.CopyLimits{MaxFiles: 50, MaxChars: 1_000_000, MaxTokens: 128_000}

	report := RenderSummary(summary, limits, "cl100k_base")

	expectedLines := []string{
		"Files copied       : 3/50",
		"Total characters   : 130/1000000",
		"Total tokens       : 31/128000",
		"Total lines copied : 12",
		"Token estimator    : cl100k_base",
		"No files were skipped.",
		"Estimated tokens remaining: 127969",
	}
	for _, expectedLine := range expectedLines {
		if !strings.Contains(report, expectedLine) {
			t.Fatalf("report missing %q:\n%s", expectedLine, report)
		}
	}
	if strings.Contains(report, "Warnings:") {
		t.Fatalf("report should not contain a warnings section:\n%s", report)
	}
}

func TestRenderSummaryListsSkippedFiles(t *testing.T) {
	summary := types.CopySummary{
		FilesIncluded: 2,
		FilesSkipped:  2,
		LinesSkipped:  40,
		SkippedPaths:  []string{"vendor/big.py", "image.bin"},
	}
	limits := types.CopyLimits{MaxFiles: 2, MaxChars: 1_000_000, MaxTokens: 128_000}

	report := RenderSummary(summary, limits, "")

	expectedLines := []string{
		"Warnings:",
		"Files skipped      : 2",
		"Lines skipped      : 40",
		" - vendor/big.py",
		" - image.bin",
	}
	for _, expectedLine := range expectedLines {
		if !strings.Contains(report, expectedLine) {
			t.Fatalf("report missing %q:\n%s", expectedLine, report)
		}
	}
	if strings.Contains(report, "Token estimator") {
		t.Fatalf("empty estimator name should omit the estimator line:\n%s", report)
	}
}
