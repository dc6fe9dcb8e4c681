// Package aggregator reads candidate files and concatenates their contents
// into a single clipboard blob subject to file, character, and token limits.
package aggregator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/temirov/ctc/internal/tokenizer"
	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	blobOpeningTag  = "<code-sample>\n"
	blobClosingTag  = "</code-sample>"
	fileBlockFormat = "```%s\n%s\n```\n\n"

	warningFileReadFormat     = "Warning: failed to read '%s': %v\n"
	warningBinarySkipFormat   = "Warning: skipping binary file '%s' (%s)\n"
	infoFileLimitReached      = "Info: file limit reached, skipping remaining candidates\n"
	infoCharLimitFormat       = "Info: adding '%s' would exceed the character limit, stopping\n"
	infoTokenLimitFormat      = "Info: adding '%s' would exceed the token limit, stopping\n"
	unknownBinaryMimeFallback = "unknown content type"
)

// Options configures one aggregation run.
type Options struct {
	Candidates []types.CandidateFile
	Limits     types.CopyLimits
	// Counter estimates tokens per file; required.
	Counter tokenizer.Counter
	// WarningWriter receives per-file skip messages; defaults to os.Stderr.
	WarningWriter io.Writer
}

// Aggregate processes candidates in order and returns the concatenated blob
// together with the run summary. Enforcement is whole-file: as soon as the
// next candidate would exceed any limit the run stops and every remaining
// candidate is counted as skipped. Character and token totals cover file
// content only, not the per-file path headers. The character limit is checked
// before the token limit; when the same file trips both, the run stops either
// way.
func Aggregate(options Options) (string, types.CopySummary) {
	warningWriter := options.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	var blobBuilder strings.Builder
	blobBuilder.WriteString(blobOpeningTag)

	summary := types.CopySummary{}
	limits := options.Limits

	stopped := false
	for _, candidate := range options.Candidates {
		if stopped {
			recordSkip(&summary, candidate.RelativePath, 0)
			continue
		}

		if limits.MaxFiles > 0 && summary.FilesIncluded >= limits.MaxFiles {
			fmt.Fprint(warningWriter, infoFileLimitReached)
			stopped = true
			recordSkip(&summary, candidate.RelativePath, 0)
			continue
		}

		contentBytes, readError := os.ReadFile(candidate.AbsolutePath)
		if readError != nil {
			fmt.Fprintf(warningWriter, warningFileReadFormat, candidate.RelativePath, readError)
			summary.ReadFailures++
			recordSkip(&summary, candidate.RelativePath, 0)
			continue
		}

		if utils.IsBinary(contentBytes) {
			mimeType := utils.DetectMimeType(candidate.AbsolutePath)
			if mimeType == "" {
				mimeType = unknownBinaryMimeFallback
			}
			fmt.Fprintf(warningWriter, warningBinarySkipFormat, candidate.RelativePath, mimeType)
			recordSkip(&summary, candidate.RelativePath, 0)
			continue
		}

		content := string(contentBytes)
		contentCharacters := utf8.RuneCountInString(content)
		contentLines := strings.Count(content, "\n") + 1
		contentTokens := countTokens(options.Counter, content)

		if limits.MaxChars > 0 && summary.CharsCopied+contentCharacters > limits.MaxChars {
			fmt.Fprintf(warningWriter, infoCharLimitFormat, candidate.RelativePath)
			stopped = true
			recordSkip(&summary, candidate.RelativePath, contentLines)
			continue
		}
		if limits.MaxTokens > 0 && summary.TokensEstimated+contentTokens > limits.MaxTokens {
			fmt.Fprintf(warningWriter, infoTokenLimitFormat, candidate.RelativePath)
			stopped = true
			recordSkip(&summary, candidate.RelativePath, contentLines)
			continue
		}

		fmt.Fprintf(&blobBuilder, fileBlockFormat, candidate.RelativePath, content)
		summary.FilesIncluded++
		summary.CharsCopied += contentCharacters
		summary.TokensEstimated += contentTokens
		summary.LinesCopied += contentLines
	}

	blobBuilder.WriteString(blobClosingTag)
	return blobBuilder.String(), summary
}

func recordSkip(summary *types.CopySummary, relativePath string, lines int) {
	summary.FilesSkipped++
	summary.LinesSkipped += lines
	summary.SkippedPaths = append(summary.SkippedPaths, relativePath)
}

// countTokens estimates tokens for content, approximating by character count
// when the counter fails.
func countTokens(counter tokenizer.Counter, content string) int {
	if counter == nil {
		return 0
	}
	tokens, countError := counter.CountString(content)
	if countError != nil {
		return utf8.RuneCountInString(content) / 4
	}
	return tokens
}
