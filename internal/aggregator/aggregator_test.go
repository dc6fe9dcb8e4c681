package aggregator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ctc/internal/tokenizer"
	"github.com/temirov/ctc/internal/types"
)

func writeCandidate(t *testing.T, root string, relativePath string, content string) types.CandidateFile {
	t.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
	if writeError := os.WriteFile(fullPath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("failed to write %s: %v", relativePath, writeError)
	}
	return types.CandidateFile{
		AbsolutePath: fullPath,
		RelativePath: relativePath,
		SizeBytes:    int64(len(content)),
	}
}

func heuristicTestCounter() tokenizer.Counter {
	counter, _, _ := tokenizer.NewCounter("unit-test-model")
	return counter
}

func defaultTestLimits() types.CopyLimits {
	return types.CopyLimits{MaxFiles: 50, MaxChars: 1_000_000, MaxTokens: 128_000, ModelName: "unit-test-model"}
}

// TestAggregateCountsContentCharacters verifies the worked example: three
// candidates of 50, 50, and 30 characters yield 3 included files and 130
// copied characters under default limits.
func TestAggregateCountsContentCharacters(t *testing.T) {
	root := t.TempDir()
	fiftyCharacters := strings.Repeat("a", 49) + "\n"
	thirtyCharacters := strings.Repeat("s", 29) + "\n"

	candidates := []types.CandidateFile{
		writeCandidate(t, root, "secrets.env", thirtyCharacters),
		writeCandidate(t, root, "a.py", fiftyCharacters),
		writeCandidate(t, root, "b.py", fiftyCharacters),
	}

	blob, summary := Aggregate(Options{
		Candidates:    candidates,
		Limits:        defaultTestLimits(),
		Counter:       heuristicTestCounter(),
		WarningWriter: &bytes.Buffer{},
	})

	if summary.FilesIncluded != 3 {
		t.Fatalf("expected 3 included files, got %d", summary.FilesIncluded)
	}
	if summary.CharsCopied != 130 {
		t.Fatalf("expected 130 copied characters, got %d", summary.CharsCopied)
	}
	if summary.FilesSkipped != 0 {
		t.Fatalf("expected no skipped files, got %d", summary.FilesSkipped)
	}
	if !strings.HasPrefix(blob, "<code-sample>\n") || !strings.HasSuffix(blob, "</code-sample>") {
		t.Fatalf("blob missing wrapper tags: %q", blob)
	}
	if !strings.Contains(blob, "```secrets.env\n") || !strings.Contains(blob, "```a.py\n") {
		t.Fatalf("blob missing path headers: %q", blob)
	}
}

// TestAggregateMaxFilesStopsAtWholeFiles verifies that with max_files=2 and
// three candidates exactly two are included and one is reported skipped.
func TestAggregateMaxFilesStopsAtWholeFiles(t *testing.T) {
	root := t.TempDir()
	candidates := []types.CandidateFile{
		writeCandidate(t, root, "one.txt", "one\n"),
		writeCandidate(t, root, "two.txt", "two\n"),
		writeCandidate(t, root, "three.txt", "three\n"),
	}

	limits := defaultTestLimits()
	limits.MaxFiles = 2

	blob, summary := Aggregate(Options{
		Candidates:    candidates,
		Limits:        limits,
		Counter:       heuristicTestCounter(),
		WarningWriter: &bytes.Buffer{},
	})

	if summary.FilesIncluded != 2 {
		t.Fatalf("expected 2 included files, got %d", summary.FilesIncluded)
	}
	if summary.FilesSkipped != 1 {
		t.Fatalf("expected 1 skipped file, got %d", summary.FilesSkipped)
	}
	if strings.Contains(blob, "three.txt") {
		t.Fatalf("blob should not contain the skipped candidate")
	}
	if len(summary.SkippedPaths) != 1 || summary.SkippedPaths[0] != "three.txt" {
		t.Fatalf("unexpected skipped paths: %v", summary.SkippedPaths)
	}
}

// TestAggregateMaxCharsBelowFirstCandidate verifies that a character limit
// smaller than the first candidate includes zero files.
func TestAggregateMaxCharsBelowFirstCandidate(t *testing.T) {
	root := t.TempDir()
	candidates := []types.CandidateFile{
		writeCandidate(t, root, "big.txt", strings.Repeat("x", 100)),
		writeCandidate(t, root, "small.txt", "tiny"),
	}

	limits := defaultTestLimits()
	limits.MaxChars = 50

	_, summary := Aggregate(Options{
		Candidates:    candidates,
		Limits:        limits,
		Counter:       heuristicTestCounter(),
		WarningWriter: &bytes.Buffer{},
	})

	if summary.FilesIncluded != 0 {
		t.Fatalf("expected 0 included files, got %d", summary.FilesIncluded)
	}
	if summary.FilesSkipped != 2 {
		t.Fatalf("expected both candidates skipped, got %d", summary.FilesSkipped)
	}
}

// TestAggregateTokenLimitStopsRun verifies the token-limit stop condition.
func TestAggregateTokenLimitStopsRun(t *testing.T) {
	root := t.TempDir()
	candidates := []types.CandidateFile{
		writeCandidate(t, root, "first.txt", strings.Repeat("t", 40)),
		writeCandidate(t, root, "second.txt", strings.Repeat("t", 40)),
	}

	limits := defaultTestLimits()
	limits.MaxTokens = 15

	_, summary := Aggregate(Options{
		Candidates:    candidates,
		Limits:        limits,
		Counter:       heuristicTestCounter(),
		WarningWriter: &bytes.Buffer{},
	})

	if summary.FilesIncluded != 1 {
		t.Fatalf("expected 1 included file, got %d", summary.FilesIncluded)
	}
	if summary.TokensEstimated != 10 {
		t.Fatalf("expected 10 estimated tokens, got %d", summary.TokensEstimated)
	}
	if summary.FilesSkipped != 1 {
		t.Fatalf("expected 1 skipped file, got %d", summary.FilesSkipped)
	}
}

// TestAggregateSkipsUnreadableFiles verifies that a read failure is recorded
// without aborting the run.
func TestAggregateSkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	missing := types.CandidateFile{
		AbsolutePath: filepath.Join(root, "missing.txt"),
		RelativePath: "missing.txt",
	}
	readable := writeCandidate(t, root, "readable.txt", "hello\n")

	var warnings bytes.Buffer
	_, summary := Aggregate(Options{
		Candidates:    []types.CandidateFile{missing, readable},
		Limits:        defaultTestLimits(),
		Counter:       heuristicTestCounter(),
		WarningWriter: &warnings,
	})

	if summary.FilesIncluded != 1 {
		t.Fatalf("expected 1 included file, got %d", summary.FilesIncluded)
	}
	if summary.ReadFailures != 1 {
		t.Fatalf("expected 1 read failure, got %d", summary.ReadFailures)
	}
	if !bytes.Contains(warnings.Bytes(), []byte("missing.txt")) {
		t.Fatalf("expected warning naming missing.txt, got %q", warnings.String())
	}
}

// TestAggregateSkipsBinaryFiles verifies binary detection keeps binary
// content out of the blob.
func TestAggregateSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	binaryPath := filepath.Join(root, "image.bin")
	if writeError := os.WriteFile(binaryPath, []byte{0x00, 0x01, 0xff, 0xfe}, 0o644); writeError != nil {
		t.Fatalf("write binary file: %v", writeError)
	}

	candidates := []types.CandidateFile{
		{AbsolutePath: binaryPath, RelativePath: "image.bin", SizeBytes: 4},
		writeCandidate(t, root, "text.txt", "text\n"),
	}

	blob, summary := Aggregate(Options{
		Candidates:    candidates,
		Limits:        defaultTestLimits(),
		Counter:       heuristicTestCounter(),
		WarningWriter: &bytes.Buffer{},
	})

	if summary.FilesIncluded != 1 {
		t.Fatalf("expected only the text file included, got %d", summary.FilesIncluded)
	}
	if strings.Contains(blob, "image.bin") {
		t.Fatalf("blob should not reference the binary file")
	}
}
