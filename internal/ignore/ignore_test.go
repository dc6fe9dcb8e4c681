package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFilterMatches exercises the gitignore pattern semantics the filter
// supports: suffix matching, directory patterns, wildcards, anchoring, and
// double stars.
func TestFilterMatches(t *testing.T) {
	testCases := []struct {
		name     string
		rules    []string
		path     string
		excluded bool
	}{
		{"plain file name anywhere", []string{"secrets.env"}, "secrets.env", true},
		{"plain file name nested", []string{"secrets.env"}, "config/secrets.env", true},
		{"non-matching name", []string{"secrets.env"}, "secrets.envy", false},
		{"wildcard extension", []string{"*.log"}, "build/app.log", true},
		{"wildcard stays in segment", []string{"*.log"}, "app.log/file.txt", true},
		{"directory pattern", []string{"build/"}, "build/", true},
		{"directory pattern descendants", []string{"build/"}, "build/out/app.txt", true},
		{"root anchored", []string{"/dist"}, "dist", true},
		{"root anchored does not match nested", []string{"/dist"}, "packages/dist", false},
		{"double star middle", []string{"src/**/generated"}, "src/a/b/generated", true},
		{"leading double star", []string{"**/node_modules/"}, "a/b/node_modules/x.js", true},
		{"comment line ignored", []string{"# a comment", "*.tmp"}, "x.tmp", true},
		{"blank line ignored", []string{"", "*.tmp"}, "x.tmp", true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			filter := NewFilter(nil)
			filter.AddRules(testCase.rules)
			if actual := filter.Matches(testCase.path); actual != testCase.excluded {
				t.Fatalf("Matches(%q) with rules %v = %v, want %v", testCase.path, testCase.rules, actual, testCase.excluded)
			}
		})
	}
}

// TestFilterNegationReincludes verifies that a later negation wins over an
// earlier exclusion.
func TestFilterNegationReincludes(t *testing.T) {
	filter := NewFilter(nil)
	filter.AddRules([]string{"*.log", "!keep.log"})

	if !filter.Matches("debug.log") {
		t.Fatalf("expected debug.log to be excluded")
	}
	if filter.Matches("keep.log") {
		t.Fatalf("expected keep.log to be re-included by negation")
	}
}

// TestLoadGitignoreFileMissingIsNoError verifies that an absent gitignore
// file leaves the filter empty without failing.
func TestLoadGitignoreFileMissingIsNoError(t *testing.T) {
	filter := NewFilter(nil)
	missingPath := filepath.Join(t.TempDir(), ".gitignore")
	if loadError := filter.LoadGitignoreFile(missingPath); loadError != nil {
		t.Fatalf("expected no error for missing file, got %v", loadError)
	}
	if filter.Matches("anything.txt") {
		t.Fatalf("empty filter should match nothing")
	}
}

// TestLoadGitignoreFileCompilesRules verifies rules are read from disk.
func TestLoadGitignoreFileCompilesRules(t *testing.T) {
	directory := t.TempDir()
	gitignorePath := filepath.Join(directory, ".gitignore")
	if writeError := os.WriteFile(gitignorePath, []byte("*.secret\nbuild/\n"), 0o644); writeError != nil {
		t.Fatalf("write gitignore: %v", writeError)
	}

	filter := NewFilter(nil)
	if loadError := filter.LoadGitignoreFile(gitignorePath); loadError != nil {
		t.Fatalf("LoadGitignoreFile failed: %v", loadError)
	}
	if !filter.Matches("api.secret") {
		t.Fatalf("expected api.secret to be excluded")
	}
	if !filter.Matches("build/") {
		t.Fatalf("expected build/ directory to be excluded")
	}
	if filter.Matches("main.go") {
		t.Fatalf("expected main.go to pass the filter")
	}
}
