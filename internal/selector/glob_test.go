package selector

import (
	"testing"
)

// TestCompileIncludePatternMatching exercises the include glob semantics:
// '**' crosses separators, '*' stays within a segment, matching is anchored
// to the whole root-relative path and case-sensitive.
func TestCompileIncludePatternMatching(t *testing.T) {
	testCases := []struct {
		pattern string
		path    string
		matches bool
	}{
		{"**/*.py", "a.py", true},
		{"**/*.py", "src/deep/tree/a.py", true},
		{"**/*.py", "a.pyc", false},
		{"*.py", "a.py", true},
		{"*.py", "src/a.py", false},
		{"src/**/*.js", "src/app.js", true},
		{"src/**/*.js", "src/a/b/app.js", true},
		{"src/**/*.js", "lib/app.js", false},
		{"docs/*.md", "docs/readme.md", true},
		{"docs/*.md", "docs/sub/readme.md", false},
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},
		{"logs/[ab].log", "logs/a.log", true},
		{"logs/[ab].log", "logs/c.log", false},
		{"logs/[!ab].log", "logs/c.log", true},
		{"**/*.PY", "a.py", false},
		{"**", "anything/at/all.txt", true},
	}

	for _, testCase := range testCases {
		expression, compileError := CompileIncludePattern(testCase.pattern)
		if compileError != nil {
			t.Fatalf("CompileIncludePattern(%q) failed: %v", testCase.pattern, compileError)
		}
		if actual := expression.MatchString(testCase.path); actual != testCase.matches {
			t.Errorf("pattern %q against %q = %v, want %v", testCase.pattern, testCase.path, actual, testCase.matches)
		}
	}
}

// TestValidateIncludePatternRejectsMalformedGlobs verifies that patterns
// which cannot compile are reported as errors.
func TestValidateIncludePatternRejectsMalformedGlobs(t *testing.T) {
	if validationError := ValidateIncludePattern("src/[unclosed.py"); validationError == nil {
		t.Fatalf("expected error for unclosed character class")
	}
	if validationError := ValidateIncludePattern("**/*.go"); validationError != nil {
		t.Fatalf("expected valid pattern, got %v", validationError)
	}
}
