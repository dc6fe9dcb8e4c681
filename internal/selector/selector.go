// Package selector walks the project tree and produces the ordered candidate
// file list for a copy invocation.
package selector

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/temirov/ctc/internal/ignore"
	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	warningExplicitFileMissingFormat = "Warning: explicit file '%s' does not exist, skipping\n"
	warningInvalidStoredPattern      = "Warning: ignoring invalid stored pattern '%s': %v\n"
	infoIgnoredDirectoryFormat       = "Info: skipping directory '%s/' ignored by %s\n"
	infoIgnoredFileFormat            = "Info: '%s' is ignored by %s, skipping\n"
	errorWalkFormat                  = "walk project tree at %s: %w"
)

// Options configures candidate selection for one copy invocation.
type Options struct {
	// Root is the absolute project root the walk starts from.
	Root string
	// Patterns supplies the include patterns and explicit files.
	Patterns types.StoredPatterns
	// IgnoreFilter excludes pattern-matched files; explicit files bypass it.
	IgnoreFilter *ignore.Filter
	// WarningWriter receives informational skip messages; defaults to os.Stderr.
	WarningWriter io.Writer
}

// SelectCandidates returns the ordered, deduplicated candidate list: explicit
// files first in add-order, then include-pattern matches in filesystem walk
// order. Explicit files are always candidates regardless of ignore rules.
func SelectCandidates(options Options) ([]types.CandidateFile, error) {
	warningWriter := options.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	includeExpressions := compileStoredPatterns(options.Patterns.IncludePatterns, warningWriter)

	var candidates []types.CandidateFile
	includedPaths := make(map[string]struct{})

	for _, explicitFile := range options.Patterns.ExplicitFiles {
		relativePath := filepath.ToSlash(filepath.Clean(explicitFile))
		absolutePath := filepath.Join(options.Root, filepath.FromSlash(relativePath))
		fileInformation, statError := os.Stat(absolutePath)
		if statError != nil || fileInformation.IsDir() {
			fmt.Fprintf(warningWriter, warningExplicitFileMissingFormat, relativePath)
			continue
		}
		if _, alreadyIncluded := includedPaths[relativePath]; alreadyIncluded {
			continue
		}
		includedPaths[relativePath] = struct{}{}
		candidates = append(candidates, types.CandidateFile{
			AbsolutePath: absolutePath,
			RelativePath: relativePath,
			SizeBytes:    fileInformation.Size(),
			IsExplicit:   true,
		})
	}

	if len(includeExpressions) == 0 {
		return candidates, nil
	}

	walkError := filepath.WalkDir(options.Root, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(warningWriter, "Warning: error accessing path %s: %v\n", walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, options.Root)
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if directoryEntry.Name() == utils.GitDirectoryName {
				return filepath.SkipDir
			}
			if options.IgnoreFilter != nil && options.IgnoreFilter.Matches(relativePath+"/") {
				fmt.Fprintf(warningWriter, infoIgnoredDirectoryFormat, relativePath, utils.GitIgnoreFileName)
				return filepath.SkipDir
			}
			return nil
		}

		entryName := directoryEntry.Name()
		if entryName == utils.GitIgnoreFileName || entryName == utils.PatternStoreFileName {
			return nil
		}
		if _, alreadyIncluded := includedPaths[relativePath]; alreadyIncluded {
			return nil
		}
		if !matchesAnyPattern(relativePath, includeExpressions) {
			return nil
		}
		if options.IgnoreFilter != nil && options.IgnoreFilter.Matches(relativePath) {
			fmt.Fprintf(warningWriter, infoIgnoredFileFormat, relativePath, utils.GitIgnoreFileName)
			return nil
		}

		fileInformation, infoError := directoryEntry.Info()
		if infoError != nil {
			fmt.Fprintf(warningWriter, "Warning: error accessing path %s: %v\n", walkedPath, infoError)
			return nil
		}

		includedPaths[relativePath] = struct{}{}
		candidates = append(candidates, types.CandidateFile{
			AbsolutePath: walkedPath,
			RelativePath: relativePath,
			SizeBytes:    fileInformation.Size(),
		})
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorWalkFormat, options.Root, walkError)
	}

	return candidates, nil
}

// compileStoredPatterns compiles every stored include pattern, warning about
// and dropping any that no longer compile (the store file can be hand-edited).
func compileStoredPatterns(patterns []string, warningWriter io.Writer) []*regexp.Regexp {
	expressions := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		expression, compileError := CompileIncludePattern(pattern)
		if compileError != nil {
			fmt.Fprintf(warningWriter, warningInvalidStoredPattern, pattern, compileError)
			continue
		}
		expressions = append(expressions, expression)
	}
	return expressions
}

func matchesAnyPattern(relativePath string, expressions []*regexp.Regexp) bool {
	for _, expression := range expressions {
		if expression.MatchString(relativePath) {
			return true
		}
	}
	return false
}
