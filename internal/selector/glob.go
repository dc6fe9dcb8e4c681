package selector

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// errorInvalidPatternFormat reports a glob pattern that cannot be compiled.
	errorInvalidPatternFormat = "invalid glob pattern '%s': %v"

	middleDoubleStarPlaceholder   = "\x01"
	trailingDoubleStarPlaceholder = "\x02"
	leadingDoubleStarPlaceholder  = "\x03"
	bareDoubleStarPlaceholder     = "\x04"
)

// CompileIncludePattern translates an include glob into a regular expression
// anchored against the full root-relative path. '**' crosses directory
// separators, '*' and '?' stay within a single segment, character classes are
// preserved with '[!...]' rewritten to regex negation. Matching is
// case-sensitive. Malformed patterns return an error so that they can be
// rejected when the user adds them.
func CompileIncludePattern(pattern string) (*regexp.Regexp, error) {
	translated := escapeRegexSpecials(pattern)
	translated = translateDoubleStars(translated)
	translated = translateWildcards(translated)
	translated = expandDoubleStars(translated)
	translated = strings.ReplaceAll(translated, "[!", "[^")

	expression, compileError := regexp.Compile("^" + translated + "$")
	if compileError != nil {
		return nil, fmt.Errorf(errorInvalidPatternFormat, pattern, compileError)
	}
	return expression, nil
}

// ValidateIncludePattern reports whether the pattern compiles, without
// retaining the compiled expression.
func ValidateIncludePattern(pattern string) error {
	_, compileError := CompileIncludePattern(pattern)
	return compileError
}

// escapeRegexSpecials escapes regex special characters except the glob
// metacharacters '*', '?', '[', ']' and the path separator.
func escapeRegexSpecials(pattern string) string {
	specialCharacters := `.+()|^${}`
	for _, character := range specialCharacters {
		pattern = strings.ReplaceAll(pattern, string(character), `\`+string(character))
	}
	return pattern
}

// translateDoubleStars replaces '**' constructs with placeholders so the
// single-star pass below cannot corrupt their expansions.
func translateDoubleStars(pattern string) string {
	pattern = regexp.MustCompile(`/\*\*/`).ReplaceAllString(pattern, middleDoubleStarPlaceholder)
	pattern = regexp.MustCompile(`/\*\*$`).ReplaceAllString(pattern, trailingDoubleStarPlaceholder)
	pattern = regexp.MustCompile(`^\*\*/`).ReplaceAllString(pattern, leadingDoubleStarPlaceholder)
	pattern = strings.ReplaceAll(pattern, `**`, bareDoubleStarPlaceholder)
	return pattern
}

// translateWildcards rewrites '*' and '?' into their single-segment regex equivalents.
func translateWildcards(pattern string) string {
	pattern = strings.ReplaceAll(pattern, `*`, `[^/]*`)
	return strings.ReplaceAll(pattern, `?`, `[^/]`)
}

// expandDoubleStars substitutes the '**' placeholders with separator-crossing regex.
func expandDoubleStars(pattern string) string {
	pattern = strings.ReplaceAll(pattern, middleDoubleStarPlaceholder, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, trailingDoubleStarPlaceholder, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, leadingDoubleStarPlaceholder, `(.*/)?`)
	pattern = strings.ReplaceAll(pattern, bareDoubleStarPlaceholder, `.*`)
	return pattern
}
