// Package ignore implements gitignore-style exclusion of project paths.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// compiledRule is a single ignore pattern compiled to a regular expression,
// together with its negation flag and originating line.
type compiledRule struct {
	expression *regexp.Regexp
	negated    bool
	sourceLine string
}

// Filter answers whether a root-relative path is excluded by the loaded
// gitignore-style rules. The last matching rule wins, so later negations
// re-include previously excluded paths.
type Filter struct {
	rules  []compiledRule
	logger *zap.Logger
}

// NewFilter constructs an empty Filter. The logger is optional; a nop logger
// is substituted when nil.
func NewFilter(logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{logger: logger}
}

// LoadGitignoreFile compiles the rules found in the gitignore file at
// filePath. A missing file is not an error; the filter simply stays empty.
func (filter *Filter) LoadGitignoreFile(filePath string) error {
	fileContent, readError := os.ReadFile(filePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil
		}
		return readError
	}
	lines := strings.Split(string(fileContent), "\n")
	filter.AddRules(lines)
	filter.logger.Debug("compiled ignore rules",
		zap.String("filePath", filePath),
		zap.Int("ruleCount", len(filter.rules)))
	return nil
}

// AddRules compiles the provided pattern lines and appends them to the filter.
// Blank lines, comments, and patterns that fail to compile are dropped.
func (filter *Filter) AddRules(lines []string) {
	for _, line := range lines {
		expression, negated, valid := compileRuleLine(line)
		if !valid {
			continue
		}
		filter.rules = append(filter.rules, compiledRule{
			expression: expression,
			negated:    negated,
			sourceLine: line,
		})
	}
}

// Matches reports whether relativePath is excluded by the filter. Directory
// paths should carry a trailing slash so that directory-only patterns apply.
func (filter *Filter) Matches(relativePath string) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	excluded := false
	for _, rule := range filter.rules {
		if rule.expression.MatchString(normalizedPath) {
			excluded = !rule.negated
		}
	}
	return excluded
}

// compileRuleLine converts one gitignore line into an anchored regular
// expression plus its negation flag. The third return value reports whether
// the line produced a usable rule.
func compileRuleLine(line string) (*regexp.Regexp, bool, bool) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false, false
	}

	negated := false
	if strings.HasPrefix(trimmedLine, "!") {
		negated = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	translated := escapeRegexSpecials(trimmedLine)
	translated = translateDoubleStars(translated)
	translated = translateWildcards(translated)
	translated = expandDoubleStars(translated)
	translated = anchorRule(translated, trimmedLine)

	expression, compileError := regexp.Compile(translated)
	if compileError != nil {
		return nil, false, false
	}
	return expression, negated, true
}

// escapeRegexSpecials escapes regex special characters except '*', '?', and '/'.
func escapeRegexSpecials(pattern string) string {
	specialCharacters := `.+()|^$[]{}`
	for _, character := range specialCharacters {
		pattern = strings.ReplaceAll(pattern, string(character), `\`+string(character))
	}
	return pattern
}

// Placeholder bytes keep '**' expansions intact while single-star wildcards
// are translated; the expansions themselves contain '*' characters.
const (
	middleDoubleStarPlaceholder   = "\x01"
	trailingDoubleStarPlaceholder = "\x02"
	leadingDoubleStarPlaceholder  = "\x03"
	bareDoubleStarPlaceholder     = "\x04"
)

// translateDoubleStars replaces '**' constructs with placeholders that
// expandDoubleStars later rewrites into separator-crossing regex.
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
	return strings.ReplaceAll(pattern, "?", "[^/]")
}

// expandDoubleStars substitutes the '**' placeholders with their regex expansions.
func expandDoubleStars(pattern string) string {
	pattern = strings.ReplaceAll(pattern, middleDoubleStarPlaceholder, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, trailingDoubleStarPlaceholder, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, leadingDoubleStarPlaceholder, `(.*/)?`)
	pattern = strings.ReplaceAll(pattern, bareDoubleStarPlaceholder, `.*`)
	return pattern
}

// anchorRule anchors the translated pattern the way git does: patterns with a
// leading slash anchor at the root, others match any path suffix, and a
// trailing slash restricts the rule to directories and their descendants.
func anchorRule(pattern string, originalPattern string) string {
	if strings.HasSuffix(originalPattern, "/") {
		pattern += "(.*)?$"
	} else {
		pattern += "(/.*)?$"
	}
	if strings.HasPrefix(originalPattern, "/") {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	return "^(|.*/)" + pattern
}
