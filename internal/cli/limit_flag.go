package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	limitFlagTypeName            = "limit"
	invalidLimitFlagValueMessage = "invalid limit value '%s': expected a positive integer, optionally suffixed with k or m"
)

// limitFlagValue is a pflag.Value accepting positive integers with optional
// decimal magnitude suffixes, so that `--max-chars 1m` reads as 1,000,000.
type limitFlagValue struct {
	target *int
}

var _ pflag.Value = (*limitFlagValue)(nil)

func (value *limitFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf(invalidLimitFlagValueMessage, input)
	}
	parsed, ok := interpretLimitLiteral(input)
	if !ok {
		return fmt.Errorf(invalidLimitFlagValueMessage, input)
	}
	*value.target = parsed
	return nil
}

func (value *limitFlagValue) String() string {
	if value == nil || value.target == nil {
		return "0"
	}
	return strconv.Itoa(*value.target)
}

func (value *limitFlagValue) Type() string {
	return limitFlagTypeName
}

// interpretLimitLiteral parses a limit literal such as "50", "128k", or "1m".
// Suffixes are decimal multipliers.
func interpretLimitLiteral(input string) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return 0, false
	}

	multiplier := 1
	switch {
	case strings.HasSuffix(normalized, "m"):
		multiplier = 1_000_000
		normalized = strings.TrimSuffix(normalized, "m")
	case strings.HasSuffix(normalized, "k"):
		multiplier = 1_000
		normalized = strings.TrimSuffix(normalized, "k")
	}

	parsed, parseError := strconv.Atoi(normalized)
	if parseError != nil || parsed <= 0 {
		return 0, false
	}
	return parsed * multiplier, true
}
