package cli

import "testing"

func TestInterpretLimitLiteral(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedValue int
		expectedOK    bool
	}{
		{name: "plain integer", input: "50", expectedValue: 50, expectedOK: true},
		{name: "kilo suffix", input: "128k", expectedValue: 128_000, expectedOK: true},
		{name: "mega suffix", input: "1m", expectedValue: 1_000_000, expectedOK: true},
		{name: "uppercase suffix", input: "32K", expectedValue: 32_000, expectedOK: true},
		{name: "surrounding whitespace", input: " 20 ", expectedValue: 20, expectedOK: true},
		{name: "zero rejected", input: "0", expectedOK: false},
		{name: "negative rejected", input: "-5", expectedOK: false},
		{name: "bare suffix rejected", input: "k", expectedOK: false},
		{name: "fractional rejected", input: "1.5k", expectedOK: false},
		{name: "empty rejected", input: "", expectedOK: false},
		{name: "words rejected", input: "fifty", expectedOK: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsedValue, ok := interpretLimitLiteral(testCase.input)
			if ok != testCase.expectedOK {
				t.Fatalf("expected ok=%v, got ok=%v", testCase.expectedOK, ok)
			}
			if ok && parsedValue != testCase.expectedValue {
				t.Fatalf("expected %d, got %d", testCase.expectedValue, parsedValue)
			}
		})
	}
}

func TestLimitFlagValueSet(t *testing.T) {
	target := 0
	flagValue := limitFlagValue{target: &target}

	if setError := flagValue.Set("64k"); setError != nil {
		t.Fatalf("unexpected error: %v", setError)
	}
	if target != 64_000 {
		t.Fatalf("expected target 64000, got %d", target)
	}
	if flagValue.String() != "64000" {
		t.Fatalf("unexpected string form: %q", flagValue.String())
	}
	if setError := flagValue.Set("not-a-number"); setError == nil {
		t.Fatal("expected an error for an invalid literal")
	}
	if target != 64_000 {
		t.Fatalf("invalid literal must not modify the target, got %d", target)
	}
}
