package tokenizer

import "unicode/utf8"

// charactersPerToken approximates how many characters one token spans for
// typical English and source-code text.
const charactersPerToken = 4

const heuristicCounterName = "chars-per-token-approximation"

// heuristicCounter estimates tokens as character count divided by four. It
// serves as the fallback for models without a registered encoding.
type heuristicCounter struct{}

func (heuristicCounter) Name() string {
	return heuristicCounterName
}

func (heuristicCounter) CountString(input string) (int, error) {
	characterCount := utf8.RuneCountInString(input)
	if characterCount == 0 {
		return 0, nil
	}
	estimated := characterCount / charactersPerToken
	if estimated == 0 {
		estimated = 1
	}
	return estimated, nil
}
