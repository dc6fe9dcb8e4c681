package tokenizer

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func newTiktokenCounter(modelName string, encodingName string) (openAICounter, error) {
	encoding, encodingError := tiktoken.GetEncoding(encodingName)
	if encodingError != nil {
		return openAICounter{}, fmt.Errorf("initialize %s tokenizer: %w", encodingName, encodingError)
	}
	return openAICounter{encoding: encoding, name: modelName}, nil
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIDs := counter.encoding.Encode(input, nil, nil)
	return len(tokenIDs), nil
}
