package main

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const defaultTokenModel = "gpt-4o"

// countTokens returns the tiktoken token count of the rendered output for
// the given model's encoding.
func countTokens(output string, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return 0, fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}
	return len(tkm.Encode(output, nil, nil)), nil
}
