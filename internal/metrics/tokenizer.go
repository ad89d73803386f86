package metrics

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// EncodingName pins the byte-pair-encoding vocabulary used for token counts.
// Token counts are tokenizer-specific, so this name is part of the tool's
// external contract and must not change silently.
const EncodingName = "cl100k_base"

// BPETokenizer counts tokens using the pinned tiktoken encoding.
type BPETokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewBPETokenizer loads the pinned encoding. The vocabulary is fetched on
// first use and cached by the tiktoken library.
func NewBPETokenizer() (*BPETokenizer, error) {
	encoding, err := tiktoken.GetEncoding(EncodingName)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", EncodingName, err)
	}
	return &BPETokenizer{encoding: encoding}, nil
}

// Count returns the number of subword tokens in text.
func (t *BPETokenizer) Count(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}
