// Package tokens estimates how many model tokens a summary will cost.
package tokens

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter types accepted by New.
const (
	KindApprox   = "approx"
	KindTiktoken = "tiktoken"
)

// DefaultEncodingModel selects the BPE table used by the tiktoken counter.
const DefaultEncodingModel = "gpt-4o"

// charsPerToken is the ratio used by the approximate counter.
const charsPerToken = 4

// Counter counts tokens in a text.
type Counter interface {
	CountTokens(text string) int
	Name() string
}

// Approx estimates one token per four bytes of text.
type Approx struct{}

// CountTokens implements Counter.
func (Approx) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// Name implements Counter.
func (Approx) Name() string { return KindApprox }

// Tiktoken counts with a BPE encoding. The encoding tables are fetched on
// first use and cached by tiktoken-go (see TIKTOKEN_CACHE_DIR).
type Tiktoken struct {
	model string
	enc   *tiktoken.Tiktoken
}

// NewTiktoken loads the encoding for model, falling back to
// DefaultEncodingModel when the model is unknown.
func NewTiktoken(model string) (*Tiktoken, error) {
	if model == "" {
		model = DefaultEncodingModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil && model != DefaultEncodingModel {
		model = DefaultEncodingModel
		enc, err = tiktoken.EncodingForModel(model)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tiktoken encoding for %s: %w", model, err)
	}
	return &Tiktoken{model: model, enc: enc}, nil
}

// CountTokens implements Counter.
func (t *Tiktoken) CountTokens(text string) int {
	if t.enc == nil || text == "" {
		return 0
	}
	return len(t.enc.EncodeOrdinary(text))
}

// Name implements Counter.
func (t *Tiktoken) Name() string { return KindTiktoken + ":" + t.model }

// New returns the counter named by kind. An unknown kind is an error; a
// tiktoken counter that cannot load its tables degrades to Approx, and the
// returned error reports why.
func New(kind, model string) (Counter, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindApprox:
		return Approx{}, nil
	case KindTiktoken:
		t, err := NewTiktoken(model)
		if err != nil {
			return Approx{}, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown token counter %q (want %s or %s)", kind, KindApprox, KindTiktoken)
	}
}
