package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprox(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"package main\n", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Approx{}.CountTokens(tt.text), "text %q", tt.text)
	}
	assert.Equal(t, KindApprox, Approx{}.Name())
}

func TestNew(t *testing.T) {
	for _, kind := range []string{"", "approx", " APPROX "} {
		c, err := New(kind, "")
		require.NoError(t, err)
		assert.IsType(t, Approx{}, c)
	}

	_, err := New("sentencepiece", "")
	assert.ErrorContains(t, err, "unknown token counter")
}

func TestTiktokenZeroValue(t *testing.T) {
	var tk Tiktoken
	assert.Equal(t, 0, tk.CountTokens("anything"))
}
