package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Edisi Senin 3 Maret", "edisi-senin-3-maret"},
		{"  Koran   Pagi  ", "koran-pagi"},
		{"UPPER case", "upper-case"},
		{"a_b.c/d", "a-b-c-d"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.in), "input %q", tt.in)
	}
}

func TestCutToLen(t *testing.T) {
	assert.Equal(t, "abc", cutToLen("abcdef", 3))
	assert.Equal(t, "abcdef", cutToLen("abcdef", 0))
	assert.Equal(t, "ab", cutToLen("ab-cd", 3), "no trailing dash after the cut")
}
