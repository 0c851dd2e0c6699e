package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()
	c := &Controller{validate: newValidator()}

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "100", want: "100.00", ok: true},
		{input: "12.5", want: "12.50", ok: true},
		{input: "12.", want: "12.00", ok: true},
		{input: "0", want: "0.00", ok: true},
		{input: "10000000000000", ok: false},
		{input: "9999999999999.99", want: "9999999999999.99", ok: true},
		{input: "9999999999999", want: "9999999999999.00", ok: true},
		{input: strings.Repeat("9", 400), ok: false},
		{input: "1.234", ok: false},
		{input: "-5", ok: false},
		{input: "abc", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := c.parseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.StringFixed(2))
			}
		})
	}
}

func TestValidPIN(t *testing.T) {
	t.Parallel()
	c := &Controller{validate: newValidator()}

	assert.True(t, c.validPIN("0123"))
	assert.False(t, c.validPIN("123"))
	assert.False(t, c.validPIN("12345"))
	assert.False(t, c.validPIN("12a4"))
	assert.False(t, c.validPIN(""))
}
