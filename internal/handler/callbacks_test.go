package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "today", expected: "today"},
		{name: "button prefix", input: "\flearned|5", expected: "learned|5"},
		{name: "surrounding whitespace", input: "  \fanswer|1|2 \n", expected: "answer|1|2"},
		{name: "zero width and control", input: "st\u0000ats\u200b", expected: "stats"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}

func TestParseCallback(t *testing.T) {
	unique, args := parseCallback("\fanswer|3|1")
	assert.Equal(t, "answer", unique)
	assert.Equal(t, []string{"3", "1"}, args)

	unique, args = parseCallback("main_menu")
	assert.Equal(t, "main_menu", unique)
	assert.Empty(t, args)
}

func TestCallbackInts(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		n      int
		want   []int
		wantOK bool
	}{
		{name: "one", args: []string{"7"}, n: 1, want: []int{7}, wantOK: true},
		{name: "extra args ignored", args: []string{"1", "2", "x"}, n: 2, want: []int{1, 2}, wantOK: true},
		{name: "too few", args: []string{"1"}, n: 2},
		{name: "not a number", args: []string{"abc"}, n: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := callbackInts(tt.args, tt.n)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
