// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases ascii", input: "The Trial", expected: "the trial"},
		{name: "strips accents", input: "Brontë", expected: "bronte"},
		{name: "strips macrons", input: "Kafū Nagai", expected: "kafu nagai"},
		{name: "collapses whitespace", input: "  war   and\tpeace ", expected: "war and peace"},
		{name: "empty string", input: "", expected: ""},
		{name: "digits untouched", input: "Fahrenheit 451", expected: "fahrenheit 451"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}
