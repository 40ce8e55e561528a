package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple name",
			input: "Summer Dress",
			want:  "summer-dress",
		},
		{
			name:  "Already lowercase",
			input: "sneakers",
			want:  "sneakers",
		},
		{
			name:  "Multiple spaces collapse",
			input: "iPhone   15  Pro",
			want:  "iphone-15-pro",
		},
		{
			name:  "Underscores and hyphens collapse",
			input: "new_-_arrivals",
			want:  "new-arrivals",
		},
		{
			name:  "Punctuation dropped",
			input: "Kids' Shoes (2024)!",
			want:  "kids-shoes-2024",
		},
		{
			name:  "Leading and trailing separators trimmed",
			input: "  --hello--  ",
			want:  "hello",
		},
		{
			name:  "Empty input",
			input: "",
			want:  "",
		},
		{
			name:  "Only punctuation",
			input: "!!!",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
