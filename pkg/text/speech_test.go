package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpeakable(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Hi there",
			expected: "Hi there",
		},
		{
			name:     "emphasis and links",
			input:    "Some **bold** text and a [link](http://example.org).",
			expected: "Some bold text and a link.",
		},
		{
			name:     "heading and list",
			input:    "# Title\n\n- one\n- two",
			expected: "Title\none\ntwo",
		},
		{
			name:     "code block is dropped",
			input:    "Run this:\n\n```sh\nrm -rf /\n```\n\nDone.",
			expected: "Run this:\nDone.",
		},
		{
			name:     "soft line breaks join",
			input:    "first line\nsecond line",
			expected: "first line second line",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Speakable(tc.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "a b\nc", Normalize("  a   b \r\n\r\n  c  "))
	require.Equal(t, "", Normalize(" \n\t "))
}
