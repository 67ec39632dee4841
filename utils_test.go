package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"line endings", "a\r\nb\rc\r\n\r\n", "a\nb\nc"},
		{"control characters", "be\x07ll\x1b", "bell"},
		{"html", "<div>hi &amp; <b>bye</b></div>", "hi & bye"},
		{"rtf", `{\rtf1\ansi Hello}`, "Hello"},
		{"rtf escapes", `{\rtf1 a\{b\}}`, "a{b}"},
		{"unicode", "晚风轻拂\n", "晚风轻拂"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanClipboardText(tt.in))
		})
	}
}

func TestIsHTML(t *testing.T) {
	assert.True(t, isHTML("  <html><body>x</body></html>"))
	assert.False(t, isHTML("a < b and <div>"))
	assert.False(t, isHTML("<3 you"))
}
