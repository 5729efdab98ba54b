package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Clean(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text unchanged", in: "Hi", want: "Hi"},
		{name: "empty", in: "", want: ""},
		{name: "ampersand kept literal", in: "Tom & Jerry", want: "Tom & Jerry"},
		{name: "heart is not a tag", in: "I <3 Go", want: "I <3 Go"},
		{name: "comparison kept", in: "a > b", want: "a > b"},
		{name: "quotes kept", in: `say "hi" it's fine`, want: `say "hi" it's fine`},
		{name: "tags stripped", in: "<b>bold</b> move", want: "bold move"},
		{name: "script removed with content", in: "<script>alert(1)</script>hello", want: "hello"},
		{name: "event handler removed", in: `<img src=x onerror="alert(1)">nice`, want: "nice"},
		{name: "entity encoded script removed", in: "&lt;script&gt;alert(1)&lt;/script&gt;", want: ""},
		{name: "entity encoded img removed", in: "&lt;img src=x onerror=alert(1)&gt;", want: ""},
		{name: "double encoded script removed", in: "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;", want: ""},
		{name: "bare tag opener drops the rest", in: "a<b", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Clean(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "<script")
			assert.NotContains(t, got, "<img")
		})
	}
}

func TestSanitizer_HasMarkup(t *testing.T) {
	s := NewSanitizer()

	for _, text := range []string{"Hi", "", "Tom & Jerry", "I <3 Go", "a > b", "日本語のコメント", "line one\r\nline two"} {
		assert.False(t, s.HasMarkup(text), text)
	}

	for _, text := range []string{
		"<b>Alice</b>",
		"<b></b>",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;img src=x onerror=alert(1)&gt;",
		"I <3 Go & a<b",
	} {
		assert.True(t, s.HasMarkup(text), text)
	}
}
