package services

import (
	"strings"
	"unicode/utf8"
)

// TrimTextToTokens returns the longest run of leading words that, joined by single
// spaces, fits in budget characters. Words are never split.
func TrimTextToTokens(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	var sb strings.Builder
	length := 0
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if length > 0 {
			n++
		}
		if length+n > budget {
			break
		}
		if length > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
		length += n
	}
	return sb.String()
}
