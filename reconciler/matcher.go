package reconciler

import "strings"

// ContainsWord reports whether word occurs in text delimited by word
// boundaries on both ends. A boundary sits between a word byte
// ([A-Za-z0-9_]) and a non-word byte, or at either end of text next to a word
// byte. Both arguments are expected to be normalized already.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	start := 0
	for start <= len(text)-len(word) {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		if isBoundary(text, idx) && isBoundary(text, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isBoundary(text string, pos int) bool {
	before := pos > 0 && isWordByte(text[pos-1])
	after := pos < len(text) && isWordByte(text[pos])
	return before != after
}
