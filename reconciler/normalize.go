package reconciler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText decomposes accented letters and drops everything that is neither an
// ASCII word character nor whitespace, so combining marks disappear with it.
var foldText = transform.Chain(
	norm.NFD,
	runes.Remove(runes.Predicate(func(r rune) bool {
		return !isWordRune(r) && !isSpaceRune(r)
	})),
)

// NormalizeText lowercases text and strips diacritics and punctuation.
// "Ação Civil-Pública!" becomes "acao civilpublica".
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(foldText, text)
	if err != nil {
		return ""
	}
	return strings.ToLower(folded)
}

// NormalizeValue normalizes a cell value. Only strings carry text; every other
// value normalizes to the empty string.
func NormalizeValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return NormalizeText(s)
}

// FormatValue renders a cell value as text for display and export.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(val)
	}
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func isWordRune(r rune) bool {
	return r < unicode.MaxASCII && isWordByte(byte(r))
}

// isSpaceRune reports the ECMAScript whitespace and line terminator set:
// every Zs rune, the ASCII controls \t \n \v \f \r, U+2028, U+2029 and
// U+FEFF. U+0085 is not whitespace here.
func isSpaceRune(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
