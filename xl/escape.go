package xl

import (
	"strings"
	"unicode/utf8"
)

// Escape prepares text for XML character data and attribute values. The five
// metacharacters become named entities. Control characters that XML 1.0
// cannot carry are written as SpreadsheetML _xHHHH_ escapes, a literal
// _xHHHH_ sequence gets its underscore escaped, and invalid UTF-8 becomes
// U+FFFD. Text that needs none of this is returned as is.
func Escape(s string) string {
	first := firstUnsafe(s)
	if first < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	b.WriteString(s[:first])
	for i := first; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			switch {
			case r == utf8.RuneError && size == 1:
				b.WriteRune(utf8.RuneError)
			case r == 0xFFFE || r == 0xFFFF:
				writeHexEscape(&b, r)
			default:
				b.WriteString(s[i : i+size])
			}
			i += size
			continue
		}
		switch {
		case c == '<':
			b.WriteString("&lt;")
		case c == '>':
			b.WriteString("&gt;")
		case c == '&':
			b.WriteString("&amp;")
		case c == '\'':
			b.WriteString("&apos;")
		case c == '"':
			b.WriteString("&quot;")
		case c == '_' && isHexEscape(s[i:]):
			b.WriteString("_x005F_")
		case isControl(c):
			writeHexEscape(&b, rune(c))
		default:
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

// firstUnsafe returns the offset of the first byte Escape has to rewrite,
// or -1.
func firstUnsafe(s string) int {
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '<', c == '>', c == '&', c == '\'', c == '"', isControl(c):
				return i
			case c == '_' && isHexEscape(s[i:]):
				return i
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 || r == 0xFFFE || r == 0xFFFF {
			return i
		}
		i += size
	}
	return -1
}

// isControl reports the C0 controls XML does not allow; tab, LF and CR are
// legal.
func isControl(c byte) bool {
	return c < 0x20 && c != '\t' && c != '\n' && c != '\r'
}

// isHexEscape reports whether s starts with _xHHHH_.
func isHexEscape(s string) bool {
	if len(s) < 7 || s[0] != '_' || s[1] != 'x' || s[6] != '_' {
		return false
	}
	for i := 2; i < 6; i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

const hexDigits = "0123456789ABCDEF"

func writeHexEscape(b *strings.Builder, r rune) {
	b.WriteString("_x")
	for shift := 12; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>shift)&0xF])
	}
	b.WriteByte('_')
}
