package wire

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Java's DataOutputStream.writeUTF uses "modified UTF-8": NUL is written as
// C0 80 and characters above U+FFFF as two 3-byte surrogate halves. Frames
// are decoded from and encoded to that form so Java peers interoperate.

func decodeModified(b []byte) (string, bool) {
	if utf8.Valid(b) {
		return string(b), true
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		if b[i] == 0xC0 && i+1 < len(b) && b[i+1] == 0x80 {
			sb.WriteByte(0)
			i += 2
			continue
		}
		if hi, ok := surrogateAt(b[i:]); ok {
			lo, ok := surrogateAt(b[i+3:])
			if !ok {
				return "", false
			}
			r := utf16.DecodeRune(hi, lo)
			if r == utf8.RuneError {
				return "", false
			}
			sb.WriteRune(r)
			i += 6
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", false
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String(), true
}

// surrogateAt reports the UTF-16 surrogate encoded as three bytes at the
// start of b, if any.
func surrogateAt(b []byte) (rune, bool) {
	if len(b) < 3 || b[0] != 0xED || b[1]&0xE0 != 0xA0 || b[2]&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), true
}

func encodeModified(s string) []byte {
	if !strings.ContainsFunc(s, needsModified) {
		return []byte(s)
	}

	out := make([]byte, 0, len(s)+8)
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			out = appendThreeByte(out, hi)
			out = appendThreeByte(out, lo)
		default:
			out = utf8.AppendRune(out, r)
		}
	}
	return out
}

func needsModified(r rune) bool {
	return r == 0 || r > 0xFFFF
}

func appendThreeByte(out []byte, c rune) []byte {
	return append(out, byte(0xE0|c>>12), byte(0x80|(c>>6)&0x3F), byte(0x80|c&0x3F))
}
