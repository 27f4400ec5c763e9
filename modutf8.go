// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strings"

// decodeModifiedUTF8 decodes the JVMS 4.4.7 modified-UTF-8 encoding into a
// native Go string. It differs from standard UTF-8 in two places: U+0000 is
// encoded as the two bytes C0 80 instead of a single 00 byte, and
// supplementary code points (>= U+10000) are encoded as a pair of 3-byte
// sequences carrying surrogate halves (CESU-8 style) instead of a single
// 4-byte sequence. 4-byte UTF-8 sequences are rejected.
func decodeModifiedUTF8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))

	i := 0
	for i < len(b) {
		b0 := b[i]
		switch {
		case b0 == 0x00:
			return "", ErrInvalidUTF8

		case b0 < 0x80:
			sb.WriteByte(b0)
			i++

		case b0&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return "", ErrInvalidUTF8
			}
			b1 := b[i+1]
			if b1&0xC0 != 0x80 {
				return "", ErrInvalidUTF8
			}
			cp := (rune(b0&0x1F) << 6) | rune(b1&0x3F)
			sb.WriteRune(cp)
			i += 2

		case b0&0xF0 == 0xE0:
			if i+2 >= len(b) {
				return "", ErrInvalidUTF8
			}
			b1, b2 := b[i+1], b[i+2]
			if b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
				return "", ErrInvalidUTF8
			}
			if b0 == 0xED && b1 >= 0xA0 && b1 <= 0xAF {
				// High surrogate half; must be followed by a low half.
				if i+5 >= len(b) {
					return "", ErrInvalidUTF8
				}
				b3, b4, b5 := b[i+3], b[i+4], b[i+5]
				if b3 != 0xED || b4 < 0xB0 || b4 > 0xBF || b5&0xC0 != 0x80 {
					return "", ErrInvalidUTF8
				}
				cp := 0x10000 +
					(rune(b1&0x0F) << 16) +
					(rune(b2&0x3F) << 10) +
					(rune(b4&0x0F) << 6) +
					rune(b5&0x3F)
				sb.WriteRune(cp)
				i += 6
				continue
			}
			cp := (rune(b0&0x0F) << 12) | (rune(b1&0x3F) << 6) | rune(b2&0x3F)
			sb.WriteRune(cp)
			i += 3

		default:
			// Includes 4-byte lead bytes (0xF0-0xF7), which modified UTF-8
			// forbids, and stray continuation/invalid lead bytes.
			return "", ErrInvalidUTF8
		}
	}
	return sb.String(), nil
}

// encodeModifiedUTF8 encodes s into the JVMS 4.4.7 modified-UTF-8 byte
// representation.
func encodeModifiedUTF8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, cp := range s {
		switch {
		case cp == 0x0000:
			out = append(out, 0xC0, 0x80)
		case cp >= 0x0001 && cp <= 0x007F:
			out = append(out, byte(cp))
		case cp <= 0x07FF:
			out = append(out,
				0xC0|byte(cp>>6),
				0x80|byte(cp&0x3F))
		case cp <= 0xFFFF:
			out = append(out,
				0xE0|byte(cp>>12),
				0x80|byte((cp>>6)&0x3F),
				0x80|byte(cp&0x3F))
		default:
			v := cp - 0x10000
			hi := 0xD800 + (v >> 10)
			lo := 0xDC00 + (v & 0x3FF)
			out = append(out,
				0xE0|byte(hi>>12),
				0x80|byte((hi>>6)&0x3F),
				0x80|byte(hi&0x3F),
				0xE0|byte(lo>>12),
				0x80|byte((lo>>6)&0x3F),
				0x80|byte(lo&0x3F))
		}
	}
	return out
}
