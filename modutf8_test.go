// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

func TestEncodeModifiedUTF8NUL(t *testing.T) {
	got := encodeModifiedUTF8(" ")
	want := []byte{0xC0, 0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("encodeModifiedUTF8(NUL) = % X, want % X", got, want)
	}
}

func TestEncodeModifiedUTF8Supplementary(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a CESU-8 style surrogate pair of
	// two 3-byte sequences.
	got := encodeModifiedUTF8("\U0001F600")
	want := []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("encodeModifiedUTF8(U+1F600) = % X, want % X", got, want)
	}
}

func TestModifiedUTF8RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		" ",
		"café",
		"\U0001F600",
		"a b\U0001F600c",
		"java/lang/String",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			encoded := encodeModifiedUTF8(s)
			decoded, err := decodeModifiedUTF8(encoded)
			if err != nil {
				t.Fatalf("decodeModifiedUTF8 failed: %v", err)
			}
			if decoded != s {
				t.Errorf("round trip = %q, want %q", decoded, s)
			}
		})
	}
}

func TestDecodeModifiedUTF8RejectsPlainNUL(t *testing.T) {
	_, err := decodeModifiedUTF8([]byte{0x00})
	if err != ErrInvalidUTF8 {
		t.Errorf("decodeModifiedUTF8(plain NUL) error = %v, want ErrInvalidUTF8", err)
	}
}

func TestDecodeModifiedUTF8Rejects4ByteUTF8(t *testing.T) {
	// Standard UTF-8 4-byte lead byte for U+1F600, which modified UTF-8
	// forbids in favor of the 6-byte surrogate-pair form.
	_, err := decodeModifiedUTF8([]byte{0xF0, 0x9F, 0x98, 0x80})
	if err != ErrInvalidUTF8 {
		t.Errorf("decodeModifiedUTF8(4-byte UTF-8) error = %v, want ErrInvalidUTF8", err)
	}
}

func TestDecodeModifiedUTF8Truncated(t *testing.T) {
	tests := [][]byte{
		{0xC0},
		{0xE0, 0x80},
		{0xED, 0xA0, 0x80, 0xED},
	}
	for _, in := range tests {
		_, err := decodeModifiedUTF8(in)
		if err != ErrInvalidUTF8 {
			t.Errorf("decodeModifiedUTF8(% X) error = %v, want ErrInvalidUTF8", in, err)
		}
	}
}
