// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want TypeDescriptor
	}{
		{"I", TypeDescriptor{Base: BaseInt}},
		{"Z", TypeDescriptor{Base: BaseBoolean}},
		{"[I", TypeDescriptor{Dimensions: 1, Base: BaseInt}},
		{"[[Ljava/lang/String;", TypeDescriptor{Dimensions: 2, Base: BaseObject, ClassName: "java/lang/String"}},
		{"Ljava/lang/Object;", TypeDescriptor{Base: BaseObject, ClassName: "java/lang/Object"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFieldDescriptor(tt.in)
			if err != nil {
				t.Fatalf("ParseFieldDescriptor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFieldDescriptor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if back := got.String(); back != tt.in {
				t.Errorf("round trip: String() = %q, want %q", back, tt.in)
			}
		})
	}
}

func TestParseFieldDescriptorInvalid(t *testing.T) {
	tests := []struct {
		in     string
		wantAt int
	}{
		{"L;", 1},
		{"", 0},
		{"Q", 0},
		{"Ljava/lang/String", 0},
		{strings.Repeat("[", 256) + "I", 255},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseFieldDescriptor(tt.in)
			var de *InvalidDescriptorError
			if !errors.As(err, &de) {
				t.Fatalf("ParseFieldDescriptor(%q) error = %v, want *InvalidDescriptorError", tt.in, err)
			}
			if de.At != tt.wantAt {
				t.Errorf("ParseFieldDescriptor(%q) At = %d, want %d", tt.in, de.At, tt.wantAt)
			}
		})
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []string{
		"()V",
		"(I)V",
		"(ILjava/lang/String;)Z",
		"([I[[Ljava/lang/Object;)J",
		"(IDJ)Ljava/lang/String;",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseMethodDescriptor(in)
			if err != nil {
				t.Fatalf("ParseMethodDescriptor(%q) failed: %v", in, err)
			}
			if back := got.String(); back != in {
				t.Errorf("round trip: String() = %q, want %q", back, in)
			}
		})
	}
}

func TestParseMethodDescriptorTooManyParams(t *testing.T) {
	in := "(" + strings.Repeat("I", 256) + ")V"
	_, err := ParseMethodDescriptor(in)
	var de *InvalidDescriptorError
	if !errors.As(err, &de) {
		t.Fatalf("ParseMethodDescriptor with 256 params error = %v, want *InvalidDescriptorError", err)
	}
}

func TestParseMethodDescriptorMissingParen(t *testing.T) {
	_, err := ParseMethodDescriptor("IV")
	var de *InvalidDescriptorError
	if !errors.As(err, &de) {
		t.Fatalf("ParseMethodDescriptor(%q) error = %v, want *InvalidDescriptorError", "IV", err)
	}
	if de.At != 0 {
		t.Errorf("At = %d, want 0", de.At)
	}
}
