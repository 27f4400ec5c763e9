// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

// buildMinimalDeprecatedClass returns a minimal class carrying a single
// Deprecated attribute, used by both Options tests below.
func buildMinimalDeprecatedClass(t *testing.T) []byte {
	t.Helper()
	pool := NewPool()
	objName, err := pool.PushUTF8("java/lang/Object")
	if err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	objClass, err := pool.Push(ClassItem{NameIndex: objName})
	if err != nil {
		t.Fatalf("Push(Class) failed: %v", err)
	}
	thisName, err := pool.PushUTF8("Sample")
	if err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	thisClass, err := pool.Push(ClassItem{NameIndex: thisName})
	if err != nil {
		t.Fatalf("Push(Class) failed: %v", err)
	}
	if _, err := pool.PushUTF8("Deprecated"); err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}

	class := &Class{
		MajorVersion:    52,
		ThisClassIndex:  thisClass,
		SuperClassIndex: objClass,
		Attributes:      []Attribute{DeprecatedAttribute{}},
	}
	out, err := WriteBytes(pool, class)
	if err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	return out
}

// TestOptionsFastKeepsRawAttributeBytes covers SPEC_FULL.md §4.7's Fast
// option: every attribute, even a recognized one, is decoded as an
// UnknownAttribute holding its raw bytes instead of its structured form.
func TestOptionsFastKeepsRawAttributeBytes(t *testing.T) {
	data := buildMinimalDeprecatedClass(t)

	_, class, err := ParseBytes(data, &Options{Fast: true})
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if len(class.Attributes) != 1 {
		t.Fatalf("len(class.Attributes) = %d, want 1", len(class.Attributes))
	}
	unk, ok := class.Attributes[0].(UnknownAttribute)
	if !ok {
		t.Fatalf("Attributes[0] = %T, want UnknownAttribute", class.Attributes[0])
	}
	if unk.Name() != "Deprecated" {
		t.Errorf("Name() = %q, want %q", unk.Name(), "Deprecated")
	}
	if len(unk.Info) != 0 {
		t.Errorf("Info = % x, want empty (Deprecated has no body)", unk.Info)
	}
}

// TestOptionsFastDisabledDecodesStructuredForm is the control case: with
// Fast left false (the default), the same attribute decodes normally.
func TestOptionsFastDisabledDecodesStructuredForm(t *testing.T) {
	data := buildMinimalDeprecatedClass(t)

	_, class, err := ParseBytes(data, nil)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if _, ok := class.Attributes[0].(DeprecatedAttribute); !ok {
		t.Errorf("Attributes[0] = %T, want DeprecatedAttribute", class.Attributes[0])
	}
}

// TestOptionsMaxAttributeLengthRejectsOversizedAttribute covers
// SPEC_FULL.md §4.7's MaxAttributeLength DoS guard: an attribute whose
// declared length exceeds the configured cap fails ErrLimitExceeded before
// any body bytes are read.
func TestOptionsMaxAttributeLengthRejectsOversizedAttribute(t *testing.T) {
	pool := NewPool()
	nameIdx, err := pool.PushUTF8("SourceDebugExtension")
	if err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	w := NewWriter()
	w.WriteU16(nameIdx)
	w.WriteU32(16)
	w.WriteBytes(make([]byte, 16))
	r := NewReader(w.Bytes())

	opts := &Options{MaxAttributeLength: 8}
	if _, err := parseAttribute(r, pool, opts.config()); err != ErrLimitExceeded {
		t.Errorf("parseAttribute = %v, want ErrLimitExceeded", err)
	}
}

// TestOptionsMaxAttributeLengthAllowsFittingAttribute is the control case:
// the same attribute with its declared length at the cap is accepted.
func TestOptionsMaxAttributeLengthAllowsFittingAttribute(t *testing.T) {
	pool := NewPool()
	nameIdx, err := pool.PushUTF8("SourceDebugExtension")
	if err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	w := NewWriter()
	w.WriteU16(nameIdx)
	w.WriteU32(8)
	w.WriteBytes(make([]byte, 8))
	r := NewReader(w.Bytes())

	opts := &Options{MaxAttributeLength: 8}
	attr, err := parseAttribute(r, pool, opts.config())
	if err != nil {
		t.Fatalf("parseAttribute failed: %v", err)
	}
	ext, ok := attr.(SourceDebugExtensionAttribute)
	if !ok || len(ext.DebugExtension) != 8 {
		t.Errorf("attr = %#v, want SourceDebugExtensionAttribute with 8 bytes", attr)
	}
}
