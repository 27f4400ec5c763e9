// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

// TestParseNotAClass covers spec scenario: the magic gate rejects any
// buffer whose first four bytes aren't CAFEBABE.
func TestParseNotAClass(t *testing.T) {
	_, _, err := ParseBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil)
	if err != ErrNotAClass {
		t.Fatalf("ParseBytes = %v, want ErrNotAClass", err)
	}
}

// TestParseEmptyPoolHeader is spec scenario S1: constant_pool_count = 1
// (an empty pool), followed by a minimal, attribute-less class body.
func TestParseEmptyPoolHeader(t *testing.T) {
	data := []byte{
		0xCA, 0xFE, 0xBA, 0xBE, // magic
		0x00, 0x00, 0x00, 0x34, // minor, major
		0x00, 0x01, // constant_pool_count = 1
		0x00, 0x00, // access_flags
		0x00, 0x00, // this_class
		0x00, 0x00, // super_class
		0x00, 0x00, // interfaces_count
		0x00, 0x00, // fields_count
		0x00, 0x00, // methods_count
		0x00, 0x00, // attributes_count
	}
	pool, class, err := ParseBytes(data, nil)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if pool.Len() != 1 {
		t.Errorf("pool.Len() = %d, want 1", pool.Len())
	}
	if class.ThisClassIndex != 0 {
		t.Errorf("class.ThisClassIndex = %d, want 0", class.ThisClassIndex)
	}
}

// TestRoundTripMinimalClass builds a minimal class with a UTF8/Class pool
// pair plus SourceFile and Deprecated attributes, writes it, re-parses the
// output, and checks the encoded bytes are identical on a second write
// (full round trip fidelity, SPEC_FULL.md §8 property 10).
func TestRoundTripMinimalClass(t *testing.T) {
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
	if _, err := pool.PushUTF8("SourceFile"); err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	sampleJava, err := pool.PushUTF8("Sample.java")
	if err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	if _, err := pool.PushUTF8("Deprecated"); err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}

	class := &Class{
		MinorVersion:    0,
		MajorVersion:    52,
		AccessFlags:     AccPublic | AccSuper,
		ThisClassIndex:  thisClass,
		SuperClassIndex: objClass,
		Attributes: []Attribute{
			SourceFileAttribute{SourceFileIndex: sampleJava},
			DeprecatedAttribute{},
		},
	}

	out1, err := WriteBytes(pool, class)
	if err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}

	gotPool, gotClass, err := ParseBytes(out1, nil)
	if err != nil {
		t.Fatalf("ParseBytes of written class failed: %v", err)
	}
	if gotClass.MajorVersion != 52 {
		t.Errorf("MajorVersion = %d, want 52", gotClass.MajorVersion)
	}
	name, err := gotPool.GetClassName(gotClass.ThisClassIndex)
	if err != nil {
		t.Fatalf("GetClassName failed: %v", err)
	}
	if name != "Sample" {
		t.Errorf("this class name = %q, want %q", name, "Sample")
	}

	out2, err := WriteBytes(gotPool, gotClass)
	if err != nil {
		t.Fatalf("second WriteBytes failed: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Errorf("round trip not byte-identical:\n out1=% x\n out2=% x", out1, out2)
	}

	var buf bytes.Buffer
	if err := Write(&buf, pool, class); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), out1) {
		t.Errorf("Write output differs from WriteBytes:\n Write=% x\n WriteBytes=% x", buf.Bytes(), out1)
	}
}

// TestRoundTripBipush is spec scenario S3: a single bipush instruction
// round trips byte-for-byte through the Code attribute's instruction
// decoder/encoder.
func TestRoundTripBipush(t *testing.T) {
	code := []byte{0x10, 0x05} // bipush 5
	insns := decodeCode(t, code)
	if len(insns) != 1 {
		t.Fatalf("len(insns) = %d, want 1", len(insns))
	}
	push, ok := insns[0].(PushConstInsn)
	if !ok {
		t.Fatalf("insns[0] = %T, want PushConstInsn", insns[0])
	}
	if push.Value != 5 || push.Offset() != 0 {
		t.Errorf("PushConstInsn = %+v, want Value=5 Offset=0", push)
	}

	w := NewWriter()
	for _, insn := range insns {
		writeInstruction(w, insn)
	}
	if !bytes.Equal(w.Bytes(), code) {
		t.Errorf("re-encoded = % x, want % x", w.Bytes(), code)
	}
}

// decodeCode decodes a bare code array (no max_stack/max_locals/length
// header) the same way parseCodeAttribute does internally, for tests that
// only care about instruction decoding.
func decodeCode(t *testing.T, code []byte) []Instruction {
	t.Helper()
	r := NewReader(code)
	cr, err := r.Limit(uint32(len(code)))
	if err != nil {
		t.Fatalf("Limit failed: %v", err)
	}
	base := cr.Position()
	var insns []Instruction
	for cr.Remaining() > 0 {
		insn, err := parseInstruction(cr, base)
		if err != nil {
			t.Fatalf("parseInstruction failed: %v", err)
		}
		insns = append(insns, insn)
	}
	if err := cr.RemoveLimit(); err != nil {
		t.Fatalf("RemoveLimit failed: %v", err)
	}
	return insns
}

// TestRoundTripTableSwitch is spec scenario S4: a nop followed by a
// tableswitch at offset 1, padded to a 4-byte boundary relative to the
// start of the code array, round trips byte-for-byte.
func TestRoundTripTableSwitch(t *testing.T) {
	code := []byte{
		0x00,                                           // nop at offset 0
		0xAA,                                           // tableswitch at offset 1
		0x00, 0x00,                                     // 2 padding bytes (align to offset 4)
		0x00, 0x00, 0x00, 0x00, // default = 0
		0x00, 0x00, 0x00, 0x00, // low = 0
		0x00, 0x00, 0x00, 0x01, // high = 1
		0x00, 0x00, 0x00, 0x00, // offsets[0] = 0
		0x00, 0x00, 0x00, 0x05, // offsets[1] = 5
	}
	insns := decodeCode(t, code)
	if len(insns) != 2 {
		t.Fatalf("len(insns) = %d, want 2", len(insns))
	}
	ts, ok := insns[1].(TableSwitchInsn)
	if !ok {
		t.Fatalf("insns[1] = %T, want TableSwitchInsn", insns[1])
	}
	if ts.Offset() != 1 {
		t.Errorf("TableSwitchInsn.Offset() = %d, want 1", ts.Offset())
	}
	if ts.Default != 0 || ts.Low != 0 || ts.High != 1 {
		t.Errorf("TableSwitchInsn = %+v, want Default=0 Low=0 High=1", ts)
	}
	if len(ts.Offsets) != 2 || ts.Offsets[0] != 0 || ts.Offsets[1] != 5 {
		t.Errorf("TableSwitchInsn.Offsets = %v, want [0 5]", ts.Offsets)
	}

	w := NewWriter()
	for _, insn := range insns {
		writeInstruction(w, insn)
	}
	if !bytes.Equal(w.Bytes(), code) {
		t.Errorf("re-encoded = % x, want % x", w.Bytes(), code)
	}
}

// TestAttributeLengthExactness is spec §8 property 5: a Synthetic
// attribute whose declared length disagrees with its (zero-byte) body
// fails LimitExceeded rather than silently desynchronizing the rest of
// the class.
func TestAttributeLengthExactness(t *testing.T) {
	pool := NewPool()
	nameIdx, err := pool.PushUTF8("Synthetic")
	if err != nil {
		t.Fatalf("PushUTF8 failed: %v", err)
	}
	w := NewWriter()
	w.WriteU16(nameIdx)
	w.WriteU32(1) // declared length 1, but Synthetic has no body
	w.WriteU8(0)  // one stray byte
	r := NewReader(w.Bytes())
	if _, err := parseAttribute(r, pool, (*Options)(nil).config()); err != ErrLimitExceeded {
		t.Errorf("parseAttribute = %v, want ErrLimitExceeded", err)
	}
}
