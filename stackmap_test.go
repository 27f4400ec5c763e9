// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

// TestStackMapReservedFrame covers spec §4.3/§7: frame_type in [128, 246]
// is reserved and must fail ReservedStackMapFrame rather than being
// silently decoded.
func TestStackMapReservedFrame(t *testing.T) {
	for _, ft := range []uint8{128, 200, 246} {
		r := NewReader([]byte{ft})
		_, err := parseStackMapFrame(r)
		rerr, ok := err.(*ReservedStackMapFrameError)
		if !ok {
			t.Errorf("parseStackMapFrame(%d) error = %v, want *ReservedStackMapFrameError", ft, err)
			continue
		}
		if rerr.Type != ft {
			t.Errorf("ReservedStackMapFrameError.Type = %d, want %d", rerr.Type, ft)
		}
	}
}

// TestStackMapFullFrameRoundTrip decodes then re-encodes a full_frame
// carrying one Object local and one Integer stack entry, and checks the
// bytes are reproduced exactly (spec §8 property, full StackMapTable
// fidelity).
func TestStackMapFullFrameRoundTrip(t *testing.T) {
	data := []byte{
		255,        // frame_type = full_frame
		0x00, 0x02, // offset_delta = 2
		0x00, 0x01, // number_of_locals = 1
		7, 0x00, 0x09, // Object, class pool index 9
		0x00, 0x01, // number_of_stack_items = 1
		1, // Integer
	}
	r := NewReader(data)
	frame, err := parseStackMapFrame(r)
	if err != nil {
		t.Fatalf("parseStackMapFrame failed: %v", err)
	}
	full, ok := frame.(FullFrame)
	if !ok {
		t.Fatalf("frame = %T, want FullFrame", frame)
	}
	if full.OffsetDelta != 2 {
		t.Errorf("OffsetDelta = %d, want 2", full.OffsetDelta)
	}
	if len(full.Locals) != 1 || len(full.Stack) != 1 {
		t.Fatalf("Locals/Stack = %v/%v, want length 1 each", full.Locals, full.Stack)
	}
	obj, ok := full.Locals[0].(ObjectVerificationType)
	if !ok || obj.ClassIndex != 9 {
		t.Errorf("Locals[0] = %#v, want ObjectVerificationType{ClassIndex: 9}", full.Locals[0])
	}
	if full.Stack[0].Tag() != VerifInteger {
		t.Errorf("Stack[0].Tag() = %d, want VerifInteger", full.Stack[0].Tag())
	}

	w := NewWriter()
	writeStackMapFrame(w, frame)
	if !bytes.Equal(w.Bytes(), data) {
		t.Errorf("re-encoded = % x, want % x", w.Bytes(), data)
	}
}

// TestStackMapChopAndAppendRoundTrip exercises the two frame kinds whose
// locals count is implied by frame_type rather than stated explicitly.
func TestStackMapChopAndAppendRoundTrip(t *testing.T) {
	chop := []byte{249, 0x00, 0x03} // chop_frame, drops 2 locals
	r := NewReader(chop)
	frame, err := parseStackMapFrame(r)
	if err != nil {
		t.Fatalf("parseStackMapFrame(chop) failed: %v", err)
	}
	cf, ok := frame.(ChopFrame)
	if !ok || cf.Type != 249 || cf.OffsetDelta != 3 {
		t.Fatalf("frame = %#v, want ChopFrame{Type:249, OffsetDelta:3}", frame)
	}
	w := NewWriter()
	writeStackMapFrame(w, frame)
	if !bytes.Equal(w.Bytes(), chop) {
		t.Errorf("re-encoded chop = % x, want % x", w.Bytes(), chop)
	}

	appendFrame := []byte{253, 0x00, 0x01, 1, 2} // append_frame, 2 new locals: Integer, Float
	r = NewReader(appendFrame)
	frame, err = parseStackMapFrame(r)
	if err != nil {
		t.Fatalf("parseStackMapFrame(append) failed: %v", err)
	}
	af, ok := frame.(AppendFrame)
	if !ok || len(af.Locals) != 2 {
		t.Fatalf("frame = %#v, want AppendFrame with 2 locals", frame)
	}
	w = NewWriter()
	writeStackMapFrame(w, frame)
	if !bytes.Equal(w.Bytes(), appendFrame) {
		t.Errorf("re-encoded append = % x, want % x", w.Bytes(), appendFrame)
	}
}
