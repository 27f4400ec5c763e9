// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

// TestAnnotationRoundTrip builds an annotation with one const element, one
// enum element, and one nested array-of-annotation element, and checks it
// decodes then re-encodes byte-for-byte.
func TestAnnotationRoundTrip(t *testing.T) {
	data := []byte{
		0x00, 0x01, // type_index
		0x00, 0x03, // num_element_value_pairs = 3

		0x00, 0x02, // pair 1: name_index
		'I', 0x00, 0x2A, // IntEV, const_value_index = 42

		0x00, 0x03, // pair 2: name_index
		'e', 0x00, 0x04, 0x00, 0x05, // EnumEV: type_name_index, const_name_index

		0x00, 0x06, // pair 3: name_index
		'[', 0x00, 0x01, // ArrayEV, 1 element
		'@', // nested annotation
		0x00, 0x07, 0x00, 0x00, // nested annotation: type_index, 0 pairs
	}

	r := NewReader(data)
	ann, err := parseAnnotation(r)
	if err != nil {
		t.Fatalf("parseAnnotation failed: %v", err)
	}
	if ann.TypeIndex != 1 || len(ann.ElementValuePairs) != 3 {
		t.Fatalf("Annotation = %+v, want TypeIndex=1 with 3 pairs", ann)
	}

	cev, ok := ann.ElementValuePairs[0].Value.(ConstElementValue)
	if !ok || cev.TagValue != IntEV || cev.ConstValueIndex != 42 {
		t.Errorf("pair[0].Value = %#v, want ConstElementValue{IntEV, 42}", ann.ElementValuePairs[0].Value)
	}

	eev, ok := ann.ElementValuePairs[1].Value.(EnumElementValue)
	if !ok || eev.TypeNameIndex != 4 || eev.ConstNameIndex != 5 {
		t.Errorf("pair[1].Value = %#v, want EnumElementValue{4, 5}", ann.ElementValuePairs[1].Value)
	}

	aev, ok := ann.ElementValuePairs[2].Value.(ArrayElementValue)
	if !ok || len(aev.Values) != 1 {
		t.Fatalf("pair[2].Value = %#v, want ArrayElementValue with 1 entry", ann.ElementValuePairs[2].Value)
	}
	nested, ok := aev.Values[0].(AnnotationElementValue)
	if !ok || nested.Value.TypeIndex != 7 {
		t.Errorf("nested annotation = %#v, want TypeIndex=7", aev.Values[0])
	}

	w := NewWriter()
	writeAnnotation(w, ann)
	if !bytes.Equal(w.Bytes(), data) {
		t.Errorf("re-encoded = % x, want % x", w.Bytes(), data)
	}
}

// TestElementValueInvalidTag covers spec §7: an unrecognized element value
// tag byte fails InvalidElementValue rather than being silently skipped.
func TestElementValueInvalidTag(t *testing.T) {
	r := NewReader([]byte{'?', 0x00, 0x00})
	_, err := parseElementValue(r)
	ierr, ok := err.(*InvalidElementValueError)
	if !ok {
		t.Fatalf("parseElementValue error = %v, want *InvalidElementValueError", err)
	}
	if ierr.Tag != '?' {
		t.Errorf("InvalidElementValueError.Tag = %q, want '?'", ierr.Tag)
	}
}
