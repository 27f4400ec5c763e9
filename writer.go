// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"math"
)

// Writer accumulates big-endian encoded bytes into a growable buffer. It is
// the mirror of Reader: callers that need to prefix a sub-structure with its
// encoded length build that sub-structure into a fresh Writer first, then
// write its length followed by its bytes into the parent.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteU8 writes one byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteI8 writes one signed byte.
func (w *Writer) WriteI8(v int8) {
	w.WriteU8(uint8(v))
}

// WriteU16 writes a big-endian u16.
func (w *Writer) WriteU16(v uint16) {
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v))
}

// WriteI16 writes a big-endian signed i16.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

// WriteU32 writes a big-endian u32.
func (w *Writer) WriteU32(v uint32) {
	w.buf.WriteByte(byte(v >> 24))
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v))
}

// WriteI32 writes a big-endian signed i32.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

// WriteU64 writes a big-endian u64.
func (w *Writer) WriteU64(v uint64) {
	w.WriteU32(uint32(v >> 32))
	w.WriteU32(uint32(v))
}

// WriteI64 writes a big-endian signed i64.
func (w *Writer) WriteI64(v int64) {
	w.WriteU64(uint64(v))
}

// WriteF32 writes a big-endian IEEE-754 single precision float.
func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

// WriteF64 writes a big-endian IEEE-754 double precision float.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.Write(b)
}

// WriteString encodes s as modified UTF-8 and writes its u16 byte-length
// prefix followed by the encoded bytes.
func (w *Writer) WriteString(s string) {
	enc := encodeModifiedUTF8(s)
	w.WriteU16(uint16(len(enc)))
	w.WriteBytes(enc)
}
