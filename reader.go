// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "math"

// Reader is a positional cursor over a borrowed byte slice. Every read
// advances a shared cursor and fails with ErrLimitExceeded if it would cross
// the reader's current limit. Limit derives a sub-reader that shares the
// cursor but has a tighter upper bound, used to enforce that a
// length-prefixed structure (an attribute body, a code stream) is consumed
// exactly.
type Reader struct {
	data  []byte
	cur   *int
	limit int
}

// NewReader wraps data in a Reader whose limit is the full length of data.
// The caller retains ownership of data; no copy is made.
func NewReader(data []byte) *Reader {
	pos := 0
	return &Reader{data: data, cur: &pos, limit: len(data)}
}

// Position returns the reader's current absolute offset into the
// underlying data slice.
func (r *Reader) Position() int {
	return *r.cur
}

// Remaining returns the number of bytes left before the reader's limit.
func (r *Reader) Remaining() int {
	return r.limit - *r.cur
}

func (r *Reader) require(n int) error {
	if *r.cur+n > r.limit {
		return ErrLimitExceeded
	}
	return nil
}

// ReadU8 reads one big-endian unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.data[*r.cur]
	*r.cur++
	return b, nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

// ReadU16 reads a big-endian u16.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := uint16(r.data[*r.cur])<<8 | uint16(r.data[*r.cur+1])
	*r.cur += 2
	return v, nil
}

// ReadI16 reads a big-endian signed i16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a big-endian u32.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	d := r.data[*r.cur : *r.cur+4]
	v := uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])
	*r.cur += 4
	return v, nil
}

// ReadI32 reads a big-endian signed i32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a big-endian u64.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	d := r.data[*r.cur : *r.cur+8]
	v := uint64(d[0])<<56 | uint64(d[1])<<48 | uint64(d[2])<<40 | uint64(d[3])<<32 |
		uint64(d[4])<<24 | uint64(d[5])<<16 | uint64(d[6])<<8 | uint64(d[7])
	*r.cur += 8
	return v, nil
}

// ReadI64 reads a big-endian signed i64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads a big-endian IEEE-754 single precision float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads a big-endian IEEE-754 double precision float.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBytes returns a borrowed sub-slice of the next n bytes and advances
// the cursor past them.
func (r *Reader) ReadBytes(n uint32) ([]byte, error) {
	if err := r.require(int(n)); err != nil {
		return nil, err
	}
	b := r.data[*r.cur : *r.cur+int(n)]
	*r.cur += int(n)
	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n uint32) error {
	_, err := r.ReadBytes(n)
	return err
}

// ReadString decodes byteLen bytes of modified UTF-8 into a native string.
func (r *Reader) ReadString(byteLen uint16) (string, error) {
	raw, err := r.ReadBytes(uint32(byteLen))
	if err != nil {
		return "", err
	}
	return decodeModifiedUTF8(raw)
}

// Limit derives a sub-reader sharing this reader's cursor whose limit is
// cur+n. The caller must finish consuming it and call RemoveLimit on the
// returned reader before continuing to read from the parent.
func (r *Reader) Limit(n uint32) (*Reader, error) {
	newLimit := *r.cur + int(n)
	if newLimit > r.limit || newLimit < *r.cur {
		return nil, ErrLimitExceeded
	}
	return &Reader{data: r.data, cur: r.cur, limit: newLimit}, nil
}

// RemoveLimit finalizes a sub-reader created by Limit. It fails unless the
// cursor sits exactly at the sub-reader's limit, enforcing that the
// length-prefixed region was consumed exactly.
func (r *Reader) RemoveLimit() error {
	if *r.cur != r.limit {
		return ErrLimitExceeded
	}
	return nil
}
