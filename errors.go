// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// Errors returned by the parser and pool that carry no extra payload.
var (
	// ErrInvalidUTF8 is returned when a modified-UTF-8 byte sequence is
	// ill-formed.
	ErrInvalidUTF8 = errors.New("classfile: invalid modified-UTF-8 sequence")

	// ErrLimitExceeded is returned when a read would cross the active
	// sub-reader limit, or when a length-limited region was not consumed
	// exactly.
	ErrLimitExceeded = errors.New("classfile: read exceeds length limit")

	// ErrNotAClass is returned when the first four bytes of the input
	// are not the 0xCAFEBABE magic number.
	ErrNotAClass = errors.New("classfile: not a class file, magic not found")

	// ErrCPTooLarge is returned when a constant pool insertion would grow
	// the pool length beyond 0xFFFF.
	ErrCPTooLarge = errors.New("classfile: constant pool is full")

	// ErrInvalidTargetType is returned when a type annotation's target_type
	// discriminator byte is not one of the values defined by JVMS 4.7.20.1.
	ErrInvalidTargetType = errors.New("classfile: invalid type annotation target_type")

	// ErrInvalidTypePath is returned when a type_path entry's path_kind is
	// not one of the four values defined by JVMS 4.7.20.2.
	ErrInvalidTypePath = errors.New("classfile: invalid type_path path_kind")

	// ErrUnresolvedAttributeName is returned by Write when an attribute's
	// Name() has no corresponding UTF8Item in the pool; callers building a
	// Class by hand must PushUTF8 every attribute name they use first.
	ErrUnresolvedAttributeName = errors.New("classfile: attribute name not interned in constant pool")
)

// InvalidCPItemError is returned when a constant pool index is 0, out of
// range, addresses a wide-item placeholder slot, or addresses an item of
// the wrong tag for the accessor used.
type InvalidCPItemError struct {
	Index uint16
}

func (e *InvalidCPItemError) Error() string {
	return fmt.Sprintf("classfile: invalid constant pool item at index %d", e.Index)
}

// InvalidInstructionError is returned when an opcode, or a sub-opcode such
// as a wide-prefixed opcode or a newarray atype, is not recognized.
type InvalidInstructionError struct {
	OpCode uint8
	At     uint32
}

func (e *InvalidInstructionError) Error() string {
	return fmt.Sprintf("classfile: invalid instruction opcode 0x%02x at offset %d", e.OpCode, e.At)
}

// ReservedStackMapFrameError is returned when a stack map frame's type byte
// falls in the reserved range 128..246.
type ReservedStackMapFrameError struct {
	Type byte
}

func (e *ReservedStackMapFrameError) Error() string {
	return fmt.Sprintf("classfile: reserved stack map frame type %d", e.Type)
}

// InvalidVerificationTypeError is returned when a verification_type_info
// tag is not in the range 0..8.
type InvalidVerificationTypeError struct {
	Tag byte
}

func (e *InvalidVerificationTypeError) Error() string {
	return fmt.Sprintf("classfile: invalid verification type tag %d", e.Tag)
}

// InvalidElementValueError is returned when an annotation element_value's
// tag byte is not one of the ASCII tags defined by JVMS 4.7.16.1.
type InvalidElementValueError struct {
	Tag byte
}

func (e *InvalidElementValueError) Error() string {
	return fmt.Sprintf("classfile: invalid element_value tag %q", rune(e.Tag))
}

// InvalidDescriptorError is returned when a field or method descriptor
// string violates the descriptor grammar. At is the 0-based character
// offset of the violation.
type InvalidDescriptorError struct {
	Desc string
	At   int
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("classfile: invalid descriptor %q at offset %d", e.Desc, e.At)
}
