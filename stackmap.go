// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Verification type tags (JVMS 4.7.4, Table 4.7.4-A).
const (
	VerifTop               = 0
	VerifInteger           = 1
	VerifFloat             = 2
	VerifDouble            = 3
	VerifLong              = 4
	VerifNull              = 5
	VerifUninitializedThis = 6
	VerifObject            = 7
	VerifUninitialized     = 8
)

// VerificationType describes the type of one local variable or operand
// stack slot in a stack map frame. Top, Integer, Float, Double, Long, Null,
// and UninitializedThis carry no data and are represented by their tag
// alone; Object and Uninitialized carry an extra index/offset and are
// modeled as distinct types.
type VerificationType interface {
	Tag() uint8
}

// SimpleVerificationType is any verification type with no extra operand:
// Top, Integer, Float, Double, Long, Null, or UninitializedThis.
type SimpleVerificationType struct{ TagValue uint8 }

func (v SimpleVerificationType) Tag() uint8 { return v.TagValue }

// ObjectVerificationType names a class by constant pool index.
type ObjectVerificationType struct{ ClassIndex uint16 }

func (ObjectVerificationType) Tag() uint8 { return VerifObject }

// UninitializedVerificationType names the bytecode offset of the `new`
// instruction that created the not-yet-initialized object.
type UninitializedVerificationType struct{ Offset uint16 }

func (UninitializedVerificationType) Tag() uint8 { return VerifUninitialized }

// Stack map frame kinds (JVMS 4.7.4). frame_type ranges are folded into a
// single interface with concrete per-shape implementations; FrameType on
// each records the raw byte actually read, since several tags compress a
// variable delta into the frame_type itself (same_frame, same_locals_1...,
// chop_frame, append_frame).
type StackMapFrame interface {
	FrameType() uint8
}

// SameFrame is frame_type in [0, 63]: the offset delta equals frame_type
// and both locals and stack are unchanged from the previous frame.
type SameFrame struct{ Type uint8 }

func (f SameFrame) FrameType() uint8 { return f.Type }

// SameLocalsOneStackItemFrame is frame_type in [64, 127]: the offset delta
// is frame_type-64, locals are unchanged, and the stack now holds exactly
// one item.
type SameLocalsOneStackItemFrame struct {
	Type  uint8
	Stack VerificationType
}

func (f SameLocalsOneStackItemFrame) FrameType() uint8 { return f.Type }

// SameLocalsOneStackItemFrameExtended is frame_type 247, the explicit-delta
// form of SameLocalsOneStackItemFrame.
type SameLocalsOneStackItemFrameExtended struct {
	OffsetDelta uint16
	Stack       VerificationType
}

func (SameLocalsOneStackItemFrameExtended) FrameType() uint8 { return 247 }

// ChopFrame is frame_type in [248, 250]: the last (251-frame_type) locals
// of the previous frame are absent, and the stack is empty.
type ChopFrame struct {
	Type        uint8
	OffsetDelta uint16
}

func (f ChopFrame) FrameType() uint8 { return f.Type }

// SameFrameExtended is frame_type 251, the explicit-delta form of
// SameFrame.
type SameFrameExtended struct {
	OffsetDelta uint16
}

func (SameFrameExtended) FrameType() uint8 { return 251 }

// AppendFrame is frame_type in [252, 254]: the previous frame's locals gain
// (frame_type-251) additional entries, and the stack is empty.
type AppendFrame struct {
	Type        uint8
	OffsetDelta uint16
	Locals      []VerificationType
}

func (f AppendFrame) FrameType() uint8 { return f.Type }

// FullFrame is frame_type 255: locals and stack are both given explicitly.
type FullFrame struct {
	OffsetDelta uint16
	Locals      []VerificationType
	Stack       []VerificationType
}

func (FullFrame) FrameType() uint8 { return 255 }
