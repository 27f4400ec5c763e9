// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Type annotation target_type values (JVMS 4.7.20.1, Table 4.7.20-A/B).
const (
	TargetTypeParameterClass      = 0x00
	TargetTypeParameterMethod     = 0x01
	TargetSuper                   = 0x10
	TargetTypeParameterBoundClass = 0x11
	TargetTypeParameterBoundMethod = 0x12
	TargetField                   = 0x13
	TargetReturn                  = 0x14
	TargetReceiver                = 0x15
	TargetFormalParameter         = 0x16
	TargetThrows                  = 0x17
	TargetLocalVar                = 0x40
	TargetResourceVar             = 0x41
	TargetExceptionParameter      = 0x42
	TargetInstanceOf              = 0x43
	TargetNew                     = 0x44
	TargetNewMethodRef            = 0x45
	TargetIdMethodRef             = 0x46
	TargetCast                    = 0x47
	TargetConstructorInvocationTypeArgument = 0x48
	TargetMethodInvocationTypeArgument      = 0x49
	TargetConstructorRefTypeArgument        = 0x4A
	TargetMethodRefTypeArgument             = 0x4B
)

// Type path kinds (JVMS 4.7.20.2, Table 4.7.20.2-A).
const (
	PathArray         = 0
	PathNested        = 1
	PathWildcardBound = 2
	PathTypeArgument  = 3
)

// TypePathEntry is one entry of a type_path, locating a type within a
// possibly-nested enclosing type.
type TypePathEntry struct {
	Kind             uint8
	TypeArgumentIndex uint8
}

// TypeAnnotationTarget is the tagged union of target_info shapes. Every
// concrete type implements TargetType, returning the Target* constant that
// selects its shape.
type TypeAnnotationTarget interface {
	TargetType() uint8
}

// TypeParameterTarget targets a type parameter declaration of a generic
// class, interface, method, or constructor (target_type 0x00 or 0x01).
type TypeParameterTarget struct {
	Type              uint8
	TypeParameterIndex uint8
}

func (t TypeParameterTarget) TargetType() uint8 { return t.Type }

// SupertypeTarget targets a type in an extends or implements clause
// (target_type 0x10). SupertypeIndex is 0xFFFF for the extends clause
// itself, or the zero-based implements-clause index otherwise.
type SupertypeTarget struct {
	SupertypeIndex uint16
}

func (SupertypeTarget) TargetType() uint8 { return TargetSuper }

// TypeParameterBoundTarget targets a bound of a type parameter of a
// generic class, interface, method, or constructor (target_type 0x11 or
// 0x12).
type TypeParameterBoundTarget struct {
	Type               uint8
	TypeParameterIndex uint8
	BoundIndex         uint8
}

func (t TypeParameterBoundTarget) TargetType() uint8 { return t.Type }

// EmptyTarget targets a field declaration, a method return/receiver type,
// or similar where no further location is needed within target_info
// (target_type 0x13, 0x14, or 0x15).
type EmptyTarget struct {
	Type uint8
}

func (t EmptyTarget) TargetType() uint8 { return t.Type }

// FormalParameterTarget targets a formal parameter declaration
// (target_type 0x16).
type FormalParameterTarget struct {
	FormalParameterIndex uint8
}

func (FormalParameterTarget) TargetType() uint8 { return TargetFormalParameter }

// ThrowsTarget targets a type in a throws clause (target_type 0x17).
type ThrowsTarget struct {
	ThrowsTypeIndex uint16
}

func (ThrowsTarget) TargetType() uint8 { return TargetThrows }

// LocalVarTargetEntry is one row of a localvar_target's table.
type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// LocalVarTarget targets a local variable or resource variable declaration
// (target_type 0x40 or 0x41). A variable live across disjoint bytecode
// ranges produces multiple table entries.
type LocalVarTarget struct {
	Type  uint8
	Table []LocalVarTargetEntry
}

func (t LocalVarTarget) TargetType() uint8 { return t.Type }

// CatchTarget targets an exception parameter declaration (target_type
// 0x42), identified by its exception table entry.
type CatchTarget struct {
	ExceptionTableIndex uint16
}

func (CatchTarget) TargetType() uint8 { return TargetExceptionParameter }

// OffsetTarget targets an instanceof, new, or method reference expression
// (target_type 0x43-0x46), located by bytecode offset.
type OffsetTarget struct {
	Type   uint8
	Offset uint16
}

func (t OffsetTarget) TargetType() uint8 { return t.Type }

// TypeArgumentTarget targets a type argument in a cast or generic
// invocation expression (target_type 0x47-0x4B).
type TypeArgumentTarget struct {
	Type              uint8
	Offset            uint16
	TypeArgumentIndex uint8
}

func (t TypeArgumentTarget) TargetType() uint8 { return t.Type }

// TypeAnnotation is one type_annotation structure (JVMS 4.7.20), used by
// the RuntimeVisible/InvisibleTypeAnnotations attributes.
type TypeAnnotation struct {
	Target            TypeAnnotationTarget
	TypePath          []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}
