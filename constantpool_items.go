// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "math"

// Constant pool tags (JVMS 4.4), fixed for wire compatibility.
const (
	TagUTF8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldRef           = 9
	TagMethodRef          = 10
	TagInterfaceMethodRef = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// Reference kinds for CONSTANT_MethodHandle_info (JVMS 4.4.8).
const (
	RefGetField         = 1
	RefGetStatic        = 2
	RefPutField         = 3
	RefPutStatic        = 4
	RefInvokeVirtual    = 5
	RefInvokeStatic     = 6
	RefInvokeSpecial    = 7
	RefNewInvokeSpecial = 8
	RefInvokeInterface  = 9
)

// Item is the tagged union of constant pool entries. Every concrete type
// implements Tag, returning one of the Tag* constants above, and isWide,
// reporting whether the item consumes two pool slots.
type Item interface {
	Tag() uint8
	isWide() bool
	// canonicalKey returns a value comparable with ==, used for
	// deduplicating equal items on insertion.
	canonicalKey() any
}

// UTF8Item is CONSTANT_Utf8_info.
type UTF8Item struct{ Value string }

func (UTF8Item) Tag() uint8        { return TagUTF8 }
func (UTF8Item) isWide() bool      { return false }
func (i UTF8Item) canonicalKey() any { return i }

// IntegerItem is CONSTANT_Integer_info.
type IntegerItem struct{ Value int32 }

func (IntegerItem) Tag() uint8          { return TagInteger }
func (IntegerItem) isWide() bool        { return false }
func (i IntegerItem) canonicalKey() any { return i }

// FloatItem is CONSTANT_Float_info. Equality for deduplication is bitwise
// (IEEE-754 bit pattern), so +0.0 and -0.0 are distinct and every NaN bit
// pattern is distinct.
type FloatItem struct{ Value float32 }

func (FloatItem) Tag() uint8     { return TagFloat }
func (FloatItem) isWide() bool   { return false }
func (i FloatItem) canonicalKey() any {
	return [2]any{TagFloat, math.Float32bits(i.Value)}
}

// LongItem is CONSTANT_Long_info. Occupies two consecutive pool slots.
type LongItem struct{ Value int64 }

func (LongItem) Tag() uint8          { return TagLong }
func (LongItem) isWide() bool        { return true }
func (i LongItem) canonicalKey() any { return i }

// DoubleItem is CONSTANT_Double_info. Occupies two consecutive pool slots.
// Equality for deduplication is bitwise.
type DoubleItem struct{ Value float64 }

func (DoubleItem) Tag() uint8   { return TagDouble }
func (DoubleItem) isWide() bool { return true }
func (i DoubleItem) canonicalKey() any {
	return [2]any{TagDouble, math.Float64bits(i.Value)}
}

// ClassItem is CONSTANT_Class_info.
type ClassItem struct{ NameIndex uint16 }

func (ClassItem) Tag() uint8          { return TagClass }
func (ClassItem) isWide() bool        { return false }
func (i ClassItem) canonicalKey() any { return i }

// StringItem is CONSTANT_String_info.
type StringItem struct{ Index uint16 }

func (StringItem) Tag() uint8          { return TagString }
func (StringItem) isWide() bool        { return false }
func (i StringItem) canonicalKey() any { return i }

// FieldRefItem is CONSTANT_Fieldref_info.
type FieldRefItem struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (FieldRefItem) Tag() uint8          { return TagFieldRef }
func (FieldRefItem) isWide() bool        { return false }
func (i FieldRefItem) canonicalKey() any { return i }

// MethodRefItem is CONSTANT_Methodref_info.
type MethodRefItem struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (MethodRefItem) Tag() uint8          { return TagMethodRef }
func (MethodRefItem) isWide() bool        { return false }
func (i MethodRefItem) canonicalKey() any { return i }

// InterfaceMethodRefItem is CONSTANT_InterfaceMethodref_info.
type InterfaceMethodRefItem struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (InterfaceMethodRefItem) Tag() uint8          { return TagInterfaceMethodRef }
func (InterfaceMethodRefItem) isWide() bool        { return false }
func (i InterfaceMethodRefItem) canonicalKey() any { return i }

// NameAndTypeItem is CONSTANT_NameAndType_info.
type NameAndTypeItem struct {
	NameIndex uint16
	DescIndex uint16
}

func (NameAndTypeItem) Tag() uint8          { return TagNameAndType }
func (NameAndTypeItem) isWide() bool        { return false }
func (i NameAndTypeItem) canonicalKey() any { return i }

// MethodHandleItem is CONSTANT_MethodHandle_info.
type MethodHandleItem struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (MethodHandleItem) Tag() uint8          { return TagMethodHandle }
func (MethodHandleItem) isWide() bool        { return false }
func (i MethodHandleItem) canonicalKey() any { return i }

// MethodTypeItem is CONSTANT_MethodType_info.
type MethodTypeItem struct{ DescIndex uint16 }

func (MethodTypeItem) Tag() uint8          { return TagMethodType }
func (MethodTypeItem) isWide() bool        { return false }
func (i MethodTypeItem) canonicalKey() any { return i }

// InvokeDynamicItem is CONSTANT_InvokeDynamic_info.
type InvokeDynamicItem struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (InvokeDynamicItem) Tag() uint8          { return TagInvokeDynamic }
func (InvokeDynamicItem) isWide() bool        { return false }
func (i InvokeDynamicItem) canonicalKey() any { return i }

// ModuleItem is CONSTANT_Module_info.
type ModuleItem struct{ NameIndex uint16 }

func (ModuleItem) Tag() uint8          { return TagModule }
func (ModuleItem) isWide() bool        { return false }
func (i ModuleItem) canonicalKey() any { return i }

// PackageItem is CONSTANT_Package_info.
type PackageItem struct{ NameIndex uint16 }

func (PackageItem) Tag() uint8          { return TagPackage }
func (PackageItem) isWide() bool        { return false }
func (i PackageItem) canonicalKey() any { return i }

// widePlaceholder occupies the second slot of a Long or Double item. It is
// never returned to callers; Pool.Get reports it as InvalidCPItemError.
type widePlaceholder struct{}

func (widePlaceholder) Tag() uint8          { return 0 }
func (widePlaceholder) isWide() bool        { return false }
func (widePlaceholder) canonicalKey() any   { return widePlaceholder{} }
