// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Attribute is the tagged union of attribute_info structures (JVMS 4.7).
// Every concrete type implements Name, returning the UTF-8 string that
// identifies it in the constant pool (e.g. "Code", "SourceFile"). The
// parser resolves an attribute_info's attribute_name_index once, at parse
// time, and stores only the resolved Attribute; the writer re-interns the
// name string when serializing.
type Attribute interface {
	Name() string
}

// ConstantValueAttribute is the ConstantValue attribute of a field (JVMS
// 4.7.2): the pool index of its compile-time constant value.
type ConstantValueAttribute struct {
	ValueIndex uint16
}

func (ConstantValueAttribute) Name() string { return "ConstantValue" }

// ExceptionTableEntry is one row of a Code attribute's exception table
// (JVMS 4.7.3).
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	// CatchTypeIndex is a Class pool index, or 0 to catch every throwable
	// (used to compile finally blocks).
	CatchTypeIndex uint16
}

// CodeAttribute is the Code attribute of a method (JVMS 4.7.3).
type CodeAttribute struct {
	MaxStack     uint16
	MaxLocals    uint16
	Instructions []Instruction
	// CodeLength is the on-wire length in bytes of the original code array.
	// The writer trusts re-encoding each Instruction to reproduce this
	// length; it is kept only so a round trip can assert it did.
	CodeLength     uint32
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

func (CodeAttribute) Name() string { return "Code" }

// StackMapTableAttribute is the StackMapTable attribute of a Code attribute
// (JVMS 4.7.4).
type StackMapTableAttribute struct {
	Frames []StackMapFrame
}

func (StackMapTableAttribute) Name() string { return "StackMapTable" }

// ExceptionsAttribute is the Exceptions attribute of a method (JVMS 4.7.5):
// the checked exception classes it may throw.
type ExceptionsAttribute struct {
	ExceptionIndices []uint16
}

func (ExceptionsAttribute) Name() string { return "Exceptions" }

// InnerClass is one entry of an InnerClasses attribute (JVMS 4.7.6).
type InnerClass struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16 // 0 if not a member of an enclosing class
	InnerNameIndex        uint16 // 0 if anonymous
	InnerClassAccessFlags uint16
}

// InnerClassesAttribute is the InnerClasses attribute of a class (JVMS
// 4.7.6).
type InnerClassesAttribute struct {
	Classes []InnerClass
}

func (InnerClassesAttribute) Name() string { return "InnerClasses" }

// EnclosingMethodAttribute is the EnclosingMethod attribute of a class
// (JVMS 4.7.7).
type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16 // 0 if not immediately enclosed by a method or constructor
}

func (EnclosingMethodAttribute) Name() string { return "EnclosingMethod" }

// SyntheticAttribute is the Synthetic attribute (JVMS 4.7.8): a
// compiler-generated marker with no payload.
type SyntheticAttribute struct{}

func (SyntheticAttribute) Name() string { return "Synthetic" }

// SignatureAttribute is the Signature attribute (JVMS 4.7.9): a generic
// type signature, stored as a raw pool-index reference to its UTF8Item
// rather than a parsed signature grammar.
type SignatureAttribute struct {
	SignatureIndex uint16
}

func (SignatureAttribute) Name() string { return "Signature" }

// SourceFileAttribute is the SourceFile attribute of a class (JVMS 4.7.10).
type SourceFileAttribute struct {
	SourceFileIndex uint16
}

func (SourceFileAttribute) Name() string { return "SourceFile" }

// SourceDebugExtensionAttribute is the SourceDebugExtension attribute
// (JVMS 4.7.11). Its payload is arbitrary UTF-8-like bytes supplied by a
// source-language compiler and is not modified-UTF-8 decoded; the raw bytes
// are preserved verbatim for round-tripping.
type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

func (SourceDebugExtensionAttribute) Name() string { return "SourceDebugExtension" }

// LineNumberEntry is one row of a LineNumberTable attribute (JVMS 4.7.12).
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTableAttribute is the LineNumberTable attribute of a Code
// attribute (JVMS 4.7.12).
type LineNumberTableAttribute struct {
	Entries []LineNumberEntry
}

func (LineNumberTableAttribute) Name() string { return "LineNumberTable" }

// LocalVariableEntry is one row of a LocalVariableTable attribute (JVMS
// 4.7.13).
type LocalVariableEntry struct {
	StartPC   uint16
	Length    uint16
	NameIndex uint16
	DescIndex uint16
	Index     uint16
}

// LocalVariableTableAttribute is the LocalVariableTable attribute of a Code
// attribute (JVMS 4.7.13).
type LocalVariableTableAttribute struct {
	Entries []LocalVariableEntry
}

func (LocalVariableTableAttribute) Name() string { return "LocalVariableTable" }

// LocalVariableTypeEntry is one row of a LocalVariableTypeTable attribute
// (JVMS 4.7.14).
type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

// LocalVariableTypeTableAttribute is the LocalVariableTypeTable attribute of
// a Code attribute (JVMS 4.7.14), recording generic-signature information
// for local variables that LocalVariableTable cannot express.
type LocalVariableTypeTableAttribute struct {
	Entries []LocalVariableTypeEntry
}

func (LocalVariableTypeTableAttribute) Name() string { return "LocalVariableTypeTable" }

// DeprecatedAttribute is the Deprecated attribute (JVMS 4.7.15): a marker
// with no payload.
type DeprecatedAttribute struct{}

func (DeprecatedAttribute) Name() string { return "Deprecated" }

// RuntimeVisibleAnnotationsAttribute is the RuntimeVisibleAnnotations
// attribute (JVMS 4.7.16).
type RuntimeVisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

func (RuntimeVisibleAnnotationsAttribute) Name() string { return "RuntimeVisibleAnnotations" }

// RuntimeInvisibleAnnotationsAttribute is the RuntimeInvisibleAnnotations
// attribute (JVMS 4.7.17).
type RuntimeInvisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

func (RuntimeInvisibleAnnotationsAttribute) Name() string { return "RuntimeInvisibleAnnotations" }

// RuntimeVisibleParameterAnnotationsAttribute is the
// RuntimeVisibleParameterAnnotations attribute of a method (JVMS 4.7.18).
// Outer index is the formal parameter position.
type RuntimeVisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

func (RuntimeVisibleParameterAnnotationsAttribute) Name() string {
	return "RuntimeVisibleParameterAnnotations"
}

// RuntimeInvisibleParameterAnnotationsAttribute is the
// RuntimeInvisibleParameterAnnotations attribute of a method (JVMS 4.7.19).
type RuntimeInvisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

func (RuntimeInvisibleParameterAnnotationsAttribute) Name() string {
	return "RuntimeInvisibleParameterAnnotations"
}

// RuntimeVisibleTypeAnnotationsAttribute is the RuntimeVisibleTypeAnnotations
// attribute (JVMS 4.7.20).
type RuntimeVisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

func (RuntimeVisibleTypeAnnotationsAttribute) Name() string { return "RuntimeVisibleTypeAnnotations" }

// RuntimeInvisibleTypeAnnotationsAttribute is the
// RuntimeInvisibleTypeAnnotations attribute (JVMS 4.7.21).
type RuntimeInvisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

func (RuntimeInvisibleTypeAnnotationsAttribute) Name() string {
	return "RuntimeInvisibleTypeAnnotations"
}

// AnnotationDefaultAttribute is the AnnotationDefault attribute of an
// annotation interface's element method (JVMS 4.7.22).
type AnnotationDefaultAttribute struct {
	Value ElementValue
}

func (AnnotationDefaultAttribute) Name() string { return "AnnotationDefault" }

// BootstrapMethod is one entry of a BootstrapMethods attribute (JVMS
// 4.7.23).
type BootstrapMethod struct {
	MethodRefIndex uint16 // MethodHandle pool index
	ArgumentIndices []uint16
}

// BootstrapMethodsAttribute is the BootstrapMethods attribute of a class
// (JVMS 4.7.23), referenced by invokedynamic instructions via
// bootstrap_method_attr_index.
type BootstrapMethodsAttribute struct {
	Methods []BootstrapMethod
}

func (BootstrapMethodsAttribute) Name() string { return "BootstrapMethods" }

// MethodParameter is one entry of a MethodParameters attribute (JVMS
// 4.7.24).
type MethodParameter struct {
	NameIndex   uint16 // 0 if the parameter has no name
	AccessFlags uint16
}

// MethodParametersAttribute is the MethodParameters attribute of a method
// (JVMS 4.7.24).
type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

func (MethodParametersAttribute) Name() string { return "MethodParameters" }

// ModuleMainClassAttribute is the ModuleMainClass attribute of a class
// (JVMS 4.7.27).
type ModuleMainClassAttribute struct {
	MainClassIndex uint16
}

func (ModuleMainClassAttribute) Name() string { return "ModuleMainClass" }

// ModulePackagesAttribute is the ModulePackages attribute of a class (JVMS
// 4.7.26).
type ModulePackagesAttribute struct {
	PackageIndices []uint16
}

func (ModulePackagesAttribute) Name() string { return "ModulePackages" }

// UnknownAttribute preserves an attribute_info whose name the parser did
// not recognize, byte for byte, so that Write reproduces it exactly.
type UnknownAttribute struct {
	AttrName string
	Info     []byte
}

func (a UnknownAttribute) Name() string { return a.AttrName }
