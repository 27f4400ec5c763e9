// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Access and property flags (JVMS 4.1, 4.5, 4.6, 4.7.25). The same bit is
// reused with a different meaning depending on the context it appears in
// (class, field, method, inner class, method parameter, module, or module
// requires/exports/opens entry); the Class/Field/Method/Module types below
// all store the raw u16 bitfield, and these constants are only naming
// conveniences for the reader.
const (
	// Declared public; may be accessed from outside its package.
	AccPublic = 0x0001 // class, field, method

	// Declared private; accessible only within the defining class.
	AccPrivate = 0x0002 // field, method

	// Declared protected; may be accessed within subclasses.
	AccProtected = 0x0004 // field, method

	// Declared static.
	AccStatic = 0x0008 // field, method

	// Declared final; no subclasses/overrides/reassignment allowed.
	AccFinal = 0x0010 // class, field, method, parameter

	// Treat superclass methods specially when invoked by invokespecial.
	AccSuper = 0x0020 // class

	// Declared synchronized; invocation is wrapped by a monitor lock.
	AccSynchronized = 0x0020 // method

	// Indicates that this module is open.
	AccOpen = 0x0020 // module

	// Indicates that any module which depends on the current module,
	// implicitly declares a dependence on the module indicated by this entry.
	AccTransitive = 0x0020 // module requires

	// Declared volatile; cannot be cached.
	AccVolatile = 0x0040 // field

	// A bridge method, generated by the compiler.
	AccBridge = 0x0040 // method

	// Indicates that this dependence is mandatory in the static phase,
	// i.e. at compile time, but is optional in the dynamic phase, i.e. at run time.
	AccStaticPhase = 0x0040 // module requires

	// Declared transient; not written or read by a persistent object manager.
	AccTransient = 0x0080 // field

	// Declared with variable number of arguments.
	AccVarargs = 0x0080 // method

	// Declared native; implemented in a language other than the Java
	// programming language.
	AccNative = 0x0100 // method

	// Is an interface, not a class.
	AccInterface = 0x0200 // class

	// Declared abstract; must not be instantiated, or implemented.
	AccAbstract = 0x0400 // class, method

	// Declared strictfp; floating-point mode is FP-strict.
	AccStrict = 0x0800 // method

	// Declared synthetic; not present in the source code.
	AccSynthetic = 0x1000 // class, field, method, parameter, module, module *

	// Declared as an annotation type.
	AccAnnotation = 0x2000 // class

	// Declared as an enum type, or as an enum constant field.
	AccEnum = 0x4000 // class, field, inner class

	// Is a module, not a class or interface.
	AccModule = 0x8000 // class

	// Indicates that the formal parameter was implicitly declared in
	// source code, or that a module, or module * entry was implicitly
	// declared by the compiler.
	AccMandated = 0x8000 // parameter, module, module *
)

// Class is the in-memory representation of a parsed or to-be-written class
// file (JVMS 4.1), excluding the constant pool, which is stored separately
// in a Pool.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16

	ThisClassIndex  uint16
	SuperClassIndex uint16 // 0 only for java/lang/Object

	InterfaceIndices []uint16

	Fields     []Field
	Methods    []Method
	Attributes []Attribute
}

// Field is one field_info record (JVMS 4.5).
type Field struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attributes  []Attribute
}

// Method is one method_info record (JVMS 4.6).
type Method struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attributes  []Attribute
}
