// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strings"

// BaseType is a single-letter field or return type code (JVMS 4.3.2,
// Table 4.3.2-A), extended with BaseObject and BaseVoid to cover the object
// type and the void return type uniformly.
type BaseType byte

const (
	BaseByte    BaseType = 'B'
	BaseChar    BaseType = 'C'
	BaseDouble  BaseType = 'D'
	BaseFloat   BaseType = 'F'
	BaseInt     BaseType = 'I'
	BaseLong    BaseType = 'J'
	BaseShort   BaseType = 'S'
	BaseBoolean BaseType = 'Z'
	BaseObject  BaseType = 'L'
	BaseVoid    BaseType = 'V'
)

// TypeDescriptor is one parsed FieldType or ReturnDescriptor (JVMS 4.3.2).
// Dimensions is the array nesting depth (0 for a non-array type). ClassName
// is only meaningful when Base is BaseObject, and holds the internal form
// of the class name (slash-separated, without the leading L or trailing
// semicolon).
type TypeDescriptor struct {
	Dimensions uint8
	Base       BaseType
	ClassName  string
}

// MethodDescriptor is a parsed method descriptor (JVMS 4.3.3): an ordered
// parameter list and a return type. Return.Base == BaseVoid for a void
// method.
type MethodDescriptor struct {
	Params []TypeDescriptor
	Return TypeDescriptor
}

// ParseFieldDescriptor parses s as a complete FieldDescriptor. It fails if
// any input remains after the type, or if s is malformed.
func ParseFieldDescriptor(s string) (TypeDescriptor, error) {
	td, n, err := parseFieldType(s, 0)
	if err != nil {
		return TypeDescriptor{}, err
	}
	if n != len(s) {
		return TypeDescriptor{}, &InvalidDescriptorError{Desc: s, At: n}
	}
	return td, nil
}

// ParseMethodDescriptor parses s as a complete method descriptor.
func ParseMethodDescriptor(s string) (MethodDescriptor, error) {
	if len(s) == 0 || s[0] != '(' {
		return MethodDescriptor{}, &InvalidDescriptorError{Desc: s, At: 0}
	}
	i := 1
	var params []TypeDescriptor
	for i < len(s) && s[i] != ')' {
		td, n, err := parseFieldType(s, i)
		if err != nil {
			return MethodDescriptor{}, err
		}
		if len(params) >= 255 {
			return MethodDescriptor{}, &InvalidDescriptorError{Desc: s, At: i}
		}
		params = append(params, td)
		i = n
	}
	if i >= len(s) || s[i] != ')' {
		return MethodDescriptor{}, &InvalidDescriptorError{Desc: s, At: i}
	}
	i++ // consume ')'

	if i < len(s) && s[i] == 'V' {
		if i+1 != len(s) {
			return MethodDescriptor{}, &InvalidDescriptorError{Desc: s, At: i + 1}
		}
		return MethodDescriptor{Params: params, Return: TypeDescriptor{Base: BaseVoid}}, nil
	}
	ret, n, err := parseFieldType(s, i)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if n != len(s) {
		return MethodDescriptor{}, &InvalidDescriptorError{Desc: s, At: n}
	}
	return MethodDescriptor{Params: params, Return: ret}, nil
}

// parseFieldType parses one FieldType starting at s[i], returning the
// parsed descriptor and the index immediately after it.
func parseFieldType(s string, i int) (TypeDescriptor, int, error) {
	start := i
	var dims uint8
	for i < len(s) && s[i] == '[' {
		if dims == 255 {
			return TypeDescriptor{}, i, &InvalidDescriptorError{Desc: s, At: i}
		}
		dims++
		i++
	}
	if i >= len(s) {
		return TypeDescriptor{}, i, &InvalidDescriptorError{Desc: s, At: start}
	}
	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return TypeDescriptor{Dimensions: dims, Base: BaseType(s[i])}, i + 1, nil
	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return TypeDescriptor{}, i, &InvalidDescriptorError{Desc: s, At: i}
		}
		if end == 1 {
			return TypeDescriptor{}, i, &InvalidDescriptorError{Desc: s, At: i + 1}
		}
		name := s[i+1 : i+end]
		return TypeDescriptor{Dimensions: dims, Base: BaseObject, ClassName: name}, i + end + 1, nil
	default:
		return TypeDescriptor{}, i, &InvalidDescriptorError{Desc: s, At: i}
	}
}

// String renders a TypeDescriptor back to its wire form.
func (t TypeDescriptor) String() string {
	var sb strings.Builder
	for n := uint8(0); n < t.Dimensions; n++ {
		sb.WriteByte('[')
	}
	if t.Base == BaseObject {
		sb.WriteByte('L')
		sb.WriteString(t.ClassName)
		sb.WriteByte(';')
	} else {
		sb.WriteByte(byte(t.Base))
	}
	return sb.String()
}

// String renders a MethodDescriptor back to its wire form.
func (m MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range m.Params {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	sb.WriteString(m.Return.String())
	return sb.String()
}
