// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"github.com/saferwall/classfile/internal/xlog"
)

// classMagic is the fixed magic number at the start of every class file
// (JVMS 4.1).
const classMagic = 0xCAFEBABE

// parseConfig carries the parser's Options down through every recursive
// call that needs them, alongside the logging helper.
type parseConfig struct {
	helper *xlog.Helper

	// fast, when true, skips decoding every attribute into its
	// structured form and instead keeps it as an UnknownAttribute
	// holding its raw bytes; length-exactness is still enforced.
	fast bool

	// maxAttributeLength caps the declared length of any single
	// attribute body; zero means unlimited.
	maxAttributeLength uint32
}

// parse drives the whole top-level ClassFile grammar (JVMS 4.1) over data.
func parse(data []byte, cfg *parseConfig) (*Pool, *Class, error) {
	helper := cfg.helper
	r := NewReader(data)

	magic, err := r.ReadU32()
	if err != nil {
		return nil, nil, err
	}
	if magic != classMagic {
		return nil, nil, ErrNotAClass
	}

	minor, err := r.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	major, err := r.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	helper.Debugw("read class version", "major", major, "minor", minor)

	pool, err := parseConstantPool(r)
	if err != nil {
		return nil, nil, err
	}

	accessFlags, err := r.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	thisClass, err := r.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	superClass, err := r.ReadU16()
	if err != nil {
		return nil, nil, err
	}

	interfaces, err := parseInterfaces(r)
	if err != nil {
		return nil, nil, err
	}

	fields, err := parseFields(r, pool, cfg)
	if err != nil {
		return nil, nil, err
	}

	methods, err := parseMethods(r, pool, cfg)
	if err != nil {
		return nil, nil, err
	}

	attrCount, err := r.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	attrs, err := parseAttributes(r, pool, attrCount, cfg)
	if err != nil {
		return nil, nil, err
	}

	class := &Class{
		MinorVersion:     minor,
		MajorVersion:     major,
		AccessFlags:      accessFlags,
		ThisClassIndex:   thisClass,
		SuperClassIndex:  superClass,
		InterfaceIndices: interfaces,
		Fields:           fields,
		Methods:          methods,
		Attributes:       attrs,
	}
	helper.Infow("parsed class",
		"fields", len(fields), "methods", len(methods), "attributes", len(attrs))
	return pool, class, nil
}

// parseConstantPool parses the constant_pool_count and constant_pool[]
// entries. Indices are assigned with PushDuplicate so the pool's slot
// layout, including any redundant entries the compiler emitted, matches
// the source file exactly.
func parseConstantPool(r *Reader) (*Pool, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return NewPool(), nil
	}
	pool := NewPoolWithCapacity(int(count) - 1)
	for pool.Len() < count {
		item, err := parseConstantPoolItem(r)
		if err != nil {
			return nil, err
		}
		if _, err := pool.PushDuplicate(item); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

func parseConstantPoolItem(r *Reader) (Item, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagUTF8:
		n, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		s, err := r.ReadString(n)
		if err != nil {
			return nil, err
		}
		return UTF8Item{Value: s}, nil
	case TagInteger:
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		return IntegerItem{Value: v}, nil
	case TagFloat:
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		return FloatItem{Value: v}, nil
	case TagLong:
		v, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		return LongItem{Value: v}, nil
	case TagDouble:
		v, err := r.ReadF64()
		if err != nil {
			return nil, err
		}
		return DoubleItem{Value: v}, nil
	case TagClass:
		ni, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ClassItem{NameIndex: ni}, nil
	case TagString:
		si, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return StringItem{Index: si}, nil
	case TagFieldRef:
		ci, nti, err := readU16Pair(r)
		if err != nil {
			return nil, err
		}
		return FieldRefItem{ClassIndex: ci, NameAndTypeIndex: nti}, nil
	case TagMethodRef:
		ci, nti, err := readU16Pair(r)
		if err != nil {
			return nil, err
		}
		return MethodRefItem{ClassIndex: ci, NameAndTypeIndex: nti}, nil
	case TagInterfaceMethodRef:
		ci, nti, err := readU16Pair(r)
		if err != nil {
			return nil, err
		}
		return InterfaceMethodRefItem{ClassIndex: ci, NameAndTypeIndex: nti}, nil
	case TagNameAndType:
		ni, di, err := readU16Pair(r)
		if err != nil {
			return nil, err
		}
		return NameAndTypeItem{NameIndex: ni, DescIndex: di}, nil
	case TagMethodHandle:
		kind, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return MethodHandleItem{ReferenceKind: kind, ReferenceIndex: idx}, nil
	case TagMethodType:
		di, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return MethodTypeItem{DescIndex: di}, nil
	case TagInvokeDynamic:
		bmi, nti, err := readU16Pair(r)
		if err != nil {
			return nil, err
		}
		return InvokeDynamicItem{BootstrapMethodAttrIndex: bmi, NameAndTypeIndex: nti}, nil
	case TagModule:
		ni, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ModuleItem{NameIndex: ni}, nil
	case TagPackage:
		ni, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return PackageItem{NameIndex: ni}, nil
	default:
		return nil, &InvalidCPItemError{Index: uint16(tag)}
	}
}

func readU16Pair(r *Reader) (uint16, uint16, error) {
	a, err := r.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseInterfaces(r *Reader) ([]uint16, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]uint16, count)
	for i := range out {
		v, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFields(r *Reader, pool *Pool, cfg *parseConfig) ([]Field, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	fields := make([]Field, count)
	for i := range fields {
		accessFlags, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		attrCount, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributes(r, pool, attrCount, cfg)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{
			AccessFlags: accessFlags,
			NameIndex:   nameIdx,
			DescIndex:   descIdx,
			Attributes:  attrs,
		}
	}
	return fields, nil
}

func parseMethods(r *Reader, pool *Pool, cfg *parseConfig) ([]Method, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	methods := make([]Method, count)
	for i := range methods {
		accessFlags, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		attrCount, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributes(r, pool, attrCount, cfg)
		if err != nil {
			return nil, err
		}
		methods[i] = Method{
			AccessFlags: accessFlags,
			NameIndex:   nameIdx,
			DescIndex:   descIdx,
			Attributes:  attrs,
		}
	}
	return methods, nil
}
