// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "io"

// Write encodes pool and class and writes the result to w.
func Write(w io.Writer, pool *Pool, class *Class) error {
	data, err := WriteBytes(pool, class)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteBytes serializes pool and class back into the JVMS 4.1 ClassFile
// binary format. It is the exact inverse of Parse/ParseBytes: every field
// present on the tree is re-emitted verbatim, including Unknown attributes,
// whose raw bytes are copied through untouched.
func WriteBytes(pool *Pool, class *Class) ([]byte, error) {
	w := NewWriter()
	w.WriteU32(classMagic)
	w.WriteU16(class.MinorVersion)
	w.WriteU16(class.MajorVersion)

	writeConstantPool(w, pool)

	w.WriteU16(class.AccessFlags)
	w.WriteU16(class.ThisClassIndex)
	w.WriteU16(class.SuperClassIndex)

	w.WriteU16(uint16(len(class.InterfaceIndices)))
	for _, idx := range class.InterfaceIndices {
		w.WriteU16(idx)
	}

	if err := writeFields(w, pool, class.Fields); err != nil {
		return nil, err
	}
	if err := writeMethods(w, pool, class.Methods); err != nil {
		return nil, err
	}
	if err := writeAttributes(w, pool, class.Attributes); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// writeConstantPool emits the constant_pool_count field followed by one
// entry per occupied, non-placeholder pool slot; a wide item's reserved
// successor slot is never itself written, matching how the parser advances
// two indices after reading only one Long/Double entry.
func writeConstantPool(w *Writer, pool *Pool) {
	w.WriteU16(pool.Len())
	for _, entry := range pool.Iter() {
		writeConstantPoolItem(w, entry.Item)
	}
}

func writeConstantPoolItem(w *Writer, item Item) {
	w.WriteU8(item.Tag())
	switch it := item.(type) {
	case UTF8Item:
		w.WriteString(it.Value)
	case IntegerItem:
		w.WriteI32(it.Value)
	case FloatItem:
		w.WriteF32(it.Value)
	case LongItem:
		w.WriteI64(it.Value)
	case DoubleItem:
		w.WriteF64(it.Value)
	case ClassItem:
		w.WriteU16(it.NameIndex)
	case StringItem:
		w.WriteU16(it.Index)
	case FieldRefItem:
		w.WriteU16(it.ClassIndex)
		w.WriteU16(it.NameAndTypeIndex)
	case MethodRefItem:
		w.WriteU16(it.ClassIndex)
		w.WriteU16(it.NameAndTypeIndex)
	case InterfaceMethodRefItem:
		w.WriteU16(it.ClassIndex)
		w.WriteU16(it.NameAndTypeIndex)
	case NameAndTypeItem:
		w.WriteU16(it.NameIndex)
		w.WriteU16(it.DescIndex)
	case MethodHandleItem:
		w.WriteU8(it.ReferenceKind)
		w.WriteU16(it.ReferenceIndex)
	case MethodTypeItem:
		w.WriteU16(it.DescIndex)
	case InvokeDynamicItem:
		w.WriteU16(it.BootstrapMethodAttrIndex)
		w.WriteU16(it.NameAndTypeIndex)
	case ModuleItem:
		w.WriteU16(it.NameIndex)
	case PackageItem:
		w.WriteU16(it.NameIndex)
	}
}

func writeFields(w *Writer, pool *Pool, fields []Field) error {
	w.WriteU16(uint16(len(fields)))
	for _, f := range fields {
		w.WriteU16(f.AccessFlags)
		w.WriteU16(f.NameIndex)
		w.WriteU16(f.DescIndex)
		if err := writeAttributes(w, pool, f.Attributes); err != nil {
			return err
		}
	}
	return nil
}

func writeMethods(w *Writer, pool *Pool, methods []Method) error {
	w.WriteU16(uint16(len(methods)))
	for _, m := range methods {
		w.WriteU16(m.AccessFlags)
		w.WriteU16(m.NameIndex)
		w.WriteU16(m.DescIndex)
		if err := writeAttributes(w, pool, m.Attributes); err != nil {
			return err
		}
	}
	return nil
}
