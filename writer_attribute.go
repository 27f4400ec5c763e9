// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// writeAttributes emits the u2 attribute count followed by each attribute.
func writeAttributes(w *Writer, pool *Pool, attrs []Attribute) error {
	w.WriteU16(uint16(len(attrs)))
	for _, a := range attrs {
		if err := writeAttribute(w, pool, a); err != nil {
			return err
		}
	}
	return nil
}

// writeAttribute serializes one attribute_info: it resolves the attribute's
// Name() to a pool index, builds the attribute body into a scratch Writer
// so the u4 length field can be computed from the already-encoded bytes,
// then emits name_index, length, and the body in sequence.
func writeAttribute(w *Writer, pool *Pool, attr Attribute) error {
	nameIdx, ok := pool.IndexOfUTF8(attr.Name())
	if !ok {
		return ErrUnresolvedAttributeName
	}

	body := NewWriter()
	if err := writeAttributeBody(body, pool, attr); err != nil {
		return err
	}

	w.WriteU16(nameIdx)
	w.WriteU32(uint32(body.Len()))
	w.WriteBytes(body.Bytes())
	return nil
}

func writeAttributeBody(w *Writer, pool *Pool, attr Attribute) error {
	switch a := attr.(type) {
	case ConstantValueAttribute:
		w.WriteU16(a.ValueIndex)
	case CodeAttribute:
		return writeCodeAttribute(w, pool, a)
	case StackMapTableAttribute:
		writeStackMapTableAttribute(w, a)
	case ExceptionsAttribute:
		w.WriteU16(uint16(len(a.ExceptionIndices)))
		for _, idx := range a.ExceptionIndices {
			w.WriteU16(idx)
		}
	case InnerClassesAttribute:
		w.WriteU16(uint16(len(a.Classes)))
		for _, ic := range a.Classes {
			w.WriteU16(ic.InnerClassInfoIndex)
			w.WriteU16(ic.OuterClassInfoIndex)
			w.WriteU16(ic.InnerNameIndex)
			w.WriteU16(ic.InnerClassAccessFlags)
		}
	case EnclosingMethodAttribute:
		w.WriteU16(a.ClassIndex)
		w.WriteU16(a.MethodIndex)
	case SyntheticAttribute:
		// no payload
	case SignatureAttribute:
		w.WriteU16(a.SignatureIndex)
	case SourceFileAttribute:
		w.WriteU16(a.SourceFileIndex)
	case SourceDebugExtensionAttribute:
		w.WriteBytes(a.DebugExtension)
	case LineNumberTableAttribute:
		w.WriteU16(uint16(len(a.Entries)))
		for _, e := range a.Entries {
			w.WriteU16(e.StartPC)
			w.WriteU16(e.LineNumber)
		}
	case LocalVariableTableAttribute:
		w.WriteU16(uint16(len(a.Entries)))
		for _, e := range a.Entries {
			w.WriteU16(e.StartPC)
			w.WriteU16(e.Length)
			w.WriteU16(e.NameIndex)
			w.WriteU16(e.DescIndex)
			w.WriteU16(e.Index)
		}
	case LocalVariableTypeTableAttribute:
		w.WriteU16(uint16(len(a.Entries)))
		for _, e := range a.Entries {
			w.WriteU16(e.StartPC)
			w.WriteU16(e.Length)
			w.WriteU16(e.NameIndex)
			w.WriteU16(e.SignatureIndex)
			w.WriteU16(e.Index)
		}
	case DeprecatedAttribute:
		// no payload
	case RuntimeVisibleAnnotationsAttribute:
		writeAnnotationList(w, a.Annotations)
	case RuntimeInvisibleAnnotationsAttribute:
		writeAnnotationList(w, a.Annotations)
	case RuntimeVisibleParameterAnnotationsAttribute:
		writeParameterAnnotationList(w, a.ParameterAnnotations)
	case RuntimeInvisibleParameterAnnotationsAttribute:
		writeParameterAnnotationList(w, a.ParameterAnnotations)
	case RuntimeVisibleTypeAnnotationsAttribute:
		writeTypeAnnotationList(w, a.Annotations)
	case RuntimeInvisibleTypeAnnotationsAttribute:
		writeTypeAnnotationList(w, a.Annotations)
	case AnnotationDefaultAttribute:
		writeElementValue(w, a.Value)
	case BootstrapMethodsAttribute:
		w.WriteU16(uint16(len(a.Methods)))
		for _, m := range a.Methods {
			w.WriteU16(m.MethodRefIndex)
			w.WriteU16(uint16(len(m.ArgumentIndices)))
			for _, idx := range m.ArgumentIndices {
				w.WriteU16(idx)
			}
		}
	case MethodParametersAttribute:
		w.WriteU8(uint8(len(a.Parameters)))
		for _, p := range a.Parameters {
			w.WriteU16(p.NameIndex)
			w.WriteU16(p.AccessFlags)
		}
	case ModuleAttribute:
		writeModuleAttribute(w, a)
	case ModuleMainClassAttribute:
		w.WriteU16(a.MainClassIndex)
	case ModulePackagesAttribute:
		w.WriteU16(uint16(len(a.PackageIndices)))
		for _, idx := range a.PackageIndices {
			w.WriteU16(idx)
		}
	case UnknownAttribute:
		w.WriteBytes(a.Info)
	}
	return nil
}

func writeAnnotationList(w *Writer, anns []Annotation) {
	w.WriteU16(uint16(len(anns)))
	for _, a := range anns {
		writeAnnotation(w, a)
	}
}

func writeParameterAnnotationList(w *Writer, paramAnns [][]Annotation) {
	w.WriteU8(uint8(len(paramAnns)))
	for _, anns := range paramAnns {
		writeAnnotationList(w, anns)
	}
}

func writeAnnotation(w *Writer, a Annotation) {
	w.WriteU16(a.TypeIndex)
	w.WriteU16(uint16(len(a.ElementValuePairs)))
	for _, p := range a.ElementValuePairs {
		w.WriteU16(p.NameIndex)
		writeElementValue(w, p.Value)
	}
}

func writeElementValue(w *Writer, v ElementValue) {
	w.WriteU8(v.Tag())
	switch ev := v.(type) {
	case ConstElementValue:
		w.WriteU16(ev.ConstValueIndex)
	case EnumElementValue:
		w.WriteU16(ev.TypeNameIndex)
		w.WriteU16(ev.ConstNameIndex)
	case ClassElementValue:
		w.WriteU16(ev.ClassInfoIndex)
	case AnnotationElementValue:
		writeAnnotation(w, ev.Value)
	case ArrayElementValue:
		w.WriteU16(uint16(len(ev.Values)))
		for _, e := range ev.Values {
			writeElementValue(w, e)
		}
	}
}

func writeTypeAnnotationList(w *Writer, anns []TypeAnnotation) {
	w.WriteU16(uint16(len(anns)))
	for _, a := range anns {
		writeTypeAnnotation(w, a)
	}
}

func writeTypeAnnotation(w *Writer, a TypeAnnotation) {
	w.WriteU8(a.Target.TargetType())
	writeTypeAnnotationTarget(w, a.Target)
	writeTypePath(w, a.TypePath)
	w.WriteU16(a.TypeIndex)
	w.WriteU16(uint16(len(a.ElementValuePairs)))
	for _, p := range a.ElementValuePairs {
		w.WriteU16(p.NameIndex)
		writeElementValue(w, p.Value)
	}
}

func writeTypeAnnotationTarget(w *Writer, target TypeAnnotationTarget) {
	switch t := target.(type) {
	case TypeParameterTarget:
		w.WriteU8(t.TypeParameterIndex)
	case SupertypeTarget:
		w.WriteU16(t.SupertypeIndex)
	case TypeParameterBoundTarget:
		w.WriteU8(t.TypeParameterIndex)
		w.WriteU8(t.BoundIndex)
	case EmptyTarget:
		// no payload
	case FormalParameterTarget:
		w.WriteU8(t.FormalParameterIndex)
	case ThrowsTarget:
		w.WriteU16(t.ThrowsTypeIndex)
	case LocalVarTarget:
		w.WriteU16(uint16(len(t.Table)))
		for _, e := range t.Table {
			w.WriteU16(e.StartPC)
			w.WriteU16(e.Length)
			w.WriteU16(e.Index)
		}
	case CatchTarget:
		w.WriteU16(t.ExceptionTableIndex)
	case OffsetTarget:
		w.WriteU16(t.Offset)
	case TypeArgumentTarget:
		w.WriteU16(t.Offset)
		w.WriteU8(t.TypeArgumentIndex)
	}
}

func writeTypePath(w *Writer, path []TypePathEntry) {
	w.WriteU8(uint8(len(path)))
	for _, e := range path {
		w.WriteU8(e.Kind)
		w.WriteU8(e.TypeArgumentIndex)
	}
}

func writeModuleAttribute(w *Writer, a ModuleAttribute) {
	w.WriteU16(a.ModuleNameIndex)
	w.WriteU16(a.ModuleFlags)
	w.WriteU16(a.ModuleVersionIndex)

	w.WriteU16(uint16(len(a.Requires)))
	for _, r := range a.Requires {
		w.WriteU16(r.RequiresIndex)
		w.WriteU16(r.RequiresFlags)
		w.WriteU16(r.RequiresVersionIndex)
	}

	writeModuleExportsOrOpens(w, a.Exports)
	writeModuleExportsOrOpens(w, a.Opens)

	w.WriteU16(uint16(len(a.UsesIndices)))
	for _, idx := range a.UsesIndices {
		w.WriteU16(idx)
	}

	w.WriteU16(uint16(len(a.Provides)))
	for _, p := range a.Provides {
		w.WriteU16(p.ProvidesIndex)
		w.WriteU16(uint16(len(p.WithIndices)))
		for _, idx := range p.WithIndices {
			w.WriteU16(idx)
		}
	}
}

func writeModuleExportsOrOpens(w *Writer, entries []ModuleExportsOrOpens) {
	w.WriteU16(uint16(len(entries)))
	for _, e := range entries {
		w.WriteU16(e.Index)
		w.WriteU16(e.Flags)
		w.WriteU16(uint16(len(e.ToIndices)))
		for _, idx := range e.ToIndices {
			w.WriteU16(idx)
		}
	}
}
