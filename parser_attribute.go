// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// parseAttributes parses count consecutive attribute_info structures.
func parseAttributes(r *Reader, pool *Pool, count uint16, cfg *parseConfig) ([]Attribute, error) {
	if count == 0 {
		return nil, nil
	}
	out := make([]Attribute, count)
	for i := range out {
		a, err := parseAttribute(r, pool, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// parseAttribute parses one attribute_info: its name_index, its u4 length,
// and then its body, dispatched by the resolved attribute name. The body
// is parsed through a sub-reader limited to exactly attribute_length bytes,
// so any sub-parser that under- or over-reads is caught by RemoveLimit
// rather than silently desynchronizing the rest of the class file.
//
// If cfg.maxAttributeLength is set and length exceeds it, parsing fails
// with ErrLimitExceeded before any body bytes are read. If cfg.fast is
// set, the body is kept as an UnknownAttribute's raw bytes instead of
// being decoded into its structured form, regardless of name.
func parseAttribute(r *Reader, pool *Pool, cfg *parseConfig) (Attribute, error) {
	nameIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if cfg.maxAttributeLength != 0 && length > cfg.maxAttributeLength {
		return nil, ErrLimitExceeded
	}
	name, err := pool.GetUTF8(nameIdx)
	if err != nil {
		return nil, err
	}
	sub, err := r.Limit(length)
	if err != nil {
		return nil, err
	}

	if cfg.fast {
		info, err := sub.ReadBytes(uint32(sub.Remaining()))
		if err != nil {
			return nil, err
		}
		if err := sub.RemoveLimit(); err != nil {
			return nil, err
		}
		return UnknownAttribute{AttrName: name, Info: info}, nil
	}

	var attr Attribute
	switch name {
	case "ConstantValue":
		attr, err = parseConstantValueAttribute(sub)
	case "Code":
		attr, err = parseCodeAttribute(sub, pool, cfg)
	case "StackMapTable":
		attr, err = parseStackMapTableAttribute(sub)
	case "Exceptions":
		attr, err = parseExceptionsAttribute(sub)
	case "InnerClasses":
		attr, err = parseInnerClassesAttribute(sub)
	case "EnclosingMethod":
		attr, err = parseEnclosingMethodAttribute(sub)
	case "Synthetic":
		attr = SyntheticAttribute{}
	case "Signature":
		attr, err = parseSignatureAttribute(sub)
	case "SourceFile":
		attr, err = parseSourceFileAttribute(sub)
	case "SourceDebugExtension":
		attr, err = parseSourceDebugExtensionAttribute(sub)
	case "LineNumberTable":
		attr, err = parseLineNumberTableAttribute(sub)
	case "LocalVariableTable":
		attr, err = parseLocalVariableTableAttribute(sub)
	case "LocalVariableTypeTable":
		attr, err = parseLocalVariableTypeTableAttribute(sub)
	case "Deprecated":
		attr = DeprecatedAttribute{}
	case "RuntimeVisibleAnnotations":
		var anns []Annotation
		anns, err = parseAnnotationList(sub)
		attr = RuntimeVisibleAnnotationsAttribute{Annotations: anns}
	case "RuntimeInvisibleAnnotations":
		var anns []Annotation
		anns, err = parseAnnotationList(sub)
		attr = RuntimeInvisibleAnnotationsAttribute{Annotations: anns}
	case "RuntimeVisibleParameterAnnotations":
		var paramAnns [][]Annotation
		paramAnns, err = parseParameterAnnotationList(sub)
		attr = RuntimeVisibleParameterAnnotationsAttribute{ParameterAnnotations: paramAnns}
	case "RuntimeInvisibleParameterAnnotations":
		var paramAnns [][]Annotation
		paramAnns, err = parseParameterAnnotationList(sub)
		attr = RuntimeInvisibleParameterAnnotationsAttribute{ParameterAnnotations: paramAnns}
	case "RuntimeVisibleTypeAnnotations":
		var anns []TypeAnnotation
		anns, err = parseTypeAnnotationList(sub)
		attr = RuntimeVisibleTypeAnnotationsAttribute{Annotations: anns}
	case "RuntimeInvisibleTypeAnnotations":
		var anns []TypeAnnotation
		anns, err = parseTypeAnnotationList(sub)
		attr = RuntimeInvisibleTypeAnnotationsAttribute{Annotations: anns}
	case "AnnotationDefault":
		var ev ElementValue
		ev, err = parseElementValue(sub)
		attr = AnnotationDefaultAttribute{Value: ev}
	case "BootstrapMethods":
		attr, err = parseBootstrapMethodsAttribute(sub)
	case "MethodParameters":
		attr, err = parseMethodParametersAttribute(sub)
	case "Module":
		attr, err = parseModuleAttribute(sub)
	case "ModuleMainClass":
		attr, err = parseModuleMainClassAttribute(sub)
	case "ModulePackages":
		attr, err = parseModulePackagesAttribute(sub)
	default:
		var info []byte
		info, err = sub.ReadBytes(uint32(sub.Remaining()))
		attr = UnknownAttribute{AttrName: name, Info: info}
	}
	if err != nil {
		return nil, err
	}
	if err := sub.RemoveLimit(); err != nil {
		return nil, err
	}
	return attr, nil
}

func parseConstantValueAttribute(r *Reader) (Attribute, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return ConstantValueAttribute{ValueIndex: idx}, nil
}

func parseExceptionsAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	indices := make([]uint16, count)
	for i := range indices {
		if indices[i], err = r.ReadU16(); err != nil {
			return nil, err
		}
	}
	return ExceptionsAttribute{ExceptionIndices: indices}, nil
}

func parseInnerClassesAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	classes := make([]InnerClass, count)
	for i := range classes {
		inner, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		outer, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		name, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		classes[i] = InnerClass{
			InnerClassInfoIndex:   inner,
			OuterClassInfoIndex:   outer,
			InnerNameIndex:        name,
			InnerClassAccessFlags: flags,
		}
	}
	return InnerClassesAttribute{Classes: classes}, nil
}

func parseEnclosingMethodAttribute(r *Reader) (Attribute, error) {
	classIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	methodIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return EnclosingMethodAttribute{ClassIndex: classIdx, MethodIndex: methodIdx}, nil
}

func parseSignatureAttribute(r *Reader) (Attribute, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return SignatureAttribute{SignatureIndex: idx}, nil
}

func parseSourceFileAttribute(r *Reader) (Attribute, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return SourceFileAttribute{SourceFileIndex: idx}, nil
}

func parseSourceDebugExtensionAttribute(r *Reader) (Attribute, error) {
	raw, err := r.ReadBytes(uint32(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return SourceDebugExtensionAttribute{DebugExtension: raw}, nil
}

func parseLineNumberTableAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	entries := make([]LineNumberEntry, count)
	for i := range entries {
		startPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		line, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
	}
	return LineNumberTableAttribute{Entries: entries}, nil
}

func parseLocalVariableTableAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	entries := make([]LocalVariableEntry, count)
	for i := range entries {
		e, err := readLocalVarRow(r)
		if err != nil {
			return nil, err
		}
		entries[i] = LocalVariableEntry{
			StartPC: e[0], Length: e[1], NameIndex: e[2], DescIndex: e[3], Index: e[4],
		}
	}
	return LocalVariableTableAttribute{Entries: entries}, nil
}

func parseLocalVariableTypeTableAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	entries := make([]LocalVariableTypeEntry, count)
	for i := range entries {
		e, err := readLocalVarRow(r)
		if err != nil {
			return nil, err
		}
		entries[i] = LocalVariableTypeEntry{
			StartPC: e[0], Length: e[1], NameIndex: e[2], SignatureIndex: e[3], Index: e[4],
		}
	}
	return LocalVariableTypeTableAttribute{Entries: entries}, nil
}

// readLocalVarRow reads the five u2 fields shared by LocalVariableTable and
// LocalVariableTypeTable rows; only the name of the third field differs.
func readLocalVarRow(r *Reader) ([5]uint16, error) {
	var row [5]uint16
	for i := range row {
		v, err := r.ReadU16()
		if err != nil {
			return row, err
		}
		row[i] = v
	}
	return row, nil
}

func parseBootstrapMethodsAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	methods := make([]BootstrapMethod, count)
	for i := range methods {
		ref, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		argCount, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		args := make([]uint16, argCount)
		for j := range args {
			if args[j], err = r.ReadU16(); err != nil {
				return nil, err
			}
		}
		methods[i] = BootstrapMethod{MethodRefIndex: ref, ArgumentIndices: args}
	}
	return BootstrapMethodsAttribute{Methods: methods}, nil
}

func parseMethodParametersAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	params := make([]MethodParameter, count)
	for i := range params {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		params[i] = MethodParameter{NameIndex: nameIdx, AccessFlags: flags}
	}
	return MethodParametersAttribute{Parameters: params}, nil
}

func parseModuleMainClassAttribute(r *Reader) (Attribute, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return ModuleMainClassAttribute{MainClassIndex: idx}, nil
}

func parseModulePackagesAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	indices := make([]uint16, count)
	for i := range indices {
		if indices[i], err = r.ReadU16(); err != nil {
			return nil, err
		}
	}
	return ModulePackagesAttribute{PackageIndices: indices}, nil
}
