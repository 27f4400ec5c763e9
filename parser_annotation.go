// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// parseAnnotationList parses a num_annotations-prefixed annotation[] list,
// the shape shared by RuntimeVisibleAnnotations and
// RuntimeInvisibleAnnotations (JVMS 4.7.16, 4.7.17).
func parseAnnotationList(r *Reader) ([]Annotation, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]Annotation, count)
	for i := range out {
		a, err := parseAnnotation(r)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// parseParameterAnnotationList parses a num_parameters-prefixed table of
// per-parameter annotation lists (JVMS 4.7.18, 4.7.19).
func parseParameterAnnotationList(r *Reader) ([][]Annotation, error) {
	count, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([][]Annotation, count)
	for i := range out {
		anns, err := parseAnnotationList(r)
		if err != nil {
			return nil, err
		}
		out[i] = anns
	}
	return out, nil
}

func parseAnnotation(r *Reader) (Annotation, error) {
	typeIdx, err := r.ReadU16()
	if err != nil {
		return Annotation{}, err
	}
	pairCount, err := r.ReadU16()
	if err != nil {
		return Annotation{}, err
	}
	pairs := make([]ElementValuePair, pairCount)
	for i := range pairs {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return Annotation{}, err
		}
		val, err := parseElementValue(r)
		if err != nil {
			return Annotation{}, err
		}
		pairs[i] = ElementValuePair{NameIndex: nameIdx, Value: val}
	}
	return Annotation{TypeIndex: typeIdx, ElementValuePairs: pairs}, nil
}

func parseElementValue(r *Reader) (ElementValue, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case ByteEV, CharEV, DoubleEV, FloatEV, IntEV, LongEV, ShortEV, BooleanEV, StringEV:
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ConstElementValue{TagValue: tag, ConstValueIndex: idx}, nil
	case EnumEV:
		typeNameIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		constNameIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return EnumElementValue{TypeNameIndex: typeNameIdx, ConstNameIndex: constNameIdx}, nil
	case ClassEV:
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ClassElementValue{ClassInfoIndex: idx}, nil
	case AnnotationEV:
		nested, err := parseAnnotation(r)
		if err != nil {
			return nil, err
		}
		return AnnotationElementValue{Value: nested}, nil
	case ArrayEV:
		count, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		values := make([]ElementValue, count)
		for i := range values {
			v, err := parseElementValue(r)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return ArrayElementValue{Values: values}, nil
	default:
		return nil, &InvalidElementValueError{Tag: tag}
	}
}

// parseTypeAnnotationList parses a num_annotations-prefixed type_annotation[]
// list, the shape shared by RuntimeVisibleTypeAnnotations and
// RuntimeInvisibleTypeAnnotations (JVMS 4.7.20).
func parseTypeAnnotationList(r *Reader) ([]TypeAnnotation, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]TypeAnnotation, count)
	for i := range out {
		ta, err := parseTypeAnnotation(r)
		if err != nil {
			return nil, err
		}
		out[i] = ta
	}
	return out, nil
}

func parseTypeAnnotation(r *Reader) (TypeAnnotation, error) {
	targetType, err := r.ReadU8()
	if err != nil {
		return TypeAnnotation{}, err
	}
	target, err := parseTypeAnnotationTarget(r, targetType)
	if err != nil {
		return TypeAnnotation{}, err
	}
	path, err := parseTypePath(r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	typeIdx, err := r.ReadU16()
	if err != nil {
		return TypeAnnotation{}, err
	}
	pairCount, err := r.ReadU16()
	if err != nil {
		return TypeAnnotation{}, err
	}
	pairs := make([]ElementValuePair, pairCount)
	for i := range pairs {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return TypeAnnotation{}, err
		}
		val, err := parseElementValue(r)
		if err != nil {
			return TypeAnnotation{}, err
		}
		pairs[i] = ElementValuePair{NameIndex: nameIdx, Value: val}
	}
	return TypeAnnotation{
		Target:            target,
		TypePath:          path,
		TypeIndex:         typeIdx,
		ElementValuePairs: pairs,
	}, nil
}

func parseTypeAnnotationTarget(r *Reader, targetType uint8) (TypeAnnotationTarget, error) {
	switch targetType {
	case TargetTypeParameterClass, TargetTypeParameterMethod:
		idx, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		return TypeParameterTarget{Type: targetType, TypeParameterIndex: idx}, nil
	case TargetSuper:
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return SupertypeTarget{SupertypeIndex: idx}, nil
	case TargetTypeParameterBoundClass, TargetTypeParameterBoundMethod:
		paramIdx, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		boundIdx, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		return TypeParameterBoundTarget{Type: targetType, TypeParameterIndex: paramIdx, BoundIndex: boundIdx}, nil
	case TargetField, TargetReturn, TargetReceiver:
		return EmptyTarget{Type: targetType}, nil
	case TargetFormalParameter:
		idx, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		return FormalParameterTarget{FormalParameterIndex: idx}, nil
	case TargetThrows:
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ThrowsTarget{ThrowsTypeIndex: idx}, nil
	case TargetLocalVar, TargetResourceVar:
		count, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		table := make([]LocalVarTargetEntry, count)
		for i := range table {
			startPC, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			length, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			index, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			table[i] = LocalVarTargetEntry{StartPC: startPC, Length: length, Index: index}
		}
		return LocalVarTarget{Type: targetType, Table: table}, nil
	case TargetExceptionParameter:
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return CatchTarget{ExceptionTableIndex: idx}, nil
	case TargetInstanceOf, TargetNew, TargetNewMethodRef, TargetIdMethodRef:
		off, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return OffsetTarget{Type: targetType, Offset: off}, nil
	case TargetCast, TargetConstructorInvocationTypeArgument, TargetMethodInvocationTypeArgument,
		TargetConstructorRefTypeArgument, TargetMethodRefTypeArgument:
		off, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		argIdx, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		return TypeArgumentTarget{Type: targetType, Offset: off, TypeArgumentIndex: argIdx}, nil
	default:
		return nil, ErrInvalidTargetType
	}
}

func parseTypePath(r *Reader) ([]TypePathEntry, error) {
	length, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	path := make([]TypePathEntry, length)
	for i := range path {
		kind, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if kind > PathTypeArgument {
			return nil, ErrInvalidTypePath
		}
		argIdx, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		path[i] = TypePathEntry{Kind: kind, TypeArgumentIndex: argIdx}
	}
	return path, nil
}
