// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// writeCodeAttribute is the inverse of parseCodeAttribute: it re-encodes the
// instruction stream into a scratch Writer first so that the u4 code_length
// field matches exactly, then emits the exception table and nested
// attributes.
func writeCodeAttribute(w *Writer, pool *Pool, a CodeAttribute) error {
	w.WriteU16(a.MaxStack)
	w.WriteU16(a.MaxLocals)

	code := NewWriter()
	for _, insn := range a.Instructions {
		writeInstruction(code, insn)
	}

	w.WriteU32(uint32(code.Len()))
	w.WriteBytes(code.Bytes())

	w.WriteU16(uint16(len(a.ExceptionTable)))
	for _, e := range a.ExceptionTable {
		w.WriteU16(e.StartPC)
		w.WriteU16(e.EndPC)
		w.WriteU16(e.HandlerPC)
		w.WriteU16(e.CatchTypeIndex)
	}

	return writeAttributes(w, pool, a.Attributes)
}

// writeInstruction appends the wire encoding of insn to cw, which must
// already hold exactly the bytes emitted for every instruction before it in
// the same code array, so that cw.Len() equals the offset of insn relative
// to the start of the code stream — the same quantity parseInstruction
// tracked via its base parameter.
func writeInstruction(cw *Writer, insn Instruction) {
	switch v := insn.(type) {
	case SimpleInsn:
		cw.WriteU8(uint8(v.Op))

	case PushConstInsn:
		cw.WriteU8(uint8(v.Op))
		if v.Op == OpSipush {
			cw.WriteI16(int16(v.Value))
		} else {
			cw.WriteI8(int8(v.Value))
		}

	case LoadConstantInsn:
		cw.WriteU8(uint8(v.Op))
		if v.Op == OpLdc {
			cw.WriteU8(uint8(v.Index))
		} else {
			cw.WriteU16(v.Index)
		}

	case VarInsn:
		if v.Wide {
			cw.WriteU8(uint8(OpWide))
			cw.WriteU8(uint8(v.Op))
			cw.WriteU16(v.Index)
		} else {
			cw.WriteU8(uint8(v.Op))
			cw.WriteU8(uint8(v.Index))
		}

	case IincInsn:
		if v.Wide {
			cw.WriteU8(uint8(OpWide))
			cw.WriteU8(uint8(OpIinc))
			cw.WriteU16(v.Index)
			cw.WriteI16(v.Value)
		} else {
			cw.WriteU8(uint8(OpIinc))
			cw.WriteU8(uint8(v.Index))
			cw.WriteI8(int8(v.Value))
		}

	case BranchInsn:
		cw.WriteU8(uint8(v.Op))
		if v.Wide {
			cw.WriteI32(v.Target)
		} else {
			cw.WriteI16(int16(v.Target))
		}

	case TableSwitchInsn:
		cw.WriteU8(uint8(v.Op))
		for i := switchPadding(cw.Len()); i > 0; i-- {
			cw.WriteU8(0)
		}
		cw.WriteI32(v.Default)
		cw.WriteI32(v.Low)
		cw.WriteI32(v.High)
		for _, off := range v.Offsets {
			cw.WriteI32(off)
		}

	case LookupSwitchInsn:
		cw.WriteU8(uint8(v.Op))
		for i := switchPadding(cw.Len()); i > 0; i-- {
			cw.WriteU8(0)
		}
		cw.WriteI32(v.Default)
		cw.WriteI32(int32(len(v.Pairs)))
		for _, p := range v.Pairs {
			cw.WriteI32(p.Match)
			cw.WriteI32(p.Offset)
		}

	case FieldInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU16(v.Index)

	case MethodInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU16(v.Index)

	case InterfaceMethodInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU16(v.Index)
		cw.WriteU8(v.Count)
		cw.WriteU8(0)

	case InvokeDynamicInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU16(v.Index)
		cw.WriteU16(0)

	case TypeInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU16(v.Index)

	case NewArrayInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU8(uint8(v.AType))

	case MultiANewArrayInsn:
		cw.WriteU8(uint8(v.Op))
		cw.WriteU16(v.Index)
		cw.WriteU8(v.Dimensions)
	}
}

// writeStackMapTableAttribute is the inverse of parseStackMapTableAttribute.
func writeStackMapTableAttribute(w *Writer, a StackMapTableAttribute) {
	w.WriteU16(uint16(len(a.Frames)))
	for _, f := range a.Frames {
		writeStackMapFrame(w, f)
	}
}

func writeStackMapFrame(w *Writer, frame StackMapFrame) {
	switch f := frame.(type) {
	case SameFrame:
		w.WriteU8(f.Type)
	case SameLocalsOneStackItemFrame:
		w.WriteU8(f.Type)
		writeVerificationType(w, f.Stack)
	case SameLocalsOneStackItemFrameExtended:
		w.WriteU8(247)
		w.WriteU16(f.OffsetDelta)
		writeVerificationType(w, f.Stack)
	case ChopFrame:
		w.WriteU8(f.Type)
		w.WriteU16(f.OffsetDelta)
	case SameFrameExtended:
		w.WriteU8(251)
		w.WriteU16(f.OffsetDelta)
	case AppendFrame:
		w.WriteU8(f.Type)
		w.WriteU16(f.OffsetDelta)
		for _, l := range f.Locals {
			writeVerificationType(w, l)
		}
	case FullFrame:
		w.WriteU8(255)
		w.WriteU16(f.OffsetDelta)
		w.WriteU16(uint16(len(f.Locals)))
		for _, l := range f.Locals {
			writeVerificationType(w, l)
		}
		w.WriteU16(uint16(len(f.Stack)))
		for _, s := range f.Stack {
			writeVerificationType(w, s)
		}
	}
}

func writeVerificationType(w *Writer, v VerificationType) {
	w.WriteU8(v.Tag())
	switch t := v.(type) {
	case ObjectVerificationType:
		w.WriteU16(t.ClassIndex)
	case UninitializedVerificationType:
		w.WriteU16(t.Offset)
	}
}
