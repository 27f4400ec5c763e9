// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// parseCodeAttribute parses the Code attribute (JVMS 4.7.3).
func parseCodeAttribute(r *Reader, pool *Pool, cfg *parseConfig) (Attribute, error) {
	maxStack, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	codeLength, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	codeReader, err := r.Limit(codeLength)
	if err != nil {
		return nil, err
	}
	base := codeReader.Position()
	var instructions []Instruction
	for codeReader.Remaining() > 0 {
		insn, err := parseInstruction(codeReader, base)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, insn)
	}
	if err := codeReader.RemoveLimit(); err != nil {
		return nil, err
	}

	exceptionTable, err := parseExceptionTable(r)
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

	return CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Instructions:   instructions,
		CodeLength:     codeLength,
		ExceptionTable: exceptionTable,
		Attributes:     attrs,
	}, nil
}

func parseExceptionTable(r *Reader) ([]ExceptionTableEntry, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]ExceptionTableEntry, count)
	for i := range out {
		startPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		endPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		handlerPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		catchType, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = ExceptionTableEntry{
			StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchTypeIndex: catchType,
		}
	}
	return out, nil
}

// parseInstruction decodes one instruction from cr, whose cursor sits at
// the opcode byte. base is cr's position at the start of the code array, so
// that At and the switch padding are computed relative to it rather than to
// the absolute file offset. Branch offsets are kept exactly as read.
func parseInstruction(cr *Reader, base int) (Instruction, error) {
	at := cr.Position() - base
	opByte, err := cr.ReadU8()
	if err != nil {
		return nil, err
	}
	op := OpCode(opByte)
	b := baseInsn{At: at, Op: op}

	switch op {
	case OpNop, OpAconstNull,
		OpIconstM1, OpIconst0, OpIconst1, OpIconst2, OpIconst3, OpIconst4, OpIconst5,
		OpLconst0, OpLconst1, OpFconst0, OpFconst1, OpFconst2, OpDconst0, OpDconst1,
		OpIload0, OpIload1, OpIload2, OpIload3, OpLload0, OpLload1, OpLload2, OpLload3,
		OpFload0, OpFload1, OpFload2, OpFload3, OpDload0, OpDload1, OpDload2, OpDload3,
		OpAload0, OpAload1, OpAload2, OpAload3,
		OpIaload, OpLaload, OpFaload, OpDaload, OpAaload, OpBaload, OpCaload, OpSaload,
		OpIstore0, OpIstore1, OpIstore2, OpIstore3, OpLstore0, OpLstore1, OpLstore2, OpLstore3,
		OpFstore0, OpFstore1, OpFstore2, OpFstore3, OpDstore0, OpDstore1, OpDstore2, OpDstore3,
		OpAstore0, OpAstore1, OpAstore2, OpAstore3,
		OpIastore, OpLastore, OpFastore, OpDastore, OpAastore, OpBastore, OpCastore, OpSastore,
		OpPop, OpPop2, OpDup, OpDupX1, OpDupX2, OpDup2, OpDup2X1, OpDup2X2, OpSwap,
		OpIadd, OpLadd, OpFadd, OpDadd, OpIsub, OpLsub, OpFsub, OpDsub,
		OpImul, OpLmul, OpFmul, OpDmul, OpIdiv, OpLdiv, OpFdiv, OpDdiv,
		OpIrem, OpLrem, OpFrem, OpDrem, OpIneg, OpLneg, OpFneg, OpDneg,
		OpIshl, OpLshl, OpIshr, OpLshr, OpIushr, OpLushr,
		OpIand, OpLand, OpIor, OpLor, OpIxor, OpLxor,
		OpI2l, OpI2f, OpI2d, OpL2i, OpL2f, OpL2d, OpF2i, OpF2l, OpF2d, OpD2i, OpD2l, OpD2f,
		OpI2b, OpI2c, OpI2s,
		OpLcmp, OpFcmpl, OpFcmpg, OpDcmpl, OpDcmpg,
		OpIreturn, OpLreturn, OpFreturn, OpDreturn, OpAreturn, OpReturn,
		OpArrayLength, OpAthrow, OpMonitorEnter, OpMonitorExit:
		return SimpleInsn{b}, nil

	case OpBipush:
		v, err := cr.ReadI8()
		if err != nil {
			return nil, err
		}
		return PushConstInsn{b, int32(v)}, nil

	case OpSipush:
		v, err := cr.ReadI16()
		if err != nil {
			return nil, err
		}
		return PushConstInsn{b, int32(v)}, nil

	case OpLdc:
		idx, err := cr.ReadU8()
		if err != nil {
			return nil, err
		}
		return LoadConstantInsn{b, uint16(idx)}, nil

	case OpLdcW, OpLdc2W:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		return LoadConstantInsn{b, idx}, nil

	case OpIload, OpLload, OpFload, OpDload, OpAload,
		OpIstore, OpLstore, OpFstore, OpDstore, OpAstore, OpRet:
		idx, err := cr.ReadU8()
		if err != nil {
			return nil, err
		}
		return VarInsn{b, uint16(idx), false}, nil

	case OpIinc:
		idx, err := cr.ReadU8()
		if err != nil {
			return nil, err
		}
		val, err := cr.ReadI8()
		if err != nil {
			return nil, err
		}
		return IincInsn{b, uint16(idx), int16(val), false}, nil

	case OpWide:
		return parseWideInstruction(cr, at)

	case OpIfeq, OpIfne, OpIflt, OpIfge, OpIfgt, OpIfle,
		OpIfIcmpeq, OpIfIcmpne, OpIfIcmplt, OpIfIcmpge, OpIfIcmpgt, OpIfIcmple,
		OpIfAcmpeq, OpIfAcmpne, OpGoto, OpJsr, OpIfnull, OpIfnonnull:
		off, err := cr.ReadI16()
		if err != nil {
			return nil, err
		}
		return BranchInsn{b, int32(off), false}, nil

	case OpGotoW, OpJsrW:
		off, err := cr.ReadI32()
		if err != nil {
			return nil, err
		}
		return BranchInsn{b, off, true}, nil

	case OpTableSwitch:
		return parseTableSwitch(cr, b, base)

	case OpLookupSwitch:
		return parseLookupSwitch(cr, b, base)

	case OpGetStatic, OpPutStatic, OpGetField, OpPutField:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		return FieldInsn{b, idx}, nil

	case OpInvokeVirtual, OpInvokeSpecial, OpInvokeStatic:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		return MethodInsn{b, idx}, nil

	case OpInvokeInterface:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		count, err := cr.ReadU8()
		if err != nil {
			return nil, err
		}
		if err := cr.Skip(1); err != nil { // reserved, must be zero
			return nil, err
		}
		return InterfaceMethodInsn{b, idx, count}, nil

	case OpInvokeDynamic:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		if err := cr.Skip(2); err != nil { // reserved, must be zero
			return nil, err
		}
		return InvokeDynamicInsn{b, idx}, nil

	case OpNew, OpAnewArray, OpCheckCast, OpInstanceOf:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		return TypeInsn{b, idx}, nil

	case OpNewArray:
		atype, err := cr.ReadU8()
		if err != nil {
			return nil, err
		}
		if atype < ArrayBoolean || atype > ArrayLong {
			return nil, &InvalidInstructionError{OpCode: opByte, At: uint32(at)}
		}
		return NewArrayInsn{b, ArrayType(atype)}, nil

	case OpMultiANewArray:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		dims, err := cr.ReadU8()
		if err != nil {
			return nil, err
		}
		return MultiANewArrayInsn{b, idx, dims}, nil

	default:
		return nil, &InvalidInstructionError{OpCode: opByte, At: uint32(at)}
	}
}

// parseWideInstruction decodes the instruction following a 0xC4 wide
// prefix: either a widened local-variable opcode with a u2 index, or a
// widened iinc with a u2 index and an i16 constant.
func parseWideInstruction(cr *Reader, at int) (Instruction, error) {
	subByte, err := cr.ReadU8()
	if err != nil {
		return nil, err
	}
	sub := OpCode(subByte)
	switch sub {
	case OpIinc:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		val, err := cr.ReadI16()
		if err != nil {
			return nil, err
		}
		return IincInsn{baseInsn{At: at, Op: OpIinc}, idx, val, true}, nil
	case OpIload, OpLload, OpFload, OpDload, OpAload,
		OpIstore, OpLstore, OpFstore, OpDstore, OpAstore, OpRet:
		idx, err := cr.ReadU16()
		if err != nil {
			return nil, err
		}
		return VarInsn{baseInsn{At: at, Op: sub}, idx, true}, nil
	default:
		return nil, &InvalidInstructionError{OpCode: subByte, At: uint32(at)}
	}
}

// switchPadding returns the number of padding bytes following a
// tableswitch/lookupswitch opcode so that the first operand begins at a
// bytecode offset that is a multiple of 4, given opcodeEnd, the offset
// (relative to the start of the code array) immediately after the opcode
// byte.
func switchPadding(opcodeEnd int) int {
	return (4 - opcodeEnd%4) % 4
}

func parseTableSwitch(cr *Reader, b baseInsn, base int) (Instruction, error) {
	if err := cr.Skip(uint32(switchPadding(cr.Position() - base))); err != nil {
		return nil, err
	}
	def, err := cr.ReadI32()
	if err != nil {
		return nil, err
	}
	low, err := cr.ReadI32()
	if err != nil {
		return nil, err
	}
	high, err := cr.ReadI32()
	if err != nil {
		return nil, err
	}
	n := int64(high) - int64(low) + 1
	if n < 0 {
		return nil, &InvalidInstructionError{OpCode: uint8(b.Op), At: uint32(b.At)}
	}
	offsets := make([]int32, n)
	for i := range offsets {
		v, err := cr.ReadI32()
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	return TableSwitchInsn{b, def, low, high, offsets}, nil
}

func parseLookupSwitch(cr *Reader, b baseInsn, base int) (Instruction, error) {
	if err := cr.Skip(uint32(switchPadding(cr.Position() - base))); err != nil {
		return nil, err
	}
	def, err := cr.ReadI32()
	if err != nil {
		return nil, err
	}
	npairs, err := cr.ReadI32()
	if err != nil {
		return nil, err
	}
	if npairs < 0 {
		return nil, &InvalidInstructionError{OpCode: uint8(b.Op), At: uint32(b.At)}
	}
	pairs := make([]LookupPair, npairs)
	for i := range pairs {
		match, err := cr.ReadI32()
		if err != nil {
			return nil, err
		}
		offset, err := cr.ReadI32()
		if err != nil {
			return nil, err
		}
		pairs[i] = LookupPair{Match: match, Offset: offset}
	}
	return LookupSwitchInsn{b, def, pairs}, nil
}

// parseStackMapTableAttribute parses the StackMapTable attribute (JVMS
// 4.7.4).
func parseStackMapTableAttribute(r *Reader) (Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		f, err := parseStackMapFrame(r)
		if err != nil {
			return nil, err
		}
		frames[i] = f
	}
	return StackMapTableAttribute{Frames: frames}, nil
}

func parseStackMapFrame(r *Reader) (StackMapFrame, error) {
	frameType, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch {
	case frameType <= 63:
		return SameFrame{Type: frameType}, nil

	case frameType <= 127:
		stack, err := parseVerificationType(r)
		if err != nil {
			return nil, err
		}
		return SameLocalsOneStackItemFrame{Type: frameType, Stack: stack}, nil

	case frameType <= 246:
		return nil, &ReservedStackMapFrameError{Type: frameType}

	case frameType == 247:
		delta, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		stack, err := parseVerificationType(r)
		if err != nil {
			return nil, err
		}
		return SameLocalsOneStackItemFrameExtended{OffsetDelta: delta, Stack: stack}, nil

	case frameType <= 250:
		delta, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ChopFrame{Type: frameType, OffsetDelta: delta}, nil

	case frameType == 251:
		delta, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return SameFrameExtended{OffsetDelta: delta}, nil

	case frameType <= 254:
		delta, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		n := int(frameType) - 251
		locals := make([]VerificationType, n)
		for i := range locals {
			v, err := parseVerificationType(r)
			if err != nil {
				return nil, err
			}
			locals[i] = v
		}
		return AppendFrame{Type: frameType, OffsetDelta: delta, Locals: locals}, nil

	default: // 255
		delta, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		numLocals, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		locals := make([]VerificationType, numLocals)
		for i := range locals {
			v, err := parseVerificationType(r)
			if err != nil {
				return nil, err
			}
			locals[i] = v
		}
		numStack, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		stack := make([]VerificationType, numStack)
		for i := range stack {
			v, err := parseVerificationType(r)
			if err != nil {
				return nil, err
			}
			stack[i] = v
		}
		return FullFrame{OffsetDelta: delta, Locals: locals, Stack: stack}, nil
	}
}

func parseVerificationType(r *Reader) (VerificationType, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case VerifTop, VerifInteger, VerifFloat, VerifDouble, VerifLong, VerifNull, VerifUninitializedThis:
		return SimpleVerificationType{TagValue: tag}, nil
	case VerifObject:
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return ObjectVerificationType{ClassIndex: idx}, nil
	case VerifUninitialized:
		off, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		return UninitializedVerificationType{Offset: off}, nil
	default:
		return nil, &InvalidVerificationTypeError{Tag: tag}
	}
}
