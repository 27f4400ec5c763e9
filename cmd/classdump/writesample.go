// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"

	classfile "github.com/saferwall/classfile"
)

var (
	writeSampleOut    string
	writeSampleModule string
)

var writeSampleCmd = &cobra.Command{
	Use:   "write-sample",
	Short: "Hand-build a minimal class file and write it to stdout or --out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := module.CheckPath(writeSampleModule); err != nil {
			return fmt.Errorf("invalid --module %q: %w", writeSampleModule, err)
		}
		data, err := buildSampleClass(writeSampleModule)
		if err != nil {
			return fmt.Errorf("building sample class: %w", err)
		}
		if writeSampleOut == "" || writeSampleOut == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(writeSampleOut, data, 0o644)
	},
}

func init() {
	writeSampleCmd.Flags().StringVar(&writeSampleOut, "out", "", "output path (default: stdout)")
	writeSampleCmd.Flags().StringVar(&writeSampleModule, "module", "example.com/sample",
		"module path used as the generated class's internal name, validated with golang.org/x/mod/module")
	rootCmd.AddCommand(writeSampleCmd)
}

// buildSampleClass constructs the smallest legal class file by hand: a
// public final class, named by thisName, extending java/lang/Object, with
// a single no-argument constructor whose Code attribute does nothing but
// invoke the superclass constructor and return.
func buildSampleClass(thisName string) ([]byte, error) {
	pool := classfile.NewPool()

	thisIdx, err := pool.PushClass(thisName)
	if err != nil {
		return nil, err
	}
	superIdx, err := pool.PushClass("java/lang/Object")
	if err != nil {
		return nil, err
	}

	initNameIdx, err := pool.PushUTF8("<init>")
	if err != nil {
		return nil, err
	}
	voidDescIdx, err := pool.PushUTF8("()V")
	if err != nil {
		return nil, err
	}
	if _, err := pool.PushUTF8("Code"); err != nil {
		return nil, err
	}
	nameAndTypeIdx, err := pool.Push(classfile.NameAndTypeItem{
		NameIndex: initNameIdx,
		DescIndex: voidDescIdx,
	})
	if err != nil {
		return nil, err
	}

	superCtorIdx, err := pool.Push(classfile.MethodRefItem{
		ClassIndex:       superIdx,
		NameAndTypeIndex: nameAndTypeIdx,
	})
	if err != nil {
		return nil, err
	}

	aload0 := classfile.SimpleInsn{}
	aload0.Op = classfile.OpAload0

	invokeCtor := classfile.MethodInsn{Index: superCtorIdx}
	invokeCtor.Op = classfile.OpInvokeSpecial

	ret := classfile.SimpleInsn{}
	ret.Op = classfile.OpReturn

	code := classfile.CodeAttribute{
		MaxStack:  1,
		MaxLocals: 1,
		Instructions: []classfile.Instruction{
			aload0,
			invokeCtor,
			ret,
		},
	}

	ctor := classfile.Method{
		AccessFlags: classfile.AccPublic,
		NameIndex:   initNameIdx,
		DescIndex:   voidDescIdx,
		Attributes:  []classfile.Attribute{code},
	}

	class := &classfile.Class{
		MinorVersion:    0,
		MajorVersion:    52,
		AccessFlags:     classfile.AccPublic | classfile.AccFinal | classfile.AccSuper,
		ThisClassIndex:  thisIdx,
		SuperClassIndex: superIdx,
		Methods:         []classfile.Method{ctor},
	}

	return classfile.WriteBytes(pool, class)
}
