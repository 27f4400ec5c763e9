// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	classfile "github.com/saferwall/classfile"
)

var (
	dumpPool  bool
	dumpCode  bool
	dumpAttrs bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump [path]",
	Short: "Print the constant pool and class tree of a .class file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := classfile.Open(args[0], &classfile.Options{})
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer src.Close()

		pool, class, err := src.Parse()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		// With no flags given, dump everything.
		all := !dumpPool && !dumpCode && !dumpAttrs

		if all || dumpPool {
			dumpPoolTable(pool)
		}
		if all || dumpAttrs {
			dumpClassHeader(pool, class)
		}
		if all || dumpCode {
			dumpCodeAttributes(class)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpPool, "pool", false, "dump the constant pool")
	dumpCmd.Flags().BoolVar(&dumpCode, "code", false, "dump every method's Code attribute")
	dumpCmd.Flags().BoolVar(&dumpAttrs, "attrs", false, "dump the class header and top-level attributes")
	rootCmd.AddCommand(dumpCmd)
}

func dumpPoolTable(pool *classfile.Pool) {
	fmt.Printf("constant pool (%d entries):\n", pool.Len()-1)
	for _, e := range pool.Iter() {
		fmt.Printf("  #%-5d %T %+v\n", e.Index, e.Item, e.Item)
	}
}

func dumpClassHeader(pool *classfile.Pool, class *classfile.Class) {
	name, _ := pool.GetClassName(class.ThisClassIndex)
	super, _ := pool.GetClassNameOpt(class.SuperClassIndex)
	fmt.Printf("class %s extends %s (version %d.%d, flags 0x%04x)\n",
		name, super, class.MajorVersion, class.MinorVersion, class.AccessFlags)
	for _, f := range class.Fields {
		fname, _ := pool.GetUTF8(f.NameIndex)
		fdesc, _ := pool.GetUTF8(f.DescIndex)
		fmt.Printf("  field %s %s (flags 0x%04x)\n", fdesc, fname, f.AccessFlags)
	}
	for _, m := range class.Methods {
		mname, _ := pool.GetUTF8(m.NameIndex)
		mdesc, _ := pool.GetUTF8(m.DescIndex)
		fmt.Printf("  method %s%s (flags 0x%04x)\n", mname, mdesc, m.AccessFlags)
	}
	for _, a := range class.Attributes {
		fmt.Printf("  attribute %s\n", a.Name())
	}
}

func dumpCodeAttributes(class *classfile.Class) {
	for _, m := range class.Methods {
		for _, a := range m.Attributes {
			code, ok := a.(classfile.CodeAttribute)
			if !ok {
				continue
			}
			fmt.Printf("Code: max_stack=%d max_locals=%d\n", code.MaxStack, code.MaxLocals)
			for _, insn := range code.Instructions {
				fmt.Printf("  %4d: %T\n", insn.Offset(), insn)
			}
		}
	}
}
