// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command classdump reads a .class file and prints its constant pool and
// class structure, or writes a minimal hand-built class file to standard
// output. It is a thin CLI shell around the classfile library; all parsing
// and encoding logic lives there.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "classdump",
	Short: "Inspect and build JVM class files",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
