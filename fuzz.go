// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Fuzz is the go-fuzz entry point: it reports 1 when data parses as a
// well-formed class file, 0 otherwise.
func Fuzz(data []byte) int {
	_, _, err := ParseBytes(data, nil)
	if err != nil {
		return 0
	}
	return 1
}
