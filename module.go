// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// ModuleRequire is one entry of a Module attribute's requires table (JVMS
// 4.7.25).
type ModuleRequire struct {
	RequiresIndex        uint16 // Module pool index
	RequiresFlags        uint16
	RequiresVersionIndex uint16 // 0 if no version
}

// ModuleExportsOrOpens is one entry of a Module attribute's exports or
// opens table; the two tables share this shape.
type ModuleExportsOrOpens struct {
	Index       uint16 // Package pool index
	Flags       uint16
	ToIndices   []uint16 // Module pool indices; empty means exported/opened unconditionally
}

// ModuleProvide is one entry of a Module attribute's provides table.
type ModuleProvide struct {
	ProvidesIndex     uint16 // Class pool index of the service interface
	WithIndices       []uint16 // Class pool indices of the provider implementations
}

// ModuleAttribute is the Module attribute of a module-info class (JVMS
// 4.7.25).
type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        uint16
	ModuleVersionIndex uint16 // 0 if absent

	Requires []ModuleRequire
	Exports  []ModuleExportsOrOpens
	Opens    []ModuleExportsOrOpens

	UsesIndices []uint16
	Provides    []ModuleProvide
}

func (ModuleAttribute) Name() string { return "Module" }
