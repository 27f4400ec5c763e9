// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// parseModuleAttribute parses the Module attribute (JVMS 4.7.25).
func parseModuleAttribute(r *Reader) (Attribute, error) {
	moduleNameIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	moduleFlags, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	moduleVersionIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}

	requires, err := parseModuleRequires(r)
	if err != nil {
		return nil, err
	}
	exports, err := parseModuleExportsOrOpens(r)
	if err != nil {
		return nil, err
	}
	opens, err := parseModuleExportsOrOpens(r)
	if err != nil {
		return nil, err
	}
	uses, err := parseU16List(r)
	if err != nil {
		return nil, err
	}
	provides, err := parseModuleProvides(r)
	if err != nil {
		return nil, err
	}

	return ModuleAttribute{
		ModuleNameIndex:    moduleNameIdx,
		ModuleFlags:        moduleFlags,
		ModuleVersionIndex: moduleVersionIdx,
		Requires:           requires,
		Exports:            exports,
		Opens:              opens,
		UsesIndices:        uses,
		Provides:           provides,
	}, nil
}

func parseModuleRequires(r *Reader) ([]ModuleRequire, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	out := make([]ModuleRequire, count)
	for i := range out {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		versionIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = ModuleRequire{RequiresIndex: idx, RequiresFlags: flags, RequiresVersionIndex: versionIdx}
	}
	return out, nil
}

func parseModuleExportsOrOpens(r *Reader) ([]ModuleExportsOrOpens, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	out := make([]ModuleExportsOrOpens, count)
	for i := range out {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		flags, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		to, err := parseU16List(r)
		if err != nil {
			return nil, err
		}
		out[i] = ModuleExportsOrOpens{Index: idx, Flags: flags, ToIndices: to}
	}
	return out, nil
}

func parseModuleProvides(r *Reader) ([]ModuleProvide, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	out := make([]ModuleProvide, count)
	for i := range out {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		with, err := parseU16List(r)
		if err != nil {
			return nil, err
		}
		out[i] = ModuleProvide{ProvidesIndex: idx, WithIndices: with}
	}
	return out, nil
}

// parseU16List parses a u2 count followed by that many u2 values, the shape
// shared by uses_index, exports_to_index, opens_to_index, and
// provides_with_index.
func parseU16List(r *Reader) ([]uint16, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]uint16, count)
	for i := range out {
		if out[i], err = r.ReadU16(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
