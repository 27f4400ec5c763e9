// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// maxPoolLen is the largest legal value of Pool.Len(): the on-wire
// constant_pool_count field is a u16, and index 0 is reserved, so indices
// run through 0xFFFE at most.
const maxPoolLen = 0xFFFF

// Pool is a 1-indexed, ordered constant pool. Index 0 is always absent.
// Wide items (Long, Double) occupy two consecutive slots: the first holds
// the value, the second holds a widePlaceholder that Get refuses to
// resolve. The pool never reuses an index once assigned.
type Pool struct {
	slots []Item          // slots[i] holds the item at pool index i+1
	dedup map[any]uint16  // canonicalKey() -> first index holding that value
}

// PoolEntry is one (index, item) pair yielded by Pool.Iter.
type PoolEntry struct {
	Index uint16
	Item  Item
}

// NewPool returns an empty pool whose next free index is 1.
func NewPool() *Pool {
	return &Pool{dedup: make(map[any]uint16)}
}

// NewPoolWithCapacity returns an empty pool pre-sized for n entries.
func NewPoolWithCapacity(n int) *Pool {
	return &Pool{slots: make([]Item, 0, n), dedup: make(map[any]uint16, n)}
}

// Len returns the next free pool index, i.e. the value written on disk as
// constant_pool_count.
func (p *Pool) Len() uint16 {
	return uint16(len(p.slots)) + 1
}

// IsEmpty reports whether no items have been inserted.
func (p *Pool) IsEmpty() bool {
	return len(p.slots) == 0
}

// Get resolves index i to its item. i must be in [1, Len()-1] and must
// address an occupied, non-placeholder slot.
func (p *Pool) Get(i uint16) (Item, error) {
	if i == 0 || int(i) > len(p.slots) {
		return nil, &InvalidCPItemError{Index: i}
	}
	item := p.slots[i-1]
	if _, ok := item.(widePlaceholder); ok {
		return nil, &InvalidCPItemError{Index: i}
	}
	return item, nil
}

// GetUTF8 resolves i and verifies it is a UTF8Item.
func (p *Pool) GetUTF8(i uint16) (string, error) {
	item, err := p.Get(i)
	if err != nil {
		return "", err
	}
	u, ok := item.(UTF8Item)
	if !ok {
		return "", &InvalidCPItemError{Index: i}
	}
	return u.Value, nil
}

// GetClassName resolves i as a ClassItem and then resolves its name_index
// as a UTF8Item.
func (p *Pool) GetClassName(i uint16) (string, error) {
	item, err := p.Get(i)
	if err != nil {
		return "", err
	}
	c, ok := item.(ClassItem)
	if !ok {
		return "", &InvalidCPItemError{Index: i}
	}
	return p.GetUTF8(c.NameIndex)
}

// GetClassNameOpt is GetClassName, except index 0 is treated as an absent
// reference rather than an error (used for the super_class index, which may
// be 0 only for java/lang/Object).
func (p *Pool) GetClassNameOpt(i uint16) (string, error) {
	if i == 0 {
		return "", nil
	}
	return p.GetClassName(i)
}

// Push inserts item, returning the index of an existing equal item if one
// exists, or appending and returning the new index otherwise. Equality is
// by canonical value, with floating-point items compared by raw bit
// pattern. Fails with ErrCPTooLarge if appending would grow the pool to
// Len() > 0xFFFF.
func (p *Pool) Push(item Item) (uint16, error) {
	key := item.canonicalKey()
	if idx, ok := p.dedup[key]; ok {
		return idx, nil
	}
	idx, err := p.append(item)
	if err != nil {
		return 0, err
	}
	p.dedup[key] = idx
	return idx, nil
}

// PushDuplicate appends item unconditionally, without consulting or
// updating the deduplication table, so the returned index may collide in
// value with an earlier item. Used by the parser to preserve the exact
// index layout of a source class file that itself contained redundant
// entries.
func (p *Pool) PushDuplicate(item Item) (uint16, error) {
	return p.append(item)
}

func (p *Pool) append(item Item) (uint16, error) {
	needed := 1
	if item.isWide() {
		needed = 2
	}
	if int(p.Len())+needed > maxPoolLen {
		return 0, ErrCPTooLarge
	}
	idx := p.Len()
	p.slots = append(p.slots, item)
	if item.isWide() {
		p.slots = append(p.slots, widePlaceholder{})
	}
	return idx, nil
}

// PushUTF8 pushes a UTF8Item for s, deduplicating against any existing
// equal string.
func (p *Pool) PushUTF8(s string) (uint16, error) {
	return p.Push(UTF8Item{Value: s})
}

// PushClass pushes a UTF8Item for name followed by a ClassItem referencing
// it, deduplicating both.
func (p *Pool) PushClass(name string) (uint16, error) {
	nameIdx, err := p.PushUTF8(name)
	if err != nil {
		return 0, err
	}
	return p.Push(ClassItem{NameIndex: nameIdx})
}

// Iter returns every occupied, non-placeholder slot in ascending index
// order.
func (p *Pool) Iter() []PoolEntry {
	entries := make([]PoolEntry, 0, len(p.slots))
	for i, item := range p.slots {
		if _, ok := item.(widePlaceholder); ok {
			continue
		}
		entries = append(entries, PoolEntry{Index: uint16(i + 1), Item: item})
	}
	return entries
}

// IndexOfUTF8 returns the pool index already holding UTF8Item{Value: s},
// if one exists. The writer uses this to resolve an Attribute's Name back
// to the attribute_name_index it must have been parsed from, or that the
// caller must have interned with PushUTF8 before building a Class by hand.
func (p *Pool) IndexOfUTF8(s string) (uint16, bool) {
	if idx, ok := p.dedup[UTF8Item{Value: s}]; ok {
		return idx, true
	}
	// Items added with PushDuplicate (as the parser does) are not in the
	// dedup table, so fall back to a scan in index order.
	for i, item := range p.slots {
		if u, ok := item.(UTF8Item); ok && u.Value == s {
			return uint16(i + 1), true
		}
	}
	return 0, false
}
