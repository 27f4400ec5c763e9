// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/saferwall/classfile/internal/xlog"
)

// Options configures parsing.
type Options struct {
	// Fast skips decoding recognized attribute bodies into their
	// structured form; every attribute is kept as an UnknownAttribute
	// holding its raw bytes instead, while its declared length is still
	// required to be consumed exactly. Useful when the caller only
	// needs the constant pool and class/field/method shape, not nested
	// attribute content.
	Fast bool

	// MaxAttributeLength caps the declared attribute_length any single
	// attribute_info may claim; an attribute declaring more fails with
	// ErrLimitExceeded before its body is read, guarding against a
	// hostile length field driving unbounded allocation. Zero means
	// unlimited.
	MaxAttributeLength uint32

	// Logger receives diagnostic messages emitted while parsing. A nil
	// Logger disables logging.
	Logger xlog.Logger
}

func (o *Options) config() *parseConfig {
	if o == nil {
		return &parseConfig{helper: xlog.NewHelper(nil)}
	}
	return &parseConfig{
		helper:             xlog.NewHelper(o.Logger),
		fast:               o.Fast,
		maxAttributeLength: o.MaxAttributeLength,
	}
}

// Source is an open class file backed either by a memory-mapped file or by
// an in-memory byte slice. Parsing a Source does not copy its bytes;
// strings decoded from the constant pool are the only allocations made.
type Source struct {
	data mmap.MMap
	raw  []byte
	f    *os.File
	cfg  *parseConfig
}

// Open memory-maps the file at name read-only.
func Open(name string, opts *Options) (*Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Source{data: data, f: f, cfg: opts.config()}, nil
}

// OpenBytes wraps an in-memory buffer as a Source without mapping a file.
func OpenBytes(data []byte, opts *Options) (*Source, error) {
	return &Source{raw: data, cfg: opts.config()}, nil
}

// bytes returns the source's backing bytes, whichever form it holds.
func (s *Source) bytes() []byte {
	if s.data != nil {
		return s.data
	}
	return s.raw
}

// Close unmaps the source's memory mapping, if any, and closes its
// underlying file.
func (s *Source) Close() error {
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			return err
		}
	}
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}

// Parse parses the source's bytes into a constant pool and class.
func (s *Source) Parse() (*Pool, *Class, error) {
	s.cfg.helper.Infow("parsing class file", "bytes", len(s.bytes()))
	return parse(s.bytes(), s.cfg)
}

// Parse reads and parses a complete class file from r.
func Parse(r io.Reader, opts *Options) (*Pool, *Class, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return ParseBytes(data, opts)
}

// ParseBytes parses a complete class file already held in memory.
func ParseBytes(data []byte, opts *Options) (*Pool, *Class, error) {
	return parse(data, opts.config())
}
