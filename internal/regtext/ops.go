package regtext

import "github.com/joshuapare/regpath/pkg/types"

// Op is one edit parsed from a .reg file. Paths are as written in the file
// section headers, or relative to a base key after Rebase.
type Op interface {
	OpPath() string
	withPath(p string) Op
}

// OpCreateKey ensures a key exists (a [section] header).
type OpCreateKey struct {
	Path string
}

// OpDeleteKey removes a key and its subtree (a [-section] header).
type OpDeleteKey struct {
	Path string
}

// OpSetValue writes one value.
type OpSetValue struct {
	Path string
	Name string
	Type types.RegType
	Data []byte
}

// OpDeleteValue removes one value ("name"=-).
type OpDeleteValue struct {
	Path string
	Name string
}

func (o OpCreateKey) OpPath() string   { return o.Path }
func (o OpDeleteKey) OpPath() string   { return o.Path }
func (o OpSetValue) OpPath() string    { return o.Path }
func (o OpDeleteValue) OpPath() string { return o.Path }

func (o OpCreateKey) withPath(p string) Op   { o.Path = p; return o }
func (o OpDeleteKey) withPath(p string) Op   { o.Path = p; return o }
func (o OpSetValue) withPath(p string) Op    { o.Path = p; return o }
func (o OpDeleteValue) withPath(p string) Op { o.Path = p; return o }

// ParseOptions controls Parse.
type ParseOptions struct {
	// InputEncoding is UTF-8 (default), UTF-16LE or WINDOWS-1252. A byte
	// order mark in the data overrides it.
	InputEncoding string
}

// ExportOptions controls Export.
type ExportOptions struct {
	// OutputEncoding is UTF-8 (default), UTF-16LE (what regedit writes) or
	// WINDOWS-1252.
	OutputEncoding string
	// WithBOM prefixes the output with the encoding's byte order mark.
	WithBOM bool
}
