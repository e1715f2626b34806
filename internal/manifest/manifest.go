// Package manifest loads the declaration manifest that drives wrapgen.
//
// A manifest lists already-parsed declarations (functions, classes, their
// overloads and template instantiations) plus generation settings. It is
// read from wrapgen.toml, or from any .toml/.yaml/.yml file given on the
// command line.
package manifest

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"wrapgen/internal/decl"
)

// DefaultFileName is the manifest looked up from the working directory.
const DefaultFileName = "wrapgen.toml"

const (
	defaultBackend = "cython"
	defaultIndent  = 2
	maxIndent      = 16
)

type Manifest struct {
	Path string `toml:"-" yaml:"-"`
	Root string `toml:"-" yaml:"-"`

	Package   PackageConfig  `toml:"package" yaml:"package"`
	Generate  GenerateConfig `toml:"generate" yaml:"generate"`
	Types     TypesConfig    `toml:"types" yaml:"types"`
	Functions []Function     `toml:"function" yaml:"function"`
	Classes   []Class        `toml:"class" yaml:"class"`
}

type PackageConfig struct {
	Name string `toml:"name" yaml:"name"`
}

type GenerateConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	Indent  *int   `toml:"indent" yaml:"indent"`
	Output  string `toml:"output" yaml:"output"`
	Cache   bool   `toml:"cache" yaml:"cache"`
	Jobs    int    `toml:"jobs" yaml:"jobs"`
}

type TypesConfig struct {
	Known []string `toml:"known" yaml:"known"`
}

// Function is a global function with its overloads. Template and
// Instantiations expand it once per concrete type.
type Function struct {
	Name           string     `toml:"name" yaml:"name"`
	Returns        string     `toml:"returns" yaml:"returns"`
	Template       string     `toml:"template" yaml:"template"`
	Instantiations []string   `toml:"instantiations" yaml:"instantiations"`
	Verbose        bool       `toml:"verbose" yaml:"verbose"`
	Overloads      []Overload `toml:"overload" yaml:"overload"`
}

// Class groups methods; a templated class is instantiated per concrete type.
type Class struct {
	Name           string   `toml:"name" yaml:"name"`
	Template       string   `toml:"template" yaml:"template"`
	Instantiations []string `toml:"instantiations" yaml:"instantiations"`
	Methods        []Method `toml:"method" yaml:"method"`
}

type Method struct {
	Name      string     `toml:"name" yaml:"name"`
	Returns   string     `toml:"returns" yaml:"returns"`
	Verbose   bool       `toml:"verbose" yaml:"verbose"`
	Overloads []Overload `toml:"overload" yaml:"overload"`
}

type Overload struct {
	Args []Arg `toml:"args" yaml:"args"`
}

type Arg struct {
	Name  string `toml:"name" yaml:"name"`
	Type  string `toml:"type" yaml:"type"`
	Const bool   `toml:"const" yaml:"const"`
	Ref   bool   `toml:"ref" yaml:"ref"`
	Ptr   bool   `toml:"ptr" yaml:"ptr"`
}

// Argument converts a into the overload model's argument.
func (a Arg) Argument() decl.Argument {
	return decl.Argument{
		Name:    a.Name,
		Type:    decl.ParseQualified(a.Type),
		IsConst: a.Const,
		IsRef:   a.Ref,
		IsPtr:   a.Ptr,
	}
}

// ArgumentList converts the overload's arguments in order.
func (o Overload) ArgumentList() decl.ArgumentList {
	out := make(decl.ArgumentList, len(o.Args))
	for i, a := range o.Args {
		out[i] = a.Argument()
	}
	return out
}

// ReturnType parses Returns; empty means void.
func (f Function) ReturnType() decl.Qualified { return decl.ParseQualified(f.Returns) }

func (m Method) ReturnType() decl.Qualified { return decl.ParseQualified(m.Returns) }

// IndentLevel returns the configured indentation depth.
func (g GenerateConfig) IndentLevel() int {
	if g.Indent == nil {
		return defaultIndent
	}
	return *g.Indent
}

func (m *Manifest) applyDefaults() {
	if strings.TrimSpace(m.Generate.Backend) == "" {
		m.Generate.Backend = defaultBackend
	}
	m.Generate.Backend = strings.ToLower(strings.TrimSpace(m.Generate.Backend))
}

// normalize rewrites identifiers to NFC so visually equal names compare equal.
func (m *Manifest) normalize() {
	m.Package.Name = nfc(m.Package.Name)
	for i := range m.Types.Known {
		m.Types.Known[i] = nfc(m.Types.Known[i])
	}
	for i := range m.Functions {
		f := &m.Functions[i]
		f.Name, f.Returns, f.Template = nfc(f.Name), nfc(f.Returns), nfc(f.Template)
		normalizeList(f.Instantiations)
		normalizeOverloads(f.Overloads)
	}
	for i := range m.Classes {
		c := &m.Classes[i]
		c.Name, c.Template = nfc(c.Name), nfc(c.Template)
		normalizeList(c.Instantiations)
		for j := range c.Methods {
			mt := &c.Methods[j]
			mt.Name, mt.Returns = nfc(mt.Name), nfc(mt.Returns)
			normalizeOverloads(mt.Overloads)
		}
	}
}

func normalizeOverloads(ovs []Overload) {
	for i := range ovs {
		for j := range ovs[i].Args {
			a := &ovs[i].Args[j]
			a.Name, a.Type = nfc(a.Name), nfc(a.Type)
		}
	}
}

func normalizeList(xs []string) {
	for i := range xs {
		xs[i] = nfc(xs[i])
	}
}

func nfc(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
