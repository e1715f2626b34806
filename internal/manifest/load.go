package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"wrapgen/internal/diag"
)

// Find walks up from startDir looking for DefaultFileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates the manifest at path. The format follows the
// file extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Errorf(diag.CfgNotFound, path, "%v", err)
	}
	m, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		m.Path = abs
		m.Root = filepath.Dir(abs)
	}
	return m, nil
}

// Parse decodes data as TOML or YAML according to name's extension.
func Parse(name string, data []byte) (*Manifest, error) {
	var (
		m   Manifest
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		err = decodeTOML(name, data, &m)
	case ".yaml", ".yml":
		err = decodeYAML(name, data, &m)
	default:
		return nil, diag.Errorf(diag.CfgParseError, name, "unsupported manifest extension %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, err
	}
	m.Path = name
	m.normalize()
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeTOML(name string, data []byte, m *Manifest) error {
	meta, err := toml.Decode(string(data), m)
	if err != nil {
		return diag.Errorf(diag.CfgParseError, name, "failed to parse TOML: %v", err)
	}
	if !meta.IsDefined("package", "name") {
		return diag.Errorf(diag.CfgMissingField, name, "missing [package].name")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return diag.Errorf(diag.CfgParseError, name, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(name string, data []byte, m *Manifest) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		return diag.Errorf(diag.CfgParseError, name, "failed to parse YAML: %v", err)
	}
	return nil
}

// Validate checks the fields the generator relies on.
func (m *Manifest) Validate() error {
	if m.Package.Name == "" {
		return diag.Errorf(diag.CfgMissingField, m.Path, "missing [package].name")
	}
	if lvl := m.Generate.IndentLevel(); lvl < 1 || lvl > maxIndent {
		return diag.Errorf(diag.CfgBadIndent, m.Path, "[generate].indent must be within 1..%d, got %d", maxIndent, lvl)
	}
	for _, f := range m.Functions {
		if err := validateCallable(m.Path, "function", f.Name, f.Overloads); err != nil {
			return err
		}
		if err := validateTemplate(m.Path, f.Name, f.Template, f.Instantiations); err != nil {
			return err
		}
	}
	for _, c := range m.Classes {
		if c.Name == "" {
			return diag.Errorf(diag.CfgMissingField, m.Path, "class without a name")
		}
		if err := validateTemplate(m.Path, c.Name, c.Template, c.Instantiations); err != nil {
			return err
		}
		for _, mt := range c.Methods {
			if err := validateCallable(m.Path, "method of "+c.Name, mt.Name, mt.Overloads); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCallable(path, what, name string, overloads []Overload) error {
	if name == "" {
		return diag.Errorf(diag.CfgMissingField, path, "%s without a name", what)
	}
	if len(overloads) == 0 {
		return diag.Errorf(diag.CfgMissingField, name, "%s %q declares no overloads", what, name)
	}
	for i, ov := range overloads {
		seen := make(map[string]bool, len(ov.Args))
		for j, a := range ov.Args {
			if a.Name == "" || a.Type == "" {
				return diag.Errorf(diag.CfgBadArgument, name, "overload %d argument %d needs both name and type", i, j)
			}
			if seen[a.Name] {
				return diag.Errorf(diag.CfgBadArgument, name, "overload %d repeats parameter %q", i, a.Name)
			}
			seen[a.Name] = true
		}
	}
	return nil
}

func validateTemplate(path, name, placeholder string, insts []string) error {
	switch {
	case placeholder == "" && len(insts) > 0:
		return diag.Errorf(diag.CfgMissingField, name, "instantiations given without a template placeholder")
	case placeholder != "" && len(insts) == 0:
		return diag.Errorf(diag.CfgMissingField, name, "template %q has no instantiations", placeholder)
	}
	return nil
}
