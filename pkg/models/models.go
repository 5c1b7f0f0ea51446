// Package models loads and stores model libraries as TOML.
//
// A library file lists models as an array of tables. A model may inherit
// from a base model, override its parameters and drop inherited ones with
// unset:
//
//	[[model]]
//	name = "nmos"
//	params = { vth = 0.45, tox = 4.1e-9, level = 54 }
//
//	[[model]]
//	name = "nmos_lvt"
//	base = "nmos"
//	params = { vth = 0.32 }
//	unset = ["level"]
//
// Unset keys become [netlist.Deleted] parameters, so resolution through
// [netlist.Library.Resolve] removes them from the effective parameter set.
package models

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

type libraryFile struct {
	Models []modelEntry `toml:"model"`
}

type modelEntry struct {
	Name   string         `toml:"name"`
	Base   string         `toml:"base,omitempty"`
	Params map[string]any `toml:"params,omitempty"`
	Unset  []string       `toml:"unset,omitempty"`
}

// Read decodes a TOML model library from r and checks that every model
// resolves. It fails with INVALID_FORMAT for malformed input, duplicate
// names or unsupported values, and with CYCLIC_MODEL or UNKNOWN_MODEL for
// broken inheritance.
func Read(r io.Reader) (netlist.Library, error) {
	var file libraryFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode model library")
	}

	lib := netlist.Library{}
	for i, e := range file.Models {
		m, err := e.model()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "model %d", i)
		}
		if _, dup := lib[m.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "model %q defined twice", m.Name)
		}
		lib.Add(m)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Load reads the TOML model library at path.
func Load(path string) (netlist.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes lib as TOML, models in name order. It is the inverse of
// [Read].
func Write(lib netlist.Library, w io.Writer) error {
	var file libraryFile
	for _, name := range lib.Names() {
		file.Models = append(file.Models, entryFor(lib[name]))
	}
	if err := toml.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Save writes lib to a TOML file at path.
func Save(lib netlist.Library, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(lib, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (e modelEntry) model() (*netlist.Model, error) {
	if e.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing name")
	}
	params := make(netlist.Params, len(e.Params)+len(e.Unset))
	for k, v := range e.Params {
		pv, ok := paramValue(v)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: parameter %q has unsupported type %T", e.Name, k, v)
		}
		params[k] = pv
	}
	for _, k := range e.Unset {
		if _, ok := params[k]; ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: parameter %q is both set and unset", e.Name, k)
		}
		params[k] = netlist.Deleted
	}
	return &netlist.Model{Name: e.Name, Base: e.Base, Params: params}, nil
}

// paramValue converts a decoded TOML value to a parameter value. Arrays
// become []any lists; tables and datetimes are rejected.
func paramValue(v any) (any, bool) {
	switch x := v.(type) {
	case int64:
		return int(x), true
	case float64, string, bool:
		return x, true
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			pv, ok := paramValue(e)
			if !ok {
				return nil, false
			}
			out[i] = pv
		}
		return out, true
	}
	return nil, false
}

func entryFor(m *netlist.Model) modelEntry {
	e := modelEntry{Name: m.Name, Base: m.Base, Params: map[string]any{}}
	for _, k := range m.Params.Keys() {
		v := m.Params[k]
		if v == nil || v == any(netlist.Deleted) {
			e.Unset = append(e.Unset, k)
			continue
		}
		e.Params[k] = v
	}
	return e
}
