package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netweave/pkg/netlist"
)

// WriteCircuit encodes c as indented JSON in the form produced by
// [netlist.Circuit.ToJSON] and writes it to w.
func WriteCircuit(c *netlist.Circuit, w io.Writer) error {
	data, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent: %w", err)
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ReadCircuit decodes a circuit written by [WriteCircuit]. ReadCircuit does
// not close r.
func ReadCircuit(r io.Reader) (*netlist.Circuit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	c, err := netlist.CircuitFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return c, nil
}

// ExportCircuit writes c to a JSON file at path.
func ExportCircuit(c *netlist.Circuit, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteCircuit(c, w) })
}

var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// exportFile creates path, fills it with write and reports the first error,
// including a failed Close.
func exportFile(path string, write func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ImportCircuit reads a circuit from the JSON file at path.
func ImportCircuit(path string) (*netlist.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCircuit(f)
}
