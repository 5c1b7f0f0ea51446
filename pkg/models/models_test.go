package models

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

const library = `
[[model]]
name = "nmos"
params = { vth = 0.45, tox = 4.1e-9, level = 54, binned = true }

[[model]]
name = "nmos_lvt"
base = "nmos"
params = { vth = 0.32, corner = "tt" }
unset = ["level"]
`

func TestRead(t *testing.T) {
	lib, err := Read(strings.NewReader(library))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	got, err := lib.Resolve("nmos_lvt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := netlist.Params{"vth": 0.32, "tox": 4.1e-9, "binned": true, "corner": "tt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	if _, ok := lib["nmos"].Params["level"].(int); !ok {
		t.Errorf("level decoded as %T, want int", lib["nmos"].Params["level"])
	}
}

func TestWriteRoundTrip(t *testing.T) {
	lib, err := Read(strings.NewReader(library))
	if err != nil {
		t.Fatal(err)
	}
	lib.Add(&netlist.Model{Name: "res", Params: netlist.Params{"r": 1.0}})

	var buf bytes.Buffer
	if err := Write(lib, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v\n%s", err, buf.String())
	}

	if len(got) != len(lib) {
		t.Fatalf("len = %d, want %d", len(got), len(lib))
	}
	for name, m := range lib {
		if !m.Equal(got[name]) {
			t.Errorf("model %s = %+v, want %+v", name, got[name], m)
		}
	}
	if _, ok := got["res"].Params["r"].(float64); !ok {
		t.Errorf("r decoded as %T, want float64", got["res"].Params["r"])
	}
}

func TestSaveLoad(t *testing.T) {
	lib := netlist.Library{}
	lib.Add(netlist.NewModel("d1", netlist.Params{"is": 1e-14, "n": 1.05}))
	path := filepath.Join(t.TempDir(), "models.toml")

	if err := Save(lib, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !lib["d1"].Equal(got["d1"]) {
		t.Errorf("Load() = %+v, want %+v", got["d1"], lib["d1"])
	}
}

func TestListParams(t *testing.T) {
	lib, err := Read(strings.NewReader("[[model]]\nname = \"bjt\"\nparams = { bins = [1, 2.5, \"ff\", [0, 3]] }\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []any{1, 2.5, "ff", []any{0, 3}}
	if diff := cmp.Diff(want, lib["bjt"].Params["bins"]); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := Write(lib, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(want, got["bjt"].Params["bins"]); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", "[[model]\nname=", errors.ErrCodeInvalidFormat},
		{"missing name", "[[model]]\nbase = \"x\"", errors.ErrCodeInvalidFormat},
		{"duplicate", "[[model]]\nname = \"a\"\n[[model]]\nname = \"a\"", errors.ErrCodeInvalidFormat},
		{"table param", "[[model]]\nname = \"a\"\nparams = { x = { y = 1 } }", errors.ErrCodeInvalidFormat},
		{"table in array param", "[[model]]\nname = \"a\"\nparams = { x = [{ y = 1 }] }", errors.ErrCodeInvalidFormat},
		{"set and unset", "[[model]]\nname = \"a\"\nparams = { x = 1 }\nunset = [\"x\"]", errors.ErrCodeInvalidFormat},
		{"cycle", "[[model]]\nname = \"a\"\nbase = \"b\"\n[[model]]\nname = \"b\"\nbase = \"a\"", errors.ErrCodeCyclicModel},
		{"unknown base", "[[model]]\nname = \"a\"\nbase = \"zz\"", errors.ErrCodeUnknownModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want %s", err, tt.code)
			}
		})
	}
}
