package netlist

import (
	"slices"
	"testing"

	"github.com/matzehuels/netweave/pkg/errors"
)

func TestComponentNewArity(t *testing.T) {
	r := NewComponent("r", []string{"a", "b"}, Params{})

	tests := []struct {
		name    string
		nodes   []Net
		wantErr bool
	}{
		{"too few", Nets("x"), true},
		{"too many", Nets("x", "y", "z"), true},
		{"exact", Nets("x", "y"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := r.New(tt.nodes)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeNodes) {
					t.Errorf("New() error = %v, want NODES", err)
				}
				if inst != nil {
					t.Errorf("New() = %v, want nil", inst)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !slices.Equal(inst.Ports, tt.nodes) {
				t.Errorf("Ports = %v, want %v", inst.Ports, tt.nodes)
			}
		})
	}
}

func TestComponentNewNamed(t *testing.T) {
	nmos := NewComponent("nmos", []string{"d", "g", "s"}, nil)

	inst, err := nmos.NewNamed(map[string]Net{"s": "gnd", "d": "out", "g": "in"})
	if err != nil {
		t.Fatalf("NewNamed() error = %v", err)
	}
	if want := Nets("out", "in", "gnd"); !slices.Equal(inst.Ports, want) {
		t.Errorf("Ports = %v, want %v", inst.Ports, want)
	}

	tests := []struct {
		name  string
		nodes map[string]Net
	}{
		{"missing", map[string]Net{"d": "out", "g": "in"}},
		{"unknown", map[string]Net{"d": "out", "g": "in", "s": "gnd", "b": "gnd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := nmos.NewNamed(tt.nodes); !errors.Is(err, errors.ErrCodeNodes) {
				t.Errorf("NewNamed() error = %v, want NODES", err)
			}
		})
	}
}

func TestComponentParamLayering(t *testing.T) {
	c := &Component{
		Ports:    []string{"p", "n"},
		Defaults: Params{"r": 100, "tc": 0.1},
		Model:    NewModel("rpoly", Params{"r": 50, "rsh": 7.5}),
	}

	tests := []struct {
		name string
		opts []Option
		want Params
	}{
		{
			name: "layered",
			want: Params{"r": 100, "tc": 0.1, "rsh": 7.5},
		},
		{
			name: "override wins",
			opts: []Option{WithParams(Params{"r": 1})},
			want: Params{"r": 1, "tc": 0.1, "rsh": 7.5},
		},
		{
			name: "force",
			opts: []Option{WithParams(Params{"r": 1}), Force()},
			want: Params{"r": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := c.New(Nets("a", "b"), tt.opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !inst.Params.Equal(tt.want) {
				t.Errorf("Params = %v, want %v", inst.Params, tt.want)
			}
			if inst.Name != "rpoly" {
				t.Errorf("Name = %q, want model name %q", inst.Name, "rpoly")
			}
		})
	}
}

func TestComponentNewOptions(t *testing.T) {
	c := &Component{Name: "cap", Ports: []string{"p", "n"}, Cap: "C"}

	inst, err := c.New(Nets("a", "b"),
		WithCtx("filter"), WithUID(7), WithMetadata(Metadata{"origin": "test"}), WithCap("CC"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if inst.Context != "filter" || inst.Cap != "CC" || inst.UID == nil || *inst.UID != 7 {
		t.Errorf("got context=%q cap=%q uid=%v", inst.Context, inst.Cap, inst.UID)
	}
	if inst.Metadata["origin"] != "test" {
		t.Errorf("Metadata = %v", inst.Metadata)
	}

	plain, _ := c.New(Nets("a", "b"))
	if plain.UID != nil {
		t.Errorf("UID = %v, want unset", *plain.UID)
	}
	if plain.Cap != "C" {
		t.Errorf("Cap = %q, want %q", plain.Cap, "C")
	}
}

func TestComponentNewDoesNotAlias(t *testing.T) {
	c := NewComponent("r", []string{"p", "n"}, Params{"r": 1})
	nodes := Nets("a", "b")
	inst, _ := c.New(nodes)

	nodes[0] = "changed"
	inst.Params["r"] = 2

	if inst.Ports[0] != "a" {
		t.Errorf("instance ports alias caller slice")
	}
	if c.Defaults["r"] != 1 {
		t.Errorf("instance params alias component defaults")
	}
}

func TestComponentOnDerivedModel(t *testing.T) {
	lib := Library{}
	lib.Add(&Model{Name: "nmos", Params: Params{"vth": 0.4, "tox": 2e-9, "level": 54}})
	lib.Add(&Model{Name: "nmos_lvt", Base: "nmos", Params: Params{"vth": 0.3, "level": Deleted}})

	comp := &Component{
		Name:     "nmos",
		Ports:    []string{"d", "g", "s"},
		Defaults: Params{"w": 1e-6},
		Model:    lib["nmos_lvt"],
		Library:  lib,
	}
	inst, err := comp.New(Nets("a", "b", "0"), WithParams(Params{"w": 2e-6}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := Params{"vth": 0.3, "tox": 2e-9, "w": 2e-6}
	if !inst.Params.Equal(want) {
		t.Errorf("Params = %v, want %v", inst.Params, want)
	}

	detached := &Model{Name: "nmos_fast", Base: "nmos_lvt", Params: Params{"tox": 1.8e-9}}
	comp = &Component{Name: "nmos", Ports: []string{"d", "g", "s"}, Model: detached, Library: lib}
	inst, err = comp.New(Nets("a", "b", "0"))
	if err != nil {
		t.Fatalf("New(detached model) error = %v", err)
	}
	if want := (Params{"vth": 0.3, "tox": 1.8e-9}); !inst.Params.Equal(want) {
		t.Errorf("Params = %v, want %v", inst.Params, want)
	}
	if c := comp.Clone(); c.Library == nil {
		t.Error("Clone() dropped the library")
	}
}

func TestComponentModelResolutionErrors(t *testing.T) {
	lib := Library{
		"a": {Name: "a", Base: "b"},
		"b": {Name: "b", Base: "a"},
	}
	tests := []struct {
		name  string
		model *Model
		lib   Library
		code  errors.Code
	}{
		{"no library", &Model{Name: "fast", Base: "nmos"}, nil, errors.ErrCodeUnknownModel},
		{"unknown base", &Model{Name: "fast", Base: "nmos"}, lib, errors.ErrCodeUnknownModel},
		{"cyclic base", &Model{Name: "fast", Base: "a"}, lib, errors.ErrCodeCyclicModel},
		{"inherits itself", &Model{Name: "y", Base: "x"}, Library{"x": {Name: "x", Base: "y"}, "y": {Name: "y", Base: "x"}}, errors.ErrCodeCyclicModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := &Component{Name: "m", Ports: []string{"p"}, Model: tt.model, Library: tt.lib}
			if _, err := comp.New(Nets("n")); !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
			if _, err := PrototypesOf(comp); !errors.Is(err, tt.code) {
				t.Errorf("PrototypesOf() error = %v, want %s", err, tt.code)
			}
			if got := comp.Prototypes(); got != nil {
				t.Errorf("Prototypes() = %v, want nil", got)
			}
			if _, err := comp.New(Nets("n"), Force()); err != nil {
				t.Errorf("New(Force) error = %v", err)
			}
		})
	}
}
