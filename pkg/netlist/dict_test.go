package netlist

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/netweave/pkg/errors"
)

func sampleCircuit(t *testing.T) *Circuit {
	t.Helper()
	inv := inverter(t)
	inv.Fix()

	c := NewCircuit()
	u, err := inv.Inst(Nets("in", "out", "vdd", "0"), WithUID(3), WithParams(Params{"wn": 2.0}))
	if err != nil {
		t.Fatal(err)
	}
	r := NewComponent("res", []string{"p", "n"}, Params{"r": 1000, "tc1": 1.5e-3, "flag": true})
	r1, _ := r.New(Nets("out", "0"),
		WithParams(Params{"coeffs": []any{1, 2.5, "x", []any{0, 1.0}}}),
		WithMetadata(Metadata{"line": 12, "tags": []any{"a", "b"}}))
	if err := c.Add(RawDirective("global 0 vdd"), u, r1, NewDirective("tran", Params{"stop": "100n", "save": nil})); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDictRoundTrip(t *testing.T) {
	c := sampleCircuit(t)
	inv, _ := c.Subckt("inv")
	model := &Model{Name: "nlvt", Base: "nmos", Params: Params{"vth": 0.3, "level": Deleted}}
	comp := &Component{Name: "nmos", Ports: []string{"d", "g", "s", "b"}, Defaults: Params{"w": 1.0}, Model: model, Cap: "M", Metadata: Metadata{}}

	t.Run("instance", func(t *testing.T) {
		x := c.Instances()[1]
		got, err := InstanceFromDict(x.ToDict())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(x, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("component", func(t *testing.T) {
		got, err := ComponentFromDict(comp.ToDict())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(comp, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("model", func(t *testing.T) {
		got, err := ModelFromDict(model.ToDict())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(model, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("subckt", func(t *testing.T) {
		got, err := SubcircuitFromDict(inv.ToDict())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(inv, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
		if !got.Fixed() {
			t.Error("fixed state lost")
		}
	})
	t.Run("directive", func(t *testing.T) {
		for _, d := range c.Directives() {
			got, err := DirectiveFromDict(d.ToDict())
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		}
	})
	t.Run("circuit", func(t *testing.T) {
		got, err := CircuitFromDict(c.ToDict())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestJSONRoundTrip(t *testing.T) {
	c := sampleCircuit(t)

	data, err := c.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	got, err := CircuitFromJSON(data)
	if err != nil {
		t.Fatalf("CircuitFromJSON() error = %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	inst := got.Instances()[0]
	if _, ok := inst.Params["wn"].(float64); !ok {
		t.Errorf("wn decoded as %T, want float64", inst.Params["wn"])
	}
	res := got.Instances()[1]
	if _, ok := res.Params["r"].(int); !ok {
		t.Errorf("r decoded as %T, want int", res.Params["r"])
	}
	coeffs, ok := res.Params["coeffs"].([]any)
	if !ok || len(coeffs) != 4 {
		t.Fatalf("coeffs decoded as %#v", res.Params["coeffs"])
	}
	if _, ok := coeffs[0].(int); !ok {
		t.Errorf("coeffs[0] decoded as %T, want int", coeffs[0])
	}
	if inner, ok := coeffs[3].([]any); !ok || len(inner) != 2 {
		t.Errorf("nested list decoded as %#v", coeffs[3])
	} else if _, ok := inner[1].(float64); !ok {
		t.Errorf("nested 1.0 decoded as %T, want float64", inner[1])
	}

	m := &Model{Name: "m", Params: Params{"x": Deleted, "y": 2.0}}
	mdata, err := m.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mdata), `"x":null`) || !strings.Contains(string(mdata), `"y":2.0`) {
		t.Errorf("ToJSON() = %s", mdata)
	}
	mgot, err := ModelFromJSON(mdata)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(mgot) {
		t.Errorf("ModelFromJSON() = %+v, want %+v", mgot, m)
	}
}

func TestFromDictErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"instance without name", func() error {
			_, err := InstanceFromDict(Dict{"ports": []any{"a"}})
			return err
		}},
		{"instance bad port", func() error {
			_, err := InstanceFromDict(Dict{"name": "r", "ports": []any{1}})
			return err
		}},
		{"instance float uid", func() error {
			_, err := InstanceFromDict(Dict{"name": "r", "ports": []any{}, "uid": 1.5})
			return err
		}},
		{"directive with raw and name", func() error {
			_, err := DirectiveFromDict(Dict{"raw": "x", "name": "y"})
			return err
		}},
		{"directive with neither", func() error {
			_, err := DirectiveFromDict(Dict{})
			return err
		}},
		{"params with object", func() error {
			_, err := InstanceFromDict(Dict{"name": "r", "ports": []any{}, "params": map[string]any{"x": map[string]any{"y": 1}}})
			return err
		}},
		{"params list with null", func() error {
			_, err := InstanceFromDict(Dict{"name": "r", "ports": []any{}, "params": map[string]any{"x": []any{1, nil}}})
			return err
		}},
		{"params list with object", func() error {
			_, err := InstanceFromDict(Dict{"name": "r", "ports": []any{}, "params": map[string]any{"x": []any{map[string]any{}}}})
			return err
		}},
		{"malformed json", func() error {
			_, err := CircuitFromJSON([]byte(`{"instances": [`))
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}

	dup := Dict{"subckts": []any{
		NewSubcircuit("a", nil, nil).ToDict(),
		NewSubcircuit("a", nil, nil).ToDict(),
	}}
	if _, err := CircuitFromDict(dup); !errors.Is(err, errors.ErrCodeSubcktConflict) {
		t.Errorf("CircuitFromDict() error = %v, want SUBCKT_CONFLICT", err)
	}
}
