package reader

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

var parser = participle.MustBuild[netlistFile](
	participle.Lexer(spectreLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

var labelPattern = regexp.MustCompile(`^([A-Za-z_]+?)(\d+)$`)

// Read parses the netlist file at path.
func Read(path string) (*netlist.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read netlist: %w", err)
	}
	return parse(path, string(data))
}

// Reads parses netlist text.
func Reads(text string) (*netlist.Circuit, error) {
	return parse("", text)
}

// Parse parses a netlist from r. name is used in error positions.
func Parse(r io.Reader, name string) (*netlist.Circuit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read netlist: %w", err)
	}
	return parse(name, string(data))
}

func parse(name, text string) (*netlist.Circuit, error) {
	ast, err := parser.ParseString(name, text)
	if err != nil {
		return nil, syntaxError(err)
	}
	return build(ast)
}

// syntaxError converts a participle failure into a coded error.
func syntaxError(err error) error {
	var lexErr *lexer.Error
	if stderrors.As(err, &lexErr) {
		return errors.New(errors.ErrCodeUnexpectedChar, "%s", lexErr.Error())
	}
	var tokErr *participle.UnexpectedTokenError
	if stderrors.As(err, &tokErr) && tokErr.Unexpected.EOF() {
		return errors.New(errors.ErrCodeUnexpectedEOF, "%s: unexpected end of file", position(tokErr.Position()))
	}
	return errors.New(errors.ErrCodeUnexpectedToken, "%s", err.Error())
}

func position(pos lexer.Position) string {
	if pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

func build(ast *netlistFile) (*netlist.Circuit, error) {
	c := netlist.NewCircuit()
	for _, st := range ast.Statements {
		var err error
		switch {
		case st.Subckt != nil:
			var s *netlist.Subcircuit
			if s, err = buildSubckt(st.Subckt); err == nil {
				err = c.AddSubckt(s)
			}
		case st.Instance != nil:
			err = c.Add(buildInstance(st.Instance))
		case st.Directive != nil:
			err = c.Add(netlist.NewDirective(st.Directive.Name, buildParams(st.Directive.Params)))
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func buildSubckt(def *subcktDef) (*netlist.Subcircuit, error) {
	if def.End.Name != "" && def.End.Name != def.Name {
		return nil, errors.New(errors.ErrCodeUnexpectedToken,
			"%s: ends %s does not close subckt %s", position(def.End.Pos), def.End.Name, def.Name)
	}
	s := netlist.NewSubcircuit(def.Name, def.Ports, buildParams(def.Params))
	for _, inst := range def.Body {
		if err := s.Add(buildInstance(inst)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func buildInstance(st *instanceStmt) *netlist.Instance {
	inst := &netlist.Instance{
		Name:     st.Master,
		Ports:    netlist.Nets(st.Nodes...),
		Params:   buildParams(st.Params),
		Cap:      st.Label,
		Metadata: netlist.Metadata{},
	}
	if cap, uid, ok := splitLabel(st.Label); ok {
		inst.Cap = cap
		inst.UID = &uid
	}
	return inst
}

// splitLabel splits a label into a type prefix and a UID that print back as
// the same label. Leading zeros of the digit run stay in the prefix, so M01
// becomes M0 and 1.
func splitLabel(label string) (string, int, bool) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return "", 0, false
	}
	prefix, digits := m[1], m[2]
	if trimmed := strings.TrimLeft(digits, "0"); trimmed != digits {
		if trimmed == "" {
			trimmed = "0"
		}
		prefix += digits[:len(digits)-len(trimmed)]
		digits = trimmed
	}
	uid, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return prefix, uid, true
}

func buildParams(params []*param) netlist.Params {
	out := netlist.Params{}
	for _, p := range params {
		if p.Value == nil {
			out[p.Key] = nil
			continue
		}
		out[p.Key] = p.Value.convert()
	}
	return out
}

func (v *value) convert() any {
	switch {
	case v.Number != nil:
		return number(*v.Number)
	case v.String != nil:
		if s, err := strconv.Unquote(*v.String); err == nil {
			return s
		}
		return *v.String
	case v.Ident != nil:
		return *v.Ident
	}
	items := []any{}
	if v.List != nil {
		for _, item := range v.List.Items {
			items = append(items, item.convert())
		}
	}
	return items
}

// number returns an int or float64 for plain numbers and the literal text
// for scaled ones.
func number(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
