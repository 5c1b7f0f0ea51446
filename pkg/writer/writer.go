package writer

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

// InstanceFormatter renders one instance line.
type InstanceFormatter = netlist.InstanceFormatter

// SubcktFormatter renders a subcircuit definition. body holds the already
// formatted instance lines of the subcircuit.
type SubcktFormatter interface {
	FormatSubckt(s *netlist.Subcircuit, body []string) string
}

// DirectiveFormatter renders a simulator directive.
type DirectiveFormatter interface {
	FormatDirective(d *netlist.Directive) string
}

// NetFormatter renders a net name.
type NetFormatter interface {
	FormatNet(n netlist.Net) string
}

// EndFormatter is implemented by dialects that close a netlist with a
// trailing statement.
type EndFormatter interface {
	FormatEnd() string
}

// Writer renders netlist entities in one dialect.
type Writer struct {
	dialect any
}

// New returns a writer for dialect. A nil dialect renders everything with
// the default stringification.
func New(dialect any) *Writer {
	return &Writer{dialect: dialect}
}

var dialects = map[string]func() any{
	"spectre": func() any { return Spectre{} },
	"spice":   func() any { return Spice{} },
}

// Dialects returns the names accepted by [ForDialect], sorted.
func Dialects() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ForDialect returns a writer for a built-in dialect name.
func ForDialect(name string) (*Writer, error) {
	mk, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unknown dialect %q (available: %s)", name, strings.Join(Dialects(), ", "))
	}
	return New(mk()), nil
}

// Format renders a single entity: an instance, subcircuit, directive, net
// or a whole circuit. Anything else is rendered with fmt.Sprint.
func (w *Writer) Format(x any) string {
	switch v := x.(type) {
	case *netlist.Instance:
		return w.instance(v)
	case *netlist.Subcircuit:
		return w.subckt(v)
	case *netlist.Directive:
		if f, ok := w.dialect.(DirectiveFormatter); ok {
			return f.FormatDirective(v)
		}
		return v.String()
	case netlist.Net:
		if f, ok := w.dialect.(NetFormatter); ok {
			return f.FormatNet(v)
		}
		return string(v)
	case *netlist.Circuit:
		return w.Writes(v)
	}
	return fmt.Sprint(x)
}

func (w *Writer) instance(inst *netlist.Instance) string {
	if inst.Formatter != nil {
		return inst.Formatter.FormatInstance(inst)
	}
	if f, ok := w.dialect.(InstanceFormatter); ok {
		return f.FormatInstance(inst)
	}
	return inst.String()
}

func (w *Writer) subckt(s *netlist.Subcircuit) string {
	f, ok := w.dialect.(SubcktFormatter)
	if !ok {
		return s.String()
	}
	return f.FormatSubckt(s, w.body(s.Instances))
}

func (w *Writer) body(insts []*netlist.Instance) []string {
	lab := newLabeler(insts)
	lines := make([]string, len(insts))
	for i, inst := range insts {
		lines[i] = w.instance(lab.label(inst))
	}
	return lines
}

// Writes renders a circuit as netlist text.
func (w *Writer) Writes(c *netlist.Circuit) string {
	var lines []string
	for _, d := range c.Directives() {
		lines = append(lines, w.Format(d))
	}
	for _, s := range c.Subckts() {
		lines = append(lines, w.subckt(s))
	}
	lines = append(lines, w.body(c.Instances())...)
	if f, ok := w.dialect.(EndFormatter); ok {
		lines = append(lines, f.FormatEnd())
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Write renders c to out.
func (w *Writer) Write(c *netlist.Circuit, out io.Writer) error {
	if _, err := io.WriteString(out, w.Writes(c)); err != nil {
		return fmt.Errorf("write netlist: %w", err)
	}
	return nil
}

// WriteFile renders c to the file at path.
func (w *Writer) WriteFile(c *netlist.Circuit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Write(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Cap returns the type prefix of inst: its Cap, or the upper-cased first
// letter of its name when unset.
func Cap(inst *netlist.Instance) string {
	if inst.Cap != "" {
		return inst.Cap
	}
	r, _ := utf8.DecodeRuneInString(inst.Name)
	if r == utf8.RuneError {
		return "U"
	}
	return string(unicode.ToUpper(r))
}

// Label returns the instance label as written: [Cap] followed by the UID.
func Label(inst *netlist.Instance) string {
	c := *inst
	c.Cap = Cap(inst)
	return c.Label()
}

// labeler hands out UIDs per type prefix within one scope.
type labeler struct {
	used map[string]map[int]bool
	next map[string]int
}

func newLabeler(insts []*netlist.Instance) *labeler {
	l := &labeler{used: map[string]map[int]bool{}, next: map[string]int{}}
	for _, inst := range insts {
		if inst.UID != nil {
			l.take(Cap(inst), *inst.UID)
		}
	}
	return l
}

func (l *labeler) take(prefix string, uid int) {
	if l.used[prefix] == nil {
		l.used[prefix] = map[int]bool{}
	}
	l.used[prefix][uid] = true
}

// label returns inst unchanged when it already has a UID, or a copy with
// the next free UID of its prefix.
func (l *labeler) label(inst *netlist.Instance) *netlist.Instance {
	if inst.UID != nil {
		return inst
	}
	prefix := Cap(inst)
	n := l.next[prefix]
	for l.used[prefix][n] {
		n++
	}
	l.take(prefix, n)
	l.next[prefix] = n + 1

	out := inst.Clone()
	out.Cap = prefix
	out.UID = &n
	return out
}
