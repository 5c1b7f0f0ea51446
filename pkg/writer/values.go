package writer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/netweave/pkg/netlist"
)

var (
	bareWord     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	scaledNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?[A-Za-z]+$`)
)

// Value renders a parameter value. Identifiers and scaled numbers such as
// "100n" are written as is, other strings are quoted. Floats always carry a
// decimal point or exponent so they read back as floats.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if bareWord.MatchString(x) || scaledNumber.MatchString(x) {
			return x
		}
		return strconv.Quote(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = Value(e)
		}
		return "[ " + strings.Join(parts, " ") + " ]"
	}
	return fmt.Sprint(v)
}

// Params renders parameters as "key=value" pairs sorted by key, preceded by
// the key-only flags (nil values). Deleted entries are skipped.
func Params(p netlist.Params) []string {
	var flags, pairs []string
	for _, k := range p.Keys() {
		switch v := p[k]; v {
		case nil:
			flags = append(flags, k)
		case netlist.Deleted:
		default:
			pairs = append(pairs, k+"="+Value(v))
		}
	}
	return append(flags, pairs...)
}
