package reader

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// spectreLexer splits Spectre netlists into tokens. Newlines terminate
// statements; a trailing backslash continues a line.
var spectreLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `(?:[ \t]|\\\r?\n)+`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Keyword", Pattern: `(?:subckt|ends|parameters)\b`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?[A-Za-z]*`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.]*`},
	{Name: "Punct", Pattern: `[()=\[\]]`},
})
