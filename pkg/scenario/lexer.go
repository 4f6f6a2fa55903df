package scenario

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TextLexer defines the lexical structure of .fld scenario files.
// Keywords are plain identifiers matched by the grammar.
var TextLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # or // to end of line
	{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// Numbers
	{Name: "Float", Pattern: `[-+]?[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},

	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "Punct", Pattern: `[(),=:]`},
})
