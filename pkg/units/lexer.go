package units

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// lengthLexer splits inputs such as "0.2mm", "8 mil" or "50mil x 25mil".
// Unit words never contain 'x', so "50milx25mil" still splits correctly.
var lengthLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Times", Pattern: `[xX×*]`},
	{Name: "Unit", Pattern: `[a-wyzA-WYZµ]+|"`},
})
