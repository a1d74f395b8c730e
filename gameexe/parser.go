package gameexe

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	gameexeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n`},
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Key", Pattern: `#[A-Za-z_][A-Za-z0-9_.]*`},
		{Name: "String", Pattern: `"[^"\n]*"`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Punct", Pattern: `[=,:()\-]`},
	})

	gameexeParser = participle.MustBuild[document](
		participle.Lexer(gameexeLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
)

// document is the whole of a Gameexe.ini file.
type document struct {
	Entries []*entry `parser:"( @@ | Newline )*"`
}

// entry is one `#KEY=value,value` line.
type entry struct {
	Pos    lexer.Position `parser:""`
	Key    string         `parser:"@Key"`
	Values []*value       `parser:"( Punct? @@ )*"`
}

type value struct {
	Int *number `parser:"  @Int"`
	Str *text   `parser:"| @String"`
}

// number parses decimal integers. Gameexe zero-pads values, which
// participle's default integer capture would read as octal.
type number int

// Capture implements participle.Capture.
func (n *number) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("number capture requires value")
	}
	v, err := strconv.Atoi(values[0])
	if err != nil {
		return err
	}
	*n = number(v)
	return nil
}

// text strips the quotes from a Gameexe string. Gameexe strings have
// no escapes.
type text string

// Capture implements participle.Capture.
func (s *text) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string capture requires value")
	}
	*s = text(strings.Trim(values[0], `"`))
	return nil
}

func parse(name string, r io.Reader) (*document, error) {
	return gameexeParser.Parse(name, r)
}
