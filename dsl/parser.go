package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	spiroLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:deg|rad|turn|px|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames = invertSymbols(spiroLexer.Symbols())
	newlineTT  = mustTokenType("Newline")
	lbraceTT   = mustTokenType("LBrace")
	rbraceTT   = mustTokenType("RBrace")
	symbolTT   = mustTokenType("Symbol")
	stringTT   = mustTokenType("String")
	identTT    = mustTokenType("Ident")
	numberTT   = mustTokenType("Number")
	colorTT    = mustTokenType("Color")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(spiroLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root of a .spiro description.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'spiro' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level entry of a document.
type Section struct {
	Meta    *MetaSection    `parser:"  @@"`
	Palette *PaletteSection `parser:"| @@"`
	Surface *SurfaceSection `parser:"| @@"`
	Draw    *DrawSection    `parser:"| @@"`
}

// Kind returns the section keyword.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Palette != nil:
		return "palette"
	case s.Surface != nil:
		return "surface"
	case s.Draw != nil:
		return s.Draw.Kind
	default:
		return "unknown"
	}
}

// MetaSection holds document metadata assignments.
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// PaletteSection declares named colors (`color Accent = #0F62FE`).
type PaletteSection struct {
	Block *Block `parser:"'palette' @@"`
}

// SurfaceSection sizes the drawing surface: `surface 600 600 { background: #fff }`.
type SurfaceSection struct {
	Args  []*Lexeme `parser:"'surface' @@*"`
	Block *Block    `parser:"@@?"`
}

// DrawSection is one drawing instruction: `chain`, `single`, `demo` or
// `rosette`, header arguments (`stroke Accent width 2`) and an optional body.
type DrawSection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Kind  string         `parser:"@( 'chain' | 'single' | 'demo' | 'rosette' )"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"@@?"`
}

// Block is a braced list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block.
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Command is a named instruction with loose arguments and an optional body,
// e.g. `layer sum { ... }` or `color Accent = #0F62FE`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// TextLiteral is a bare string statement.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value is the right-hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Object *InlineObject  `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue captures `[ ... ]`.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// InlineObject captures `{ key: value }`.
type InlineObject struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ Newline* ( (';' | Newline+) Newline* @@ Newline* )* )? Newline* '}'"`
}

// Expression keeps raw tokens, such as a data path `data.layers[0].r`, for
// the scene builder to evaluate.
type Expression struct {
	Parts []*Lexeme
}

// Parse implements participle.Parseable. It consumes tokens up to the end of
// the statement, keeping brackets and parentheses balanced. Two adjacent words
// outside brackets also end it, so `mode: sum stroke: red` holds two
// assignments.
func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	var (
		parts []*Lexeme
		depth nesting
		word  bool
	)
	for {
		tok := lex.Peek()
		if depth.endsExpression(tok) || (word && isWord(tok) && depth.top()) {
			break
		}
		word = isWord(tok)
		lexeme, err := consumeLexeme(lex)
		if err != nil {
			return err
		}
		depth.track(lexeme.Raw)
		parts = append(parts, lexeme)
	}
	if len(parts) == 0 {
		return participle.NextMatch
	}
	e.Parts = parts
	return nil
}

// String joins the raw tokens without separators.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	out := ""
	for _, p := range e.Parts {
		out += p.Raw
	}
	return out
}

// nesting tracks open parentheses and brackets inside an expression.
type nesting struct {
	paren, bracket int
}

func (n *nesting) track(raw string) {
	switch raw {
	case "(":
		n.paren++
	case ")":
		n.paren = max(n.paren-1, 0)
	case "[":
		n.bracket++
	case "]":
		n.bracket = max(n.bracket-1, 0)
	}
}

func (n nesting) top() bool { return n.paren == 0 && n.bracket == 0 }

func (n nesting) endsExpression(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	top := n.top()
	switch tok.Type {
	case newlineTT, lbraceTT, rbraceTT:
		return top
	case symbolTT:
		switch tok.Value {
		case ";", ",":
			return top
		case "]":
			return n.bracket == 0
		}
	}
	return false
}

func isWord(tok *lexer.Token) bool {
	switch tok.Type {
	case identTT, numberTT, stringTT, colorTT:
		return true
	}
	return false
}

// Lexeme is a single token captured as a command argument or expression part.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable so Lexeme can be used as a grammar atom.
// Arguments stop at the end of the line, at braces and at ';'.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok == nil || tok.EOF() {
		return participle.NextMatch
	}
	switch {
	case tok.Type == newlineTT, tok.Type == rbraceTT, tok.Type == lbraceTT:
		return participle.NextMatch
	case tok.Type == symbolTT && tok.Value == ";":
		return participle.NextMatch
	}
	lexeme, err := consumeLexeme(lex)
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse reads a .spiro document. filename is used in error positions only.
func Parse(filename string, r io.Reader) (*Document, error) {
	return documentParser.Parse(filename, r)
}

// ParseString parses a .spiro document held in memory.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

func consumeLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == stringTT {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return nil, err
		}
		val = unquoted
	}
	return &Lexeme{Type: name, Value: val, Raw: tok.Value, Pos: tok.Pos}, nil
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := spiroLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
