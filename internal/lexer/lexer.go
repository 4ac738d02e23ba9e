// Package lexer turns pyst source text into a token stream, tracking
// indentation the way an indentation-sensitive grammar requires.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/jm-research/pyst/pkg/token"
)

// StringError reports an unterminated quoted literal.
type StringError struct {
	Pos     token.Position
	Message string
}

func (e *StringError) Error() string {
	return e.Message
}

// Lexer scans a source string into a stream of tokens. It is
// non-restartable: once constructed over an input, NextToken is called
// repeatedly until it returns an EOF token.
type Lexer struct {
	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	ch           rune

	row    int
	col    int // 1-based column, reset on every line ending
	indent []int

	parenDepth     int // bracket-nesting counter
	atLineStart    bool
	pendingDedents int
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		row:         1,
		col:         0,
		indent:      []int{0},
		atLineStart: true,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.col++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekCharN(n int) rune {
	pos := l.readPosition
	var r rune
	for i := 0; i <= n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		var size int
		r, size = utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	return r
}

// advanceLine consumes one of \n, \r, \r\n as a single line terminator and
// resets column tracking.
func (l *Lexer) advanceLine() {
	if l.ch == '\r' && l.peekChar() == '\n' {
		l.readChar()
	}
	l.readChar()
	l.row++
	l.col = 0
	l.atLineStart = true
}

func isEOL(ch rune) bool {
	return ch == '\n' || ch == '\r'
}

func isLetter(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= utf8.RuneSelf
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) pos() token.Position {
	return token.Position{Row: l.row, Column: l.col}
}

// NextToken returns the next token in the stream. Callers must keep calling
// it until it returns an EOF-kind token.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.pendingDedents > 0 {
		l.pendingDedents--
		p := l.pos()
		return token.Token{Type: token.DEDENT, Start: p, End: p}, nil
	}

	if l.atLineStart && l.parenDepth == 0 {
		if tok, emit, err := l.scanLineStart(); emit || err != nil {
			return tok, err
		}
	}

	l.skipIntraLineWhitespace()

	start := l.pos()

	switch {
	case l.ch == 0:
		// End-of-input: unwind any remaining indentation.
		if len(l.indent) > 1 {
			l.indent = l.indent[:len(l.indent)-1]
			return token.Token{Type: token.DEDENT, Start: start, End: start}, nil
		}
		return token.Token{Type: token.EOF, Start: start, End: start}, nil
	case isEOL(l.ch):
		if l.parenDepth > 0 {
			l.advanceLine()
			return l.NextToken()
		}
		l.advanceLine()
		end := l.pos()
		return token.Token{Type: token.NEWLINE, Start: start, End: end}, nil
	case l.ch == '#':
		l.skipComment()
		return l.NextToken()
	case isLetter(l.ch):
		return l.scanIdent(start), nil
	case isDigit(l.ch):
		return l.scanNumber(start), nil
	case l.ch == '"' || l.ch == '\'':
		return l.scanString(start)
	default:
		return l.scanOperator(start)
	}
}

// scanLineStart handles indentation bookkeeping at the start of a logical
// line. It consumes blank and comment-only
// lines internally and returns emit=true only when it has produced an
// Indent/Dedent token; at EOF, or at a content line whose indentation is
// unchanged, it returns emit=false and the caller scans the next token
// normally.
func (l *Lexer) scanLineStart() (token.Token, bool, error) {
	for {
		col := 0
		for {
			switch l.ch {
			case ' ':
				col++
				l.readChar()
				continue
			case '\t':
				col += 8 - (col % 8)
				l.readChar()
				continue
			}
			break
		}

		// Blank line or comment-only line: skip without emitting indentation.
		if l.ch == '#' {
			l.skipComment()
		}
		if isEOL(l.ch) {
			l.advanceLine()
			continue
		}
		if l.ch == 0 {
			l.atLineStart = false
			return token.Token{}, false, nil
		}

		l.atLineStart = false
		top := l.indent[len(l.indent)-1]
		p := l.pos()
		if col > top {
			l.indent = append(l.indent, col)
			return token.Token{Type: token.INDENT, Start: p, End: p}, true, nil
		}
		if col < top {
			count := 0
			for len(l.indent) > 1 && l.indent[len(l.indent)-1] > col {
				l.indent = l.indent[:len(l.indent)-1]
				count++
			}
			if l.indent[len(l.indent)-1] != col {
				// Inconsistent dedent: abort.
				panic(&LexError{Pos: p, Message: "inconsistent dedent"})
			}
			l.pendingDedents = count - 1
			return token.Token{Type: token.DEDENT, Start: p, End: p}, true, nil
		}
		return token.Token{}, false, nil
	}
}

// LexError is a fatal lexical abort distinct from StringError.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string { return e.Message }

// skipIntraLineWhitespace skips spaces/tabs that are not leading indentation
// (i.e. mid-line or inside brackets).
func (l *Lexer) skipIntraLineWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || (l.parenDepth > 0 && isEOL(l.ch)) {
		if isEOL(l.ch) {
			l.advanceLine()
			l.atLineStart = false
			continue
		}
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != 0 && !isEOL(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) scanIdent(start token.Position) token.Token {
	startPos := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[startPos:l.position]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Start: start, End: l.pos()}
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	startPos := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else if l.ch == '.' {
		l.readChar()
	}
	lit := l.input[startPos:l.position]
	return token.Token{Type: token.NUMBER, Literal: lit, Start: start, End: l.pos()}
}

func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	quote := l.ch
	triple := l.peekChar() == quote && l.peekCharN(1) == quote
	l.readChar()
	if triple {
		l.readChar()
		l.readChar()
	}

	var sb strings.Builder
	for {
		if l.ch == 0 {
			return token.Token{}, &StringError{Pos: start, Message: "unterminated string literal"}
		}
		if l.ch == quote {
			if !triple {
				l.readChar()
				break
			}
			if l.peekChar() == quote && l.peekCharN(1) == quote {
				l.readChar()
				l.readChar()
				l.readChar()
				break
			}
		}
		if isEOL(l.ch) && !triple {
			return token.Token{}, &StringError{Pos: start, Message: "unterminated string literal"}
		}
		if l.ch == '\\' {
			l.readEscape(&sb)
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return token.Token{Type: token.STRING, Literal: sb.String(), Start: start, End: l.pos()}, nil
}

// readEscape resolves one backslash escape sequence.
func (l *Lexer) readEscape(sb *strings.Builder) {
	l.readChar() // consume backslash
	switch l.ch {
	case '\\':
		sb.WriteByte('\\')
		l.readChar()
	case '\'':
		sb.WriteByte('\'')
		l.readChar()
	case '"':
		sb.WriteByte('"')
		l.readChar()
	case 'n':
		sb.WriteByte('\n')
		l.readChar()
	case 'r':
		sb.WriteByte('\r')
		l.readChar()
	case 't':
		sb.WriteByte('\t')
		l.readChar()
	case 'a':
		sb.WriteByte(7)
		l.readChar()
	case 'b':
		sb.WriteByte(8)
		l.readChar()
	case 'f':
		sb.WriteByte(12)
		l.readChar()
	case 'v':
		sb.WriteByte(11)
		l.readChar()
	case '\n', '\r':
		l.advanceLine()
	case 0:
		// Dangling backslash at EOF; let the caller's EOF check report it.
	default:
		sb.WriteByte('\\')
		sb.WriteRune(l.ch)
		l.readChar()
	}
}

// operators lists the maximal-munch operator lexemes, longest first
// within each starting character so look-ahead always prefers the
// longer match.
var operators = []struct {
	lexeme string
	typ    token.Type
}{
	{"**=", token.DSTAR_EQ}, {"//=", token.DSLASH_EQ},
	{"<<=", token.LSHIFT_EQ}, {">>=", token.RSHIFT_EQ},
	{"**", token.DSTAR}, {"//", token.DSLASH},
	{"<<", token.LSHIFT}, {">>", token.RSHIFT}, {"->", token.ARROW},
	{"+=", token.PLUS_EQ}, {"-=", token.MINUS_EQ}, {"*=", token.STAR_EQ},
	{"/=", token.SLASH_EQ}, {"%=", token.PERCENT_EQ}, {"&=", token.AMP_EQ},
	{"|=", token.PIPE_EQ}, {"^=", token.CARET_EQ}, {"@=", token.AT_EQ},
	{"==", token.EQ}, {"!=", token.NOTEQ}, {"<=", token.LE}, {">=", token.GE},
	{"...", token.ELLIPSIS},
	{"+", token.PLUS}, {"-", token.MINUS}, {"*", token.STAR}, {"/", token.SLASH},
	{"%", token.PERCENT}, {"&", token.AMP}, {"|", token.PIPE}, {"^", token.CARET},
	{"~", token.TILDE}, {"=", token.ASSIGN}, {"<", token.LT}, {">", token.GT},
	{"@", token.AT},
	{"(", token.LPAREN}, {")", token.RPAREN}, {"[", token.LBRACK}, {"]", token.RBRACK},
	{"{", token.LBRACE}, {"}", token.RBRACE},
	{",", token.COMMA}, {":", token.COLON}, {".", token.DOT}, {";", token.SEMICOLON},
}

func (l *Lexer) scanOperator(start token.Position) (token.Token, error) {
	rest := l.input[l.position:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.lexeme) {
			for range op.lexeme {
				l.readChar()
			}
			switch op.typ {
			case token.LPAREN, token.LBRACK, token.LBRACE:
				l.parenDepth++
			case token.RPAREN, token.RBRACK, token.RBRACE:
				if l.parenDepth > 0 {
					l.parenDepth--
				}
			}
			return token.Token{Type: op.typ, Literal: op.lexeme, Start: start, End: l.pos()}, nil
		}
	}
	// Unsupported punctuation aborts.
	panic(&LexError{Pos: start, Message: "unsupported character " + string(l.ch)})
}
