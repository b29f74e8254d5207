// Package parser implements a recursive-descent parser for JSON documents
// (RFC 8259). The parser builds an order-preserving value tree and fails
// fast on the first grammar violation, reporting the exact byte offset.
package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jsontree-cli/jsontree/internal/errors"
	"github.com/jsontree-cli/jsontree/internal/value"
)

// parser holds the state of a single parse. The cursor only moves forward;
// every successful sub-parse leaves it positioned just past the consumed
// lexeme.
type parser struct {
	data []byte
	pos  int
}

// Parse converts a JSON document into a value tree. It fails with a
// *errors.SyntaxError when the input is malformed, or with a
// *errors.TrailingContentError when non-whitespace content remains after a
// complete value has been parsed.
func Parse(text string) (*value.Value, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(data []byte) (*value.Value, error) {
	p := &parser{data: data}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if !p.done() {
		return nil, &errors.TrailingContentError{Offset: p.pos}
	}
	return v, nil
}

// ParseReader reads the full input and parses it as a single JSON document.
func ParseReader(r io.Reader) (*value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseFile parses a JSON document from a file path.
func ParseFile(filePath string) (*value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(data)
}

// syntaxErrorf creates a syntax error at the current cursor offset.
func (p *parser) syntaxErrorf(format string, args ...any) error {
	return &errors.SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// parseValue dispatches on one lookahead character after skipping
// whitespace. There is no backtracking: the first character decides the
// production unambiguously.
func (p *parser) parseValue() (*value.Value, error) {
	p.skipWhitespace()
	if p.done() {
		return nil, p.syntaxErrorf("unexpected end of input, expected a value")
	}
	switch c := p.data[p.pos]; {
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return value.NewString(s), nil
	case c == '{':
		return p.parseMapping()
	case c == '[':
		return p.parseSequence()
	case c == 't' || c == 'f':
		return p.parseBoolean()
	case c == 'n':
		return p.parseNull()
	case c == '-' || isDigit(c):
		return p.parseNumber()
	default:
		return nil, p.syntaxErrorf("unexpected character %q when parsing value", c)
	}
}

// parseString parses a double-quoted string literal with escapes. The
// cursor must be on the opening quote.
func (p *parser) parseString() (string, error) {
	p.advance(1) // opening quote

	var b strings.Builder
	for !p.done() {
		c := p.data[p.pos]
		switch {
		case c == '"':
			p.advance(1)
			return b.String(), nil
		case c == '\\':
			p.advance(1)
			if p.done() {
				return "", p.syntaxErrorf("incomplete escape sequence")
			}
			esc := p.data[p.pos]
			switch esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
				p.advance(1)
			case 'b':
				b.WriteByte('\b')
				p.advance(1)
			case 'f':
				b.WriteByte('\f')
				p.advance(1)
			case 'n':
				b.WriteByte('\n')
				p.advance(1)
			case 'r':
				b.WriteByte('\r')
				p.advance(1)
			case 't':
				b.WriteByte('\t')
				p.advance(1)
			case 'u':
				p.advance(1)
				if err := p.parseUnicodeEscape(&b); err != nil {
					return "", err
				}
			default:
				return "", p.syntaxErrorf("invalid escape character '\\%c'", esc)
			}
		case c < 0x20:
			return "", p.syntaxErrorf("control character 0x%02x in string literal", c)
		default:
			b.WriteByte(c)
			p.advance(1)
		}
	}
	return "", p.syntaxErrorf("unterminated string literal")
}

// parseUnicodeEscape decodes the 4 hex digits of a \uXXXX escape as a
// UTF-16 code unit. A high surrogate followed by an escaped low surrogate
// is combined into one code point; unpaired surrogates become U+FFFD.
func (p *parser) parseUnicodeEscape(b *strings.Builder) error {
	r, err := p.parseHex4()
	if err != nil {
		return err
	}
	if !utf16.IsSurrogate(r) {
		b.WriteRune(r)
		return nil
	}
	if p.peekString(`\u`) {
		p.advance(2)
		r2, err := p.parseHex4()
		if err != nil {
			return err
		}
		if combined := utf16.DecodeRune(r, r2); combined != utf8.RuneError {
			b.WriteRune(combined)
			return nil
		}
		// Not a valid pair: each unit stands on its own.
		b.WriteRune(utf8.RuneError)
		if utf16.IsSurrogate(r2) {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteRune(r2)
		}
		return nil
	}
	b.WriteRune(utf8.RuneError)
	return nil
}

// parseHex4 consumes exactly 4 hex digits and returns their value.
func (p *parser) parseHex4() (rune, error) {
	if p.pos+4 > len(p.data) {
		return 0, p.syntaxErrorf("incomplete unicode escape sequence")
	}
	hex := string(p.data[p.pos : p.pos+4])
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, p.syntaxErrorf("invalid unicode escape sequence \\u%s", hex)
	}
	p.advance(4)
	return rune(code), nil
}

// parseNumber parses a number literal per the RFC 8259 grammar: optional
// minus, integer part without redundant leading zeros, optional fraction,
// optional exponent. The lexeme is kept verbatim in the value.
func (p *parser) parseNumber() (*value.Value, error) {
	start := p.pos
	if p.data[p.pos] == '-' {
		p.advance(1)
	}

	switch {
	case p.done():
		return nil, p.syntaxErrorf("unexpected end of input in number literal")
	case p.data[p.pos] == '0':
		p.advance(1)
	case isDigit(p.data[p.pos]):
		for !p.done() && isDigit(p.data[p.pos]) {
			p.advance(1)
		}
	default:
		return nil, p.syntaxErrorf("invalid number literal")
	}

	if !p.done() && p.data[p.pos] == '.' {
		p.advance(1)
		if p.done() || !isDigit(p.data[p.pos]) {
			return nil, p.syntaxErrorf("expected digit after decimal point")
		}
		for !p.done() && isDigit(p.data[p.pos]) {
			p.advance(1)
		}
	}

	if !p.done() && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		p.advance(1)
		if !p.done() && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.advance(1)
		}
		if p.done() || !isDigit(p.data[p.pos]) {
			return nil, p.syntaxErrorf("expected digit in exponent")
		}
		for !p.done() && isDigit(p.data[p.pos]) {
			p.advance(1)
		}
	}

	lexeme := string(p.data[start:p.pos])
	if _, err := strconv.ParseFloat(lexeme, 64); err != nil {
		return nil, &errors.SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number literal %q", lexeme)}
	}
	return value.NewNumber(lexeme), nil
}

// parseBoolean matches the literals 'true' and 'false', case-sensitive.
func (p *parser) parseBoolean() (*value.Value, error) {
	if p.peekString("true") {
		p.advance(4)
		return value.NewBool(true), nil
	}
	if p.peekString("false") {
		p.advance(5)
		return value.NewBool(false), nil
	}
	return nil, p.syntaxErrorf("invalid literal, expected 'true' or 'false'")
}

// parseNull matches the literal 'null', case-sensitive.
func (p *parser) parseNull() (*value.Value, error) {
	if p.peekString("null") {
		p.advance(4)
		return value.NewNull(), nil
	}
	return nil, p.syntaxErrorf("invalid literal, expected 'null'")
}

// parseSequence parses '[' followed by zero or more comma-separated values
// and a closing ']'. A comma must be followed by another value, so a
// trailing comma is a syntax error.
func (p *parser) parseSequence() (*value.Value, error) {
	p.advance(1) // '['
	p.skipWhitespace()
	if p.done() {
		return nil, p.syntaxErrorf("unexpected end of input, expected value or ']'")
	}
	if p.data[p.pos] == ']' {
		p.advance(1)
		return value.NewSequence(), nil
	}

	seq := value.NewSequence()
	for {
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		seq.Append(item)

		p.skipWhitespace()
		if p.done() {
			return nil, p.syntaxErrorf("unexpected end of input, expected ',' or ']'")
		}
		switch p.data[p.pos] {
		case ',':
			p.advance(1)
		case ']':
			p.advance(1)
			return seq, nil
		default:
			return nil, p.syntaxErrorf("expected ',' or ']' after sequence element")
		}
	}
}

// parseMapping parses '{' followed by zero or more comma-separated
// key-value pairs and a closing '}'. Keys must be string literals. A
// duplicate key overwrites the earlier member in place.
func (p *parser) parseMapping() (*value.Value, error) {
	p.advance(1) // '{'
	m := value.NewMapping()

	p.skipWhitespace()
	if p.done() {
		return nil, p.syntaxErrorf("unexpected end of input, expected key or '}'")
	}
	if p.data[p.pos] == '}' {
		p.advance(1)
		return m, nil
	}

	for {
		p.skipWhitespace()
		if p.done() || p.data[p.pos] != '"' {
			return nil, p.syntaxErrorf("expected string key in mapping")
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}

		p.skipWhitespace()
		if p.done() || p.data[p.pos] != ':' {
			return nil, p.syntaxErrorf("expected ':' after mapping key")
		}
		p.advance(1)

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)

		p.skipWhitespace()
		if p.done() {
			return nil, p.syntaxErrorf("unexpected end of input, expected ',' or '}'")
		}
		switch p.data[p.pos] {
		case ',':
			p.advance(1)
		case '}':
			p.advance(1)
			return m, nil
		default:
			return nil, p.syntaxErrorf("expected ',' or '}' after mapping value")
		}
	}
}

// skipWhitespace consumes space, tab, newline and carriage return.
func (p *parser) skipWhitespace() {
	for !p.done() {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.advance(1)
		default:
			return
		}
	}
}

func (p *parser) done() bool {
	return p.pos >= len(p.data)
}

func (p *parser) advance(n int) {
	p.pos += n
}

func (p *parser) peekString(s string) bool {
	if p.pos+len(s) > len(p.data) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if p.data[p.pos+i] != s[i] {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
