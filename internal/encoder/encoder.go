// Package encoder serializes a value tree back to JSON text. Mapping
// members are written in document order and number lexemes are emitted
// verbatim, so a parse/encode round trip is byte-stable.
package encoder

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jsontree-cli/jsontree/internal/value"
)

// Compact returns the JSON encoding of v with no insignificant whitespace.
func Compact(v *value.Value) string {
	var buf bytes.Buffer
	writeValue(&buf, v, "", "", 0)
	return buf.String()
}

// Indent returns the JSON encoding of v with each nested element starting
// on a new line, prefixed by prefix and then indent repeated per depth.
// The layout matches json.MarshalIndent.
func Indent(v *value.Value, prefix, indent string) string {
	var buf bytes.Buffer
	writeValue(&buf, v, prefix, indent, 0)
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v *value.Value, prefix, indent string, depth int) {
	pretty := indent != ""
	switch v.Kind() {
	case value.Null:
		buf.WriteString("null")
	case value.Bool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case value.Number:
		buf.WriteString(v.NumberLexeme())
	case value.String:
		writeQuoted(buf, v.Str())
	case value.Sequence:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if pretty {
				writeNewline(buf, prefix, indent, depth+1)
			}
			writeValue(buf, item, prefix, indent, depth+1)
		}
		if pretty {
			writeNewline(buf, prefix, indent, depth)
		}
		buf.WriteByte(']')
	case value.Mapping:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, m := range v.Members() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if pretty {
				writeNewline(buf, prefix, indent, depth+1)
			}
			writeQuoted(buf, m.Key)
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			writeValue(buf, m.Value, prefix, indent, depth+1)
		}
		if pretty {
			writeNewline(buf, prefix, indent, depth)
		}
		buf.WriteByte('}')
	}
}

func writeNewline(buf *bytes.Buffer, prefix, indent string, depth int) {
	buf.WriteByte('\n')
	buf.WriteString(prefix)
	buf.WriteString(strings.Repeat(indent, depth))
}

// writeQuoted writes s as a double-quoted JSON string, escaping the quote,
// the backslash and control characters. Everything else passes through as
// UTF-8; invalid bytes are replaced with U+FFFD.
func writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				buf.WriteString(`\"`)
			case c == '\\':
				buf.WriteString(`\\`)
			case c == '\b':
				buf.WriteString(`\b`)
			case c == '\f':
				buf.WriteString(`\f`)
			case c == '\n':
				buf.WriteString(`\n`)
			case c == '\r':
				buf.WriteString(`\r`)
			case c == '\t':
				buf.WriteString(`\t`)
			case c < 0x20:
				fmt.Fprintf(buf, `\u%04x`, c)
			default:
				buf.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
			i++
			continue
		}
		buf.WriteString(s[i : i+size])
		i += size
	}
	buf.WriteByte('"')
}
