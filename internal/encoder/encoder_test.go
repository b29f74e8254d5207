package encoder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsontree-cli/jsontree/internal/parser"
	"github.com/jsontree-cli/jsontree/internal/value"
)

func TestCompact_Scalars(t *testing.T) {
	assert.Equal(t, "null", Compact(value.NewNull()))
	assert.Equal(t, "true", Compact(value.NewBool(true)))
	assert.Equal(t, "false", Compact(value.NewBool(false)))
	assert.Equal(t, "1e10", Compact(value.NewNumber("1e10")))
	assert.Equal(t, `"hi"`, Compact(value.NewString("hi")))
}

func TestCompact_Containers(t *testing.T) {
	m := value.NewMapping()
	m.Set("a", value.NewNumber("1"))
	inner := value.NewSequence(value.NewBool(true), value.NewNull(), value.NewString("x"))
	m.Set("b", inner)

	assert.Equal(t, `{"a":1,"b":[true,null,"x"]}`, Compact(m))
	assert.Equal(t, "[]", Compact(value.NewSequence()))
	assert.Equal(t, "{}", Compact(value.NewMapping()))
}

func TestCompact_PreservesMemberOrder(t *testing.T) {
	m := value.NewMapping()
	m.Set("z", value.NewNumber("1"))
	m.Set("a", value.NewNumber("2"))

	assert.Equal(t, `{"z":1,"a":2}`, Compact(m))
}

func TestCompact_PreservesNumberLexeme(t *testing.T) {
	s := value.NewSequence(
		value.NewNumber("1.50"),
		value.NewNumber("1e3"),
		value.NewNumber("-0"),
	)
	assert.Equal(t, "[1.50,1e3,-0]", Compact(s))
}

func TestCompact_StringEscaping(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"QuoteAndBackslash", `say "hi" \ done`, `"say \"hi\" \\ done"`},
		{"CommonControls", "a\nb\tc\rd", `"a\nb\tc\rd"`},
		{"BackspaceFormfeed", "\b\f", `"\b\f"`},
		{"RareControl", "\x01", `"\u0001"`},
		{"NonASCII", "héllo", `"héllo"`},
		{"Emoji", "\U0001f600", "\"\U0001f600\""},
		{"InvalidUTF8", "a\xffb", "\"a�b\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := value.NewString(tc.in)
			assert.Equal(t, tc.want, Compact(s))
		})
	}
}

func TestIndent_MatchesMarshalIndent(t *testing.T) {
	docs := []string{
		`{"a":1,"b":[1,2],"c":{"d":"x"},"e":[]}`,
		`[{"k":null},true,"s"]`,
		`{"nested":{"deep":{"leaf":1}}}`,
		`"scalar"`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			v, err := parser.Parse(doc)
			require.NoError(t, err)

			var ref interface{}
			require.NoError(t, json.Unmarshal([]byte(doc), &ref))
			want, err := json.MarshalIndent(ref, "", "  ")
			require.NoError(t, err)

			assert.Equal(t, string(want), Indent(v, "", "  "))
		})
	}
}

func TestIndent_WithPrefix(t *testing.T) {
	m := value.NewMapping()
	m.Set("a", value.NewNumber("1"))

	want := "{\n>>\t\"a\": 1\n>>}"
	assert.Equal(t, want, Indent(m, ">>", "\t"))
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`{"users":[{"name":"Alice","age":30},{"name":"Bob","age":25}],"count":2}`,
		`[1,"test",true,null,3.14]`,
		`{"a":1,"b":2}`,
		`-3.14`,
		`1e10`,
		`{}`,
		`[]`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			v, err := parser.Parse(doc)
			require.NoError(t, err)

			// Compact output of a compact document is byte-identical.
			out := Compact(v)
			assert.Equal(t, doc, out)

			// Reparsing pretty output yields an equal tree.
			v2, err := parser.Parse(Indent(v, "", "  "))
			require.NoError(t, err)
			assert.True(t, v.Equal(v2))
		})
	}
}
