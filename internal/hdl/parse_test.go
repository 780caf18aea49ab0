// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl_test

import (
	"testing"

	"github.com/db47h/hwbench/internal/hdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	l := hdl.NewLexer(" a_1[12..3] = b, é ?x")
	var got []hdl.Item
	for {
		i := l.Lex()
		got = append(got, i)
		if i.Type == hdl.EOF {
			break
		}
	}
	assert.Equal(t, []hdl.Item{
		{hdl.Ident, 1, "a_1"},
		{hdl.BracketOpen, 4, "["},
		{hdl.Int, 5, 12},
		{hdl.Range, 7, ".."},
		{hdl.Int, 9, 3},
		{hdl.BracketClose, 10, "]"},
		{hdl.Equal, 12, "="},
		{hdl.Ident, 14, "b"},
		{hdl.Comma, 15, ","},
		{hdl.Ident, 17, "é"},
		{hdl.Raw, 20, '?'},
		{hdl.EOF, 22, nil},
	}, got)
	// sticky EOF
	assert.Equal(t, hdl.EOF, l.Lex().Type)

	assert.Equal(t, "identifier \"b\"", hdl.Item{hdl.Ident, 0, "b"}.String())
	assert.Equal(t, "integer 42", hdl.Item{hdl.Int, 0, 42}.String())
	assert.Equal(t, "character '?'", hdl.Item{hdl.Raw, 0, '?'}.String())
	assert.Equal(t, "'..'", hdl.Item{hdl.Range, 0, ".."}.String())
	assert.Equal(t, "end of input", hdl.Item{Type: hdl.EOF}.String())
}

func parseAll(in string, conns bool) ([]interface{}, error) {
	p := hdl.Parser{Input: in}
	var items []interface{}
	for {
		i, err := p.Next(conns)
		if err != nil {
			return items, err
		}
		if i == nil {
			return items, nil
		}
		items = append(items, i)
	}
}

func TestParser(t *testing.T) {
	items, err := parseAll("a, b[2], c[0..3]", false)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		hdl.Pin{"a", 0},
		hdl.PinIndex{hdl.Pin{"b", 3}, 2},
		hdl.PinRange{hdl.Pin{"c", 9}, 0, 3},
	}, items)

	items, err = parseAll("in=d, out[1..0]=q[2..3]", true)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		hdl.PinAssignment{hdl.Pin{"in", 0}, hdl.Pin{"d", 3}},
		hdl.PinAssignment{
			hdl.PinRange{hdl.Pin{"out", 6}, 1, 0},
			hdl.PinRange{hdl.Pin{"q", 16}, 2, 3},
		},
	}, items)

	items, err = parseAll("  ", true)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParser_empty(t *testing.T) {
	for _, in := range []string{"", " ", "\t\n"} {
		var p hdl.Parser
		p.Input = in
		i, err := p.Next(true)
		assert.NoError(t, err, "%q", in)
		assert.Nil(t, i, "%q", in)
		// stays at end of input
		i, err = p.Next(true)
		assert.NoError(t, err)
		assert.Nil(t, i)
	}
}

func TestParser_errors(t *testing.T) {
	td := []struct {
		in    string
		conns bool
		err   string
	}{
		{"a=b", false, `in "a=b" at pos 2: unexpected '='`},
		{"a,", false, `in "a," at pos 3: expected pin name`},
		{"a[", false, `in "a[" at pos 3: integer value expected after '['`},
		{"a[1..]", false, `in "a[1..]" at pos 6: integer value expected after '..'`},
		{"a[1 b", false, `in "a[1 b" at pos 5: closing ']' expected after index or range`},
		{"a b", false, `in "a b" at pos 3: unexpected identifier "b"`},
		{"a=b=c", true, `in "a=b=c" at pos 4: unexpected '='`},
		{"a=", true, `in "a=" at pos 3: expected pin name`},
		{"a;b", true, `in "a;b" at pos 2: unexpected character ';'`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			_, err := parseAll(d.in, d.conns)
			assert.EqualError(t, err, d.err)
		})
	}

	// the parser stops at the first error
	p := hdl.Parser{Input: "1, a"}
	_, err := p.Next(false)
	require.Error(t, err)
	i, err := p.Next(false)
	assert.NoError(t, err)
	assert.Nil(t, i)
}
