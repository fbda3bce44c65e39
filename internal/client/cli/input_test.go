package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"windows newlines", "a\r\nb\r\n\r\n", "a\nb"},
		{"immediate blank line", "\n", ""},
		{"eof without blank line", "a\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Enter text", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetMultiline_LeavesRestOfInput(t *testing.T) {
	r := rdr("a\n\nnext\n")
	var out bytes.Buffer
	_, err := GetMultiline(r, "Enter text", &out)
	require.NoError(t, err)

	rest, err := GetSimpleText(r, "More", &out)
	require.NoError(t, err)
	assert.Equal(t, "next", rest)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"42"}, 0, "buy <product_id>")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, args := range [][]string{nil, {"x"}, {"0"}, {"-3"}} {
		_, err := parseID(args, 0, "buy <product_id>")
		require.ErrorIs(t, err, ErrUsage, args)
		assert.Contains(t, err.Error(), "buy <product_id>")
	}
}

func TestParseNumber(t *testing.T) {
	for _, s := range []string{"500", "499.99", " 0 ", "1e3"} {
		n, err := parseNumber(s)
		require.NoError(t, err, s)
		assert.Equal(t, strings.TrimSpace(s), n.String())
	}
	for _, s := range []string{"", "abc", "-1", "NaN", "0x10", "Inf"} {
		_, err := parseNumber(s)
		assert.Error(t, err, s)
	}
}
