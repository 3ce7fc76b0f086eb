package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\nrest\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)

	next, err := GetSimpleText(in, "", &out)
	require.NoError(t, err)
	assert.Equal(t, "rest", next, "the terminating empty line is consumed, nothing more")
}

func TestGetMultiline_EOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("only"))
	got, err := GetMultiline(in, "Enter text", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		assumeYes   bool
		interactive bool
		want        bool
	}{
		{name: "yes", input: "y\n", interactive: true, want: true},
		{name: "YES", input: "YES\n", interactive: true, want: true},
		{name: "no", input: "n\n", interactive: true, want: false},
		{name: "enter declines", input: "\n", interactive: true, want: false},
		{name: "non-terminal declines", input: "y\n", interactive: false, want: false},
		{name: "assume yes", input: "", assumeYes: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &promptConfirmer{
				reader:      bufio.NewReader(strings.NewReader(tt.input)),
				out:         &out,
				assumeYes:   tt.assumeYes,
				interactive: func() bool { return tt.interactive },
			}
			got, err := c.Confirm(context.Background(), "Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete?")
		})
	}
}

func TestPromptConfirmer_ReadError(t *testing.T) {
	c := &promptConfirmer{
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         &bytes.Buffer{},
		interactive: func() bool { return true },
	}
	_, err := c.Confirm(context.Background(), "Delete?")
	require.Error(t, err)
}
