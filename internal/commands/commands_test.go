package commands

import (
	"errors"
	"strings"
	"testing"

	"ar-furniture/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd select  chair")
	require.True(t, ok)
	assert.Equal(t, []string{"select", "chair"}, args)

	args, ok = Parse("cmd ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("select chair")
	assert.False(t, ok)
	_, ok = Parse("CMD list")
	assert.False(t, ok, "prefix is case-sensitive")
}

func TestExecute_FlagsAndPositionals(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("fps")
	show := fs.Bool("show", false, "")
	hide := fs.Bool("hide", false, "")
	var got []string
	var shown []bool
	r.Register("fps", "--show|--hide", fs, func(args []string) error {
		got = args
		shown = append(shown, *show && !*hide)
		return nil
	})

	require.NoError(t, r.Execute([]string{"fps", "--show"}))
	require.NoError(t, r.Execute([]string{"fps", "--hide"}))
	require.NoError(t, r.Execute([]string{"fps", "extra"}))
	assert.Equal(t, []bool{true, false, false}, shown, "flags reset between runs")
	assert.Equal(t, []string{"extra"}, got)

	err := r.Execute([]string{"fps", "--bogus"})
	assert.Error(t, err)
}

func TestExecute_Errors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func([]string) error { return boom })

	assert.Error(t, r.Execute(nil))
	assert.True(t, errors.Is(r.Execute([]string{"nope"}), ErrUnknownCommand))
	assert.True(t, errors.Is(r.Execute([]string{"fail"}), boom))
}

func TestRegistry_NamesAndHelp(t *testing.T) {
	r := NewRegistry()
	r.Register("place", "place at the reticle", nil, func([]string) error { return nil })
	r.Register("delete", "delete the selection", nil, func([]string) error { return nil })
	assert.Equal(t, []string{"delete", "place"}, r.Names())
	assert.Equal(t, []string{"delete: delete the selection", "place: place at the reticle"}, r.Help())
}

func TestConsole_SubmitRunsAndLogs(t *testing.T) {
	log := logger.New("")
	r := NewRegistry()
	var selected string
	r.Register("select", "<type>", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: select <type>")
		}
		selected = args[0]
		return nil
	})
	c := NewConsole(log, r)
	assert.False(t, c.IsOpen())
	c.Toggle()
	assert.True(t, c.IsOpen())

	c.Type("cmd select sofa")
	require.NoError(t, c.Submit())
	assert.Equal(t, "sofa", selected)
	assert.Empty(t, c.Input())

	c.Type("cmd select")
	assert.Error(t, c.Submit())
	assert.True(t, strings.HasSuffix(log.Last(), "usage: select <type>"))

	c.Type("hello")
	require.NoError(t, c.Submit())
	assert.Contains(t, log.Last(), "cmd help")

	assert.NoError(t, c.Submit(), "empty line is ignored")
}

func TestConsole_EditingAndHistory(t *testing.T) {
	c := NewConsole(logger.New(""), NewRegistry())
	c.Type("cmd listé")
	c.Backspace()
	assert.Equal(t, "cmd list", c.Input())

	_ = c.Submit()
	c.Type("cmd status")
	_ = c.Submit()

	c.Prev()
	assert.Equal(t, "cmd status", c.Input())
	c.Prev()
	assert.Equal(t, "cmd list", c.Input())
	c.Prev()
	assert.Equal(t, "cmd list", c.Input())
	c.Next()
	assert.Equal(t, "cmd status", c.Input())
	c.Next()
	assert.Empty(t, c.Input())
}
