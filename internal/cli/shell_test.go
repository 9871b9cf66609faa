package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestShellSession(t *testing.T) {
	env := newTestEnv(t)
	r := env.runWithInput(script(
		"mkdir Notes",
		"cd Notes",
		"pwd",
		"new Ideas",
		`title "Big ideas"`,
		"write '<p>one</p>'",
		"save",
		"cd ..",
		"mkdir Archive",
		"drag Notes",
		"hover Notes",
		"status",
		"hover Archive",
		"drop",
		"tree",
		"write '<p>two</p>'",
		"exit",
	), "shell")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "folio:/Notes> ")
	assert.Contains(t, r.stdout, "error: cannot drop here (dragging)")
	assert.Contains(t, r.stdout, "drag: dragging Notes")
	assert.Contains(t, r.stdout, "Archive/\n  Notes/\n    Big ideas\n")

	// The open page is saved when the shell exits.
	show := env.mustRun("show", "Archive/Notes/Big ideas")
	assert.Contains(t, show, "<p>two</p>")
}

func TestShellDeleteDiscardsOpenPage(t *testing.T) {
	env := newTestEnv(t)
	r := env.runWithInput(script(
		"mkdir F",
		"cd F",
		"new page",
		"write unsaved",
		"cd /",
		"rm F",
		"y",
		"status",
	), "shell")
	require.NoError(t, r.err, "EOF ends the shell")
	assert.Contains(t, r.stdout, `Delete folder "F" and all its contents? [y/N] `)
	assert.Contains(t, r.stdout, "deleted 2 nodes")
	assert.Contains(t, r.stdout, "open: -")
	assert.Empty(t, env.nodes("ls"))
}

func TestShellErrorsKeepRunning(t *testing.T) {
	env := newTestEnv(t)
	r := env.runWithInput(script(
		"bogus",
		"cd",
		"cd Missing",
		"title x",
		"drop",
		"help",
		"quit",
	), "shell")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `error: unknown command "bogus"`)
	assert.Contains(t, r.stdout, "error: usage: cd <folder>|..|/")
	assert.Contains(t, r.stdout, `error: "Missing" not found`)
	assert.Contains(t, r.stdout, "error: no page open")
	assert.Contains(t, r.stdout, "error: nothing is being dragged")
	assert.Contains(t, r.stdout, "mkdir <title>")
}
