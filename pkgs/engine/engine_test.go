package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/mash/pkgs/ast"
	"github.com/aledsdavies/mash/pkgs/parser"
)

func mustParse(t *testing.T, line string) ast.Command {
	t.Helper()
	cmd, err := parser.Parse(line)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	return cmd
}

func TestRunsInShell(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"cd /tmp", true},
		{"jobs", true},
		{"echo hi", true},
		{"ls", false},                // external
		{"echo hi &", false},         // background forks
		{"echo hi > out.txt", false}, // redirection forks
		{"echo hi | wc -l", false},   // pipeline forks
		{"cat < in", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, RunsInShell(mustParse(t, tt.line)))
		})
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "echo", Suggest("ecoh"))
	assert.Equal(t, "jobs", Suggest("job"))
	assert.Equal(t, "", Suggest("completely-unrelated"))
	// The name itself is never suggested back.
	assert.NotEqual(t, "echo", Suggest("echo"))
}
