package cli

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlock/internal/types"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{
		"validate", "inspect", "lock", "diff",
		"outdated", "fmt", "index-snapshot", "convert",
	}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := newValidateCommand()
	for _, name := range []string{"manifest", "type", "policy", "strict"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestLockCommandFlags(t *testing.T) {
	cmd := newLockCommand()
	for _, name := range []string{"manifest", "type", "index", "output", "check"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestIndexSnapshotCommandFlags(t *testing.T) {
	cmd := newIndexSnapshotCommand()
	flags := []string{
		"output", "pip-index-url", "package", "manifest",
		"apt-packages-file", "workers", "http-timeout-sec",
		"http-retries", "http-retry-delay-ms",
	}
	for _, name := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestFmtCommandFlags(t *testing.T) {
	cmd := newFmtCommand()
	for _, name := range []string{"manifest", "type", "write", "check"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	assert.Equal(t, "explicit", resolveString(nil, "explicit", "test_key", "test-flag"))
	assert.Equal(t, "", resolveString(nil, "", "test_key", "test-flag"))
}

func TestResolveStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, resolveStrings(nil, []string{"a", "b"}, "test_key", "test-flag"))
	assert.Nil(t, resolveStrings(nil, nil, "test_key", "test-flag"))
}

func TestResolveBool(t *testing.T) {
	assert.True(t, resolveBool(nil, true, "test_key", "test-flag"))
	assert.False(t, resolveBool(nil, false, "test_key", "test-flag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")

	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

func TestParseDependencyType(t *testing.T) {
	assert.Equal(t, types.DependencyTypePip, parseDependencyType(""))
	assert.Equal(t, types.DependencyTypePip, parseDependencyType("pip"))
	assert.Equal(t, types.DependencyTypeApt, parseDependencyType("APT"))
	assert.Equal(t, types.DependencyTypePip, parseDependencyType("rpm"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name: "manifest findings",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("manifest has findings: 2 error(s), 0 warning(s)"),
			expected: 3,
		},
		{
			name: "stale lock",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("lock manifest is stale; rerun lock"),
			expected: 3,
		},
		{
			name: "unformatted manifest",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("manifest is not formatted; run fmt --write"),
			expected: 3,
		},
		{
			name: "no compatible version",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("no compatible version for flask>=3.0"),
			expected: 4,
		},
		{
			name: "no available versions",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("no available versions for leftpad"),
			expected: 4,
		},
		{
			name: "not found generic",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("manifest file not found"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeForError(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("something broke")
	assert.Equal(t, "something broke", errorMessage(err))
	assert.Equal(t, assert.AnError.Error(), errorMessage(assert.AnError))
}
