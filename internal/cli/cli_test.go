package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"validate", "generate", "inspect"}
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
	assert.NotNil(t, cmd.Flags().Lookup("schema"))
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := newGenerateCommand()
	for _, name := range []string{"schema", "schema-dir", "out", "lang"} {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
}

func TestInspectCommandFlags(t *testing.T) {
	cmd := newInspectCommand()
	assert.NotNil(t, cmd.Flags().Lookup("schema"))
}

// ---------- Command run tests ----------

func TestGenerateCommandWritesArtifacts(t *testing.T) {
	out := t.TempDir()
	root := newRootCommand()
	root.SetArgs([]string{"generate", "--schema", fixturePath(t, "cboe-boe.yaml"), "--out", out})
	require.NoError(t, root.Execute())

	artifacts := []string{
		"messages.hpp", "messages.cpp",
		"encoder.hpp", "encoder.cpp",
		"decoder.hpp", "decoder.cpp",
		"handler.hpp",
	}
	for _, name := range artifacts {
		_, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, "missing artifact: %s", name)
	}
}

func TestGenerateCommandBatchWritesPerSchemaDirs(t *testing.T) {
	schemaDir := t.TempDir()
	for _, name := range []string{"cboe-boe.yaml", "nasdaq-itch.yaml"} {
		data, err := os.ReadFile(fixturePath(t, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(schemaDir, name), data, 0644))
	}
	out := t.TempDir()

	root := newRootCommand()
	root.SetArgs([]string{"generate", "--schema-dir", schemaDir, "--out", out})
	require.NoError(t, root.Execute())

	_, err := os.Stat(filepath.Join(out, "cboe-boe", "messages.hpp"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "nasdaq-itch", "decoder.cpp"))
	require.NoError(t, err)
}

func TestValidateCommandRuns(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"validate", "--schema", fixturePath(t, "nasdaq-itch.yaml")})
	require.NoError(t, root.Execute())
}

func TestInspectCommandRuns(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"inspect", "--schema", fixturePath(t, "cboe-boe.yaml")})
	require.NoError(t, root.Execute())
}

func TestGenerateCommandFailsOnMissingSchema(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{
		"generate",
		"--schema", filepath.Join(t.TempDir(), "absent.yaml"),
		"--out", t.TempDir(),
	})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeForError(err))
}

// ---------- Default schema tests ----------

func TestDefaultSchemaPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	assert.Empty(t, defaultSchemaPath(), "empty directory has no default")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "market-codegen.yaml"), []byte("log_level: debug\n"), 0644))
	assert.Empty(t, defaultSchemaPath(), "config file is not a schema")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "boe.yaml"), []byte("protocol: boe\n"), 0644))
	assert.Equal(t, "boe.yaml", defaultSchemaPath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "itch.yml"), []byte("protocol: itch\n"), 0644))
	assert.Empty(t, defaultSchemaPath(), "two candidates is ambiguous")
}

func TestValidateCommandDefaultsToLoneSchema(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(fixturePath(t, "nasdaq-itch.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nasdaq-itch.yaml"), data, 0644))
	t.Chdir(dir)

	root := newRootCommand()
	root.SetArgs([]string{"validate"})
	require.NoError(t, root.Execute())
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 1,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("file missing"),
			expected: 1,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 1,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// fixturePath resolves a schema file under the repository's fixtures
// directory.
func fixturePath(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", name)
}
