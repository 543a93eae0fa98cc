package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateApp(t *testing.T) {
	out := t.TempDir()
	service := NewService()
	result, err := service.Generate(t.Context(), GenerateRequest{
		SchemaPath: fixturePath(t, "cboe-boe.yaml"),
		OutputDir:  out,
	})
	require.NoError(t, err)

	wantArtifacts := []string{
		"messages.hpp", "messages.cpp",
		"encoder.hpp", "encoder.cpp",
		"decoder.hpp", "decoder.cpp",
		"handler.hpp",
	}
	if diff := cmp.Diff(wantArtifacts, result.Artifacts); diff != "" {
		t.Fatalf("unexpected artifact list (-want +got):\n%s", diff)
	}
	assert.Equal(t, "cboe_boe", result.Protocol)
	assert.Equal(t, "cboe::boe::v3", result.Namespace)
	assert.Equal(t, out, result.OutputDir)

	for _, name := range wantArtifacts {
		_, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, "missing artifact: %s", name)
	}

	header, err := os.ReadFile(filepath.Join(out, "messages.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "namespace cboe::boe::v3 {")
	assert.Contains(t, string(header), "struct NewOrderCross {")
	assert.Contains(t, string(header), "std::vector<NewOrderCrossOrders> orders{};")

	encoder, err := os.ReadFile(filepath.Join(out, "encoder.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(encoder), "market::runtime::store_le<uint16_t>")
}

func TestGenerateAppBigEndianSchema(t *testing.T) {
	out := t.TempDir()
	service := NewService()
	_, err := service.Generate(t.Context(), GenerateRequest{
		SchemaPath: fixturePath(t, "nasdaq-itch.yaml"),
		OutputDir:  out,
	})
	require.NoError(t, err)

	encoder, err := os.ReadFile(filepath.Join(out, "encoder.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(encoder), "market::runtime::store_be<uint64_t>")

	decoder, err := os.ReadFile(filepath.Join(out, "decoder.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(decoder), "market::runtime::load_be<uint32_t>")
}

func TestGenerateAppRequiredArguments(t *testing.T) {
	service := NewService()

	_, err := service.Generate(t.Context(), GenerateRequest{OutputDir: "out"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema path is required")

	_, err = service.Generate(t.Context(), GenerateRequest{SchemaPath: "schema.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is required")
}

func TestGenerateAppRejectsUnknownLanguage(t *testing.T) {
	service := NewService()
	_, err := service.Generate(t.Context(), GenerateRequest{
		SchemaPath: fixturePath(t, "cboe-boe.yaml"),
		OutputDir:  t.TempDir(),
		Lang:       "rust",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestGenerateBatchApp(t *testing.T) {
	schemaDir := t.TempDir()
	copyFixture(t, "cboe-boe.yaml", schemaDir)
	copyFixture(t, "nasdaq-itch.yaml", schemaDir)
	out := t.TempDir()

	service := NewService()
	result, err := service.GenerateBatch(t.Context(), GenerateBatchRequest{
		SchemaDir: schemaDir,
		OutputDir: out,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Schemas)
	require.Len(t, result.Generated, 2)

	// Results come back sorted by output directory.
	assert.Equal(t, filepath.Join(out, "cboe-boe"), result.Generated[0].OutputDir)
	assert.Equal(t, filepath.Join(out, "nasdaq-itch"), result.Generated[1].OutputDir)

	_, err = os.Stat(filepath.Join(out, "cboe-boe", "messages.hpp"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "nasdaq-itch", "handler.hpp"))
	require.NoError(t, err)
}

func TestGenerateBatchAppEmptyDir(t *testing.T) {
	service := NewService()
	_, err := service.GenerateBatch(t.Context(), GenerateBatchRequest{
		SchemaDir: t.TempDir(),
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema files found")
}

func TestGenerateBatchAppPropagatesFailure(t *testing.T) {
	schemaDir := t.TempDir()
	copyFixture(t, "cboe-boe.yaml", schemaDir)
	broken := `
protocol: broken
version: 1
messages:
  Order:
    fields:
      - name: Qty
        type: u128
`
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "broken.yaml"), []byte(broken), 0644))

	service := NewService()
	_, err := service.GenerateBatch(t.Context(), GenerateBatchRequest{
		SchemaDir: schemaDir,
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "u128")
}

func copyFixture(t *testing.T, name, dir string) {
	t.Helper()
	data, err := os.ReadFile(fixturePath(t, name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}
