package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"spool_dir": {"type": "string", "minLength": 1},
		"standard_names_max_age": {"type": "number", "minimum": 0}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"spool_dir": "/var/spool", "standard_names_max_age": 1.5}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong type", `{"spool_dir": 7}`},
		{"negative age", `{"standard_names_max_age": -1}`},
		{"unknown field", `{"spool_directory": "/var/spool"}`},
		{"empty string", `{"spool_dir": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(testSchema, tt.doc)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Errors)
		})
	}
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": `, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestResolveSchemaPath_Found(t *testing.T) {
	// From internal/schemas the repo-root schema sits two levels up.
	path := ResolveSchemaPath(ConfigSchemaFile)
	assert.NotEmpty(t, path)
}

func TestResolveSchemaPath_Missing(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/no-such.schema.json"))
}

func TestConfigSchema_AcceptsRealConfig(t *testing.T) {
	schemaPath := ResolveSchemaPath(ConfigSchemaFile)
	require.NotEmpty(t, schemaPath)

	doc := `{
		"standard_names": "https://example.com/sn.xml",
		"area_types": "https://example.com/at.xml",
		"udunits": "/usr/share/udunits2.xml",
		"spool_dir": "/var/spool/cftables",
		"standard_names_max_age": 0,
		"area_types_max_age": 2,
		"checker": "cfchecks",
		"version": "1.8",
		"verbose": false
	}`

	jsonPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(doc), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestConfigSchema_RejectsUnknownField(t *testing.T) {
	schemaPath := ResolveSchemaPath(ConfigSchemaFile)
	require.NotEmpty(t, schemaPath)

	jsonPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"spool": "/var/spool"}`), 0644))

	assert.Error(t, ValidateJSON(schemaPath, jsonPath))
}
