package schemas

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fractional-sitemap/internal/sitemap"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

const validManifest = `[
	{"url": "https://fractional.quest", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "daily", "priority": 1},
	{"url": "https://fractional.quest/faq", "lastModified": "2026-01-02T10:00:00.5Z", "changeFrequency": "monthly", "priority": 0.6}
]`

func TestRouteManifestSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(RouteManifestSchema()), &v))
	assert.Equal(t, "array", v["type"])
}

func TestValidateManifest(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
	}{
		{name: "valid", json: validManifest},
		{name: "empty", json: `[]`},
		{
			name:      "priority above one",
			json:      `[{"url": "https://a.test", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "daily", "priority": 1.5}]`,
			wantField: "priority",
		},
		{
			name:      "unknown cadence",
			json:      `[{"url": "https://a.test", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "fortnightly", "priority": 0.5}]`,
			wantField: "changeFrequency",
		},
		{
			name:      "missing lastModified",
			json:      `[{"url": "https://a.test", "changeFrequency": "daily", "priority": 0.5}]`,
			wantField: "0",
		},
		{
			name:      "relative url",
			json:      `[{"url": "/faq", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "daily", "priority": 0.5}]`,
			wantField: "url",
		},
		{
			name:      "extra field",
			json:      `[{"url": "https://a.test", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "daily", "priority": 0.5, "section": "jobs"}]`,
			wantField: "0",
		},
		{
			name: "duplicate url",
			json: `[
				{"url": "https://a.test/x", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "daily", "priority": 0.5},
				{"url": "https://a.test/x", "lastModified": "2026-01-01T00:00:00Z", "changeFrequency": "weekly", "priority": 0.4}
			]`,
			wantField: "1.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifest([]byte(tt.json))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)

			found := false
			for _, fe := range validationErr.Errors {
				if bytes.Contains([]byte(fe.Field), []byte(tt.wantField)) {
					found = true
				}
			}
			assert.True(t, found, "expected an error on %s, got %+v", tt.wantField, validationErr.Errors)
		})
	}
}

func TestValidateManifest_AcceptsEncoderOutput(t *testing.T) {
	now := time.Date(2026, 4, 4, 4, 4, 4, 0, time.UTC)
	entries := []types.RouteEntry{
		types.NewRouteEntry("https://fractional.quest", "", now, types.Band{Priority: 1, ChangeFrequency: types.ChangeDaily}),
		types.NewRouteEntry("https://fractional.quest", "fractional-job/cfo", now, sitemap.JobBand),
	}

	var buf bytes.Buffer
	require.NoError(t, sitemap.WriteJSON(&buf, entries))

	assert.NoError(t, ValidateManifest(buf.Bytes()))
}

func TestValidateManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.json")
	require.NoError(t, os.WriteFile(path, []byte(validManifest), 0644))

	assert.NoError(t, ValidateManifestFile(path))

	err := ValidateManifestFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	goodPath := filepath.Join(dir, "good.json")
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(RouteManifestSchema()), 0644))
	require.NoError(t, os.WriteFile(goodPath, []byte(validManifest), 0644))
	require.NoError(t, os.WriteFile(badPath, []byte(`[{"url": 3}]`), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, goodPath))

	err := ValidateJSON(schemaPath, badPath)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(RouteManifestSchema()), 0644))

	err := ValidateJSON(filepath.Join(dir, "nope.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{ not a schema`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
	assert.NotNil(t, loadErr.Unwrap())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "(root).0.priority", Message: "Must be less than or equal to 1"},
			{Field: "(root).1.url", Message: "duplicates entry 0"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. (root).0.priority")
	assert.Contains(t, errorMsg, "2. (root).1.url")
}
