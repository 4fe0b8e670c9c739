package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join("..", "..", "data", name)
}

// rewriteJSON loads a fixture, lets the caller mutate the decoded document,
// and writes the result to a temp file.
func rewriteJSON(t *testing.T, src string, mutate func(doc any)) string {
	t.Helper()

	raw, err := os.ReadFile(src)
	require.NoError(t, err)

	var doc any
	require.NoError(t, json.Unmarshal(raw, &doc))
	mutate(doc)

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), filepath.Base(src))
	require.NoError(t, os.WriteFile(path, out, 0o600))
	return path
}

func TestRun_ShippedDataset(t *testing.T) {
	code := run(fixturePath(t, "facilities.json"), fixturePath(t, "zones.json"))
	assert.Equal(t, 0, code, "shipped dataset must pass every phase")
}

func TestRun_MissingFile(t *testing.T) {
	code := run(filepath.Join(t.TempDir(), "nope.json"), fixturePath(t, "zones.json"))
	assert.Equal(t, 1, code)
}

func TestRun_MiscountedZone(t *testing.T) {
	zones := rewriteJSON(t, fixturePath(t, "zones.json"), func(doc any) {
		zone := doc.(map[string]any)["zonas"].([]any)[0].(map[string]any)
		zone["num_instalaciones"] = zone["num_instalaciones"].(float64) + 3
	})

	code := run(fixturePath(t, "facilities.json"), zones)
	assert.Equal(t, 1, code)
}

func TestRun_RelocatedFacility(t *testing.T) {
	// A facility a full degree north of its zone cannot survive the
	// round-trip and bounds phases.
	facilities := rewriteJSON(t, fixturePath(t, "facilities.json"), func(doc any) {
		rec := doc.([]any)[0].(map[string]any)
		rec["latitud"] = rec["latitud"].(float64) + 1.0
	})

	code := run(facilities, fixturePath(t, "zones.json"))
	assert.Equal(t, 1, code)
}

func TestRun_UnknownFacilityType(t *testing.T) {
	facilities := rewriteJSON(t, fixturePath(t, "facilities.json"), func(doc any) {
		rec := doc.([]any)[0].(map[string]any)
		rec["tipo"] = "escuela"
	})

	code := run(facilities, fixturePath(t, "zones.json"))
	assert.Equal(t, 1, code)
}
