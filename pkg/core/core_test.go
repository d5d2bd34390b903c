package core

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDetectorLifecycle(t *testing.T) {
	Shutdown()
	_, err := Detect("john@example.com")
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = Redact("x", "*")
	require.ErrorIs(t, err, ErrNotInitialized)

	Init()
	t.Cleanup(Shutdown)
	es, err := Detect("Contact me at john.doe@example.com for more info")
	require.NoError(t, err)
	require.NotEmpty(t, es)

	out, err := Redact("SSN: 123-45-6789", "#")
	require.NoError(t, err)
	assert.NotContains(t, out, "123-45-6789")
	assert.Contains(t, out, "[SSN:####]")
}

func TestScan_Smoke(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("SSN: 123-45-6789\n"), 0644))
	res, err := Scan(context.Background(), ScanConfig{Root: dir, NoCache: true}, NewDetector())
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesScanned)
	assert.NotEmpty(t, res.Findings)

	Shutdown()
	_, err = Scan(context.Background(), ScanConfig{Root: dir, NoCache: true}, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestNewAnonymizerValidates(t *testing.T) {
	cfg := AnonymizeConfig{OutputFormat: "xml"}
	_, err := NewAnonymizer(cfg)
	assert.Error(t, err)
}

func TestMarshalEntities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalEntities(&buf, []Entity{{Text: "a@b.co", Label: "EMAIL", Start: 1, End: 7, Confidence: 0.951234}}))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "EMAIL", got[0]["type"])
	assert.Equal(t, 0.9512, got[0]["confidence"])

	buf.Reset()
	require.NoError(t, MarshalEntities(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestFindingsJSON(t *testing.T) {
	fs := []Finding{{Path: "a.txt", Line: 2, Column: 3, Entity: Entity{Text: "x", Label: "SSN"}}}
	var buf bytes.Buffer
	require.NoError(t, MarshalFindings(&buf, fs))
	assert.Contains(t, buf.String(), `"label": "SSN"`)
	back, err := UnmarshalFindings(&buf)
	require.NoError(t, err)
	assert.Equal(t, fs[0].Path, back[0].Path)
	assert.Equal(t, "SSN", back[0].Label)
}

func TestEntityTypes(t *testing.T) {
	assert.Len(t, EntityTypes(), 32)
	assert.NotNil(t, NewVault(""))
	seed := int64(7)
	assert.Equal(t, NewGenerator("", &seed).FullName(""), NewGenerator("", &seed).FullName(""))
}
