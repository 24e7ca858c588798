package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest", ingestCmd.Use)
}

func TestIngestCmd_DefaultsFromConfig(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "ingest")

	require.NoError(t, err)
	assert.Equal(t, "knowledge", ts.ingestDir)
	assert.Equal(t, "knowledge/docs.json", ts.ingestOut)
	assert.Contains(t, out, "Wrote 2 documents to knowledge/docs.json")
	assert.Contains(t, out, "skipped broken.pdf: no text")
}

func TestIngestCmd_FlagOverrides(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "ingest", "--dir", "pdfs", "--out", "out.json")

	require.NoError(t, err)
	assert.Equal(t, "pdfs", ts.ingestDir)
	assert.Equal(t, "out.json", ts.ingestOut)
}

func TestIngestCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.err = errors.New("knowledge directory missing")

	_, err := execute(t, "", "ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "knowledge directory missing")
}

func TestIngestCmd_Watch(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "ingest", "--watch")

	require.NoError(t, err)
	assert.Contains(t, out, "Watching knowledge")
	assert.Contains(t, out, "Wrote 2 documents")
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "", "ingest")

	assert.ErrorIs(t, err, errNotConfigured)
}
