package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRowDTO struct {
	Timestamp string `csv:"timestamp"`
	Close     string `csv:"close"`
}

func TestWriteReadCsvRoundTrip(t *testing.T) {
	// Parent directory does not exist yet; WriteCsv must create it.
	outFile := filepath.Join(t.TempDir(), "data", "sample.csv")

	written := []*sampleRowDTO{
		{Timestamp: "2024-03-04T09:30:00-05:00", Close: "58.10"},
		{Timestamp: "2024-03-04T09:45:00-05:00", Close: "58.20"},
	}

	require.NoError(t, WriteCsv(outFile, &written))

	var read []*sampleRowDTO
	require.NoError(t, ReadCsv(outFile, &read))

	require.Len(t, read, 2)
	assert.Equal(t, written[0].Timestamp, read[0].Timestamp)
	assert.Equal(t, written[1].Close, read[1].Close)
}

func TestReadCsvMissingFile(t *testing.T) {
	var rows []*sampleRowDTO
	err := ReadCsv(filepath.Join(t.TempDir(), "nope.csv"), &rows)
	assert.Error(t, err)
}
