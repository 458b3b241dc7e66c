package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

// WriteCsv marshals rows to a CSV file, creating the parent directory when
// needed. rows must be a pointer to a slice of csv-tagged DTOs.
func WriteCsv(outFile string, rows interface{}) error {
	dir := filepath.Dir(outFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("WriteCsv: failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("WriteCsv: error creating CSV file: %w", err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("WriteCsv: error marshalling file: %w", err)
	}

	log.Infof("Wrote %s", outFile)

	return nil
}

// ReadCsv unmarshals a CSV file into rows, a pointer to a slice of csv-tagged
// DTOs.
func ReadCsv(inFile string, rows interface{}) error {
	file, err := os.Open(inFile)
	if err != nil {
		return fmt.Errorf("ReadCsv: error opening file: %w", err)
	}

	defer file.Close()

	if err := gocsv.UnmarshalFile(file, rows); err != nil {
		return fmt.Errorf("ReadCsv: error unmarshalling file: %w", err)
	}

	return nil
}
