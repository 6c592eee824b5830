package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/daud-shahbaz/pywallet/internal/fileutils"
	"github.com/daud-shahbaz/pywallet/internal/models"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// csvImportRow carries raw CSV cells so a single malformed row can be
// skipped instead of aborting the whole import.
type csvImportRow struct {
	Amount   string `csv:"amount"`
	Category string `csv:"category"`
	Date     string `csv:"date"`
	Note     string `csv:"note"`
}

var requiredImportColumns = []string{"amount", "category", "date"}

// ExportCSV writes all records to a CSV file mirroring the store columns.
// An empty output path defaults to expenses_export.csv next to the store.
// Returns the number of exported records.
func (s *ExpenseStore) ExportCSV(outputPath string) (int, error) {
	records := s.Load()
	if len(records) == 0 {
		return 0, fmt.Errorf("no data to export")
	}

	if outputPath == "" {
		outputPath = filepath.Join(s.cfg.Data.Directory, "expenses_export.csv")
	} else if strings.Contains(outputPath, "..") {
		return 0, &walleterror.ValidationError{
			Field:  "output path",
			Reason: "cannot contain '..' (path traversal not allowed)",
		}
	}

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(outputPath)); err != nil {
		return 0, &walleterror.StorageError{Path: outputPath, Op: "create directory", Err: err}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return 0, &walleterror.StorageError{Path: outputPath, Op: "create", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return 0, &walleterror.StorageError{Path: outputPath, Op: "write", Err: err}
	}

	log.WithFields(logrus.Fields{
		"file":  outputPath,
		"count": len(records),
	}).Info("Exported expenses to CSV file")
	return len(records), nil
}

// ImportCSV merges records from a CSV file into the store. The file must
// exist, carry a .csv suffix and contain at least the amount, category and
// date columns. Malformed rows are skipped individually; the returned count
// is the number of rows that imported successfully.
func (s *ExpenseStore) ImportCSV(csvPath string) (int, error) {
	info, err := os.Stat(csvPath)
	if err != nil {
		return 0, &walleterror.ImportError{Path: csvPath, Reason: "CSV file not found"}
	}
	if info.IsDir() {
		return 0, &walleterror.ImportError{Path: csvPath, Reason: "path is not a file"}
	}
	if strings.ToLower(filepath.Ext(csvPath)) != ".csv" {
		return 0, &walleterror.ImportError{
			Path:   csvPath,
			Reason: fmt.Sprintf("file must be a CSV file, got: %s", filepath.Ext(csvPath)),
		}
	}

	if err := validateImportHeader(csvPath); err != nil {
		return 0, err
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return 0, &walleterror.StorageError{Path: csvPath, Op: "open", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []csvImportRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return 0, &walleterror.ImportError{
			Path:   csvPath,
			Reason: fmt.Sprintf("CSV parsing error: %v", err),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Load()
	id := nextID(records)

	imported := 0
	for _, row := range rows {
		amount, err := parseAmountCell(row.Amount)
		if err != nil {
			log.WithField("amount", row.Amount).Debug("Skipping CSV row with unparseable amount")
			continue
		}
		records = append(records, models.Transaction{
			ID:       id,
			Amount:   amount,
			Category: row.Category,
			Date:     row.Date,
			Note:     row.Note,
		})
		id++
		imported++
	}

	if err := s.Save(records); err != nil {
		return 0, err
	}

	log.WithFields(logrus.Fields{
		"file":     csvPath,
		"imported": imported,
		"skipped":  len(rows) - imported,
	}).Info("Imported expenses from CSV file")
	return imported, nil
}

// validateImportHeader checks the first line for the required columns so a
// missing column is reported distinctly instead of producing an all-skipped
// import.
func validateImportHeader(csvPath string) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return &walleterror.StorageError{Path: csvPath, Op: "open", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	header, err := csv.NewReader(file).Read()
	if err == io.EOF {
		return &walleterror.ImportError{Path: csvPath, Reason: "CSV file is empty"}
	}
	if err != nil {
		return &walleterror.ImportError{Path: csvPath, Reason: fmt.Sprintf("CSV parsing error: %v", err)}
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}
	for _, col := range requiredImportColumns {
		if !present[col] {
			return &walleterror.ImportError{
				Path:   csvPath,
				Reason: fmt.Sprintf("CSV must have columns: %s", strings.Join(requiredImportColumns, ", ")),
			}
		}
	}
	return nil
}

// parseAmountCell accepts integer cells and float-formatted cells ("500.0"),
// truncating the latter.
func parseAmountCell(cell string) (int64, error) {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
