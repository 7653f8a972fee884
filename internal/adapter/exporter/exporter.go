package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"xchanger/internal/domain/model"
	"xchanger/pkg/logger"
)

const sheetName = "Currency Data"

var header = []string{"Currency", "Rate"}

// Exporter writes rate tables into dir, or the working directory when dir is
// empty. Existing files are never overwritten.
type Exporter struct {
	dir string
	log *logger.Logger
}

func NewExporter(dir string, log *logger.Logger) *Exporter {
	return &Exporter{dir: dir, log: log}
}

// Export writes table under baseName, or a suffixed variant of it when that
// name is taken, and returns the path written.
func (e *Exporter) Export(table *model.RateTable, format model.ExportFormat, baseName string) (string, error) {
	write, err := writerFor(format)
	if err != nil {
		return "", err
	}

	name, err := ResolveName(e.dir, baseName)
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.dir, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file, table); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	e.log.Info("Rate table exported", "path", path, "format", format, "rows", len(table.Entries))
	return path, nil
}

type writeFunc func(w io.Writer, table *model.RateTable) error

// Write streams table to w in the given format.
func Write(w io.Writer, table *model.RateTable, format model.ExportFormat) error {
	write, err := writerFor(format)
	if err != nil {
		return err
	}
	return write(w, table)
}

func writerFor(format model.ExportFormat) (writeFunc, error) {
	switch format {
	case model.FormatXLSX:
		return writeXLSX, nil
	case model.FormatCSV:
		return writeCSV, nil
	case model.FormatJSONL:
		return writeJSONL, nil
	}
	return nil, &model.ValidationError{Field: "format", Value: string(format), Reason: "unsupported export format"}
}

func writeXLSX(w io.Writer, table *model.RateTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]interface{}{header[0], header[1]}); err != nil {
		return err
	}
	for i, entry := range table.Entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &[]interface{}{string(entry.Currency), entry.Value()}); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeCSV(w io.Writer, table *model.RateTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, entry := range table.Entries {
		if err := cw.Write([]string{string(entry.Currency), entry.Value()}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeJSONL writes one {"currency","rate"} record per line.
func writeJSONL(w io.Writer, table *model.RateTable) error {
	enc := json.NewEncoder(w)
	for _, entry := range table.Entries {
		if err := enc.Encode(entry); err != nil {
			return err
		}
	}
	return nil
}
