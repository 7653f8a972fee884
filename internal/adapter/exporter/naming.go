package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xchanger/internal/domain/model"
	"xchanger/pkg/utils"
)

// MaxNameAttempts bounds the numeric suffixes tried by ResolveName.
const MaxNameAttempts = 999

// BaseName is the default file name for a table, e.g. "1 USD data.csv".
func BaseName(table *model.RateTable, format model.ExportFormat) string {
	return fmt.Sprintf("%s %s data%s", utils.FormatAmount(table.Amount), table.FixedCode, format.Extension())
}

// ResolveName returns base if no such file exists in dir, otherwise the
// first free name of the form "name1.ext", "name2.ext", ...
func ResolveName(dir, base string) (string, error) {
	if !exists(filepath.Join(dir, base)) {
		return base, nil
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; i <= MaxNameAttempts; i++ {
		candidate := fmt.Sprintf("%s%d%s", stem, i, ext)
		if !exists(filepath.Join(dir, candidate)) {
			return candidate, nil
		}
	}

	return "", &model.NamingExhaustedError{Base: base, Attempts: MaxNameAttempts}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}
