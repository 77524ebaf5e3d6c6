package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"paynlp/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by CSV and XLSX exports.
var columns = []string{
	"ID",
	"Created At",
	"Request ID",
	"Input",
	"Intent",
	"Amount Text",
	"Amount Value",
	"Currency",
	"Recipient",
	"Annotator",
	"Latency (ms)",
}

// CSVWriter wraps csv.Writer for exporting parse log entries.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts a batch of entries to rows and writes them.
func (w *CSVWriter) WriteEntries(entries []domain.ParseLogEntry) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete CSV export, BOM included.
func WriteCSV(out io.Writer, entries []domain.ParseLogEntry) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	w := NewCSVWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteEntries(entries); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// entryToRow converts a single entry to a row. Absent fields are empty cells.
func entryToRow(e *domain.ParseLogEntry) []string {
	row := make([]string, len(columns))
	row[0] = e.ID.String()
	row[1] = e.CreatedAt.Format(time.RFC3339)
	row[2] = e.RequestID
	row[3] = e.InputText
	row[4] = deref(e.Intent)
	row[5] = deref(e.AmountText)
	row[6] = formatAmount(e.AmountValue)
	row[7] = deref(e.Currency)
	row[8] = deref(e.Recipient)
	row[9] = e.Annotator
	row[10] = strconv.FormatInt(e.LatencyMS, 10)
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// BuildFilename returns the download filename for an export.
// Format: {prefix}_{YYYY-MM-DD}.{csv|xlsx}
func BuildFilename(prefix string, format domain.ExportFormat) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", prefix, date, format)
}

// ContentType returns the MIME type for an export format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
