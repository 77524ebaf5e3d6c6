package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"paynlp/internal/domain"
)

// DefaultSheet is the sheet name used for written workbooks.
const DefaultSheet = "Parses"

// WriteXLSX writes entries as a single-sheet workbook.
func WriteXLSX(out io.Writer, entries []domain.ParseLogEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DefaultSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range entries {
		row := entryToCells(&entries[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(DefaultSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// entryToCells is entryToRow with numeric cells kept numeric.
func entryToCells(e *domain.ParseLogEntry) []interface{} {
	row := entryToRow(e)
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	if e.AmountValue != nil {
		cells[6] = *e.AmountValue
	}
	cells[10] = e.LatencyMS
	return cells
}

// ReadSentences returns the non-blank cells of column A of the given sheet,
// or of the first sheet when sheet is empty. A first row reading "text" or
// "input" is treated as a header.
func ReadSentences(r io.Reader, sheet string) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var out []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if i == 0 && (strings.EqualFold(cell, "text") || strings.EqualFold(cell, "input")) {
			continue
		}
		out = append(out, cell)
	}
	return out, nil
}
