package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// SheetSummary describes one sheet of a saved workbook.
type SheetSummary struct {
	Name string
	Rows int // data rows, header excluded
}

// ReadSheet returns the rows of the named sheet as strings, header included.
func ReadSheet(path, name string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open file")
	}

	sheet, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("report: sheet %q not found", name)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

// Summarize lists the sheets of a saved workbook in order.
func Summarize(path string) ([]SheetSummary, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open file")
	}

	out := make([]SheetSummary, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		rows := len(s.Rows) - 1
		if rows < 0 {
			rows = 0
		}
		out = append(out, SheetSummary{Name: s.Name, Rows: rows})
	}
	return out, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
