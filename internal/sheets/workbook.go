package sheets

import (
	"context"
	"fmt"
	"strings"

	"teerth-api/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads ranges from a local .xlsx snapshot of the spreadsheet.
type WorkbookSource struct {
	path string
}

// NewWorkbookSource creates a source backed by the workbook at path.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: path}
}

// cellRange is a parsed A1 range. Zero bounds mean unbounded.
type cellRange struct {
	sheet      string
	col1, row1 int
	col2, row2 int
}

// parseRange splits "Tab!A1:Z100" into its sheet name and 1-based bounds.
// "Tab", "Tab!A:Z" and quoted names ('My Tab'!A1:B2) are accepted.
func parseRange(spec string) (cellRange, error) {
	var r cellRange
	sheet, cells, hasCells := strings.Cut(spec, "!")
	r.sheet = strings.Trim(sheet, "'")
	if r.sheet == "" {
		return r, fmt.Errorf("sheets: range %q has no sheet name", spec)
	}
	if !hasCells || cells == "" {
		return r, nil
	}

	from, to, _ := strings.Cut(cells, ":")
	var err error
	if r.col1, r.row1, err = parseCell(from); err != nil {
		return r, fmt.Errorf("sheets: range %q: %w", spec, err)
	}
	if to == "" {
		r.col2, r.row2 = r.col1, r.row1
		return r, nil
	}
	if r.col2, r.row2, err = parseCell(to); err != nil {
		return r, fmt.Errorf("sheets: range %q: %w", spec, err)
	}
	return r, nil
}

// parseCell accepts "B7" or a bare column "B" (row 0).
func parseCell(cell string) (col, row int, err error) {
	if col, row, err = excelize.CellNameToCoordinates(cell); err == nil {
		return col, row, nil
	}
	col, err = excelize.ColumnNameToNumber(cell)
	return col, 0, err
}

func (r cellRange) clip(rows [][]string) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for i, row := range rows {
		n := i + 1
		if r.row1 > 0 && n < r.row1 {
			continue
		}
		if r.row2 > 0 && n > r.row2 {
			break
		}
		lo, hi := 0, len(row)
		if r.col1 > 0 {
			lo = min(r.col1-1, len(row))
		}
		if r.col2 > 0 {
			hi = min(r.col2, len(row))
		}
		cells := append(models.Row{}, row[lo:max(lo, hi)]...)
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		out = append(out, cells)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// FetchRange reads rangeSpec from the workbook. A missing tab or an empty range is
// reported as ErrMalformedResponse, the same way the values API reports it.
func (w *WorkbookSource) FetchRange(ctx context.Context, rangeSpec string) ([]models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := parseRange(rangeSpec)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("sheets: open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(r.sheet); idx < 0 {
		log.Error().Str("range", rangeSpec).Str("kind", "malformed").Msg("workbook_sheet_missing")
		return nil, fmt.Errorf("sheets: workbook has no sheet %q: %w", r.sheet, ErrMalformedResponse)
	}
	raw, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("sheets: read sheet %q: %w", r.sheet, err)
	}

	rows := r.clip(raw)
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheets: range %q has no values: %w", rangeSpec, ErrMalformedResponse)
	}
	log.Debug().Str("range", rangeSpec).Int("rows", len(rows)).Msg("workbook_fetch_done")
	return rows, nil
}

// WriteWorkbook saves ranges to an .xlsx file, one tab per range, starting at A1.
// The tab name is taken from each range spec, so the file can be read back with WorkbookSource.
func WriteWorkbook(path string, ranges map[string][]models.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	keepDefault := false
	for spec, rows := range ranges {
		r, err := parseRange(spec)
		if err != nil {
			return err
		}
		if r.sheet == defaultSheet {
			keepDefault = true
		} else if _, err := f.NewSheet(r.sheet); err != nil {
			return fmt.Errorf("sheets: create sheet %q: %w", r.sheet, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			values := []string(row)
			if err := f.SetSheetRow(r.sheet, cell, &values); err != nil {
				return fmt.Errorf("sheets: write row %d of %q: %w", i+1, r.sheet, err)
			}
		}
	}
	if !keepDefault && len(ranges) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("sheets: drop default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("sheets: save workbook %s: %w", path, err)
	}
	return nil
}
