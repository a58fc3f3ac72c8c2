package export

import (
	"bytes"

	"opsplatform-backend/internal/domain/report"

	"github.com/xuri/excelize/v2"
)

const sheet = "Report"

// XLSX renders a report as a single worksheet: title, meta block, summary
// block, then the table with a bold header row.
type XLSX struct{}

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSX) Extension() string { return ".xlsx" }

func (XLSX) Render(r report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	row := 1
	setRow := func(values []any, style int) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if style != 0 {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(sheet, cell, end, style); err != nil {
				return err
			}
		}
		row++
		return nil
	}
	fields := func(list []report.Field) error {
		for _, fl := range list {
			if err := setRow([]any{fl.Label, fl.Value}, 0); err != nil {
				return err
			}
		}
		return nil
	}

	if err := setRow([]any{r.Title}, bold); err != nil {
		return nil, err
	}
	if err := fields(r.Meta); err != nil {
		return nil, err
	}
	row++
	if len(r.Summary) > 0 {
		if err := setRow([]any{"Summary"}, bold); err != nil {
			return nil, err
		}
		if err := fields(r.Summary); err != nil {
			return nil, err
		}
		row++
	}

	header := make([]any, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c.Label
	}
	if err := setRow(header, bold); err != nil {
		return nil, err
	}
	for i := range r.Data {
		cells := r.Row(i)
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		if err := setRow(values, 0); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
