package export

import (
	"bytes"
	"testing"

	"opsplatform-backend/internal/domain/report"

	"github.com/xuri/excelize/v2"
)

func TestXLSX_Render(t *testing.T) {
	r := report.Report{
		Title:   "Reimbursement Requests",
		Meta:    []report.Field{{Label: "View", Value: "team"}},
		Summary: []report.Field{{Label: "Total amount", Value: "60000.00"}},
		Columns: []report.Column{{Key: "project", Label: "Project"}, {Key: "amount", Label: "Amount"}},
		Data:    []map[string]string{{"project": "PRJ-9", "amount": "75000.00"}},
	}
	b, err := XLSX{}.Render(r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// title, meta, blank, summary heading, summary, blank, header, data
	if len(rows) != 8 {
		t.Fatalf("rows = %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Reimbursement Requests" || rows[1][1] != "team" || rows[4][1] != "60000.00" {
		t.Fatalf("header blocks = %v", rows[:5])
	}
	if rows[6][0] != "Project" || rows[7][0] != "PRJ-9" || rows[7][1] != "75000.00" {
		t.Fatalf("table = %v", rows[6:])
	}
}

func TestXLSX_Metadata(t *testing.T) {
	var x XLSX
	if x.Extension() != ".xlsx" || x.ContentType() == "" {
		t.Fatal("unexpected metadata")
	}
	var _ report.Renderer = x
}
