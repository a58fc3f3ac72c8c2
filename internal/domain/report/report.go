package report

// Report is the export payload shared by every list screen: a header block,
// summary figures, and a table.
type Report struct {
	Title   string              `json:"title"`
	Meta    []Field             `json:"meta"`
	Summary []Field             `json:"summary"`
	Columns []Column            `json:"columns"`
	Data    []map[string]string `json:"data"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Row returns the cells of row i in column order.
func (r Report) Row(i int) []string {
	out := make([]string, len(r.Columns))
	for j, c := range r.Columns {
		out[j] = r.Data[i][c.Key]
	}
	return out
}

// Renderer turns a report into a downloadable document.
type Renderer interface {
	Render(r Report) ([]byte, error)
	ContentType() string
	Extension() string
}
