package diag

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Report collects every Diagnostic produced by one rebuild, in the order
// they were produced; ForFeature selects one feature's entries.
type Report struct {
	Diagnostics []Diagnostic
}

// NewReport builds a Report from a flat diagnostic list.
func NewReport(diags []Diagnostic) *Report {
	return &Report{Diagnostics: diags}
}

// HasErrors reports whether any diagnostic in the report is an ERROR.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ForFeature returns only the diagnostics attached to the given feature id.
func (r *Report) ForFeature(featureID string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.FeatureID == featureID {
			out = append(out, d)
		}
	}
	return out
}

// WriteTable renders the report as a go-pretty table.
func (r *Report) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Rebuild diagnostics")
	t.AppendHeader(table.Row{"Severity", "Feature", "Message"})

	for _, d := range r.Diagnostics {
		t.AppendRow(table.Row{string(d.Severity), d.FeatureID, d.Message})
	}
	if len(r.Diagnostics) == 0 {
		t.AppendRow(table.Row{"-", "-", "no diagnostics"})
	}

	t.Render()
}
