package table

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/presenter/models"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	document  models.Document
	withColor bool
}

// NewPresenter is a *Presenter constructor
func NewPresenter(doc models.Document, withColor bool) *Presenter {
	return &Presenter{
		document:  doc,
		withColor: withColor,
	}
}

// Present creates a table-based reporting
func (p *Presenter) Present(output io.Writer) error {
	rs := getRows(p.document)

	if len(rs) == 0 {
		_, err := io.WriteString(output, "No compromised packages found\n")
		return err
	}

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"File", "Package", "Version", "Kind"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	if p.withColor {
		for _, r := range rs {
			table.Rich(r.Columns(), []tablewriter.Colors{{}, {}, {}, getKindColor(r.Kind)})
		}
	} else {
		table.AppendBulk(rs.Render())
	}

	table.Render()

	return nil
}

func getRows(doc models.Document) rows {
	var rs rows
	for _, m := range doc.Matches {
		rs = append(rs, row{
			File:    m.File,
			Package: m.Package,
			Version: m.Version,
			Kind:    string(m.Kind),
		})
	}
	return rs
}

type rows []row

type row struct {
	File    string
	Package string
	Version string
	Kind    string
}

func (r row) Columns() []string {
	return []string{r.File, r.Package, r.Version, r.Kind}
}

func (rs rows) Render() [][]string {
	out := make([][]string, len(rs))
	for idx, r := range rs {
		out[idx] = r.Columns()
	}
	return out
}

func getKindColor(kind string) tablewriter.Colors {
	switch finding.Kind(kind) {
	case finding.BunPresentKind, finding.BunContentHitKind:
		return tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor}
	case finding.NpmLockFallbackKind:
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgYellowColor}
	}
	if strings.HasSuffix(kind, string(finding.PackageTreeKind)) {
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgCyanColor}
	}
	return tablewriter.Colors{tablewriter.Normal, tablewriter.FgRedColor}
}
