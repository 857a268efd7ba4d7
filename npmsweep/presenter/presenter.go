package presenter

import (
	"io"

	"github.com/anchore/npmsweep/npmsweep/presenter/json"
	"github.com/anchore/npmsweep/npmsweep/presenter/models"
	"github.com/anchore/npmsweep/npmsweep/presenter/table"
	"github.com/anchore/npmsweep/npmsweep/presenter/template"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

type Config struct {
	TemplateFilePath string
	// Color enables colored table output; only sensible when writing to a terminal.
	Color bool
}

// GetPresenter retrieves a Presenter that matches a CLI option
func GetPresenter(option Option, c Config, doc models.Document) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter(doc)
	case TablePresenter:
		return table.NewPresenter(doc, c.Color)
	case TemplatePresenter:
		return template.NewPresenter(doc, c.TemplateFilePath)
	default:
		return nil
	}
}
