package template

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/template"

	"github.com/mitchellh/go-homedir"

	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/presenter/models"
)

// Presenter is an implementation of presenter.Presenter that formats output according to a user-provided Go text template.
type Presenter struct {
	document           models.Document
	pathToTemplateFile string
}

// NewPresenter returns a new template.Presenter.
func NewPresenter(doc models.Document, pathToTemplateFile string) *Presenter {
	return &Presenter{
		document:           doc,
		pathToTemplateFile: pathToTemplateFile,
	}
}

// Present creates output using a user-supplied Go template.
func (pres *Presenter) Present(output io.Writer) error {
	expandedPathToTemplateFile, err := homedir.Expand(pres.pathToTemplateFile)
	if err != nil {
		return fmt.Errorf("unable to expand path %q", pres.pathToTemplateFile)
	}

	templateContents, err := os.ReadFile(expandedPathToTemplateFile)
	if err != nil {
		return fmt.Errorf("unable to get output template: %w", err)
	}

	templateName := expandedPathToTemplateFile
	tmpl, err := template.New(templateName).Funcs(FuncMap).Parse(string(templateContents))
	if err != nil {
		return fmt.Errorf("unable to parse template: %w", err)
	}

	err = tmpl.Execute(output, pres.document)
	if err != nil {
		return fmt.Errorf("unable to execute supplied template: %w", err)
	}

	return nil
}

// FuncMap holds the custom functions available to template authors.
var FuncMap = template.FuncMap{
	"getLastIndex": func(collection interface{}) int {
		if v := reflect.ValueOf(collection); v.Kind() == reflect.Slice {
			return v.Len() - 1
		}

		return 0
	},
	// extra returns an extra field of a finding, or an empty string
	"extra": func(f finding.Finding, key string) string {
		return f.Extra[key]
	},
	// byKind keeps the findings of the given kind
	"byKind": func(findings []finding.Finding, kind string) []finding.Finding {
		var result []finding.Finding
		for _, f := range findings {
			if string(f.Kind) == kind {
				result = append(result, f)
			}
		}
		return result
	},
	// packages returns the sorted, unique package names of the findings
	"packages": func(findings []finding.Finding) []string {
		seen := map[string]struct{}{}
		var names []string
		for _, f := range findings {
			if _, ok := seen[f.Package]; ok {
				continue
			}
			seen[f.Package] = struct{}{}
			names = append(names, f.Package)
		}
		sort.Strings(names)
		return names
	},
	"join": strings.Join,
}
