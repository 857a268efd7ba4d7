package presenter

import "strings"

const (
	UnknownPresenter Option = iota
	JSONPresenter
	TablePresenter
	TemplatePresenter
)

var optionStr = []string{
	"UnknownPresenter",
	"json",
	"table",
	"template",
}

var Options = []Option{
	JSONPresenter,
	TablePresenter,
	TemplatePresenter,
}

type Option int

func ParseOption(userStr string) Option {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case strings.ToLower(JSONPresenter.String()):
		return JSONPresenter
	case strings.ToLower(TablePresenter.String()):
		return TablePresenter
	case strings.ToLower(TemplatePresenter.String()):
		return TemplatePresenter
	default:
		return UnknownPresenter
	}
}

func (o Option) String() string {
	if int(o) >= len(optionStr) || o < 0 {
		return optionStr[0]
	}

	return optionStr[o]
}
