package calculator

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/calculator.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/calculator.html"))

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	First   string
	Second  string
	Result  string
	Options []option
}

func newPageData(f Form) pageData {
	opts := make([]option, 0, len(Operations())+1)
	opts = append(opts, option{Value: "", Label: OpNone.Label(), Selected: f.Operation == ""})
	for _, op := range Operations() {
		opts = append(opts, option{
			Value:    string(op),
			Label:    op.Label(),
			Selected: f.Operation == string(op),
		})
	}

	return pageData{
		First:   f.First,
		Second:  f.Second,
		Result:  f.Result,
		Options: opts,
	}
}

// RenderForm writes the calculator page for f.
func RenderForm(w io.Writer, f Form) error {
	return pageTemplate.Execute(w, newPageData(f))
}
