package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with histogram and path charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"dollars": FormatDollars,
	"pct":     FormatPercentage,
	"add":     func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.RunResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.RunResult
		Assumptions []string
	}{result, GenerateAssumptions(result.Config)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
