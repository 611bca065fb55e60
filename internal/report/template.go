package report

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderTemplate executes a user supplied text/template against data.
// Sprig functions are available, e.g. {{ .Flags | len }} or {{ .Path | join " " | default "root" }}.
func RenderTemplate(w io.Writer, text string, data *Data) error {
	tpl, err := template.New("inspect").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	if err := tpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}
