package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
)

//go:embed *.tmpl
var FS embed.FS

// RenderHTML renders the named HTML template with the given data. Template
// names map to <name>.tmpl in this package.
func RenderHTML(name string, data map[string]any) (string, error) {
	if strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
