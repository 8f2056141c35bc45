package banner

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var fragment = template.Must(template.New("banner").Funcs(template.FuncMap{
	"classes": func(e *Element) string { return strings.Join(e.Classes, " ") },
}).Parse(`<div class="update-banner">
{{- with .Page.Link}}
  <a id="{{.ID}}" class="{{classes .}}" href="{{$.ReleaseURL}}"{{if .Display}} style="display: {{.Display}}"{{end}}>
    {{- if $.Page.Text}}<span id="{{$.Page.Text.ID}}">{{$.Page.Text.Text}}</span>{{else}}{{.Text}}{{end -}}
  </a>
{{- end}}
{{- with .Page.Button}}
  <button id="{{.ID}}" class="{{classes .}}" type="button"{{if .Display}} style="display: {{.Display}}"{{end}}>{{$.ButtonLabel}}</button>
{{- end}}
</div>
`))

type view struct {
	Page        *Page
	ReleaseURL  string
	ButtonLabel string
}

// Render writes the HTML fragment for p. releaseURL is the link target and
// may be empty.
func Render(w io.Writer, p *Page, releaseURL string) error {
	if releaseURL == "" {
		releaseURL = "#"
	}
	if err := fragment.Execute(w, view{Page: p, ReleaseURL: releaseURL, ButtonLabel: "Update available"}); err != nil {
		return fmt.Errorf("error rendering update banner: %w", err)
	}
	return nil
}
