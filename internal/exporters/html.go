package exporters

import (
	"html/template"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrlokans/bookmarks-export/internal/entities"
)

const htmlFileName = "annotations.html"

var titleCaser = cases.Title(language.English)

// HTMLExporter produces one self-contained page with client-side toggles
// for annotation kinds and colors.
type HTMLExporter struct {
	Now func() time.Time
}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{Now: time.Now}
}

type htmlPage struct {
	GeneratedAt     string
	BookCount       int
	AnnotationCount int
	Kinds           []entities.AnnotationKind
	Colors          []entities.AnnotationColor
	Books           []entities.Book
}

var htmlTemplate = template.Must(template.New("annotations").Funcs(template.FuncMap{
	"label": func(v any) string {
		switch value := v.(type) {
		case entities.AnnotationKind:
			return titleCaser.String(string(value))
		case entities.AnnotationColor:
			return titleCaser.String(string(value))
		default:
			return ""
		}
	},
	"deref":   entities.Deref,
	"blank":   entities.IsBlank,
	"swatch":  func(c entities.AnnotationColor) string { return c.Hex() },
	"date":    func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"isoDate": formatTime,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Apple Books Annotations</title>
<style>
body { font-family: -apple-system, "Helvetica Neue", sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
header p { color: #666; }
.controls { display: flex; flex-wrap: wrap; gap: 1rem; margin: 1rem 0 2rem; }
.controls label { cursor: pointer; }
.book { margin-bottom: 2.5rem; }
.book h2 { margin-bottom: 0.2rem; }
.book .meta { color: #666; margin-top: 0; }
.annotation { border-left: 4px solid #ccc; padding: 0.4rem 0.8rem; margin: 0.8rem 0; }
.annotation.color-underline { border-left-style: dashed; }
.annotation blockquote { margin: 0; white-space: pre-wrap; }
.annotation .note { margin: 0.4rem 0 0; font-style: italic; white-space: pre-wrap; }
.annotation .info { color: #888; font-size: 0.8rem; }
.hidden { display: none; }
</style>
</head>
<body>
<header>
<h1>Apple Books Annotations</h1>
<p>{{.AnnotationCount}} annotations from {{.BookCount}} books · generated {{.GeneratedAt}}</p>
</header>
<section class="controls">
{{- range .Kinds}}
<label><input type="checkbox" data-filter="kind" value="{{.}}" checked> {{label .}}</label>
{{- end}}
{{- range .Colors}}
<label><input type="checkbox" data-filter="color" value="{{.}}" checked> {{label .}}</label>
{{- end}}
</section>
<main>
{{- range .Books}}
<article class="book" data-asset="{{.AssetID}}">
<h2>{{.DisplayTitle}}</h2>
<p class="meta">{{.DisplayAuthor}}{{if not (blank .Genre)}} · {{deref .Genre}}{{end}}</p>
{{- range .Annotations}}
<div class="annotation kind-{{.Kind}} color-{{.Color}}" data-kind="{{.Kind}}" data-color="{{.Color}}"{{with swatch .Color}} style="border-left-color: {{.}}"{{end}}>
{{- if not (blank .Text)}}
<blockquote>{{deref .Text}}</blockquote>
{{- end}}
{{- if not (blank .Note)}}
<p class="note">{{deref .Note}}</p>
{{- end}}
<p class="info">{{label .Kind}} · {{label .Color}} · <time datetime="{{isoDate .CreatedAt}}">{{date .CreatedAt}}</time>{{if .Location}} · {{deref .Location}}{{end}}</p>
</div>
{{- end}}
</article>
{{- end}}
</main>
<script>
(function () {
  var inputs = document.querySelectorAll(".controls input");
  function apply() {
    var on = { kind: {}, color: {} };
    inputs.forEach(function (input) { on[input.dataset.filter][input.value] = input.checked; });
    document.querySelectorAll(".annotation").forEach(function (el) {
      el.classList.toggle("hidden", !(on.kind[el.dataset.kind] && on.color[el.dataset.color]));
    });
    document.querySelectorAll(".book").forEach(function (book) {
      book.classList.toggle("hidden", book.querySelectorAll(".annotation:not(.hidden)").length === 0);
    });
  }
  inputs.forEach(function (input) { input.addEventListener("change", apply); });
})();
</script>
</body>
</html>
`))

func (e *HTMLExporter) Export(books []entities.Book, outputDir string) ([]string, error) {
	return writeSingle(e, books, outputDir, htmlFileName)
}

func (e *HTMLExporter) Render(w io.Writer, books []entities.Book) error {
	page := htmlPage{
		GeneratedAt:     e.Now().Format("2006-01-02 15:04"),
		BookCount:       len(books),
		AnnotationCount: totalAnnotations(books),
		Kinds:           entities.AnnotationKinds,
		Colors:          entities.AnnotationColors,
		Books:           books,
	}
	return htmlTemplate.Execute(w, page)
}
