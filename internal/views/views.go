// Package views embeds the HTML templates of the web catalog.
package views

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// New returns a template engine over the embedded templates. Views are
// addressed by their path without extension, e.g. "movies/index".
func New() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("join", strings.Join)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("contains", func(list []string, s string) bool {
		for _, item := range list {
			if item == s {
				return true
			}
		}
		return false
	})
	return engine
}
